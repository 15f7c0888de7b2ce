package usecases

import (
	"context"
	"strings"

	"pinkslip/internal/domain/ticket"
	"pinkslip/internal/shared/errors"
	"pinkslip/internal/shared/logger"
)

type DeleteTicketCommand struct {
	Number string
}

type DeleteTicketResult struct {
	Number string
}

// DeleteTicketUseCase is the administrative delete; it removes a ticket
// and its items together.
type DeleteTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	txManager  TransactionRunner
	logger     logger.Interface
}

func NewDeleteTicketUseCase(
	ticketRepo ticket.TicketRepository,
	txManager TransactionRunner,
	logger logger.Interface,
) *DeleteTicketUseCase {
	return &DeleteTicketUseCase{
		ticketRepo: ticketRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

func (uc *DeleteTicketUseCase) Execute(ctx context.Context, cmd DeleteTicketCommand) (*DeleteTicketResult, error) {
	number := strings.TrimSpace(cmd.Number)
	uc.logger.Infow("executing delete ticket use case", "ticket_number", number)

	if number == "" {
		return nil, errors.NewValidationError("ticket number is required")
	}

	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		return uc.ticketRepo.Delete(txCtx, number)
	})
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to delete ticket", "ticket_number", number, "error", err)
		return nil, errors.NewInternalError("failed to delete ticket")
	}

	uc.logger.Infow("ticket deleted successfully", "ticket_number", number)

	return &DeleteTicketResult{Number: number}, nil
}
