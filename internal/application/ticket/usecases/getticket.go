package usecases

import (
	"context"
	"strings"

	"pinkslip/internal/application/ticket/dto"
	"pinkslip/internal/domain/ticket"
	"pinkslip/internal/shared/errors"
	"pinkslip/internal/shared/logger"
)

type GetTicketQuery struct {
	Number string
}

type GetTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
}

func NewGetTicketUseCase(
	ticketRepo ticket.TicketRepository,
	logger logger.Interface,
) *GetTicketUseCase {
	return &GetTicketUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *GetTicketUseCase) Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDTO, error) {
	number := strings.TrimSpace(query.Number)
	if number == "" {
		return nil, errors.NewValidationError("ticket number is required")
	}

	t, err := uc.ticketRepo.GetByNumber(ctx, number)
	if err != nil {
		if !errors.IsNotFoundError(err) {
			uc.logger.Errorw("failed to get ticket", "ticket_number", number, "error", err)
		}
		return nil, err
	}

	return dto.ToTicketDTO(t), nil
}
