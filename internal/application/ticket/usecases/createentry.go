package usecases

import (
	"context"
	"net/http"

	"pinkslip/internal/application/ticket/dto"
	"pinkslip/internal/domain/ticket"
	"pinkslip/internal/shared/errors"
	"pinkslip/internal/shared/logger"
)

// CreateEntryCommand is one manually entered ticket line. Fields carry
// raw text and go through the same checks as an imported row.
type CreateEntryCommand struct {
	TicketNumber    string
	FirstInitial    string
	LastName        string
	Phone           string
	ItemType        string
	WorkDescription string
	Price           string
	DateReceived    string
	DueDate         string
	DueTime         string
}

type CreateEntryResult struct {
	TicketCreated bool
	Ticket        *dto.TicketDTO
}

type CreateEntryUseCase struct {
	ticketRepo ticket.TicketRepository
	txManager  TransactionRunner
	settings   ImportSettings
	logger     logger.Interface
}

func NewCreateEntryUseCase(
	ticketRepo ticket.TicketRepository,
	txManager TransactionRunner,
	settings ImportSettings,
	logger logger.Interface,
) *CreateEntryUseCase {
	return &CreateEntryUseCase{
		ticketRepo: ticketRepo,
		txManager:  txManager,
		settings:   settings,
		logger:     logger,
	}
}

func (uc *CreateEntryUseCase) Execute(ctx context.Context, cmd CreateEntryCommand) (*CreateEntryResult, error) {
	uc.logger.Infow("executing create entry use case", "ticket_number", cmd.TicketNumber)

	var (
		b  *batch
		tk *ticket.Ticket
	)
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		b = newBatch(uc.ticketRepo, uc.settings.DefaultAreaCode, uc.logger)

		outcome, touched, err := b.applyRow(txCtx, headerRows, cmd.toRow())
		if err != nil {
			return err
		}
		switch outcome {
		case outcomeRejected:
			return errors.NewValidationError(b.rejections[0].Reason, string(b.rejections[0].Kind))
		case outcomeDuplicate:
			return errors.NewConflictError("identical item already exists on ticket", touched.Number())
		}

		tk = touched
		return b.commit(txCtx)
	})
	if err != nil {
		if errors.IsValidationError(err) || errors.IsConflictError(err) {
			uc.logger.Warnw("manual entry refused", "ticket_number", cmd.TicketNumber, "error", err)
			return nil, err
		}
		uc.logger.Errorw("failed to save manual entry", "ticket_number", cmd.TicketNumber, "error", err)
		if errors.IsDuplicateError(err) {
			return nil, errors.NewBatchRolledBackError(http.StatusConflict, "ticket number already exists", cmd.TicketNumber)
		}
		return nil, errors.NewInternalError("failed to save entry")
	}

	uc.logger.Infow("manual entry saved",
		"ticket_number", tk.Number(),
		"ticket_created", b.ticketsCreated > 0,
		"total_amount", tk.TotalAmount(),
	)

	return &CreateEntryResult{
		TicketCreated: b.ticketsCreated > 0,
		Ticket:        dto.ToTicketDTO(tk),
	}, nil
}

func (cmd CreateEntryCommand) toRow() RawRow {
	return RawRow{
		ColTicketNumber:    cmd.TicketNumber,
		ColFirstInitial:    cmd.FirstInitial,
		ColLastName:        cmd.LastName,
		ColPhone:           cmd.Phone,
		ColItemType:        cmd.ItemType,
		ColWorkDescription: cmd.WorkDescription,
		ColPrice:           cmd.Price,
		ColDateReceived:    cmd.DateReceived,
		ColDueDate:         cmd.DueDate,
		ColDueTime:         cmd.DueTime,
	}
}
