package usecases

import (
	"context"

	"pinkslip/internal/application/ticket/dto"
	"pinkslip/internal/domain/ticket"
	"pinkslip/internal/shared/errors"
	"pinkslip/internal/shared/logger"
)

type ExportTicketsUseCase struct {
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
}

func NewExportTicketsUseCase(
	ticketRepo ticket.TicketRepository,
	logger logger.Interface,
) *ExportTicketsUseCase {
	return &ExportTicketsUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

// Execute returns the flat join of every ticket and its items, ordered by
// ticket number.
func (uc *ExportTicketsUseCase) Execute(ctx context.Context) ([]dto.ExportRecordDTO, error) {
	tickets, err := uc.ticketRepo.ListAll(ctx)
	if err != nil {
		uc.logger.Errorw("failed to load tickets for export", "error", err)
		return nil, errors.NewInternalError("failed to export tickets")
	}

	records := make([]dto.ExportRecordDTO, 0, len(tickets))
	for _, t := range tickets {
		records = append(records, dto.ToExportRecords(t)...)
	}

	uc.logger.Infow("tickets exported", "tickets", len(tickets), "records", len(records))
	return records, nil
}
