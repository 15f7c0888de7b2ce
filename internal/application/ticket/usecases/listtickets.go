package usecases

import (
	"context"
	"strings"

	"pinkslip/internal/application/ticket/dto"
	"pinkslip/internal/domain/ticket"
	"pinkslip/internal/shared/errors"
	"pinkslip/internal/shared/logger"
	"pinkslip/internal/shared/mapper"
	"pinkslip/internal/shared/utils"
)

type ListTicketsQuery struct {
	// Search matches ticket number, last name or phone as a substring.
	Search   string
	Page     int
	PageSize int
}

type ListTicketsResult struct {
	Tickets  []dto.TicketListItemDTO
	Total    int64
	Page     int
	PageSize int
}

type ListTicketsUseCase struct {
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
}

func NewListTicketsUseCase(
	ticketRepo ticket.TicketRepository,
	logger logger.Interface,
) *ListTicketsUseCase {
	return &ListTicketsUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *ListTicketsUseCase) Execute(ctx context.Context, query ListTicketsQuery) (*ListTicketsResult, error) {
	p := utils.ValidatePagination(query.Page, query.PageSize)

	tickets, total, err := uc.ticketRepo.List(ctx, ticket.TicketFilter{
		Query:    strings.TrimSpace(query.Search),
		Page:     p.Page,
		PageSize: p.PageSize,
	})
	if err != nil {
		uc.logger.Errorw("failed to list tickets", "search", query.Search, "error", err)
		return nil, errors.NewInternalError("failed to list tickets")
	}

	items := mapper.MapSlice(tickets, dto.ToTicketListItemDTO)
	if items == nil {
		items = []dto.TicketListItemDTO{}
	}

	return &ListTicketsResult{
		Tickets:  items,
		Total:    total,
		Page:     p.Page,
		PageSize: p.PageSize,
	}, nil
}
