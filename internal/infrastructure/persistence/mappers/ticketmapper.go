package mappers

import (
	"fmt"
	"time"

	"pinkslip/internal/domain/ticket"
	vo "pinkslip/internal/domain/ticket/valueobjects"
	"pinkslip/internal/infrastructure/persistence/models"
)

// TicketMapper handles the conversion between Ticket domain entities and persistence models.
type TicketMapper interface {
	// ToModel converts a ticket domain entity to a persistence model.
	ToModel(t *ticket.Ticket) *models.TicketModel

	// ItemToModel converts a line item to a persistence model owned by ticketID.
	ItemToModel(ticketID uint, item *ticket.LineItem) *models.LineItemModel

	// ToDomain converts a ticket model and its item models to a domain entity.
	ToDomain(model *models.TicketModel, items []models.LineItemModel) (*ticket.Ticket, error)
}

// TicketMapperImpl is the concrete implementation of TicketMapper.
type TicketMapperImpl struct{}

// NewTicketMapper creates a new TicketMapper.
func NewTicketMapper() TicketMapper {
	return &TicketMapperImpl{}
}

func (m *TicketMapperImpl) ToModel(t *ticket.Ticket) *models.TicketModel {
	return &models.TicketModel{
		ID:           t.ID(),
		Number:       t.Number(),
		FirstInitial: t.FirstInitial(),
		LastName:     t.LastName(),
		Phone:        t.Phone(),
		DateReceived: t.DateReceived(),
		DueDate:      t.DueDate(),
		DueTime:      t.DueTime(),
		TotalAmount:  t.TotalAmount(),
		CreatedAt:    t.CreatedAt().UnixMilli(),
		UpdatedAt:    t.UpdatedAt().UnixMilli(),
	}
}

func (m *TicketMapperImpl) ItemToModel(ticketID uint, item *ticket.LineItem) *models.LineItemModel {
	return &models.LineItemModel{
		ID:          item.ID(),
		TicketID:    ticketID,
		Category:    item.Category().String(),
		Description: item.Description(),
		Price:       item.Price(),
		CreatedAt:   item.CreatedAt().UnixMilli(),
	}
}

func (m *TicketMapperImpl) ToDomain(model *models.TicketModel, items []models.LineItemModel) (*ticket.Ticket, error) {
	lineItems := make([]*ticket.LineItem, 0, len(items))
	for i := range items {
		im := &items[i]
		item, err := ticket.ReconstructLineItem(
			im.ID,
			im.TicketID,
			vo.Category(im.Category),
			im.Description,
			im.Price,
			millisToTime(im.CreatedAt),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to map ticket item (id=%d): %w", im.ID, err)
		}
		lineItems = append(lineItems, item)
	}

	return ticket.ReconstructTicket(
		model.ID,
		model.Number,
		ticket.Details{
			FirstInitial: model.FirstInitial,
			LastName:     model.LastName,
			Phone:        model.Phone,
			DateReceived: model.DateReceived,
			DueDate:      model.DueDate,
			DueTime:      model.DueTime,
		},
		model.TotalAmount,
		lineItems,
		millisToTime(model.CreatedAt),
		millisToTime(model.UpdatedAt),
	)
}

func millisToTime(millis int64) time.Time {
	return time.UnixMilli(millis).UTC()
}
