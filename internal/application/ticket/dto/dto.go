package dto

import (
	"time"

	"pinkslip/internal/domain/ticket"
	"pinkslip/internal/shared/mapper"
)

type TicketDTO struct {
	ID           uint          `json:"id"`
	Number       string        `json:"ticket_number"`
	FirstInitial string        `json:"first_initial"`
	LastName     string        `json:"last_name"`
	Phone        string        `json:"phone"`
	DateReceived string        `json:"date_received"`
	DueDate      string        `json:"due_date"`
	DueTime      string        `json:"due_time"`
	TotalAmount  float64       `json:"total_amount"`
	Items        []LineItemDTO `json:"items"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

type LineItemDTO struct {
	ID          uint    `json:"id"`
	Category    string  `json:"item_type"`
	Description string  `json:"work_description"`
	Price       float64 `json:"price"`
}

type TicketListItemDTO struct {
	Number       string  `json:"ticket_number"`
	FirstInitial string  `json:"first_initial"`
	LastName     string  `json:"last_name"`
	Phone        string  `json:"phone"`
	DateReceived string  `json:"date_received"`
	DueDate      string  `json:"due_date"`
	DueTime      string  `json:"due_time"`
	TotalAmount  float64 `json:"total_amount"`
	ItemCount    int     `json:"item_count"`
}

// ExportRecordDTO is one row of the flat ticket/item export. Item fields
// are empty for a ticket without items.
type ExportRecordDTO struct {
	TicketNumber    string
	FirstInitial    string
	LastName        string
	Phone           string
	DateReceived    string
	DueDate         string
	DueTime         string
	TotalAmount     float64
	ItemType        string
	WorkDescription string
	Price           *float64
}

func ToTicketDTO(t *ticket.Ticket) *TicketDTO {
	if t == nil {
		return nil
	}

	return &TicketDTO{
		ID:           t.ID(),
		Number:       t.Number(),
		FirstInitial: t.FirstInitial(),
		LastName:     t.LastName(),
		Phone:        t.Phone(),
		DateReceived: t.DateReceived(),
		DueDate:      t.DueDate(),
		DueTime:      t.DueTime(),
		TotalAmount:  t.TotalAmount(),
		Items:        mapper.MapSlice(t.Items(), ToLineItemDTO),
		CreatedAt:    t.CreatedAt(),
		UpdatedAt:    t.UpdatedAt(),
	}
}

func ToLineItemDTO(item *ticket.LineItem) LineItemDTO {
	return LineItemDTO{
		ID:          item.ID(),
		Category:    item.Category().String(),
		Description: item.Description(),
		Price:       item.Price(),
	}
}

func ToTicketListItemDTO(t *ticket.Ticket) TicketListItemDTO {
	return TicketListItemDTO{
		Number:       t.Number(),
		FirstInitial: t.FirstInitial(),
		LastName:     t.LastName(),
		Phone:        t.Phone(),
		DateReceived: t.DateReceived(),
		DueDate:      t.DueDate(),
		DueTime:      t.DueTime(),
		TotalAmount:  t.TotalAmount(),
		ItemCount:    len(t.Items()),
	}
}

// ToExportRecords flattens a ticket into one record per item, or a
// single record with empty item fields when it has none.
func ToExportRecords(t *ticket.Ticket) []ExportRecordDTO {
	base := ExportRecordDTO{
		TicketNumber: t.Number(),
		FirstInitial: t.FirstInitial(),
		LastName:     t.LastName(),
		Phone:        t.Phone(),
		DateReceived: t.DateReceived(),
		DueDate:      t.DueDate(),
		DueTime:      t.DueTime(),
		TotalAmount:  t.TotalAmount(),
	}

	items := t.Items()
	if len(items) == 0 {
		return []ExportRecordDTO{base}
	}

	records := make([]ExportRecordDTO, 0, len(items))
	for _, item := range items {
		rec := base
		price := item.Price()
		rec.ItemType = item.Category().String()
		rec.WorkDescription = item.Description()
		rec.Price = &price
		records = append(records, rec)
	}
	return records
}
