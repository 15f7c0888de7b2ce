package dto

import (
	"strconv"

	ticketdto "pinkslip/internal/application/ticket/dto"
	"pinkslip/internal/application/ticket/usecases"
)

// CreateEntryRequest represents HTTP request to enter one ticket line by
// hand. Price is text so "$12.50" is accepted the same way as on import.
type CreateEntryRequest struct {
	TicketNumber    string `json:"ticket_number" validate:"required,max=100"`
	FirstInitial    string `json:"first_initial" validate:"max=20"`
	LastName        string `json:"last_name" validate:"max=100"`
	Phone           string `json:"phone" validate:"max=50"`
	ItemType        string `json:"item_type" validate:"required,max=100"`
	WorkDescription string `json:"work_description" validate:"max=2000"`
	Price           string `json:"price" validate:"required,max=50"`
	DateReceived    string `json:"date_received" validate:"max=50"`
	DueDate         string `json:"due_date" validate:"max=50"`
	DueTime         string `json:"due_time" validate:"max=50"`
}

func (r *CreateEntryRequest) ToCommand() usecases.CreateEntryCommand {
	return usecases.CreateEntryCommand{
		TicketNumber:    r.TicketNumber,
		FirstInitial:    r.FirstInitial,
		LastName:        r.LastName,
		Phone:           r.Phone,
		ItemType:        r.ItemType,
		WorkDescription: r.WorkDescription,
		Price:           r.Price,
		DateReceived:    r.DateReceived,
		DueDate:         r.DueDate,
		DueTime:         r.DueTime,
	}
}

// CreateEntryResponse is returned by manual entry.
type CreateEntryResponse struct {
	TicketCreated bool                 `json:"ticket_created"`
	Ticket        *ticketdto.TicketDTO `json:"ticket"`
}

// ImportSummaryResponse is the JSON form of a committed import batch.
type ImportSummaryResponse struct {
	BatchID           string              `json:"batch_id"`
	Source            string              `json:"source"`
	RowsTotal         int                 `json:"rows_total"`
	TicketsCreated    int                 `json:"tickets_created"`
	ItemsImported     int                 `json:"items_imported"`
	DuplicatesSkipped int                 `json:"duplicates_skipped"`
	RowsRejected      int                 `json:"rows_rejected"`
	Rejections        []RejectionResponse `json:"rejections"`
}

type RejectionResponse struct {
	Row          int    `json:"row"`
	TicketNumber string `json:"ticket_number,omitempty"`
	Kind         string `json:"kind"`
	Reason       string `json:"reason"`
}

func ToImportSummaryResponse(result *usecases.ImportResult) *ImportSummaryResponse {
	rejections := make([]RejectionResponse, len(result.Rejections))
	for i, r := range result.Rejections {
		rejections[i] = RejectionResponse{
			Row:          r.RowNumber,
			TicketNumber: r.TicketNumber,
			Kind:         string(r.Kind),
			Reason:       r.Reason,
		}
	}

	return &ImportSummaryResponse{
		BatchID:           result.BatchID,
		Source:            result.Source,
		RowsTotal:         result.RowsTotal,
		TicketsCreated:    result.TicketsCreated,
		ItemsImported:     result.ItemsImported,
		DuplicatesSkipped: result.DuplicatesSkipped,
		RowsRejected:      result.RowsRejected,
		Rejections:        rejections,
	}
}

// RejectionReportHeader and RejectionReportRows lay out the CSV rejection
// report.
var RejectionReportHeader = []string{"row", "ticket_number", "kind", "reason"}

func RejectionReportRows(rejections []usecases.Rejection) [][]string {
	rows := make([][]string, len(rejections))
	for i, r := range rejections {
		rows[i] = []string{strconv.Itoa(r.RowNumber), r.TicketNumber, string(r.Kind), r.Reason}
	}
	return rows
}

// ExportHeader uses the import column names, so an export can be imported
// again unchanged.
var ExportHeader = []string{
	usecases.ColTicketNumber,
	usecases.ColFirstInitial,
	usecases.ColLastName,
	usecases.ColPhone,
	usecases.ColDateReceived,
	usecases.ColDueDate,
	usecases.ColDueTime,
	"total_amount",
	usecases.ColItemType,
	usecases.ColWorkDescription,
	usecases.ColPrice,
}

func ExportRows(records []ticketdto.ExportRecordDTO) [][]string {
	rows := make([][]string, len(records))
	for i, r := range records {
		price := ""
		if r.Price != nil {
			price = formatAmount(*r.Price)
		}
		rows[i] = []string{
			r.TicketNumber,
			r.FirstInitial,
			r.LastName,
			r.Phone,
			r.DateReceived,
			r.DueDate,
			r.DueTime,
			formatAmount(r.TotalAmount),
			r.ItemType,
			r.WorkDescription,
			price,
		}
	}
	return rows
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
