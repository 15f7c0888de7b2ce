package usecases

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"pinkslip/internal/domain/ticket"
	vo "pinkslip/internal/domain/ticket/valueobjects"
	"pinkslip/internal/shared/biztime"
)

// RawRow is one spreadsheet row keyed by normalized column name.
type RawRow map[string]string

// Column names recognized in an import row.
const (
	ColTicketNumber    = "ticket_number"
	ColFirstInitial    = "first_initial"
	ColLastName        = "last_name"
	ColPhone           = "phone"
	ColItemType        = "item_type"
	ColWorkDescription = "work_description"
	ColPrice           = "price"
	ColDateReceived    = "date_received"
	ColDueDate         = "due_date"
	ColDueTime         = "due_time"

	// Column names used by older spreadsheet exports.
	colLegacyTicketNumber = "slip_number"
	colLegacyCustomerName = "customer_name"
	colLegacyDescription  = "other_item_desc"
)

// headerRows is added to a row's zero-based index to get the line number
// a user sees in the spreadsheet, when the reader supplied none.
const headerRows = 2

// RejectionKind classifies why a row was skipped.
type RejectionKind string

const (
	RejectMissingIdentifier RejectionKind = "MissingIdentifier"
	RejectInvalidIdentifier RejectionKind = "InvalidIdentifier"
	RejectInvalidCategory   RejectionKind = "InvalidCategory"
	RejectInvalidPrice      RejectionKind = "InvalidPrice"
	RejectNegativePrice     RejectionKind = "NegativePrice"
)

// Rejection records a row that failed validation.
type Rejection struct {
	RowNumber    int
	TicketNumber string
	Kind         RejectionKind
	Reason       string
}

// validatedRow is a row that passed every check, with its fields
// normalized.
type validatedRow struct {
	number      string
	details     ticket.Details
	category    vo.Category
	description string
	price       float64
}

// get returns the first non-blank value among keys, trimmed.
func (r RawRow) get(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(r[k]); v != "" {
			return v
		}
	}
	return ""
}

// validateRow runs the row checks in order and stops at the first
// failure. Normalizers for dates, times and phones run only once every
// check has passed.
func validateRow(rowNumber int, row RawRow, areaCode string) (*validatedRow, *Rejection) {
	number := row.get(ColTicketNumber, colLegacyTicketNumber)
	if number == "" {
		return nil, &Rejection{
			RowNumber: rowNumber,
			Kind:      RejectMissingIdentifier,
			Reason:    "missing ticket_number",
		}
	}
	if utf8.RuneCountInString(number) > ticket.MaxNumberLength {
		return nil, &Rejection{
			RowNumber:    rowNumber,
			TicketNumber: truncateRunes(number, 20) + "...",
			Kind:         RejectInvalidIdentifier,
			Reason:       fmt.Sprintf("ticket_number longer than %d characters", ticket.MaxNumberLength),
		}
	}

	rawCategory := row.get(ColItemType)
	category, ok := vo.ResolveCategory(rawCategory)
	if !ok {
		return nil, &Rejection{
			RowNumber:    rowNumber,
			TicketNumber: number,
			Kind:         RejectInvalidCategory,
			Reason:       fmt.Sprintf("invalid category %q; valid categories: %s", rawCategory, vo.CategoryNames()),
		}
	}

	rawPrice := row.get(ColPrice)
	price, err := vo.ParsePrice(vo.NormalizePriceText(rawPrice))
	if err != nil {
		return nil, &Rejection{
			RowNumber:    rowNumber,
			TicketNumber: number,
			Kind:         RejectInvalidPrice,
			Reason:       fmt.Sprintf("invalid price %q", rawPrice),
		}
	}
	if price < 0 {
		return nil, &Rejection{
			RowNumber:    rowNumber,
			TicketNumber: number,
			Kind:         RejectNegativePrice,
			Reason:       fmt.Sprintf("negative price %q", rawPrice),
		}
	}

	return &validatedRow{
		number: number,
		details: ticket.Details{
			FirstInitial: firstInitial(row.get(ColFirstInitial)),
			LastName:     truncateRunes(row.get(ColLastName, colLegacyCustomerName), ticket.MaxLastNameLength),
			Phone:        truncateRunes(vo.NormalizePhone(row.get(ColPhone), areaCode), ticket.MaxPhoneLength),
			DateReceived: biztime.NormalizeDate(row.get(ColDateReceived)),
			DueDate:      biztime.NormalizeDate(row.get(ColDueDate)),
			DueTime:      biztime.NormalizeTime(row.get(ColDueTime)),
		},
		category:    category,
		description: truncateRunes(row.get(ColWorkDescription, colLegacyDescription), ticket.MaxDescriptionLength),
		price:       price,
	}, nil
}

// firstInitial keeps the first letter of s, upper-cased.
func firstInitial(s string) string {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return string(unicode.ToUpper(r))
		}
	}
	return ""
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
