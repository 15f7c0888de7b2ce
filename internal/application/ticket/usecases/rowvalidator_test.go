package usecases

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pinkslip/internal/domain/ticket"
	vo "pinkslip/internal/domain/ticket/valueobjects"
)

func validRow() RawRow {
	return RawRow{
		ColTicketNumber:    "000123",
		ColFirstInitial:    "jane",
		ColLastName:        "Smith",
		ColPhone:           "7041234567",
		ColItemType:        "shirt",
		ColWorkDescription: "starch",
		ColPrice:           "$10.00",
		ColDateReceived:    "2024-03-04",
		ColDueDate:         "3/8/2024",
		ColDueTime:         "17:00",
	}
}

func TestValidateRow_Accepts(t *testing.T) {
	vr, rej := validateRow(2, validRow(), "704")

	require.Nil(t, rej)
	require.NotNil(t, vr)
	assert.Equal(t, "000123", vr.number)
	assert.Equal(t, "J", vr.details.FirstInitial)
	assert.Equal(t, "Smith", vr.details.LastName)
	assert.Equal(t, "(704) 123-4567", vr.details.Phone)
	assert.Equal(t, "03/04/2024", vr.details.DateReceived)
	assert.Equal(t, "03/08/2024", vr.details.DueDate)
	assert.Equal(t, "5:00 PM", vr.details.DueTime)
	assert.Equal(t, vo.CategoryShirt, vr.category)
	assert.Equal(t, "starch", vr.description)
	assert.Equal(t, 10.0, vr.price)
}

func TestValidateRow_LegacyColumns(t *testing.T) {
	row := RawRow{
		"slip_number":     " 0042 ",
		"other_item_desc": "hem",
		ColItemType:       "Pants",
		ColPrice:          "12",
	}

	vr, rej := validateRow(2, row, "704")

	require.Nil(t, rej)
	assert.Equal(t, "0042", vr.number, "leading zeros are kept")
	assert.Equal(t, "hem", vr.description)
	assert.Equal(t, "", vr.details.LastName, "default last name is applied at creation only")
}

func TestValidateRow_LegacyCustomerName(t *testing.T) {
	row := RawRow{
		"slip_number":   "77",
		"customer_name": "Okafor",
		ColItemType:     "Suit",
		ColPrice:        "30",
	}

	vr, rej := validateRow(2, row, "704")

	require.Nil(t, rej)
	assert.Equal(t, "Okafor", vr.details.LastName)

	row[ColLastName] = "Mensah"
	vr, rej = validateRow(2, row, "704")
	require.Nil(t, rej)
	assert.Equal(t, "Mensah", vr.details.LastName, "last_name wins over customer_name")
}

func TestValidateRow_OverlongTicketNumber(t *testing.T) {
	row := validRow()
	row[ColTicketNumber] = strings.Repeat("9", ticket.MaxNumberLength+1)

	vr, rej := validateRow(7, row, "704")

	assert.Nil(t, vr)
	require.NotNil(t, rej)
	assert.Equal(t, RejectInvalidIdentifier, rej.Kind)
	assert.Equal(t, 7, rej.RowNumber)
	assert.Contains(t, rej.Reason, "longer than 100")
}

func TestValidateRow_TruncatesToColumnSizes(t *testing.T) {
	row := validRow()
	row[ColWorkDescription] = strings.Repeat("é", 600)
	row[ColLastName] = strings.Repeat("Ł", 150)
	row[ColPhone] = strings.Repeat("call after five ", 10)

	vr, rej := validateRow(2, row, "704")

	require.Nil(t, rej)
	assert.Len(t, []rune(vr.description), ticket.MaxDescriptionLength)
	assert.Len(t, []rune(vr.details.LastName), ticket.MaxLastNameLength)
	assert.Len(t, []rune(vr.details.Phone), ticket.MaxPhoneLength)

	_, err := ticket.NewLineItem(vr.category, vr.description, vr.price)
	assert.NoError(t, err, "a truncated description is always a valid item")
}

func TestValidateRow_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(RawRow)
		wantKind   RejectionKind
		wantNumber string
		reasonHas  string
	}{
		{
			name:      "missing ticket number",
			mutate:    func(r RawRow) { r[ColTicketNumber] = "   " },
			wantKind:  RejectMissingIdentifier,
			reasonHas: "ticket_number",
		},
		{
			name:       "unknown category",
			mutate:     func(r RawRow) { r[ColItemType] = "xyz123" },
			wantKind:   RejectInvalidCategory,
			wantNumber: "000123",
			reasonHas:  `"xyz123"`,
		},
		{
			name:       "empty category",
			mutate:     func(r RawRow) { r[ColItemType] = "" },
			wantKind:   RejectInvalidCategory,
			wantNumber: "000123",
			reasonHas:  "Shirt, Blouse",
		},
		{
			name:       "empty price",
			mutate:     func(r RawRow) { r[ColPrice] = "" },
			wantKind:   RejectInvalidPrice,
			wantNumber: "000123",
			reasonHas:  "invalid price",
		},
		{
			name:       "unparseable price",
			mutate:     func(r RawRow) { r[ColPrice] = "ten" },
			wantKind:   RejectInvalidPrice,
			wantNumber: "000123",
			reasonHas:  `"ten"`,
		},
		{
			name:       "negative price",
			mutate:     func(r RawRow) { r[ColPrice] = "-5" },
			wantKind:   RejectNegativePrice,
			wantNumber: "000123",
			reasonHas:  `"-5"`,
		},
		{
			name: "category checked before price",
			mutate: func(r RawRow) {
				r[ColItemType] = "hat"
				r[ColPrice] = "-5"
			},
			wantKind:   RejectInvalidCategory,
			wantNumber: "000123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := validRow()
			tt.mutate(row)

			vr, rej := validateRow(5, row, "704")

			assert.Nil(t, vr)
			require.NotNil(t, rej)
			assert.Equal(t, tt.wantKind, rej.Kind)
			assert.Equal(t, 5, rej.RowNumber)
			assert.Equal(t, tt.wantNumber, rej.TicketNumber)
			assert.Contains(t, rej.Reason, tt.reasonHas)
		})
	}
}

func TestValidateRow_NormalizerFallbacksNeverReject(t *testing.T) {
	row := validRow()
	row[ColPhone] = "ask front desk"
	row[ColDateReceived] = "sometime last week"
	row[ColDueTime] = "whenever"

	vr, rej := validateRow(2, row, "704")

	require.Nil(t, rej)
	assert.Equal(t, "ask front desk", vr.details.Phone)
	assert.Equal(t, "sometime l", vr.details.DateReceived)
	assert.Equal(t, "", vr.details.DueTime)
}

func TestFirstInitial(t *testing.T) {
	assert.Equal(t, "J", firstInitial("jane"))
	assert.Equal(t, "J", firstInitial(" J."))
	assert.Equal(t, "É", firstInitial("émile"))
	assert.Equal(t, "", firstInitial("  "))
}
