package usecases

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pinkslip/internal/domain/ticket"
	"pinkslip/internal/shared/constants"
	"pinkslip/internal/shared/errors"
)

func seedStore(t *testing.T) *memStore {
	t.Helper()
	store := newMemStore()
	_, err := newImportUseCase(store).Execute(context.Background(), ImportBatchCommand{Rows: []RawRow{
		{ColTicketNumber: "000200", ColLastName: "Jones", ColPhone: "7045550000", ColItemType: "Coat", ColPrice: "30"},
		row("000100", "Shirt", "10"),
		row("000100", "Pants", "12"),
		{ColTicketNumber: "000300", ColLastName: "Garcia", ColItemType: "Tie", ColPrice: "0"},
	}})
	require.NoError(t, err)
	return store
}

func TestListTickets(t *testing.T) {
	store := seedStore(t)
	uc := NewListTicketsUseCase(store, &mockLogger{})

	result, err := uc.Execute(context.Background(), ListTicketsQuery{})

	require.NoError(t, err)
	assert.Equal(t, int64(3), result.Total)
	assert.Equal(t, constants.DefaultPage, result.Page)
	assert.Equal(t, constants.DefaultPageSize, result.PageSize)
	require.Len(t, result.Tickets, 3)
	assert.Equal(t, "000100", result.Tickets[0].Number)
	assert.Equal(t, 2, result.Tickets[0].ItemCount)
	assert.Equal(t, 22.0, result.Tickets[0].TotalAmount)
}

func TestListTickets_Search(t *testing.T) {
	store := seedStore(t)
	uc := NewListTicketsUseCase(store, &mockLogger{})

	byName, err := uc.Execute(context.Background(), ListTicketsQuery{Search: " Jones "})
	require.NoError(t, err)
	require.Len(t, byName.Tickets, 1)
	assert.Equal(t, "000200", byName.Tickets[0].Number)

	byPhone, err := uc.Execute(context.Background(), ListTicketsQuery{Search: "555-0000"})
	require.NoError(t, err)
	assert.Len(t, byPhone.Tickets, 1)

	none, err := uc.Execute(context.Background(), ListTicketsQuery{Search: "nobody"})
	require.NoError(t, err)
	assert.NotNil(t, none.Tickets)
	assert.Empty(t, none.Tickets)
}

func TestListTickets_RepositoryError(t *testing.T) {
	repo := &mockTicketRepository{
		ListFunc: func(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
			return nil, 0, fmt.Errorf("boom")
		},
	}

	_, err := NewListTicketsUseCase(repo, &mockLogger{}).Execute(context.Background(), ListTicketsQuery{})

	assert.Equal(t, errors.ErrorTypeInternal, errors.GetAppError(err).Type)
}

func TestGetTicket(t *testing.T) {
	store := seedStore(t)
	uc := NewGetTicketUseCase(store, &mockLogger{})

	got, err := uc.Execute(context.Background(), GetTicketQuery{Number: "000100"})
	require.NoError(t, err)
	assert.Equal(t, "Smith", got.LastName)
	assert.Len(t, got.Items, 2)

	_, err = uc.Execute(context.Background(), GetTicketQuery{Number: "999"})
	assert.True(t, errors.IsNotFoundError(err))

	_, err = uc.Execute(context.Background(), GetTicketQuery{Number: " "})
	assert.True(t, errors.IsValidationError(err))
}

func TestDeleteTicket(t *testing.T) {
	store := seedStore(t)
	uc := NewDeleteTicketUseCase(store, store, &mockLogger{})

	result, err := uc.Execute(context.Background(), DeleteTicketCommand{Number: "000100"})
	require.NoError(t, err)
	assert.Equal(t, "000100", result.Number)
	assert.NotContains(t, store.tickets, "000100")

	_, err = uc.Execute(context.Background(), DeleteTicketCommand{Number: "000100"})
	assert.True(t, errors.IsNotFoundError(err))

	_, err = uc.Execute(context.Background(), DeleteTicketCommand{})
	assert.True(t, errors.IsValidationError(err))
}

func TestExportTickets(t *testing.T) {
	store := seedStore(t)
	// A ticket without items still appears once.
	empty, err := ticket.NewTicket("000050", ticket.Details{LastName: "Bare"})
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), empty))

	records, err := NewExportTicketsUseCase(store, &mockLogger{}).Execute(context.Background())

	require.NoError(t, err)
	require.Len(t, records, 5)

	var numbers []string
	for _, r := range records {
		numbers = append(numbers, r.TicketNumber)
	}
	assert.Equal(t, []string{"000050", "000100", "000100", "000200", "000300"}, numbers)
	assert.Nil(t, records[0].Price)
	assert.Equal(t, "", records[0].ItemType)
	require.NotNil(t, records[1].Price)
	assert.Equal(t, "Shirt", records[1].ItemType)
	assert.Equal(t, 10.0, *records[1].Price)
	assert.Equal(t, 22.0, records[2].TotalAmount)
}
