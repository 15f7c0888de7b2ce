package usecases

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pinkslip/internal/domain/ticket"
	vo "pinkslip/internal/domain/ticket/valueobjects"
	"pinkslip/internal/shared/errors"
)

func newImportUseCase(store *memStore) *ImportBatchUseCase {
	return NewImportBatchUseCase(store, store, nil, ImportSettings{DefaultAreaCode: "704"}, &mockLogger{})
}

func row(number, category, price string) RawRow {
	return RawRow{
		ColTicketNumber: number,
		ColLastName:     "Smith",
		ColItemType:     category,
		ColPrice:        price,
	}
}

func storedTotalMatchesItems(t *testing.T, store *memStore) {
	t.Helper()
	for number, st := range store.tickets {
		var sum float64
		for _, it := range st.items {
			sum += it.price
		}
		assert.Equal(t, sum, st.total, "total of ticket %s", number)
	}
}

func TestImportBatch_ThreeRowScenario(t *testing.T) {
	store := newMemStore()
	uc := newImportUseCase(store)

	result, err := uc.Execute(context.Background(), ImportBatchCommand{
		Rows: []RawRow{
			row("000123", "shirt", "10"),
			row("000123", "Jeans", "20"),
			row("000123", "Jeans", "20"),
		},
		Source: "scenario.csv",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, result.TicketsCreated)
	assert.Equal(t, 2, result.ItemsImported)
	assert.Equal(t, 1, result.DuplicatesSkipped)
	assert.Equal(t, 0, result.RowsRejected)
	assert.Empty(t, result.Rejections)
	assert.Equal(t, 3, result.RowsTotal)
	assert.NotEmpty(t, result.BatchID)
	assert.Equal(t, "scenario.csv", result.Source)

	st, ok := store.tickets["000123"]
	require.True(t, ok)
	assert.Equal(t, 30.0, st.total)
	assert.Len(t, st.items, 2)
	storedTotalMatchesItems(t, store)
}

func TestImportBatch_Idempotent(t *testing.T) {
	store := newMemStore()
	uc := newImportUseCase(store)
	rows := []RawRow{
		row("1", "Shirt", "10"),
		row("1", "Pants", "15.5"),
		row("2", "t-shirt", "$7"),
		row("3", "Coat", "40"),
	}

	first, err := uc.Execute(context.Background(), ImportBatchCommand{Rows: rows})
	require.NoError(t, err)
	assert.Equal(t, 3, first.TicketsCreated)
	assert.Equal(t, 4, first.ItemsImported)

	afterFirst := store.clone()

	second, err := uc.Execute(context.Background(), ImportBatchCommand{Rows: rows})
	require.NoError(t, err)
	assert.Equal(t, 0, second.TicketsCreated)
	assert.Equal(t, 0, second.ItemsImported)
	assert.Equal(t, 4, second.DuplicatesSkipped)

	if diff := cmp.Diff(afterFirst, store.tickets, cmp.AllowUnexported(storedTicket{}, storedItem{})); diff != "" {
		t.Errorf("store changed on re-import (-first +second):\n%s", diff)
	}
	assert.NotEqual(t, first.BatchID, second.BatchID)
}

func TestImportBatch_FillOnlyMerge(t *testing.T) {
	store := newMemStore()
	uc := newImportUseCase(store)
	ctx := context.Background()

	_, err := uc.Execute(ctx, ImportBatchCommand{Rows: []RawRow{
		row("A1", "Shirt", "10"),
		{ColTicketNumber: "B2", ColLastName: "Jones", ColPhone: "(704) 555-1212", ColItemType: "Tie", ColPrice: "5"},
	}})
	require.NoError(t, err)
	require.Equal(t, "", store.tickets["A1"].details.Phone)

	_, err = uc.Execute(ctx, ImportBatchCommand{Rows: []RawRow{
		{ColTicketNumber: "A1", ColPhone: "7049998888", ColItemType: "Shirt", ColPrice: "10"},
		{ColTicketNumber: "B2", ColLastName: "Changed", ColPhone: "7040000000", ColItemType: "Tie", ColPrice: "5"},
	}})
	require.NoError(t, err)

	assert.Equal(t, "(704) 999-8888", store.tickets["A1"].details.Phone, "empty phone is filled")
	assert.Equal(t, "(704) 555-1212", store.tickets["B2"].details.Phone, "populated phone is preserved")
	assert.Equal(t, "Jones", store.tickets["B2"].details.LastName)
}

func TestImportBatch_NegativePriceRejected(t *testing.T) {
	store := newMemStore()
	uc := newImportUseCase(store)

	result, err := uc.Execute(context.Background(), ImportBatchCommand{Rows: []RawRow{
		row("000777", "Shirt", "-5"),
	}})

	require.NoError(t, err)
	assert.Equal(t, 0, result.TicketsCreated)
	assert.Equal(t, 0, result.ItemsImported)
	assert.Equal(t, 1, result.RowsRejected)
	require.Len(t, result.Rejections, 1)
	assert.Equal(t, RejectNegativePrice, result.Rejections[0].Kind)
	assert.Equal(t, 2, result.Rejections[0].RowNumber)
	assert.Equal(t, "000777", result.Rejections[0].TicketNumber)
	assert.Empty(t, store.tickets)
	assert.Zero(t, store.lookups["000777"], "rejected rows never reach the store")
}

func TestImportBatch_RejectionsOrderedAndBatchContinues(t *testing.T) {
	store := newMemStore()
	uc := newImportUseCase(store)

	result, err := uc.Execute(context.Background(), ImportBatchCommand{Rows: []RawRow{
		row("", "Shirt", "10"),
		row("1", "Shirt", "10"),
		row("1", "spaceship", "10"),
		row("2", "Pants", "abc"),
		row("3", "Dress", "$1,200.00"),
	}})

	require.NoError(t, err)
	assert.Equal(t, 2, result.TicketsCreated)
	assert.Equal(t, 2, result.ItemsImported)
	assert.Equal(t, 3, result.RowsRejected)

	var got []string
	for _, r := range result.Rejections {
		got = append(got, fmt.Sprintf("%d:%s", r.RowNumber, r.Kind))
	}
	assert.Equal(t, []string{"2:MissingIdentifier", "4:InvalidCategory", "5:InvalidPrice"}, got)
	assert.Equal(t, 1200.0, store.tickets["3"].total)
	storedTotalMatchesItems(t, store)
}

func TestImportBatch_OversizedFieldsStayRowLevel(t *testing.T) {
	store := newMemStore()
	uc := newImportUseCase(store)

	accented := row("1", "Shirt", "5")
	accented[ColWorkDescription] = strings.Repeat("é", 300)

	longDescription := row("2", "Dress", "8")
	longDescription[ColWorkDescription] = strings.Repeat("ß", 700)
	longDescription[ColLastName] = strings.Repeat("Ø", 120)
	longDescription[ColPhone] = strings.Repeat("see note ", 10)

	result, err := uc.Execute(context.Background(), ImportBatchCommand{Rows: []RawRow{
		row("0", "Shirt", "5"),
		accented,
		row(strings.Repeat("9", ticket.MaxNumberLength+1), "Shirt", "5"),
		longDescription,
	}})

	require.NoError(t, err, "oversized input must not roll the batch back")
	assert.Equal(t, 3, result.TicketsCreated)
	assert.Equal(t, 3, result.ItemsImported)
	require.Len(t, result.Rejections, 1)
	assert.Equal(t, RejectInvalidIdentifier, result.Rejections[0].Kind)
	assert.Equal(t, 4, result.Rejections[0].RowNumber)

	require.Len(t, store.tickets["1"].items, 1)
	assert.Equal(t, strings.Repeat("é", 300), store.tickets["1"].items[0].description)

	st := store.tickets["2"]
	require.Len(t, st.items, 1)
	assert.Len(t, []rune(st.items[0].description), ticket.MaxDescriptionLength)
	assert.Len(t, []rune(st.details.LastName), ticket.MaxLastNameLength)
	assert.Len(t, []rune(st.details.Phone), ticket.MaxPhoneLength)
	storedTotalMatchesItems(t, store)
}

func TestImportBatch_RowNumbersFollowSourceLines(t *testing.T) {
	store := newMemStore()
	uc := newImportUseCase(store)

	result, err := uc.Execute(context.Background(), ImportBatchCommand{
		Rows: []RawRow{
			row("1", "Shirt", "10"),
			row("2", "Shirt", "-5"),
		},
		Lines: []int{2, 4},
	})

	require.NoError(t, err)
	require.Len(t, result.Rejections, 1)
	assert.Equal(t, 4, result.Rejections[0].RowNumber)
}

func TestImportBatchCommand_RowNumberFallback(t *testing.T) {
	rows := []RawRow{{}, {}}

	assert.Equal(t, 3, ImportBatchCommand{Rows: rows}.rowNumber(1))
	assert.Equal(t, 3, ImportBatchCommand{Rows: rows, Lines: []int{9}}.rowNumber(1), "mismatched lines are ignored")
	assert.Equal(t, 9, ImportBatchCommand{Rows: rows, Lines: []int{2, 9}}.rowNumber(1))
}

func TestImportBatch_TotalsIncludePreExistingItems(t *testing.T) {
	store := newMemStore()
	uc := newImportUseCase(store)
	ctx := context.Background()

	_, err := uc.Execute(ctx, ImportBatchCommand{Rows: []RawRow{row("9", "Suit", "25")}})
	require.NoError(t, err)
	_, err = uc.Execute(ctx, ImportBatchCommand{Rows: []RawRow{row("9", "Tie", "4.5"), row("9", "Suit", "25")}})
	require.NoError(t, err)

	assert.Equal(t, 29.5, store.tickets["9"].total)
	assert.Len(t, store.tickets["9"].items, 2)
	storedTotalMatchesItems(t, store)
}

func TestImportBatch_EmptyBatch(t *testing.T) {
	store := newMemStore()

	result, err := newImportUseCase(store).Execute(context.Background(), ImportBatchCommand{})

	require.NoError(t, err)
	assert.Zero(t, result.RowsTotal)
	assert.NotNil(t, result.Rejections)
}

func TestImportBatch_ForcedConstraintViolationRollsBack(t *testing.T) {
	store := newMemStore()
	saves := 0
	store.beforeSave = func(tk *ticket.Ticket) error {
		saves++
		if saves == 2 {
			return fmt.Errorf("UNIQUE constraint failed: tickets.number")
		}
		return nil
	}
	uc := newImportUseCase(store)

	result, err := uc.Execute(context.Background(), ImportBatchCommand{Rows: []RawRow{
		row("100", "Shirt", "10"),
		row("200", "Pants", "20"),
	}})

	assert.Nil(t, result)
	require.Error(t, err)
	assert.True(t, errors.IsBatchRolledBackError(err))
	assert.Equal(t, http.StatusConflict, errors.GetAppError(err).Code)
	assert.Empty(t, store.tickets, "store must be in its pre-batch state")
}

func TestImportBatch_StoreFailureIsInternal(t *testing.T) {
	repo := &mockTicketRepository{
		SaveFunc: func(ctx context.Context, tk *ticket.Ticket) error {
			return fmt.Errorf("disk I/O error")
		},
	}
	uc := NewImportBatchUseCase(repo, &mockTxRunner{}, nil, ImportSettings{}, &mockLogger{})

	_, err := uc.Execute(context.Background(), ImportBatchCommand{Rows: []RawRow{row("1", "Shirt", "1")}})

	require.Error(t, err)
	assert.True(t, errors.IsBatchRolledBackError(err))
	assert.Equal(t, http.StatusInternalServerError, errors.GetAppError(err).Code)
}

func TestImportBatch_UsesLock(t *testing.T) {
	store := newMemStore()
	lock := &mockImportLocker{}
	uc := NewImportBatchUseCase(store, store, lock, ImportSettings{}, &mockLogger{})

	_, err := uc.Execute(context.Background(), ImportBatchCommand{Rows: []RawRow{row("1", "Shirt", "1")}})

	require.NoError(t, err)
	assert.Equal(t, 1, lock.released)
}

func TestImportBatch_LockUnavailable(t *testing.T) {
	store := newMemStore()
	lock := &mockImportLocker{
		AcquireFunc: func(ctx context.Context) (func(), error) {
			return nil, errors.NewConflictError("another import is in progress")
		},
	}
	uc := NewImportBatchUseCase(store, store, lock, ImportSettings{}, &mockLogger{})

	_, err := uc.Execute(context.Background(), ImportBatchCommand{Rows: []RawRow{row("1", "Shirt", "1")}})

	assert.True(t, errors.IsConflictError(err))
	assert.Empty(t, store.tickets)
}

func TestImportBatch_OnlyChangedTicketsAreUpdated(t *testing.T) {
	var loadedAt time.Time
	item, err := ticket.ReconstructLineItem(2, 1, vo.CategoryShirt, "", 10, loadedAt)
	require.NoError(t, err)
	existing, err := ticket.ReconstructTicket(1, "5", ticket.Details{LastName: "Smith"}, 10,
		[]*ticket.LineItem{item}, loadedAt, loadedAt)
	require.NoError(t, err)

	updates := 0
	repo := &mockTicketRepository{
		GetByNumberFunc: func(ctx context.Context, number string) (*ticket.Ticket, error) {
			return existing, nil
		},
		UpdateFunc: func(ctx context.Context, tk *ticket.Ticket) error {
			updates++
			return nil
		},
	}
	uc := NewImportBatchUseCase(repo, &mockTxRunner{}, nil, ImportSettings{}, &mockLogger{})

	result, err := uc.Execute(context.Background(), ImportBatchCommand{Rows: []RawRow{row("5", "Shirt", "10")}})

	require.NoError(t, err)
	assert.Equal(t, 1, result.DuplicatesSkipped)
	assert.Zero(t, updates, "an untouched ticket is not rewritten")
}
