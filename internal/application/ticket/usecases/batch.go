package usecases

import (
	"context"
	"fmt"

	"pinkslip/internal/domain/ticket"
	"pinkslip/internal/shared/errors"
	"pinkslip/internal/shared/logger"
)

// rowOutcome is what happened to one row fed through a batch.
type rowOutcome int

const (
	outcomeImported rowOutcome = iota
	outcomeDuplicate
	outcomeRejected
)

// batch is the unit of work for one import: the reconciler cache plus the
// running counts. It lives only as long as a single transaction.
type batch struct {
	repo     ticket.TicketRepository
	rec      *reconciler
	areaCode string
	logger   logger.Interface

	ticketsCreated    int
	itemsImported     int
	duplicatesSkipped int
	rejections        []Rejection
}

func newBatch(repo ticket.TicketRepository, areaCode string, log logger.Interface) *batch {
	return &batch{
		repo:     repo,
		rec:      newReconciler(repo),
		areaCode: areaCode,
		logger:   log,
	}
}

// applyRow validates one row and, when it passes, attaches its item to
// the reconciled ticket unless an identical item is already there.
func (b *batch) applyRow(ctx context.Context, rowNumber int, row RawRow) (rowOutcome, *ticket.Ticket, error) {
	vr, rejection := validateRow(rowNumber, row, b.areaCode)
	if rejection != nil {
		b.rejections = append(b.rejections, *rejection)
		b.logger.Debugw("row rejected",
			"row", rejection.RowNumber,
			"ticket_number", rejection.TicketNumber,
			"kind", rejection.Kind,
			"reason", rejection.Reason,
		)
		return outcomeRejected, nil, nil
	}

	tk, created, err := b.rec.obtainOrCreate(ctx, vr.number, vr.details)
	if err != nil {
		return 0, nil, err
	}
	if created {
		b.ticketsCreated++
	}

	if tk.HasItem(vr.category, vr.description, vr.price) {
		b.duplicatesSkipped++
		return outcomeDuplicate, tk, nil
	}

	item, err := ticket.NewLineItem(vr.category, vr.description, vr.price)
	if err != nil {
		return 0, nil, errors.NewValidationError(err.Error())
	}
	if err := tk.AddItem(item); err != nil {
		return 0, nil, fmt.Errorf("failed to attach item to ticket %s: %w", tk.Number(), err)
	}
	b.itemsImported++
	return outcomeImported, tk, nil
}

// commit recomputes every touched ticket's total in one full pass, then
// writes new tickets and changed ones in first-seen order.
func (b *batch) commit(ctx context.Context) error {
	touched := b.rec.touchedTickets()

	for _, tk := range touched {
		tk.RecomputeTotal()
	}

	for _, tk := range touched {
		switch {
		case tk.IsNew():
			if err := b.repo.Save(ctx, tk); err != nil {
				return fmt.Errorf("failed to save ticket %s: %w", tk.Number(), err)
			}
		case tk.HasChanges():
			if err := b.repo.Update(ctx, tk); err != nil {
				return fmt.Errorf("failed to update ticket %s: %w", tk.Number(), err)
			}
		}
	}
	return nil
}
