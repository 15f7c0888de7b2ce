package usecases

import (
	"context"
	"fmt"

	"pinkslip/internal/domain/ticket"
	"pinkslip/internal/shared/errors"
)

// reconciler resolves ticket numbers to tickets for the lifetime of one
// batch. The batch-local map is consulted first, so the repository is
// queried at most once per distinct number.
type reconciler struct {
	repo    ticket.TicketRepository
	tickets map[string]*ticket.Ticket
	touched []*ticket.Ticket
}

func newReconciler(repo ticket.TicketRepository) *reconciler {
	return &reconciler{
		repo:    repo,
		tickets: make(map[string]*ticket.Ticket),
	}
}

// obtainOrCreate returns the ticket for number, creating it when neither
// the batch nor the store knows it. Existing tickets receive a fill-only
// merge of details. created reports whether a new ticket was built.
func (r *reconciler) obtainOrCreate(ctx context.Context, number string, details ticket.Details) (tk *ticket.Ticket, created bool, err error) {
	if cached, ok := r.tickets[number]; ok {
		cached.FillEmpty(details)
		return cached, false, nil
	}

	existing, err := r.repo.GetByNumber(ctx, number)
	switch {
	case err == nil && existing != nil:
		existing.FillEmpty(details)
		r.remember(number, existing)
		return existing, false, nil
	case err != nil && !errors.IsNotFoundError(err):
		return nil, false, fmt.Errorf("failed to look up ticket %s: %w", number, err)
	}

	tk, err = ticket.NewTicket(number, details)
	if err != nil {
		return nil, false, errors.NewValidationError(err.Error())
	}
	r.remember(number, tk)
	return tk, true, nil
}

func (r *reconciler) remember(number string, tk *ticket.Ticket) {
	r.tickets[number] = tk
	r.touched = append(r.touched, tk)
}

// touchedTickets returns every ticket the batch has seen, in first-seen
// order.
func (r *reconciler) touchedTickets() []*ticket.Ticket {
	return r.touched
}
