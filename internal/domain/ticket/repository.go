package ticket

import "context"

// TicketRepository persists tickets together with their line items.
// Implementations join the transaction carried by ctx when present.
type TicketRepository interface {
	// GetByNumber loads a ticket and its items. A missing ticket yields a
	// not-found AppError.
	GetByNumber(ctx context.Context, number string) (*Ticket, error)
	// Save inserts a new ticket and all of its items.
	Save(ctx context.Context, ticket *Ticket) error
	// Update writes the ticket's fields and total and inserts its pending
	// items.
	Update(ctx context.Context, ticket *Ticket) error
	// Delete removes the ticket and its items.
	Delete(ctx context.Context, number string) error
	List(ctx context.Context, filter TicketFilter) ([]*Ticket, int64, error)
	// ListAll returns every ticket with items, ordered by number.
	ListAll(ctx context.Context) ([]*Ticket, error)
}

type TicketFilter struct {
	Query    string
	Page     int
	PageSize int
}
