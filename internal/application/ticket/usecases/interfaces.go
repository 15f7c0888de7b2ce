package usecases

import (
	"context"

	"pinkslip/internal/application/ticket/dto"
)

// TransactionRunner runs fn inside one database transaction carried by
// the context handed to fn.
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ImportLocker serializes import batches. Acquire blocks until the lock
// is held or ctx is done; the returned func releases it.
type ImportLocker interface {
	Acquire(ctx context.Context) (release func(), err error)
}

type ImportBatchExecutor interface {
	Execute(ctx context.Context, cmd ImportBatchCommand) (*ImportResult, error)
}

type CreateEntryExecutor interface {
	Execute(ctx context.Context, cmd CreateEntryCommand) (*CreateEntryResult, error)
}

type ListTicketsExecutor interface {
	Execute(ctx context.Context, query ListTicketsQuery) (*ListTicketsResult, error)
}

type GetTicketExecutor interface {
	Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDTO, error)
}

type DeleteTicketExecutor interface {
	Execute(ctx context.Context, cmd DeleteTicketCommand) (*DeleteTicketResult, error)
}

type ExportTicketsExecutor interface {
	Execute(ctx context.Context) ([]dto.ExportRecordDTO, error)
}
