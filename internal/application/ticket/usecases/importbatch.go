package usecases

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"pinkslip/internal/domain/ticket"
	"pinkslip/internal/shared/errors"
	"pinkslip/internal/shared/logger"
)

type ImportBatchCommand struct {
	Rows []RawRow
	// Lines holds the source line number of each row. When it does not
	// line up with Rows, rows are numbered as if the header were line 1
	// and no line was skipped.
	Lines []int
	// Source names where the rows came from, for logging.
	Source string
}

// ImportResult summarizes a committed batch. Rejections are ordered by
// row.
type ImportResult struct {
	BatchID           string
	Source            string
	RowsTotal         int
	TicketsCreated    int
	ItemsImported     int
	DuplicatesSkipped int
	RowsRejected      int
	Rejections        []Rejection
}

// ImportSettings are the import knobs taken from configuration.
type ImportSettings struct {
	DefaultAreaCode string
}

type ImportBatchUseCase struct {
	ticketRepo ticket.TicketRepository
	txManager  TransactionRunner
	lock       ImportLocker
	settings   ImportSettings
	logger     logger.Interface
}

func NewImportBatchUseCase(
	ticketRepo ticket.TicketRepository,
	txManager TransactionRunner,
	lock ImportLocker,
	settings ImportSettings,
	logger logger.Interface,
) *ImportBatchUseCase {
	return &ImportBatchUseCase{
		ticketRepo: ticketRepo,
		txManager:  txManager,
		lock:       lock,
		settings:   settings,
		logger:     logger,
	}
}

// Execute applies rows as one atomic batch. Row-level problems are
// reported in the result; any persistence failure rolls the whole batch
// back and is returned as a batch_rolled_back error without counts.
func (uc *ImportBatchUseCase) Execute(ctx context.Context, cmd ImportBatchCommand) (*ImportResult, error) {
	batchID := uuid.NewString()
	start := time.Now()
	uc.logger.Infow("executing import batch use case",
		"batch_id", batchID,
		"source", cmd.Source,
		"rows", len(cmd.Rows),
	)

	if uc.lock != nil {
		release, err := uc.lock.Acquire(ctx)
		if err != nil {
			uc.logger.Warnw("failed to acquire import lock", "batch_id", batchID, "error", err)
			return nil, err
		}
		defer release()
	}

	var b *batch
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		b = newBatch(uc.ticketRepo, uc.settings.DefaultAreaCode, uc.logger)
		for i, row := range cmd.Rows {
			if _, _, err := b.applyRow(txCtx, cmd.rowNumber(i), row); err != nil {
				return err
			}
		}
		return b.commit(txCtx)
	})
	if err != nil {
		uc.logger.Errorw("import batch rolled back",
			"batch_id", batchID,
			"source", cmd.Source,
			"error", err,
		)
		return nil, rolledBack(err)
	}

	result := &ImportResult{
		BatchID:           batchID,
		Source:            cmd.Source,
		RowsTotal:         len(cmd.Rows),
		TicketsCreated:    b.ticketsCreated,
		ItemsImported:     b.itemsImported,
		DuplicatesSkipped: b.duplicatesSkipped,
		RowsRejected:      len(b.rejections),
		Rejections:        b.rejections,
	}
	if result.Rejections == nil {
		result.Rejections = []Rejection{}
	}

	uc.logger.Infow("import batch committed",
		"batch_id", batchID,
		"tickets_created", result.TicketsCreated,
		"items_imported", result.ItemsImported,
		"duplicates_skipped", result.DuplicatesSkipped,
		"rows_rejected", result.RowsRejected,
		"duration", time.Since(start),
	)
	return result, nil
}

// rowNumber is the spreadsheet line of Rows[i].
func (cmd ImportBatchCommand) rowNumber(i int) int {
	if len(cmd.Lines) == len(cmd.Rows) && cmd.Lines[i] > 0 {
		return cmd.Lines[i]
	}
	return i + headerRows
}

// rolledBack maps a failed transaction to the single batch-level error.
func rolledBack(err error) error {
	if errors.IsDuplicateError(err) {
		return errors.NewBatchRolledBackError(http.StatusConflict,
			"import rolled back: a ticket number already exists", "no changes were committed")
	}
	return errors.NewBatchRolledBackError(http.StatusInternalServerError,
		"import rolled back: database error", "no changes were committed")
}
