package http

import (
	"pinkslip/internal/infrastructure/spreadsheet"
	"pinkslip/internal/interfaces/http/handlers"
	tickethandlers "pinkslip/internal/interfaces/http/handlers/ticket"
)

// allHandlers holds the HTTP handler instances registered on the router.
type allHandlers struct {
	healthHandler *handlers.HealthHandler
	ticketHandler *tickethandlers.TicketHandler
	importHandler *tickethandlers.ImportHandler
}

func (c *Container) initHandlers() error {
	reader, err := spreadsheet.NewReader(c.cfg.Import.SourceEncoding)
	if err != nil {
		return err
	}

	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}

	c.hdlrs = &allHandlers{
		healthHandler: handlers.NewHealthHandler(sqlDB),
		ticketHandler: tickethandlers.NewTicketHandler(
			c.ucs.createEntryUC,
			c.ucs.listTicketsUC,
			c.ucs.getTicketUC,
			c.ucs.deleteTicketUC,
			c.ucs.exportTicketsUC,
			c.log,
		),
		importHandler: tickethandlers.NewImportHandler(
			c.ucs.importBatchUC,
			reader,
			c.cfg.Import.MaxUploadBytes(),
			c.log,
		),
	}
	return nil
}
