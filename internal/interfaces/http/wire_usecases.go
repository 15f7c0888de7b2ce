package http

import (
	"pinkslip/internal/application/ticket/usecases"
)

// allUseCases holds all use case instances used by the application.
type allUseCases struct {
	importBatchUC   *usecases.ImportBatchUseCase
	createEntryUC   *usecases.CreateEntryUseCase
	listTicketsUC   *usecases.ListTicketsUseCase
	getTicketUC     *usecases.GetTicketUseCase
	deleteTicketUC  *usecases.DeleteTicketUseCase
	exportTicketsUC *usecases.ExportTicketsUseCase
}

func (c *Container) initUseCases() {
	settings := usecases.ImportSettings{DefaultAreaCode: c.cfg.Import.DefaultAreaCode}
	repo := c.repos.ticketRepo
	tx := c.repos.txManager

	c.ucs = &allUseCases{
		importBatchUC:   usecases.NewImportBatchUseCase(repo, tx, c.importLock, settings, c.log.Named("import")),
		createEntryUC:   usecases.NewCreateEntryUseCase(repo, tx, settings, c.log.Named("entry")),
		listTicketsUC:   usecases.NewListTicketsUseCase(repo, c.log),
		getTicketUC:     usecases.NewGetTicketUseCase(repo, c.log),
		deleteTicketUC:  usecases.NewDeleteTicketUseCase(repo, tx, c.log),
		exportTicketsUC: usecases.NewExportTicketsUseCase(repo, c.log),
	}
}
