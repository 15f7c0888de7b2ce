package http

import (
	"pinkslip/internal/infrastructure/repository"
	"pinkslip/internal/shared/db"
)

// repositories holds the stores and the unit of work shared by use cases.
type repositories struct {
	ticketRepo *repository.TicketRepository
	txManager  *db.TransactionManager
}

func (c *Container) initRepositories() {
	c.repos = &repositories{
		ticketRepo: repository.NewTicketRepository(c.db),
		txManager:  db.NewTransactionManager(c.db),
	}
}
