package migration

import (
	"pinkslip/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.TicketModel{},
		&models.LineItemModel{},
	}
}
