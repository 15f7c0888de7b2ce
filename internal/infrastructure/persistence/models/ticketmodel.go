package models

import "pinkslip/internal/shared/constants"

// TicketModel is the tickets row. Number is the natural key and carries
// the unique index that makes concurrent batches converge.
type TicketModel struct {
	ID           uint    `gorm:"primaryKey"`
	Number       string  `gorm:"uniqueIndex:idx_tickets_number;size:100;not null"`
	FirstInitial string  `gorm:"size:1;not null;default:''"`
	LastName     string  `gorm:"size:100;not null;index"`
	Phone        string  `gorm:"size:50;not null;default:''"`
	DateReceived string  `gorm:"size:30;not null;default:''"`
	DueDate      string  `gorm:"size:30;not null;default:''"`
	DueTime      string  `gorm:"size:20;not null;default:''"`
	TotalAmount  float64 `gorm:"not null;default:0"`
	CreatedAt    int64   `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt    int64   `gorm:"autoUpdateTime:milli;not null"`

	// Note: No foreign key constraints or associations.
	// Items are loaded and cascaded by the repository.
}

func (TicketModel) TableName() string {
	return constants.TableTickets
}

type LineItemModel struct {
	ID          uint    `gorm:"primaryKey"`
	TicketID    uint    `gorm:"not null;index:idx_ticket_items_ticket_id"`
	Category    string  `gorm:"size:100;not null"`
	Description string  `gorm:"size:500;not null;default:''"`
	Price       float64 `gorm:"not null"`
	CreatedAt   int64   `gorm:"autoCreateTime:milli;not null"`
}

func (LineItemModel) TableName() string {
	return constants.TableTicketItems
}
