package ticket

import (
	"fmt"
	"math"
	"time"
	"unicode/utf8"

	vo "pinkslip/internal/domain/ticket/valueobjects"
)

// LineItem is one garment on a ticket. Items are immutable once created.
type LineItem struct {
	id          uint
	ticketID    uint
	category    vo.Category
	description string
	price       float64
	createdAt   time.Time
}

func NewLineItem(category vo.Category, description string, price float64) (*LineItem, error) {
	if !category.IsValid() {
		return nil, fmt.Errorf("invalid category: %s", category)
	}
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return nil, fmt.Errorf("description exceeds maximum length of %d characters", MaxDescriptionLength)
	}
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return nil, fmt.Errorf("price must be a finite number")
	}
	if price < 0 {
		return nil, fmt.Errorf("price cannot be negative")
	}

	return &LineItem{
		category:    category,
		description: description,
		price:       price,
		createdAt:   time.Now().UTC(),
	}, nil
}

func ReconstructLineItem(
	id uint,
	ticketID uint,
	category vo.Category,
	description string,
	price float64,
	createdAt time.Time,
) (*LineItem, error) {
	if id == 0 {
		return nil, fmt.Errorf("line item ID cannot be zero")
	}
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}

	return &LineItem{
		id:          id,
		ticketID:    ticketID,
		category:    category,
		description: description,
		price:       price,
		createdAt:   createdAt,
	}, nil
}

func (i *LineItem) ID() uint {
	return i.id
}

func (i *LineItem) TicketID() uint {
	return i.ticketID
}

func (i *LineItem) Category() vo.Category {
	return i.category
}

func (i *LineItem) Description() string {
	return i.description
}

func (i *LineItem) Price() float64 {
	return i.price
}

func (i *LineItem) CreatedAt() time.Time {
	return i.createdAt
}

func (i *LineItem) IsNew() bool {
	return i.id == 0
}

func (i *LineItem) SetID(id uint) error {
	if i.id != 0 {
		return fmt.Errorf("line item ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("line item ID cannot be zero")
	}
	i.id = id
	return nil
}

// Matches reports structural identity: same category, same description
// (empty equals empty) and exactly the same price.
func (i *LineItem) Matches(category vo.Category, description string, price float64) bool {
	return i.category == category && i.description == description && i.price == price
}
