package ticket

import (
	"fmt"
	"time"
	"unicode/utf8"

	vo "pinkslip/internal/domain/ticket/valueobjects"
)

// UnknownLastName is stored when a ticket is created without a last name.
const UnknownLastName = "Unknown"

// Field limits in characters; they match the column sizes.
const (
	MaxNumberLength      = 100
	MaxLastNameLength    = 100
	MaxPhoneLength       = 50
	MaxDescriptionLength = 500
)

// Details are the customer and schedule fields carried by a ticket.
// Empty strings mean "not supplied".
type Details struct {
	FirstInitial string
	LastName     string
	Phone        string
	DateReceived string
	DueDate      string
	DueTime      string
}

// Ticket is a drop-off service ticket identified by its externally
// assigned number. Its total always equals the sum of its item prices
// once RecomputeTotal has run.
type Ticket struct {
	id           uint
	number       string
	firstInitial string
	lastName     string
	phone        string
	dateReceived string
	dueDate      string
	dueTime      string
	totalAmount  float64
	items        []*LineItem
	createdAt    time.Time
	updatedAt    time.Time
	dirty        bool
}

func NewTicket(number string, details Details) (*Ticket, error) {
	if len(number) == 0 {
		return nil, fmt.Errorf("ticket number is required")
	}
	if utf8.RuneCountInString(number) > MaxNumberLength {
		return nil, fmt.Errorf("ticket number exceeds maximum length of %d characters", MaxNumberLength)
	}

	lastName := details.LastName
	if lastName == "" {
		lastName = UnknownLastName
	}

	now := time.Now().UTC()
	return &Ticket{
		number:       number,
		firstInitial: details.FirstInitial,
		lastName:     lastName,
		phone:        details.Phone,
		dateReceived: details.DateReceived,
		dueDate:      details.DueDate,
		dueTime:      details.DueTime,
		items:        []*LineItem{},
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func ReconstructTicket(
	id uint,
	number string,
	details Details,
	totalAmount float64,
	items []*LineItem,
	createdAt, updatedAt time.Time,
) (*Ticket, error) {
	if id == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if len(number) == 0 {
		return nil, fmt.Errorf("ticket number is required")
	}
	if items == nil {
		items = []*LineItem{}
	}

	return &Ticket{
		id:           id,
		number:       number,
		firstInitial: details.FirstInitial,
		lastName:     details.LastName,
		phone:        details.Phone,
		dateReceived: details.DateReceived,
		dueDate:      details.DueDate,
		dueTime:      details.DueTime,
		totalAmount:  totalAmount,
		items:        items,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (t *Ticket) ID() uint {
	return t.id
}

func (t *Ticket) Number() string {
	return t.number
}

func (t *Ticket) FirstInitial() string {
	return t.firstInitial
}

func (t *Ticket) LastName() string {
	return t.lastName
}

func (t *Ticket) Phone() string {
	return t.phone
}

func (t *Ticket) DateReceived() string {
	return t.dateReceived
}

func (t *Ticket) DueDate() string {
	return t.dueDate
}

func (t *Ticket) DueTime() string {
	return t.dueTime
}

func (t *Ticket) TotalAmount() float64 {
	return t.totalAmount
}

func (t *Ticket) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Ticket) UpdatedAt() time.Time {
	return t.updatedAt
}

func (t *Ticket) Details() Details {
	return Details{
		FirstInitial: t.firstInitial,
		LastName:     t.lastName,
		Phone:        t.phone,
		DateReceived: t.dateReceived,
		DueDate:      t.dueDate,
		DueTime:      t.dueTime,
	}
}

func (t *Ticket) Items() []*LineItem {
	itemsCopy := make([]*LineItem, len(t.items))
	copy(itemsCopy, t.items)
	return itemsCopy
}

// PendingItems returns the items added since the ticket was loaded or
// last saved.
func (t *Ticket) PendingItems() []*LineItem {
	var pending []*LineItem
	for _, item := range t.items {
		if item.IsNew() {
			pending = append(pending, item)
		}
	}
	return pending
}

// IsNew reports whether the ticket has never been persisted.
func (t *Ticket) IsNew() bool {
	return t.id == 0
}

// HasChanges reports whether the persisted row or its items are stale.
func (t *Ticket) HasChanges() bool {
	return t.IsNew() || t.dirty || len(t.PendingItems()) > 0
}

func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	for _, item := range t.items {
		item.ticketID = id
	}
	return nil
}

// MarkPersisted clears change tracking after a successful write.
func (t *Ticket) MarkPersisted() {
	t.dirty = false
}

// FillEmpty copies each non-empty field of d onto the ticket where the
// ticket's own field is empty. Populated fields are never overwritten.
// It reports whether anything changed.
func (t *Ticket) FillEmpty(d Details) bool {
	changed := false
	fill := func(dst *string, src string) {
		if *dst == "" && src != "" {
			*dst = src
			changed = true
		}
	}

	fill(&t.firstInitial, d.FirstInitial)
	fill(&t.lastName, d.LastName)
	fill(&t.phone, d.Phone)
	fill(&t.dateReceived, d.DateReceived)
	fill(&t.dueDate, d.DueDate)
	fill(&t.dueTime, d.DueTime)

	if changed {
		t.touch()
	}
	return changed
}

// HasItem reports whether an item with the same category, description
// and price is already attached. Prices compare exactly.
func (t *Ticket) HasItem(category vo.Category, description string, price float64) bool {
	for _, item := range t.items {
		if item.Matches(category, description, price) {
			return true
		}
	}
	return false
}

func (t *Ticket) AddItem(item *LineItem) error {
	if item == nil {
		return fmt.Errorf("line item cannot be nil")
	}
	if !item.IsNew() && item.ticketID != t.id {
		return fmt.Errorf("line item belongs to another ticket")
	}

	item.ticketID = t.id
	t.items = append(t.items, item)
	t.updatedAt = time.Now().UTC()
	return nil
}

// RecomputeTotal sets the total to the sum of all item prices.
func (t *Ticket) RecomputeTotal() {
	var total float64
	for _, item := range t.items {
		total += item.Price()
	}
	if total != t.totalAmount {
		t.totalAmount = total
		t.touch()
	}
}

func (t *Ticket) touch() {
	t.dirty = true
	t.updatedAt = time.Now().UTC()
}
