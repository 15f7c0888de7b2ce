package usecases

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"pinkslip/internal/domain/ticket"
	vo "pinkslip/internal/domain/ticket/valueobjects"
	"pinkslip/internal/shared/errors"
	"pinkslip/internal/shared/logger"
)

type mockTicketRepository struct {
	GetByNumberFunc func(ctx context.Context, number string) (*ticket.Ticket, error)
	SaveFunc        func(ctx context.Context, t *ticket.Ticket) error
	UpdateFunc      func(ctx context.Context, t *ticket.Ticket) error
	DeleteFunc      func(ctx context.Context, number string) error
	ListFunc        func(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error)
	ListAllFunc     func(ctx context.Context) ([]*ticket.Ticket, error)
}

func (m *mockTicketRepository) GetByNumber(ctx context.Context, number string) (*ticket.Ticket, error) {
	if m.GetByNumberFunc != nil {
		return m.GetByNumberFunc(ctx, number)
	}
	return nil, errors.NewNotFoundError("ticket not found")
}

func (m *mockTicketRepository) Save(ctx context.Context, t *ticket.Ticket) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) Delete(ctx context.Context, number string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, number)
	}
	return nil
}

func (m *mockTicketRepository) List(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockTicketRepository) ListAll(ctx context.Context) ([]*ticket.Ticket, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	return nil, nil
}

// mockTxRunner runs fn directly; it has no rollback of its own.
type mockTxRunner struct {
	calls int
}

func (m *mockTxRunner) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type mockImportLocker struct {
	AcquireFunc func(ctx context.Context) (func(), error)
	released    int
}

func (m *mockImportLocker) Acquire(ctx context.Context) (func(), error) {
	if m.AcquireFunc != nil {
		return m.AcquireFunc(ctx)
	}
	return func() { m.released++ }, nil
}

type mockLogger struct {
	mu       sync.Mutex
	messages []string
}

func (m *mockLogger) record(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
}

func (m *mockLogger) Messages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.messages...)
}

func (m *mockLogger) Debug(msg string, args ...any) { m.record(msg) }
func (m *mockLogger) Info(msg string, args ...any) { m.record(msg) }
func (m *mockLogger) Warn(msg string, args ...any) { m.record(msg) }
func (m *mockLogger) Error(msg string, args ...any) { m.record(msg) }
func (m *mockLogger) With(args ...any) logger.Interface { return m }
func (m *mockLogger) Named(name string) logger.Interface { return m }
func (m *mockLogger) Debugw(msg string, keysAndValues ...interface{}) { m.record(msg) }
func (m *mockLogger) Infow(msg string, keysAndValues ...interface{}) { m.record(msg) }
func (m *mockLogger) Warnw(msg string, keysAndValues ...interface{}) { m.record(msg) }
func (m *mockLogger) Errorw(msg string, keysAndValues ...interface{}) { m.record(msg) }

// memStore is an in-memory TicketRepository and TransactionRunner.
// Entities are copied in and out so the store only changes through its
// methods, and a failed transaction restores the previous state.
type memStore struct {
	tickets map[string]storedTicket
	nextID  uint

	lookups map[string]int
	// beforeSave, when set, runs ahead of every Save and may fail it.
	beforeSave func(t *ticket.Ticket) error
}

type storedTicket struct {
	id      uint
	number  string
	details ticket.Details
	total   float64
	items   []storedItem
}

type storedItem struct {
	id          uint
	category    vo.Category
	description string
	price       float64
}

func newMemStore() *memStore {
	return &memStore{
		tickets: make(map[string]storedTicket),
		lookups: make(map[string]int),
	}
}

func (s *memStore) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	snapshot := s.clone()
	nextID := s.nextID
	if err := fn(ctx); err != nil {
		s.tickets = snapshot
		s.nextID = nextID
		return err
	}
	return nil
}

func (s *memStore) clone() map[string]storedTicket {
	out := make(map[string]storedTicket, len(s.tickets))
	for k, v := range s.tickets {
		v.items = append([]storedItem(nil), v.items...)
		out[k] = v
	}
	return out
}

func (s *memStore) GetByNumber(ctx context.Context, number string) (*ticket.Ticket, error) {
	s.lookups[number]++
	st, ok := s.tickets[number]
	if !ok {
		return nil, errors.NewNotFoundError("ticket not found", number)
	}
	return st.toEntity()
}

func (s *memStore) Save(ctx context.Context, t *ticket.Ticket) error {
	if s.beforeSave != nil {
		if err := s.beforeSave(t); err != nil {
			return err
		}
	}
	if _, exists := s.tickets[t.Number()]; exists {
		return fmt.Errorf("UNIQUE constraint failed: tickets.number")
	}
	s.nextID++
	if err := t.SetID(s.nextID); err != nil {
		return err
	}
	st := storedTicket{id: t.ID(), number: t.Number()}
	s.tickets[t.Number()] = st
	return s.write(t)
}

func (s *memStore) Update(ctx context.Context, t *ticket.Ticket) error {
	if _, exists := s.tickets[t.Number()]; !exists {
		return errors.NewNotFoundError("ticket not found", t.Number())
	}
	return s.write(t)
}

func (s *memStore) write(t *ticket.Ticket) error {
	st := s.tickets[t.Number()]
	st.details = t.Details()
	st.total = t.TotalAmount()
	for _, item := range t.PendingItems() {
		s.nextID++
		if err := item.SetID(s.nextID); err != nil {
			return err
		}
		st.items = append(st.items, storedItem{
			id:          item.ID(),
			category:    item.Category(),
			description: item.Description(),
			price:       item.Price(),
		})
	}
	s.tickets[t.Number()] = st
	t.MarkPersisted()
	return nil
}

func (s *memStore) Delete(ctx context.Context, number string) error {
	if _, ok := s.tickets[number]; !ok {
		return errors.NewNotFoundError("ticket not found", number)
	}
	delete(s.tickets, number)
	return nil
}

func (s *memStore) List(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	all, err := s.ListAll(ctx)
	if err != nil {
		return nil, 0, err
	}
	var matched []*ticket.Ticket
	for _, t := range all {
		if filter.Query == "" || strings.Contains(t.Number(), filter.Query) ||
			strings.Contains(t.LastName(), filter.Query) || strings.Contains(t.Phone(), filter.Query) {
			matched = append(matched, t)
		}
	}
	total := int64(len(matched))
	start := (filter.Page - 1) * filter.PageSize
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (s *memStore) ListAll(ctx context.Context) ([]*ticket.Ticket, error) {
	numbers := make([]string, 0, len(s.tickets))
	for n := range s.tickets {
		numbers = append(numbers, n)
	}
	sort.Strings(numbers)

	out := make([]*ticket.Ticket, 0, len(numbers))
	for _, n := range numbers {
		t, err := s.tickets[n].toEntity()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func (st storedTicket) toEntity() (*ticket.Ticket, error) {
	now := time.Now().UTC()
	items := make([]*ticket.LineItem, 0, len(st.items))
	for _, si := range st.items {
		item, err := ticket.ReconstructLineItem(si.id, st.id, si.category, si.description, si.price, now)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return ticket.ReconstructTicket(st.id, st.number, st.details, st.total, items, now, now)
}
