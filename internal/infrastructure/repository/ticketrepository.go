package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"pinkslip/internal/domain/ticket"
	"pinkslip/internal/infrastructure/persistence/mappers"
	"pinkslip/internal/infrastructure/persistence/models"
	db "pinkslip/internal/shared/db"
	"pinkslip/internal/shared/errors"
)

// TicketRepository stores tickets in the tickets table and their items in
// ticket_items. Every method joins the transaction carried by ctx.
type TicketRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *TicketRepository) GetByNumber(ctx context.Context, number string) (*ticket.Ticket, error) {
	var model models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("number = ?", number).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("ticket not found", number)
		}
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}

	items, err := r.loadItems(tx, []uint{model.ID})
	if err != nil {
		return nil, err
	}

	return r.mapper.ToDomain(&model, items[model.ID])
}

func (r *TicketRepository) Save(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save ticket: %w", err)
	}
	if err := t.SetID(model.ID); err != nil {
		return err
	}

	if err := r.insertPendingItems(tx, t); err != nil {
		return err
	}
	t.MarkPersisted()
	return nil
}

func (r *TicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	if t.IsNew() {
		return fmt.Errorf("cannot update unsaved ticket %s", t.Number())
	}
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	// A map keeps empty strings and a zero total in the UPDATE.
	result := tx.
		Model(&models.TicketModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{
			"first_initial": model.FirstInitial,
			"last_name":     model.LastName,
			"phone":         model.Phone,
			"date_received": model.DateReceived,
			"due_date":      model.DueDate,
			"due_time":      model.DueTime,
			"total_amount":  model.TotalAmount,
			"updated_at":    model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update ticket: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("ticket not found", t.Number())
	}

	if err := r.insertPendingItems(tx, t); err != nil {
		return err
	}
	t.MarkPersisted()
	return nil
}

func (r *TicketRepository) insertPendingItems(tx *gorm.DB, t *ticket.Ticket) error {
	for _, item := range t.PendingItems() {
		model := r.mapper.ItemToModel(t.ID(), item)
		if err := tx.Create(model).Error; err != nil {
			return fmt.Errorf("failed to save ticket item: %w", err)
		}
		if err := item.SetID(model.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes the ticket and its items. Callers wanting both deletes to
// be atomic run it inside a transaction.
func (r *TicketRepository) Delete(ctx context.Context, number string) error {
	tx := db.GetTxFromContext(ctx, r.db)

	var model models.TicketModel
	if err := tx.Select("id").Where("number = ?", number).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.NewNotFoundError("ticket not found", number)
		}
		return fmt.Errorf("failed to find ticket: %w", err)
	}

	if err := tx.Where("ticket_id = ?", model.ID).Delete(&models.LineItemModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete ticket items: %w", err)
	}
	if err := tx.Delete(&models.TicketModel{}, model.ID).Error; err != nil {
		return fmt.Errorf("failed to delete ticket: %w", err)
	}
	return nil
}

func (r *TicketRepository) List(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.TicketModel{})

	if q := strings.TrimSpace(filter.Query); q != "" {
		like := "%" + escapeLike(q) + "%"
		query = query.Where(
			"number LIKE ? ESCAPE '!' OR last_name LIKE ? ESCAPE '!' OR phone LIKE ? ESCAPE '!'",
			like, like, like,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	query = query.Order("number ASC")
	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Limit(filter.PageSize).Offset((page - 1) * filter.PageSize)
	}

	var ticketModels []models.TicketModel
	if err := query.Find(&ticketModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list tickets: %w", err)
	}

	tickets, err := r.toDomainList(tx, ticketModels)
	if err != nil {
		return nil, 0, err
	}
	return tickets, total, nil
}

func (r *TicketRepository) ListAll(ctx context.Context) ([]*ticket.Ticket, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var ticketModels []models.TicketModel
	if err := tx.Order("number ASC").Find(&ticketModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}

	return r.toDomainList(tx, ticketModels)
}

func (r *TicketRepository) toDomainList(tx *gorm.DB, ticketModels []models.TicketModel) ([]*ticket.Ticket, error) {
	ids := make([]uint, len(ticketModels))
	for i := range ticketModels {
		ids[i] = ticketModels[i].ID
	}

	items, err := r.loadItems(tx, ids)
	if err != nil {
		return nil, err
	}

	tickets := make([]*ticket.Ticket, len(ticketModels))
	for i := range ticketModels {
		t, err := r.mapper.ToDomain(&ticketModels[i], items[ticketModels[i].ID])
		if err != nil {
			return nil, err
		}
		tickets[i] = t
	}
	return tickets, nil
}

// loadItems fetches the items of all given tickets in one query, grouped
// by ticket ID in insertion order.
func (r *TicketRepository) loadItems(tx *gorm.DB, ticketIDs []uint) (map[uint][]models.LineItemModel, error) {
	grouped := make(map[uint][]models.LineItemModel, len(ticketIDs))
	if len(ticketIDs) == 0 {
		return grouped, nil
	}

	var itemModels []models.LineItemModel
	if err := tx.
		Where("ticket_id IN ?", ticketIDs).
		Order("id ASC").
		Find(&itemModels).Error; err != nil {
		return nil, fmt.Errorf("failed to load ticket items: %w", err)
	}

	for _, im := range itemModels {
		grouped[im.TicketID] = append(grouped[im.TicketID], im)
	}
	return grouped, nil
}

// escapeLike makes user input match literally under ESCAPE '!'.
func escapeLike(s string) string {
	return strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(s)
}
