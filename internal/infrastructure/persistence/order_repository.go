package persistence

import (
	"context"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/trade"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository for sales and purchase orders
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order with its lines
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	return r.find(ctx, r.db.WithContext(ctx), id)
}

// FindByIDForUpdate finds an order and locks its header row
func (r *GormOrderRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	return r.find(ctx, forUpdate(r.db.WithContext(ctx)), id)
}

func (r *GormOrderRepository) find(ctx context.Context, db *gorm.DB, id uuid.UUID) (*trade.Order, error) {
	var model models.OrderModel
	if err := db.Where("id = ?", id).First(&model).Error; err != nil {
		return nil, notFoundOr(err, "order", id)
	}
	orders, err := r.attachLines(ctx, []models.OrderModel{model})
	if err != nil {
		return nil, err
	}
	return orders[0], nil
}

// FindOpenByPartnerForUpdate returns the partner's open orders of one kind, oldest first,
// with every header row locked in that order
func (r *GormOrderRepository) FindOpenByPartnerForUpdate(ctx context.Context, partnerID uuid.UUID, kind trade.OrderKind) ([]*trade.Order, error) {
	return r.findOpen(ctx, forUpdate(r.db.WithContext(ctx)), partnerID, kind)
}

// FindOpenByPartner returns the partner's open orders of one kind without locking
func (r *GormOrderRepository) FindOpenByPartner(ctx context.Context, partnerID uuid.UUID, kind trade.OrderKind) ([]*trade.Order, error) {
	return r.findOpen(ctx, r.db.WithContext(ctx), partnerID, kind)
}

func (r *GormOrderRepository) findOpen(ctx context.Context, db *gorm.DB, partnerID uuid.UUID, kind trade.OrderKind) ([]*trade.Order, error) {
	var rows []models.OrderModel
	if err := db.
		Where("partner_id = ? AND kind = ? AND status <> ? AND final_amount - paid_amount > 0",
			partnerID, kind, trade.OrderStatusCancelled).
		Order("created_at ASC").
		Order("code ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.attachLines(ctx, rows)
}

// FindAll lists order headers with their lines
func (r *GormOrderRepository) FindAll(ctx context.Context, filter trade.OrderFilter) ([]trade.Order, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.OrderModel{})
	if filter.Kind != "" {
		query = query.Where("kind = ?", filter.Kind)
	}
	if filter.PartnerID != nil {
		query = query.Where("partner_id = ?", *filter.PartnerID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if term := searchTerm(filter.Filter); term != "" {
		query = query.Where("code LIKE ?", "%"+term+"%")
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.OrderModel
	if err := applyPaging(query, filter.Filter, OrderSortFields, "created_at").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	orders, err := r.attachLines(ctx, rows)
	if err != nil {
		return nil, 0, err
	}
	out := make([]trade.Order, len(orders))
	for i, o := range orders {
		out[i] = *o
	}
	return out, total, nil
}

// Create inserts the order header and its lines
func (r *GormOrderRepository) Create(ctx context.Context, o *trade.Order) error {
	db := r.db.WithContext(ctx)
	if err := db.Create(models.OrderModelFromDomain(o)).Error; err != nil {
		return conflictOr(err, "order", o.Code)
	}
	items := models.OrderItemModelsFromDomain(o)
	if len(items) == 0 {
		return nil
	}
	return db.Create(&items).Error
}

// Save persists header fields: amounts, payment status and workflow status
func (r *GormOrderRepository) Save(ctx context.Context, o *trade.Order) error {
	result := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("id = ?", o.ID).
		Updates(map[string]any{
			"total_amount":    o.TotalAmount,
			"discount_amount": o.DiscountAmount,
			"final_amount":    o.FinalAmount,
			"paid_amount":     o.PaidAmount,
			"payment_status":  o.PaymentStatus,
			"status":          o.Status,
			"notes":           o.Notes,
			"version":         o.Version,
			"updated_at":      o.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFoundOr(gorm.ErrRecordNotFound, "order", o.ID)
	}
	return nil
}

// attachLines loads the lines of all headers in one query and keeps header order
func (r *GormOrderRepository) attachLines(ctx context.Context, headers []models.OrderModel) ([]*trade.Order, error) {
	if len(headers) == 0 {
		return []*trade.Order{}, nil
	}
	ids := make([]uuid.UUID, len(headers))
	for i := range headers {
		ids[i] = headers[i].ID
	}
	var items []models.OrderItemModel
	if err := r.db.WithContext(ctx).
		Where("order_id IN ?", ids).
		Order("order_id").
		Order("line_no").
		Find(&items).Error; err != nil {
		return nil, err
	}
	byOrder := make(map[uuid.UUID][]models.OrderItemModel, len(headers))
	for _, it := range items {
		byOrder[it.OrderID] = append(byOrder[it.OrderID], it)
	}
	out := make([]*trade.Order, len(headers))
	for i := range headers {
		out[i] = headers[i].ToDomain(byOrder[headers[i].ID])
	}
	return out, nil
}

// Ensure GormOrderRepository implements OrderRepository
var _ trade.OrderRepository = (*GormOrderRepository)(nil)
