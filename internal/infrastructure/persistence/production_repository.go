package persistence

import (
	"context"
	"time"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/production"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProductionOrderRepository implements ProductionOrderRepository using GORM
type GormProductionOrderRepository struct {
	db *gorm.DB
}

// NewGormProductionOrderRepository creates a new GormProductionOrderRepository
func NewGormProductionOrderRepository(db *gorm.DB) *GormProductionOrderRepository {
	return &GormProductionOrderRepository{db: db}
}

// Create inserts the header, its lines and any step logs
func (r *GormProductionOrderRepository) Create(ctx context.Context, p *production.ProductionOrder) error {
	db := r.db.WithContext(ctx)
	if err := db.Create(models.ProductionOrderModelFromDomain(p)).Error; err != nil {
		return conflictOr(err, "production order", p.Code)
	}
	if lines := models.ProductionOrderLineModelsFromDomain(p); len(lines) > 0 {
		if err := db.Create(&lines).Error; err != nil {
			return err
		}
	}
	return r.insertLogs(db, p)
}

// FindByID finds a production order with its lines and step logs
func (r *GormProductionOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*production.ProductionOrder, error) {
	return r.find(ctx, r.db.WithContext(ctx), id)
}

// FindByIDForUpdate finds a production order and locks its header
func (r *GormProductionOrderRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*production.ProductionOrder, error) {
	return r.find(ctx, forUpdate(r.db.WithContext(ctx)), id)
}

func (r *GormProductionOrderRepository) find(ctx context.Context, db *gorm.DB, id uuid.UUID) (*production.ProductionOrder, error) {
	var model models.ProductionOrderModel
	if err := db.Where("id = ?", id).First(&model).Error; err != nil {
		return nil, notFoundOr(err, "production order", id)
	}
	orders, err := r.attach(ctx, []models.ProductionOrderModel{model})
	if err != nil {
		return nil, err
	}
	return orders[0], nil
}

// Save persists the header and inserts step logs that are not stored yet
func (r *GormProductionOrderRepository) Save(ctx context.Context, p *production.ProductionOrder) error {
	db := r.db.WithContext(ctx)
	result := db.Model(&models.ProductionOrderModel{}).
		Where("id = ?", p.ID).
		Updates(map[string]any{
			"current_step":         p.CurrentStep,
			"status":               p.Status,
			"material_issue_tx_id": p.MaterialIssueTxID,
			"finished_goods_tx_id": p.FinishedGoodsTxID,
			"started_at":           p.StartedAt,
			"completed_at":         p.CompletedAt,
			"version":              p.Version,
			"updated_at":           p.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFoundOr(gorm.ErrRecordNotFound, "production order", p.ID)
	}
	return r.insertLogs(db, p)
}

// insertLogs appends step logs; logs already stored are skipped by primary key
func (r *GormProductionOrderRepository) insertLogs(db *gorm.DB, p *production.ProductionOrder) error {
	if len(p.StepLogs) == 0 {
		return nil
	}
	logs := make([]models.ProductionStepLogModel, len(p.StepLogs))
	for i, l := range p.StepLogs {
		logs[i] = models.ProductionStepLogModelFromDomain(p.ID, l)
	}
	return db.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).Create(&logs).Error
}

// FindAll lists production orders. Supported filters: "status" and "search".
func (r *GormProductionOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]production.ProductionOrder, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ProductionOrderModel{})
	if status, ok := filter.Filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}
	if term := searchTerm(filter); term != "" {
		query = query.Where("code LIKE ?", "%"+term+"%")
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.ProductionOrderModel
	if err := applyPaging(query, filter, ProductionOrderSortFields, "created_at").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	orders, err := r.attach(ctx, rows)
	if err != nil {
		return nil, 0, err
	}
	out := make([]production.ProductionOrder, len(orders))
	for i, o := range orders {
		out[i] = *o
	}
	return out, total, nil
}

func (r *GormProductionOrderRepository) attach(ctx context.Context, headers []models.ProductionOrderModel) ([]*production.ProductionOrder, error) {
	if len(headers) == 0 {
		return []*production.ProductionOrder{}, nil
	}
	ids := make([]uuid.UUID, len(headers))
	for i := range headers {
		ids[i] = headers[i].ID
	}
	db := r.db.WithContext(ctx)

	var lines []models.ProductionOrderLineModel
	if err := db.Where("production_order_id IN ?", ids).Order("line_no").Find(&lines).Error; err != nil {
		return nil, err
	}
	var logs []models.ProductionStepLogModel
	if err := db.Where("production_order_id IN ?", ids).Order("created_at").Find(&logs).Error; err != nil {
		return nil, err
	}

	linesByOrder := make(map[uuid.UUID][]models.ProductionOrderLineModel, len(headers))
	for _, l := range lines {
		linesByOrder[l.ProductionOrderID] = append(linesByOrder[l.ProductionOrderID], l)
	}
	logsByOrder := make(map[uuid.UUID][]models.ProductionStepLogModel, len(headers))
	for _, l := range logs {
		logsByOrder[l.ProductionOrderID] = append(logsByOrder[l.ProductionOrderID], l)
	}

	out := make([]*production.ProductionOrder, len(headers))
	for i := range headers {
		id := headers[i].ID
		out[i] = headers[i].ToDomain(linesByOrder[id], logsByOrder[id])
	}
	return out, nil
}

// GormBOMRepository implements BOMRepository using GORM
type GormBOMRepository struct {
	db *gorm.DB
}

// NewGormBOMRepository creates a new GormBOMRepository
func NewGormBOMRepository(db *gorm.DB) *GormBOMRepository {
	return &GormBOMRepository{db: db}
}

// FindByProducts returns the BOM lines of the given products
func (r *GormBOMRepository) FindByProducts(ctx context.Context, productIDs []uuid.UUID) ([]production.BOMLine, error) {
	if len(productIDs) == 0 {
		return []production.BOMLine{}, nil
	}
	var rows []models.BOMLineModel
	if err := r.db.WithContext(ctx).
		Where("product_id IN ?", productIDs).
		Order("product_id").
		Order("material_id").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]production.BOMLine, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

// Upsert inserts the line or replaces quantity and notes of the existing (product, material) line
func (r *GormBOMRepository) Upsert(ctx context.Context, line *production.BOMLine) error {
	model := models.BOMLineModelFromDomain(line)
	now := time.Now()
	model.CreatedAt = now
	model.UpdatedAt = now
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_id"}, {Name: "material_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"quantity_per_unit", "notes", "updated_at"}),
	}).Create(model).Error
}

// Ensure the repositories implement their interfaces
var (
	_ production.ProductionOrderRepository = (*GormProductionOrderRepository)(nil)
	_ production.BOMRepository             = (*GormBOMRepository)(nil)
)
