package persistence

import (
	"context"
	"strings"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/inventory"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormWarehouseRepository implements WarehouseRepository using GORM
type GormWarehouseRepository struct {
	db *gorm.DB
}

// NewGormWarehouseRepository creates a new GormWarehouseRepository
func NewGormWarehouseRepository(db *gorm.DB) *GormWarehouseRepository {
	return &GormWarehouseRepository{db: db}
}

// FindByID finds a warehouse by its ID
func (r *GormWarehouseRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Warehouse, error) {
	var model models.WarehouseModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, notFoundOr(err, "warehouse", id)
	}
	return model.ToDomain(), nil
}

// FindAll lists warehouses. Supported filters: "type" and "search".
func (r *GormWarehouseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Warehouse, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.WarehouseModel{})
	if t, ok := filter.Filters["type"].(string); ok && t != "" {
		query = query.Where("type = ?", t)
	}
	if term := searchTerm(filter); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		query = query.Where("LOWER(code) LIKE ? OR LOWER(name) LIKE ?", like, like)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.WarehouseModel
	if err := applyPaging(query, filter, WarehouseSortFields, "code").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	out := make([]inventory.Warehouse, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// Save creates or updates a warehouse
func (r *GormWarehouseRepository) Save(ctx context.Context, w *inventory.Warehouse) error {
	if err := r.db.WithContext(ctx).Save(models.WarehouseModelFromDomain(w)).Error; err != nil {
		return conflictOr(err, "warehouse", w.Code)
	}
	return nil
}

// Ensure GormWarehouseRepository implements WarehouseRepository
var _ inventory.WarehouseRepository = (*GormWarehouseRepository)(nil)
