package persistence

import (
	"context"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/catalog"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/inventory"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBalanceRepository implements BalanceRepository over inventory_balances
type GormBalanceRepository struct {
	db *gorm.DB
}

// NewGormBalanceRepository creates a new GormBalanceRepository
func NewGormBalanceRepository(db *gorm.DB) *GormBalanceRepository {
	return &GormBalanceRepository{db: db}
}

// Quantities reads the committed quantities of items in one warehouse. Missing rows read as zero.
func (r *GormBalanceRepository) Quantities(ctx context.Context, warehouseID uuid.UUID, items []catalog.ItemRef) (map[catalog.Key]decimal.Decimal, error) {
	out := make(map[catalog.Key]decimal.Decimal, len(items))
	if len(items) == 0 {
		return out, nil
	}
	var materialIDs, productIDs []uuid.UUID
	for _, item := range items {
		out[item.Key()] = decimal.Zero
		if item.MaterialID != nil {
			materialIDs = append(materialIDs, *item.MaterialID)
		} else if item.ProductID != nil {
			productIDs = append(productIDs, *item.ProductID)
		}
	}

	query := r.db.WithContext(ctx).Where("warehouse_id = ?", warehouseID)
	switch {
	case len(materialIDs) > 0 && len(productIDs) > 0:
		query = query.Where("material_id IN ? OR product_id IN ?", materialIDs, productIDs)
	case len(materialIDs) > 0:
		query = query.Where("material_id IN ?", materialIDs)
	default:
		query = query.Where("product_id IN ?", productIDs)
	}

	var rows []models.InventoryBalanceModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		b := rows[i].ToDomain()
		out[b.Item.Key()] = b.Quantity
	}
	return out, nil
}

// GetOrCreateForUpdate inserts a zero row for (warehouse, item) if none exists and
// returns the row under a lock
func (r *GormBalanceRepository) GetOrCreateForUpdate(ctx context.Context, warehouseID uuid.UUID, item catalog.ItemRef) (*inventory.InventoryBalance, error) {
	if err := item.Validate(); err != nil {
		return nil, err
	}
	db := r.db.WithContext(ctx)
	seed := models.InventoryBalanceModelFromDomain(inventory.NewInventoryBalance(warehouseID, item))
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(seed).Error; err != nil {
		return nil, err
	}

	var model models.InventoryBalanceModel
	if err := forUpdate(db).Where(itemCondition(warehouseID, item)).First(&model).Error; err != nil {
		return nil, notFoundOr(err, "inventory balance", item.Key())
	}
	return model.ToDomain(), nil
}

// ListByWarehouse lists the balance rows of one warehouse
func (r *GormBalanceRepository) ListByWarehouse(ctx context.Context, warehouseID uuid.UUID) ([]inventory.InventoryBalance, error) {
	var rows []models.InventoryBalanceModel
	if err := r.db.WithContext(ctx).
		Where("warehouse_id = ?", warehouseID).
		Order("material_id").
		Order("product_id").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]inventory.InventoryBalance, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// Save writes the quantity of an existing balance row
func (r *GormBalanceRepository) Save(ctx context.Context, b *inventory.InventoryBalance) error {
	result := r.db.WithContext(ctx).
		Model(&models.InventoryBalanceModel{}).
		Where("id = ?", b.ID).
		Updates(map[string]any{
			"quantity":   b.Quantity,
			"updated_at": b.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFoundOr(gorm.ErrRecordNotFound, "inventory balance", b.ID)
	}
	return nil
}

func itemCondition(warehouseID uuid.UUID, item catalog.ItemRef) clause.Expr {
	if item.MaterialID != nil {
		return gorm.Expr("warehouse_id = ? AND material_id = ?", warehouseID, *item.MaterialID)
	}
	return gorm.Expr("warehouse_id = ? AND product_id = ?", warehouseID, *item.ProductID)
}

// Ensure GormBalanceRepository implements BalanceRepository
var _ inventory.BalanceRepository = (*GormBalanceRepository)(nil)
