package persistence

import (
	"context"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/inventory"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormInventoryTransactionRepository implements TransactionRepository using GORM
type GormInventoryTransactionRepository struct {
	db *gorm.DB
}

// NewGormInventoryTransactionRepository creates a new GormInventoryTransactionRepository
func NewGormInventoryTransactionRepository(db *gorm.DB) *GormInventoryTransactionRepository {
	return &GormInventoryTransactionRepository{db: db}
}

// Create inserts the transaction header and its details
func (r *GormInventoryTransactionRepository) Create(ctx context.Context, tx *inventory.InventoryTransaction) error {
	db := r.db.WithContext(ctx)
	if err := db.Create(models.InventoryTransactionModelFromDomain(tx)).Error; err != nil {
		return conflictOr(err, "inventory transaction", tx.Code)
	}
	details := models.InventoryTransactionDetailModelsFromDomain(tx)
	if len(details) == 0 {
		return nil
	}
	return db.Create(&details).Error
}

// FindByID finds a transaction with its details
func (r *GormInventoryTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.InventoryTransaction, error) {
	return r.find(ctx, r.db.WithContext(ctx), id)
}

// FindByIDForUpdate finds a transaction and locks its header so approvals serialize
func (r *GormInventoryTransactionRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*inventory.InventoryTransaction, error) {
	return r.find(ctx, forUpdate(r.db.WithContext(ctx)), id)
}

func (r *GormInventoryTransactionRepository) find(ctx context.Context, db *gorm.DB, id uuid.UUID) (*inventory.InventoryTransaction, error) {
	var model models.InventoryTransactionModel
	if err := db.Where("id = ?", id).First(&model).Error; err != nil {
		return nil, notFoundOr(err, "inventory transaction", id)
	}
	txs, err := r.attachDetails(ctx, []models.InventoryTransactionModel{model})
	if err != nil {
		return nil, err
	}
	return txs[0], nil
}

// UpdateStatus persists status and approval or rejection fields
func (r *GormInventoryTransactionRepository) UpdateStatus(ctx context.Context, tx *inventory.InventoryTransaction) error {
	result := r.db.WithContext(ctx).
		Model(&models.InventoryTransactionModel{}).
		Where("id = ?", tx.ID).
		Updates(map[string]any{
			"status":        tx.Status,
			"approved_by":   tx.ApprovedBy,
			"approved_at":   tx.ApprovedAt,
			"rejected_by":   tx.RejectedBy,
			"rejected_at":   tx.RejectedAt,
			"reject_reason": tx.RejectReason,
			"version":       tx.Version,
			"updated_at":    tx.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFoundOr(gorm.ErrRecordNotFound, "inventory transaction", tx.ID)
	}
	return nil
}

// FindAll lists transactions with their details
func (r *GormInventoryTransactionRepository) FindAll(ctx context.Context, filter inventory.TransactionFilter) ([]inventory.InventoryTransaction, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.InventoryTransactionModel{})
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.WarehouseID != nil {
		query = query.Where("from_warehouse_id = ? OR to_warehouse_id = ?", *filter.WarehouseID, *filter.WarehouseID)
	}
	if term := searchTerm(filter.Filter); term != "" {
		query = query.Where("code LIKE ?", "%"+term+"%")
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.InventoryTransactionModel
	if err := applyPaging(query, filter.Filter, InventoryTransactionSortFields, "created_at").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	txs, err := r.attachDetails(ctx, rows)
	if err != nil {
		return nil, 0, err
	}
	out := make([]inventory.InventoryTransaction, len(txs))
	for i, tx := range txs {
		out[i] = *tx
	}
	return out, total, nil
}

// CountPendingByType counts transactions waiting for approval, per type
func (r *GormInventoryTransactionRepository) CountPendingByType(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Type  string
		Count int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.InventoryTransactionModel{}).
		Select("type, COUNT(*) AS count").
		Where("status = ?", inventory.TransactionStatusPending).
		Group("type").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Type] = row.Count
	}
	return out, nil
}

func (r *GormInventoryTransactionRepository) attachDetails(ctx context.Context, headers []models.InventoryTransactionModel) ([]*inventory.InventoryTransaction, error) {
	if len(headers) == 0 {
		return []*inventory.InventoryTransaction{}, nil
	}
	ids := make([]uuid.UUID, len(headers))
	for i := range headers {
		ids[i] = headers[i].ID
	}
	var details []models.InventoryTransactionDetailModel
	if err := r.db.WithContext(ctx).
		Where("transaction_id IN ?", ids).
		Order("transaction_id").
		Order("line_no").
		Find(&details).Error; err != nil {
		return nil, err
	}
	byTx := make(map[uuid.UUID][]models.InventoryTransactionDetailModel, len(headers))
	for _, d := range details {
		byTx[d.TransactionID] = append(byTx[d.TransactionID], d)
	}
	out := make([]*inventory.InventoryTransaction, len(headers))
	for i := range headers {
		out[i] = headers[i].ToDomain(byTx[headers[i].ID])
	}
	return out, nil
}

// Ensure GormInventoryTransactionRepository implements TransactionRepository
var _ inventory.TransactionRepository = (*GormInventoryTransactionRepository)(nil)
