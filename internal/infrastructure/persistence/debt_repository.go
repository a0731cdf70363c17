package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/finance"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDebtRecordRepository implements DebtRecordRepository using GORM
type GormDebtRecordRepository struct {
	db *gorm.DB
}

// NewGormDebtRecordRepository creates a new GormDebtRecordRepository
func NewGormDebtRecordRepository(db *gorm.DB) *GormDebtRecordRepository {
	return &GormDebtRecordRepository{db: db}
}

// GetOrCreateForUpdate inserts seed with ON CONFLICT DO NOTHING on the debt key, then
// reads the surviving row under a lock. Two first settlements of the same order both
// end up on one record.
func (r *GormDebtRecordRepository) GetOrCreateForUpdate(ctx context.Context, seed *finance.DebtRecord) (*finance.DebtRecord, error) {
	db := r.db.WithContext(ctx)
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "order_id"}, {Name: "reference_type"}, {Name: "debt_type"}},
		DoNothing: true,
	}).Create(models.DebtRecordModelFromDomain(seed)).Error; err != nil {
		return nil, err
	}

	var model models.DebtRecordModel
	if err := forUpdate(db).
		Where("order_id = ? AND reference_type = ? AND debt_type = ?", seed.OrderID, seed.ReferenceType, seed.DebtType).
		First(&model).Error; err != nil {
		return nil, notFoundOr(err, "debt record for order", seed.OrderID)
	}
	return model.ToDomain(), nil
}

// FindByID finds a debt record by its ID
func (r *GormDebtRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.DebtRecord, error) {
	var model models.DebtRecordModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, notFoundOr(err, "debt record", id)
	}
	return model.ToDomain(), nil
}

// FindAll lists debt records
func (r *GormDebtRecordRepository) FindAll(ctx context.Context, filter finance.DebtFilter) ([]finance.DebtRecord, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.DebtRecordModel{})
	if filter.PartnerID != nil {
		query = query.Where("partner_id = ?", *filter.PartnerID)
	}
	if filter.DebtType != "" {
		query = query.Where("debt_type = ?", filter.DebtType)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.DebtRecordModel
	if err := applyPaging(query, filter.Filter, DebtRecordSortFields, "created_at").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	out := make([]finance.DebtRecord, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// Save persists the remaining amount and status
func (r *GormDebtRecordRepository) Save(ctx context.Context, rec *finance.DebtRecord) error {
	result := r.db.WithContext(ctx).
		Model(&models.DebtRecordModel{}).
		Where("id = ?", rec.ID).
		Updates(map[string]any{
			"remaining_amount": rec.RemainingAmount,
			"status":           rec.Status,
			"updated_at":       rec.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFoundOr(gorm.ErrRecordNotFound, "debt record", rec.ID)
	}
	return nil
}

// GormDebtPaymentRepository implements the append-only DebtPaymentRepository
type GormDebtPaymentRepository struct {
	db *gorm.DB
}

// NewGormDebtPaymentRepository creates a new GormDebtPaymentRepository
func NewGormDebtPaymentRepository(db *gorm.DB) *GormDebtPaymentRepository {
	return &GormDebtPaymentRepository{db: db}
}

// Append inserts one ledger row. Rows are never updated.
func (r *GormDebtPaymentRepository) Append(ctx context.Context, p *finance.DebtPayment) error {
	return r.db.WithContext(ctx).Create(models.DebtPaymentModelFromDomain(p)).Error
}

// ListByDebtRecord lists the payments of one debt record in the order they were made
func (r *GormDebtPaymentRepository) ListByDebtRecord(ctx context.Context, debtRecordID uuid.UUID) ([]finance.DebtPayment, error) {
	var rows []models.DebtPaymentModel
	if err := r.db.WithContext(ctx).
		Where("debt_record_id = ?", debtRecordID).
		Order("payment_date ASC").
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]finance.DebtPayment, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

// LastPaymentDate returns the latest payment date of the partner, nil when it never paid
func (r *GormDebtPaymentRepository) LastPaymentDate(ctx context.Context, partnerID uuid.UUID) (*time.Time, error) {
	var model models.DebtPaymentModel
	err := r.db.WithContext(ctx).
		Where("partner_id = ?", partnerID).
		Order("payment_date DESC").
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &model.PaymentDate, nil
}

// Ensure the repositories implement their interfaces
var (
	_ finance.DebtRecordRepository  = (*GormDebtRecordRepository)(nil)
	_ finance.DebtPaymentRepository = (*GormDebtPaymentRepository)(nil)
)
