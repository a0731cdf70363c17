package persistence

import (
	"context"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/finance"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBankAccountRepository implements BankAccountRepository using GORM
type GormBankAccountRepository struct {
	db *gorm.DB
}

// NewGormBankAccountRepository creates a new GormBankAccountRepository
func NewGormBankAccountRepository(db *gorm.DB) *GormBankAccountRepository {
	return &GormBankAccountRepository{db: db}
}

// FindByID finds a bank account by its ID
func (r *GormBankAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.BankAccount, error) {
	return r.find(r.db.WithContext(ctx), id)
}

// FindByIDForUpdate finds a bank account and locks its row
func (r *GormBankAccountRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*finance.BankAccount, error) {
	return r.find(forUpdate(r.db.WithContext(ctx)), id)
}

func (r *GormBankAccountRepository) find(db *gorm.DB, id uuid.UUID) (*finance.BankAccount, error) {
	var model models.BankAccountModel
	if err := db.Where("id = ?", id).First(&model).Error; err != nil {
		return nil, notFoundOr(err, "bank account", id)
	}
	return model.ToDomain(), nil
}

// FindAll lists bank accounts
func (r *GormBankAccountRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.BankAccount, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.BankAccountModel{})
	if active, ok := filter.Filters["is_active"].(bool); ok {
		query = query.Where("is_active = ?", active)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.BankAccountModel
	if err := applyPaging(query, filter, BankAccountSortFields, "account_number").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	out := make([]finance.BankAccount, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// Save creates or updates a bank account
func (r *GormBankAccountRepository) Save(ctx context.Context, a *finance.BankAccount) error {
	if err := r.db.WithContext(ctx).Save(models.BankAccountModelFromDomain(a)).Error; err != nil {
		return conflictOr(err, "bank account", a.AccountNumber)
	}
	return nil
}

// Ensure GormBankAccountRepository implements BankAccountRepository
var _ finance.BankAccountRepository = (*GormBankAccountRepository)(nil)
