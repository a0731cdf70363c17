package persistence

import (
	"context"
	"strings"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/partner"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPartnerRepository implements PartnerRepository using GORM
type GormPartnerRepository struct {
	db *gorm.DB
}

// NewGormPartnerRepository creates a new GormPartnerRepository
func NewGormPartnerRepository(db *gorm.DB) *GormPartnerRepository {
	return &GormPartnerRepository{db: db}
}

// FindByID finds a partner by its ID
func (r *GormPartnerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Partner, error) {
	return r.find(r.db.WithContext(ctx), id)
}

// FindByIDForUpdate finds a partner and locks its row until the transaction ends
func (r *GormPartnerRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*partner.Partner, error) {
	return r.find(forUpdate(r.db.WithContext(ctx)), id)
}

func (r *GormPartnerRepository) find(db *gorm.DB, id uuid.UUID) (*partner.Partner, error) {
	var model models.PartnerModel
	if err := db.Where("id = ?", id).First(&model).Error; err != nil {
		return nil, notFoundOr(err, "partner", id)
	}
	return model.ToDomain(), nil
}

// FindAll lists partners of one type (all types when partnerType is empty)
func (r *GormPartnerRepository) FindAll(ctx context.Context, partnerType partner.PartnerType, filter shared.Filter) ([]partner.Partner, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.PartnerModel{})
	if partnerType != "" {
		query = query.Where("type = ?", partnerType)
	}
	if term := searchTerm(filter); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		query = query.Where("LOWER(code) LIKE ? OR LOWER(name) LIKE ? OR phone LIKE ?", like, like, like)
	}

	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.PartnerModel
	if err := applyPaging(query, filter, PartnerSortFields, "code").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	out := make([]partner.Partner, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// Save creates or updates a partner
func (r *GormPartnerRepository) Save(ctx context.Context, p *partner.Partner) error {
	if err := r.db.WithContext(ctx).Save(models.PartnerModelFromDomain(p)).Error; err != nil {
		return conflictOr(err, "partner", p.Code)
	}
	return nil
}

// forUpdate adds SELECT ... FOR UPDATE. SQLite has no row locks and its dialector drops the clause.
func forUpdate(db *gorm.DB) *gorm.DB {
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}

// Ensure GormPartnerRepository implements PartnerRepository
var _ partner.PartnerRepository = (*GormPartnerRepository)(nil)
