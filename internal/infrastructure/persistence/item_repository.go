package persistence

import (
	"context"
	"strings"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/catalog"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormItemRepository implements ItemRepository over the materials and products tables
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// FindMaterial finds a material by its ID
func (r *GormItemRepository) FindMaterial(ctx context.Context, id uuid.UUID) (*catalog.Material, error) {
	var model models.MaterialModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, notFoundOr(err, "material", id)
	}
	return model.ToDomain(), nil
}

// FindProduct finds a product by its ID
func (r *GormItemRepository) FindProduct(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, notFoundOr(err, "product", id)
	}
	return model.ToDomain(), nil
}

// Exists reports whether the referenced item exists in the table of its kind
func (r *GormItemRepository) Exists(ctx context.Context, ref catalog.ItemRef) (bool, error) {
	if err := ref.Validate(); err != nil {
		return false, err
	}
	var model any = &models.ProductModel{}
	if ref.Kind() == catalog.ItemKindMaterial {
		model = &models.MaterialModel{}
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(model).Where("id = ?", ref.ID()).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListMaterials lists materials
func (r *GormItemRepository) ListMaterials(ctx context.Context, filter shared.Filter) ([]catalog.Material, int64, error) {
	var rows []models.MaterialModel
	total, err := r.list(ctx, &models.MaterialModel{}, filter, &rows)
	if err != nil {
		return nil, 0, err
	}
	out := make([]catalog.Material, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// ListProducts lists products
func (r *GormItemRepository) ListProducts(ctx context.Context, filter shared.Filter) ([]catalog.Product, int64, error) {
	var rows []models.ProductModel
	total, err := r.list(ctx, &models.ProductModel{}, filter, &rows)
	if err != nil {
		return nil, 0, err
	}
	out := make([]catalog.Product, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

func (r *GormItemRepository) list(ctx context.Context, model any, filter shared.Filter, dest any) (int64, error) {
	query := r.db.WithContext(ctx).Model(model)
	if term := searchTerm(filter); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		query = query.Where("LOWER(code) LIKE ? OR LOWER(name) LIKE ?", like, like)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	if err := applyPaging(query, filter, ItemSortFields, "code").Find(dest).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// SaveMaterial creates or updates a material
func (r *GormItemRepository) SaveMaterial(ctx context.Context, m *catalog.Material) error {
	if err := r.db.WithContext(ctx).Save(models.MaterialModelFromDomain(m)).Error; err != nil {
		return conflictOr(err, "material", m.Code)
	}
	return nil
}

// SaveProduct creates or updates a product
func (r *GormItemRepository) SaveProduct(ctx context.Context, p *catalog.Product) error {
	if err := r.db.WithContext(ctx).Save(models.ProductModelFromDomain(p)).Error; err != nil {
		return conflictOr(err, "product", p.Code)
	}
	return nil
}

// Ensure GormItemRepository implements ItemRepository
var _ catalog.ItemRepository = (*GormItemRepository)(nil)
