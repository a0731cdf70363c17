package catalog

import (
	"context"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// ItemRepository persists materials and products
type ItemRepository interface {
	FindMaterial(ctx context.Context, id uuid.UUID) (*Material, error)
	FindProduct(ctx context.Context, id uuid.UUID) (*Product, error)
	// Exists reports whether the referenced item exists with the referenced kind
	Exists(ctx context.Context, ref ItemRef) (bool, error)
	ListMaterials(ctx context.Context, filter shared.Filter) ([]Material, int64, error)
	ListProducts(ctx context.Context, filter shared.Filter) ([]Product, int64, error)
	SaveMaterial(ctx context.Context, m *Material) error
	SaveProduct(ctx context.Context, p *Product) error
}
