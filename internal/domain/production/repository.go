package production

import (
	"context"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductionOrderRepository persists production orders with their lines and step logs
type ProductionOrderRepository interface {
	Create(ctx context.Context, p *ProductionOrder) error
	FindByID(ctx context.Context, id uuid.UUID) (*ProductionOrder, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*ProductionOrder, error)
	// Save persists the header and inserts step logs not yet stored
	Save(ctx context.Context, p *ProductionOrder) error
	FindAll(ctx context.Context, filter shared.Filter) ([]ProductionOrder, int64, error)
}

// BOMRepository persists bills of materials
type BOMRepository interface {
	FindByProducts(ctx context.Context, productIDs []uuid.UUID) ([]BOMLine, error)
	// Upsert replaces the quantity of an existing (product, material) line or inserts it
	Upsert(ctx context.Context, line *BOMLine) error
}
