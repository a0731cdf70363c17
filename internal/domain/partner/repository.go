package partner

import (
	"context"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// PartnerRepository persists partners
type PartnerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Partner, error)
	// FindByIDForUpdate loads the partner and holds a row lock until the transaction ends
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Partner, error)
	FindAll(ctx context.Context, partnerType PartnerType, filter shared.Filter) ([]Partner, int64, error)
	Save(ctx context.Context, p *Partner) error
}
