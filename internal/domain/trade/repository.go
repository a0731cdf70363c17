package trade

import (
	"context"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// OrderFilter narrows order listings
type OrderFilter struct {
	shared.Filter
	Kind      OrderKind
	PartnerID *uuid.UUID
	Status    OrderStatus
}

// OrderRepository persists sales and purchase orders
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Order, error)
	// FindOpenByPartnerForUpdate returns the partner's non-cancelled orders of the given kind that
	// still have an unpaid remainder, oldest first, locked for the rest of the transaction
	FindOpenByPartnerForUpdate(ctx context.Context, partnerID uuid.UUID, kind OrderKind) ([]*Order, error)
	// FindOpenByPartner is the lock-free variant used by read-only summaries
	FindOpenByPartner(ctx context.Context, partnerID uuid.UUID, kind OrderKind) ([]*Order, error)
	FindAll(ctx context.Context, filter OrderFilter) ([]Order, int64, error)
	Create(ctx context.Context, o *Order) error
	// Save persists header fields: amounts, payment status and workflow status
	Save(ctx context.Context, o *Order) error
}
