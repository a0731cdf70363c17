package production

import (
	"context"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/catalog"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/production"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// BOMService maintains bills of materials
type BOMService struct {
	scope   TransactionScope
	bomRepo production.BOMRepository
}

// NewBOMService creates a new BOMService
func NewBOMService(scope TransactionScope, bomRepo production.BOMRepository) *BOMService {
	return &BOMService{scope: scope, bomRepo: bomRepo}
}

// Upsert sets the per-unit material quantities of a product
func (s *BOMService) Upsert(ctx context.Context, req UpsertBOMRequest) ([]BOMLineResponse, error) {
	var out []BOMLineResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if _, err := repos.ItemRepo().FindProduct(ctx, req.ProductID); err != nil {
			return err
		}
		seen := make(map[uuid.UUID]bool, len(req.Lines))
		for _, l := range req.Lines {
			if seen[l.MaterialID] {
				return shared.NewValidationError("DUPLICATE_MATERIAL", "material %s appears twice", l.MaterialID)
			}
			seen[l.MaterialID] = true
			ok, err := repos.ItemRepo().Exists(ctx, catalog.MaterialRef(l.MaterialID))
			if err != nil {
				return err
			}
			if !ok {
				return shared.NewNotFoundError("material", l.MaterialID)
			}
			line, err := production.NewBOMLine(req.ProductID, l.MaterialID, l.QuantityPerUnit, l.Notes)
			if err != nil {
				return err
			}
			if err := repos.BOMRepo().Upsert(ctx, line); err != nil {
				return err
			}
			out = append(out, ToBOMLineResponse(line))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ForProduct returns the bill of materials of one product
func (s *BOMService) ForProduct(ctx context.Context, productID uuid.UUID) ([]BOMLineResponse, error) {
	lines, err := s.bomRepo.FindByProducts(ctx, []uuid.UUID{productID})
	if err != nil {
		return nil, err
	}
	out := make([]BOMLineResponse, 0, len(lines))
	for i := range lines {
		out = append(out, ToBOMLineResponse(&lines[i]))
	}
	return out, nil
}
