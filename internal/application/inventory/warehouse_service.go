package inventory

import (
	"context"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/inventory"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// WarehouseService handles warehouse reference data
type WarehouseService struct {
	repo inventory.WarehouseRepository
}

// NewWarehouseService creates a new WarehouseService
func NewWarehouseService(repo inventory.WarehouseRepository) *WarehouseService {
	return &WarehouseService{repo: repo}
}

// Create creates a typed warehouse
func (s *WarehouseService) Create(ctx context.Context, req CreateWarehouseRequest) (*WarehouseResponse, error) {
	w, err := inventory.NewWarehouse(req.BranchID, req.Code, req.Name, inventory.WarehouseType(req.Type))
	if err != nil {
		return nil, err
	}
	w.Address = req.Address
	if err := s.repo.Save(ctx, w); err != nil {
		return nil, err
	}
	resp := ToWarehouseResponse(w)
	return &resp, nil
}

// GetByID returns one warehouse
func (s *WarehouseService) GetByID(ctx context.Context, id uuid.UUID) (*WarehouseResponse, error) {
	w, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToWarehouseResponse(w)
	return &resp, nil
}

// List returns a page of warehouses
func (s *WarehouseService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[WarehouseResponse], error) {
	filter = filter.Normalize()
	warehouses, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]WarehouseResponse, 0, len(warehouses))
	for i := range warehouses {
		items = append(items, ToWarehouseResponse(&warehouses[i]))
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}
