package catalog

import (
	"context"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/catalog"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// ItemService manages materials and products
type ItemService struct {
	repo catalog.ItemRepository
}

// NewItemService creates a new ItemService
func NewItemService(repo catalog.ItemRepository) *ItemService {
	return &ItemService{repo: repo}
}

// CreateMaterial creates a raw material
func (s *ItemService) CreateMaterial(ctx context.Context, req CreateItemRequest) (*ItemResponse, error) {
	m, err := catalog.NewMaterial(req.Code, req.Name, req.Unit)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SaveMaterial(ctx, m); err != nil {
		return nil, err
	}
	resp := ToItemResponse(&m.Item)
	return &resp, nil
}

// CreateProduct creates a finished product
func (s *ItemService) CreateProduct(ctx context.Context, req CreateItemRequest) (*ItemResponse, error) {
	p, err := catalog.NewProduct(req.Code, req.Name, req.Unit)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SaveProduct(ctx, p); err != nil {
		return nil, err
	}
	resp := ToItemResponse(&p.Item)
	return &resp, nil
}

// GetMaterial returns one material
func (s *ItemService) GetMaterial(ctx context.Context, id uuid.UUID) (*ItemResponse, error) {
	m, err := s.repo.FindMaterial(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToItemResponse(&m.Item)
	return &resp, nil
}

// GetProduct returns one product
func (s *ItemService) GetProduct(ctx context.Context, id uuid.UUID) (*ItemResponse, error) {
	p, err := s.repo.FindProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToItemResponse(&p.Item)
	return &resp, nil
}

// ListMaterials returns a page of materials
func (s *ItemService) ListMaterials(ctx context.Context, filter shared.Filter) (*shared.Paginated[ItemResponse], error) {
	filter = filter.Normalize()
	materials, total, err := s.repo.ListMaterials(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]ItemResponse, 0, len(materials))
	for i := range materials {
		items = append(items, ToItemResponse(&materials[i].Item))
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// ListProducts returns a page of products
func (s *ItemService) ListProducts(ctx context.Context, filter shared.Filter) (*shared.Paginated[ItemResponse], error) {
	filter = filter.Normalize()
	products, total, err := s.repo.ListProducts(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]ItemResponse, 0, len(products))
	for i := range products {
		items = append(items, ToItemResponse(&products[i].Item))
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}
