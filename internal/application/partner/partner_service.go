package partner

import (
	"context"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/partner"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// PartnerService manages customers and suppliers. Debt amounts are not editable here.
type PartnerService struct {
	repo partner.PartnerRepository
}

// NewPartnerService creates a new PartnerService
func NewPartnerService(repo partner.PartnerRepository) *PartnerService {
	return &PartnerService{repo: repo}
}

// Create creates a partner with its opening debt
func (s *PartnerService) Create(ctx context.Context, req CreatePartnerRequest) (*PartnerResponse, error) {
	pt, err := partner.ParsePartnerType(req.Type)
	if err != nil {
		return nil, err
	}
	p, err := partner.NewPartner(req.BranchID, pt, req.Code, req.Name, req.OpeningDebt)
	if err != nil {
		return nil, err
	}
	p.SetContact(req.Phone, req.Email, req.Address)
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	resp := ToPartnerResponse(p)
	return &resp, nil
}

// GetByID returns one partner
func (s *PartnerService) GetByID(ctx context.Context, id uuid.UUID) (*PartnerResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToPartnerResponse(p)
	return &resp, nil
}

// List returns a page of partners, optionally of one type
func (s *PartnerService) List(ctx context.Context, filter PartnerListFilter) (*shared.Paginated[PartnerResponse], error) {
	var pt partner.PartnerType
	if filter.Type != "" {
		parsed, err := partner.ParsePartnerType(filter.Type)
		if err != nil {
			return nil, err
		}
		pt = parsed
	}
	f := shared.Filter{Page: filter.Page, PageSize: filter.PageSize, OrderBy: "created_at", OrderDir: "desc"}.Normalize()
	partners, total, err := s.repo.FindAll(ctx, pt, f)
	if err != nil {
		return nil, err
	}
	items := make([]PartnerResponse, 0, len(partners))
	for i := range partners {
		items = append(items, ToPartnerResponse(&partners[i]))
	}
	page := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &page, nil
}
