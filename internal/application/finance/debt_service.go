package finance

import (
	"context"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/finance"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/partner"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DebtService answers read-only questions about the debt ledger
type DebtService struct {
	debtRepo    finance.DebtRecordRepository
	paymentRepo finance.DebtPaymentRepository
	partnerRepo partner.PartnerRepository
	orderRepo   trade.OrderRepository
}

// NewDebtService creates a new DebtService
func NewDebtService(
	debtRepo finance.DebtRecordRepository,
	paymentRepo finance.DebtPaymentRepository,
	partnerRepo partner.PartnerRepository,
	orderRepo trade.OrderRepository,
) *DebtService {
	return &DebtService{
		debtRepo:    debtRepo,
		paymentRepo: paymentRepo,
		partnerRepo: partnerRepo,
		orderRepo:   orderRepo,
	}
}

// List returns a page of debt records
func (s *DebtService) List(ctx context.Context, filter DebtListFilter) (*shared.Paginated[DebtRecordResponse], error) {
	f := finance.DebtFilter{
		Filter:    shared.Filter{Page: filter.Page, PageSize: filter.PageSize, OrderBy: "created_at", OrderDir: "desc"}.Normalize(),
		PartnerID: filter.PartnerID,
		DebtType:  finance.DebtType(filter.DebtType),
		Status:    finance.DebtStatus(filter.Status),
	}
	records, total, err := s.debtRepo.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]DebtRecordResponse, 0, len(records))
	for i := range records {
		items = append(items, ToDebtRecordResponse(&records[i]))
	}
	page := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &page, nil
}

// Payments returns the immutable payment history of one debt record, oldest first
func (s *DebtService) Payments(ctx context.Context, debtRecordID uuid.UUID) ([]DebtPaymentResponse, error) {
	if _, err := s.debtRepo.FindByID(ctx, debtRecordID); err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.ListByDebtRecord(ctx, debtRecordID)
	if err != nil {
		return nil, err
	}
	out := make([]DebtPaymentResponse, 0, len(payments))
	for i := range payments {
		out = append(out, ToDebtPaymentResponse(&payments[i]))
	}
	return out, nil
}

// Summary reports a partner's running debt next to what its open orders still owe
func (s *DebtService) Summary(ctx context.Context, partnerID uuid.UUID) (*DebtSummaryResponse, error) {
	p, err := s.partnerRepo.FindByID(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	dir, err := finance.DirectionFor(p.Type)
	if err != nil {
		return nil, err
	}
	open, err := s.orderRepo.FindOpenByPartner(ctx, p.ID, dir.OrderKind)
	if err != nil {
		return nil, err
	}
	remaining := decimal.Zero
	for _, o := range open {
		remaining = remaining.Add(o.Remaining())
	}
	last, err := s.paymentRepo.LastPaymentDate(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return &DebtSummaryResponse{
		PartnerID:       p.ID,
		PartnerType:     string(p.Type),
		PartnerName:     p.Name,
		DebtAmount:      p.DebtAmount,
		OpenOrders:      len(open),
		OpenRemaining:   remaining,
		LastPaymentDate: last,
	}, nil
}
