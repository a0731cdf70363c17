package trade

import (
	"context"
	"time"

	appfinance "github.com/bn4g2003/ThienPhuoc-sub000/internal/application/finance"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/catalog"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/trade"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderService handles sales and purchase orders. Creating and cancelling an order changes
// the partner's running debt, so both run in the settlement engine's unit of work.
type OrderService struct {
	scope           appfinance.TransactionScope
	orderRepo       trade.OrderRepository
	itemRepo        catalog.ItemRepository
	businessMetrics *telemetry.BusinessMetrics
	logger          *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(scope appfinance.TransactionScope, orderRepo trade.OrderRepository, itemRepo catalog.ItemRepository, logger *zap.Logger) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{scope: scope, orderRepo: orderRepo, itemRepo: itemRepo, logger: logger}
}

// SetBusinessMetrics sets the business metrics recorder
func (s *OrderService) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.businessMetrics = bm
}

// Create registers a new order and raises the partner's debt by its final amount
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest, actorID uuid.UUID) (*OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "create",
		telemetry.WithAttribute("kind", req.Kind),
		telemetry.WithAttribute("partner_id", req.PartnerID.String()),
	)
	defer span.End()

	kind := trade.OrderKind(req.Kind)
	if !kind.IsValid() {
		return nil, shared.NewValidationError("INVALID_ORDER_KIND", "order kind %q must be SALES or PURCHASE", req.Kind)
	}
	lines := make([]trade.OrderLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		line, err := trade.NewOrderLine(catalog.ItemRef{MaterialID: l.MaterialID, ProductID: l.ProductID}, l.Quantity, l.UnitPrice)
		if err != nil {
			return nil, err
		}
		ok, err := s.itemRepo.Exists(ctx, line.Item)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, shared.NewNotFoundError(string(line.Item.Kind()), line.Item.ID())
		}
		lines = append(lines, line)
	}

	var order *trade.Order
	err := s.scope.Execute(ctx, func(repos appfinance.TransactionalRepositories) error {
		code, err := shared.NextDocumentCode(ctx, repos.Sequences(), kind.CodePrefix(), time.Now())
		if err != nil {
			return err
		}
		order, err = trade.NewOrder(kind, code, req.PartnerID, lines, req.DiscountAmount, actorID)
		if err != nil {
			return err
		}
		order.SetNotes(req.Notes)
		return appfinance.RegisterOrderDebt(ctx, repos, order)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("order created",
		zap.String("code", order.Code),
		zap.String("kind", string(order.Kind)),
		zap.String("final_amount", order.FinalAmount.String()),
	)
	s.businessMetrics.RecordOrderWithAmount(ctx, string(order.Kind), order.FinalAmount)
	resp := ToOrderResponse(order)
	return &resp, nil
}

// Cancel cancels an unpaid order and releases its debt
func (s *OrderService) Cancel(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	var order *trade.Order
	err := s.scope.Execute(ctx, func(repos appfinance.TransactionalRepositories) error {
		var err error
		order, err = appfinance.ReleaseOrderDebt(ctx, repos, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("order cancelled", zap.String("code", order.Code))
	resp := ToOrderResponse(order)
	return &resp, nil
}

// Confirm moves a pending order to CONFIRMED
func (s *OrderService) Confirm(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := order.Confirm(); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	resp := ToOrderResponse(order)
	return &resp, nil
}

// GetByID returns one order with its lines
func (s *OrderService) GetByID(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(order)
	return &resp, nil
}

// List returns a page of orders
func (s *OrderService) List(ctx context.Context, filter OrderListFilter) (*shared.Paginated[OrderResponse], error) {
	f := trade.OrderFilter{
		Filter:    shared.Filter{Page: filter.Page, PageSize: filter.PageSize, OrderBy: "created_at", OrderDir: "desc"}.Normalize(),
		Kind:      trade.OrderKind(filter.Kind),
		PartnerID: filter.PartnerID,
		Status:    trade.OrderStatus(filter.Status),
	}
	orders, total, err := s.orderRepo.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, ToOrderResponse(&orders[i]))
	}
	page := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &page, nil
}
