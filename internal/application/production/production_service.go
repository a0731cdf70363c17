package production

import (
	"context"
	"time"

	appinv "github.com/bn4g2003/ThienPhuoc-sub000/internal/application/inventory"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/catalog"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/inventory"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/production"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/trade"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CodePrefix is the document prefix of production orders (sản xuất)
const CodePrefix = "SX"

// ProductionService drives production orders through their steps and raises the
// linked inventory transactions in the same unit of work
type ProductionService struct {
	scope           TransactionScope
	orderRepo       production.ProductionOrderRepository
	bomRepo         production.BOMRepository
	balanceRepo     inventory.BalanceRepository
	eventPublisher  shared.EventPublisher
	businessMetrics *telemetry.BusinessMetrics
	logger          *zap.Logger
}

// NewProductionService creates a new ProductionService
func NewProductionService(
	scope TransactionScope,
	orderRepo production.ProductionOrderRepository,
	bomRepo production.BOMRepository,
	balanceRepo inventory.BalanceRepository,
	logger *zap.Logger,
) *ProductionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductionService{
		scope:       scope,
		orderRepo:   orderRepo,
		bomRepo:     bomRepo,
		balanceRepo: balanceRepo,
		logger:      logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *ProductionService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetBusinessMetrics sets the business metrics recorder
func (s *ProductionService) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.businessMetrics = bm
}

// Create opens a production order for the product lines of a sales order
func (s *ProductionService) Create(ctx context.Context, req CreateProductionOrderRequest, actorID uuid.UUID) (*ProductionOrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "production_order", "create",
		telemetry.WithAttribute("sales_order_id", req.SalesOrderID.String()),
	)
	defer span.End()

	var p *production.ProductionOrder
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.OrderRepo().FindByID(ctx, req.SalesOrderID)
		if err != nil {
			return err
		}
		if order.Kind != trade.OrderKindSales {
			return shared.NewValidationError("NOT_A_SALES_ORDER", "order %s is not a sales order", order.Code)
		}
		if order.Status == trade.OrderStatusCancelled {
			return shared.NewConflictError("ORDER_CANCELLED", "order %s is cancelled", order.Code)
		}

		if err := checkWarehouse(ctx, repos, req.MaterialWarehouseID, catalog.ItemKindMaterial); err != nil {
			return err
		}
		if err := checkWarehouse(ctx, repos, req.ProductWarehouseID, catalog.ItemKindProduct); err != nil {
			return err
		}

		var lines []production.ProductionLine
		for _, l := range order.ProductLines() {
			lines = append(lines, production.ProductionLine{
				ID:        uuid.New(),
				ProductID: *l.Item.ProductID,
				Quantity:  l.Quantity,
			})
		}

		code, err := shared.NextDocumentCode(ctx, repos.Sequences(), CodePrefix, time.Now())
		if err != nil {
			return err
		}
		p, err = production.NewProductionOrder(code, order.ID, lines, req.MaterialWarehouseID, req.ProductWarehouseID, actorID)
		if err != nil {
			return err
		}
		return repos.ProductionOrderRepo().Create(ctx, p)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("production order created",
		zap.String("code", p.Code),
		zap.String("sales_order_id", p.SalesOrderID.String()),
	)
	resp := ToProductionOrderResponse(p)
	return &resp, nil
}

// GetByID returns a production order with its step history
func (s *ProductionService) GetByID(ctx context.Context, id uuid.UUID) (*ProductionOrderResponse, error) {
	p, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToProductionOrderResponse(p)
	return &resp, nil
}

// List returns a page of production orders
func (s *ProductionService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[ProductionOrderResponse], error) {
	filter = filter.Normalize()
	orders, total, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]ProductionOrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, ToProductionOrderResponse(&orders[i]))
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// MaterialRequirements computes the planned material quantities of an order.
// It only reads and may be called any number of times.
func (s *ProductionService) MaterialRequirements(ctx context.Context, id uuid.UUID) (*MaterialRequirementsResponse, error) {
	p, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	bom, err := s.bomRepo.FindByProducts(ctx, p.ProductIDs())
	if err != nil {
		return nil, err
	}
	reqs := production.ComputeMaterialRequirements(p.Lines, bom)

	refs := make([]catalog.ItemRef, 0, len(reqs))
	for _, r := range reqs {
		refs = append(refs, catalog.MaterialRef(r.MaterialID))
	}
	available, err := s.balanceRepo.Quantities(ctx, p.MaterialWarehouseID, refs)
	if err != nil {
		return nil, err
	}

	resp := &MaterialRequirementsResponse{
		ProductionOrderID:  p.ID,
		WarehouseID:        p.MaterialWarehouseID,
		Materials:          make([]MaterialRequirementResponse, 0, len(reqs)),
		ProductsWithoutBOM: production.ProductsWithoutBOM(p.Lines, bom),
	}
	for _, r := range reqs {
		have := available[catalog.MaterialRef(r.MaterialID).Key()]
		shortage := r.Quantity.Sub(have)
		if shortage.IsNegative() {
			shortage = decimal.Zero
		}
		resp.Materials = append(resp.Materials, MaterialRequirementResponse{
			MaterialID: r.MaterialID,
			Required:   r.Quantity,
			Available:  have,
			Shortage:   shortage,
		})
	}
	return resp, nil
}

// RecordMaterialImport raises the material issue transaction sized by the BOM
// and starts production, without leaving MATERIAL_IMPORT
func (s *ProductionService) RecordMaterialImport(ctx context.Context, id, actorID uuid.UUID) (*ProductionOrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "production_order", "record_material_import",
		telemetry.WithAttribute("production_order_id", id.String()),
	)
	defer span.End()

	var p *production.ProductionOrder
	var raised []*inventory.InventoryTransaction
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		p, err = repos.ProductionOrderRepo().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		tx, err := issueMaterials(ctx, repos, p, actorID)
		if err != nil {
			return err
		}
		raised = append(raised, tx)
		return repos.ProductionOrderRepo().Save(ctx, p)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("production materials issued",
		zap.String("code", p.Code),
		zap.String("transaction_code", raised[0].Code),
	)
	s.publish(ctx, p, raised...)
	resp := ToProductionOrderResponse(p)
	return &resp, nil
}

// AdvanceStep moves the order to its next step. Leaving MATERIAL_IMPORT issues
// materials first when that has not happened yet.
func (s *ProductionService) AdvanceStep(ctx context.Context, id uuid.UUID, req AdvanceStepRequest, actorID uuid.UUID) (*ProductionOrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "production_order", "advance_step",
		telemetry.WithAttribute("production_order_id", id.String()),
		telemetry.WithAttribute("next_step", req.NextStep),
	)
	defer span.End()

	target, err := production.ParseStep(req.NextStep)
	if err != nil {
		return nil, err
	}

	var p *production.ProductionOrder
	var raised []*inventory.InventoryTransaction
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		p, err = repos.ProductionOrderRepo().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if p.CurrentStep == production.StepMaterialImport && p.CurrentStep.CanAdvanceTo(target) &&
			p.Status != production.ProductionStatusCompleted && !p.MaterialIssued() {
			tx, err := issueMaterials(ctx, repos, p, actorID)
			if err != nil {
				return err
			}
			raised = append(raised, tx)
		}
		if err := p.AdvanceTo(target, actorID, req.Note); err != nil {
			return err
		}
		return repos.ProductionOrderRepo().Save(ctx, p)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("production step advanced",
		zap.String("code", p.Code),
		zap.String("step", string(p.CurrentStep)),
	)
	s.businessMetrics.RecordProductionStep(ctx, string(p.CurrentStep))
	s.publish(ctx, p, raised...)
	resp := ToProductionOrderResponse(p)
	return &resp, nil
}

// RecordFinishedGoodsReceipt raises the finished goods receipt into the product
// warehouse and completes the order
func (s *ProductionService) RecordFinishedGoodsReceipt(ctx context.Context, id, actorID uuid.UUID) (*ProductionOrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "production_order", "record_finished_goods_receipt",
		telemetry.WithAttribute("production_order_id", id.String()),
	)
	defer span.End()

	var p *production.ProductionOrder
	var receipt *inventory.InventoryTransaction
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		p, err = repos.ProductionOrderRepo().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := p.ReadyForReceipt(); err != nil {
			return err
		}

		lines := make([]inventory.TransactionLine, 0, len(p.Lines))
		for _, l := range p.Lines {
			line, err := inventory.NewTransactionLine(catalog.ProductRef(l.ProductID), l.Quantity, decimal.NullDecimal{})
			if err != nil {
				return err
			}
			lines = append(lines, line)
		}
		to := p.ProductWarehouseID
		receipt, err = inventory.NewInventoryTransaction(inventory.TransactionTypeReceipt, nil, &to, lines,
			"Nhập kho thành phẩm "+p.Code, actorID)
		if err != nil {
			return err
		}
		receipt.LinkProductionOrder(p.ID)
		if err := appinv.CreateWithinScope(ctx, repos, receipt, time.Now()); err != nil {
			return err
		}
		if err := p.Complete(receipt.ID, actorID); err != nil {
			return err
		}
		return repos.ProductionOrderRepo().Save(ctx, p)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("production order completed",
		zap.String("code", p.Code),
		zap.String("transaction_code", receipt.Code),
	)
	s.businessMetrics.RecordProductionStep(ctx, string(production.ProductionStatusCompleted))
	s.publish(ctx, p, receipt)
	resp := ToProductionOrderResponse(p)
	return &resp, nil
}

// issueMaterials creates the XUAT transaction for the BOM requirements and links it to the order
func issueMaterials(ctx context.Context, repos TransactionalRepositories, p *production.ProductionOrder, actorID uuid.UUID) (*inventory.InventoryTransaction, error) {
	if err := p.ReadyForMaterialIssue(); err != nil {
		return nil, err
	}
	bom, err := repos.BOMRepo().FindByProducts(ctx, p.ProductIDs())
	if err != nil {
		return nil, err
	}
	reqs := production.ComputeMaterialRequirements(p.Lines, bom)
	if len(reqs) == 0 {
		return nil, shared.NewValidationError("NO_MATERIAL_REQUIREMENTS", "order %s has no bill of materials to issue", p.Code).
			WithDetail("products_without_bom", production.ProductsWithoutBOM(p.Lines, bom))
	}

	lines := make([]inventory.TransactionLine, 0, len(reqs))
	for _, r := range reqs {
		line, err := inventory.NewTransactionLine(catalog.MaterialRef(r.MaterialID), r.Quantity, decimal.NullDecimal{})
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	from := p.MaterialWarehouseID
	tx, err := inventory.NewInventoryTransaction(inventory.TransactionTypeIssue, &from, nil, lines,
		"Xuất nguyên vật liệu cho "+p.Code, actorID)
	if err != nil {
		return nil, err
	}
	tx.LinkProductionOrder(p.ID)
	if err := appinv.CreateWithinScope(ctx, repos, tx, time.Now()); err != nil {
		return nil, err
	}
	if err := p.RecordMaterialIssue(tx.ID, actorID); err != nil {
		return nil, err
	}
	return tx, nil
}

func checkWarehouse(ctx context.Context, repos TransactionalRepositories, id uuid.UUID, kind catalog.ItemKind) error {
	w, err := repos.WarehouseRepo().FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !w.Type.Accepts(kind) {
		return shared.NewValidationError("ITEM_TYPE_MISMATCH", "warehouse %s (%s) cannot hold %s", w.Code, w.Type, kind).
			WithDetail("warehouse_id", w.ID.String())
	}
	return nil
}

func (s *ProductionService) publish(ctx context.Context, p *production.ProductionOrder, txs ...*inventory.InventoryTransaction) {
	events := p.PullDomainEvents()
	for _, tx := range txs {
		events = append(events, tx.PullDomainEvents()...)
	}
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish production events",
			zap.String("code", p.Code),
			zap.Error(err),
		)
	}
}
