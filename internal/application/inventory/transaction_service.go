package inventory

import (
	"context"
	"time"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/catalog"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/inventory"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TransactionService is the inventory transaction engine.
// Creation records intent after a feasibility check; approval is the only point where balances move.
type TransactionService struct {
	scope           TransactionScope
	txRepo          inventory.TransactionRepository
	eventPublisher  shared.EventPublisher
	businessMetrics *telemetry.BusinessMetrics
	logger          *zap.Logger
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(scope TransactionScope, txRepo inventory.TransactionRepository, logger *zap.Logger) *TransactionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TransactionService{scope: scope, txRepo: txRepo, logger: logger}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *TransactionService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetBusinessMetrics sets the business metrics recorder
func (s *TransactionService) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.businessMetrics = bm
}

// Create validates and records a PENDING transaction with a generated code
func (s *TransactionService) Create(ctx context.Context, req CreateTransactionRequest, actorID uuid.UUID) (*TransactionResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "inventory_transaction", "create",
		telemetry.WithAttribute("type", req.Type),
		telemetry.WithAttribute("lines", len(req.Items)),
	)
	defer span.End()

	lines, err := ToLines(req.Items)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	tx, err := inventory.NewInventoryTransaction(inventory.TransactionType(req.Type), req.FromWarehouseID, req.ToWarehouseID, lines, req.Notes, actorID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		return CreateWithinScope(ctx, repos, tx, time.Now())
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttribute(span, "code", tx.Code)
	s.logger.Info("inventory transaction created",
		zap.String("code", tx.Code),
		zap.String("type", string(tx.Type)),
		zap.Int("lines", len(tx.Lines)),
	)
	s.businessMetrics.RecordInventoryTransaction(ctx, string(tx.Type), string(tx.Status))
	s.publish(ctx, tx)
	resp := ToTransactionResponse(tx)
	return &resp, nil
}

// CreateWithinScope checks items, warehouse types and committed stock, then stores tx in PENDING.
// It runs inside the caller's transaction so production orders can raise transactions atomically.
func CreateWithinScope(ctx context.Context, repos TransactionalRepositories, tx *inventory.InventoryTransaction, day time.Time) error {
	for _, l := range tx.Lines {
		ok, err := repos.ItemRepo().Exists(ctx, l.Item)
		if err != nil {
			return err
		}
		if !ok {
			return shared.NewNotFoundError(string(l.Item.Kind()), l.Item.ID())
		}
	}

	from, err := findWarehouse(ctx, repos.WarehouseRepo(), tx.FromWarehouseID)
	if err != nil {
		return err
	}
	to, err := findWarehouse(ctx, repos.WarehouseRepo(), tx.ToWarehouseID)
	if err != nil {
		return err
	}
	if err := inventory.CheckCompatibility(tx, from, to); err != nil {
		return err
	}

	if demand := tx.OutboundDemand(); len(demand) > 0 {
		available, err := repos.BalanceRepo().Quantities(ctx, *tx.FromWarehouseID, demandItems(demand))
		if err != nil {
			return err
		}
		if shortages := inventory.FindShortages(demand, available); len(shortages) > 0 {
			return inventory.ShortageError(shared.KindValidation, shortages)
		}
	}

	code, err := shared.NextDocumentCode(ctx, repos.Sequences(), tx.Type.CodePrefix(), day)
	if err != nil {
		return err
	}
	if err := tx.AssignCode(code); err != nil {
		return err
	}
	return repos.TransactionRepo().Create(ctx, tx)
}

// Approve applies the transaction's movements and marks it APPROVED.
// Issue legs are re-checked under row locks; stock consumed since creation fails with a conflict
// and leaves the transaction PENDING.
func (s *TransactionService) Approve(ctx context.Context, id, actorID uuid.UUID) (*TransactionResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "inventory_transaction", "approve",
		telemetry.WithAttribute("transaction_id", id.String()),
	)
	defer span.End()

	var tx *inventory.InventoryTransaction
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		tx, err = ApproveWithinScope(ctx, repos, id, actorID)
		return err
	})
	if err != nil {
		telemetry.RecordError(span, err)
		s.logger.Warn("inventory transaction approval failed",
			zap.String("transaction_id", id.String()),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("inventory transaction approved",
		zap.String("code", tx.Code),
		zap.String("type", string(tx.Type)),
	)
	s.businessMetrics.RecordInventoryTransaction(ctx, string(tx.Type), string(tx.Status))
	s.publish(ctx, tx)
	resp := ToTransactionResponse(tx)
	return &resp, nil
}

// ApproveWithinScope performs the approval inside the caller's transaction
func ApproveWithinScope(ctx context.Context, repos TransactionalRepositories, id, actorID uuid.UUID) (*inventory.InventoryTransaction, error) {
	tx, err := repos.TransactionRepo().FindByIDForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := tx.Approve(actorID); err != nil {
		return nil, err
	}

	var shortages []inventory.Shortage
	for _, m := range tx.Movements() {
		balance, err := repos.BalanceRepo().GetOrCreateForUpdate(ctx, m.WarehouseID, m.Item)
		if err != nil {
			return nil, err
		}
		if m.Delta.IsNegative() && balance.Quantity.LessThan(m.Delta.Neg()) {
			shortages = append(shortages, inventory.Shortage{
				Item:      m.Item,
				Requested: m.Delta.Neg(),
				Available: balance.Quantity,
			})
			continue
		}
		if err := balance.Apply(m.Delta); err != nil {
			return nil, err
		}
		if err := repos.BalanceRepo().Save(ctx, balance); err != nil {
			return nil, err
		}
	}
	if len(shortages) > 0 {
		return nil, inventory.ShortageError(shared.KindConflict, shortages)
	}

	if err := repos.TransactionRepo().UpdateStatus(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// Reject marks a PENDING transaction REJECTED without touching stock
func (s *TransactionService) Reject(ctx context.Context, id, actorID uuid.UUID, reason string) (*TransactionResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "inventory_transaction", "reject",
		telemetry.WithAttribute("transaction_id", id.String()),
	)
	defer span.End()

	var tx *inventory.InventoryTransaction
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		tx, err = repos.TransactionRepo().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := tx.Reject(actorID, reason); err != nil {
			return err
		}
		return repos.TransactionRepo().UpdateStatus(ctx, tx)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("inventory transaction rejected",
		zap.String("code", tx.Code),
		zap.String("reason", tx.RejectReason),
	)
	s.businessMetrics.RecordInventoryTransaction(ctx, string(tx.Type), string(tx.Status))
	s.publish(ctx, tx)
	resp := ToTransactionResponse(tx)
	return &resp, nil
}

// GetByID returns a transaction with its lines
func (s *TransactionService) GetByID(ctx context.Context, id uuid.UUID) (*TransactionResponse, error) {
	tx, err := s.txRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToTransactionResponse(tx)
	return &resp, nil
}

// List returns a page of transactions
func (s *TransactionService) List(ctx context.Context, filter TransactionListFilter) (*shared.Paginated[TransactionResponse], error) {
	f := inventory.TransactionFilter{
		Filter:      shared.Filter{Page: filter.Page, PageSize: filter.PageSize, OrderBy: "created_at", OrderDir: "desc"}.Normalize(),
		Type:        inventory.TransactionType(filter.Type),
		Status:      inventory.TransactionStatus(filter.Status),
		WarehouseID: filter.WarehouseID,
	}
	txs, total, err := s.txRepo.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]TransactionResponse, 0, len(txs))
	for i := range txs {
		items = append(items, ToTransactionResponse(&txs[i]))
	}
	page := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &page, nil
}

// publish publishes the events the transaction raised; failures are logged only
func (s *TransactionService) publish(ctx context.Context, tx *inventory.InventoryTransaction) {
	events := tx.PullDomainEvents()
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish inventory events",
			zap.String("code", tx.Code),
			zap.Error(err),
		)
	}
}

func findWarehouse(ctx context.Context, repo inventory.WarehouseRepository, id *uuid.UUID) (*inventory.Warehouse, error) {
	if id == nil {
		return nil, nil
	}
	return repo.FindByID(ctx, *id)
}

func demandItems(demand map[catalog.Key]decimal.Decimal) []catalog.ItemRef {
	refs := make([]catalog.ItemRef, 0, len(demand))
	for k := range demand {
		refs = append(refs, k.Ref())
	}
	return refs
}
