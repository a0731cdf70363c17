package finance

import (
	"context"
	"fmt"
	"time"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/finance"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/partner"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/trade"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SettlementService is the debt settlement engine: it allocates partner payments
// across open orders and keeps orders, debt records, the payment ledger,
// partner debt and bank balances consistent in one unit of work.
type SettlementService struct {
	scope           TransactionScope
	eventPublisher  shared.EventPublisher
	businessMetrics *telemetry.BusinessMetrics
	logger          *zap.Logger
}

// NewSettlementService creates a new SettlementService
func NewSettlementService(scope TransactionScope, logger *zap.Logger) *SettlementService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettlementService{scope: scope, logger: logger}
}

// SetEventPublisher sets the publisher used after a settlement commits
func (s *SettlementService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetBusinessMetrics sets the business metrics recorder
func (s *SettlementService) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.businessMetrics = bm
}

// SettlePayment applies a payment FIFO across the partner's open orders, or to a single
// target order. The whole allocation commits or rolls back as one unit.
func (s *SettlementService) SettlePayment(ctx context.Context, req SettlePaymentRequest, actorID uuid.UUID) (*finance.SettlementResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "settlement", "settle_payment",
		telemetry.WithAttribute("partner_id", req.PartnerID.String()),
		telemetry.WithAttribute(telemetry.SpanAttrAmount, req.Amount.String()),
	)
	defer span.End()

	partnerType, err := partner.ParsePartnerType(req.PartnerType)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	dir, err := finance.DirectionFor(partnerType)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if !req.Amount.IsPositive() {
		return nil, shared.NewValidationError("INVALID_AMOUNT", "payment amount must be positive")
	}
	method, err := finance.ParsePaymentMethod(req.Method)
	if err != nil {
		return nil, err
	}
	paymentDate := time.Now()
	if req.PaymentDate != nil && !req.PaymentDate.IsZero() {
		paymentDate = *req.PaymentDate
	}

	var result *finance.SettlementResult
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		p, err := repos.PartnerRepo().FindByIDForUpdate(ctx, req.PartnerID)
		if err != nil {
			return err
		}
		if p.Type != partnerType {
			return shared.NewValidationError("PARTNER_TYPE_MISMATCH", "partner %s is a %s, not a %s", p.Code, p.Type, partnerType)
		}

		orders, err := openOrders(ctx, repos.OrderRepo(), p, dir, req.TargetOrderID)
		if err != nil {
			return err
		}
		targets := make([]finance.AllocationTarget, 0, len(orders))
		byID := make(map[uuid.UUID]*trade.Order, len(orders))
		for _, o := range orders {
			byID[o.ID] = o
			targets = append(targets, finance.AllocationTarget{
				ID:          o.ID,
				Code:        o.Code,
				Outstanding: o.Remaining(),
				CreatedAt:   o.CreatedAt,
			})
		}

		openTotal := finance.OpenTotal(targets)
		if req.Amount.GreaterThan(openTotal) {
			return shared.NewValidationError("OVERPAYMENT", "payment %s exceeds open debt %s",
				shared.FormatVND(req.Amount), shared.FormatVND(openTotal)).
				WithDetail("requested", req.Amount.String()).
				WithDetail("open_total", openTotal.String())
		}

		allocation, err := finance.AllocateFIFO(req.Amount, targets)
		if err != nil {
			return err
		}

		var bank *finance.BankAccount
		if req.BankAccountID != nil {
			bank, err = repos.BankAccountRepo().FindByIDForUpdate(ctx, *req.BankAccountID)
			if err != nil {
				return err
			}
		}

		receiptNo, err := shared.NextDocumentCode(ctx, repos.Sequences(), dir.ReceiptPrefix, paymentDate)
		if err != nil {
			return err
		}

		res := &finance.SettlementResult{
			SettlementID:  uuid.New(),
			ReceiptNo:     receiptNo,
			PartnerID:     p.ID,
			PartnerType:   p.Type,
			PartnerName:   p.Name,
			PaymentDate:   paymentDate,
			Method:        method,
			BankAccountID: req.BankAccountID,
			TotalApplied:  decimal.Zero,
		}

		for _, a := range allocation.Allocations {
			o := byID[a.TargetID]
			line, err := applyToOrder(ctx, repos, res, dir, o, a.Amount, req.Notes, actorID)
			if err != nil {
				return err
			}
			res.Allocations = append(res.Allocations, *line)
			res.TotalApplied = res.TotalApplied.Add(line.Applied)
		}
		res.OrdersUpdated = len(res.Allocations)

		p.ReduceDebt(res.TotalApplied)
		if err := repos.PartnerRepo().Save(ctx, p); err != nil {
			return err
		}
		res.PartnerDebtAfter = p.DebtAmount

		if bank != nil {
			if err := bank.Adjust(dir.BankDelta(res.TotalApplied)); err != nil {
				return err
			}
			if err := repos.BankAccountRepo().Save(ctx, bank); err != nil {
				return err
			}
			balance := bank.Balance
			res.BankBalanceAfter = &balance
		}

		result = res
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		s.logger.Warn("settlement failed",
			zap.String("partner_id", req.PartnerID.String()),
			zap.String("amount", req.Amount.String()),
			zap.Error(err),
		)
		return nil, err
	}

	telemetry.SetAttributes(span,
		"receipt_no", result.ReceiptNo,
		"orders_updated", result.OrdersUpdated,
	)
	s.logger.Info("payment settled",
		zap.String("receipt_no", result.ReceiptNo),
		zap.String("partner_id", result.PartnerID.String()),
		zap.String("total_applied", result.TotalApplied.String()),
		zap.Int("orders_updated", result.OrdersUpdated),
	)
	s.businessMetrics.RecordSettlement(ctx, string(result.PartnerType), string(result.Method), result.TotalApplied, result.OrdersUpdated)

	if s.eventPublisher != nil {
		receipt := finance.NewSettlementReceipt(result, req.Notes)
		if err := s.eventPublisher.Publish(ctx, finance.NewPaymentSettledEvent(receipt)); err != nil {
			s.logger.Error("failed to publish settlement event",
				zap.String("receipt_no", result.ReceiptNo),
				zap.Error(err),
			)
		}
	}
	return result, nil
}

// openOrders locks the orders a settlement may touch
func openOrders(ctx context.Context, orders trade.OrderRepository, p *partner.Partner, dir finance.Direction, targetID *uuid.UUID) ([]*trade.Order, error) {
	if targetID == nil {
		open, err := orders.FindOpenByPartnerForUpdate(ctx, p.ID, dir.OrderKind)
		if err != nil {
			return nil, err
		}
		if len(open) == 0 {
			return nil, shared.NewDomainError(shared.KindNotFound, "NOTHING_TO_SETTLE",
				fmt.Sprintf("partner %s has no open orders: nothing to settle", p.Code))
		}
		return open, nil
	}

	o, err := orders.FindByIDForUpdate(ctx, *targetID)
	if err != nil {
		return nil, err
	}
	if o.PartnerID != p.ID || o.Kind != dir.OrderKind {
		return nil, shared.NewValidationError("ORDER_PARTNER_MISMATCH", "order %s does not belong to partner %s", o.Code, p.Code).
			WithDetail("order_id", o.ID.String())
	}
	if !o.IsOpen() {
		return nil, shared.NewValidationError("ORDER_NOT_OPEN", "order %s has nothing left to pay", o.Code).
			WithDetail("order_id", o.ID.String()).
			WithDetail("remaining", o.Remaining().String())
	}
	return []*trade.Order{o}, nil
}

// applyToOrder books one allocation: order paid amount, debt record, ledger entry
func applyToOrder(
	ctx context.Context,
	repos TransactionalRepositories,
	res *finance.SettlementResult,
	dir finance.Direction,
	o *trade.Order,
	amount decimal.Decimal,
	notes string,
	actorID uuid.UUID,
) (*finance.OrderAllocation, error) {
	paidBefore := o.PaidAmount
	applied, err := o.ApplyPayment(amount)
	if err != nil {
		return nil, err
	}
	if err := repos.OrderRepo().Save(ctx, o); err != nil {
		return nil, err
	}

	seed := finance.NewDebtRecord(dir.KeyFor(o.ID), o.PartnerID, o.FinalAmount, paidBefore)
	record, err := repos.DebtRecordRepo().GetOrCreateForUpdate(ctx, seed)
	if err != nil {
		return nil, err
	}
	if err := record.ApplyPayment(applied); err != nil {
		return nil, err
	}
	if err := repos.DebtRecordRepo().Save(ctx, record); err != nil {
		return nil, err
	}

	payment, err := finance.NewDebtPayment(res.SettlementID, record, applied, res.PaymentDate, res.Method, res.BankAccountID, notes, actorID)
	if err != nil {
		return nil, err
	}
	if err := repos.DebtPaymentRepo().Append(ctx, payment); err != nil {
		return nil, err
	}

	return &finance.OrderAllocation{
		OrderID:        o.ID,
		OrderCode:      o.Code,
		Applied:        applied,
		RemainingAfter: o.Remaining(),
		PaymentStatus:  o.PaymentStatus,
		DebtRecordID:   record.ID,
		DebtPaymentID:  payment.ID,
	}, nil
}

// RegisterOrderDebt stores a new order and raises the partner's running debt by its final amount.
// It must run inside the caller's transaction.
func RegisterOrderDebt(ctx context.Context, repos TransactionalRepositories, o *trade.Order) error {
	p, err := repos.PartnerRepo().FindByIDForUpdate(ctx, o.PartnerID)
	if err != nil {
		return err
	}
	dir, err := finance.DirectionFor(p.Type)
	if err != nil {
		return err
	}
	if dir.OrderKind != o.Kind {
		return shared.NewValidationError("ORDER_KIND_MISMATCH", "a %s order cannot be placed for %s partner %s", o.Kind, p.Type, p.Code)
	}
	if err := repos.OrderRepo().Create(ctx, o); err != nil {
		return err
	}
	if err := p.IncreaseDebt(o.FinalAmount); err != nil {
		return err
	}
	return repos.PartnerRepo().Save(ctx, p)
}

// ReleaseOrderDebt cancels an unpaid order and lowers the partner's running debt, floored at zero.
// The partner row is locked before the order, the same order settlements lock them in.
func ReleaseOrderDebt(ctx context.Context, repos TransactionalRepositories, orderID uuid.UUID) (*trade.Order, error) {
	o, err := repos.OrderRepo().FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	p, err := repos.PartnerRepo().FindByIDForUpdate(ctx, o.PartnerID)
	if err != nil {
		return nil, err
	}
	o, err = repos.OrderRepo().FindByIDForUpdate(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := o.Cancel(); err != nil {
		return nil, err
	}
	if err := repos.OrderRepo().Save(ctx, o); err != nil {
		return nil, err
	}
	p.ReduceDebt(o.FinalAmount)
	if err := repos.PartnerRepo().Save(ctx, p); err != nil {
		return nil, err
	}
	return o, nil
}
