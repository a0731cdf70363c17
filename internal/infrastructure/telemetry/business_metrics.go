package telemetry

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// Metric attribute keys
var (
	AttrPartnerType   = attribute.Key("partner_type")
	AttrPaymentMethod = attribute.Key("payment_method")
	AttrTxType        = attribute.Key("transaction_type")
	AttrTxStatus      = attribute.Key("transaction_status")
	AttrStep          = attribute.Key("production_step")
	AttrOrderKind     = attribute.Key("order_kind")
)

// ErrMeterNil is returned when no meter is supplied.
var ErrMeterNil = errors.New("business metrics: meter cannot be nil")

// PendingTransactionCounter reports how many inventory transactions wait for approval, per type.
type PendingTransactionCounter interface {
	CountPendingByType(ctx context.Context) (map[string]int64, error)
}

// BusinessMetricsConfig holds configuration for business metrics.
type BusinessMetricsConfig struct {
	Meter   metric.Meter
	Logger  *zap.Logger
	Pending PendingTransactionCounter
}

// BusinessMetrics records the ERP's business counters.
// Every Record method is a no-op on a nil receiver so services work without metrics.
type BusinessMetrics struct {
	logger *zap.Logger

	settlementTotal   metric.Int64Counter
	settlementAmount  metric.Float64Counter
	settlementOrders  metric.Int64Histogram
	inventoryTxTotal  metric.Int64Counter
	productionSteps   metric.Int64Counter
	orderCreatedTotal metric.Int64Counter
	orderAmountTotal  metric.Float64Counter
	pendingGauge      metric.Int64ObservableGauge
}

// NewBusinessMetrics creates the instruments on cfg.Meter.
func NewBusinessMetrics(cfg BusinessMetricsConfig) (*BusinessMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	bm := &BusinessMetrics{logger: logger}
	m := cfg.Meter

	var err error
	if bm.settlementTotal, err = m.Int64Counter("erp_settlement_total",
		metric.WithDescription("Settled payments"), metric.WithUnit("{settlements}")); err != nil {
		return nil, fmt.Errorf("failed to create settlement counter: %w", err)
	}
	if bm.settlementAmount, err = m.Float64Counter("erp_settlement_amount_total",
		metric.WithDescription("Settled amount in VND"), metric.WithUnit("VND")); err != nil {
		return nil, fmt.Errorf("failed to create settlement amount counter: %w", err)
	}
	if bm.settlementOrders, err = m.Int64Histogram("erp_settlement_orders",
		metric.WithDescription("Orders touched by one settlement"), metric.WithUnit("{orders}"),
		metric.WithExplicitBucketBoundaries(1, 2, 3, 5, 10, 20, 50)); err != nil {
		return nil, fmt.Errorf("failed to create settlement orders histogram: %w", err)
	}
	if bm.inventoryTxTotal, err = m.Int64Counter("erp_inventory_transaction_total",
		metric.WithDescription("Inventory transaction state changes"), metric.WithUnit("{transactions}")); err != nil {
		return nil, fmt.Errorf("failed to create inventory counter: %w", err)
	}
	if bm.productionSteps, err = m.Int64Counter("erp_production_step_total",
		metric.WithDescription("Production step changes"), metric.WithUnit("{steps}")); err != nil {
		return nil, fmt.Errorf("failed to create production counter: %w", err)
	}
	if bm.orderCreatedTotal, err = m.Int64Counter("erp_order_created_total",
		metric.WithDescription("Orders created"), metric.WithUnit("{orders}")); err != nil {
		return nil, fmt.Errorf("failed to create order counter: %w", err)
	}
	if bm.orderAmountTotal, err = m.Float64Counter("erp_order_amount_total",
		metric.WithDescription("Order final amount in VND"), metric.WithUnit("VND")); err != nil {
		return nil, fmt.Errorf("failed to create order amount counter: %w", err)
	}

	if cfg.Pending != nil {
		if bm.pendingGauge, err = m.Int64ObservableGauge("erp_inventory_pending_transactions",
			metric.WithDescription("Inventory transactions waiting for approval"), metric.WithUnit("{transactions}")); err != nil {
			return nil, fmt.Errorf("failed to create pending gauge: %w", err)
		}
		pending := cfg.Pending
		if _, err = m.RegisterCallback(func(ctx context.Context, o metric.Observer) error {
			counts, err := pending.CountPendingByType(ctx)
			if err != nil {
				bm.logger.Warn("failed to count pending inventory transactions", zap.Error(err))
				return nil
			}
			for txType, n := range counts {
				o.ObserveInt64(bm.pendingGauge, n, metric.WithAttributes(AttrTxType.String(txType)))
			}
			return nil
		}, bm.pendingGauge); err != nil {
			return nil, fmt.Errorf("failed to register pending gauge callback: %w", err)
		}
	}
	return bm, nil
}

// RecordSettlement records one committed settlement.
func (bm *BusinessMetrics) RecordSettlement(ctx context.Context, partnerType, method string, applied decimal.Decimal, ordersUpdated int) {
	if bm == nil {
		return
	}
	attrs := metric.WithAttributes(AttrPartnerType.String(partnerType), AttrPaymentMethod.String(method))
	bm.settlementTotal.Add(ctx, 1, attrs)
	bm.settlementAmount.Add(ctx, applied.InexactFloat64(), attrs)
	bm.settlementOrders.Record(ctx, int64(ordersUpdated), attrs)
}

// RecordInventoryTransaction records a transaction reaching status.
func (bm *BusinessMetrics) RecordInventoryTransaction(ctx context.Context, txType, status string) {
	if bm == nil {
		return
	}
	bm.inventoryTxTotal.Add(ctx, 1, metric.WithAttributes(AttrTxType.String(txType), AttrTxStatus.String(status)))
}

// RecordProductionStep records a production order reaching step.
func (bm *BusinessMetrics) RecordProductionStep(ctx context.Context, step string) {
	if bm == nil {
		return
	}
	bm.productionSteps.Add(ctx, 1, metric.WithAttributes(AttrStep.String(step)))
}

// RecordOrderWithAmount records an order creation and its final amount.
func (bm *BusinessMetrics) RecordOrderWithAmount(ctx context.Context, kind string, amount decimal.Decimal) {
	if bm == nil {
		return
	}
	attrs := metric.WithAttributes(AttrOrderKind.String(kind))
	bm.orderCreatedTotal.Add(ctx, 1, attrs)
	bm.orderAmountTotal.Add(ctx, amount.InexactFloat64(), attrs)
}
