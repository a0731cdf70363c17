package inventory

import (
	"sort"
	"strings"
	"time"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/catalog"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType is the kind of stock movement
type TransactionType string

const (
	TransactionTypeReceipt  TransactionType = "NHAP"   // goods in
	TransactionTypeIssue    TransactionType = "XUAT"   // goods out
	TransactionTypeTransfer TransactionType = "CHUYEN" // warehouse to warehouse
)

// IsValid returns true if the transaction type is known
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeReceipt, TransactionTypeIssue, TransactionTypeTransfer:
		return true
	}
	return false
}

// CodePrefix returns the document prefix: PN (phiếu nhập), PX (phiếu xuất), PCK (phiếu chuyển kho)
func (t TransactionType) CodePrefix() string {
	switch t {
	case TransactionTypeReceipt:
		return "PN"
	case TransactionTypeIssue:
		return "PX"
	default:
		return "PCK"
	}
}

// NeedsSource reports whether stock leaves a warehouse
func (t TransactionType) NeedsSource() bool {
	return t == TransactionTypeIssue || t == TransactionTypeTransfer
}

// NeedsDestination reports whether stock enters a warehouse
func (t TransactionType) NeedsDestination() bool {
	return t == TransactionTypeReceipt || t == TransactionTypeTransfer
}

// TransactionStatus is the approval state of a transaction
type TransactionStatus string

const (
	TransactionStatusPending  TransactionStatus = "PENDING"
	TransactionStatusApproved TransactionStatus = "APPROVED"
	TransactionStatusRejected TransactionStatus = "REJECTED"
)

// transactionTransitions is the complete transition table; anything absent is refused
var transactionTransitions = map[TransactionStatus][]TransactionStatus{
	TransactionStatusPending:  {TransactionStatusApproved, TransactionStatusRejected},
	TransactionStatusApproved: {},
	TransactionStatusRejected: {},
}

// IsValid returns true if the status is known
func (s TransactionStatus) IsValid() bool {
	_, ok := transactionTransitions[s]
	return ok
}

// IsTerminal returns true when no further transitions are possible
func (s TransactionStatus) IsTerminal() bool {
	return len(transactionTransitions[s]) == 0
}

// CanTransitionTo checks the transition table
func (s TransactionStatus) CanTransitionTo(next TransactionStatus) bool {
	for _, allowed := range transactionTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransactionLine is one item line of a transaction
type TransactionLine struct {
	ID        uuid.UUID
	Item      catalog.ItemRef
	Quantity  decimal.Decimal
	UnitPrice decimal.NullDecimal
}

// NewTransactionLine creates a validated line
func NewTransactionLine(item catalog.ItemRef, qty decimal.Decimal, unitPrice decimal.NullDecimal) (TransactionLine, error) {
	if err := item.Validate(); err != nil {
		return TransactionLine{}, err
	}
	if !qty.IsPositive() {
		return TransactionLine{}, shared.NewValidationError("INVALID_QUANTITY", "quantity for %s must be positive", item.Key()).
			WithDetail("item", item.Key().String())
	}
	if unitPrice.Valid && unitPrice.Decimal.IsNegative() {
		return TransactionLine{}, shared.NewValidationError("INVALID_PRICE", "unit price for %s cannot be negative", item.Key())
	}
	return TransactionLine{ID: uuid.New(), Item: item, Quantity: qty, UnitPrice: unitPrice}, nil
}

// Amount returns quantity × unit price, zero without a price
func (l TransactionLine) Amount() decimal.Decimal {
	if !l.UnitPrice.Valid {
		return decimal.Zero
	}
	return l.Quantity.Mul(l.UnitPrice.Decimal)
}

// Movement is a signed quantity change for one (warehouse, item) balance
type Movement struct {
	WarehouseID uuid.UUID
	Item        catalog.ItemRef
	Delta       decimal.Decimal
}

// InventoryTransaction is an approval-gated stock movement document.
// Balances change only when it is approved.
type InventoryTransaction struct {
	shared.BaseAggregateRoot
	Code              string
	Type              TransactionType
	Status            TransactionStatus
	FromWarehouseID   *uuid.UUID
	ToWarehouseID     *uuid.UUID
	Lines             []TransactionLine
	Notes             string
	ProductionOrderID *uuid.UUID
	CreatedBy         uuid.UUID
	ApprovedBy        *uuid.UUID
	ApprovedAt        *time.Time
	RejectedBy        *uuid.UUID
	RejectedAt        *time.Time
	RejectReason      string
}

// NewInventoryTransaction validates the document shape and creates it in PENDING.
// Stock feasibility and warehouse compatibility are checked separately against the store.
func NewInventoryTransaction(txType TransactionType, from, to *uuid.UUID, lines []TransactionLine, notes string, createdBy uuid.UUID) (*InventoryTransaction, error) {
	if !txType.IsValid() {
		return nil, shared.NewValidationError("INVALID_TRANSACTION_TYPE", "transaction type %q must be NHAP, XUAT or CHUYEN", txType)
	}
	if txType.NeedsSource() && from == nil {
		return nil, shared.NewValidationError("SOURCE_WAREHOUSE_REQUIRED", "%s transaction requires a source warehouse", txType)
	}
	if txType.NeedsDestination() && to == nil {
		return nil, shared.NewValidationError("DESTINATION_WAREHOUSE_REQUIRED", "%s transaction requires a destination warehouse", txType)
	}
	if !txType.NeedsSource() {
		from = nil
	}
	if !txType.NeedsDestination() {
		to = nil
	}
	if from != nil && to != nil && *from == *to {
		return nil, shared.NewValidationError("SAME_WAREHOUSE", "transfer source and destination must differ")
	}
	if len(lines) == 0 {
		return nil, shared.NewValidationError("NO_LINES", "transaction must have at least one line")
	}

	tx := &InventoryTransaction{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Type:              txType,
		Status:            TransactionStatusPending,
		FromWarehouseID:   from,
		ToWarehouseID:     to,
		Lines:             lines,
		Notes:             strings.TrimSpace(notes),
		CreatedBy:         createdBy,
	}
	return tx, nil
}

// AssignCode sets the generated document code once
func (t *InventoryTransaction) AssignCode(code string) error {
	if t.Code != "" {
		return shared.NewConflictError("CODE_ALREADY_ASSIGNED", "transaction already has code %s", t.Code)
	}
	t.Code = code
	t.AddDomainEvent(NewTransactionCreatedEvent(t))
	return nil
}

// LinkProductionOrder marks the transaction as raised by a production order
func (t *InventoryTransaction) LinkProductionOrder(id uuid.UUID) {
	t.ProductionOrderID = &id
}

// Approve moves PENDING to APPROVED. The caller applies Movements in the same unit of work.
func (t *InventoryTransaction) Approve(by uuid.UUID) error {
	if err := t.transition(TransactionStatusApproved); err != nil {
		return err
	}
	now := time.Now()
	t.ApprovedBy = &by
	t.ApprovedAt = &now
	t.IncrementVersion()
	t.AddDomainEvent(NewTransactionApprovedEvent(t))
	return nil
}

// Reject moves PENDING to REJECTED without touching stock
func (t *InventoryTransaction) Reject(by uuid.UUID, reason string) error {
	if err := t.transition(TransactionStatusRejected); err != nil {
		return err
	}
	now := time.Now()
	t.RejectedBy = &by
	t.RejectedAt = &now
	t.RejectReason = strings.TrimSpace(reason)
	t.IncrementVersion()
	t.AddDomainEvent(NewTransactionRejectedEvent(t))
	return nil
}

func (t *InventoryTransaction) transition(next TransactionStatus) error {
	if !t.Status.CanTransitionTo(next) {
		return shared.NewConflictError("INVALID_STATE_TRANSITION",
			"transaction %s is %s and cannot become %s", t.Code, t.Status, next).
			WithDetail("transaction_id", t.ID.String()).
			WithDetail("status", string(t.Status))
	}
	t.Status = next
	return nil
}

// OutboundDemand sums requested quantities per item leaving the source warehouse
func (t *InventoryTransaction) OutboundDemand() map[catalog.Key]decimal.Decimal {
	if !t.Type.NeedsSource() {
		return nil
	}
	demand := make(map[catalog.Key]decimal.Decimal)
	for _, l := range t.Lines {
		k := l.Item.Key()
		demand[k] = demand[k].Add(l.Quantity)
	}
	return demand
}

// Movements returns the balance changes approval applies, sorted by warehouse then item
// so concurrent approvals lock rows in the same order.
func (t *InventoryTransaction) Movements() []Movement {
	var out []Movement
	for _, l := range t.Lines {
		if t.FromWarehouseID != nil {
			out = append(out, Movement{WarehouseID: *t.FromWarehouseID, Item: l.Item, Delta: l.Quantity.Neg()})
		}
		if t.ToWarehouseID != nil {
			out = append(out, Movement{WarehouseID: *t.ToWarehouseID, Item: l.Item, Delta: l.Quantity})
		}
	}
	return mergeMovements(out)
}

// WarehouseIDs lists the warehouses the transaction touches
func (t *InventoryTransaction) WarehouseIDs() []uuid.UUID {
	var ids []uuid.UUID
	if t.FromWarehouseID != nil {
		ids = append(ids, *t.FromWarehouseID)
	}
	if t.ToWarehouseID != nil {
		ids = append(ids, *t.ToWarehouseID)
	}
	return ids
}

// TotalAmount sums the priced lines
func (t *InventoryTransaction) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, l := range t.Lines {
		total = total.Add(l.Amount())
	}
	return total
}

func mergeMovements(in []Movement) []Movement {
	type key struct {
		wh   uuid.UUID
		item catalog.Key
	}
	index := make(map[key]int)
	var out []Movement
	for _, m := range in {
		k := key{m.WarehouseID, m.Item.Key()}
		if i, ok := index[k]; ok {
			out[i].Delta = out[i].Delta.Add(m.Delta)
			continue
		}
		index[k] = len(out)
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].WarehouseID != out[j].WarehouseID {
			return out[i].WarehouseID.String() < out[j].WarehouseID.String()
		}
		return out[i].Item.Key().String() < out[j].Item.Key().String()
	})
	return out
}
