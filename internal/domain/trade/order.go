package trade

import (
	"strings"
	"time"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/catalog"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderKind distinguishes sales orders (to customers) from purchase orders (from suppliers)
type OrderKind string

const (
	OrderKindSales    OrderKind = "SALES"
	OrderKindPurchase OrderKind = "PURCHASE"
)

// IsValid returns true for known kinds
func (k OrderKind) IsValid() bool {
	return k == OrderKindSales || k == OrderKindPurchase
}

// CodePrefix returns DH (đơn hàng) or DM (đơn mua)
func (k OrderKind) CodePrefix() string {
	if k == OrderKindPurchase {
		return "DM"
	}
	return "DH"
}

// OrderStatus is the workflow state, independent of payment
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// CanTransitionTo checks if the status can transition to the target status
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return target == OrderStatusConfirmed || target == OrderStatusCancelled
	case OrderStatusConfirmed:
		return target == OrderStatusCompleted || target == OrderStatusCancelled
	}
	return false
}

// PaymentStatus is derived from paid vs final amount
type PaymentStatus string

const (
	PaymentStatusUnpaid  PaymentStatus = "UNPAID"
	PaymentStatusPartial PaymentStatus = "PARTIAL"
	PaymentStatusPaid    PaymentStatus = "PAID"
)

// PaymentStatusFor is the pure function from (paid, final) to payment status
func PaymentStatusFor(paid, final decimal.Decimal) PaymentStatus {
	switch {
	case final.Sub(paid).LessThanOrEqual(decimal.Zero):
		return PaymentStatusPaid
	case paid.IsZero():
		return PaymentStatusUnpaid
	default:
		return PaymentStatusPartial
	}
}

// OrderLine is one line of an order
type OrderLine struct {
	ID        uuid.UUID
	Item      catalog.ItemRef
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// Amount returns quantity × unit price
func (l OrderLine) Amount() decimal.Decimal {
	return l.Quantity.Mul(l.UnitPrice)
}

// NewOrderLine creates a validated order line
func NewOrderLine(item catalog.ItemRef, qty, unitPrice decimal.Decimal) (OrderLine, error) {
	if err := item.Validate(); err != nil {
		return OrderLine{}, err
	}
	if !qty.IsPositive() {
		return OrderLine{}, shared.NewValidationError("INVALID_QUANTITY", "order line quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return OrderLine{}, shared.NewValidationError("INVALID_PRICE", "unit price cannot be negative")
	}
	return OrderLine{ID: uuid.New(), Item: item, Quantity: qty, UnitPrice: unitPrice}, nil
}

// Order is a sales order or a purchase order. PaidAmount never exceeds FinalAmount.
type Order struct {
	shared.BaseAggregateRoot
	Kind           OrderKind
	Code           string
	PartnerID      uuid.UUID
	OrderDate      time.Time
	Lines          []OrderLine
	TotalAmount    decimal.Decimal
	DiscountAmount decimal.Decimal
	FinalAmount    decimal.Decimal
	PaidAmount     decimal.Decimal
	PaymentStatus  PaymentStatus
	Status         OrderStatus
	Notes          string
	CreatedBy      uuid.UUID
}

// NewOrder creates a pending, unpaid order and computes its amounts
func NewOrder(kind OrderKind, code string, partnerID uuid.UUID, lines []OrderLine, discount decimal.Decimal, createdBy uuid.UUID) (*Order, error) {
	if !kind.IsValid() {
		return nil, shared.NewValidationError("INVALID_ORDER_KIND", "order kind %q must be SALES or PURCHASE", kind)
	}
	if partnerID == uuid.Nil {
		return nil, shared.NewValidationError("PARTNER_REQUIRED", "order requires a partner")
	}
	if len(lines) == 0 {
		return nil, shared.NewValidationError("NO_LINES", "order must have at least one line")
	}
	if discount.IsNegative() {
		return nil, shared.NewValidationError("INVALID_DISCOUNT", "discount cannot be negative")
	}
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Amount())
	}
	if discount.GreaterThan(total) {
		return nil, shared.NewValidationError("INVALID_DISCOUNT", "discount %s exceeds order total %s",
			shared.FormatVND(discount), shared.FormatVND(total))
	}
	final := total.Sub(discount)

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Kind:              kind,
		Code:              code,
		PartnerID:         partnerID,
		OrderDate:         time.Now(),
		Lines:             lines,
		TotalAmount:       total,
		DiscountAmount:    discount,
		FinalAmount:       final,
		PaidAmount:        decimal.Zero,
		Status:            OrderStatusPending,
	}
	o.CreatedBy = createdBy
	o.PaymentStatus = PaymentStatusFor(o.PaidAmount, o.FinalAmount)
	return o, nil
}

// Remaining is what is still owed on the order, never negative
func (o *Order) Remaining() decimal.Decimal {
	r := o.FinalAmount.Sub(o.PaidAmount)
	if r.IsNegative() {
		return decimal.Zero
	}
	return r
}

// IsOpen reports whether the order can still receive payments
func (o *Order) IsOpen() bool {
	return o.Status != OrderStatusCancelled && o.Remaining().IsPositive()
}

// ApplyPayment applies up to amount and returns what was actually applied
func (o *Order) ApplyPayment(amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, shared.ErrInvalidAmount
	}
	if o.Status == OrderStatusCancelled {
		return decimal.Zero, shared.NewConflictError("ORDER_CANCELLED", "order %s is cancelled", o.Code)
	}
	applied := decimal.Min(amount, o.Remaining())
	if !applied.IsPositive() {
		return decimal.Zero, shared.NewConflictError("ORDER_ALREADY_PAID", "order %s is already paid", o.Code)
	}
	o.PaidAmount = o.PaidAmount.Add(applied)
	o.PaymentStatus = PaymentStatusFor(o.PaidAmount, o.FinalAmount)
	o.IncrementVersion()
	return applied, nil
}

// Confirm moves a pending order to confirmed
func (o *Order) Confirm() error {
	return o.transition(OrderStatusConfirmed)
}

// Complete marks a confirmed order complete
func (o *Order) Complete() error {
	return o.transition(OrderStatusCompleted)
}

// Cancel cancels an order that has not received any payment
func (o *Order) Cancel() error {
	if o.PaidAmount.IsPositive() {
		return shared.NewConflictError("ORDER_HAS_PAYMENTS", "order %s already received %s", o.Code, shared.FormatVND(o.PaidAmount))
	}
	return o.transition(OrderStatusCancelled)
}

func (o *Order) transition(target OrderStatus) error {
	if !o.Status.CanTransitionTo(target) {
		return shared.NewConflictError("INVALID_STATE_TRANSITION", "order %s is %s and cannot become %s", o.Code, o.Status, target)
	}
	o.Status = target
	o.IncrementVersion()
	return nil
}

// SetNotes sets free-form notes
func (o *Order) SetNotes(notes string) {
	o.Notes = strings.TrimSpace(notes)
}

// ProductLines returns the lines that reference finished products
func (o *Order) ProductLines() []OrderLine {
	var out []OrderLine
	for _, l := range o.Lines {
		if l.Item.ProductID != nil {
			out = append(out, l)
		}
	}
	return out
}
