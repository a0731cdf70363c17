package finance

import (
	"time"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DebtType is the direction of a debt
type DebtType string

const (
	DebtTypeReceivable DebtType = "RECEIVABLE" // customer owes us
	DebtTypePayable    DebtType = "PAYABLE"    // we owe a supplier
)

// ReferenceType names the document a debt record is anchored to
type ReferenceType string

const (
	ReferenceTypeOrder         ReferenceType = "ORDER"
	ReferenceTypePurchaseOrder ReferenceType = "PURCHASE_ORDER"
)

// DebtStatus is the settlement state of a debt record
type DebtStatus string

const (
	DebtStatusPartial DebtStatus = "PARTIAL"
	DebtStatusPaid    DebtStatus = "PAID"
)

// DebtKey identifies the single debt record of an order in one direction
type DebtKey struct {
	OrderID       uuid.UUID
	ReferenceType ReferenceType
	DebtType      DebtType
}

// DebtRecord is the per-order ledger anchor.
// RemainingAmount = OriginalAmount − Σ payments, never negative.
type DebtRecord struct {
	ID uuid.UUID
	DebtKey
	PartnerID       uuid.UUID
	OriginalAmount  decimal.Decimal
	RemainingAmount decimal.Decimal
	Status          DebtStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewDebtRecord creates the record for an order whose full debt is still outstanding
func NewDebtRecord(key DebtKey, partnerID uuid.UUID, original, alreadyPaid decimal.Decimal) *DebtRecord {
	now := time.Now()
	r := &DebtRecord{
		ID:              uuid.New(),
		DebtKey:         key,
		PartnerID:       partnerID,
		OriginalAmount:  original,
		RemainingAmount: original.Sub(alreadyPaid),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if r.RemainingAmount.IsNegative() {
		r.RemainingAmount = decimal.Zero
	}
	r.Status = statusFor(r.RemainingAmount)
	return r
}

// ApplyPayment reduces the remainder, floored at zero
func (r *DebtRecord) ApplyPayment(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return shared.ErrInvalidAmount
	}
	r.RemainingAmount = r.RemainingAmount.Sub(amount)
	if r.RemainingAmount.IsNegative() {
		r.RemainingAmount = decimal.Zero
	}
	r.Status = statusFor(r.RemainingAmount)
	r.UpdatedAt = time.Now()
	return nil
}

// IsPaid reports whether nothing remains
func (r *DebtRecord) IsPaid() bool {
	return r.Status == DebtStatusPaid
}

func statusFor(remaining decimal.Decimal) DebtStatus {
	if remaining.IsPositive() {
		return DebtStatusPartial
	}
	return DebtStatusPaid
}
