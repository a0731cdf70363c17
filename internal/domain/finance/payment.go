package finance

import (
	"strings"
	"time"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod is how money moved
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodCard         PaymentMethod = "CARD"
	PaymentMethodOther        PaymentMethod = "OTHER"
)

// ParsePaymentMethod parses a payment method, case-insensitively
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(strings.ToUpper(strings.TrimSpace(s)))
	switch m {
	case PaymentMethodCash, PaymentMethodBankTransfer, PaymentMethodCard, PaymentMethodOther:
		return m, nil
	}
	return "", shared.NewValidationError("INVALID_PAYMENT_METHOD", "payment method %q is not supported", s)
}

// DebtPayment is one allocation of a settlement to one debt record.
// Rows are append-only: never updated or deleted once written.
type DebtPayment struct {
	ID            uuid.UUID
	SettlementID  uuid.UUID
	DebtRecordID  uuid.UUID
	OrderID       uuid.UUID
	PartnerID     uuid.UUID
	Amount        decimal.Decimal
	PaymentDate   time.Time
	Method        PaymentMethod
	BankAccountID *uuid.UUID
	Notes         string
	CreatedBy     uuid.UUID
	CreatedAt     time.Time
}

// NewDebtPayment creates a ledger entry
func NewDebtPayment(settlementID uuid.UUID, record *DebtRecord, amount decimal.Decimal, date time.Time, method PaymentMethod, bankAccountID *uuid.UUID, notes string, createdBy uuid.UUID) (*DebtPayment, error) {
	if !amount.IsPositive() {
		return nil, shared.ErrInvalidAmount
	}
	return &DebtPayment{
		ID:            uuid.New(),
		SettlementID:  settlementID,
		DebtRecordID:  record.ID,
		OrderID:       record.OrderID,
		PartnerID:     record.PartnerID,
		Amount:        amount,
		PaymentDate:   date,
		Method:        method,
		BankAccountID: bankAccountID,
		Notes:         strings.TrimSpace(notes),
		CreatedBy:     createdBy,
		CreatedAt:     time.Now(),
	}, nil
}
