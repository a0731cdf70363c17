package finance

import (
	"time"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/partner"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Direction bundles everything that depends on who is paying whom
type Direction struct {
	PartnerType   partner.PartnerType
	OrderKind     trade.OrderKind
	DebtType      DebtType
	ReferenceType ReferenceType
	// BankSign is +1 when money comes in (customer pays), -1 when it goes out (we pay a supplier)
	BankSign int64
	// ReceiptPrefix is PT (phiếu thu) for money in, PC (phiếu chi) for money out
	ReceiptPrefix string
}

// DirectionFor maps a partner type onto its debt direction
func DirectionFor(pt partner.PartnerType) (Direction, error) {
	switch pt {
	case partner.PartnerTypeCustomer:
		return Direction{
			PartnerType:   pt,
			OrderKind:     trade.OrderKindSales,
			DebtType:      DebtTypeReceivable,
			ReferenceType: ReferenceTypeOrder,
			BankSign:      1,
			ReceiptPrefix: "PT",
		}, nil
	case partner.PartnerTypeSupplier:
		return Direction{
			PartnerType:   pt,
			OrderKind:     trade.OrderKindPurchase,
			DebtType:      DebtTypePayable,
			ReferenceType: ReferenceTypePurchaseOrder,
			BankSign:      -1,
			ReceiptPrefix: "PC",
		}, nil
	}
	return Direction{}, shared.NewValidationError("INVALID_PARTNER_TYPE", "partner type %q must be customer or supplier", pt)
}

// BankDelta is the signed change a settled amount makes to a bank balance
func (d Direction) BankDelta(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(decimal.NewFromInt(d.BankSign))
}

// KeyFor returns the debt key for an order in this direction
func (d Direction) KeyFor(orderID uuid.UUID) DebtKey {
	return DebtKey{OrderID: orderID, ReferenceType: d.ReferenceType, DebtType: d.DebtType}
}

// OrderAllocation is the per-order breakdown of a settlement
type OrderAllocation struct {
	OrderID        uuid.UUID           `json:"order_id"`
	OrderCode      string              `json:"order_code"`
	Applied        decimal.Decimal     `json:"applied"`
	RemainingAfter decimal.Decimal     `json:"remaining_after"`
	PaymentStatus  trade.PaymentStatus `json:"payment_status"`
	DebtRecordID   uuid.UUID           `json:"debt_record_id"`
	DebtPaymentID  uuid.UUID           `json:"debt_payment_id"`
}

// SettlementResult is what a settlement returns, enough to print a receipt
type SettlementResult struct {
	SettlementID     uuid.UUID           `json:"settlement_id"`
	ReceiptNo        string              `json:"receipt_no"`
	PartnerID        uuid.UUID           `json:"partner_id"`
	PartnerType      partner.PartnerType `json:"partner_type"`
	PartnerName      string              `json:"partner_name"`
	PaymentDate      time.Time           `json:"payment_date"`
	Method           PaymentMethod       `json:"method"`
	TotalApplied     decimal.Decimal     `json:"total_applied"`
	OrdersUpdated    int                 `json:"orders_updated"`
	Allocations      []OrderAllocation   `json:"allocations"`
	PartnerDebtAfter decimal.Decimal     `json:"partner_debt_after"`
	BankAccountID    *uuid.UUID          `json:"bank_account_id,omitempty"`
	BankBalanceAfter *decimal.Decimal    `json:"bank_balance_after,omitempty"`
}

// SettlementReceipt is the archived rendition of a settlement
type SettlementReceipt struct {
	SettlementResult
	AmountText string    `json:"amount_text"`
	IssuedAt   time.Time `json:"issued_at"`
	Notes      string    `json:"notes,omitempty"`
}

// NewSettlementReceipt renders a receipt from a settlement result
func NewSettlementReceipt(result *SettlementResult, notes string) *SettlementReceipt {
	return &SettlementReceipt{
		SettlementResult: *result,
		AmountText:       shared.FormatVND(result.TotalApplied),
		IssuedAt:         time.Now(),
		Notes:            notes,
	}
}
