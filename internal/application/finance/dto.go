package finance

import (
	"time"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SettlePaymentRequest is the input of a settlement
type SettlePaymentRequest struct {
	PartnerID     uuid.UUID       `json:"partner_id" binding:"required"`
	PartnerType   string          `json:"partner_type" binding:"required,oneof=customer supplier"`
	Amount        decimal.Decimal `json:"amount" binding:"required,decimal_positive"`
	PaymentDate   *time.Time      `json:"payment_date"`
	Method        string          `json:"method" binding:"required"`
	BankAccountID *uuid.UUID      `json:"bank_account_id"`
	Notes         string          `json:"notes" binding:"max=500"`
	TargetOrderID *uuid.UUID      `json:"order_id"`
}

// DebtRecordResponse represents a debt record in API responses
type DebtRecordResponse struct {
	ID              uuid.UUID       `json:"id"`
	OrderID         uuid.UUID       `json:"order_id"`
	ReferenceType   string          `json:"reference_type"`
	DebtType        string          `json:"debt_type"`
	PartnerID       uuid.UUID       `json:"partner_id"`
	OriginalAmount  decimal.Decimal `json:"original_amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// DebtPaymentResponse represents one ledger entry
type DebtPaymentResponse struct {
	ID            uuid.UUID       `json:"id"`
	SettlementID  uuid.UUID       `json:"settlement_id"`
	DebtRecordID  uuid.UUID       `json:"debt_record_id"`
	OrderID       uuid.UUID       `json:"order_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentDate   time.Time       `json:"payment_date"`
	Method        string          `json:"method"`
	BankAccountID *uuid.UUID      `json:"bank_account_id,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	CreatedBy     uuid.UUID       `json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
}

// DebtListFilter represents filter options for debt listings
type DebtListFilter struct {
	PartnerID *uuid.UUID `form:"partner_id"`
	DebtType  string     `form:"debt_type" binding:"omitempty,oneof=RECEIVABLE PAYABLE"`
	Status    string     `form:"status" binding:"omitempty,oneof=PARTIAL PAID"`
	Page      int        `form:"page"`
	PageSize  int        `form:"page_size"`
}

// DebtSummaryResponse summarises a partner's open debt
type DebtSummaryResponse struct {
	PartnerID       uuid.UUID       `json:"partner_id"`
	PartnerType     string          `json:"partner_type"`
	PartnerName     string          `json:"partner_name"`
	DebtAmount      decimal.Decimal `json:"debt_amount"`
	OpenOrders      int             `json:"open_orders"`
	OpenRemaining   decimal.Decimal `json:"open_remaining"`
	LastPaymentDate *time.Time      `json:"last_payment_date,omitempty"`
}

// CreateBankAccountRequest is the input for opening a bank account
type CreateBankAccountRequest struct {
	BranchID       uuid.UUID       `json:"branch_id" binding:"required"`
	AccountNumber  string          `json:"account_number" binding:"required,max=50"`
	BankName       string          `json:"bank_name" binding:"required,max=200"`
	HolderName     string          `json:"holder_name" binding:"max=200"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
}

// BankAccountResponse represents a bank account in API responses
type BankAccountResponse struct {
	ID            uuid.UUID       `json:"id"`
	BranchID      uuid.UUID       `json:"branch_id"`
	AccountNumber string          `json:"account_number"`
	BankName      string          `json:"bank_name"`
	HolderName    string          `json:"holder_name"`
	Balance       decimal.Decimal `json:"balance"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ToDebtRecordResponse converts a domain record to its response
func ToDebtRecordResponse(r *finance.DebtRecord) DebtRecordResponse {
	return DebtRecordResponse{
		ID:              r.ID,
		OrderID:         r.OrderID,
		ReferenceType:   string(r.ReferenceType),
		DebtType:        string(r.DebtType),
		PartnerID:       r.PartnerID,
		OriginalAmount:  r.OriginalAmount,
		RemainingAmount: r.RemainingAmount,
		Status:          string(r.Status),
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// ToDebtPaymentResponse converts a ledger entry to its response
func ToDebtPaymentResponse(p *finance.DebtPayment) DebtPaymentResponse {
	return DebtPaymentResponse{
		ID:            p.ID,
		SettlementID:  p.SettlementID,
		DebtRecordID:  p.DebtRecordID,
		OrderID:       p.OrderID,
		Amount:        p.Amount,
		PaymentDate:   p.PaymentDate,
		Method:        string(p.Method),
		BankAccountID: p.BankAccountID,
		Notes:         p.Notes,
		CreatedBy:     p.CreatedBy,
		CreatedAt:     p.CreatedAt,
	}
}

// ToBankAccountResponse converts a bank account to its response
func ToBankAccountResponse(a *finance.BankAccount) BankAccountResponse {
	return BankAccountResponse{
		ID:            a.ID,
		BranchID:      a.BranchID,
		AccountNumber: a.AccountNumber,
		BankName:      a.BankName,
		HolderName:    a.HolderName,
		Balance:       a.Balance,
		IsActive:      a.IsActive,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}
