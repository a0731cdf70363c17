package models

import (
	"time"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DebtRecordModel is the persistence model for the per-order debt anchor.
// (order_id, reference_type, debt_type) is unique so concurrent first settlements
// converge on one row.
type DebtRecordModel struct {
	ID              uuid.UUID             `gorm:"type:uuid;primaryKey"`
	OrderID         uuid.UUID             `gorm:"type:uuid;not null;uniqueIndex:idx_debt_record_key,priority:1"`
	ReferenceType   finance.ReferenceType `gorm:"type:varchar(20);not null;uniqueIndex:idx_debt_record_key,priority:2"`
	DebtType        finance.DebtType      `gorm:"type:varchar(20);not null;uniqueIndex:idx_debt_record_key,priority:3"`
	PartnerID       uuid.UUID             `gorm:"type:uuid;not null;index"`
	OriginalAmount  decimal.Decimal       `gorm:"type:decimal(18,2);not null"`
	RemainingAmount decimal.Decimal       `gorm:"type:decimal(18,2);not null"`
	Status          finance.DebtStatus    `gorm:"type:varchar(20);not null"`
	CreatedAt       time.Time             `gorm:"not null"`
	UpdatedAt       time.Time             `gorm:"not null"`
}

// TableName returns the table name for GORM
func (DebtRecordModel) TableName() string {
	return "debt_records"
}

// ToDomain converts the persistence model to a domain DebtRecord.
func (m *DebtRecordModel) ToDomain() *finance.DebtRecord {
	return &finance.DebtRecord{
		ID: m.ID,
		DebtKey: finance.DebtKey{
			OrderID:       m.OrderID,
			ReferenceType: m.ReferenceType,
			DebtType:      m.DebtType,
		},
		PartnerID:       m.PartnerID,
		OriginalAmount:  m.OriginalAmount,
		RemainingAmount: m.RemainingAmount,
		Status:          m.Status,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// DebtRecordModelFromDomain creates a persistence model from a domain DebtRecord.
func DebtRecordModelFromDomain(r *finance.DebtRecord) *DebtRecordModel {
	return &DebtRecordModel{
		ID:              r.ID,
		OrderID:         r.OrderID,
		ReferenceType:   r.ReferenceType,
		DebtType:        r.DebtType,
		PartnerID:       r.PartnerID,
		OriginalAmount:  r.OriginalAmount,
		RemainingAmount: r.RemainingAmount,
		Status:          r.Status,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// DebtPaymentModel is one append-only ledger row.
type DebtPaymentModel struct {
	ID            uuid.UUID             `gorm:"type:uuid;primaryKey"`
	SettlementID  uuid.UUID             `gorm:"type:uuid;not null;index"`
	DebtRecordID  uuid.UUID             `gorm:"type:uuid;not null;index"`
	OrderID       uuid.UUID             `gorm:"type:uuid;not null"`
	PartnerID     uuid.UUID             `gorm:"type:uuid;not null;index"`
	Amount        decimal.Decimal       `gorm:"type:decimal(18,2);not null"`
	PaymentDate   time.Time             `gorm:"not null"`
	Method        finance.PaymentMethod `gorm:"type:varchar(20);not null"`
	BankAccountID *uuid.UUID            `gorm:"type:uuid"`
	Notes         string                `gorm:"type:text"`
	CreatedBy     uuid.UUID             `gorm:"type:uuid"`
	CreatedAt     time.Time             `gorm:"not null"`
}

// TableName returns the table name for GORM
func (DebtPaymentModel) TableName() string {
	return "debt_payments"
}

// ToDomain converts the persistence model to a domain DebtPayment.
func (m *DebtPaymentModel) ToDomain() finance.DebtPayment {
	return finance.DebtPayment{
		ID:            m.ID,
		SettlementID:  m.SettlementID,
		DebtRecordID:  m.DebtRecordID,
		OrderID:       m.OrderID,
		PartnerID:     m.PartnerID,
		Amount:        m.Amount,
		PaymentDate:   m.PaymentDate,
		Method:        m.Method,
		BankAccountID: m.BankAccountID,
		Notes:         m.Notes,
		CreatedBy:     m.CreatedBy,
		CreatedAt:     m.CreatedAt,
	}
}

// DebtPaymentModelFromDomain creates a persistence model from a domain DebtPayment.
func DebtPaymentModelFromDomain(p *finance.DebtPayment) *DebtPaymentModel {
	return &DebtPaymentModel{
		ID:            p.ID,
		SettlementID:  p.SettlementID,
		DebtRecordID:  p.DebtRecordID,
		OrderID:       p.OrderID,
		PartnerID:     p.PartnerID,
		Amount:        p.Amount,
		PaymentDate:   p.PaymentDate,
		Method:        p.Method,
		BankAccountID: p.BankAccountID,
		Notes:         p.Notes,
		CreatedBy:     p.CreatedBy,
		CreatedAt:     p.CreatedAt,
	}
}

// BankAccountModel is the persistence model for company bank accounts.
type BankAccountModel struct {
	BranchAggregateModel
	AccountNumber string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	BankName      string          `gorm:"type:varchar(200);not null"`
	HolderName    string          `gorm:"type:varchar(200)"`
	Balance       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	IsActive      bool            `gorm:"not null"`
}

// TableName returns the table name for GORM
func (BankAccountModel) TableName() string {
	return "bank_accounts"
}

// ToDomain converts the persistence model to a domain BankAccount.
func (m *BankAccountModel) ToDomain() *finance.BankAccount {
	return &finance.BankAccount{
		BaseAggregateRoot: m.ToAggregateRoot(),
		BranchScoped:      m.ToBranchScoped(),
		AccountNumber:     m.AccountNumber,
		BankName:          m.BankName,
		HolderName:        m.HolderName,
		Balance:           m.Balance,
		IsActive:          m.IsActive,
	}
}

// BankAccountModelFromDomain creates a persistence model from a domain BankAccount.
func BankAccountModelFromDomain(a *finance.BankAccount) *BankAccountModel {
	m := &BankAccountModel{
		AccountNumber: a.AccountNumber,
		BankName:      a.BankName,
		HolderName:    a.HolderName,
		Balance:       a.Balance,
		IsActive:      a.IsActive,
	}
	m.FromDomainBranchAggregate(a.BaseAggregateRoot, a.BranchScoped)
	return m
}
