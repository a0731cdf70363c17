package partner

import (
	"strings"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PartnerType distinguishes customers from suppliers
type PartnerType string

const (
	PartnerTypeCustomer PartnerType = "customer"
	PartnerTypeSupplier PartnerType = "supplier"
)

// IsValid checks if the partner type is valid
func (t PartnerType) IsValid() bool {
	return t == PartnerTypeCustomer || t == PartnerTypeSupplier
}

// ParsePartnerType parses a partner type, case-insensitively
func ParsePartnerType(s string) (PartnerType, error) {
	t := PartnerType(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", shared.NewValidationError("INVALID_PARTNER_TYPE", "partner type %q must be customer or supplier", s)
	}
	return t, nil
}

// Partner is a customer or supplier, the counterparty of a debt relationship.
// DebtAmount is a denormalized running total that only the debt settlement engine writes.
type Partner struct {
	shared.BaseAggregateRoot
	shared.BranchScoped
	Type       PartnerType
	Code       string
	Name       string
	Phone      string
	Email      string
	Address    string
	DebtAmount decimal.Decimal
}

// NewPartner creates a partner with an opening debt
func NewPartner(branchID uuid.UUID, partnerType PartnerType, code, name string, openingDebt decimal.Decimal) (*Partner, error) {
	if !partnerType.IsValid() {
		return nil, shared.NewValidationError("INVALID_PARTNER_TYPE", "partner type %q must be customer or supplier", partnerType)
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" || len(code) > 50 {
		return nil, shared.NewValidationError("INVALID_CODE", "partner code must be 1-50 characters")
	}
	if strings.TrimSpace(name) == "" || len(name) > 200 {
		return nil, shared.NewValidationError("INVALID_NAME", "partner name must be 1-200 characters")
	}
	if openingDebt.IsNegative() {
		return nil, shared.NewValidationError("INVALID_AMOUNT", "opening debt cannot be negative")
	}
	return &Partner{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BranchScoped:      shared.BranchScoped{BranchID: branchID},
		Type:              partnerType,
		Code:              code,
		Name:              strings.TrimSpace(name),
		DebtAmount:        openingDebt,
	}, nil
}

// SetContact updates contact details
func (p *Partner) SetContact(phone, email, address string) {
	p.Phone = strings.TrimSpace(phone)
	p.Email = strings.TrimSpace(email)
	p.Address = strings.TrimSpace(address)
	p.Touch()
}

// IncreaseDebt raises the running debt when a new order is registered
func (p *Partner) IncreaseDebt(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return shared.ErrInvalidAmount
	}
	p.DebtAmount = p.DebtAmount.Add(amount)
	p.IncrementVersion()
	return nil
}

// ReduceDebt lowers the running debt, floored at zero, and returns the amount actually removed
func (p *Partner) ReduceDebt(amount decimal.Decimal) decimal.Decimal {
	if !amount.IsPositive() {
		return decimal.Zero
	}
	reduced := decimal.Min(amount, p.DebtAmount)
	if reduced.IsNegative() {
		reduced = decimal.Zero
	}
	p.DebtAmount = p.DebtAmount.Sub(amount)
	if p.DebtAmount.IsNegative() {
		p.DebtAmount = decimal.Zero
	}
	p.IncrementVersion()
	return reduced
}

// IsCustomer reports whether the partner is a customer
func (p *Partner) IsCustomer() bool {
	return p.Type == PartnerTypeCustomer
}
