package models

import (
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/partner"
	"github.com/shopspring/decimal"
)

// PartnerModel is the persistence model for customers and suppliers.
type PartnerModel struct {
	BranchAggregateModel
	Type       partner.PartnerType `gorm:"type:varchar(20);not null;uniqueIndex:idx_partner_type_code,priority:1"`
	Code       string              `gorm:"type:varchar(50);not null;uniqueIndex:idx_partner_type_code,priority:2"`
	Name       string              `gorm:"type:varchar(200);not null"`
	Phone      string              `gorm:"type:varchar(50)"`
	Email      string              `gorm:"type:varchar(200)"`
	Address    string              `gorm:"type:text"`
	DebtAmount decimal.Decimal     `gorm:"type:decimal(18,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (PartnerModel) TableName() string {
	return "partners"
}

// ToDomain converts the persistence model to a domain Partner.
func (m *PartnerModel) ToDomain() *partner.Partner {
	return &partner.Partner{
		BaseAggregateRoot: m.ToAggregateRoot(),
		BranchScoped:      m.ToBranchScoped(),
		Type:              m.Type,
		Code:              m.Code,
		Name:              m.Name,
		Phone:             m.Phone,
		Email:             m.Email,
		Address:           m.Address,
		DebtAmount:        m.DebtAmount,
	}
}

// FromDomain populates the persistence model from a domain Partner.
func (m *PartnerModel) FromDomain(p *partner.Partner) {
	m.FromDomainBranchAggregate(p.BaseAggregateRoot, p.BranchScoped)
	m.Type = p.Type
	m.Code = p.Code
	m.Name = p.Name
	m.Phone = p.Phone
	m.Email = p.Email
	m.Address = p.Address
	m.DebtAmount = p.DebtAmount
}

// PartnerModelFromDomain creates a new persistence model from a domain Partner.
func PartnerModelFromDomain(p *partner.Partner) *PartnerModel {
	m := &PartnerModel{}
	m.FromDomain(p)
	return m
}
