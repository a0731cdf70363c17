package partner

import (
	"time"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/partner"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreatePartnerRequest is the input for creating a customer or supplier
type CreatePartnerRequest struct {
	BranchID    uuid.UUID       `json:"branch_id" binding:"required"`
	Type        string          `json:"type" binding:"required,oneof=customer supplier"`
	Code        string          `json:"code" binding:"required,max=50"`
	Name        string          `json:"name" binding:"required,max=200"`
	Phone       string          `json:"phone" binding:"max=50"`
	Email       string          `json:"email" binding:"omitempty,email,max=200"`
	Address     string          `json:"address" binding:"max=500"`
	OpeningDebt decimal.Decimal `json:"opening_debt"`
}

// PartnerResponse represents a partner in API responses
type PartnerResponse struct {
	ID         uuid.UUID       `json:"id"`
	BranchID   uuid.UUID       `json:"branch_id"`
	Type       string          `json:"type"`
	Code       string          `json:"code"`
	Name       string          `json:"name"`
	Phone      string          `json:"phone,omitempty"`
	Email      string          `json:"email,omitempty"`
	Address    string          `json:"address,omitempty"`
	DebtAmount decimal.Decimal `json:"debt_amount"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// PartnerListFilter represents filter options for partner listings
type PartnerListFilter struct {
	Type     string `form:"type" binding:"omitempty,oneof=customer supplier"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// ToPartnerResponse converts a partner to its response
func ToPartnerResponse(p *partner.Partner) PartnerResponse {
	return PartnerResponse{
		ID:         p.ID,
		BranchID:   p.BranchID,
		Type:       string(p.Type),
		Code:       p.Code,
		Name:       p.Name,
		Phone:      p.Phone,
		Email:      p.Email,
		Address:    p.Address,
		DebtAmount: p.DebtAmount,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
