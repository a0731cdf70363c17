package catalog

import (
	"time"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/catalog"
	"github.com/google/uuid"
)

// CreateItemRequest is the input for creating a material or a product
type CreateItemRequest struct {
	Code string `json:"code" binding:"required,max=50"`
	Name string `json:"name" binding:"required,max=200"`
	Unit string `json:"unit" binding:"max=20"`
}

// ItemResponse represents a material or product in API responses
type ItemResponse struct {
	ID        uuid.UUID `json:"id"`
	Kind      string    `json:"kind"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Unit      string    `json:"unit"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToItemResponse converts a catalog item to its response
func ToItemResponse(i *catalog.Item) ItemResponse {
	return ItemResponse{
		ID:        i.ID,
		Kind:      string(i.Kind),
		Code:      i.Code,
		Name:      i.Name,
		Unit:      i.Unit,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}
