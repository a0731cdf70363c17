package production

import (
	"sort"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BOMLine says how much of one material one unit of a product consumes
type BOMLine struct {
	ID              uuid.UUID
	ProductID       uuid.UUID
	MaterialID      uuid.UUID
	QuantityPerUnit decimal.Decimal
	Notes           string
}

// NewBOMLine creates a validated bill-of-materials line
func NewBOMLine(productID, materialID uuid.UUID, perUnit decimal.Decimal, notes string) (*BOMLine, error) {
	if productID == uuid.Nil || materialID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_BOM", "BOM line needs a product and a material")
	}
	if !perUnit.IsPositive() {
		return nil, shared.NewValidationError("INVALID_QUANTITY", "quantity per unit must be positive")
	}
	return &BOMLine{
		ID:              uuid.New(),
		ProductID:       productID,
		MaterialID:      materialID,
		QuantityPerUnit: perUnit,
		Notes:           notes,
	}, nil
}

// MaterialRequirement is the planned quantity of one material
type MaterialRequirement struct {
	MaterialID uuid.UUID       `json:"material_id"`
	Quantity   decimal.Decimal `json:"quantity"`
}

// ComputeMaterialRequirements multiplies each product line by its BOM and groups by material.
// Products without BOM lines contribute nothing. The result is sorted by material id.
func ComputeMaterialRequirements(lines []ProductionLine, bom []BOMLine) []MaterialRequirement {
	byProduct := make(map[uuid.UUID][]BOMLine)
	for _, b := range bom {
		byProduct[b.ProductID] = append(byProduct[b.ProductID], b)
	}

	totals := make(map[uuid.UUID]decimal.Decimal)
	for _, l := range lines {
		for _, b := range byProduct[l.ProductID] {
			totals[b.MaterialID] = totals[b.MaterialID].Add(b.QuantityPerUnit.Mul(l.Quantity))
		}
	}

	out := make([]MaterialRequirement, 0, len(totals))
	for id, qty := range totals {
		out = append(out, MaterialRequirement{MaterialID: id, Quantity: qty})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].MaterialID.String() < out[j].MaterialID.String()
	})
	return out
}

// ProductsWithoutBOM lists products of the lines that have no BOM
func ProductsWithoutBOM(lines []ProductionLine, bom []BOMLine) []uuid.UUID {
	known := make(map[uuid.UUID]bool)
	for _, b := range bom {
		known[b.ProductID] = true
	}
	var missing []uuid.UUID
	seen := make(map[uuid.UUID]bool)
	for _, l := range lines {
		if !known[l.ProductID] && !seen[l.ProductID] {
			missing = append(missing, l.ProductID)
			seen[l.ProductID] = true
		}
	}
	return missing
}
