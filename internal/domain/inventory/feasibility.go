package inventory

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/catalog"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Shortage describes one item whose requested quantity exceeds stock
type Shortage struct {
	Item      catalog.ItemRef `json:"item"`
	Requested decimal.Decimal `json:"requested"`
	Available decimal.Decimal `json:"available"`
}

func (s Shortage) String() string {
	return fmt.Sprintf("%s: requested %s, available %s",
		s.Item.Key(), shared.FormatQuantity(s.Requested), shared.FormatQuantity(s.Available))
}

// FindShortages compares demand with available quantities. Missing balances count as zero.
// The result is sorted by item so messages are stable.
func FindShortages(demand, available map[catalog.Key]decimal.Decimal) []Shortage {
	var out []Shortage
	for k, requested := range demand {
		have := available[k]
		if requested.GreaterThan(have) {
			out = append(out, Shortage{Item: k.Ref(), Requested: requested, Available: have})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Item.Key().String() < out[j].Item.Key().String()
	})
	return out
}

// ShortageError builds the error reported for shortages; kind is VALIDATION at creation
// and CONFLICT at approval, where stock moved after the transaction was accepted.
func ShortageError(kind shared.ErrorKind, shortages []Shortage) *shared.DomainError {
	parts := make([]string, len(shortages))
	for i, s := range shortages {
		parts[i] = s.String()
	}
	err := shared.NewDomainError(kind, shared.ErrInsufficientStock.Code,
		"insufficient stock ("+strings.Join(parts, "; ")+")")
	return err.WithDetail("shortages", shortages)
}

// CheckCompatibility verifies every line fits the types of the warehouses it touches
func CheckCompatibility(tx *InventoryTransaction, warehouses ...*Warehouse) error {
	for _, w := range warehouses {
		if w == nil {
			continue
		}
		if !w.IsActive {
			return shared.NewValidationError("WAREHOUSE_INACTIVE", "warehouse %s is inactive", w.Code).
				WithDetail("warehouse_id", w.ID.String())
		}
		for _, l := range tx.Lines {
			if err := w.CheckAccepts(l.Item); err != nil {
				return err
			}
		}
	}
	return nil
}
