package catalog

import (
	"strings"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
)

// Item is the common shape of materials and products
type Item struct {
	shared.BaseAggregateRoot
	Kind ItemKind
	Code string
	Name string
	Unit string
}

// Material is a raw material (nguyên vật liệu) such as fabric or thread
type Material struct {
	Item
}

// Product is a finished good
type Product struct {
	Item
}

// NewMaterial creates a material
func NewMaterial(code, name, unit string) (*Material, error) {
	item, err := newItem(ItemKindMaterial, code, name, unit)
	if err != nil {
		return nil, err
	}
	return &Material{Item: item}, nil
}

// NewProduct creates a product
func NewProduct(code, name, unit string) (*Product, error) {
	item, err := newItem(ItemKindProduct, code, name, unit)
	if err != nil {
		return nil, err
	}
	return &Product{Item: item}, nil
}

func newItem(kind ItemKind, code, name, unit string) (Item, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" || len(code) > 50 {
		return Item{}, shared.NewValidationError("INVALID_CODE", "item code must be 1-50 characters")
	}
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 200 {
		return Item{}, shared.NewValidationError("INVALID_NAME", "item name must be 1-200 characters")
	}
	unit = strings.TrimSpace(unit)
	if unit == "" {
		unit = "cái"
	}
	return Item{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Kind:              kind,
		Code:              code,
		Name:              name,
		Unit:              unit,
	}, nil
}

// Ref returns the stock reference for the item
func (i *Item) Ref() ItemRef {
	if i.Kind == ItemKindMaterial {
		return MaterialRef(i.ID)
	}
	return ProductRef(i.ID)
}
