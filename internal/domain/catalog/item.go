package catalog

import (
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// ItemKind tells raw materials (NVL) and finished products apart
type ItemKind string

const (
	ItemKindMaterial ItemKind = "MATERIAL"
	ItemKindProduct  ItemKind = "PRODUCT"
)

// ItemRef references exactly one stockable item: a material or a product, never both
type ItemRef struct {
	MaterialID *uuid.UUID `json:"material_id,omitempty"`
	ProductID  *uuid.UUID `json:"product_id,omitempty"`
}

// MaterialRef builds a reference to a material
func MaterialRef(id uuid.UUID) ItemRef {
	return ItemRef{MaterialID: &id}
}

// ProductRef builds a reference to a product
func ProductRef(id uuid.UUID) ItemRef {
	return ItemRef{ProductID: &id}
}

// Validate enforces that exactly one side of the reference is set
func (r ItemRef) Validate() error {
	switch {
	case r.MaterialID != nil && r.ProductID != nil:
		return shared.NewValidationError("INVALID_ITEM_REF", "an item line must reference a material or a product, not both")
	case r.MaterialID == nil && r.ProductID == nil:
		return shared.NewValidationError("INVALID_ITEM_REF", "an item line must reference a material or a product")
	case r.MaterialID != nil && *r.MaterialID == uuid.Nil, r.ProductID != nil && *r.ProductID == uuid.Nil:
		return shared.NewValidationError("INVALID_ITEM_REF", "item id cannot be empty")
	}
	return nil
}

// Kind returns the item kind. Call Validate first.
func (r ItemRef) Kind() ItemKind {
	if r.MaterialID != nil {
		return ItemKindMaterial
	}
	return ItemKindProduct
}

// ID returns whichever id is set
func (r ItemRef) ID() uuid.UUID {
	if r.MaterialID != nil {
		return *r.MaterialID
	}
	if r.ProductID != nil {
		return *r.ProductID
	}
	return uuid.Nil
}

// Key is a comparable form of the reference, usable as a map key
type Key struct {
	Kind ItemKind
	ID   uuid.UUID
}

// Key returns the comparable key for the reference
func (r ItemRef) Key() Key {
	return Key{Kind: r.Kind(), ID: r.ID()}
}

// Ref converts a key back to a reference
func (k Key) Ref() ItemRef {
	if k.Kind == ItemKindMaterial {
		return MaterialRef(k.ID)
	}
	return ProductRef(k.ID)
}

func (k Key) String() string {
	return string(k.Kind) + ":" + k.ID.String()
}
