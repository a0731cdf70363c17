package models

import (
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/catalog"
)

// ItemColumns are the columns materials and products share.
type ItemColumns struct {
	AggregateModel
	Code string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name string `gorm:"type:varchar(200);not null"`
	Unit string `gorm:"type:varchar(20);not null"`
}

func (c *ItemColumns) toItem(kind catalog.ItemKind) catalog.Item {
	return catalog.Item{
		BaseAggregateRoot: c.ToAggregateRoot(),
		Kind:              kind,
		Code:              c.Code,
		Name:              c.Name,
		Unit:              c.Unit,
	}
}

func (c *ItemColumns) fromItem(i catalog.Item) {
	c.FromDomainAggregateRoot(i.BaseAggregateRoot)
	c.Code = i.Code
	c.Name = i.Name
	c.Unit = i.Unit
}

// MaterialModel is the persistence model for raw materials (NVL).
type MaterialModel struct {
	ItemColumns
}

// TableName returns the table name for GORM
func (MaterialModel) TableName() string {
	return "materials"
}

// ToDomain converts the persistence model to a domain Material.
func (m *MaterialModel) ToDomain() *catalog.Material {
	return &catalog.Material{Item: m.toItem(catalog.ItemKindMaterial)}
}

// MaterialModelFromDomain creates a persistence model from a domain Material.
func MaterialModelFromDomain(mat *catalog.Material) *MaterialModel {
	m := &MaterialModel{}
	m.fromItem(mat.Item)
	return m
}

// ProductModel is the persistence model for finished products.
type ProductModel struct {
	ItemColumns
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product.
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{Item: m.toItem(catalog.ItemKindProduct)}
}

// ProductModelFromDomain creates a persistence model from a domain Product.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.fromItem(p.Item)
	return m
}
