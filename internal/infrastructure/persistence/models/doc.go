// Package models contains GORM persistence models that map to database tables.
// Domain entities carry no ORM tags; each model converts to and from its entity.
//
// Layout:
// - base.go: shared columns (BaseModel, AggregateModel, BranchAggregateModel)
// - partner.go: partners
// - catalog.go: materials and products
// - trade.go: orders and order items
// - finance.go: debt records, debt payments, bank accounts
// - inventory.go: warehouses, balances, transactions and their details
// - production.go: production orders, lines, step logs, BOM lines
// - sequence.go: the per-day document code counter
package models
