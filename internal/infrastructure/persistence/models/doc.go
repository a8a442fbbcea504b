// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer free
// from ORM concerns.
//
// Structure:
//   - base.go: BaseModel shared by every table with a surrogate bigint key
//   - catalog.go: products with their on-hand quantity
//   - partner.go: customers
//   - trade.go: orders and order items
//   - finance.go: invoices and invoice items
//   - warehouse.go: receiving slips, dispatch slips and the stock movement journal
//   - outbox.go: outbox events written with the state change that raised them
package models
