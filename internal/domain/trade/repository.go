package trade

import "context"

// OrderRepository persists orders
type OrderRepository interface {
	// FindByID loads an order with its items, customer and invoice link
	FindByID(ctx context.Context, id int64) (*Order, error)
	// Create inserts the order and its items, assigning ids
	Create(ctx context.Context, order *Order) error
	// Save writes the order header (status, payment fields, invoice link)
	Save(ctx context.Context, order *Order) error
	// SoftDelete marks the order deleted
	SoftDelete(ctx context.Context, id int64) error
}
