package partner

import (
	"context"

	"github.com/shopdesk/backoffice/internal/domain/shared"
)

// Customer is the buyer an order belongs to.
// Only the contact fields printed on invoices are modelled here.
type Customer struct {
	shared.BaseEntity
	Name  string
	Email string
	Phone string
}

// CustomerRepository reads customers
type CustomerRepository interface {
	FindByID(ctx context.Context, id int64) (*Customer, error)
}
