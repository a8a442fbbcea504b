package inventory

import "context"

// ReceivingSlipRepository persists receiving slips with their items
type ReceivingSlipRepository interface {
	FindByID(ctx context.Context, id int64) (*ReceivingSlip, error)
	// FindByIDForUpdate loads the slip and locks its row until the transaction ends
	FindByIDForUpdate(ctx context.Context, id int64) (*ReceivingSlip, error)
	ExistsByReferenceNo(ctx context.Context, referenceNo string) (bool, error)
	Create(ctx context.Context, slip *ReceivingSlip) error
	// Save writes the header and synchronizes the item set
	Save(ctx context.Context, slip *ReceivingSlip) error
	Delete(ctx context.Context, id int64) error
}

// DispatchSlipRepository persists dispatch slips with their items
type DispatchSlipRepository interface {
	FindByID(ctx context.Context, id int64) (*DispatchSlip, error)
	// FindByIDForUpdate loads the slip and locks its row until the transaction ends
	FindByIDForUpdate(ctx context.Context, id int64) (*DispatchSlip, error)
	Create(ctx context.Context, slip *DispatchSlip) error
	// Save writes the header and synchronizes the item set
	Save(ctx context.Context, slip *DispatchSlip) error
	Delete(ctx context.Context, id int64) error
	// ExistsConfirmed reports whether a confirmed slip carries the reference number
	ExistsConfirmed(ctx context.Context, referenceNo string) (bool, error)
	// DeleteByReference removes every slip with the reference number and returns how many went
	DeleteByReference(ctx context.Context, referenceNo string) (int64, error)
}
