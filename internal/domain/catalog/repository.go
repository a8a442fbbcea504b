package catalog

import "context"

// ProductRepository reads catalog products
type ProductRepository interface {
	FindByID(ctx context.Context, id int64) (*Product, error)
	// FindByIDs returns the products that exist among ids, in ascending id order.
	// Missing ids are silently skipped; callers compare lengths.
	FindByIDs(ctx context.Context, ids []int64) ([]Product, error)
	Save(ctx context.Context, product *Product) error
}

// MissingIDs returns the ids from want that are absent in found, preserving order
func MissingIDs(want []int64, found []Product) []int64 {
	seen := make(map[int64]struct{}, len(found))
	for i := range found {
		seen[found[i].ID] = struct{}{}
	}
	var missing []int64
	for _, id := range want {
		if _, ok := seen[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}
