package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/shopdesk/backoffice/internal/domain/catalog"
	"github.com/shopdesk/backoffice/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormProductRepository_FindByIDs(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	a := seedProduct(t, db, "SP-A", "100", 0)
	b := seedProduct(t, db, "SP-B", "200", 0)

	found, err := repo.FindByIDs(ctx, []int64{b.ID, 999, a.ID})
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, a.ID, found[0].ID)
	assert.Equal(t, b.ID, found[1].ID)
	assert.Equal(t, []int64{999}, catalog.MissingIDs([]int64{b.ID, 999, a.ID}, found))

	empty, err := repo.FindByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestGormProductRepository_SaveKeepsStockOnUpdate(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	p := seedProduct(t, db, "SP-C", "50", 7)
	p.Name = "Renamed"
	p.StockQuantity = 1000
	require.NoError(t, repo.Save(ctx, p))

	got, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.Equal(t, int64(7), got.StockQuantity)
}

func TestGormProductRepository_DuplicateCode(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, "SP-D", "10", 0)

	dup, err := catalog.NewProduct("SP-D", "Other", "pcs", decimalFrom("10"))
	require.NoError(t, err)

	err = NewGormProductRepository(db).Save(context.Background(), dup)
	assert.True(t, errors.Is(err, shared.ErrDuplicate))
}

func TestGormProductRepository_FindByID_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := NewGormProductRepository(db).FindByID(context.Background(), 42)

	assert.Equal(t, shared.KindNotFound, shared.KindOf(err))
}

func TestGormCustomerRepository_FindByID(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormCustomerRepository(db)
	c := seedCustomer(t, db)

	got, err := repo.FindByID(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lan Nguyen", got.Name)

	_, err = repo.FindByID(context.Background(), c.ID+1)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}
