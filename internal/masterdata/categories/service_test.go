package categories

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/odyssey-shop/internal/platform/table/tabletest"
	"github.com/odyssey-erp/odyssey-shop/internal/shared"
)

func ptr[T any](v T) *T { return &v }

func TestServiceCreate(t *testing.T) {
	ctx := context.Background()
	svc := NewService(tabletest.NewMemory(Mapping.Key))

	created, err := svc.Create(ctx, CreateRequest{Name: "Kitchen"})
	require.NoError(t, err)
	assert.Equal(t, &Category{ID: 1, Name: "Kitchen", Description: ""}, created)

	created, err = svc.Create(ctx, CreateRequest{Name: "Garden", Description: ptr("Outdoor things")})
	require.NoError(t, err)
	assert.Equal(t, "Outdoor things", created.Description)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = svc.Create(ctx, CreateRequest{})
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestServiceUpdate(t *testing.T) {
	ctx := context.Background()
	mem := tabletest.NewMemory(Mapping.Key)
	mem.Seed(Category{Name: "Kitchen", Description: "Pots"})
	svc := NewService(mem)

	updated, err := svc.Update(ctx, 1, UpdateRequest{Description: ptr("Pots and pans")})
	require.NoError(t, err)
	assert.Equal(t, "Kitchen", updated.Name)
	assert.Equal(t, "Pots and pans", updated.Description)

	_, err = svc.Update(ctx, 2, UpdateRequest{Name: ptr("x")})
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = svc.Update(ctx, 1, UpdateRequest{Name: ptr("")})
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestServiceListAndDelete(t *testing.T) {
	ctx := context.Background()
	mem := tabletest.NewMemory(Mapping.Key)
	mem.Seed(Category{Name: "a"}, Category{Name: "b"}, Category{Name: "c"})
	svc := NewService(mem)

	require.NoError(t, svc.Delete(ctx, 2))
	assert.ErrorIs(t, svc.Delete(ctx, 2), shared.ErrNotFound)

	list, total, err := svc.List(ctx, shared.Pagination{Page: 1, PerPage: shared.PerPage})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, list, 2)
	assert.Equal(t, int64(1), list[0].ID)
	assert.Equal(t, int64(3), list[1].ID)
}

func TestServicePropagatesStoreErrors(t *testing.T) {
	mem := tabletest.NewMemory(Mapping.Key)
	mem.GetErr = errors.New("store down")
	svc := NewService(mem)

	_, _, err := svc.List(context.Background(), shared.Pagination{Page: 1, PerPage: 10})
	assert.EqualError(t, err, "store down")
}
