package cart

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlantisbooks/atlantis/internal/localstore"
	"github.com/atlantisbooks/atlantis/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	kv, err := localstore.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })
	return NewStore(kv)
}

func TestStoreRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	items := []model.CartItem{
		{Key: "b1", ID: "b1", Titulo: "X", Precio: 10, Qty: 2},
		{Key: "b2", ID: "b2", Titulo: "Y", Precio: 7.5, Qty: 1},
	}
	require.NoError(t, s.Save(ctx, items))
	assert.Equal(t, items, s.Load(ctx))
}

func TestStoreLoadDefaultsToEmpty(t *testing.T) {
	s := newTestStore(t)
	got := s.Load(context.Background())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestStoreClear(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, []model.CartItem{{Key: "b1", Qty: 1}}))
	require.NoError(t, s.Clear(ctx))
	assert.Empty(t, s.Load(ctx))
}

func TestStoreSaveNilBecomesEmpty(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, nil))
	got := s.Load(ctx)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
