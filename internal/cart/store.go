package cart

import (
	"context"

	"github.com/atlantisbooks/atlantis/internal/localstore"
	"github.com/atlantisbooks/atlantis/internal/model"
)

const storageKey = "cart"

// Store persists the whole cart as one value. Mutations are always
// load → compute → save; there is no partial update.
type Store struct {
	kv *localstore.Store
}

func NewStore(kv *localstore.Store) *Store { return &Store{kv: kv} }

// Load returns the persisted cart, or an empty one when nothing usable
// is stored.
func (s *Store) Load(ctx context.Context) []model.CartItem {
	var items []model.CartItem
	if !s.kv.Get(ctx, storageKey, &items) {
		return []model.CartItem{}
	}
	if items == nil {
		items = []model.CartItem{}
	}
	return items
}

func (s *Store) Save(ctx context.Context, items []model.CartItem) error {
	if items == nil {
		items = []model.CartItem{}
	}
	return s.kv.Put(ctx, storageKey, items)
}

func (s *Store) Clear(ctx context.Context) error {
	return s.kv.Put(ctx, storageKey, []model.CartItem{})
}
