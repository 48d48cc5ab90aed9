package session

import (
	"context"

	"github.com/atlantisbooks/atlantis/internal/localstore"
	"github.com/atlantisbooks/atlantis/internal/model"
)

const storageKey = "session"

// Store persists the single active session. Each save overwrites the
// previous one; a corrupt persisted value reads back as "no session".
type Store struct {
	kv *localstore.Store
}

func NewStore(kv *localstore.Store) *Store { return &Store{kv: kv} }

func (s *Store) Save(ctx context.Context, sess model.Session) error {
	// La contraseña nunca se persiste
	sess.Customer = sess.Customer.Safe()
	return s.kv.Put(ctx, storageKey, sess)
}

// Load returns nil when no session is stored or the stored value is
// unreadable.
func (s *Store) Load(ctx context.Context) *model.Session {
	var sess model.Session
	if !s.kv.Get(ctx, storageKey, &sess) {
		return nil
	}
	return &sess
}

func (s *Store) Clear(ctx context.Context) error {
	return s.kv.Delete(ctx, storageKey)
}
