// Autenticación contra el endpoint de clientes de Atlantis.
//
// The endpoint embeds the customer's password in its response and the
// comparison happens on this side, which is demo-grade by inheritance:
// the secret travels to the client. Hashed records (bcrypt) are compared
// properly when the backend stores them; plaintext records keep the
// original equality contract.
package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/atlantisbooks/atlantis/internal/model"
	"github.com/atlantisbooks/atlantis/internal/session"
)

// AuthError is a failed credential check: wrong password or a customer
// record that cannot be used.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string { return e.Reason }

const msgBadCredentials = "Usuario o contraseña incorrectos"

// CustomerFetcher is the one API call login needs.
type CustomerFetcher interface {
	GetCustomer(ctx context.Context, id string) (*model.Customer, error)
}

type Authenticator struct {
	api      CustomerFetcher
	sessions *session.Store
}

func NewAuthenticator(api CustomerFetcher, sessions *session.Store) *Authenticator {
	return &Authenticator{api: api, sessions: sessions}
}

// Login fetches the customer record for customerID, checks the password
// and persists the session on success. The returned customer has the
// password stripped. API errors (HTTP status, shape) pass through
// untouched; a mismatch yields an AuthError and leaves any prior session
// in place.
func (a *Authenticator) Login(ctx context.Context, customerID, password string) (*model.Customer, error) {
	cust, err := a.api.GetCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if !passwordMatches(cust.Password, password) {
		return nil, &AuthError{Reason: msgBadCredentials}
	}

	safe := cust.Safe()
	sess := model.Session{
		Customer:   safe,
		LoginID:    uuid.NewString(),
		LoggedInAt: time.Now().UTC(),
	}
	if err := a.sessions.Save(ctx, sess); err != nil {
		// La sesión no se pudo guardar pero el login es válido
		log.Warn().Err(err).Msg("session save failed")
	}
	return &safe, nil
}

func (a *Authenticator) Logout(ctx context.Context) error {
	return a.sessions.Clear(ctx)
}

func passwordMatches(stored, given string) bool {
	if isBcryptHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(given)) == nil
	}
	return stored == given
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") ||
		strings.HasPrefix(s, "$2b$") ||
		strings.HasPrefix(s, "$2y$")
}
