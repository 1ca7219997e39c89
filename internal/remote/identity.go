package remote

import (
	"sync"

	"github.com/golang-jwt/jwt/v5"
)

// User is the authenticated remote identity, nil when signed out.
type User struct {
	ID   string
	Name string
}

// Identity exposes "current identity or none". The data layer never takes
// part in the sign-in handshake; it only consumes whatever identity the
// external provider established.
type Identity interface {
	Current() *User
}

// TokenIdentity derives the current identity from the provider's ID token.
// The token signature is the provider's concern and is not re-verified here;
// only the subject and name claims are read.
type TokenIdentity struct {
	mu   sync.RWMutex
	user *User

	// onChange callbacks fire after every SetToken/Clear.
	onChange []func(*User)
}

func NewTokenIdentity() *TokenIdentity {
	return &TokenIdentity{}
}

type idClaims struct {
	jwt.RegisteredClaims
	Name string `json:"name"`
}

// SetToken installs the ID token received from the provider. A token that
// cannot be parsed leaves the identity signed out.
func (t *TokenIdentity) SetToken(token string) {
	claims := &idClaims{}
	parser := jwt.NewParser()

	var user *User
	if _, _, err := parser.ParseUnverified(token, claims); err == nil && claims.Subject != "" {
		user = &User{ID: claims.Subject, Name: claims.Name}
	}

	t.mu.Lock()
	t.user = user
	cbs := append([]func(*User){}, t.onChange...)
	t.mu.Unlock()

	for _, cb := range cbs {
		cb(user)
	}
}

// Clear signs out.
func (t *TokenIdentity) Clear() {
	t.mu.Lock()
	t.user = nil
	cbs := append([]func(*User){}, t.onChange...)
	t.mu.Unlock()

	for _, cb := range cbs {
		cb(nil)
	}
}

func (t *TokenIdentity) Current() *User {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.user
}

// Subscribe registers a callback for identity changes (e.g. the composition
// root triggering a full sync after sign-in).
func (t *TokenIdentity) Subscribe(cb func(*User)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onChange = append(t.onChange, cb)
}
