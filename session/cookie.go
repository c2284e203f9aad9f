package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the name of the session cookie.
const CookieName = "clinica_session"

// Codec signs session tokens into cookie values so that forged cookies are
// rejected before any store lookup.
type Codec struct {
	secret   []byte
	lifetime time.Duration
}

// NewCodec creates a codec signing with secret. Cookies stop validating after lifetime.
func NewCodec(secret string, lifetime time.Duration) *Codec {
	return &Codec{secret: []byte(secret), lifetime: lifetime}
}

// Encode wraps a store token in a signed JWT.
func (c *Codec) Encode(token string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		ID:        token,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.lifetime)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("error signing session cookie: %w", err)
	}
	return signed, nil
}

// Decode validates a cookie value and returns the store token inside it.
func (c *Codec) Decode(value string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(value, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("invalid session cookie: %w", err)
	}
	if !token.Valid || claims.ID == "" {
		return "", errors.New("invalid session cookie")
	}
	return claims.ID, nil
}

// Manager binds the store to the browser through the session cookie.
type Manager struct {
	store  *Store
	codec  *Codec
	secure bool
}

// NewManager creates a manager. secure marks the cookie HTTPS-only.
func NewManager(store *Store, codec *Codec, secure bool) *Manager {
	return &Manager{store: store, codec: codec, secure: secure}
}

// Start creates a session for u and sets its cookie on w. A session already
// carried by r is destroyed first.
func (m *Manager) Start(w http.ResponseWriter, r *http.Request, u User) error {
	if old, ok := m.token(r); ok {
		m.store.Destroy(old)
	}
	token := m.store.Create(u)
	value, err := m.codec.Encode(token)
	if err != nil {
		m.store.Destroy(token)
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Lookup resolves the request's cookie to a live session.
func (m *Manager) Lookup(r *http.Request) (User, bool) {
	token, ok := m.token(r)
	if !ok {
		return User{}, false
	}
	return m.store.Get(token)
}

// End destroys the request's session, if any, and expires the cookie.
func (m *Manager) End(w http.ResponseWriter, r *http.Request) {
	if token, ok := m.token(r); ok {
		m.store.Destroy(token)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (m *Manager) token(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	token, err := m.codec.Decode(cookie.Value)
	if err != nil {
		return "", false
	}
	return token, true
}
