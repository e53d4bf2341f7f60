package httpserver

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"

	cartsvc "jewelryshop/internal/service/cart"
	checkoutsvc "jewelryshop/internal/service/checkout"

	"github.com/gin-gonic/gin"
)

const shopperSessionCookie = "sid"

// checkoutCatalog is the slice of the catalog store the sequencer needs.
type checkoutCatalog interface {
	DecrementStock(ctx context.Context, id string, amount int) error
}

// shopperSession is one browser's cart and checkout position. Handlers lock
// the session for the duration of an operation, so requests within one
// session are serialized like the single-actor flow they model.
type shopperSession struct {
	mu        sync.Mutex
	cart      *cartsvc.Cart
	seq       *checkoutsvc.Sequencer
	expiresAt time.Time
}

// shopperSessions issues session cookies and keeps the per-shopper state in
// process memory. Sessions are not durable; only the catalog slot is.
type shopperSessions struct {
	mu       sync.Mutex
	sessions map[string]*shopperSession
	catalog  checkoutCatalog
	ttl      time.Duration
}

func newShopperSessions(catalog checkoutCatalog, ttl time.Duration) *shopperSessions {
	return &shopperSessions{
		sessions: make(map[string]*shopperSession),
		catalog:  catalog,
		ttl:      ttl,
	}
}

// get returns the session for the request cookie, creating one (and setting
// the cookie) when absent or expired.
func (m *shopperSessions) get(c *gin.Context) *shopperSession {
	token, err := c.Cookie(shopperSessionCookie)
	if err == nil && token != "" {
		m.mu.Lock()
		sess, ok := m.sessions[token]
		if ok && time.Now().Before(sess.expiresAt) {
			sess.expiresAt = time.Now().Add(m.ttl)
			m.mu.Unlock()
			return sess
		}
		delete(m.sessions, token)
		m.mu.Unlock()
	}

	token, err = randomSessionToken()
	if err != nil {
		// crypto/rand read failures are not recoverable here; an
		// unsaved session still lets the request proceed.
		return m.orphanSession()
	}
	cart := cartsvc.New()
	sess := &shopperSession{
		cart:      cart,
		seq:       checkoutsvc.New(cart, m.catalog),
		expiresAt: time.Now().Add(m.ttl),
	}
	m.mu.Lock()
	m.sessions[token] = sess
	m.mu.Unlock()

	c.SetCookie(shopperSessionCookie, token, int(m.ttl/time.Second), "/", "", false, true)
	return sess
}

func (m *shopperSessions) orphanSession() *shopperSession {
	cart := cartsvc.New()
	return &shopperSession{
		cart:      cart,
		seq:       checkoutsvc.New(cart, m.catalog),
		expiresAt: time.Now().Add(m.ttl),
	}
}

func randomSessionToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
