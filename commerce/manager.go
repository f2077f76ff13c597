package commerce

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/teamcipx/portofolio-sub000/shared/store"
)

const (
	// sessionTTL is how long an idle session survives before the janitor
	// drops it.
	sessionTTL = 30 * time.Minute
	// sweepInterval is how often the janitor looks for idle sessions.
	sweepInterval = 5 * time.Minute
)

// Session holds one visitor's cart and, once started, their checkout flow.
// The checkout field is owned by the Manager: handlers reach it through
// Manager.Checkout so every access happens under the manager's lock. The
// Cart pointer is set once at creation and never reassigned, so it is safe
// to use outside the lock.
type Session struct {
	Cart     *Cart
	checkout *Checkout
	lastSeen time.Time
}

// Manager keeps per-visitor commerce sessions in memory, keyed by the
// session cookie. Sessions are not persisted and idle ones are swept after
// a TTL; a restart or an expiry empties the cart, which matches the
// storefront's local-first semantics.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	st       store.Store
	log      *logrus.Logger
	delay    time.Duration
	done     chan struct{}
}

// NewManager creates a session manager and starts its janitor. delay is the
// simulated processing pause applied to each checkout.
func NewManager(st store.Store, log *logrus.Logger, delay time.Duration) *Manager {
	m := &Manager{
		sessions: make(map[string]*Session),
		st:       st,
		log:      log,
		delay:    delay,
		done:     make(chan struct{}),
	}
	go m.janitor()
	return m
}

// Session returns the visitor's session, creating it on first use.
func (m *Manager) Session(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session(id)
}

// session looks up or creates a session and refreshes its idle clock.
// Callers hold m.mu.
func (m *Manager) session(id string) *Session {
	s, ok := m.sessions[id]
	if !ok {
		s = &Session{Cart: NewCart()}
		m.sessions[id] = s
	}
	s.lastSeen = time.Now()
	return s
}

// Checkout returns the session's checkout flow, or nil when none has been
// started.
func (m *Manager) Checkout(id string) *Checkout {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session(id).checkout
}

// BeginCheckout starts (or restarts) the checkout flow over the session's
// cart.
func (m *Manager) BeginCheckout(id string) (*Checkout, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.session(id)
	co, err := NewCheckout(s.Cart, m.st, m.log, m.delay)
	if err != nil {
		return nil, err
	}
	s.checkout = co
	return co, nil
}

// Close stops the janitor.
func (m *Manager) Close() {
	close(m.done)
}

func (m *Manager) janitor() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			m.sweep(time.Now())
		case <-m.done:
			return
		}
	}
}

// sweep drops sessions idle past the TTL.
func (m *Manager) sweep(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, s := range m.sessions {
		if now.Sub(s.lastSeen) >= sessionTTL {
			delete(m.sessions, id)
		}
	}
}
