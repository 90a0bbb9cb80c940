package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Customer is the transient identity captured once per transaction. It is
// snapshotted onto the sale at settlement and never stored on its own.
type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// CartLine is one in-progress line of a billing session. The sale price is
// a snapshot refreshed from inventory on every add; carts never trust a
// stale price.
type CartLine struct {
	ItemID    string  `json:"item_id"`
	ItemName  string  `json:"item_name"`
	SalePrice float64 `json:"sale_price"`
	Quantity  int     `json:"quantity"`
	Total     float64 `json:"total"`
}

// CartSession is one in-progress transaction: a customer snapshot plus an
// ordered list of cart lines with at most one line per itemID. A session
// has a single logical actor, so line mutation needs no locking of its own.
type CartSession struct {
	ID        uuid.UUID  `json:"id"`
	Customer  Customer   `json:"customer"`
	Lines     []CartLine `json:"lines"`
	CreatedAt time.Time  `json:"created_at"`

	// index maps itemID to its position in Lines, enforcing the
	// one-line-per-item invariant structurally.
	index map[string]int
}

// Subtotal is the sum of all line totals before discount and delivery.
func (s *CartSession) Subtotal() float64 {
	var subtotal float64
	for _, line := range s.Lines {
		subtotal += line.Total
	}
	return subtotal
}

// QuantityInCart returns how many units of the item the session already holds.
func (s *CartSession) QuantityInCart(itemID string) int {
	if i, ok := s.index[itemID]; ok {
		return s.Lines[i].Quantity
	}
	return 0
}

// SessionManager owns all live billing sessions. Sessions from concurrent
// terminals coexist in the map, so access to it is mutex-guarded even
// though each individual session is single-actor.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*CartSession
}

// NewSessionManager creates an empty session manager.
func NewSessionManager() *SessionManager {
	return &SessionManager{sessions: make(map[uuid.UUID]*CartSession)}
}

// Start opens a new billing session for the given customer.
func (m *SessionManager) Start(customer Customer) *CartSession {
	session := &CartSession{
		ID:        uuid.New(),
		Customer:  customer,
		Lines:     []CartLine{},
		CreatedAt: time.Now(),
		index:     make(map[string]int),
	}

	m.mu.Lock()
	m.sessions[session.ID] = session
	m.mu.Unlock()

	return session
}

// Get returns the session for the given ID, or ErrSessionNotFound.
func (m *SessionManager) Get(id uuid.UUID) (*CartSession, error) {
	m.mu.RLock()
	session, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// End discards the session. Called on checkout success and on explicit
// cancellation; the cart and customer snapshot die with it.
func (m *SessionManager) End(id uuid.UUID) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}
