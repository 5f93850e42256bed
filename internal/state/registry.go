package state

import (
	"sync"
	"time"

	"github.com/mossxapp/mossx-backend/internal/cart"
	"github.com/mossxapp/mossx-backend/internal/catalog"
	"github.com/mossxapp/mossx-backend/internal/gate"
	"github.com/mossxapp/mossx-backend/internal/profile"
	"github.com/mossxapp/mossx-backend/internal/wishlist"
	"github.com/mossxapp/mossx-backend/pkg/dataset"
)

// Session is the full in-memory state one user accumulates: their browse
// window over the catalog, cart, wishlist, profile edits and auth gate.
// Everything lives for the lifetime of the process only.
type Session struct {
	Browse   *catalog.Browse
	Cart     *cart.Store
	Wishlist *wishlist.Store
	Profile  *profile.Store
	Gate     *gate.Gate
}

// Registry hands out sessions keyed by user id, creating them lazily on
// first touch. It satisfies the provider interfaces each domain service
// declares for itself.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session

	products []dataset.Product
	pageSize int
	delay    time.Duration
}

type RegistryParams struct {
	Dataset       *dataset.Dataset
	PageSize      int
	LoadMoreDelay time.Duration
}

func NewRegistry(params RegistryParams) *Registry {
	var products []dataset.Product
	if params.Dataset != nil {
		products = params.Dataset.Products
	}
	pageSize := params.PageSize
	if pageSize < 1 {
		pageSize = 1
	}
	return &Registry{
		sessions: make(map[string]*Session),
		products: products,
		pageSize: pageSize,
		delay:    params.LoadMoreDelay,
	}
}

// Session returns the user's state bundle, creating it on first use.
func (r *Registry) Session(userID string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	if session, ok := r.sessions[userID]; ok {
		return session
	}
	session := &Session{
		Browse:   catalog.NewBrowse(r.products, r.pageSize, r.delay),
		Cart:     cart.NewStore(),
		Wishlist: wishlist.NewStore(),
		Profile:  profile.NewStore(),
		Gate:     gate.New(),
	}
	r.sessions[userID] = session
	return session
}

func (r *Registry) Browse(userID string) *catalog.Browse {
	return r.Session(userID).Browse
}

func (r *Registry) Cart(userID string) *cart.Store {
	return r.Session(userID).Cart
}

func (r *Registry) Wishlist(userID string) *wishlist.Store {
	return r.Session(userID).Wishlist
}

func (r *Registry) Profile(userID string) *profile.Store {
	return r.Session(userID).Profile
}

func (r *Registry) Gate(userID string) *gate.Gate {
	return r.Session(userID).Gate
}

// Drop forgets a user's session entirely, resetting cart, wishlist,
// filters and gate on their next request.
func (r *Registry) Drop(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, userID)
}

// Len reports how many sessions are live, for readiness reporting.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
