package cart

import (
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/mossxapp/mossx-backend/pkg/dataset"
)

// BundleLinePrefix namespaces bundle line items so they never collide with
// product ids.
const BundleLinePrefix = "bundle-"

// LineItem is one cart row for a product or a bundle.
type LineItem struct {
	ID            string           `json:"id"`
	Title         string           `json:"title"`
	Price         decimal.Decimal  `json:"price"`
	Image         string           `json:"image"`
	Quantity      int              `json:"quantity"`
	IsBundle      bool             `json:"is_bundle,omitempty"`
	BundleID      string           `json:"bundle_id,omitempty"`
	OriginalPrice *decimal.Decimal `json:"original_price,omitempty"`
	Description   string           `json:"description,omitempty"`
}

// Subtotal is the line's price multiplied by its quantity.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// State is an immutable cart view. Total is recomputed from the lines on
// every read, never accumulated, so it cannot drift.
type State struct {
	Items []LineItem      `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// Store holds one user's cart. All mutations are atomic; line order is
// insertion order.
type Store struct {
	mu    sync.Mutex
	items []LineItem
}

// NewStore returns an empty cart.
func NewStore() *Store {
	return &Store{}
}

// State returns a copy of the current cart with its derived total.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *Store) stateLocked() State {
	items := make([]LineItem, len(s.items))
	copy(items, s.items)
	total := decimal.Zero
	for _, li := range items {
		total = total.Add(li.Subtotal())
	}
	return State{Items: items, Total: total}
}

// Add merges the product into the cart, inserting a new line or bumping the
// quantity of an existing one. Quantities below one count as one. When the
// product tracks stock the resulting quantity is capped at it.
func (s *Store) Add(p *dataset.Product, quantity int) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p == nil {
		return s.stateLocked()
	}
	if quantity < 1 {
		quantity = 1
	}

	if idx := s.indexLocked(p.ID); idx >= 0 {
		s.items[idx].Quantity += quantity
		if p.Stock > 0 && s.items[idx].Quantity > p.Stock {
			s.items[idx].Quantity = p.Stock
		}
		return s.stateLocked()
	}

	if p.Stock > 0 && quantity > p.Stock {
		quantity = p.Stock
	}
	s.items = append(s.items, LineItem{
		ID:       p.ID,
		Title:    p.Title,
		Price:    p.Price,
		Image:    p.Image,
		Quantity: quantity,
	})
	return s.stateLocked()
}

// AddBundle inserts the bundle as a single line at its discounted price, or
// bumps the existing bundle line by one.
func (s *Store) AddBundle(b *dataset.Bundle) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b == nil {
		return s.stateLocked()
	}

	lineID := BundleLinePrefix + b.ID
	if idx := s.indexLocked(lineID); idx >= 0 {
		s.items[idx].Quantity++
		return s.stateLocked()
	}

	original := b.OriginalPrice
	s.items = append(s.items, LineItem{
		ID:            lineID,
		Title:         b.Title,
		Price:         b.DiscountedPrice,
		Image:         b.Image,
		Quantity:      1,
		IsBundle:      true,
		BundleID:      b.ID,
		OriginalPrice: &original,
		Description:   b.Description,
	})
	return s.stateLocked()
}

// Remove deletes the line with the given id. Absent ids are a no-op.
func (s *Store) Remove(id string) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := s.indexLocked(id); idx >= 0 {
		s.items = append(s.items[:idx], s.items[idx+1:]...)
	}
	return s.stateLocked()
}

// UpdateQuantity clamps the quantity at zero and removes the line when it
// reaches zero. Absent ids are a no-op.
func (s *Store) UpdateQuantity(id string, quantity int) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexLocked(id)
	if idx < 0 {
		return s.stateLocked()
	}
	if quantity < 0 {
		quantity = 0
	}
	if quantity == 0 {
		s.items = append(s.items[:idx], s.items[idx+1:]...)
		return s.stateLocked()
	}
	s.items[idx].Quantity = quantity
	return s.stateLocked()
}

// Clear empties the cart.
func (s *Store) Clear() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	return s.stateLocked()
}

// IsBundleLine reports whether the id names a bundle line item.
func IsBundleLine(id string) bool {
	return strings.HasPrefix(id, BundleLinePrefix)
}

func (s *Store) indexLocked(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}
