// Package cart holds the client-persisted shopping state: the cart itself
// and the favorites set. Neither is a server-side entity; both live in a
// durable cookie per browser profile, last writer wins. The denormalized
// product snapshot on each line is captured at add time and is never
// re-validated against the live product record.
package cart

import (
	"github.com/shopspring/decimal"

	"brocante/internal/domain"
)

// Snapshot is the denormalized product copy kept on a cart line for
// display and totals. Price drift versus the live record is possible.
type Snapshot struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image,omitempty"`
}

func SnapshotOf(p domain.Product) Snapshot {
	return Snapshot{ID: p.ID, Name: p.Name, Price: p.Price, Image: p.MainImage()}
}

type Item struct {
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Product   *Snapshot `json:"product,omitempty"`
}

func (i Item) Subtotal() decimal.Decimal {
	if i.Product == nil {
		return decimal.Zero
	}
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Store is the injectable cart state container. Mutations keep two
// invariants: no line with quantity < 1 survives, and product ids are
// unique across lines.
type Store struct {
	Items []Item `json:"items"`
}

func New() *Store { return &Store{} }

// AddItem merges qty into an existing line on product-id match, else
// appends a new line. qty is clamped to at least 1.
func (s *Store) AddItem(p Snapshot, qty int) {
	if qty < 1 {
		qty = 1
	}
	for i := range s.Items {
		if s.Items[i].ProductID == p.ID {
			s.Items[i].Quantity += qty
			return
		}
	}
	snap := p
	s.Items = append(s.Items, Item{ProductID: p.ID, Quantity: qty, Product: &snap})
}

func (s *Store) RemoveItem(productID string) {
	out := s.Items[:0]
	for _, it := range s.Items {
		if it.ProductID != productID {
			out = append(out, it)
		}
	}
	s.Items = out
}

// UpdateQuantity sets the line quantity; qty <= 0 removes the line.
func (s *Store) UpdateQuantity(productID string, qty int) {
	if qty <= 0 {
		s.RemoveItem(productID)
		return
	}
	for i := range s.Items {
		if s.Items[i].ProductID == productID {
			s.Items[i].Quantity = qty
			return
		}
	}
}

func (s *Store) Clear() { s.Items = nil }

// TotalPrice sums price x quantity over lines with a resolved snapshot;
// a missing snapshot contributes zero.
func (s *Store) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, it := range s.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}

func (s *Store) ItemCount() int {
	n := 0
	for _, it := range s.Items {
		n += it.Quantity
	}
	return n
}

func (s *Store) Empty() bool { return len(s.Items) == 0 }
