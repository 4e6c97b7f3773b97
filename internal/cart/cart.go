// Package cart holds the storefront cart. The cart lives with the client
// session until checkout and changes only through Reduce.
package cart

import (
	"github.com/shopspring/decimal"

	"github.com/safsequence/Avance-Fragrance/internal/models"
)

type Item struct {
	Product  models.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

type State struct {
	Items  []Item          `json:"items"`
	Total  decimal.Decimal `json:"total"`
	IsOpen bool            `json:"isOpen"`
}

func (s State) ItemCount() int {
	n := 0
	for _, it := range s.Items {
		n += it.Quantity
	}
	return n
}

func (s State) IsEmpty() bool {
	return len(s.Items) == 0
}

// Action is one of AddItem, RemoveItem, UpdateQuantity, Clear, Toggle, SetOpen.
type Action interface {
	apply(State) State
}

// AddItem adds Quantity of Product, merging with an existing line.
// A zero Quantity adds one.
type AddItem struct {
	Product  models.Product
	Quantity int
}

type RemoveItem struct {
	ProductID uint
}

// UpdateQuantity sets the line quantity. Zero or less removes the line.
type UpdateQuantity struct {
	ProductID uint
	Quantity  int
}

type Clear struct{}

type Toggle struct{}

type SetOpen struct {
	Open bool
}

// Reduce returns the state after a. The input state is not modified.
func Reduce(s State, a Action) State {
	if a == nil {
		return s
	}
	return a.apply(s)
}

func (a AddItem) apply(s State) State {
	qty := a.Quantity
	if qty == 0 {
		qty = 1
	}

	items := make([]Item, 0, len(s.Items)+1)
	found := false
	for _, it := range s.Items {
		if it.Product.ID == a.Product.ID {
			it.Quantity += qty
			found = true
		}
		items = append(items, it)
	}
	if !found {
		items = append(items, Item{Product: a.Product, Quantity: qty})
	}
	return withItems(s, items)
}

func (a RemoveItem) apply(s State) State {
	items := make([]Item, 0, len(s.Items))
	for _, it := range s.Items {
		if it.Product.ID != a.ProductID {
			items = append(items, it)
		}
	}
	return withItems(s, items)
}

func (a UpdateQuantity) apply(s State) State {
	items := make([]Item, 0, len(s.Items))
	for _, it := range s.Items {
		if it.Product.ID == a.ProductID {
			it.Quantity = a.Quantity
		}
		if it.Quantity > 0 {
			items = append(items, it)
		}
	}
	return withItems(s, items)
}

func (Clear) apply(s State) State {
	return withItems(s, []Item{})
}

func (Toggle) apply(s State) State {
	s.IsOpen = !s.IsOpen
	return s
}

func (a SetOpen) apply(s State) State {
	s.IsOpen = a.Open
	return s
}

func withItems(s State, items []Item) State {
	s.Items = items
	s.Total = Total(items)
	return s
}

// Total is the sum of price times quantity.
func Total(items []Item) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.Product.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return sum
}
