// Package store holds one shopper's cart. A Store is owned by its session and
// only changes through the operations below; callers observe it through
// snapshots.
package store

import (
	"slices"
	"sync"

	"github.com/shopspring/decimal"
)

// Item is the catalog reference a line is created from.
type Item struct {
	ID    string
	Name  string
	Image string
	Price decimal.Decimal
}

type Line struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Image    string          `json:"image"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Snapshot is a copy of the cart. Count is the number of units across lines.
type Snapshot struct {
	Items  []Line          `json:"items"`
	Total  decimal.Decimal `json:"total"`
	Count  int             `json:"count"`
	IsOpen bool            `json:"is_open"`
}

func (s Snapshot) IsEmpty() bool {
	return len(s.Items) == 0
}

// Listener is called with the new snapshot after every mutation. It runs while
// the store is locked and must not call back into the Store.
type Listener func(Snapshot)

type Store struct {
	mu        sync.Mutex
	lines     []Line
	total     decimal.Decimal
	isOpen    bool
	listeners map[int]Listener
	nextId    int
}

func New() *Store {
	return &Store{total: decimal.Zero, listeners: map[int]Listener{}}
}

func (s *Store) AddItem(item Item) Snapshot {
	return s.mutate(func() {
		if i := s.index(item.ID); i >= 0 {
			s.lines[i].Quantity++
			return
		}
		s.lines = append(s.lines, Line{
			ID:       item.ID,
			Name:     item.Name,
			Image:    item.Image,
			Price:    item.Price,
			Quantity: 1,
		})
	})
}

// RemoveItem drops the line with id. Unknown ids are ignored.
func (s *Store) RemoveItem(id string) Snapshot {
	return s.mutate(func() { s.remove(id) })
}

// UpdateQuantity sets the absolute quantity of a line; quantities below one
// remove it.
func (s *Store) UpdateQuantity(id string, quantity int) Snapshot {
	return s.mutate(func() {
		if quantity <= 0 {
			s.remove(id)
			return
		}
		if i := s.index(id); i >= 0 {
			s.lines[i].Quantity = quantity
		}
	})
}

func (s *Store) Toggle() Snapshot {
	return s.mutate(func() { s.isOpen = !s.isOpen })
}

func (s *Store) Open() Snapshot {
	return s.mutate(func() { s.isOpen = true })
}

func (s *Store) Close() Snapshot {
	return s.mutate(func() { s.isOpen = false })
}

// Clear empties the cart and leaves the open flag alone.
func (s *Store) Clear() Snapshot {
	return s.mutate(func() { s.lines = nil })
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Subscribe registers l and returns the func removing it.
func (s *Store) Subscribe(l Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextId
	s.nextId++
	s.listeners[id] = l
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *Store) mutate(fn func()) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
	s.total = decimal.Zero
	for _, l := range s.lines {
		s.total = s.total.Add(l.Subtotal())
	}
	snapshot := s.snapshot()
	for _, l := range s.listeners {
		l(snapshot)
	}
	return snapshot
}

func (s *Store) remove(id string) {
	if i := s.index(id); i >= 0 {
		s.lines = slices.Delete(s.lines, i, i+1)
	}
}

func (s *Store) index(id string) int {
	return slices.IndexFunc(s.lines, func(l Line) bool { return l.ID == id })
}

func (s *Store) snapshot() Snapshot {
	items := slices.Clone(s.lines)
	if items == nil {
		items = []Line{}
	}
	count := 0
	for _, l := range items {
		count += l.Quantity
	}
	return Snapshot{
		Items:  items,
		Total:  s.total,
		Count:  count,
		IsOpen: s.isOpen,
	}
}
