package database

import (
	"errors"
	"sync"

	"gamestore/internal/models"
)

var ErrDuplicateKey = errors.New("duplicate key")

// Table keeps rows by id and remembers insertion order. Tables are not safe on their
// own; callers hold the owning Store's lock.
type Table[T any] struct {
	name  string
	rows  map[int]*T
	order []int
	seq   int
}

func NewTable[T any](name string) *Table[T] {
	return &Table[T]{
		name:  name,
		rows:  make(map[int]*T),
		order: make([]int, 0),
	}
}

func (t *Table[T]) Name() string {
	return t.name
}

// NextID hands out strictly increasing ids starting at 1.
func (t *Table[T]) NextID() int {
	t.seq++
	return t.seq
}

func (t *Table[T]) Insert(id int, row *T) error {
	if _, exists := t.rows[id]; exists {
		return ErrDuplicateKey
	}
	if id > t.seq {
		t.seq = id
	}
	t.rows[id] = row
	t.order = append(t.order, id)
	return nil
}

func (t *Table[T]) Get(id int) (*T, bool) {
	row, ok := t.rows[id]
	return row, ok
}

// All returns rows in insertion order.
func (t *Table[T]) All() []*T {
	rows := make([]*T, 0, len(t.order))
	for _, id := range t.order {
		rows = append(rows, t.rows[id])
	}
	return rows
}

func (t *Table[T]) Filter(match func(*T) bool) []*T {
	rows := make([]*T, 0)
	for _, id := range t.order {
		if row := t.rows[id]; match(row) {
			rows = append(rows, row)
		}
	}
	return rows
}

func (t *Table[T]) First(match func(*T) bool) (*T, bool) {
	for _, id := range t.order {
		if row := t.rows[id]; match(row) {
			return row, true
		}
	}
	return nil, false
}

func (t *Table[T]) Len() int {
	return len(t.order)
}

// Store owns every record in the storefront. Users and administrators reference games
// by id only, so a record's lifetime is the Store's.
type Store struct {
	mu             sync.RWMutex
	Games          *Table[models.Game]
	Users          *Table[models.User]
	Administrators *Table[models.Administrator]
	Posts          *Table[models.Post]
	Purchases      *Table[models.Purchase]
}

func NewStore() *Store {
	return &Store{
		Games:          NewTable[models.Game]("games"),
		Users:          NewTable[models.User]("users"),
		Administrators: NewTable[models.Administrator]("administrators"),
		Posts:          NewTable[models.Post]("posts"),
		Purchases:      NewTable[models.Purchase]("purchases"),
	}
}

func (s *Store) Lock()    { s.mu.Lock() }
func (s *Store) Unlock()  { s.mu.Unlock() }
func (s *Store) RLock()   { s.mu.RLock() }
func (s *Store) RUnlock() { s.mu.RUnlock() }
