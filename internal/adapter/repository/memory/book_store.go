// Package memory keeps books in process memory.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/iho/gaapledger/internal/domain"
)

// BookStore is a BookStore backed by a map. Books are listed in the order
// they were created.
type BookStore struct {
	mu    sync.RWMutex
	books map[string]*domain.Book
	order []string
}

// NewBookStore creates an empty store.
func NewBookStore() *BookStore {
	return &BookStore{books: make(map[string]*domain.Book)}
}

// Create adds a book.
func (s *BookStore) Create(ctx context.Context, book *domain.Book) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.books[book.ID]; exists {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateBook, book.ID)
	}
	s.books[book.ID] = book
	s.order = append(s.order, book.ID)
	return nil
}

// Get returns the book with the given id.
func (s *BookStore) Get(ctx context.Context, id string) (*domain.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	book, ok := s.books[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrBookNotFound, id)
	}
	return book, nil
}

// List returns up to limit books starting at offset.
func (s *BookStore) List(ctx context.Context, limit, offset int) ([]*domain.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if offset >= len(s.order) {
		return []*domain.Book{}, nil
	}
	end := min(offset+limit, len(s.order))

	books := make([]*domain.Book, 0, end-offset)
	for _, id := range s.order[offset:end] {
		books = append(books, s.books[id])
	}
	return books, nil
}
