package domain

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Book is a named ledger shared between goroutines. All access to the
// ledger goes through View or Update, which hold the book's lock.
type Book struct {
	ID        string
	Name      string
	CreatedAt time.Time

	mu     sync.RWMutex
	ledger *Ledger
}

// NewBook wraps l in a book.
func NewBook(id, name string, createdAt time.Time, l *Ledger) (*Book, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidBookName)
	}
	if len([]rune(name)) > MaxAccountNameLength {
		return nil, fmt.Errorf("%w: name exceeds %d characters", ErrInvalidBookName, MaxAccountNameLength)
	}
	if l == nil {
		l = NewLedger()
	}
	return &Book{ID: id, Name: name, CreatedAt: createdAt, ledger: l}, nil
}

// View runs fn with shared access to the ledger.
func (b *Book) View(fn func(l *Ledger) error) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return fn(b.ledger)
}

// Update runs fn with exclusive access to the ledger.
func (b *Book) Update(fn func(l *Ledger) error) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return fn(b.ledger)
}
