package usecase_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/gaapledger/internal/adapter/repository/memory"
	"github.com/iho/gaapledger/internal/domain"
	"github.com/iho/gaapledger/internal/usecase"
)

type sequentialIDs struct {
	mu sync.Mutex
	n  int
}

func (g *sequentialIDs) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(s string) time.Time {
	t, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		panic(err)
	}
	return t
}

// newStoreWithBook returns a store holding one empty book with id "book-1".
func newStoreWithBook(t *testing.T) (*memory.BookStore, *domain.Book) {
	t.Helper()
	store := memory.NewBookStore()
	book, err := domain.NewBook("book-1", "Household", time.Now(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Create(context.Background(), book); err != nil {
		t.Fatal(err)
	}
	return store, book
}

func baseDeps(store usecase.BookStore) usecase.Deps {
	return usecase.Deps{
		Store:  store,
		IDGen:  &sequentialIDs{},
		Logger: zerolog.Nop(),
	}
}
