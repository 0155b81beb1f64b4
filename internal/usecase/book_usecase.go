package usecase

import (
	"context"

	"github.com/iho/gaapledger/internal/domain"
)

// BookUseCase creates and looks up books.
type BookUseCase struct {
	deps Deps
}

// NewBookUseCase creates a new BookUseCase.
func NewBookUseCase(deps Deps) *BookUseCase {
	return &BookUseCase{deps: deps.withDefaults()}
}

// CreateBookInput represents input for creating a book.
type CreateBookInput struct {
	Name string
}

// CreateBook creates an empty book with its own ledger.
func (uc *BookUseCase) CreateBook(ctx context.Context, input CreateBookInput) (*domain.Book, error) {
	book, err := domain.NewBook(uc.deps.IDGen.Generate(), input.Name, uc.deps.Clock.Now().UTC(), domain.NewLedger())
	if err != nil {
		return nil, err
	}

	if err := uc.deps.Store.Create(ctx, book); err != nil {
		return nil, err
	}

	uc.deps.Recorder.BookCreated()
	uc.deps.Logger.Info().
		Str("book_id", book.ID).
		Str("name", book.Name).
		Msg("book created")
	uc.deps.publish(ctx, book.ID, domain.EventTypeBookCreated, domain.BookCreatedEvent{
		BookID: book.ID,
		Name:   book.Name,
	})

	return book, nil
}

// GetBook retrieves a book by ID.
func (uc *BookUseCase) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	return uc.deps.Store.Get(ctx, id)
}

// ListBooksInput represents input for listing books.
type ListBooksInput struct {
	Limit  int
	Offset int
}

// ListBooks lists books in creation order.
func (uc *BookUseCase) ListBooks(ctx context.Context, input ListBooksInput) ([]*domain.Book, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.deps.Store.List(ctx, limit, offset)
}
