package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/gaapledger/internal/adapter/http/dto"
	"github.com/iho/gaapledger/internal/domain"
	"github.com/iho/gaapledger/internal/usecase"
)

// BookService defines the behavior needed by BookHandler.
type BookService interface {
	CreateBook(ctx context.Context, input usecase.CreateBookInput) (*domain.Book, error)
	GetBook(ctx context.Context, id string) (*domain.Book, error)
	ListBooks(ctx context.Context, input usecase.ListBooksInput) ([]*domain.Book, error)
}

// BookHandler handles book-related HTTP requests.
type BookHandler struct {
	bookUC BookService
}

// NewBookHandler creates a new BookHandler.
func NewBookHandler(bookUC BookService) *BookHandler {
	return &BookHandler{bookUC: bookUC}
}

// Create creates a new book.
func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	book, err := h.bookUC.CreateBook(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, "failed to create book", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.BookFromDomain(book))
}

// Get retrieves a book by ID.
func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	book, err := h.bookUC.GetBook(r.Context(), chi.URLParam(r, "bookID"))
	if err != nil {
		writeDomainError(w, "failed to get book", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.BookFromDomain(book))
}

// List lists books.
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.bookUC.ListBooks(r.Context(), usecase.ListBooksInput{
		Limit:  parseIntQuery(r, "limit", 20),
		Offset: parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeDomainError(w, "failed to list books", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.BooksFromDomain(books))
}
