package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gaapledger/internal/domain"
	"github.com/iho/gaapledger/internal/usecase"
)

// CreateBookRequest represents a request to create a book.
type CreateBookRequest struct {
	Name string `json:"name"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateBookRequest) ToUseCaseInput() usecase.CreateBookInput {
	return usecase.CreateBookInput{Name: r.Name}
}

// CreateAccountRequest represents a request to create an account.
// Type is one of asset, liability, equity, income (or revenue), expense;
// it may be omitted for cash accounts.
type CreateAccountRequest struct {
	Name   string             `json:"name"`
	Type   domain.AccountType `json:"type,omitempty"`
	IsCash bool               `json:"is_cash"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput(bookID string) usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		BookID: bookID,
		Name:   r.Name,
		Type:   r.Type,
		IsCash: r.IsCash,
	}
}

// PostingRequest is one leg of a journal entry.
type PostingRequest struct {
	AccountID int64           `json:"account_id"`
	Side      domain.Side     `json:"side"`
	Amount    decimal.Decimal `json:"amount"`
}

// RecordEntryRequest represents a request to record a journal entry.
type RecordEntryRequest struct {
	Date        string           `json:"date"`
	Description string           `json:"description"`
	Postings    []PostingRequest `json:"postings"`
}

// ToUseCaseInput converts to use case input. Date must be YYYY-MM-DD.
func (r *RecordEntryRequest) ToUseCaseInput(bookID string) (usecase.RecordEntryInput, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return usecase.RecordEntryInput{}, fmt.Errorf("%w: %q", domain.ErrInvalidDate, r.Date)
	}

	postings := make([]usecase.PostingInput, len(r.Postings))
	for i, p := range r.Postings {
		postings[i] = usecase.PostingInput{
			AccountID: p.AccountID,
			Side:      p.Side,
			Amount:    p.Amount,
		}
	}

	return usecase.RecordEntryInput{
		BookID:      bookID,
		Date:        date,
		Description: r.Description,
		Postings:    postings,
	}, nil
}

// PaginationRequest represents pagination parameters.
type PaginationRequest struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}
