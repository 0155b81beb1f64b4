package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/gaapledger/internal/adapter/http/dto"
	"github.com/iho/gaapledger/internal/domain"
	"github.com/iho/gaapledger/internal/usecase"
)

// AccountService defines the behavior needed by AccountHandler.
type AccountService interface {
	CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error)
	GetAccount(ctx context.Context, bookID string, accountID int64) (*usecase.AccountBalance, error)
	ListAccounts(ctx context.Context, bookID string) ([]usecase.AccountBalance, error)
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	accountUC AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountUC AccountService) *AccountHandler {
	return &AccountHandler{accountUC: accountUC}
}

// Create adds an account to the book's chart of accounts.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.accountUC.CreateAccount(r.Context(), req.ToUseCaseInput(chi.URLParam(r, "bookID")))
	if err != nil {
		writeDomainError(w, "failed to create account", err)
		return
	}

	// A new account has no postings yet.
	writeJSON(w, http.StatusCreated, dto.AccountFromDomain(account, decimal.Zero))
}

// Get retrieves an account with its balance.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	accountID, err := parseAccountID(r)
	if err != nil {
		writeDomainError(w, "invalid account ID", err)
		return
	}

	result, err := h.accountUC.GetAccount(r.Context(), chi.URLParam(r, "bookID"), accountID)
	if err != nil {
		writeDomainError(w, "failed to get account", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(result.Account, result.Balance))
}

// List lists the chart of accounts with balances.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	balances, err := h.accountUC.ListAccounts(r.Context(), chi.URLParam(r, "bookID"))
	if err != nil {
		writeDomainError(w, "failed to list accounts", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountsFromBalances(balances))
}
