package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/gaapledger/internal/domain"
	"github.com/iho/gaapledger/internal/usecase"
)

// withParams attaches chi URL parameters to req.
func withParams(req *http.Request, kv ...string) *http.Request {
	rctx := chi.NewRouteContext()
	for i := 0; i+1 < len(kv); i += 2 {
		rctx.URLParams.Add(kv[i], kv[i+1])
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

type bookServiceStub struct {
	createFn func(ctx context.Context, input usecase.CreateBookInput) (*domain.Book, error)
	getFn    func(ctx context.Context, id string) (*domain.Book, error)
	listFn   func(ctx context.Context, input usecase.ListBooksInput) ([]*domain.Book, error)
}

func (s *bookServiceStub) CreateBook(ctx context.Context, input usecase.CreateBookInput) (*domain.Book, error) {
	return s.createFn(ctx, input)
}

func (s *bookServiceStub) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	return s.getFn(ctx, id)
}

func (s *bookServiceStub) ListBooks(ctx context.Context, input usecase.ListBooksInput) ([]*domain.Book, error) {
	return s.listFn(ctx, input)
}

type accountServiceStub struct {
	createFn func(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error)
	getFn    func(ctx context.Context, bookID string, accountID int64) (*usecase.AccountBalance, error)
	listFn   func(ctx context.Context, bookID string) ([]usecase.AccountBalance, error)
}

func (s *accountServiceStub) CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
	return s.createFn(ctx, input)
}

func (s *accountServiceStub) GetAccount(ctx context.Context, bookID string, accountID int64) (*usecase.AccountBalance, error) {
	return s.getFn(ctx, bookID, accountID)
}

func (s *accountServiceStub) ListAccounts(ctx context.Context, bookID string) ([]usecase.AccountBalance, error) {
	return s.listFn(ctx, bookID)
}

type entryServiceStub struct {
	recordFn func(ctx context.Context, input usecase.RecordEntryInput) (*domain.JournalEntry, error)
	listFn   func(ctx context.Context, input usecase.ListEntriesInput) ([]*domain.JournalEntry, error)
}

func (s *entryServiceStub) RecordEntry(ctx context.Context, input usecase.RecordEntryInput) (*domain.JournalEntry, error) {
	return s.recordFn(ctx, input)
}

func (s *entryServiceStub) ListEntries(ctx context.Context, input usecase.ListEntriesInput) ([]*domain.JournalEntry, error) {
	return s.listFn(ctx, input)
}

type ledgerServiceStub struct {
	balanceSheetFn    func(ctx context.Context, bookID string, asOf time.Time) (domain.BalanceSheet, error)
	incomeStatementFn func(ctx context.Context, bookID string, start, end time.Time) (domain.IncomeStatement, error)
	cashFlowFn        func(ctx context.Context, bookID string, start, end time.Time) (domain.CashFlowStatement, error)
	trialBalanceFn    func(ctx context.Context, bookID string, asOf time.Time) (domain.TrialBalance, error)
	consistencyFn     func(ctx context.Context, bookID string) (bool, error)
}

func (s *ledgerServiceStub) BalanceSheet(ctx context.Context, bookID string, asOf time.Time) (domain.BalanceSheet, error) {
	return s.balanceSheetFn(ctx, bookID, asOf)
}

func (s *ledgerServiceStub) IncomeStatement(ctx context.Context, bookID string, start, end time.Time) (domain.IncomeStatement, error) {
	return s.incomeStatementFn(ctx, bookID, start, end)
}

func (s *ledgerServiceStub) CashFlow(ctx context.Context, bookID string, start, end time.Time) (domain.CashFlowStatement, error) {
	return s.cashFlowFn(ctx, bookID, start, end)
}

func (s *ledgerServiceStub) TrialBalance(ctx context.Context, bookID string, asOf time.Time) (domain.TrialBalance, error) {
	return s.trialBalanceFn(ctx, bookID, asOf)
}

func (s *ledgerServiceStub) CheckConsistency(ctx context.Context, bookID string) (bool, error) {
	return s.consistencyFn(ctx, bookID)
}
