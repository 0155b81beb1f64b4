package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iho/gaapledger/internal/domain"
)

// LedgerUseCase produces financial reports and consistency checks.
type LedgerUseCase struct {
	deps Deps
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(deps Deps) *LedgerUseCase {
	return &LedgerUseCase{deps: deps.withDefaults()}
}

// view runs fn under the book's read lock and records how long it took.
func (uc *LedgerUseCase) view(ctx context.Context, bookID, report string, fn func(l *domain.Ledger) error) error {
	book, err := uc.deps.Store.Get(ctx, bookID)
	if err != nil {
		return err
	}

	start := time.Now()
	err = book.View(fn)
	uc.deps.Recorder.ReportGenerated(report, time.Since(start))
	return err
}

// BalanceSheet reports the book's position as of asOf. A zero asOf covers
// the whole journal.
func (uc *LedgerUseCase) BalanceSheet(ctx context.Context, bookID string, asOf time.Time) (domain.BalanceSheet, error) {
	var sheet domain.BalanceSheet
	err := uc.view(ctx, bookID, ReportBalanceSheet, func(l *domain.Ledger) error {
		sheet = l.BalanceSheet(asOf)
		return nil
	})
	return sheet, err
}

// IncomeStatement reports income and expenses between start and end inclusive.
func (uc *LedgerUseCase) IncomeStatement(ctx context.Context, bookID string, start, end time.Time) (domain.IncomeStatement, error) {
	if err := checkPeriod(start, end); err != nil {
		return domain.IncomeStatement{}, err
	}
	var stmt domain.IncomeStatement
	err := uc.view(ctx, bookID, ReportIncomeStatement, func(l *domain.Ledger) error {
		stmt = l.IncomeStatement(start, end)
		return nil
	})
	return stmt, err
}

// CashFlow reports the cash movement between start and end inclusive.
func (uc *LedgerUseCase) CashFlow(ctx context.Context, bookID string, start, end time.Time) (domain.CashFlowStatement, error) {
	if err := checkPeriod(start, end); err != nil {
		return domain.CashFlowStatement{}, err
	}
	var stmt domain.CashFlowStatement
	err := uc.view(ctx, bookID, ReportCashFlow, func(l *domain.Ledger) error {
		var err error
		stmt, err = l.CashFlowStatement(start, end)
		return err
	})
	return stmt, err
}

// TrialBalance lists every account of the book as of asOf.
func (uc *LedgerUseCase) TrialBalance(ctx context.Context, bookID string, asOf time.Time) (domain.TrialBalance, error) {
	var tb domain.TrialBalance
	err := uc.view(ctx, bookID, ReportTrialBalance, func(l *domain.Ledger) error {
		tb = l.TrialBalance(asOf)
		return nil
	})
	return tb, err
}

// CheckConsistency verifies that the book is balanced.
func (uc *LedgerUseCase) CheckConsistency(ctx context.Context, bookID string) (bool, error) {
	err := uc.view(ctx, bookID, ReportConsistency, func(l *domain.Ledger) error {
		return l.CheckConsistency()
	})
	if err != nil {
		if errors.Is(err, domain.ErrInconsistentLedger) {
			uc.deps.Logger.Error().Err(err).Str("book_id", bookID).Msg("ledger is inconsistent")
		}
		return false, err
	}
	return true, nil
}

func checkPeriod(start, end time.Time) error {
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return fmt.Errorf("%w: end %s is before start %s", domain.ErrInvalidDate,
			end.Format(domain.DateFormat), start.Format(domain.DateFormat))
	}
	return nil
}
