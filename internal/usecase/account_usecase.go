package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gaapledger/internal/domain"
)

// AccountUseCase handles the chart of accounts of a book.
type AccountUseCase struct {
	deps Deps
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(deps Deps) *AccountUseCase {
	return &AccountUseCase{deps: deps.withDefaults()}
}

// AccountBalance is an account with its replayed balance.
type AccountBalance struct {
	Account *domain.Account
	Balance decimal.Decimal
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	BookID string
	Name   string
	Type   domain.AccountType
	IsCash bool
}

// CreateAccount adds an account to a book. Cash accounts are always assets;
// a zero Type is accepted for them.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	book, err := uc.deps.Store.Get(ctx, input.BookID)
	if err != nil {
		return nil, err
	}

	var account *domain.Account
	err = book.Update(func(l *domain.Ledger) error {
		var createErr error
		if input.IsCash {
			if input.Type != 0 && input.Type != domain.Asset {
				return fmt.Errorf("%w: %q is %s", domain.ErrCashAccountTypeMismatch, input.Name, input.Type)
			}
			account, createErr = l.CreateCashAccount(input.Name)
		} else {
			account, createErr = l.CreateNonCashAccount(input.Name, input.Type)
		}
		return createErr
	})
	if err != nil {
		return nil, err
	}

	uc.deps.Recorder.AccountCreated(account.Type())
	uc.deps.Logger.Info().
		Str("book_id", book.ID).
		Int64("account_id", account.ID()).
		Str("type", account.Type().String()).
		Bool("cash", account.IsCash()).
		Msg("account created")
	uc.deps.publish(ctx, book.ID, domain.EventTypeAccountCreated, domain.AccountCreatedEvent{
		AccountID: account.ID(),
		Name:      account.Name(),
		Type:      account.Type().String(),
		IsCash:    account.IsCash(),
	})

	return account, nil
}

// GetAccount retrieves an account and its balance.
func (uc *AccountUseCase) GetAccount(ctx context.Context, bookID string, accountID int64) (*AccountBalance, error) {
	book, err := uc.deps.Store.Get(ctx, bookID)
	if err != nil {
		return nil, err
	}

	var result *AccountBalance
	err = book.View(func(l *domain.Ledger) error {
		account, err := l.Account(accountID)
		if err != nil {
			return err
		}
		result = &AccountBalance{Account: account, Balance: account.Balance(l)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListAccounts lists every account of a book with its balance.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, bookID string) ([]AccountBalance, error) {
	book, err := uc.deps.Store.Get(ctx, bookID)
	if err != nil {
		return nil, err
	}

	var result []AccountBalance
	err = book.View(func(l *domain.Ledger) error {
		tb := l.TrialBalance(time.Time{})
		accounts := l.Accounts()
		result = make([]AccountBalance, len(accounts))
		for i, a := range accounts {
			result[i] = AccountBalance{Account: a, Balance: tb.Rows[i].Balance}
		}
		return nil
	})
	return result, err
}
