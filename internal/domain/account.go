package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Account represents a ledger account. Its balance is never stored;
// it is replayed from the journal of the ledger that created it.
type Account struct {
	id     int64
	name   string
	typ    AccountType
	isCash bool
}

func validateAccount(name string, typ AccountType, isCash bool) error {
	if err := ValidateAccountName(name); err != nil {
		return err
	}
	if !typ.IsValid() {
		return fmt.Errorf("%w: %d", ErrInvalidAccountType, int(typ))
	}
	if isCash && typ != Asset {
		return fmt.Errorf("%w: %q is %s", ErrCashAccountTypeMismatch, name, typ)
	}
	return nil
}

func (a *Account) ID() int64           { return a.id }
func (a *Account) Name() string        { return a.name }
func (a *Account) Type() AccountType   { return a.typ }
func (a *Account) IsCash() bool        { return a.isCash }
func (a *Account) NormalBalance() Side { return a.typ.NormalBalance() }

// Apply returns the signed effect of a posting on this account:
// +amount on the normal side, -amount on the other.
func (a *Account) Apply(side Side, amount decimal.Decimal) decimal.Decimal {
	if side == a.NormalBalance() {
		return amount
	}
	return amount.Neg()
}

// Balance replays every entry of l touching this account.
func (a *Account) Balance(l *Ledger) decimal.Decimal {
	return l.activity(a, period{})
}

// BalanceAsOf replays the entries of l dated on or before date.
func (a *Account) BalanceAsOf(l *Ledger, date time.Time) decimal.Decimal {
	return l.activity(a, period{to: date})
}

func (a *Account) String() string {
	return fmt.Sprintf("%s (%s #%d)", a.name, a.typ, a.id)
}
