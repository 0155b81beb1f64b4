package domain

import (
	"fmt"
	"strings"
)

// AccountType classifies an account in the chart of accounts.
type AccountType int

const (
	Asset AccountType = iota + 1
	Liability
	Equity
	Income
	Expense
)

// AccountTypes lists every account type in chart order.
var AccountTypes = []AccountType{Asset, Liability, Equity, Income, Expense}

// Side is the column a posting is written to.
type Side int

const (
	Debit Side = iota + 1
	Credit
)

var normalBalances = map[AccountType]Side{
	Asset:     Debit,
	Expense:   Debit,
	Liability: Credit,
	Equity:    Credit,
	Income:    Credit,
}

var accountTypeNames = map[AccountType]string{
	Asset:     "asset",
	Liability: "liability",
	Equity:    "equity",
	Income:    "income",
	Expense:   "expense",
}

// IsValid reports whether t is one of the five account types.
func (t AccountType) IsValid() bool {
	_, ok := normalBalances[t]
	return ok
}

// NormalBalance returns the side on which accounts of this type increase.
func (t AccountType) NormalBalance() Side {
	return normalBalances[t]
}

func (t AccountType) String() string {
	if name, ok := accountTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("AccountType(%d)", int(t))
}

// MarshalText implements encoding.TextMarshaler.
func (t AccountType) MarshalText() ([]byte, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidAccountType, int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *AccountType) UnmarshalText(text []byte) error {
	parsed, err := ParseAccountType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseAccountType parses a case-insensitive account type name.
// "revenue" is accepted as an alias for income.
func ParseAccountType(name string) (AccountType, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "revenue" {
		return Income, nil
	}
	for t, n := range accountTypeNames {
		if n == normalized {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidAccountType, name)
}

// IsValid reports whether s is Debit or Credit.
func (s Side) IsValid() bool {
	return s == Debit || s == Credit
}

// Opposite returns the other side.
func (s Side) Opposite() Side {
	switch s {
	case Debit:
		return Credit
	case Credit:
		return Debit
	default:
		return s
	}
}

func (s Side) String() string {
	switch s {
	case Debit:
		return "debit"
	case Credit:
		return "credit"
	default:
		return fmt.Sprintf("Side(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Side) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPostingSide, int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Side) UnmarshalText(text []byte) error {
	parsed, err := ParseSide(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSide parses "debit"/"dr" or "credit"/"cr", case-insensitively.
func ParseSide(name string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debit", "dr":
		return Debit, nil
	case "credit", "cr":
		return Credit, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidPostingSide, name)
	}
}
