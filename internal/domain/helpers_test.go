package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func mustAccount(t *testing.T, l *Ledger, name string, typ AccountType) *Account {
	t.Helper()
	a, err := l.CreateNonCashAccount(name, typ)
	if err != nil {
		t.Fatalf("create %s: %v", name, err)
	}
	return a
}

func mustCash(t *testing.T, l *Ledger, name string) *Account {
	t.Helper()
	a, err := l.CreateCashAccount(name)
	if err != nil {
		t.Fatalf("create %s: %v", name, err)
	}
	return a
}
