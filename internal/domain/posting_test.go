package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewPosting(t *testing.T) {
	acc := &Account{id: 1, name: "Cash", typ: Asset}

	tests := []struct {
		name        string
		account     *Account
		amount      decimal.Decimal
		side        Side
		expectError error
	}{
		{"valid debit", acc, dec("10"), Debit, nil},
		{"valid credit", acc, dec("0.01"), Credit, nil},
		{"nil account", nil, dec("10"), Debit, ErrAccountRequired},
		{"zero amount", acc, decimal.Zero, Debit, ErrInvalidAmount},
		{"negative amount", acc, dec("-1"), Credit, ErrInvalidAmount},
		{"invalid side", acc, dec("10"), Side(0), ErrInvalidPostingSide},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPosting(tt.account, tt.amount, tt.side)
			if tt.expectError != nil {
				if !errors.Is(err, tt.expectError) {
					t.Fatalf("expected %v, got %v", tt.expectError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.Account() != tt.account || !p.Amount().Equal(tt.amount) || p.Side() != tt.side {
				t.Errorf("unexpected posting %s", p)
			}
		})
	}
}

func TestPostingBuilder_Sides(t *testing.T) {
	tests := []struct {
		typ          AccountType
		increaseSide Side
	}{
		{Asset, Debit},
		{Expense, Debit},
		{Liability, Credit},
		{Equity, Credit},
		{Income, Credit},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			acc := &Account{id: 1, name: "A", typ: tt.typ}
			postings, err := NewPostingBuilder().
				Increase(acc, dec("5")).
				Decrease(acc, dec("3")).
				Build()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(postings) != 2 {
				t.Fatalf("expected 2 postings, got %d", len(postings))
			}
			if postings[0].Side() != tt.increaseSide {
				t.Errorf("increase side = %s, want %s", postings[0].Side(), tt.increaseSide)
			}
			if postings[1].Side() != tt.increaseSide.Opposite() {
				t.Errorf("decrease side = %s, want %s", postings[1].Side(), tt.increaseSide.Opposite())
			}
			if !postings[0].Signed().Equal(dec("5")) || !postings[1].Signed().Equal(dec("-3")) {
				t.Errorf("signed = %s, %s", postings[0].Signed(), postings[1].Signed())
			}
		})
	}
}

func TestPostingBuilder_StickyError(t *testing.T) {
	acc := &Account{id: 1, name: "Cash", typ: Asset}

	b := NewPostingBuilder().
		Increase(acc, dec("-1")).
		Increase(nil, dec("10")).
		Decrease(acc, dec("10"))

	if !errors.Is(b.Err(), ErrInvalidAmount) {
		t.Fatalf("expected first error ErrInvalidAmount, got %v", b.Err())
	}
	if _, err := b.Build(); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("Build should return first error, got %v", err)
	}
}

func TestPostingBuilder_BuildReturnsCopy(t *testing.T) {
	acc := &Account{id: 1, name: "Cash", typ: Asset}
	b := NewPostingBuilder().Increase(acc, dec("1"))

	first, _ := b.Build()
	first[0] = Posting{}

	second, _ := b.Build()
	if second[0].Account() != acc {
		t.Error("mutating a built slice should not affect the builder")
	}
}
