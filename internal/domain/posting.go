package domain

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
)

// Posting is one leg of a journal entry. The amount is always positive;
// the side carries the direction.
type Posting struct {
	account *Account
	amount  decimal.Decimal
	side    Side
}

// NewPosting validates and builds a posting.
func NewPosting(account *Account, amount decimal.Decimal, side Side) (Posting, error) {
	if account == nil {
		return Posting{}, ErrAccountRequired
	}
	if err := ValidateAmount(amount); err != nil {
		return Posting{}, err
	}
	if !side.IsValid() {
		return Posting{}, fmt.Errorf("%w: %s", ErrInvalidPostingSide, side)
	}
	return Posting{account: account, amount: amount, side: side}, nil
}

func (p Posting) Account() *Account       { return p.account }
func (p Posting) Amount() decimal.Decimal { return p.amount }
func (p Posting) Side() Side              { return p.side }

// Signed returns the posting's effect on its account's balance.
func (p Posting) Signed() decimal.Decimal {
	return p.account.Apply(p.side, p.amount)
}

func (p Posting) String() string {
	if p.account == nil {
		return fmt.Sprintf("%s %s", p.side, p.amount)
	}
	return fmt.Sprintf("%s %s %s", p.side, p.account.name, p.amount)
}

// PostingBuilder turns increase/decrease intents into correctly sided
// postings using each account's normal balance. The first error is kept
// and returned by Build.
type PostingBuilder struct {
	postings []Posting
	err      error
}

// NewPostingBuilder returns an empty builder.
func NewPostingBuilder() *PostingBuilder {
	return &PostingBuilder{}
}

// Increase adds a posting on the account's normal side.
func (b *PostingBuilder) Increase(account *Account, amount decimal.Decimal) *PostingBuilder {
	if account == nil {
		return b.add(nil, amount, Debit)
	}
	return b.add(account, amount, account.NormalBalance())
}

// Decrease adds a posting opposite to the account's normal side.
func (b *PostingBuilder) Decrease(account *Account, amount decimal.Decimal) *PostingBuilder {
	if account == nil {
		return b.add(nil, amount, Credit)
	}
	return b.add(account, amount, account.NormalBalance().Opposite())
}

func (b *PostingBuilder) add(account *Account, amount decimal.Decimal, side Side) *PostingBuilder {
	if b.err != nil {
		return b
	}
	p, err := NewPosting(account, amount, side)
	if err != nil {
		b.err = err
		return b
	}
	b.postings = append(b.postings, p)
	return b
}

// Err returns the first error recorded by the builder.
func (b *PostingBuilder) Err() error {
	return b.err
}

// Build returns a copy of the accumulated postings.
func (b *PostingBuilder) Build() ([]Posting, error) {
	if b.err != nil {
		return nil, b.err
	}
	return slices.Clone(b.postings), nil
}
