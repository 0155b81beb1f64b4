package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntryBuilder accumulates explicit debit and credit postings and
// commits them to its ledger with Post.
type JournalEntryBuilder struct {
	ledger      *Ledger
	date        time.Time
	description string
	postings    []Posting
	err         error
}

// Entry starts a new journal entry on l.
func (l *Ledger) Entry(date time.Time, description string) *JournalEntryBuilder {
	return &JournalEntryBuilder{
		ledger:      l,
		date:        date,
		description: description,
	}
}

// Debit adds a debit posting.
func (b *JournalEntryBuilder) Debit(account *Account, amount decimal.Decimal) *JournalEntryBuilder {
	return b.add(account, amount, Debit)
}

// Credit adds a credit posting.
func (b *JournalEntryBuilder) Credit(account *Account, amount decimal.Decimal) *JournalEntryBuilder {
	return b.add(account, amount, Credit)
}

func (b *JournalEntryBuilder) add(account *Account, amount decimal.Decimal, side Side) *JournalEntryBuilder {
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

// Post checks the entry balances and records it on the ledger.
func (b *JournalEntryBuilder) Post() (*JournalEntry, error) {
	if b.err != nil {
		return nil, b.err
	}

	if len(b.postings) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInsufficientPostings, len(b.postings))
	}

	var debits, credits decimal.Decimal
	for _, p := range b.postings {
		if p.side == Debit {
			debits = debits.Add(p.amount)
		} else {
			credits = credits.Add(p.amount)
		}
	}
	if !debits.Equal(credits) {
		return nil, unbalanced(debits, credits)
	}

	return b.ledger.Record(b.date, b.description, b.postings)
}
