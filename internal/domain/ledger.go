package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Ledger owns a chart of accounts and an append-only journal. Every
// balance and report is derived by replaying the journal; nothing is cached.
//
// A Ledger is not safe for concurrent use.
type Ledger struct {
	accounts   []*Account
	byID       map[int64]*Account
	entries    []*JournalEntry
	accountIDs IDGenerator
	entryIDs   IDGenerator
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithAccountIDs sets the generator used for account ids.
func WithAccountIDs(gen IDGenerator) Option {
	return func(l *Ledger) { l.accountIDs = gen }
}

// WithEntryIDs sets the generator used for journal entry ids.
func WithEntryIDs(gen IDGenerator) Option {
	return func(l *Ledger) { l.entryIDs = gen }
}

// NewLedger creates an empty ledger. Account and entry ids both start at 1
// unless generators are supplied.
func NewLedger(opts ...Option) *Ledger {
	l := &Ledger{
		byID:       make(map[int64]*Account),
		accountIDs: NewSequence(0),
		entryIDs:   NewSequence(0),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// CreateCashAccount adds an asset account that counts as cash.
func (l *Ledger) CreateCashAccount(name string) (*Account, error) {
	return l.createAccount(name, Asset, true)
}

// CreateNonCashAccount adds an account of the given type.
func (l *Ledger) CreateNonCashAccount(name string, typ AccountType) (*Account, error) {
	return l.createAccount(name, typ, false)
}

func (l *Ledger) createAccount(name string, typ AccountType, isCash bool) (*Account, error) {
	if err := validateAccount(name, typ, isCash); err != nil {
		return nil, err
	}

	account := &Account{
		id:     l.accountIDs.Next(),
		name:   strings.TrimSpace(name),
		typ:    typ,
		isCash: isCash,
	}
	if _, exists := l.byID[account.id]; exists {
		return nil, fmt.Errorf("duplicate account id %d", account.id)
	}

	l.accounts = append(l.accounts, account)
	l.byID[account.id] = account
	return account, nil
}

// Record validates and appends a journal entry. This is the only way
// entries enter the journal; a rejected entry leaves the ledger unchanged.
func (l *Ledger) Record(date time.Time, description string, postings []Posting) (*JournalEntry, error) {
	entry, err := NewJournalEntry(date, description, postings)
	if err != nil {
		return nil, err
	}

	for _, p := range entry.postings {
		if l.byID[p.account.id] != p.account {
			return nil, fmt.Errorf("%w: %q is not on this ledger", ErrAccountNotFound, p.account.name)
		}
	}

	entry.id = l.entryIDs.Next()
	l.entries = append(l.entries, entry)
	return entry, nil
}

// Accounts returns the accounts in creation order.
func (l *Ledger) Accounts() []*Account {
	return slices.Clone(l.accounts)
}

// Account looks up an account by id.
func (l *Ledger) Account(id int64) (*Account, error) {
	account, ok := l.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrAccountNotFound, id)
	}
	return account, nil
}

// AccountByName returns the first account with the given name.
func (l *Ledger) AccountByName(name string) (*Account, error) {
	for _, a := range l.accounts {
		if a.name == name {
			return a, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrAccountNotFound, name)
}

// CashAccounts returns the accounts flagged as cash.
func (l *Ledger) CashAccounts() []*Account {
	var cash []*Account
	for _, a := range l.accounts {
		if a.isCash {
			cash = append(cash, a)
		}
	}
	return cash
}

// JournalEntries returns the entries in the order they were recorded,
// which is not necessarily date order.
func (l *Ledger) JournalEntries() []*JournalEntry {
	return slices.Clone(l.entries)
}

// EntriesFor returns the recorded entries touching account, in record order.
func (l *Ledger) EntriesFor(account *Account) []*JournalEntry {
	var out []*JournalEntry
	for _, e := range l.entries {
		if e.Touches(account) {
			out = append(out, e)
		}
	}
	return out
}

// period bounds a replay. Both ends are inclusive; a zero bound is open.
type period struct {
	from time.Time
	to   time.Time
}

func (p period) contains(t time.Time) bool {
	if !p.from.IsZero() && t.Before(p.from) {
		return false
	}
	if !p.to.IsZero() && t.After(p.to) {
		return false
	}
	return true
}

// replay visits every posting of every entry dated within p.
func (l *Ledger) replay(p period, visit func(e *JournalEntry, posting Posting)) {
	for _, e := range l.entries {
		if !p.contains(e.date) {
			continue
		}
		for _, posting := range e.postings {
			visit(e, posting)
		}
	}
}

// activity sums the signed effect of postings on account within p.
func (l *Ledger) activity(account *Account, p period) decimal.Decimal {
	total := decimal.Zero
	l.replay(p, func(_ *JournalEntry, posting Posting) {
		if posting.account.id == account.id {
			total = total.Add(account.Apply(posting.side, posting.amount))
		}
	})
	return total
}

// activityByAccount is activity for every account in one pass.
func (l *Ledger) activityByAccount(p period) map[int64]decimal.Decimal {
	totals := make(map[int64]decimal.Decimal, len(l.accounts))
	l.replay(p, func(_ *JournalEntry, posting Posting) {
		id := posting.account.id
		totals[id] = totals[id].Add(posting.Signed())
	})
	return totals
}
