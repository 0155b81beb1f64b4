package domain

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateFormat is the layout used when rendering entry dates.
const DateFormat = "2006-01-02"

// JournalEntry is an immutable, balanced set of postings. Entries are
// validated on construction and receive their id when a Ledger records them.
type JournalEntry struct {
	id          int64
	date        time.Time
	description string
	postings    []Posting
}

// NewJournalEntry validates postings and returns an unrecorded entry.
// Unrecorded entries carry id 0; only Ledger.Record assigns ids, so ids
// are unique among recorded entries. Postings are stored debits first,
// then credits, each side ordered by account name.
func NewJournalEntry(date time.Time, description string, postings []Posting) (*JournalEntry, error) {
	if date.IsZero() {
		return nil, ErrInvalidDate
	}

	if len(postings) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInsufficientPostings, len(postings))
	}

	var debits, credits decimal.Decimal
	for i, p := range postings {
		if p.account == nil {
			return nil, fmt.Errorf("%w: posting %d", ErrAccountRequired, i)
		}
		if p.amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: posting %d has %s", ErrInvalidPostingAmount, i, p.amount)
		}

		switch p.side {
		case Debit:
			debits = debits.Add(p.amount)
		case Credit:
			credits = credits.Add(p.amount)
		default:
			return nil, fmt.Errorf("%w: posting %d has %s", ErrInvalidPostingSide, i, p.side)
		}
	}

	if !debits.Equal(credits) {
		return nil, unbalanced(debits, credits)
	}

	sorted := slices.Clone(postings)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].side != sorted[j].side {
			return sorted[i].side == Debit
		}
		return sorted[i].account.name < sorted[j].account.name
	})

	return &JournalEntry{
		date:        date,
		description: description,
		postings:    sorted,
	}, nil
}

func unbalanced(debits, credits decimal.Decimal) error {
	return fmt.Errorf("%w: debits=%s credits=%s", ErrUnbalancedEntry, debits, credits)
}

func (e *JournalEntry) ID() int64           { return e.id }
func (e *JournalEntry) Date() time.Time     { return e.date }
func (e *JournalEntry) Description() string { return e.description }

// Postings returns a copy of the entry's postings in canonical order.
func (e *JournalEntry) Postings() []Posting {
	return slices.Clone(e.postings)
}

// Totals returns the debit and credit totals of the entry.
func (e *JournalEntry) Totals() (debits, credits decimal.Decimal) {
	for _, p := range e.postings {
		if p.side == Debit {
			debits = debits.Add(p.amount)
		} else {
			credits = credits.Add(p.amount)
		}
	}
	return debits, credits
}

// Touches reports whether any posting refers to account.
func (e *JournalEntry) Touches(account *Account) bool {
	for _, p := range e.postings {
		if p.account.id == account.id {
			return true
		}
	}
	return false
}

// String renders the entry as a two-column Dr/Cr table.
func (e *JournalEntry) String() string {
	const (
		accountWidth = 32
		amountWidth  = 14
	)

	var b strings.Builder
	fmt.Fprintf(&b, "Entry #%d  %s  %s\n", e.id, e.date.Format(DateFormat), e.description)
	fmt.Fprintf(&b, "%-*s | %*s | %*s\n", accountWidth, "Account", amountWidth, "Dr", amountWidth, "Cr")
	b.WriteString(strings.Repeat("-", accountWidth+2*amountWidth+6))
	b.WriteByte('\n')

	for _, p := range e.postings {
		dr, cr := "", ""
		if p.side == Debit {
			dr = p.amount.StringFixed(2)
		} else {
			cr = p.amount.StringFixed(2)
		}
		fmt.Fprintf(&b, "%-*s | %*s | %*s\n", accountWidth, p.account.name, amountWidth, dr, amountWidth, cr)
	}

	debits, credits := e.Totals()
	b.WriteString(strings.Repeat("-", accountWidth+2*amountWidth+6))
	b.WriteByte('\n')
	fmt.Fprintf(&b, "%-*s | %*s | %*s\n", accountWidth, "Total", amountWidth, debits.StringFixed(2), amountWidth, credits.StringFixed(2))

	balanced := "yes"
	if !debits.Equal(credits) {
		balanced = "no"
	}
	fmt.Fprintf(&b, "Balanced: %s\n", balanced)

	return b.String()
}
