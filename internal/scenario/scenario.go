// Package scenario loads YAML bookkeeping scenarios and replays them into
// a fresh ledger.
package scenario

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/iho/gaapledger/internal/domain"
)

var (
	ErrEmptyMacro     = errors.New("macro names no operation")
	ErrAmbiguousMacro = errors.New("macro names more than one operation")
	ErrPostingSide    = errors.New("posting needs exactly one of debit or credit")
)

// Scenario is a chart of accounts plus the transactions to record on it.
// Entries are recorded first, in file order, then macros.
type Scenario struct {
	Name     string    `yaml:"name"`
	Accounts []Account `yaml:"accounts"`
	Entries  []Entry   `yaml:"entries"`
	Macros   []Macro   `yaml:"macros"`
}

// Account declares one account of the chart.
type Account struct {
	Name string             `yaml:"name"`
	Type domain.AccountType `yaml:"type"`
	Cash bool               `yaml:"cash"`
}

// Entry is a journal entry given as explicit postings.
type Entry struct {
	Date        Date      `yaml:"date"`
	Description string    `yaml:"description"`
	Postings    []Posting `yaml:"postings"`
}

// Posting sets exactly one of Debit or Credit.
type Posting struct {
	Account string           `yaml:"account"`
	Debit   *decimal.Decimal `yaml:"debit"`
	Credit  *decimal.Decimal `yaml:"credit"`
}

// Date is a calendar day written as YYYY-MM-DD.
type Date struct {
	time.Time
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	t, err := time.Parse(domain.DateFormat, value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w: %q", value.Line, domain.ErrInvalidDate, value.Value)
	}
	d.Time = t
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Date) MarshalYAML() (any, error) {
	return d.Format(domain.DateFormat), nil
}

// Load decodes a scenario, rejecting unknown fields.
func Load(r io.Reader) (*Scenario, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Scenario
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	return &s, nil
}

// LoadFile reads and decodes the scenario at path.
func LoadFile(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scenario: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// Build replays the scenario into a new ledger.
func (s *Scenario) Build() (*domain.Ledger, error) {
	l := domain.NewLedger()

	for i, a := range s.Accounts {
		var err error
		if a.Cash {
			if a.Type != 0 && a.Type != domain.Asset {
				err = fmt.Errorf("%w: %q is %s", domain.ErrCashAccountTypeMismatch, a.Name, a.Type)
			} else {
				_, err = l.CreateCashAccount(a.Name)
			}
		} else {
			_, err = l.CreateNonCashAccount(a.Name, a.Type)
		}
		if err != nil {
			return nil, fmt.Errorf("account %d: %w", i+1, err)
		}
	}

	for i, e := range s.Entries {
		if err := e.record(l); err != nil {
			return nil, fmt.Errorf("entry %d (%s): %w", i+1, e.Description, err)
		}
	}

	for i, m := range s.Macros {
		op, err := m.operation()
		if err != nil {
			return nil, fmt.Errorf("macro %d: %w", i+1, err)
		}
		r := &resolver{ledger: l}
		if _, err := op.apply(l.Do(), r); err != nil {
			return nil, fmt.Errorf("macro %d: %w", i+1, err)
		}
	}

	return l, nil
}

func (e Entry) record(l *domain.Ledger) error {
	b := l.Entry(e.Date.Time, e.Description)
	r := &resolver{ledger: l}
	for _, p := range e.Postings {
		account := r.account(p.Account)
		if r.err != nil {
			return r.err
		}
		switch {
		case p.Debit != nil && p.Credit == nil:
			b.Debit(account, *p.Debit)
		case p.Credit != nil && p.Debit == nil:
			b.Credit(account, *p.Credit)
		default:
			return fmt.Errorf("%w: %q", ErrPostingSide, p.Account)
		}
	}
	_, err := b.Post()
	return err
}

// resolver looks accounts up by name and keeps the first failure.
type resolver struct {
	ledger *domain.Ledger
	err    error
}

func (r *resolver) account(name string) *domain.Account {
	if r.err != nil || name == "" {
		return nil
	}
	a, err := r.ledger.AccountByName(name)
	if err != nil {
		r.err = err
		return nil
	}
	return a
}
