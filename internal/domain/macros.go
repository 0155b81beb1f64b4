package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Macros records common bookkeeping patterns as single journal entries.
// Every macro builds its postings by intent and commits them through
// Ledger.Record.
type Macros struct {
	ledger *Ledger
}

// Do returns the macro set bound to l.
func (l *Ledger) Do() Macros {
	return Macros{ledger: l}
}

// SaleParams records revenue received into an asset account.
type SaleParams struct {
	Date        time.Time
	Description string
	Asset       *Account
	Revenue     *Account
	Amount      decimal.Decimal
}

// Withholding is an amount routed from gross pay to another account.
type Withholding struct {
	Account *Account
	Amount  decimal.Decimal
}

// PayrollParams records a paycheck: gross income split into net cash
// and withholdings.
type PayrollParams struct {
	Date         time.Time
	Description  string
	Cash         *Account
	Income       *Account
	Gross        decimal.Decimal
	Withholdings []Withholding
}

// LoanPaymentParams records a payment split between interest and principal.
type LoanPaymentParams struct {
	Date            time.Time
	Description     string
	Cash            *Account
	Loan            *Account
	InterestExpense *Account
	Principal       decimal.Decimal
	Interest        decimal.Decimal
}

// CapitalGainParams records the sale of an investment.
type CapitalGainParams struct {
	Date        time.Time
	Description string
	Cash        *Account
	Investment  *Account
	Gain        *Account
	Loss        *Account
	Proceeds    decimal.Decimal
	Basis       decimal.Decimal
}

// RMDWithdrawalParams records a required minimum distribution from a
// retirement account with tax withheld.
type RMDWithdrawalParams struct {
	Date        time.Time
	Description string
	Retirement  *Account
	Cash        *Account
	Withholding *Account
	Gross       decimal.Decimal
	Withheld    decimal.Decimal
}

// ExpenseParams records cash spent on an expense.
type ExpenseParams struct {
	Date        time.Time
	Description string
	Cash        *Account
	Expense     *Account
	Amount      decimal.Decimal
}

// IncomeParams records interest, dividends or benefits received in cash.
type IncomeParams struct {
	Date        time.Time
	Description string
	Cash        *Account
	Income      *Account
	Amount      decimal.Decimal
}

// TransferParams moves value between two asset accounts.
type TransferParams struct {
	Date        time.Time
	Description string
	From        *Account
	To          *Account
	Amount      decimal.Decimal
}

// BuyInvestmentParams records cash spent on an investment.
type BuyInvestmentParams struct {
	Date        time.Time
	Description string
	Cash        *Account
	Investment  *Account
	Amount      decimal.Decimal
}

// BorrowParams records loan proceeds received in cash.
type BorrowParams struct {
	Date        time.Time
	Description string
	Cash        *Account
	Loan        *Account
	Amount      decimal.Decimal
}

// ContributeCapitalParams records owner capital paid in.
type ContributeCapitalParams struct {
	Date        time.Time
	Description string
	Cash        *Account
	Equity      *Account
	Amount      decimal.Decimal
}

// RetirementContributionParams records cash moved into a retirement account.
type RetirementContributionParams struct {
	Date        time.Time
	Description string
	Cash        *Account
	Retirement  *Account
	Amount      decimal.Decimal
}

func (m Macros) record(date time.Time, description, fallback string, b *PostingBuilder) (*JournalEntry, error) {
	if date.IsZero() {
		return nil, ErrInvalidDate
	}
	postings, err := b.Build()
	if err != nil {
		return nil, err
	}
	if description == "" {
		description = fallback
	}
	return m.ledger.Record(date, description, postings)
}

// Sale increases the asset and the revenue account by the same amount.
func (m Macros) Sale(p SaleParams) (*JournalEntry, error) {
	b := NewPostingBuilder().
		Increase(p.Asset, p.Amount).
		Increase(p.Revenue, p.Amount)
	return m.record(p.Date, p.Description, "Sale", b)
}

// Payroll debits cash with gross minus withholdings, debits each
// withholding account and credits gross income. Net pay must be positive.
func (m Macros) Payroll(p PayrollParams) (*JournalEntry, error) {
	net := p.Gross
	for _, w := range p.Withholdings {
		net = net.Sub(w.Amount)
	}
	if !net.IsPositive() {
		return nil, fmt.Errorf("%w: net pay %s", ErrInvalidAmount, net)
	}

	b := NewPostingBuilder().Increase(p.Cash, net)
	for _, w := range p.Withholdings {
		b.Increase(w.Account, w.Amount)
	}
	b.Increase(p.Income, p.Gross)
	return m.record(p.Date, p.Description, "Payroll", b)
}

// LoanPayment skips an interest or principal leg that is zero.
func (m Macros) LoanPayment(p LoanPaymentParams) (*JournalEntry, error) {
	b := NewPostingBuilder()
	if !p.Interest.IsZero() {
		b.Increase(p.InterestExpense, p.Interest)
	}
	if !p.Principal.IsZero() {
		b.Decrease(p.Loan, p.Principal)
	}
	b.Decrease(p.Cash, p.Interest.Add(p.Principal))
	return m.record(p.Date, p.Description, "Loan payment", b)
}

// CapitalGain posts the difference between proceeds and basis to the gain
// account when positive and the loss account when negative.
func (m Macros) CapitalGain(p CapitalGainParams) (*JournalEntry, error) {
	b := NewPostingBuilder().
		Increase(p.Cash, p.Proceeds).
		Decrease(p.Investment, p.Basis)

	diff := p.Proceeds.Sub(p.Basis)
	switch {
	case diff.IsPositive():
		b.Increase(p.Gain, diff)
	case diff.IsNegative():
		b.Increase(p.Loss, diff.Neg())
	}
	return m.record(p.Date, p.Description, "Capital gain", b)
}

// RMDWithdrawal pays gross minus withheld into cash.
func (m Macros) RMDWithdrawal(p RMDWithdrawalParams) (*JournalEntry, error) {
	net := p.Gross.Sub(p.Withheld)
	b := NewPostingBuilder().
		Decrease(p.Retirement, p.Gross).
		Increase(p.Cash, net)
	if !p.Withheld.IsZero() {
		b.Increase(p.Withholding, p.Withheld)
	}
	return m.record(p.Date, p.Description, "RMD withdrawal", b)
}

// Expense increases the expense account and decreases cash.
func (m Macros) Expense(p ExpenseParams) (*JournalEntry, error) {
	b := NewPostingBuilder().
		Increase(p.Expense, p.Amount).
		Decrease(p.Cash, p.Amount)
	return m.record(p.Date, p.Description, "Expense", b)
}

// Income increases cash and the income account.
func (m Macros) Income(p IncomeParams) (*JournalEntry, error) {
	b := NewPostingBuilder().
		Increase(p.Cash, p.Amount).
		Increase(p.Income, p.Amount)
	return m.record(p.Date, p.Description, "Income", b)
}

// Transfer moves Amount from one asset account to another.
func (m Macros) Transfer(p TransferParams) (*JournalEntry, error) {
	b := NewPostingBuilder().
		Increase(p.To, p.Amount).
		Decrease(p.From, p.Amount)
	return m.record(p.Date, p.Description, "Transfer", b)
}

// BuyInvestment increases the investment and decreases cash.
func (m Macros) BuyInvestment(p BuyInvestmentParams) (*JournalEntry, error) {
	b := NewPostingBuilder().
		Increase(p.Investment, p.Amount).
		Decrease(p.Cash, p.Amount)
	return m.record(p.Date, p.Description, "Buy investment", b)
}

// Borrow increases cash and the loan liability.
func (m Macros) Borrow(p BorrowParams) (*JournalEntry, error) {
	b := NewPostingBuilder().
		Increase(p.Cash, p.Amount).
		Increase(p.Loan, p.Amount)
	return m.record(p.Date, p.Description, "Borrow", b)
}

// ContributeCapital increases cash and owner equity.
func (m Macros) ContributeCapital(p ContributeCapitalParams) (*JournalEntry, error) {
	b := NewPostingBuilder().
		Increase(p.Cash, p.Amount).
		Increase(p.Equity, p.Amount)
	return m.record(p.Date, p.Description, "Capital contribution", b)
}

// RetirementContribution increases the retirement account and decreases cash.
func (m Macros) RetirementContribution(p RetirementContributionParams) (*JournalEntry, error) {
	b := NewPostingBuilder().
		Increase(p.Retirement, p.Amount).
		Decrease(p.Cash, p.Amount)
	return m.record(p.Date, p.Description, "Retirement contribution", b)
}
