package scenario

import (
	"github.com/shopspring/decimal"

	"github.com/iho/gaapledger/internal/domain"
)

// Macro names exactly one bookkeeping pattern.
type Macro struct {
	Sale          *Sale          `yaml:"sale,omitempty"`
	Expense       *Expense       `yaml:"expense,omitempty"`
	Income        *Income        `yaml:"income,omitempty"`
	Payroll       *Payroll       `yaml:"payroll,omitempty"`
	LoanPayment   *LoanPayment   `yaml:"loan_payment,omitempty"`
	CapitalGain   *CapitalGain   `yaml:"capital_gain,omitempty"`
	RMDWithdrawal *RMDWithdrawal `yaml:"rmd_withdrawal,omitempty"`
	Transfer      *Transfer      `yaml:"transfer,omitempty"`
}

type operation interface {
	apply(m domain.Macros, r *resolver) (*domain.JournalEntry, error)
}

func (m Macro) operation() (operation, error) {
	var ops []operation
	if m.Sale != nil {
		ops = append(ops, m.Sale)
	}
	if m.Expense != nil {
		ops = append(ops, m.Expense)
	}
	if m.Income != nil {
		ops = append(ops, m.Income)
	}
	if m.Payroll != nil {
		ops = append(ops, m.Payroll)
	}
	if m.LoanPayment != nil {
		ops = append(ops, m.LoanPayment)
	}
	if m.CapitalGain != nil {
		ops = append(ops, m.CapitalGain)
	}
	if m.RMDWithdrawal != nil {
		ops = append(ops, m.RMDWithdrawal)
	}
	if m.Transfer != nil {
		ops = append(ops, m.Transfer)
	}

	switch len(ops) {
	case 0:
		return nil, ErrEmptyMacro
	case 1:
		return ops[0], nil
	default:
		return nil, ErrAmbiguousMacro
	}
}

// Sale is a scenario sale: revenue received into an asset account.
type Sale struct {
	Date        Date            `yaml:"date"`
	Description string          `yaml:"description"`
	Asset       string          `yaml:"asset"`
	Revenue     string          `yaml:"revenue"`
	Amount      decimal.Decimal `yaml:"amount"`
}

func (s *Sale) apply(m domain.Macros, r *resolver) (*domain.JournalEntry, error) {
	p := domain.SaleParams{
		Date:        s.Date.Time,
		Description: s.Description,
		Asset:       r.account(s.Asset),
		Revenue:     r.account(s.Revenue),
		Amount:      s.Amount,
	}
	if r.err != nil {
		return nil, r.err
	}
	return m.Sale(p)
}

// Expense is cash spent on an expense account.
type Expense struct {
	Date        Date            `yaml:"date"`
	Description string          `yaml:"description"`
	Cash        string          `yaml:"cash"`
	Expense     string          `yaml:"expense"`
	Amount      decimal.Decimal `yaml:"amount"`
}

func (e *Expense) apply(m domain.Macros, r *resolver) (*domain.JournalEntry, error) {
	p := domain.ExpenseParams{
		Date:        e.Date.Time,
		Description: e.Description,
		Cash:        r.account(e.Cash),
		Expense:     r.account(e.Expense),
		Amount:      e.Amount,
	}
	if r.err != nil {
		return nil, r.err
	}
	return m.Expense(p)
}

// Income is interest, dividends or benefits received in cash.
type Income struct {
	Date        Date            `yaml:"date"`
	Description string          `yaml:"description"`
	Cash        string          `yaml:"cash"`
	Income      string          `yaml:"income"`
	Amount      decimal.Decimal `yaml:"amount"`
}

func (i *Income) apply(m domain.Macros, r *resolver) (*domain.JournalEntry, error) {
	p := domain.IncomeParams{
		Date:        i.Date.Time,
		Description: i.Description,
		Cash:        r.account(i.Cash),
		Income:      r.account(i.Income),
		Amount:      i.Amount,
	}
	if r.err != nil {
		return nil, r.err
	}
	return m.Income(p)
}

// Withholding routes part of a paycheck to another account.
type Withholding struct {
	Account string          `yaml:"account"`
	Amount  decimal.Decimal `yaml:"amount"`
}

// Payroll is a paycheck split into net cash and withholdings.
type Payroll struct {
	Date         Date            `yaml:"date"`
	Description  string          `yaml:"description"`
	Cash         string          `yaml:"cash"`
	Income       string          `yaml:"income"`
	Gross        decimal.Decimal `yaml:"gross"`
	Withholdings []Withholding   `yaml:"withholdings"`
}

func (pr *Payroll) apply(m domain.Macros, r *resolver) (*domain.JournalEntry, error) {
	p := domain.PayrollParams{
		Date:        pr.Date.Time,
		Description: pr.Description,
		Cash:        r.account(pr.Cash),
		Income:      r.account(pr.Income),
		Gross:       pr.Gross,
	}
	for _, w := range pr.Withholdings {
		p.Withholdings = append(p.Withholdings, domain.Withholding{
			Account: r.account(w.Account),
			Amount:  w.Amount,
		})
	}
	if r.err != nil {
		return nil, r.err
	}
	return m.Payroll(p)
}

// LoanPayment splits a loan payment between interest and principal.
type LoanPayment struct {
	Date            Date            `yaml:"date"`
	Description     string          `yaml:"description"`
	Cash            string          `yaml:"cash"`
	Loan            string          `yaml:"loan"`
	InterestExpense string          `yaml:"interest_expense"`
	Principal       decimal.Decimal `yaml:"principal"`
	Interest        decimal.Decimal `yaml:"interest"`
}

func (lp *LoanPayment) apply(m domain.Macros, r *resolver) (*domain.JournalEntry, error) {
	p := domain.LoanPaymentParams{
		Date:            lp.Date.Time,
		Description:     lp.Description,
		Cash:            r.account(lp.Cash),
		Loan:            r.account(lp.Loan),
		InterestExpense: r.account(lp.InterestExpense),
		Principal:       lp.Principal,
		Interest:        lp.Interest,
	}
	if r.err != nil {
		return nil, r.err
	}
	return m.LoanPayment(p)
}

// CapitalGain is the sale of an investment at a gain or loss.
type CapitalGain struct {
	Date        Date            `yaml:"date"`
	Description string          `yaml:"description"`
	Cash        string          `yaml:"cash"`
	Investment  string          `yaml:"investment"`
	Gain        string          `yaml:"gain"`
	Loss        string          `yaml:"loss"`
	Proceeds    decimal.Decimal `yaml:"proceeds"`
	Basis       decimal.Decimal `yaml:"basis"`
}

func (cg *CapitalGain) apply(m domain.Macros, r *resolver) (*domain.JournalEntry, error) {
	p := domain.CapitalGainParams{
		Date:        cg.Date.Time,
		Description: cg.Description,
		Cash:        r.account(cg.Cash),
		Investment:  r.account(cg.Investment),
		Gain:        r.account(cg.Gain),
		Loss:        r.account(cg.Loss),
		Proceeds:    cg.Proceeds,
		Basis:       cg.Basis,
	}
	if r.err != nil {
		return nil, r.err
	}
	return m.CapitalGain(p)
}

// RMDWithdrawal is a required minimum distribution with tax withheld.
type RMDWithdrawal struct {
	Date        Date            `yaml:"date"`
	Description string          `yaml:"description"`
	Retirement  string          `yaml:"retirement"`
	Cash        string          `yaml:"cash"`
	Withholding string          `yaml:"withholding"`
	Gross       decimal.Decimal `yaml:"gross"`
	Withheld    decimal.Decimal `yaml:"withheld"`
}

func (rmd *RMDWithdrawal) apply(m domain.Macros, r *resolver) (*domain.JournalEntry, error) {
	p := domain.RMDWithdrawalParams{
		Date:        rmd.Date.Time,
		Description: rmd.Description,
		Retirement:  r.account(rmd.Retirement),
		Cash:        r.account(rmd.Cash),
		Withholding: r.account(rmd.Withholding),
		Gross:       rmd.Gross,
		Withheld:    rmd.Withheld,
	}
	if r.err != nil {
		return nil, r.err
	}
	return m.RMDWithdrawal(p)
}

// Transfer moves an amount between two asset accounts.
type Transfer struct {
	Date        Date            `yaml:"date"`
	Description string          `yaml:"description"`
	From        string          `yaml:"from"`
	To          string          `yaml:"to"`
	Amount      decimal.Decimal `yaml:"amount"`
}

func (t *Transfer) apply(m domain.Macros, r *resolver) (*domain.JournalEntry, error) {
	p := domain.TransferParams{
		Date:        t.Date.Time,
		Description: t.Description,
		From:        r.account(t.From),
		To:          r.account(t.To),
		Amount:      t.Amount,
	}
	if r.err != nil {
		return nil, r.err
	}
	return m.Transfer(p)
}
