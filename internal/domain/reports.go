package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ReportLine is one account's contribution to a report.
type ReportLine struct {
	AccountID int64
	Name      string
	Type      AccountType
	Amount    decimal.Decimal
}

// BalanceSheet is a point-in-time view of the accounting equation.
// RetainedEarnings carries cumulative net income so that BalanceCheck is
// zero for every consistent ledger, even before the books are closed.
type BalanceSheet struct {
	Date             time.Time
	Assets           decimal.Decimal
	Liabilities      decimal.Decimal
	Equity           decimal.Decimal
	RetainedEarnings decimal.Decimal
	TotalEquity      decimal.Decimal
	BalanceCheck     decimal.Decimal
	Lines            []ReportLine
}

// IncomeStatement summarises income and expense activity over a period.
type IncomeStatement struct {
	StartDate time.Time
	EndDate   time.Time
	Income    decimal.Decimal
	Expenses  decimal.Decimal
	NetIncome decimal.Decimal
	Lines     []ReportLine
}

// CashFlowStatement splits the period's cash movement by activity.
type CashFlowStatement struct {
	StartDate     time.Time
	EndDate       time.Time
	Operating     decimal.Decimal
	Investing     decimal.Decimal
	Financing     decimal.Decimal
	NetCashChange decimal.Decimal
}

// TrialBalanceRow is one account's balance on its normal side.
type TrialBalanceRow struct {
	ID      int64
	Name    string
	Type    AccountType
	Balance decimal.Decimal
}

// Debit returns the amount shown in the debit column.
func (r TrialBalanceRow) Debit() decimal.Decimal {
	return r.column(Debit)
}

// Credit returns the amount shown in the credit column.
func (r TrialBalanceRow) Credit() decimal.Decimal {
	return r.column(Credit)
}

func (r TrialBalanceRow) column(side Side) decimal.Decimal {
	normal := r.Type.NormalBalance()
	switch {
	case r.Balance.IsPositive() && normal == side:
		return r.Balance
	case r.Balance.IsNegative() && normal != side:
		return r.Balance.Neg()
	default:
		return decimal.Zero
	}
}

// TrialBalance lists every account as of a date.
type TrialBalance struct {
	Date         time.Time
	Rows         []TrialBalanceRow
	TotalDebits  decimal.Decimal
	TotalCredits decimal.Decimal
}

// CashFlowCategory classifies the non-cash side of a cash movement.
type CashFlowCategory int

const (
	Operating CashFlowCategory = iota + 1
	Investing
	Financing
)

func (c CashFlowCategory) String() string {
	switch c {
	case Operating:
		return "operating"
	case Investing:
		return "investing"
	case Financing:
		return "financing"
	default:
		return fmt.Sprintf("CashFlowCategory(%d)", int(c))
	}
}

// CategoryFor returns the cash-flow category of a non-cash account.
func CategoryFor(account *Account) CashFlowCategory {
	switch account.typ {
	case Income, Expense:
		return Operating
	case Asset:
		return Investing
	default:
		return Financing
	}
}

// BalanceSheet sums balances of every entry dated on or before asOf.
// A zero asOf includes the whole journal.
func (l *Ledger) BalanceSheet(asOf time.Time) BalanceSheet {
	totals := l.activityByAccount(period{to: asOf})

	sheet := BalanceSheet{Date: asOf}
	var income, expenses decimal.Decimal
	for _, a := range l.accounts {
		amount := totals[a.id]
		switch a.typ {
		case Asset:
			sheet.Assets = sheet.Assets.Add(amount)
		case Liability:
			sheet.Liabilities = sheet.Liabilities.Add(amount)
		case Equity:
			sheet.Equity = sheet.Equity.Add(amount)
		case Income:
			income = income.Add(amount)
			continue
		case Expense:
			expenses = expenses.Add(amount)
			continue
		}
		sheet.Lines = append(sheet.Lines, line(a, amount))
	}

	sheet.RetainedEarnings = income.Sub(expenses)
	sheet.TotalEquity = sheet.Equity.Add(sheet.RetainedEarnings)
	sheet.BalanceCheck = sheet.Assets.Sub(sheet.Liabilities).Sub(sheet.TotalEquity)
	return sheet
}

// IncomeStatement sums income and expense activity dated between start
// and end inclusive.
func (l *Ledger) IncomeStatement(start, end time.Time) IncomeStatement {
	totals := l.activityByAccount(period{from: start, to: end})

	stmt := IncomeStatement{StartDate: start, EndDate: end}
	for _, a := range l.accounts {
		amount := totals[a.id]
		switch a.typ {
		case Income:
			stmt.Income = stmt.Income.Add(amount)
		case Expense:
			stmt.Expenses = stmt.Expenses.Add(amount)
		default:
			continue
		}
		stmt.Lines = append(stmt.Lines, line(a, amount))
	}
	stmt.NetIncome = stmt.Income.Sub(stmt.Expenses)
	return stmt
}

// CashFlowStatement classifies the cash movement of each entry in the
// period. An entry's cash delta is split across its non-cash postings in
// proportion to their amounts, and each share lands in the category of its
// account. NetCashChange is the cash accounts' activity and always equals
// the sum of the three categories.
func (l *Ledger) CashFlowStatement(start, end time.Time) (CashFlowStatement, error) {
	if len(l.CashAccounts()) == 0 {
		return CashFlowStatement{}, ErrNoCashAccount
	}

	stmt := CashFlowStatement{StartDate: start, EndDate: end}
	p := period{from: start, to: end}

	for _, e := range l.entries {
		if !p.contains(e.date) {
			continue
		}

		var (
			cashDelta decimal.Decimal
			others    []Posting
			weights   []decimal.Decimal
		)
		for _, posting := range e.postings {
			if posting.account.isCash {
				cashDelta = cashDelta.Add(posting.Signed())
				continue
			}
			others = append(others, posting)
			weights = append(weights, posting.amount)
		}

		stmt.NetCashChange = stmt.NetCashChange.Add(cashDelta)
		if cashDelta.IsZero() || len(others) == 0 {
			continue
		}

		shares, err := AllocateProportionally(cashDelta, weights)
		if err != nil {
			return CashFlowStatement{}, fmt.Errorf("entry %d: %w", e.id, err)
		}
		for i, posting := range others {
			switch CategoryFor(posting.account) {
			case Operating:
				stmt.Operating = stmt.Operating.Add(shares[i])
			case Investing:
				stmt.Investing = stmt.Investing.Add(shares[i])
			case Financing:
				stmt.Financing = stmt.Financing.Add(shares[i])
			}
		}
	}

	return stmt, nil
}

// TrialBalance lists each account's balance as of asOf in creation order.
func (l *Ledger) TrialBalance(asOf time.Time) TrialBalance {
	totals := l.activityByAccount(period{to: asOf})

	tb := TrialBalance{Date: asOf, Rows: make([]TrialBalanceRow, 0, len(l.accounts))}
	for _, a := range l.accounts {
		row := TrialBalanceRow{
			ID:      a.id,
			Name:    a.name,
			Type:    a.typ,
			Balance: totals[a.id],
		}
		tb.Rows = append(tb.Rows, row)
		tb.TotalDebits = tb.TotalDebits.Add(row.Debit())
		tb.TotalCredits = tb.TotalCredits.Add(row.Credit())
	}
	return tb
}

// CheckConsistency verifies journal-wide double-entry conservation and the
// accounting equation over the whole journal.
func (l *Ledger) CheckConsistency() error {
	var debits, credits decimal.Decimal
	for _, e := range l.entries {
		d, c := e.Totals()
		debits = debits.Add(d)
		credits = credits.Add(c)
	}
	if !debits.Equal(credits) {
		return fmt.Errorf("%w: debits=%s credits=%s", ErrInconsistentLedger, debits, credits)
	}

	sheet := l.BalanceSheet(time.Time{})
	if !sheet.BalanceCheck.IsZero() {
		return fmt.Errorf("%w: balance check=%s", ErrInconsistentLedger, sheet.BalanceCheck)
	}

	tb := l.TrialBalance(time.Time{})
	if !tb.TotalDebits.Equal(tb.TotalCredits) {
		return fmt.Errorf("%w: trial balance debits=%s credits=%s", ErrInconsistentLedger, tb.TotalDebits, tb.TotalCredits)
	}
	return nil
}

func line(a *Account, amount decimal.Decimal) ReportLine {
	return ReportLine{AccountID: a.id, Name: a.name, Type: a.typ, Amount: amount}
}
