// Package output renders ledgers and reports as plain-text tables.
package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/iho/gaapledger/internal/domain"
)

// Currency is the ISO code amounts are formatted in.
const Currency = money.USD

// Amount formats d as a currency string, rounding to the currency's
// minor unit.
func Amount(d decimal.Decimal) string {
	cur := money.GetCurrency(Currency)
	minor := d.Shift(int32(cur.Fraction)).Round(0)
	return money.New(minor.IntPart(), Currency).Display()
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
}

func title(w io.Writer, format string, args ...any) {
	heading := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, heading)
	fmt.Fprintln(w, strings.Repeat("=", len(heading)))
}

func date(t time.Time) string {
	if t.IsZero() {
		return "all dates"
	}
	return t.Format(domain.DateFormat)
}

// WriteJournal writes every entry in record order.
func WriteJournal(w io.Writer, entries []*domain.JournalEntry) error {
	for i, e := range entries {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, e.String()); err != nil {
			return err
		}
	}
	return nil
}

// WriteChartOfAccounts lists the accounts of l grouped by type.
func WriteChartOfAccounts(w io.Writer, l *domain.Ledger) error {
	title(w, "Chart of Accounts")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tName\tType\tNormal\tCash\t")
	for _, typ := range domain.AccountTypes {
		for _, a := range l.Accounts() {
			if a.Type() != typ {
				continue
			}
			cash := ""
			if a.IsCash() {
				cash = "yes"
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t\n", a.ID(), a.Name(), a.Type(), a.NormalBalance(), cash)
		}
	}
	return tw.Flush()
}

// WriteTAccount draws the T-account of a: debits on the left, credits on
// the right, followed by the running balance.
func WriteTAccount(w io.Writer, l *domain.Ledger, a *domain.Account) error {
	var debits, credits []string
	for _, e := range l.EntriesFor(a) {
		for _, p := range e.Postings() {
			if p.Account() != a {
				continue
			}
			cell := fmt.Sprintf("#%d %s %s", e.ID(), date(e.Date()), Amount(p.Amount()))
			if p.Side() == domain.Debit {
				debits = append(debits, cell)
			} else {
				credits = append(credits, cell)
			}
		}
	}

	title(w, "%s (%s)", a.Name(), a.Type())
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Dr\t|\tCr\t")
	for i := 0; i < max(len(debits), len(credits)); i++ {
		var dr, cr string
		if i < len(debits) {
			dr = debits[i]
		}
		if i < len(credits) {
			cr = credits[i]
		}
		fmt.Fprintf(tw, "%s\t|\t%s\t\n", dr, cr)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Balance: %s %s\n", Amount(a.Balance(l)), a.NormalBalance())
	return err
}

// WriteBalanceSheet writes the account lines and totals of sheet.
func WriteBalanceSheet(w io.Writer, sheet domain.BalanceSheet) error {
	title(w, "Balance Sheet as of %s", date(sheet.Date))
	tw := newTable(w)
	for _, typ := range []domain.AccountType{domain.Asset, domain.Liability, domain.Equity} {
		for _, line := range sheet.Lines {
			if line.Type == typ {
				fmt.Fprintf(tw, "%s\t%s\t%s\t\n", typ, line.Name, Amount(line.Amount))
			}
		}
	}
	fmt.Fprintf(tw, "\tRetained earnings\t%s\t\n", Amount(sheet.RetainedEarnings))
	fmt.Fprintln(tw, "\t\t\t")
	fmt.Fprintf(tw, "\tTotal assets\t%s\t\n", Amount(sheet.Assets))
	fmt.Fprintf(tw, "\tTotal liabilities\t%s\t\n", Amount(sheet.Liabilities))
	fmt.Fprintf(tw, "\tTotal equity\t%s\t\n", Amount(sheet.TotalEquity))
	fmt.Fprintf(tw, "\tBalance check\t%s\t\n", Amount(sheet.BalanceCheck))
	return tw.Flush()
}

// WriteIncomeStatement writes income and expense lines with net income.
func WriteIncomeStatement(w io.Writer, stmt domain.IncomeStatement) error {
	title(w, "Income Statement %s to %s", date(stmt.StartDate), date(stmt.EndDate))
	tw := newTable(w)
	for _, typ := range []domain.AccountType{domain.Income, domain.Expense} {
		for _, line := range stmt.Lines {
			if line.Type == typ {
				fmt.Fprintf(tw, "%s\t%s\t%s\t\n", typ, line.Name, Amount(line.Amount))
			}
		}
	}
	fmt.Fprintln(tw, "\t\t\t")
	fmt.Fprintf(tw, "\tTotal income\t%s\t\n", Amount(stmt.Income))
	fmt.Fprintf(tw, "\tTotal expenses\t%s\t\n", Amount(stmt.Expenses))
	fmt.Fprintf(tw, "\tNet income\t%s\t\n", Amount(stmt.NetIncome))
	return tw.Flush()
}

// WriteCashFlow writes the three activity sections and the net change.
func WriteCashFlow(w io.Writer, stmt domain.CashFlowStatement) error {
	title(w, "Cash Flow Statement %s to %s", date(stmt.StartDate), date(stmt.EndDate))
	tw := newTable(w)
	fmt.Fprintf(tw, "Operating activities\t%s\t\n", Amount(stmt.Operating))
	fmt.Fprintf(tw, "Investing activities\t%s\t\n", Amount(stmt.Investing))
	fmt.Fprintf(tw, "Financing activities\t%s\t\n", Amount(stmt.Financing))
	fmt.Fprintln(tw, "\t\t")
	fmt.Fprintf(tw, "Net change in cash\t%s\t\n", Amount(stmt.NetCashChange))
	return tw.Flush()
}

// WriteTrialBalance writes each account in its debit or credit column.
func WriteTrialBalance(w io.Writer, tb domain.TrialBalance) error {
	title(w, "Trial Balance as of %s", date(tb.Date))
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tAccount\tType\tDebit\tCredit\t")
	for _, row := range tb.Rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t\n",
			row.ID, row.Name, row.Type, column(row.Debit()), column(row.Credit()))
	}
	fmt.Fprintf(tw, "\tTotal\t\t%s\t%s\t\n", Amount(tb.TotalDebits), Amount(tb.TotalCredits))
	return tw.Flush()
}

func column(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return Amount(d)
}

// WriteReport writes the full picture of l: chart of accounts, journal,
// every T-account and all statements over the whole journal. The cash
// flow statement is skipped when l has no cash account.
func WriteReport(w io.Writer, name string, l *domain.Ledger) error {
	if name != "" {
		title(w, "%s", name)
		fmt.Fprintln(w)
	}

	sections := []func() error{
		func() error { return WriteChartOfAccounts(w, l) },
		func() error {
			title(w, "Journal")
			return WriteJournal(w, l.JournalEntries())
		},
	}
	for _, a := range l.Accounts() {
		sections = append(sections, func() error { return WriteTAccount(w, l, a) })
	}
	sections = append(sections,
		func() error { return WriteBalanceSheet(w, l.BalanceSheet(time.Time{})) },
		func() error { return WriteIncomeStatement(w, l.IncomeStatement(time.Time{}, time.Time{})) },
		func() error {
			if len(l.CashAccounts()) == 0 {
				return nil
			}
			stmt, err := l.CashFlowStatement(time.Time{}, time.Time{})
			if err != nil {
				return err
			}
			return WriteCashFlow(w, stmt)
		},
		func() error { return WriteTrialBalance(w, l.TrialBalance(time.Time{})) },
	)

	for i, section := range sections {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := section(); err != nil {
			return err
		}
	}
	return nil
}
