package domain

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type household struct {
	ledger    *Ledger
	checking  *Account
	brokerage *Account
	house     *Account
	mortgage  *Account
	capital   *Account
	salary    *Account
	interest  *Account
	groceries *Account
}

func newHousehold(t *testing.T) household {
	t.Helper()
	l := NewLedger()
	return household{
		ledger:    l,
		checking:  mustCash(t, l, "Checking"),
		brokerage: mustAccount(t, l, "Brokerage", Asset),
		house:     mustAccount(t, l, "House", Asset),
		mortgage:  mustAccount(t, l, "Mortgage", Liability),
		capital:   mustAccount(t, l, "Opening Equity", Equity),
		salary:    mustAccount(t, l, "Salary", Income),
		interest:  mustAccount(t, l, "Mortgage Interest", Expense),
		groceries: mustAccount(t, l, "Groceries", Expense),
	}
}

func (h household) seed(t *testing.T) {
	t.Helper()
	l := h.ledger
	steps := []*JournalEntryBuilder{
		l.Entry(day(2024, 1, 1), "Opening").Debit(h.checking, dec("5000")).Credit(h.capital, dec("5000")),
		l.Entry(day(2024, 1, 5), "Buy house").Debit(h.house, dec("200000")).Credit(h.mortgage, dec("180000")).Credit(h.checking, dec("20000")),
		l.Entry(day(2024, 1, 15), "Paycheck").Debit(h.checking, dec("30000")).Credit(h.salary, dec("30000")),
		l.Entry(day(2024, 2, 1), "Mortgage payment").Debit(h.interest, dec("100")).Debit(h.mortgage, dec("400")).Credit(h.checking, dec("500")),
		l.Entry(day(2024, 2, 10), "Groceries").Debit(h.groceries, dec("250.75")).Credit(h.checking, dec("250.75")),
		l.Entry(day(2024, 3, 1), "Invest").Debit(h.brokerage, dec("1000")).Credit(h.checking, dec("1000")),
	}
	for _, b := range steps {
		_, err := b.Post()
		require.NoError(t, err)
	}
}

func TestLedger_BalanceSheet(t *testing.T) {
	h := newHousehold(t)
	h.seed(t)

	sheet := h.ledger.BalanceSheet(day(2024, 1, 31))
	assert.True(t, sheet.Assets.Equal(dec("215000")), "assets %s", sheet.Assets)
	assert.True(t, sheet.Liabilities.Equal(dec("180000")), "liabilities %s", sheet.Liabilities)
	assert.True(t, sheet.Equity.Equal(dec("5000")), "equity %s", sheet.Equity)
	assert.True(t, sheet.RetainedEarnings.Equal(dec("30000")), "retained %s", sheet.RetainedEarnings)
	assert.True(t, sheet.TotalEquity.Equal(dec("35000")), "total equity %s", sheet.TotalEquity)
	assert.True(t, sheet.BalanceCheck.IsZero(), "balance check %s", sheet.BalanceCheck)
	assert.Len(t, sheet.Lines, 5)

	full := h.ledger.BalanceSheet(day(2024, 12, 31))
	assert.True(t, full.Liabilities.Equal(dec("179600")), "liabilities %s", full.Liabilities)
	assert.True(t, full.RetainedEarnings.Equal(dec("29649.25")), "retained %s", full.RetainedEarnings)
	assert.True(t, full.BalanceCheck.IsZero(), "balance check %s", full.BalanceCheck)

	before := h.ledger.BalanceSheet(day(2023, 12, 31))
	assert.True(t, before.Assets.IsZero())
	assert.True(t, before.BalanceCheck.IsZero())
}

func TestLedger_IncomeStatement(t *testing.T) {
	h := newHousehold(t)
	h.seed(t)

	jan := h.ledger.IncomeStatement(day(2024, 1, 1), day(2024, 1, 31))
	assert.True(t, jan.Income.Equal(dec("30000")))
	assert.True(t, jan.Expenses.IsZero())
	assert.True(t, jan.NetIncome.Equal(dec("30000")))

	feb := h.ledger.IncomeStatement(day(2024, 2, 1), day(2024, 2, 10))
	assert.True(t, feb.Income.IsZero())
	assert.True(t, feb.Expenses.Equal(dec("350.75")), "expenses %s", feb.Expenses)
	assert.True(t, feb.NetIncome.Equal(dec("-350.75")))
	assert.Len(t, feb.Lines, 3)

	assert.Equal(t, day(2024, 2, 1), feb.StartDate)
	assert.Equal(t, day(2024, 2, 10), feb.EndDate)
}

func TestLedger_CashFlowStatement(t *testing.T) {
	h := newHousehold(t)
	h.seed(t)

	cf, err := h.ledger.CashFlowStatement(day(2024, 1, 1), day(2024, 12, 31))
	require.NoError(t, err)

	// paycheck 30000, interest -100, groceries -250.75
	assert.True(t, cf.Operating.Equal(dec("29649.25")), "operating %s", cf.Operating)
	// the 20000 down payment splits 200000:180000 between house and mortgage
	// (-10526 and -9474 after rounding), brokerage -1000
	assert.True(t, cf.Investing.Equal(dec("-11526")), "investing %s", cf.Investing)
	// opening 5000, mortgage share -9474, principal -400
	assert.True(t, cf.Financing.Equal(dec("-4874")), "financing %s", cf.Financing)
	assert.True(t, cf.NetCashChange.Equal(h.checking.Balance(h.ledger)), "net %s", cf.NetCashChange)
	assert.True(t, cf.Operating.Add(cf.Investing).Add(cf.Financing).Equal(cf.NetCashChange))
}

func TestLedger_CashFlowSplitsMixedEntry(t *testing.T) {
	h := newHousehold(t)
	h.seed(t)

	cf, err := h.ledger.CashFlowStatement(day(2024, 2, 1), day(2024, 2, 1))
	require.NoError(t, err)

	assert.True(t, cf.Operating.Equal(dec("-100")), "operating %s", cf.Operating)
	assert.True(t, cf.Financing.Equal(dec("-400")), "financing %s", cf.Financing)
	assert.True(t, cf.Investing.IsZero())
	assert.True(t, cf.NetCashChange.Equal(dec("-500")))
}

func TestLedger_CashFlowStatementWithoutCashAccount(t *testing.T) {
	l := NewLedger()
	mustAccount(t, l, "Brokerage", Asset)

	_, err := l.CashFlowStatement(day(2024, 1, 1), day(2024, 12, 31))
	assert.True(t, errors.Is(err, ErrNoCashAccount), "got %v", err)
}

func TestLedger_TrialBalance(t *testing.T) {
	h := newHousehold(t)
	h.seed(t)

	tb := h.ledger.TrialBalance(day(2024, 12, 31))
	require.Len(t, tb.Rows, 8)
	assert.True(t, tb.TotalDebits.Equal(tb.TotalCredits), "debits %s credits %s", tb.TotalDebits, tb.TotalCredits)

	rows := make(map[string]TrialBalanceRow)
	for _, r := range tb.Rows {
		rows[r.Name] = r
	}
	assert.True(t, rows["Checking"].Debit().Equal(dec("13249.25")), "checking %s", rows["Checking"].Balance)
	assert.True(t, rows["Mortgage"].Credit().Equal(dec("179600")))
	assert.True(t, rows["Mortgage"].Debit().IsZero())
	assert.True(t, rows["Groceries"].Debit().Equal(dec("250.75")))
	assert.Equal(t, h.checking.ID(), tb.Rows[0].ID)
}

func TestTrialBalanceRow_NegativeBalanceSwitchesColumn(t *testing.T) {
	row := TrialBalanceRow{Type: Asset, Balance: dec("-25")}
	assert.True(t, row.Credit().Equal(dec("25")))
	assert.True(t, row.Debit().IsZero())

	row = TrialBalanceRow{Type: Income, Balance: dec("-10")}
	assert.True(t, row.Debit().Equal(dec("10")))
	assert.True(t, row.Credit().IsZero())
}

func TestLedger_CheckConsistency(t *testing.T) {
	h := newHousehold(t)
	h.seed(t)
	require.NoError(t, h.ledger.CheckConsistency())

	// Entries can only be corrupted from inside the package.
	h.ledger.entries[0].postings[0].amount = dec("1")
	err := h.ledger.CheckConsistency()
	assert.True(t, errors.Is(err, ErrInconsistentLedger), "got %v", err)
}

func TestCategoryFor(t *testing.T) {
	tests := []struct {
		typ  AccountType
		want CashFlowCategory
	}{
		{Income, Operating},
		{Expense, Operating},
		{Asset, Investing},
		{Liability, Financing},
		{Equity, Financing},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CategoryFor(&Account{typ: tt.typ}), tt.typ.String())
	}
}

// TestLedger_Properties posts random balanced entries and checks the
// accounting equation, conservation, replay and cash-flow identities.
func TestLedger_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for run := 0; run < 25; run++ {
		l := NewLedger()
		accounts := []*Account{
			mustCash(t, l, "Cash"),
			mustCash(t, l, "Savings"),
			mustAccount(t, l, "Stocks", Asset),
			mustAccount(t, l, "Loan", Liability),
			mustAccount(t, l, "Capital", Equity),
			mustAccount(t, l, "Wages", Income),
			mustAccount(t, l, "Food", Expense),
			mustAccount(t, l, "Travel", Expense),
		}

		start := day(2024, 1, 1)
		for i := 0; i < 40; i++ {
			date := start.AddDate(0, 0, rng.Intn(365))
			b := l.Entry(date, "random")

			legs := 1 + rng.Intn(3)
			total := decimal.Zero
			for j := 0; j < legs; j++ {
				amount := decimal.New(rng.Int63n(1_000_000)+1, -2)
				total = total.Add(amount)
				b.Debit(accounts[rng.Intn(len(accounts))], amount)
			}
			b.Credit(accounts[rng.Intn(len(accounts))], total)

			_, err := b.Post()
			require.NoError(t, err)
		}

		for _, e := range l.JournalEntries() {
			d, c := e.Totals()
			require.True(t, d.Equal(c), "entry %d unbalanced", e.ID())
		}

		for month := time.January; month <= time.December; month++ {
			asOf := day(2024, month, 28)
			sheet := l.BalanceSheet(asOf)
			require.True(t, sheet.BalanceCheck.IsZero(), "run %d %s: balance check %s", run, asOf, sheet.BalanceCheck)

			tb := l.TrialBalance(asOf)
			require.True(t, tb.TotalDebits.Equal(tb.TotalCredits))

			cf, err := l.CashFlowStatement(start, asOf)
			require.NoError(t, err)
			sum := cf.Operating.Add(cf.Investing).Add(cf.Financing)
			require.True(t, sum.Equal(cf.NetCashChange), "run %d: %s != %s", run, sum, cf.NetCashChange)
		}

		for _, a := range accounts {
			require.True(t, a.Balance(l).Equal(a.BalanceAsOf(l, day(3000, 1, 1))))
		}
		require.NoError(t, l.CheckConsistency())
	}
}
