package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gaapledger/internal/domain"
	"github.com/iho/gaapledger/internal/usecase"
)

// BookResponse represents a book in API responses.
type BookResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// BookFromDomain converts domain book to response.
func BookFromDomain(b *domain.Book) *BookResponse {
	return &BookResponse{
		ID:        b.ID,
		Name:      b.Name,
		CreatedAt: b.CreatedAt,
	}
}

// ListBooksResponse represents a list of books.
type ListBooksResponse struct {
	Books []*BookResponse `json:"books"`
	Total int64           `json:"total"`
}

// BooksFromDomain converts domain books to a list response.
func BooksFromDomain(books []*domain.Book) ListBooksResponse {
	result := make([]*BookResponse, len(books))
	for i, b := range books {
		result[i] = BookFromDomain(b)
	}
	return ListBooksResponse{Books: result, Total: int64(len(result))}
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID            int64              `json:"id"`
	Name          string             `json:"name"`
	Type          domain.AccountType `json:"type"`
	IsCash        bool               `json:"is_cash"`
	NormalBalance domain.Side        `json:"normal_balance"`
	Balance       decimal.Decimal    `json:"balance"`
}

// AccountFromDomain converts a domain account and its balance to response.
func AccountFromDomain(a *domain.Account, balance decimal.Decimal) *AccountResponse {
	return &AccountResponse{
		ID:            a.ID(),
		Name:          a.Name(),
		Type:          a.Type(),
		IsCash:        a.IsCash(),
		NormalBalance: a.NormalBalance(),
		Balance:       balance,
	}
}

// ListAccountsResponse represents a chart of accounts.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// AccountsFromBalances converts account balances to a list response.
func AccountsFromBalances(balances []usecase.AccountBalance) ListAccountsResponse {
	result := make([]*AccountResponse, len(balances))
	for i, b := range balances {
		result[i] = AccountFromDomain(b.Account, b.Balance)
	}
	return ListAccountsResponse{Accounts: result, Total: int64(len(result))}
}

// PostingResponse is one leg of an entry.
type PostingResponse struct {
	AccountID   int64           `json:"account_id"`
	AccountName string          `json:"account_name"`
	Side        domain.Side     `json:"side"`
	Amount      decimal.Decimal `json:"amount"`
}

// EntryResponse represents a journal entry in API responses.
type EntryResponse struct {
	ID          int64             `json:"id"`
	Date        string            `json:"date"`
	Description string            `json:"description"`
	Postings    []PostingResponse `json:"postings"`
	Total       decimal.Decimal   `json:"total"`
}

// EntryFromDomain converts domain entry to response.
func EntryFromDomain(e *domain.JournalEntry) *EntryResponse {
	postings := make([]PostingResponse, len(e.Postings()))
	for i, p := range e.Postings() {
		postings[i] = PostingResponse{
			AccountID:   p.Account().ID(),
			AccountName: p.Account().Name(),
			Side:        p.Side(),
			Amount:      p.Amount(),
		}
	}
	debits, _ := e.Totals()

	return &EntryResponse{
		ID:          e.ID(),
		Date:        e.Date().Format(domain.DateFormat),
		Description: e.Description(),
		Postings:    postings,
		Total:       debits,
	}
}

// ListEntriesResponse represents a page of the journal.
type ListEntriesResponse struct {
	Entries []*EntryResponse `json:"entries"`
	Total   int64            `json:"total"`
}

// EntriesFromDomain converts domain entries to a list response.
func EntriesFromDomain(entries []*domain.JournalEntry) ListEntriesResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return ListEntriesResponse{Entries: result, Total: int64(len(result))}
}

// ReportLineResponse is one account's amount in a report.
type ReportLineResponse struct {
	AccountID int64              `json:"account_id"`
	Name      string             `json:"name"`
	Type      domain.AccountType `json:"type"`
	Amount    decimal.Decimal    `json:"amount"`
}

func linesFromDomain(lines []domain.ReportLine) []ReportLineResponse {
	result := make([]ReportLineResponse, len(lines))
	for i, l := range lines {
		result[i] = ReportLineResponse{
			AccountID: l.AccountID,
			Name:      l.Name,
			Type:      l.Type,
			Amount:    l.Amount,
		}
	}
	return result
}

// BalanceSheetResponse represents a balance sheet.
type BalanceSheetResponse struct {
	AsOf             string               `json:"as_of,omitempty"`
	Assets           decimal.Decimal      `json:"assets"`
	Liabilities      decimal.Decimal      `json:"liabilities"`
	Equity           decimal.Decimal      `json:"equity"`
	RetainedEarnings decimal.Decimal      `json:"retained_earnings"`
	TotalEquity      decimal.Decimal      `json:"total_equity"`
	BalanceCheck     decimal.Decimal      `json:"balance_check"`
	Lines            []ReportLineResponse `json:"lines"`
}

// BalanceSheetFromDomain converts a balance sheet to response.
func BalanceSheetFromDomain(s domain.BalanceSheet) BalanceSheetResponse {
	return BalanceSheetResponse{
		AsOf:             formatDate(s.Date),
		Assets:           s.Assets,
		Liabilities:      s.Liabilities,
		Equity:           s.Equity,
		RetainedEarnings: s.RetainedEarnings,
		TotalEquity:      s.TotalEquity,
		BalanceCheck:     s.BalanceCheck,
		Lines:            linesFromDomain(s.Lines),
	}
}

// IncomeStatementResponse represents an income statement.
type IncomeStatementResponse struct {
	Start     string               `json:"start,omitempty"`
	End       string               `json:"end,omitempty"`
	Income    decimal.Decimal      `json:"income"`
	Expenses  decimal.Decimal      `json:"expenses"`
	NetIncome decimal.Decimal      `json:"net_income"`
	Lines     []ReportLineResponse `json:"lines"`
}

// IncomeStatementFromDomain converts an income statement to response.
func IncomeStatementFromDomain(s domain.IncomeStatement) IncomeStatementResponse {
	return IncomeStatementResponse{
		Start:     formatDate(s.StartDate),
		End:       formatDate(s.EndDate),
		Income:    s.Income,
		Expenses:  s.Expenses,
		NetIncome: s.NetIncome,
		Lines:     linesFromDomain(s.Lines),
	}
}

// CashFlowResponse represents a cash flow statement.
type CashFlowResponse struct {
	Start         string          `json:"start,omitempty"`
	End           string          `json:"end,omitempty"`
	Operating     decimal.Decimal `json:"operating"`
	Investing     decimal.Decimal `json:"investing"`
	Financing     decimal.Decimal `json:"financing"`
	NetCashChange decimal.Decimal `json:"net_cash_change"`
}

// CashFlowFromDomain converts a cash flow statement to response.
func CashFlowFromDomain(s domain.CashFlowStatement) CashFlowResponse {
	return CashFlowResponse{
		Start:         formatDate(s.StartDate),
		End:           formatDate(s.EndDate),
		Operating:     s.Operating,
		Investing:     s.Investing,
		Financing:     s.Financing,
		NetCashChange: s.NetCashChange,
	}
}

// TrialBalanceRowResponse is one row of a trial balance.
type TrialBalanceRowResponse struct {
	AccountID int64              `json:"account_id"`
	Name      string             `json:"name"`
	Type      domain.AccountType `json:"type"`
	Debit     decimal.Decimal    `json:"debit"`
	Credit    decimal.Decimal    `json:"credit"`
}

// TrialBalanceResponse represents a trial balance.
type TrialBalanceResponse struct {
	AsOf         string                    `json:"as_of,omitempty"`
	Rows         []TrialBalanceRowResponse `json:"rows"`
	TotalDebits  decimal.Decimal           `json:"total_debits"`
	TotalCredits decimal.Decimal           `json:"total_credits"`
}

// TrialBalanceFromDomain converts a trial balance to response.
func TrialBalanceFromDomain(tb domain.TrialBalance) TrialBalanceResponse {
	rows := make([]TrialBalanceRowResponse, len(tb.Rows))
	for i, r := range tb.Rows {
		rows[i] = TrialBalanceRowResponse{
			AccountID: r.ID,
			Name:      r.Name,
			Type:      r.Type,
			Debit:     r.Debit(),
			Credit:    r.Credit(),
		}
	}
	return TrialBalanceResponse{
		AsOf:         formatDate(tb.Date),
		Rows:         rows,
		TotalDebits:  tb.TotalDebits,
		TotalCredits: tb.TotalCredits,
	}
}

// ConsistencyResponse reports the result of a consistency check.
type ConsistencyResponse struct {
	Status     string `json:"status"`
	Consistent bool   `json:"consistent"`
	Message    string `json:"message,omitempty"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(domain.DateFormat)
}
