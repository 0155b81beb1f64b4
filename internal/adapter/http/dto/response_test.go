package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gaapledger/internal/domain"
	"github.com/iho/gaapledger/internal/usecase"
)

func TestEntryFromDomain(t *testing.T) {
	l := domain.NewLedger()
	cash, _ := l.CreateCashAccount("Cash")
	revenue, _ := l.CreateNonCashAccount("Revenue", domain.Income)

	entry, err := l.Entry(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), "Sale A").
		Credit(revenue, decimal.RequireFromString("300")).
		Debit(cash, decimal.RequireFromString("300")).
		Post()
	if err != nil {
		t.Fatalf("post failed: %v", err)
	}

	resp := EntryFromDomain(entry)
	if resp.ID != 1 || resp.Date != "2024-01-15" || !resp.Total.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("unexpected entry response: %+v", resp)
	}
	if resp.Postings[0].AccountName != "Cash" || resp.Postings[0].Side != domain.Debit {
		t.Fatalf("debits should come first, got %+v", resp.Postings)
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatal(err)
	}
	postings := decoded["postings"].([]any)
	if side := postings[1].(map[string]any)["side"]; side != "credit" {
		t.Fatalf("expected side to marshal as text, got %v", side)
	}
}

func TestAccountsFromBalances(t *testing.T) {
	l := domain.NewLedger()
	mortgage, _ := l.CreateNonCashAccount("Mortgage", domain.Liability)

	resp := AccountsFromBalances([]usecase.AccountBalance{
		{Account: mortgage, Balance: decimal.RequireFromString("39300")},
	})
	if resp.Total != 1 {
		t.Fatalf("expected total 1, got %d", resp.Total)
	}

	raw, err := json.Marshal(resp.Accounts[0])
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	want := `{"id":1,"name":"Mortgage","type":"liability","is_cash":false,"normal_balance":"credit","balance":"39300"}`
	if string(raw) != want {
		t.Fatalf("got %s, want %s", raw, want)
	}
}

func TestReportsFromDomain(t *testing.T) {
	asOf := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	sheet := BalanceSheetFromDomain(domain.BalanceSheet{
		Date:   asOf,
		Assets: decimal.NewFromInt(100),
	})
	if sheet.AsOf != "2024-12-31" || !sheet.Assets.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("unexpected balance sheet: %+v", sheet)
	}

	stmt := IncomeStatementFromDomain(domain.IncomeStatement{NetIncome: decimal.NewFromInt(5)})
	if stmt.Start != "" || stmt.End != "" {
		t.Fatalf("open bounds should be omitted, got %+v", stmt)
	}

	tb := TrialBalanceFromDomain(domain.TrialBalance{
		Rows: []domain.TrialBalanceRow{
			{ID: 1, Name: "Cash", Type: domain.Asset, Balance: decimal.NewFromInt(-20)},
		},
	})
	if !tb.Rows[0].Credit.Equal(decimal.NewFromInt(20)) || !tb.Rows[0].Debit.IsZero() {
		t.Fatalf("negative asset balance belongs in the credit column, got %+v", tb.Rows[0])
	}
}

func TestBooksFromDomain(t *testing.T) {
	book, err := domain.NewBook("book-1", "Household", time.Now(), nil)
	if err != nil {
		t.Fatal(err)
	}

	resp := BooksFromDomain([]*domain.Book{book})
	if resp.Total != 1 || resp.Books[0].ID != "book-1" || resp.Books[0].Name != "Household" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}
