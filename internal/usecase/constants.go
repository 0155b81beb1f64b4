package usecase

import "time"

const (
	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// Report names used for metrics and logs
	ReportBalanceSheet    = "balance_sheet"
	ReportIncomeStatement = "income_statement"
	ReportCashFlow        = "cash_flow"
	ReportTrialBalance    = "trial_balance"
	ReportConsistency     = "consistency"
)
