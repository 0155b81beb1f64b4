package domain

import "errors"

var (
	// Account errors
	ErrInvalidAccountName      = errors.New("invalid account name")
	ErrInvalidAccountType      = errors.New("invalid account type")
	ErrCashAccountTypeMismatch = errors.New("cash account must be an asset")
	ErrAccountNotFound         = errors.New("account not found")
	ErrAccountRequired         = errors.New("account is required")

	// Posting and journal entry errors
	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrInvalidDate          = errors.New("invalid date")
	ErrInsufficientPostings = errors.New("journal entry needs at least two postings")
	ErrInvalidPostingAmount = errors.New("posting amount must be positive")
	ErrInvalidPostingSide   = errors.New("posting side must be debit or credit")
	ErrUnbalancedEntry      = errors.New("unbalanced entry")

	// Report errors
	ErrNoCashAccount      = errors.New("ledger has no cash account")
	ErrInconsistentLedger = errors.New("ledger is inconsistent")

	// Allocation errors
	ErrNegativeWeight = errors.New("allocation weight must not be negative")
	ErrNoWeights      = errors.New("allocation needs at least one weight")
	ErrZeroWeights    = errors.New("allocation weights sum to zero")

	// Book errors
	ErrBookNotFound    = errors.New("book not found")
	ErrInvalidBookName = errors.New("invalid book name")
	ErrDuplicateBook   = errors.New("book already exists")
)
