package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gaapledger/internal/domain"
)

// EntryUseCase records and lists journal entries.
type EntryUseCase struct {
	deps Deps
}

// NewEntryUseCase creates a new EntryUseCase.
func NewEntryUseCase(deps Deps) *EntryUseCase {
	return &EntryUseCase{deps: deps.withDefaults()}
}

// PostingInput is one leg of an entry, referring to its account by id.
type PostingInput struct {
	AccountID int64
	Side      domain.Side
	Amount    decimal.Decimal
}

// RecordEntryInput represents input for recording a journal entry.
type RecordEntryInput struct {
	BookID      string
	Date        time.Time
	Description string
	Postings    []PostingInput
}

// RecordEntry validates the postings and appends the entry to the book's
// journal. A rejected entry leaves the book unchanged.
func (uc *EntryUseCase) RecordEntry(ctx context.Context, input RecordEntryInput) (*domain.JournalEntry, error) {
	book, err := uc.deps.Store.Get(ctx, input.BookID)
	if err != nil {
		return nil, err
	}

	var entry *domain.JournalEntry
	err = book.Update(func(l *domain.Ledger) error {
		postings := make([]domain.Posting, 0, len(input.Postings))
		for i, p := range input.Postings {
			account, err := l.Account(p.AccountID)
			if err != nil {
				return fmt.Errorf("posting %d: %w", i, err)
			}
			posting, err := domain.NewPosting(account, p.Amount, p.Side)
			if err != nil {
				return fmt.Errorf("posting %d: %w", i, err)
			}
			postings = append(postings, posting)
		}

		var recordErr error
		entry, recordErr = l.Record(input.Date, input.Description, postings)
		return recordErr
	})
	if err != nil {
		uc.deps.Recorder.EntryRejected(rejectionReason(err))
		uc.deps.Logger.Warn().Err(err).
			Str("book_id", book.ID).
			Int("postings", len(input.Postings)).
			Msg("entry rejected")
		return nil, err
	}

	uc.deps.Recorder.EntryRecorded(len(input.Postings))
	uc.deps.Logger.Info().
		Str("book_id", book.ID).
		Int64("entry_id", entry.ID()).
		Int("postings", len(input.Postings)).
		Msg("entry recorded")
	uc.deps.publish(ctx, book.ID, domain.EventTypeEntryRecorded, domain.NewEntryRecordedEvent(entry))

	return entry, nil
}

// ListEntriesInput represents input for listing entries. A zero AccountID
// lists the whole journal.
type ListEntriesInput struct {
	BookID    string
	AccountID int64
	Limit     int
	Offset    int
}

// ListEntries lists entries in record order.
func (uc *EntryUseCase) ListEntries(ctx context.Context, input ListEntriesInput) ([]*domain.JournalEntry, error) {
	book, err := uc.deps.Store.Get(ctx, input.BookID)
	if err != nil {
		return nil, err
	}

	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	var entries []*domain.JournalEntry
	err = book.View(func(l *domain.Ledger) error {
		if input.AccountID == 0 {
			entries = l.JournalEntries()
			return nil
		}
		account, err := l.Account(input.AccountID)
		if err != nil {
			return err
		}
		entries = l.EntriesFor(account)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return page(entries, limit, offset), nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
