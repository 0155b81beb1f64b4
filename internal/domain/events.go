package domain

import "time"

// Event types
const (
	EventTypeBookCreated    = "book.created"
	EventTypeAccountCreated = "account.created"
	EventTypeEntryRecorded  = "entry.recorded"
)

// Event is a notification about a change to a book.
type Event struct {
	ID        string
	BookID    string
	EventType string
	Payload   any
	CreatedAt time.Time
}

// BookCreatedEvent payload
type BookCreatedEvent struct {
	BookID string `json:"book_id"`
	Name   string `json:"name"`
}

// AccountCreatedEvent payload
type AccountCreatedEvent struct {
	AccountID int64  `json:"account_id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	IsCash    bool   `json:"is_cash"`
}

// EntryRecordedEvent payload
type EntryRecordedEvent struct {
	EntryID     int64  `json:"entry_id"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Postings    int    `json:"postings"`
	Amount      string `json:"amount"`
}

// NewEntryRecordedEvent summarises a recorded entry.
func NewEntryRecordedEvent(e *JournalEntry) EntryRecordedEvent {
	debits, _ := e.Totals()
	return EntryRecordedEvent{
		EntryID:     e.id,
		Date:        e.date.Format(DateFormat),
		Description: e.description,
		Postings:    len(e.postings),
		Amount:      debits.String(),
	}
}
