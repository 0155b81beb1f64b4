package domain

// IDGenerator hands out ledger-scoped integer ids.
type IDGenerator interface {
	Next() int64
}

// Sequence is a monotonic counter starting after a given value.
// It is not safe for concurrent use; a Ledger owns its sequences.
type Sequence struct {
	last int64
}

// NewSequence returns a sequence whose first id is start+1.
func NewSequence(start int64) *Sequence {
	return &Sequence{last: start}
}

// Next returns the next id.
func (s *Sequence) Next() int64 {
	s.last++
	return s.last
}
