package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimestampLayout is the DD-MM-YYYY HH:MM:SS layout used for history records.
const TimestampLayout = "02-01-2006 15:04:05"

type Record struct {
	Kind      TransactionKind `json:"kind"`
	Amount    decimal.Decimal `json:"amount"`
	Timestamp string          `json:"timestamp"`
}

// History is the append-only log of transactions applied to one account.
type History struct {
	entries []Record
	now     func() time.Time
}

func newHistory() *History {
	return &History{now: time.Now}
}

// Record appends tx to the log, stamped with the current time.
func (h *History) Record(tx Transaction) {
	h.entries = append(h.entries, Record{
		Kind:      tx.Kind(),
		Amount:    tx.Amount(),
		Timestamp: h.now().Format(TimestampLayout),
	})
}

// Entries returns a copy of the log in insertion order.
func (h *History) Entries() []Record {
	out := make([]Record, len(h.entries))
	copy(out, h.entries)
	return out
}

func (h *History) Len() int {
	return len(h.entries)
}

// Count returns how many records of the given kind are in the log.
func (h *History) Count(kind TransactionKind) int {
	n := 0
	for _, e := range h.entries {
		if e.Kind == kind {
			n++
		}
	}
	return n
}
