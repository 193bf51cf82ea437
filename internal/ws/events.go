package ws

import (
	"encoding/json"
	"sync/atomic"
	"time"
)

// Event is the structured message sent to feed subscribers. IDs are
// monotonic per process and exist only so clients can detect gaps; they are
// unrelated to audit entry IDs.
type Event struct {
	Type string          `json:"type"`
	ID   uint64          `json:"id"`
	Data json.RawMessage `json:"data"`
	Time time.Time       `json:"time"`
}

// EventTypeAudit is the event type for committed audit entries.
const EventTypeAudit = "audit_entry"

// eventSequence issues monotonic event IDs.
type eventSequence struct {
	counter atomic.Uint64
}

func (s *eventSequence) next() uint64 {
	return s.counter.Add(1)
}
