package storage

import "time"

// RequestEntry is one audited /api/chat call. Generated text is never stored.
type RequestEntry struct {
	ID         int64
	Topic      string
	Status     int
	Outcome    string
	DurationMS int64
	CreatedAt  time.Time
}
