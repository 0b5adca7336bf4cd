package domain

import "time"

// Message Invariants:
// 1. ID is assigned by the store at insert time and never changes.
// 2. CreatedAt is set once, by the application layer, and is never
//    recomputed on update. Only Text can change.
type Message struct {
	ID        string    `json:"_id"`
	Text      string    `json:"message"`
	CreatedAt time.Time `json:"date"`
}
