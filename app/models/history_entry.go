package models

import "time"

// HistoryEntry satu alamat yang disimpan user. Immutable setelah dibuat.
type HistoryEntry struct {
	ID         string        `json:"id" bson:"_id"`
	CreatedAt  time.Time     `json:"created_at" bson:"created_at"`
	RawAddress string        `json:"raw_address" bson:"raw_address"`
	Parsed     ParsedAddress `json:"parsed" bson:"parsed"`
}
