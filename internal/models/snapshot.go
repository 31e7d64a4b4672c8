package models

import (
	"encoding/json"
	"time"
)

// Snapshot is a stored serialization of one source kind
type Snapshot struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"`
	Revision  string          `json:"revision"` // derived from the raw input bytes
	Count     int             `json:"count"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// SnapshotCreate is the input for storing a snapshot
type SnapshotCreate struct {
	Kind     string
	Revision string
	Count    int
	Payload  json.RawMessage
}

// SnapshotSummary is a lightweight version for listings
type SnapshotSummary struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Revision  string    `json:"revision"`
	Count     int       `json:"count"`
	CreatedAt time.Time `json:"created_at"`
}
