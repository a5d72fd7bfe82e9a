package models

import (
	"time"

	"github.com/google/uuid"
)

// Priority is the urgency label of an incident. High, Medium and Low are the
// selectable values on submission. Normal never appears in the submission
// form: it is the legacy label stored records fall back to when priority is
// absent, and it stays a valid filter value.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
	PriorityNormal Priority = "Normal"
)

// Selectable reports whether p can be chosen on submission.
func (p Priority) Selectable() bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

// Known reports whether p is any of the recognized labels, including the
// legacy Normal.
func (p Priority) Known() bool {
	return p.Selectable() || p == PriorityNormal
}

// StatusPending is the only status the submission pipeline ever writes.
// Further transitions belong to the moderation flow.
const StatusPending = "pending"

// Coordinates is a device-reported geographic position.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Location is the place an incident was reported from. Name is best-effort:
// reverse geocoding may fail and leave it as "Unknown Location".
type Location struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// Incident is one emergency report record.
//
// ID, Seq and Timestamp are assigned by the store on create and never change.
// Seq is the insertion counter used to break ties between records that share
// a timestamp, so every subscriber sees the same order. AuthorID and
// AuthorName are a snapshot of the submitting principal; they are not kept in
// sync with later profile changes.
type Incident struct {
	ID          uuid.UUID `json:"id"`
	Seq         int64     `json:"seq"`
	AuthorID    string    `json:"author_id"`
	AuthorName  string    `json:"author_name"`
	Description string    `json:"description"`
	Priority    Priority  `json:"priority"`
	Location    Location  `json:"location"`
	MediaURL    string    `json:"media_url,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
	Status      string    `json:"status"`
}
