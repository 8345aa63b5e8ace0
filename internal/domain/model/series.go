// Package model contains domain models passed between layers.
package model

import "time"

// Domain constants for a shooting drill series.
const (
	// SeriesSize is the fixed number of attempts per series. It is used
	// only for percentage computation and is never stored per record.
	SeriesSize = 50

	// MinMadeShots and MaxMadeShots bound the selectable made-shot count.
	MinMadeShots = 10
	MaxMadeShots = 40

	// DefaultMadeShots is the form's reset value after a successful submit.
	DefaultMadeShots = 10
)

// Series is one submitted shooting series. Records are append-only: once
// written they are never edited or deleted by this application.
type Series struct {
	// ID is assigned by the store; opaque and stable, used for list
	// identity only.
	ID string `json:"id"`

	// MadeShots is the number of successful shots, always in
	// [MinMadeShots, MaxMadeShots].
	MadeShots int `json:"madeShots"`

	// Observations is optional free text, possibly dictated.
	Observations string `json:"observations"`

	// Timestamp is assigned by the store at write time. The zero value
	// means the server ordering value has not round-tripped yet; such
	// records sort before all timestamped ones.
	Timestamp time.Time `json:"timestamp"`
}

// HasTimestamp reports whether the store has assigned an ordering value.
func (s Series) HasTimestamp() bool {
	return !s.Timestamp.IsZero()
}

// ValidMadeShots reports whether n is inside the selectable range.
func ValidMadeShots(n int) bool {
	return n >= MinMadeShots && n <= MaxMadeShots
}

// View identifies which of the three mutually exclusive pages is visible.
type View string

// Page views. Switching is purely local state.
const (
	ViewEntry       View = "entry"
	ViewAggregation View = "aggregation"
	ViewHistory     View = "history"
)

// ValidView reports whether v names a known page view.
func ValidView(v View) bool {
	switch v {
	case ViewEntry, ViewAggregation, ViewHistory:
		return true
	}
	return false
}
