// Package stats derives aggregate shooting statistics from a record set.
//
// Aggregates are recomputed from full snapshots on every store change and
// are never persisted.
package stats

import (
	"fmt"
	"sort"

	"github.com/okian/swish/internal/domain/model"
)

// Aggregate holds the derived statistics for a set of series records.
type Aggregate struct {
	// SeriesCount is the number of records visible to the subscription.
	SeriesCount int `json:"seriesCount"`

	// TotalMadeShots is the sum of madeShots over all visible records.
	TotalMadeShots int `json:"totalMadeShots"`

	// TotalShots is SeriesCount * model.SeriesSize.
	TotalShots int `json:"totalShots"`

	// Percentage is TotalMadeShots / TotalShots * 100 rendered with two
	// decimal places. "0.00" when there are no records.
	Percentage string `json:"percentage"`
}

// Compute derives the aggregate from a record set. Order-independent.
func Compute(records []model.Series) Aggregate {
	agg := Aggregate{
		SeriesCount: len(records),
		Percentage:  "0.00",
	}
	for _, r := range records {
		agg.TotalMadeShots += r.MadeShots
	}
	agg.TotalShots = agg.SeriesCount * model.SeriesSize
	if agg.TotalShots > 0 {
		pct := float64(agg.TotalMadeShots) / float64(agg.TotalShots) * 100
		agg.Percentage = fmt.Sprintf("%.2f", pct)
	}
	return agg
}

// SortChronological orders records ascending by timestamp for display.
// Records without a timestamp sort before all timestamped records, so a
// fresh write displays even before the server ordering value round-trips.
// The input is not modified.
func SortChronological(records []model.Series) []model.Series {
	out := make([]model.Series, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch {
		case !a.HasTimestamp() && !b.HasTimestamp():
			return false
		case !a.HasTimestamp():
			return true
		case !b.HasTimestamp():
			return false
		}
		return a.Timestamp.Before(b.Timestamp)
	})
	return out
}
