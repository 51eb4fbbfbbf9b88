package domain

import "time"

// TrafficStatistic holds the visitor counter for a single day.
// At most one record exists per date; records are never physically removed.
type TrafficStatistic struct {
	ID           string
	Date         time.Time
	VisitorCount int
	Deleted      bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Increment bumps the visitor counter by one
func (t *TrafficStatistic) Increment() {
	t.VisitorCount++
}
