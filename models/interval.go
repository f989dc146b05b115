package models

import (
	"math"
	"time"
)

// Interval is a half-open [Start, End) span of UTC instants.
type Interval struct {
	Start time.Time `bson:"start" json:"start"`
	End   time.Time `bson:"end" json:"end"`
}

// Valid reports whether End is strictly after Start.
func (i Interval) Valid() bool {
	return i.End.After(i.Start)
}

// Overlaps reports whether the two half-open intervals share any instant.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start.Before(o.End) && o.Start.Before(i.End)
}

// Hours returns the interval length in fractional hours.
func (i Interval) Hours() float64 {
	return i.End.Sub(i.Start).Hours()
}

// PriceFor returns hours × rate rounded up to the whole currency unit.
func (i Interval) PriceFor(rate float64) float64 {
	return math.Ceil(i.Hours() * rate)
}
