package services

import "time"

// Clock abstracts time.Now() so ticks can be evaluated for any day.
type Clock interface {
	Now() time.Time
}

// RealClock returns the process local time.
type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}

// FixedClock always reports the same instant.
type FixedClock time.Time

func (f FixedClock) Now() time.Time {
	return time.Time(f)
}
