// Package clock supplies the current instant and calendar date to the domain services.
package clock

import "time"

type Clock interface {
	Now() time.Time
	// Today returns midnight of the current calendar date.
	Today() time.Time
}

// System reads the wall clock in a fixed location.
type System struct {
	loc *time.Location
}

func NewSystem(loc *time.Location) System {
	if loc == nil {
		loc = time.Local
	}
	return System{loc: loc}
}

func (s System) Now() time.Time {
	return time.Now().In(s.loc)
}

func (s System) Today() time.Time {
	return StartOfDay(s.Now())
}

// Fixed always reports the same instant. Tests advance it with Set.
type Fixed struct {
	T time.Time
}

func (f *Fixed) Now() time.Time {
	return f.T
}

func (f *Fixed) Today() time.Time {
	return StartOfDay(f.T)
}

func (f *Fixed) Set(t time.Time) {
	f.T = t
}

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
