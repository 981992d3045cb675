package domain

import "time"

// DateLayout is the calendar-date format used for fitness log keys.
const DateLayout = "2006-01-02"

// DailyFitnessLog is unique per (UserID, Date). Date carries no time-of-day.
type DailyFitnessLog struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"userId"`
	Date       time.Time `json:"date"`
	DidWorkout bool      `json:"didWorkout"`
	CreatedAt  time.Time `json:"createdAt"`
}

// DateKey renders the calendar date of t, ignoring its clock and location offset.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}
