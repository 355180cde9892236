package showtimes

import (
	"fmt"
	"time"
)

// dayFormat is MM/DD/YY; single-digit months and days are accepted too.
const dayFormat = "1/2/06"

// ParseDay parses a MM/DD/YY calendar date as midnight in loc.
func ParseDay(day string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(dayFormat, day, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q is not MM/DD/YY", ErrInvalidArgument, day)
	}
	return t, nil
}

func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// NextMidnight is the start of the calendar day after t, in t's location.
func NextMidnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, t.Location())
}
