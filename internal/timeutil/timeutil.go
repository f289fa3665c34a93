package timeutil

import (
	"time"
	_ "time/tzdata"
)

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// LeagueTimezone is the zone league calendar dates are expressed in.
const LeagueTimezone = "America/New_York"

var eastern = mustLoad(LeagueTimezone)

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// Eastern returns the league's home location.
func Eastern() *time.Location {
	return eastern
}

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// EasternDate returns the league calendar date for an instant.
func EasternDate(t time.Time) string {
	return FormatDate(t.In(eastern))
}
