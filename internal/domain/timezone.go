package domain

import "time"

// Localize converts a stored UTC instant into the named zone.
// Returns ErrUnknownTimeZone when the name is not a valid IANA identifier;
// callers that accept user input must validate before persisting the name.
func Localize(instant time.Time, zoneName string) (time.Time, error) {
	// LoadLocation("") means UTC, which is never what a user typed.
	if zoneName == "" {
		return time.Time{}, ErrUnknownTimeZone
	}
	loc, err := time.LoadLocation(zoneName)
	if err != nil {
		return time.Time{}, ErrUnknownTimeZone
	}
	return instant.In(loc), nil
}

// SameCalendarDay reports whether two instants fall on the same
// (year, month, day) once both are converted to the named zone.
func SameCalendarDay(a, b time.Time, zoneName string) (bool, error) {
	loc, err := time.LoadLocation(zoneName)
	if err != nil {
		return false, ErrUnknownTimeZone
	}
	la, lb := a.In(loc), b.In(loc)
	ay, am, ad := la.Date()
	by, bm, bd := lb.Date()
	return ay == by && am == bm && ad == bd, nil
}
