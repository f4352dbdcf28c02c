package contest

import "time"

// Lifecycle predicates classify a contest against an instant. They are
// pure so callers (and tests) pass the clock explicitly.

// newContestDays is how long before begin a contest stops being "new"
// and becomes "upcoming".
const newContestDays = 1

func IsNew(c *Contest, now time.Time) bool {
	return now.Before(c.Begin.AddDate(0, 0, -newContestDays))
}

func IsUpcoming(c *Contest, now time.Time) bool {
	return !IsNew(c, now) && now.Before(c.Begin)
}

func IsNotStarted(c *Contest, now time.Time) bool {
	return now.Before(c.Begin)
}

func IsOngoing(c *Contest, now time.Time) bool {
	return !now.Before(c.Begin) && now.Before(c.End)
}

func IsDone(c *Contest, now time.Time) bool {
	return !now.Before(c.End)
}

// IsExtended reports whether the grace/penalty window is active.
func IsExtended(c *Contest, now time.Time) bool {
	if c.PenaltySince == nil {
		return false
	}
	return !now.Before(*c.PenaltySince) && now.Before(c.End)
}
