package testutil

import "time"

var fixedTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// FixedTime is the spent_at used for fixture tickets.
func FixedTime() time.Time {
	return fixedTime
}
