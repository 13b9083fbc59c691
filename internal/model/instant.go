package model

import "time"

// Millis truncates t to the millisecond precision the store keeps and drops
// its monotonic reading, so a value read back from the store compares equal.
func Millis(t time.Time) time.Time {
	return time.UnixMilli(t.UnixMilli())
}

// millisPtr is Millis for optional instants.
func millisPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := Millis(*t)
	return &v
}
