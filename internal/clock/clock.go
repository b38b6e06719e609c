package clock

import "time"

// Clock supplies the current instant. Request logging stamps records with it.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func NewSystem() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

type fixedClock struct {
	now time.Time
}

// NewFixed returns a clock frozen at t, for tests.
func NewFixed(t time.Time) Clock {
	return fixedClock{now: t.UTC()}
}

func (f fixedClock) Now() time.Time {
	return f.now
}

// UnixMilli is the millisecond timestamp written into request logs.
func UnixMilli(c Clock) int64 {
	return c.Now().UnixMilli()
}
