package clock

import (
	"time"
)

// Clock supplies wall time. Everything that defaults a bound to "now" reads
// it through this interface so tests can pin the time.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

func New() Clock {
	return realClock{}
}
