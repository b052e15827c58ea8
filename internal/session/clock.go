package session

import "time"

// Clock abstracts the pacing delay between RUNNING and RESULT so tests can
// inject a zero-delay implementation and keep transitions deterministic.
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }
