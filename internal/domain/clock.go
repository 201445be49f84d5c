package domain

import "time"

// Clock supplies the current time. Services receive it as a dependency so
// temporal rules can be exercised with a fixed clock in tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return systemClock{} }
