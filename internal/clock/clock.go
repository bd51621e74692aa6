// Package clock provides the injected time capability used by every
// time-dependent computation in the engine: today's date key, the streak
// walk and the penalty rollover all read the same Now, so an override is
// observed consistently everywhere, including mid-session.
package clock

import "time"

// Clock yields the current time.
type Clock interface {
	Now() time.Time
}

// System is the wall clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed always returns the same instant. Test use.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time { return f.T }

// Func adapts a plain function.
type Func func() time.Time

func (f Func) Now() time.Time { return f() }

// Override consults Get first and falls back to Base. The getter typically
// reads a persisted admin override; callers gate who is wired with one.
type Override struct {
	Base Clock
	Get  func() (time.Time, bool)
}

func (o Override) Now() time.Time {
	if o.Get != nil {
		if t, ok := o.Get(); ok {
			return t
		}
	}
	if o.Base == nil {
		return time.Now()
	}
	return o.Base.Now()
}
