package nmeapub

import (
	"time"

	"github.com/pkg/errors"
)

const (
	ClockElapsed = "elapsed"
	ClockDaytime = "daytime"
)

// ElapsedClock counts seconds since it was created, like a simulation clock
// that starts at zero.
type ElapsedClock struct {
	start time.Time
}

func NewElapsedClock() *ElapsedClock {
	return &ElapsedClock{start: time.Now()}
}

func (c *ElapsedClock) Seconds() float64 {
	return time.Since(c.start).Seconds()
}

// DaytimeClock counts seconds since UTC midnight of the day it was created.
// It keeps counting past 24 hours so it never runs backwards.
type DaytimeClock struct {
	midnight time.Time
	now      func() time.Time
}

func NewDaytimeClock() *DaytimeClock {
	return newDaytimeClock(time.Now)
}

func newDaytimeClock(now func() time.Time) *DaytimeClock {
	t := now().UTC()
	return &DaytimeClock{
		midnight: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC),
		now:      now,
	}
}

func (c *DaytimeClock) Seconds() float64 {
	return c.now().Sub(c.midnight).Seconds()
}

func NewClock(kind string) (Clock, error) {
	switch kind {
	case ClockElapsed, "":
		return NewElapsedClock(), nil
	case ClockDaytime:
		return NewDaytimeClock(), nil
	}
	return nil, errors.Errorf("unknown clock %q", kind)
}
