package nmeapub

import (
	"context"

	"github.com/jd3nn1s/skytraq"
)

// Source blocks until the next sample is available or ctx is done.
type Source interface {
	Next(ctx context.Context) (Sample, error)
}

// Clock returns the current time in seconds.
type Clock interface {
	Seconds() float64
}

// Sender hands one finished sentence to the transport.
type Sender interface {
	Send([]byte) error
}

type GPS interface {
	Close() error
	Start(context.Context, skytraq.Callbacks) error
}
