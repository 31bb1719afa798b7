package nmeapub

import (
	"context"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var retrySleep = time.Second

// Retryable is a connection to a device that may drop and need reopening.
type Retryable interface {
	Open() error
	Close() error
	Start(ctx context.Context) error
	Name() string
}

// retry keeps r open and started until ctx is done, closing and reopening it
// after every error.
func retry(ctx context.Context, r Retryable) error {
	errStarting := errors.New("starting")
	err := errStarting
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err != nil {
			if err != errStarting {
				log.WithField("err", err).Errorf("%s: reconnecting due to error", r.Name())
				if err := r.Close(); err != nil {
					log.WithField("err", err).Warnf("%s: unable to close", r.Name())
				}
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(retrySleep):
				}
			}
			if err = r.Open(); err != nil {
				continue
			}
		}
		err = r.Start(ctx)
	}
}
