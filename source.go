package nmeapub

import (
	"context"
)

// ChanSource hands samples from a producer goroutine to the publish loop. It
// holds at most one sample and a newer sample replaces an unread one.
type ChanSource struct {
	ch chan Sample
}

func NewChanSource() *ChanSource {
	return &ChanSource{
		ch: make(chan Sample, 1),
	}
}

// Offer never blocks. Only one goroutine may offer to a source.
func (s *ChanSource) Offer(v Sample) {
	select {
	case <-s.ch:
	default:
	}
	select {
	case s.ch <- v:
	default:
	}
}

func (s *ChanSource) Next(ctx context.Context) (Sample, error) {
	select {
	case <-ctx.Done():
		return Sample{}, ctx.Err()
	case v := <-s.ch:
		return v, nil
	}
}
