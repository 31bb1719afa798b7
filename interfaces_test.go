package nmeapub

import (
	"context"
	"sync"

	"github.com/jd3nn1s/skytraq"
)

type sensorStub struct {
	startChan chan struct{}
	errChan   chan error
	fnChan    chan func()
}

type skytraqStub struct {
	sensorStub
	callbacks skytraq.Callbacks
}

func createSensorStub() *sensorStub {
	ret := sensorStub{
		startChan: make(chan struct{}, 1),
		errChan:   make(chan error),
		fnChan:    make(chan func()),
	}
	return &ret
}

func (s *sensorStub) Close() error {
	return nil
}

func (s *sensorStub) start(ctx context.Context) error {
	select {
	case s.startChan <- struct{}{}:
	default:
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-s.errChan:
			return err
		case fn := <-s.fnChan:
			fn()
		}
	}
}

func createGPSStub() *skytraqStub {
	return &skytraqStub{
		sensorStub: *createSensorStub(),
	}
}

func (k *skytraqStub) Start(ctx context.Context, callbacks skytraq.Callbacks) error {
	k.callbacks = callbacks
	return k.sensorStub.start(ctx)
}

// clockStub returns its readings in order and then repeats the last one.
type clockStub struct {
	mu       sync.Mutex
	readings []float64
	calls    int
}

func (c *clockStub) Seconds() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.calls
	if i >= len(c.readings) {
		i = len(c.readings) - 1
	}
	c.calls++
	return c.readings[i]
}

type sourceStub struct {
	sample Sample
	err    error
	calls  int
}

func (s *sourceStub) Next(ctx context.Context) (Sample, error) {
	s.calls++
	if err := ctx.Err(); err != nil {
		return Sample{}, err
	}
	return s.sample, s.err
}

type senderStub struct {
	mu   sync.Mutex
	sent [][]byte
	err  error
}

func (s *senderStub) Send(b []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, append([]byte(nil), b...))
	return nil
}

func (s *senderStub) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}
