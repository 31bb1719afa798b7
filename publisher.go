package nmeapub

import (
	"context"
	"time"

	"github.com/jd3nn1s/nmeapub/nmea"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultRate          = 5.0
	DefaultSampleTimeout = 2 * time.Second
)

// Publisher turns samples into GGA sentences and sends them, one per tick.
type Publisher struct {
	source  Source
	clock   Clock
	sender  Sender
	encoder *nmea.GGAEncoder
	gate    *Gate

	// Rate is the number of cycles per second.
	Rate float64
	// SampleTimeout bounds the wait for the next sample in one cycle.
	SampleTimeout time.Duration
	// OnSentence, if set, is called with every sentence that was sent.
	OnSentence func(nmea.Sentence)
}

func NewPublisher(source Source, clock Clock, sender Sender, encoder *nmea.GGAEncoder) *Publisher {
	return &Publisher{
		source:        source,
		clock:         clock,
		sender:        sender,
		encoder:       encoder,
		gate:          NewGate(clock),
		Rate:          DefaultRate,
		SampleTimeout: DefaultSampleTimeout,
	}
}

func (p *Publisher) Gate() *Gate {
	return p.gate
}

// Run arms the gate and then runs one cycle per tick until ctx is done. It
// returns nil on cancellation and an error only when a send fails.
func (p *Publisher) Run(ctx context.Context) error {
	if err := p.gate.Arm(ctx); err != nil {
		log.WithField("err", err).Info("stopped before the clock started")
		return nil
	}

	ticker := time.NewTicker(p.interval())
	defer ticker.Stop()
	log.WithField("rate", p.Rate).Info("publishing")

	for {
		if _, err := p.Cycle(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// Cycle waits for one sample and, if the gate allows it, encodes and sends it.
// Encoding and sending happen together or not at all.
func (p *Publisher) Cycle(ctx context.Context) (sent bool, err error) {
	waitCtx, cancel := context.WithTimeout(ctx, p.SampleTimeout)
	sample, err := p.source.Next(waitCtx)
	cancel()
	if err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		log.WithField("err", err).
			WithField("timeout", p.SampleTimeout).
			Warn("no sample received")
		return false, nil
	}

	now := p.clock.Seconds()
	elapsed, ok := p.gate.Allow(now)
	if !ok {
		log.WithField("elapsed", elapsed).Debug("timestep too small, skipping update")
		return false, nil
	}

	sample.Timestamp = now
	sentence := p.encoder.Encode(sample.Timestamp, sample.Latitude, sample.Longitude, sample.Depth)
	if err := p.sender.Send(sentence.Bytes()); err != nil {
		return false, errors.Wrap(err, "unable to send sentence")
	}
	if p.OnSentence != nil {
		p.OnSentence(sentence)
	}
	return true, nil
}

func (p *Publisher) interval() time.Duration {
	rate := p.Rate
	if rate <= 0 {
		rate = DefaultRate
	}
	return time.Duration(float64(time.Second) / rate)
}
