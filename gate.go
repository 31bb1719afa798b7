package nmeapub

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	// clock readings below this mean the clock has not started yet
	armThreshold = 0.01

	// MinElapsed is the smallest time since the baseline, in seconds, that
	// lets a cycle through.
	MinElapsed = 1.0e-3
)

var armRetrySleep = 500 * time.Millisecond

type GateState int

const (
	AwaitingBaseline GateState = iota
	Armed
)

func (s GateState) String() string {
	switch s {
	case AwaitingBaseline:
		return "awaiting-baseline"
	case Armed:
		return "armed"
	}
	return "unknown"
}

// Gate holds the baseline taken from the clock once at startup and decides
// per cycle whether enough time has passed since then. The baseline is never
// moved, so after the first millisecond every cycle passes.
type Gate struct {
	clock    Clock
	baseline float64
	state    GateState
}

func NewGate(clock Clock) *Gate {
	return &Gate{clock: clock}
}

// Arm waits for the clock to report a usable time and takes it as the
// baseline. It only gives up when ctx is done.
func (g *Gate) Arm(ctx context.Context) error {
	for g.state != Armed {
		t := g.clock.Seconds()
		if t >= armThreshold {
			g.baseline = t
			g.state = Armed
			log.WithField("baseline", t).Info("emission gate armed")
			break
		}
		log.WithField("clock", t).Warn("waiting for clock to start")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(armRetrySleep):
		}
	}
	return nil
}

// Allow reports the time since the baseline and whether a sentence may be
// emitted for it. Nothing is allowed before the gate is armed.
func (g *Gate) Allow(now float64) (float64, bool) {
	if g.state != Armed {
		return 0, false
	}
	elapsed := now - g.baseline
	return elapsed, elapsed >= MinElapsed
}

func (g *Gate) State() GateState {
	return g.state
}

func (g *Gate) Baseline() float64 {
	return g.baseline
}
