package nmeapub

import (
	"context"
	"time"
)

const (
	testDiveStep  = 0.5  // meters per tick
	testDriftStep = 1e-5 // degrees per tick
)

// NewTestSource generates a glider track starting at start: a saw-tooth dive
// between the surface and maxDepth while drifting south-west.
func NewTestSource(ctx context.Context, start Sample, maxDepth float64, interval time.Duration) *ChanSource {
	out := NewChanSource()
	go runTestMode(ctx, out, start, maxDepth, interval)
	return out
}

func runTestMode(ctx context.Context, out *ChanSource, s Sample, maxDepth float64, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	down := true
	for {
		out.Offer(s)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		s, down = stepTestSample(s, down, maxDepth)
	}
}

func stepTestSample(s Sample, down bool, maxDepth float64) (Sample, bool) {
	if down {
		s.Depth += testDiveStep
	} else {
		s.Depth -= testDiveStep
	}

	if s.Depth >= maxDepth {
		s.Depth = maxDepth
		down = false
	} else if s.Depth <= 0 {
		s.Depth = 0
		down = true
	}

	s.Latitude -= testDriftStep
	s.Longitude -= testDriftStep
	return s, down
}
