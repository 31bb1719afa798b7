package nmeapub

import (
	"context"

	"github.com/jd3nn1s/skytraq"
	log "github.com/sirupsen/logrus"
)

const (
	// maximum horizontal dilution of precision
	maxHDOP = 500

	// receiver units: 1e-7 degrees and centimeters
	gpsDegreeScale = 1e7
	gpsMeterScale  = 100
)

var gpsConnect = func(p string) (GPS, error) {
	return skytraq.Connect(p)
}

type gpsRetryable struct {
	port string
	c    GPS
	out  *ChanSource
}

func (g *gpsRetryable) Open() error {
	c, err := gpsConnect(g.port)
	g.c = c
	return err
}

func (g *gpsRetryable) Close() error {
	if g.c == nil {
		return nil
	}
	return g.c.Close()
}

func (g *gpsRetryable) Start(ctx context.Context) error {
	return g.c.Start(ctx, skytraq.Callbacks{
		SoftwareVersion: func(version skytraq.SoftwareVersion) {
			log.Infof("gps software version: %v", version)
		},
		NavData: g.navDataFn,
	})
}

func (g *gpsRetryable) Name() string {
	return "gps"
}

// navDataFn turns a fix into a sample. The vehicle is at the surface when it
// has a fix, so depth is the negated altitude.
func (g *gpsRetryable) navDataFn(navData skytraq.NavData) {
	if navData.Fix == skytraq.FixNone {
		log.Warn("no satellite fix")
		return
	}
	if navData.HDOP > maxHDOP {
		log.WithField("HDOP", navData.HDOP).Warn("poor resolution")
		return
	}
	g.out.Offer(Sample{
		Latitude:  float64(navData.Latitude) / gpsDegreeScale,
		Longitude: float64(navData.Longitude) / gpsDegreeScale,
		Depth:     -float64(navData.Altitude) / gpsMeterScale,
	})
}

// NewGPSSource reads fixes from a SkyTraq receiver on port until ctx is done,
// reconnecting whenever the receiver fails.
func NewGPSSource(ctx context.Context, port string) *ChanSource {
	out := NewChanSource()
	go func() {
		err := retry(ctx, &gpsRetryable{
			port: port,
			out:  out,
		})
		log.Infof("gps done: %v", err)
	}()
	return out
}
