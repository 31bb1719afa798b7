package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jd3nn1s/nmeapub"
	"github.com/jd3nn1s/nmeapub/config"
	"github.com/jd3nn1s/nmeapub/forwarder"
	"github.com/jd3nn1s/nmeapub/mqttstatus"
	"github.com/jd3nn1s/nmeapub/nmea"
	log "github.com/sirupsen/logrus"
)

var configFile = flag.String("config", "nmeapub.toml", "path to toml or yaml configuration")
var testMode = flag.Bool("testmode", false, "generate test data instead of reading the configured source")
var printSentences = flag.Bool("print-sentences", false, "print sent sentences to stdout")
var debug = flag.Bool("debug", false, "enable debug logging")

func main() {
	log.SetLevel(log.InfoLevel)
	flag.Parse()
	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatal("unable to load configuration: ", err)
	}
	if *testMode {
		cfg.Source.Kind = config.SourceTest
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	source, closeSource, err := openSource(ctx, &cfg)
	if err != nil {
		log.Fatal("unable to open source: ", err)
	}
	defer closeSource()

	clock, err := nmeapub.NewClock(cfg.Clock)
	if err != nil {
		log.Fatal(err)
	}

	fwder, err := forwarder.NewUDPForwarder(&cfg.Destination)
	if err != nil {
		log.Fatal("unable to open UDP forwarder: ", err)
	}
	defer fwder.Close()

	encoder := nmea.NewGGAEncoder(cfg.LatitudeHemisphere(), cfg.LongitudeHemisphere())
	pub := nmeapub.NewPublisher(source, clock, fwder, encoder)
	pub.Rate = cfg.Rate
	pub.SampleTimeout = cfg.SampleTimeout
	if *printSentences {
		pub.OnSentence = func(s nmea.Sentence) {
			fmt.Println(s)
		}
	}

	log.WithField("source", cfg.Source.Kind).
		WithField("dest", cfg.Destination.Address()).
		Info("starting nmea publisher")
	if err := pub.Run(ctx); err != nil {
		log.Fatal("publisher stopped: ", err)
	}
	log.Info("nmea publisher stopped")
}

func openSource(ctx context.Context, cfg *config.Config) (nmeapub.Source, func(), error) {
	switch cfg.Source.Kind {
	case config.SourceMQTT:
		s, err := mqttstatus.Connect(mqttstatus.Config{
			Broker:   cfg.Source.MQTT.Broker,
			Topic:    cfg.Source.MQTT.Topic,
			ClientID: cfg.Source.MQTT.ClientID,
		})
		if err != nil {
			return nil, nil, err
		}
		return s, func() {
			_ = s.Close()
		}, nil
	case config.SourceGPS:
		return nmeapub.NewGPSSource(ctx, cfg.Source.GPS.Port), func() {}, nil
	default:
		t := cfg.Source.Test
		start := nmeapub.Sample{Latitude: t.Latitude, Longitude: t.Longitude}
		return nmeapub.NewTestSource(ctx, start, t.MaxDepth, t.Interval), func() {}, nil
	}
}
