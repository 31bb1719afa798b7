package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/jd3nn1s/nmeapub/forwarder"
	"github.com/jd3nn1s/nmeapub/nmea"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	FormatTOML = "toml"
	FormatYAML = "yaml"

	SourceMQTT = "mqtt"
	SourceGPS  = "gps"
	SourceTest = "test"
)

type Config struct {
	Destination forwarder.UDPConfig `toml:"destination" yaml:"destination"`
	// Rate is the publish rate in Hz.
	Rate float64 `toml:"rate" yaml:"rate"`
	// SampleTimeout bounds the wait for each upstream sample.
	SampleTimeout time.Duration `toml:"sample_timeout" yaml:"sample_timeout"`
	// Clock is "elapsed" (seconds since start) or "daytime" (seconds since UTC
	// midnight of the start day, not wrapped).
	Clock      string           `toml:"clock" yaml:"clock"`
	Hemisphere HemisphereConfig `toml:"hemisphere" yaml:"hemisphere"`
	Source     SourceConfig     `toml:"source" yaml:"source"`
}

// HemisphereConfig fixes the letters written into every sentence. "auto"
// derives them from the sign of the position instead.
type HemisphereConfig struct {
	Latitude  string `toml:"latitude" yaml:"latitude"`
	Longitude string `toml:"longitude" yaml:"longitude"`
}

type SourceConfig struct {
	Kind string     `toml:"kind" yaml:"kind"`
	MQTT MQTTConfig `toml:"mqtt" yaml:"mqtt"`
	GPS  GPSConfig  `toml:"gps" yaml:"gps"`
	Test TestConfig `toml:"test" yaml:"test"`
}

type MQTTConfig struct {
	Broker   string `toml:"broker" yaml:"broker"`
	Topic    string `toml:"topic" yaml:"topic"`
	ClientID string `toml:"client_id" yaml:"client_id"`
}

type GPSConfig struct {
	Port string `toml:"port" yaml:"port"`
}

type TestConfig struct {
	Latitude  float64       `toml:"latitude" yaml:"latitude"`
	Longitude float64       `toml:"longitude" yaml:"longitude"`
	MaxDepth  float64       `toml:"max_depth" yaml:"max_depth"`
	Interval  time.Duration `toml:"interval" yaml:"interval"`
}

func Default() Config {
	return Config{
		Destination: forwarder.UDPConfig{
			Server: forwarder.DefaultServer,
			Port:   forwarder.DefaultPort,
		},
		Rate:          5.0,
		SampleTimeout: 2 * time.Second,
		Clock:         "elapsed",
		Hemisphere: HemisphereConfig{
			Latitude:  string(nmea.North),
			Longitude: string(nmea.West),
		},
		Source: SourceConfig{
			Kind: SourceMQTT,
			MQTT: MQTTConfig{
				Broker:   "tcp://localhost:1883",
				Topic:    "status",
				ClientID: "nmea-publisher",
			},
			GPS: GPSConfig{
				Port: "/dev/ttyAMA0",
			},
			Test: TestConfig{
				MaxDepth: 200,
				Interval: 100 * time.Millisecond,
			},
		},
	}
}

// Load reads a TOML or YAML file, chosen by extension, over the defaults.
func Load(fileName string) (Config, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return Config{}, errors.Wrapf(err, "unable to open file %s", fileName)
	}
	defer file.Close()
	return LoadReader(file, formatOf(fileName))
}

func LoadReader(r io.Reader, format string) (Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, errors.Wrap(err, "unable to read config reader")
	}

	cfg := Default()
	switch format {
	case FormatTOML:
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return Config{}, errors.Wrap(err, "unable to decode toml configuration")
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && err != io.EOF {
			return Config{}, errors.Wrap(err, "unable to decode yaml configuration")
		}
	default:
		return Config{}, errors.Errorf("unknown config format %q", format)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func formatOf(fileName string) string {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatTOML
}

func (c *Config) validate() error {
	if c.Destination.Server == "" {
		return errors.New("destination.server is required")
	}
	if c.Destination.Port <= 0 || c.Destination.Port > 65535 {
		return errors.Errorf("destination.port must be 1-65535, got %d", c.Destination.Port)
	}
	if c.Rate <= 0 {
		return errors.Errorf("rate must be > 0, got %v", c.Rate)
	}
	if c.SampleTimeout <= 0 {
		return errors.Errorf("sample_timeout must be > 0, got %v", c.SampleTimeout)
	}
	if c.Clock != "elapsed" && c.Clock != "daytime" {
		return errors.Errorf("clock must be elapsed or daytime, got %q", c.Clock)
	}

	lat, err := nmea.ParseHemisphere(c.Hemisphere.Latitude)
	if err != nil || lat == nmea.East || lat == nmea.West {
		return errors.Errorf("hemisphere.latitude must be N, S or auto, got %q", c.Hemisphere.Latitude)
	}
	lon, err := nmea.ParseHemisphere(c.Hemisphere.Longitude)
	if err != nil || lon == nmea.North || lon == nmea.South {
		return errors.Errorf("hemisphere.longitude must be E, W or auto, got %q", c.Hemisphere.Longitude)
	}

	switch c.Source.Kind {
	case SourceMQTT:
		if c.Source.MQTT.Broker == "" || c.Source.MQTT.Topic == "" {
			return errors.New("source.mqtt.broker and source.mqtt.topic are required")
		}
	case SourceGPS:
		if c.Source.GPS.Port == "" {
			return errors.New("source.gps.port is required")
		}
	case SourceTest:
		if c.Source.Test.Interval <= 0 {
			return errors.Errorf("source.test.interval must be > 0, got %v", c.Source.Test.Interval)
		}
	default:
		return errors.Errorf("unknown source.kind %q", c.Source.Kind)
	}
	return nil
}

func (c *Config) LatitudeHemisphere() nmea.Hemisphere {
	return nmea.Hemisphere(c.Hemisphere.Latitude)
}

func (c *Config) LongitudeHemisphere() nmea.Hemisphere {
	return nmea.Hemisphere(c.Hemisphere.Longitude)
}
