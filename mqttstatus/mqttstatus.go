package mqttstatus

import (
	"context"
	"encoding/json"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/jd3nn1s/nmeapub"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	connectTimeout  = 10 * time.Second
	disconnectQuiet = 250 // milliseconds
)

type Config struct {
	Broker   string
	Topic    string
	ClientID string
}

// status is the vehicle status message; fields other than position and depth
// are ignored.
type status struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Depth     *float64 `json:"depth"`
}

// Source subscribes to the vehicle status topic and keeps the latest reading.
type Source struct {
	client  mqtt.Client
	topic   string
	samples *nmeapub.ChanSource
}

// to allow testing
var newClient = func(opts *mqtt.ClientOptions) mqtt.Client {
	return mqtt.NewClient(opts)
}

func Connect(cfg Config) (*Source, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectTimeout(connectTimeout)

	s := &Source{
		topic:   cfg.Topic,
		samples: nmeapub.NewChanSource(),
	}
	// resubscribe after every reconnect
	opts.SetOnConnectHandler(func(c mqtt.Client) {
		if err := s.subscribe(c); err != nil {
			log.WithField("err", err).Error("unable to subscribe to status topic")
		}
	})
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		log.WithField("err", err).Warn("mqtt connection lost")
	})

	s.client = newClient(opts)
	if token := s.client.Connect(); token.Wait() && token.Error() != nil {
		return nil, errors.Wrapf(token.Error(), "unable to connect to mqtt broker %s", cfg.Broker)
	}
	log.WithField("broker", cfg.Broker).
		WithField("topic", cfg.Topic).
		Info("mqtt status source connected")
	return s, nil
}

func (s *Source) subscribe(c mqtt.Client) error {
	token := c.Subscribe(s.topic, 0, s.handleMessage)
	token.Wait()
	return token.Error()
}

func (s *Source) Next(ctx context.Context) (nmeapub.Sample, error) {
	return s.samples.Next(ctx)
}

func (s *Source) Close() error {
	s.client.Disconnect(disconnectQuiet)
	return nil
}

func (s *Source) handleMessage(_ mqtt.Client, msg mqtt.Message) {
	sample, err := decodeStatus(msg.Payload())
	if err != nil {
		log.WithField("topic", msg.Topic()).
			WithField("err", err).
			Warn("dropping status message")
		return
	}
	s.samples.Offer(sample)
}

func decodeStatus(payload []byte) (nmeapub.Sample, error) {
	var st status
	if err := json.Unmarshal(payload, &st); err != nil {
		return nmeapub.Sample{}, errors.Wrap(err, "unable to decode status")
	}
	if st.Latitude == nil || st.Longitude == nil || st.Depth == nil {
		return nmeapub.Sample{}, errors.New("status is missing latitude, longitude or depth")
	}
	return nmeapub.Sample{
		Latitude:  *st.Latitude,
		Longitude: *st.Longitude,
		Depth:     *st.Depth,
	}, nil
}
