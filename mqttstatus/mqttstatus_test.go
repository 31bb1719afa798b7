package mqttstatus

import (
	"context"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tokenStub struct {
	err error
}

func (t *tokenStub) Wait() bool                     { return true }
func (t *tokenStub) WaitTimeout(time.Duration) bool { return true }
func (t *tokenStub) Error() error                   { return t.err }
func (t *tokenStub) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

// clientStub implements the parts of mqtt.Client the source uses.
type clientStub struct {
	mqtt.Client
	opts         *mqtt.ClientOptions
	connectErr   error
	topic        string
	handler      mqtt.MessageHandler
	disconnected bool
}

func (c *clientStub) Connect() mqtt.Token {
	if c.connectErr == nil && c.opts.OnConnect != nil {
		c.opts.OnConnect(c)
	}
	return &tokenStub{err: c.connectErr}
}

func (c *clientStub) Subscribe(topic string, qos byte, callback mqtt.MessageHandler) mqtt.Token {
	c.topic = topic
	c.handler = callback
	return &tokenStub{}
}

func (c *clientStub) Disconnect(quiesce uint) {
	c.disconnected = true
}

type messageStub struct {
	mqtt.Message
	topic   string
	payload []byte
}

func (m *messageStub) Topic() string   { return m.topic }
func (m *messageStub) Payload() []byte { return m.payload }

func withClientStub(stub *clientStub) func() {
	origNewClient := newClient
	newClient = func(opts *mqtt.ClientOptions) mqtt.Client {
		stub.opts = opts
		return stub
	}
	return func() {
		newClient = origNewClient
	}
}

func TestConnectSubscribes(t *testing.T) {
	stub := &clientStub{}
	defer withClientStub(stub)()

	s, err := Connect(Config{Broker: "tcp://localhost:1883", Topic: "status", ClientID: "test"})
	require.NoError(t, err)
	assert.Equal(t, "status", stub.topic)
	assert.Equal(t, "test", stub.opts.ClientID)
	require.NotNil(t, stub.handler)

	stub.handler(stub, &messageStub{
		topic:   "status",
		payload: []byte(`{"latitude": 10.5, "longitude": -20.25, "depth": 5.2, "pitch": 0.1}`),
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	sample, err := s.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10.5, sample.Latitude)
	assert.Equal(t, -20.25, sample.Longitude)
	assert.Equal(t, 5.2, sample.Depth)

	assert.NoError(t, s.Close())
	assert.True(t, stub.disconnected)
}

func TestConnectFailure(t *testing.T) {
	connectErr := errors.New("connection refused")
	defer withClientStub(&clientStub{connectErr: connectErr})()

	_, err := Connect(Config{Broker: "tcp://localhost:1883", Topic: "status"})
	assert.Equal(t, connectErr, errors.Cause(err))
}

func TestBadMessagesDropped(t *testing.T) {
	stub := &clientStub{}
	defer withClientStub(stub)()

	s, err := Connect(Config{Broker: "tcp://localhost:1883", Topic: "status"})
	require.NoError(t, err)

	stub.handler(stub, &messageStub{topic: "status", payload: []byte(`not json`)})
	stub.handler(stub, &messageStub{topic: "status", payload: []byte(`{"latitude": 1, "longitude": 2}`)})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = s.Next(ctx)
	assert.Equal(t, context.DeadlineExceeded, err)
}

func TestDecodeStatus(t *testing.T) {
	sample, err := decodeStatus([]byte(`{"latitude": 0, "longitude": 0, "depth": 0}`))
	require.NoError(t, err)
	assert.Equal(t, 0.0, sample.Depth)

	_, err = decodeStatus([]byte(`{"depth": 3}`))
	assert.Error(t, err)
}
