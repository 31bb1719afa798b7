package forwarder

import (
	"fmt"
	"net"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultServer = "127.0.0.1"
	// DefaultPort is the port vessel management software listens on.
	DefaultPort = 30362

	// a GGA sentence is well under this, even with long hour fields
	maxSentenceSize = 128
)

type UDPConfig struct {
	Server string
	Port   int
}

func (c *UDPConfig) Address() string {
	return net.JoinHostPort(c.Server, fmt.Sprint(c.Port))
}

// UDPForwarder writes each payload as one datagram to a fixed destination.
// There is no acknowledgment and no retry.
type UDPForwarder struct {
	Config *UDPConfig

	conn net.Conn
}

var dial = net.Dial

func NewUDPForwarder(config *UDPConfig) (*UDPForwarder, error) {
	udp := &UDPForwarder{
		Config: config,
	}
	if err := udp.connect(); err != nil {
		return nil, err
	}
	log.WithField("dest", config.Address()).Info("udp forwarder ready")
	return udp, nil
}

func (udp *UDPForwarder) Close() error {
	if udp.conn == nil {
		return nil
	}
	return udp.conn.Close()
}

// Send returns once the local stack has accepted the datagram.
func (udp *UDPForwarder) Send(payload []byte) error {
	if len(payload) == 0 {
		return nil
	}
	if _, err := udp.conn.Write(payload); err != nil {
		return errors.Wrapf(err, "unable to send datagram to %s", udp.Config.Address())
	}
	log.WithField("len", len(payload)).Debug("sent datagram")
	return nil
}

func (udp *UDPForwarder) connect() error {
	writeBufSize := maxSentenceSize * 2

	conn, err := dial("udp", udp.Config.Address())
	if err != nil {
		return errors.Wrapf(err, "unable to dial %s", udp.Config.Address())
	}
	if udpConn, ok := conn.(*net.UDPConn); ok {
		if err = udpConn.SetWriteBuffer(writeBufSize); err != nil {
			conn.Close()
			return errors.Wrapf(err, "unable to set OS write buffer to %v", writeBufSize)
		}
	}

	udp.conn = conn
	return nil
}
