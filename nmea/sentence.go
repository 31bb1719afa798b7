package nmea

import (
	"fmt"
	"strings"
)

const (
	startDelimiter    = "$"
	checksumDelimiter = "*"
)

type Sentence struct {
	Talker string
	Type   string
	Fields []string
}

// Body is the text between the start and checksum delimiters.
func (s Sentence) Body() string {
	return s.Talker + s.Type + "," + strings.Join(s.Fields, ",")
}

func (s Sentence) String() string {
	body := s.Body()
	return fmt.Sprintf("%s%s%s%02X", startDelimiter, body, checksumDelimiter, Checksum(body))
}

func (s Sentence) Bytes() []byte {
	return []byte(s.String())
}

// Checksum is the XOR of every byte of body.
func Checksum(body string) byte {
	var sum byte
	for i := 0; i < len(body); i++ {
		sum ^= body[i]
	}
	return sum
}
