package nmea

import (
	"fmt"
	"math"
)

// EncodeTime renders elapsed seconds as HHMMSS. Fractional seconds are dropped
// and hours are not wrapped at 24, so large values produce a longer hour field.
func EncodeTime(seconds float64) string {
	s := int64(math.Floor(seconds))
	hours := s / 3600
	s %= 3600
	return fmt.Sprintf("%02d%02d%02d", hours, s/60, s%60)
}
