package nmea

import (
	"fmt"
	"math"
)

// Hemisphere selects the letter written next to a coordinate and the sign
// convention used to encode it.
type Hemisphere string

const (
	North Hemisphere = "N"
	South Hemisphere = "S"
	East  Hemisphere = "E"
	West  Hemisphere = "W"

	// Auto picks the letter from the sign of the value.
	Auto Hemisphere = "auto"
)

func ParseHemisphere(s string) (Hemisphere, error) {
	switch h := Hemisphere(s); h {
	case North, South, East, West, Auto:
		return h, nil
	}
	return "", fmt.Errorf("unknown hemisphere %q", s)
}

// DegreesMinutes splits decimal degrees into the whole degrees, truncated
// toward zero, and the unsigned decimal minutes of the remainder.
func DegreesMinutes(deg float64) (int, float64) {
	d := math.Trunc(deg)
	return int(d), math.Abs(deg-d) * 60
}

// EncodeDegrees renders decimal degrees as whole degrees immediately followed by
// minutes with six decimals, e.g. 10.5 -> "1030.000000".
func EncodeDegrees(deg float64) string {
	d, m := DegreesMinutes(deg)
	return fmt.Sprintf("%d%f", d, m)
}

// CoordinateEncoder encodes one axis with a configured hemisphere. A fixed
// hemisphere is always written as-is; values are negated first for S and W.
type CoordinateEncoder struct {
	Hemisphere Hemisphere
	// Positive and Negative are the letters Auto chooses between.
	Positive Hemisphere
	Negative Hemisphere
	Prefix   string
}

func LatitudeEncoder(h Hemisphere) CoordinateEncoder {
	return CoordinateEncoder{Hemisphere: h, Positive: North, Negative: South}
}

func LongitudeEncoder(h Hemisphere) CoordinateEncoder {
	return CoordinateEncoder{Hemisphere: h, Positive: East, Negative: West, Prefix: "0"}
}

func (e CoordinateEncoder) Encode(deg float64) (string, Hemisphere) {
	h := e.Hemisphere
	switch h {
	case Auto:
		h = e.Positive
		if deg < 0 {
			h = e.Negative
			deg = -deg
		}
	case South, West:
		deg = -deg
	}
	return e.Prefix + EncodeDegrees(deg), h
}
