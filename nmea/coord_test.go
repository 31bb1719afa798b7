package nmea

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDegreesMinutes(t *testing.T) {
	for _, v := range []float64{0, 10.5, -10.5, 0.25, -0.25, 89.999999, -179.75, 180, 45.123456, -0.000001, 1e3} {
		d, m := DegreesMinutes(v)
		assert.Equal(t, int(math.Trunc(v)), d, "degrees of %v", v)
		assert.True(t, m >= 0 && m < 60, "minutes of %v out of range: %v", v, m)
	}
}

func TestEncodeDegrees(t *testing.T) {
	assert.Equal(t, "1030.000000", EncodeDegrees(10.5))
	assert.Equal(t, "2015.000000", EncodeDegrees(20.25))
	assert.Equal(t, "-1030.000000", EncodeDegrees(-10.5))
	// no sign survives once the whole degrees truncate to zero
	assert.Equal(t, "030.000000", EncodeDegrees(-0.5))
	assert.Equal(t, "00.000000", EncodeDegrees(0))
	assert.Equal(t, "1790.600000", EncodeDegrees(179.01))
	// minutes below ten are not padded either
	assert.Equal(t, "487.038000", EncodeDegrees(48.1173))
}

func TestLatitudeFixedNorth(t *testing.T) {
	enc := LatitudeEncoder(North)

	text, h := enc.Encode(10.5)
	assert.Equal(t, "1030.000000", text)
	assert.Equal(t, North, h)

	// southern input is not corrected, only passed through
	text, h = enc.Encode(-10.5)
	assert.Equal(t, "-1030.000000", text)
	assert.Equal(t, North, h)
}

func TestLongitudeFixedWest(t *testing.T) {
	enc := LongitudeEncoder(West)

	text, h := enc.Encode(-20.25)
	assert.Equal(t, "02015.000000", text)
	assert.Equal(t, West, h)

	text, h = enc.Encode(20.25)
	assert.Equal(t, "0-2015.000000", text)
	assert.Equal(t, West, h)

	text, h = enc.Encode(0)
	assert.Equal(t, "000.000000", text)
	assert.Equal(t, West, h)
}

func TestFixedSouthAndEast(t *testing.T) {
	text, h := LatitudeEncoder(South).Encode(-33.5)
	assert.Equal(t, "3330.000000", text)
	assert.Equal(t, South, h)

	text, h = LongitudeEncoder(East).Encode(151.25)
	assert.Equal(t, "015115.000000", text)
	assert.Equal(t, East, h)
}

func TestAutoHemisphere(t *testing.T) {
	lat := LatitudeEncoder(Auto)
	lon := LongitudeEncoder(Auto)

	text, h := lat.Encode(-33.5)
	assert.Equal(t, "3330.000000", text)
	assert.Equal(t, South, h)

	text, h = lat.Encode(33.5)
	assert.Equal(t, "3330.000000", text)
	assert.Equal(t, North, h)

	text, h = lon.Encode(-20.25)
	assert.Equal(t, "02015.000000", text)
	assert.Equal(t, West, h)

	text, h = lon.Encode(20.25)
	assert.Equal(t, "02015.000000", text)
	assert.Equal(t, East, h)
}

func TestParseHemisphere(t *testing.T) {
	for _, s := range []string{"N", "S", "E", "W", "auto"} {
		h, err := ParseHemisphere(s)
		require.NoError(t, err)
		assert.Equal(t, Hemisphere(s), h)
	}
	_, err := ParseHemisphere("north")
	assert.Error(t, err)
}
