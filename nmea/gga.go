package nmea

import (
	"strconv"
	"strings"
)

const (
	TalkerPV = "PV"
	TypeGGA  = "GGA"

	// GGAFieldCount is the number of fields after the talker and type.
	GGAFieldCount = 14

	fixQualityGPS   = "1"
	satellitesInUse = "04"
	unitMeters      = "M"
	refStationID    = "0000"
)

type GGAEncoder struct {
	Latitude  CoordinateEncoder
	Longitude CoordinateEncoder
}

func NewGGAEncoder(lat, lon Hemisphere) *GGAEncoder {
	return &GGAEncoder{
		Latitude:  LatitudeEncoder(lat),
		Longitude: LongitudeEncoder(lon),
	}
}

// Encode builds a PVGGA sentence. HDOP, geoidal separation and differential age
// have no value here and are left empty rather than omitted.
func (e *GGAEncoder) Encode(seconds, lat, lon, depth float64) Sentence {
	latText, latHemi := e.Latitude.Encode(lat)
	lonText, lonHemi := e.Longitude.Encode(lon)
	return Sentence{
		Talker: TalkerPV,
		Type:   TypeGGA,
		Fields: []string{
			EncodeTime(seconds),
			latText,
			string(latHemi),
			lonText,
			string(lonHemi),
			fixQualityGPS,
			satellitesInUse,
			"",
			FormatFloat(depth),
			unitMeters,
			"",
			unitMeters,
			"",
			refStationID,
		},
	}
}

// FormatFloat writes the shortest decimal form of v, keeping a ".0" suffix on
// integral values so 5 reads "5.0".
func FormatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}
	return s
}
