package nmeapub

// Sample is one position reading of the vehicle. Timestamp is stamped by the
// publisher from its clock; sources leave it zero.
type Sample struct {
	Timestamp float64
	Latitude  float64
	Longitude float64
	Depth     float64
}
