package domain

// Coordinate bounds (WGS 84).
const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
)

// GeoPoint represents a geographic coordinate (WGS 84).
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// ValidLatitude reports whether lat lies within the WGS 84 bounds, inclusive.
func ValidLatitude(lat float64) bool {
	return lat >= MinLatitude && lat <= MaxLatitude
}

// ValidLongitude reports whether lon lies within the WGS 84 bounds, inclusive.
func ValidLongitude(lon float64) bool {
	return lon >= MinLongitude && lon <= MaxLongitude
}
