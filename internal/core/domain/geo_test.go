package domain

import "testing"

func TestValidCoordinates(t *testing.T) {
	tests := []struct {
		lat, lon         float64
		wantLat, wantLon bool
	}{
		{43.2627, -2.9253, true, true},
		{-90, 180, true, true},
		{90, -180, true, true},
		{90.0001, 0, false, true},
		{0, -180.5, true, false},
	}
	for _, tt := range tests {
		if got := ValidLatitude(tt.lat); got != tt.wantLat {
			t.Errorf("ValidLatitude(%v) = %v, want %v", tt.lat, got, tt.wantLat)
		}
		if got := ValidLongitude(tt.lon); got != tt.wantLon {
			t.Errorf("ValidLongitude(%v) = %v, want %v", tt.lon, got, tt.wantLon)
		}
	}
}
