package util

import (
	"math"
	"testing"
)

type coordinates struct {
	Lat float64 `validate:"latitude"`
	Lng float64 `validate:"longitude"`
}

func TestValidateCoordinates(t *testing.T) {
	testCases := []struct {
		name    string
		lat     float64
		lng     float64
		wantErr bool
	}{
		{"sofia centre", 42.6977, 23.3219, false},
		{"equator", 0, 0, false},
		{"poles", 90, 180, false},
		{"latitude out of range", 91, 23.32, true},
		{"longitude out of range", 42.70, -181, true},
		{"nan latitude", math.NaN(), 23.32, true},
		{"infinite longitude", 42.70, math.Inf(1), true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateStruct(coordinates{Lat: tc.lat, Lng: tc.lng})
			if (err != nil) != tc.wantErr {
				t.Errorf("ValidateStruct(%v, %v) error = %v; wantErr %v", tc.lat, tc.lng, err, tc.wantErr)
			}
		})
	}
}
