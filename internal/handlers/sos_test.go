package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidSOSPhone(t *testing.T) {
	valid := []string{"+250788123456", "0788123456", "250 788 123 456"}
	for _, p := range valid {
		assert.True(t, ValidSOSPhone(p), p)
	}

	invalid := []string{"", "12345", "+250-788-123-456", "phone", "+123456789012345678"}
	for _, p := range invalid {
		assert.False(t, ValidSOSPhone(p), p)
	}
}

func TestValidSOSCoordinates(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		want     bool
	}{
		{name: "kigali", lat: -1.9441, lon: 30.0619, want: true},
		{name: "equator origin", lat: 0, lon: 0, want: true},
		{name: "poles", lat: 90, lon: 180, want: true},
		{name: "latitude too far south", lat: -90.1, lon: 0, want: false},
		{name: "latitude too far north", lat: 91, lon: 0, want: false},
		{name: "longitude out of range", lat: 0, lon: 181, want: false},
		{name: "longitude far negative", lat: 0, lon: -200, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidSOSCoordinates(tt.lat, tt.lon))
		})
	}
}
