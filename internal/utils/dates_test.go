package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "plain date", input: "2026-09-14", want: "2026-09-14"},
		{name: "rfc3339", input: "2026-09-14T08:30:00Z", want: "2026-09-14"},
		{name: "garbage", input: "14/09/2026", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, FormatDate(got))
		})
	}
}

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2026, 9, 14, 8, 30, 0, 0, time.UTC)
	assert.Equal(t, "2026-09-14T08:30:00Z", FormatTimestamp(ts))
}

func TestValidClockTime(t *testing.T) {
	valid := []string{"00:00", "07:05", "12:30", "23:59"}
	for _, s := range valid {
		assert.True(t, ValidClockTime(s), s)
	}

	invalid := []string{"24:00", "7:05", "12:60", "12:3", "noon", "", "12:30:00"}
	for _, s := range invalid {
		assert.False(t, ValidClockTime(s), s)
	}
}
