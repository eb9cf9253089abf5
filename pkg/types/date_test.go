package types

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
		wantErr bool
	}{
		{name: "valid date", input: "2025-03-10"},
		{name: "leap day", input: "2024-02-29"},
		{name: "month without leading zero", input: "2025-3-10", wantErr: true},
		{name: "day without leading zero", input: "2025-03-5", wantErr: true},
		{name: "two digit year", input: "25-03-10", wantErr: true},
		{name: "feb 30 does not exist", input: "2025-02-30", wantErr: true},
		{name: "feb 29 in non-leap year", input: "2025-02-29", wantErr: true},
		{name: "month 13", input: "2025-13-01", wantErr: true},
		{name: "signed year", input: "+025-01-02", wantErr: true},
		{name: "signed month", input: "2025-+1-02", wantErr: true},
		{name: "signed day", input: "2025-01-+2", wantErr: true},
		{name: "garbage", input: "not-a-date", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "extra component", input: "2025-03-10-01", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDateString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, got.Format(DateFormat))
		})
	}
}

func TestBuildLocalInstant(t *testing.T) {
	date, err := ParseDate("2025-03-10")
	require.NoError(t, err)

	instant := BuildLocalInstant(date, 9, 15, 0, 0)

	assert.Equal(t, 2025, instant.Year())
	assert.Equal(t, time.March, instant.Month())
	assert.Equal(t, 10, instant.Day())
	assert.Equal(t, 9, instant.Hour())
	assert.Equal(t, 15, instant.Minute())
	assert.Equal(t, time.Local, instant.Location())
}
