package journal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUint8(t *testing.T) {
	tests := []struct {
		input   string
		want    uint8
		wantErr bool
	}{
		{input: "0", want: 0},
		{input: "7", want: 7},
		{input: "255", want: 255},
		{input: "256", wantErr: true},
		{input: "-1", wantErr: true},
		{input: "six", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseUint8(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseUint16(t *testing.T) {
	got, err := ParseUint16("65535")
	require.NoError(t, err)
	assert.Equal(t, uint16(65535), got)

	_, err = ParseUint16("65536")
	assert.Error(t, err)
}

func TestParseUint64(t *testing.T) {
	got, err := ParseUint64("71669967")
	require.NoError(t, err)
	assert.Equal(t, uint64(71669967), got)

	_, err = ParseUint64("7.5")
	assert.Error(t, err)
}

func TestParseMicros(t *testing.T) {
	t.Run("splits seconds and microseconds", func(t *testing.T) {
		got, err := ParseMicros("1491389822667666")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2017, 4, 5, 10, 57, 2, 667666000, time.UTC), got)
		assert.Equal(t, time.UTC, got.Location())
	})

	t.Run("epoch", func(t *testing.T) {
		got, err := ParseMicros("0")
		require.NoError(t, err)
		assert.True(t, got.Equal(time.Unix(0, 0)))
	})

	t.Run("rejects non-numeric input", func(t *testing.T) {
		_, err := ParseMicros("yesterday")
		assert.Error(t, err)
	})
}

func TestFormatMicros(t *testing.T) {
	for _, s := range []string{"0", "1", "999999", "1000000", "1491389822667666", "-1", "-1500000"} {
		t.Run(s, func(t *testing.T) {
			ts, err := ParseMicros(s)
			require.NoError(t, err)
			assert.Equal(t, s, FormatMicros(ts))
		})
	}
}
