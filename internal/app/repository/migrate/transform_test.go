package migrate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChannels(t *testing.T) {
	tests := []struct {
		name    string
		raw     []byte
		want    []int64
		wantErr bool
	}{
		{
			name: "json_array_text",
			raw:  []byte("[0,12,7,300]"),
			want: []int64{0, 12, 7, 300},
		},
		{
			name: "json_array_with_whitespace",
			raw:  []byte("  [1, 2, 3]\n"),
			want: []int64{1, 2, 3},
		},
		{
			name: "float_counts_truncate",
			raw:  []byte("[1.0, 2.0, 3.9]"),
			want: []int64{1, 2, 3},
		},
		{
			name: "empty_array",
			raw:  []byte("[]"),
			want: []int64{},
		},
		{
			name: "null_value",
			raw:  nil,
			want: nil,
		},
		{
			name: "blank_value",
			raw:  []byte("   "),
			want: nil,
		},
		{
			name:    "not_json",
			raw:     []byte("garbage"),
			wantErr: true,
		},
		{
			name:    "json_but_not_array",
			raw:     []byte(`{"channels": [1,2]}`),
			wantErr: true,
		},
		{
			name:    "array_of_strings",
			raw:     []byte(`["a","b"]`),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseChannels(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrChannelParse)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEpochToTime(t *testing.T) {
	tests := []struct {
		name  string
		epoch float64
		want  time.Time
	}{
		{
			name:  "whole_seconds",
			epoch: 1600000000,
			want:  time.Date(2020, 9, 13, 12, 26, 40, 0, time.UTC),
		},
		{
			name:  "fractional_seconds",
			epoch: 1600000000.5,
			want:  time.Date(2020, 9, 13, 12, 26, 40, 500000000, time.UTC),
		},
		{
			name:  "epoch_zero",
			epoch: 0,
			want:  time.Unix(0, 0).UTC(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := epochToTime(tt.epoch)
			assert.Equal(t, time.UTC, got.Location())
			assert.WithinDuration(t, tt.want, got, time.Millisecond)
		})
	}
}
