package gocfb

import (
	"testing"
	"time"
)

func TestParseFiletime(t *testing.T) {
	tests := []struct {
		name  string
		input uint64
		want  time.Time
	}{
		{
			name:  "unset",
			input: 0,
			want:  time.Time{},
		},
		{
			name:  "unix epoch",
			input: 116444736000000000,
			want:  time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "first interval",
			input: 1,
			want:  time.Date(1601, 1, 1, 0, 0, 0, 100, time.UTC),
		},
		{
			name:  "some date",
			input: 132539328000000000,
			want:  time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "fraction",
			input: 116444736000000000 + 12345678,
			want:  time.Date(1970, 1, 1, 0, 0, 1, 234567800, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseFiletime(tt.input)
			if !got.Equal(tt.want) || got.IsZero() != tt.want.IsZero() {
				t.Errorf("ParseFiletime() = %v, want %v", got, tt.want)
			}
		})
	}
}
