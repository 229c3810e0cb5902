package utils

import (
	"testing"
	"time"
)

func TestParseTransitionDate(t *testing.T) {
	tests := []struct {
		name    string
		reason  string
		want    time.Time
		wantErr bool
	}{
		{
			name:   "user initiated stop",
			reason: "User initiated (2025-03-01 16:12:08 GMT)",
			want:   time.Date(2025, 3, 1, 16, 12, 8, 0, time.UTC),
		},
		{
			name:    "no parenthesized date",
			reason:  "User initiated",
			wantErr: true,
		},
		{
			name:    "unparseable date",
			reason:  "User initiated (yesterday)",
			wantErr: true,
		},
		{
			name:    "empty reason",
			reason:  "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTransitionDate(tt.reason)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseTransitionDate(%q) succeeded, want error", tt.reason)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTransitionDate(%q) error: %v", tt.reason, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseTransitionDate(%q) = %v, want %v", tt.reason, got, tt.want)
			}
		})
	}
}
