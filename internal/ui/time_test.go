package ui

import (
	"testing"
	"time"
)

func TestFormatDurationShort(t *testing.T) {
	cases := []struct {
		name     string
		duration time.Duration
		want     string
	}{
		{name: "negative", duration: -time.Minute, want: "0s"},
		{name: "seconds", duration: 45 * time.Second, want: "45s"},
		{name: "minutes", duration: 2*time.Minute + 10*time.Second, want: "2m"},
		{name: "hours", duration: 3*time.Hour + 5*time.Minute, want: "3h"},
		{name: "days", duration: 48 * time.Hour, want: "2d"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FormatDurationShort(tc.duration)
			if got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestFormatRelative(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	if got := FormatRelative(now.Add(-2*time.Minute), now); got != "2m ago" {
		t.Fatalf("expected 2m ago, got %s", got)
	}
	if got := FormatRelative(now.Add(49*time.Hour), now); got != "in 2d" {
		t.Fatalf("expected in 2d, got %s", got)
	}
}

func TestFormatDate(t *testing.T) {
	got := FormatDate(time.Date(2024, 5, 3, 17, 0, 0, 0, time.UTC))
	if got != "Fri 3 May 2024 17:00" {
		t.Fatalf("expected Fri 3 May 2024 17:00, got %s", got)
	}
}
