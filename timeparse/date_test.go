package timeparse_test

import (
	"errors"
	"testing"
	"time"

	"github.com/amonks/duchess/timeparse"
)

func TestNewParser(t *testing.T) {
	if _, err := timeparse.NewParser("Asia/Singapore"); err != nil {
		t.Fatalf("unexpected error creating valid parser: %v", err)
	}
	if _, err := timeparse.NewParser(""); err != nil {
		t.Fatalf("unexpected error creating local parser: %v", err)
	}
	if _, err := timeparse.NewParser("Invalid/Timezone"); err == nil {
		t.Fatal("expected error for invalid timezone")
	}
}

func TestParseDate(t *testing.T) {
	parser := timeparse.NewParserInLocation(time.UTC)
	base := time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC) // Wednesday

	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{name: "iso with time", input: "2024-06-10 18:00", want: time.Date(2024, 6, 10, 18, 0, 0, 0, time.UTC)},
		{name: "iso date", input: "2024-06-10", want: time.Date(2024, 6, 10, 23, 59, 0, 0, time.UTC)},
		{name: "day month year compact time", input: "2/12/2019 1800", want: time.Date(2019, 12, 2, 18, 0, 0, 0, time.UTC)},
		{name: "day month year colon time", input: "02/12/2019 18:00", want: time.Date(2019, 12, 2, 18, 0, 0, 0, time.UTC)},
		{name: "day month year", input: "2/12/2019", want: time.Date(2019, 12, 2, 23, 59, 0, 0, time.UTC)},
		{name: "today", input: "Today", want: time.Date(2024, 5, 1, 23, 59, 0, 0, time.UTC)},
		{name: "tomorrow", input: "tomorrow", want: time.Date(2024, 5, 2, 23, 59, 0, 0, time.UTC)},
		{name: "in days", input: "in 3 days", want: time.Date(2024, 5, 4, 15, 30, 0, 0, time.UTC)},
		{name: "in hours", input: "in 2 hours", want: time.Date(2024, 5, 1, 17, 30, 0, 0, time.UTC)},
		{name: "next monday", input: "next monday", want: time.Date(2024, 5, 6, 23, 59, 0, 0, time.UTC)},
		{name: "next wednesday", input: "next wednesday", want: time.Date(2024, 5, 8, 23, 59, 0, 0, time.UTC)},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "someday", wantErr: true},
		{name: "bad weekday", input: "next funday", wantErr: true},
		{name: "bad in", input: "in a while", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parser.ParseDate(tt.input, base)
			if tt.wantErr {
				if !errors.Is(err, timeparse.ErrInvalidDateFormat) {
					t.Fatalf("expected ErrInvalidDateFormat, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTryParse(t *testing.T) {
	parser := timeparse.NewParserInLocation(time.UTC)
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	if _, ok := parser.TryParse("mon 2-4pm", base); ok {
		t.Error("expected free-text time frame not to parse")
	}
	got, ok := parser.TryParse("2024-05-03 14:00", base)
	if !ok {
		t.Fatal("expected time frame to parse")
	}
	if !got.Equal(time.Date(2024, 5, 3, 14, 0, 0, 0, time.UTC)) {
		t.Errorf("TryParse = %v", got)
	}
}
