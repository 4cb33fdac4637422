package canonical

import (
	"testing"
	"time"

	"github.com/glassgovernment/legistar-sync/internal/domain"
	"github.com/glassgovernment/legistar-sync/internal/source"
)

func chicago(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Chicago")
	if err != nil {
		t.Fatalf("load timezone: %v", err)
	}
	return loc
}

func TestCanonicalize_WallClockExactAcrossDST(t *testing.T) {
	loc := chicago(t)
	tests := []struct {
		name     string
		datetime string
		want     string
	}{
		// CST is UTC-6, CDT is UTC-5. The same UTC instant lands on
		// different wall clocks depending on the date.
		{"standard time", "2025-03-01T18:30:00Z", "2025-03-01 12:30 CST"},
		{"daylight time", "2025-03-10T18:30:00Z", "2025-03-10 13:30 CDT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := Canonicalize(source.RawEventRecord{
				ExternalID: "1",
				Title:      "Plan Commission",
				DateTime:   tt.datetime,
			}, domain.SourceMadison, loc)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got := ev.Start.Format("2006-01-02 15:04 MST")
			if got != tt.want {
				t.Errorf("Start = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCanonicalize_PreservesInstant(t *testing.T) {
	loc := chicago(t)
	ev, err := Canonicalize(source.RawEventRecord{
		ExternalID: "1",
		DateTime:   "2025-06-12T18:30:00Z",
	}, domain.SourceDane, loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2025, 6, 12, 18, 30, 0, 0, time.UTC)
	if !ev.Start.Equal(want) {
		t.Errorf("Start = %v, not the same instant as %v", ev.Start, want)
	}
}

func TestCanonicalize_ZonelessDatetimeReadAsUTC(t *testing.T) {
	loc := chicago(t)
	with, err := Canonicalize(source.RawEventRecord{ExternalID: "a", DateTime: "2025-06-12T18:30:00Z"}, domain.SourceMadison, loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	without, err := Canonicalize(source.RawEventRecord{ExternalID: "b", DateTime: "2025-06-12T18:30:00"}, domain.SourceMadison, loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !with.Start.Equal(without.Start) {
		t.Errorf("zoneless datetime parsed as %v, want %v", without.Start, with.Start)
	}
}

func TestCanonicalize_DateOnly(t *testing.T) {
	ev, err := Canonicalize(source.RawEventRecord{ExternalID: "1", DateTime: "2025-06-12"}, domain.SourceDane, time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ev.Start.Format(time.RFC3339); got != "2025-06-12T00:00:00Z" {
		t.Errorf("Start = %q", got)
	}
}

func TestCanonicalize_Errors(t *testing.T) {
	tests := []struct {
		name     string
		datetime string
	}{
		{"missing date", ""},
		{"unparseable date", "next tuesday"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Canonicalize(source.RawEventRecord{ExternalID: "1", DateTime: tt.datetime}, domain.SourceMadison, time.UTC)
			if err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestCanonicalize_TitleFallback(t *testing.T) {
	ev, err := Canonicalize(source.RawEventRecord{ExternalID: "1", DateTime: "2025-06-12"}, domain.SourceMadison, time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.Title != "Legistar Event" {
		t.Errorf("Title = %q, want fallback", ev.Title)
	}
}

func TestCanonicalize_VenueFields(t *testing.T) {
	ev, err := Canonicalize(source.RawEventRecord{
		ExternalID: "1",
		DateTime:   "2025-06-12",
		Location:   "Room 201, City-County Building",
	}, domain.SourceMadison, time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.VenueRawName != "Room 201, City-County Building" {
		t.Errorf("VenueRawName = %q", ev.VenueRawName)
	}
	if ev.VenueKey != "room 201, city-county building" {
		t.Errorf("VenueKey = %q", ev.VenueKey)
	}
}
