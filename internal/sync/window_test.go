package sync

import (
	"testing"
	"time"

	"github.com/glassgovernment/legistar-sync/internal/domain"
)

func TestRetain(t *testing.T) {
	now := time.Date(2025, 6, 12, 12, 0, 0, 0, time.UTC)
	at := func(days int) domain.CanonicalEvent {
		return domain.CanonicalEvent{ExternalID: "x", Start: now.AddDate(0, 0, days)}
	}

	tests := []struct {
		name  string
		event domain.CanonicalEvent
		kept  bool
	}{
		{"today", at(0), true},
		{"within window", at(-10), true},
		{"on cutoff boundary", at(-30), true},
		{"just past cutoff", at(-31), false},
		{"long past", at(-365), false},
		{"tomorrow", at(1), true},
		{"far future", at(400), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kept := Retain([]domain.CanonicalEvent{tt.event}, now, 30)
			if got := len(kept) == 1; got != tt.kept {
				t.Errorf("kept = %v, want %v", got, tt.kept)
			}
		})
	}
}

func TestRetain_PreservesOrder(t *testing.T) {
	now := time.Date(2025, 6, 12, 12, 0, 0, 0, time.UTC)
	events := []domain.CanonicalEvent{
		{ExternalID: "a", Start: now.AddDate(0, 0, 5)},
		{ExternalID: "b", Start: now.AddDate(0, 0, -40)},
		{ExternalID: "c", Start: now.AddDate(0, 0, -5)},
		{ExternalID: "d", Start: now},
	}

	kept := Retain(events, now, 30)
	if len(kept) != 3 {
		t.Fatalf("kept %d events, want 3", len(kept))
	}
	for i, want := range []string{"a", "c", "d"} {
		if kept[i].ExternalID != want {
			t.Errorf("kept[%d] = %q, want %q", i, kept[i].ExternalID, want)
		}
	}
}

func TestRetain_Empty(t *testing.T) {
	if kept := Retain(nil, time.Now(), 30); len(kept) != 0 {
		t.Errorf("kept %d events from nil input", len(kept))
	}
}
