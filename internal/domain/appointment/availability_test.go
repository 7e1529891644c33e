package appointment

import (
	"testing"
	"time"
)

func TestSlotsGrid(t *testing.T) {
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC) // véspera

	slots := Slots(date, nil, now)

	// 08:00 até 17:30, de 30 em 30 minutos
	if len(slots) != 20 {
		t.Fatalf("len(slots) = %d, want 20", len(slots))
	}
	if slots[0].Time != "08:00" {
		t.Errorf("first slot = %s, want 08:00", slots[0].Time)
	}
	if slots[len(slots)-1].Time != "17:30" {
		t.Errorf("last slot = %s, want 17:30", slots[len(slots)-1].Time)
	}
	for _, s := range slots {
		if !s.Available {
			t.Errorf("slot %s should be available on a free future day", s.Time)
		}
	}
}

func TestSlotsExcludeOccupied(t *testing.T) {
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)

	occupied := map[string]bool{"09:00": true, "14:30": true}
	slots := Slots(date, occupied, now)

	for _, s := range slots {
		if occupied[s.Time] && s.Available {
			t.Errorf("occupied slot %s reported available", s.Time)
		}
		if !occupied[s.Time] && !s.Available {
			t.Errorf("free slot %s reported unavailable", s.Time)
		}
	}
}

func TestSlotsExcludePast(t *testing.T) {
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 10, 12, 15, 0, 0, time.UTC) // meio do dia

	slots := Slots(date, nil, now)

	for _, s := range slots {
		past := s.Time <= "12:15"
		if past && s.Available {
			t.Errorf("past slot %s reported available", s.Time)
		}
		if !past && !s.Available {
			t.Errorf("future slot %s reported unavailable", s.Time)
		}
	}
}

func TestFreeFiltersUnavailable(t *testing.T) {
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)

	free := Free(Slots(date, map[string]bool{"08:00": true}, now))

	if len(free) != 19 {
		t.Fatalf("len(free) = %d, want 19", len(free))
	}
	for _, s := range free {
		if s.Time == "08:00" {
			t.Error("occupied 08:00 present in free slots")
		}
		if !s.Available {
			t.Errorf("unavailable slot %s in free list", s.Time)
		}
	}
}
