package appointment

import (
	"context"
	"testing"

	"github.com/cortedigital/salon-api/internal/httperr"
)

func TestGetAvailabilityMarksOccupied(t *testing.T) {
	repo, ap := bookedRepo(t) // 09:00 em futureDate(2), barbeiro 3
	uc := NewGetAvailability(repo)

	slots, err := uc.Execute(context.Background(), ap.BarberID, ap.Date)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	found := false
	for _, s := range slots {
		if s.Time == ap.Time {
			found = true
			if s.Available {
				t.Errorf("booked slot %s reported available", s.Time)
			}
		}
	}
	if !found {
		t.Fatalf("slot %s missing from grid", ap.Time)
	}
}

func TestGetAvailabilityScopedToBarberAndDate(t *testing.T) {
	repo, ap := bookedRepo(t)
	uc := NewGetAvailability(repo)

	// outro profissional, mesma data: agenda livre
	slots, err := uc.Execute(context.Background(), ap.BarberID+1, ap.Date)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	for _, s := range slots {
		if !s.Available {
			t.Errorf("slot %s unavailable for a free barber", s.Time)
		}
	}

	// mesmo profissional, outra data: agenda livre
	slots, err = uc.Execute(context.Background(), ap.BarberID, futureDate(5))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	for _, s := range slots {
		if !s.Available {
			t.Errorf("slot %s unavailable on a free day", s.Time)
		}
	}
}

func TestGetAvailabilityCancelledFreesSlot(t *testing.T) {
	repo, ap := bookedRepo(t)
	repo.appointments[ap.ID].Status = "cancelled"

	uc := NewGetAvailability(repo)
	slots, err := uc.Execute(context.Background(), ap.BarberID, ap.Date)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	for _, s := range slots {
		if s.Time == ap.Time && !s.Available {
			t.Errorf("cancelled slot %s still unavailable", s.Time)
		}
	}
}

func TestGetAvailabilityInvalidDate(t *testing.T) {
	uc := NewGetAvailability(newFakeRepository())

	_, err := uc.Execute(context.Background(), 1, "10/03/2026")
	if !httperr.IsBusiness(err, "invalid_date") {
		t.Fatalf("expected invalid_date, got %v", err)
	}
}
