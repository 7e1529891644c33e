package appointment

import (
	"context"
	"testing"

	"github.com/cortedigital/salon-api/internal/models"
)

func TestAutoCompleteFlipsOverdue(t *testing.T) {
	repo := seededRepo()
	repo.appointments["APT00001"] = &models.Appointment{
		ID: "APT00001", BarberID: 3, ClientID: 10,
		Date: "2020-01-01", Time: "09:00", Status: "confirmed",
	}
	repo.appointments["APT00002"] = &models.Appointment{
		ID: "APT00002", BarberID: 3, ClientID: 10,
		Date: "2020-01-01", Time: "10:00", Status: "scheduled",
	}
	// cancelado não é tocado
	repo.appointments["APT00003"] = &models.Appointment{
		ID: "APT00003", BarberID: 3, ClientID: 10,
		Date: "2020-01-01", Time: "11:00", Status: "cancelled",
	}
	// futuro fica como está
	repo.appointments["APT00004"] = &models.Appointment{
		ID: "APT00004", BarberID: 3, ClientID: 10,
		Date: futureDate(3), Time: "09:00", Status: "scheduled",
	}

	uc := NewAutoComplete(repo, nil)
	updated, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if updated != 2 {
		t.Errorf("updated = %d, want 2", updated)
	}
	if got := repo.appointments["APT00001"].Status; got != "completed" {
		t.Errorf("APT00001 status = %s, want completed", got)
	}
	if got := repo.appointments["APT00002"].Status; got != "completed" {
		t.Errorf("APT00002 status = %s, want completed", got)
	}
	if got := repo.appointments["APT00003"].Status; got != "cancelled" {
		t.Errorf("APT00003 status = %s, want cancelled untouched", got)
	}
	if got := repo.appointments["APT00004"].Status; got != "scheduled" {
		t.Errorf("APT00004 status = %s, want scheduled untouched", got)
	}
}

func TestAutoCompleteNothingToDo(t *testing.T) {
	uc := NewAutoComplete(seededRepo(), nil)

	updated, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if updated != 0 {
		t.Errorf("updated = %d, want 0", updated)
	}
}
