package appointment

import (
	"context"
	"testing"

	"github.com/cortedigital/salon-api/internal/httperr"
)

func TestUpdateStatusForward(t *testing.T) {
	repo, ap := bookedRepo(t)
	notifier := &fakeNotifier{}
	uc := NewUpdateStatus(repo, nil, notifier)

	out, err := uc.Execute(context.Background(), ap.ID, ap.BarberID, "confirmed")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if out.Status != "confirmed" {
		t.Errorf("status = %s, want confirmed", out.Status)
	}

	out, err = uc.Execute(context.Background(), ap.ID, ap.BarberID, "completed")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if out.Status != "completed" || out.CompletedAt == nil {
		t.Errorf("status = %s (completed_at %v), want completed with timestamp", out.Status, out.CompletedAt)
	}

	if len(notifier.statusChanged) != 2 {
		t.Errorf("notifier calls = %d, want 2", len(notifier.statusChanged))
	}
}

func TestUpdateStatusBackwardRejected(t *testing.T) {
	repo, ap := bookedRepo(t)
	uc := NewUpdateStatus(repo, nil, nil)

	if _, err := uc.Execute(context.Background(), ap.ID, ap.BarberID, "confirmed"); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	_, err := uc.Execute(context.Background(), ap.ID, ap.BarberID, "scheduled")
	if !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("expected invalid_state, got %v", err)
	}
}

func TestUpdateStatusInvalidValue(t *testing.T) {
	repo, ap := bookedRepo(t)
	uc := NewUpdateStatus(repo, nil, nil)

	_, err := uc.Execute(context.Background(), ap.ID, ap.BarberID, "feito")
	if !httperr.IsBusiness(err, "invalid_status") {
		t.Fatalf("expected invalid_status, got %v", err)
	}
}

func TestUpdateStatusWrongBarber(t *testing.T) {
	repo, ap := bookedRepo(t)
	uc := NewUpdateStatus(repo, nil, nil)

	_, err := uc.Execute(context.Background(), ap.ID, 999, "confirmed")
	if !httperr.IsBusiness(err, "appointment_not_found") {
		t.Fatalf("expected appointment_not_found, got %v", err)
	}
}

func TestUpdateStatusCancelViaPatch(t *testing.T) {
	repo, ap := bookedRepo(t)
	uc := NewUpdateStatus(repo, nil, nil)

	out, err := uc.Execute(context.Background(), ap.ID, ap.BarberID, "cancelled")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if out.Status != "cancelled" || out.CancelledAt == nil {
		t.Errorf("status = %s (cancelled_at %v), want cancelled with timestamp", out.Status, out.CancelledAt)
	}
}
