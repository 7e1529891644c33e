package appointment

import (
	"context"

	"github.com/cortedigital/salon-api/internal/audit"
	domain "github.com/cortedigital/salon-api/internal/domain/appointment"
	"github.com/cortedigital/salon-api/internal/httperr"
	"github.com/cortedigital/salon-api/internal/models"
	"github.com/cortedigital/salon-api/internal/timezone"
)

type UpdateStatus struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	notifier domain.Notifier
}

func NewUpdateStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
	notifier domain.Notifier,
) *UpdateStatus {
	return &UpdateStatus{
		repo:     repo,
		audit:    audit,
		notifier: notifier,
	}
}

func (uc *UpdateStatus) Execute(
	ctx context.Context,
	appointmentID string,
	barberID uint,
	statusStr string,
) (*models.Appointment, error) {

	to, err := domain.Parse(statusStr)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil || ap.BarberID != barberID {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	previous := ap.Status

	now := timezone.Now()
	if err := domain.SetStatus(ap, to, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &barberID,
		Action:   "appointment_status_changed",
		Entity:   "appointment",
		EntityID: ap.ID,
		Metadata: map[string]string{"from": previous, "to": string(to)},
	})

	if uc.notifier != nil {
		uc.notifier.AppointmentStatusChanged(ctx, ap, previous)
	}

	return ap, nil
}
