package appointment

import (
	"context"

	"github.com/cortedigital/salon-api/internal/audit"
	domain "github.com/cortedigital/salon-api/internal/domain/appointment"
	"github.com/cortedigital/salon-api/internal/httperr"
	"github.com/cortedigital/salon-api/internal/models"
	"github.com/cortedigital/salon-api/internal/timezone"
)

type CancelAppointment struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	notifier domain.Notifier
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	notifier domain.Notifier,
) *CancelAppointment {
	return &CancelAppointment{
		repo:     repo,
		audit:    audit,
		notifier: notifier,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	appointmentID string,
	userID uint,
	userType string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	// cliente cancela o próprio agendamento; profissional, os da sua agenda
	owns := ap.ClientID == userID
	if userType == models.UserTypeProfessional {
		owns = ap.BarberID == userID
	}
	if !owns {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	previous := ap.Status

	now := timezone.Now()
	if err := domain.Cancel(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: ap.ID,
	})

	if uc.notifier != nil {
		uc.notifier.AppointmentStatusChanged(ctx, ap, previous)
	}

	return ap, nil
}
