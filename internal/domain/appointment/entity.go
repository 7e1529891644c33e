package appointment

import (
	"time"

	"github.com/cortedigital/salon-api/internal/models"
	"github.com/cortedigital/salon-api/internal/timezone"
)

// ===============================
// Domain Actions
// ===============================

// StartsAt converte os campos date/time do agendamento para um instante
// no fuso padrão do salão.
func StartsAt(ap *models.Appointment) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02 15:04",
		ap.Date+" "+ap.Time,
		timezone.Location(),
	)
}

func Cancel(ap *models.Appointment, now time.Time) error {
	start, err := StartsAt(ap)
	if err != nil {
		// data ilegível no banco: não bloqueia o cancelamento
		start = now.Add(time.Minute)
	}

	if err := CanCancel(Status(ap.Status), start, now); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

func SetStatus(ap *models.Appointment, to Status, now time.Time) error {
	if to == StatusCancelled {
		return Cancel(ap, now)
	}

	if err := CanTransition(Status(ap.Status), to); err != nil {
		return err
	}

	ap.Status = string(to)
	if to == StatusCompleted {
		ap.CompletedAt = &now
	}
	return nil
}
