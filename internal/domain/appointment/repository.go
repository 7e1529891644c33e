package appointment

import (
	"context"

	"github.com/cortedigital/salon-api/internal/models"
)

type Repository interface {
	// -------- Users --------
	GetUser(
		ctx context.Context,
		userID uint,
	) (*models.User, error)

	// -------- Catalog --------
	GetService(
		ctx context.Context,
		serviceID uint,
	) (*models.Service, error)

	GetBarberPrice(
		ctx context.Context,
		barberID uint,
		serviceName string,
	) (float64, bool, error)

	// -------- Appointment (create / conflict) --------
	NextAppointmentID(
		ctx context.Context,
	) (string, error)

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		appointmentID string,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Listing --------
	ListForBarberOnDate(
		ctx context.Context,
		barberID uint,
		date string,
	) ([]models.Appointment, error)

	ListOverdue(
		ctx context.Context,
		today string,
		nowHM string,
	) ([]models.Appointment, error)
}

// Notifier é acionado pelos use cases após mutações relevantes.
// A implementação grava a notificação, empurra pelo websocket e
// publica o evento de domínio no broker.
type Notifier interface {
	AppointmentCreated(ctx context.Context, ap *models.Appointment)
	AppointmentStatusChanged(ctx context.Context, ap *models.Appointment, previous string)
}
