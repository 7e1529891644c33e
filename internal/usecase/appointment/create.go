package appointment

import (
	"context"
	"time"

	"github.com/cortedigital/salon-api/internal/audit"
	domain "github.com/cortedigital/salon-api/internal/domain/appointment"
	"github.com/cortedigital/salon-api/internal/httperr"
	"github.com/cortedigital/salon-api/internal/models"
	"github.com/cortedigital/salon-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	ClientID uint

	BarberID   uint
	BarberName string

	ServiceID   uint
	ServiceName string

	Date  string
	Time  string
	Total float64
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	notifier domain.Notifier
}

func NewCreateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	notifier domain.Notifier,
) *CreateBooking {
	return &CreateBooking{
		repo:     repo,
		audit:    audit,
		notifier: notifier,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1️⃣ Data / hora no fuso do salão
	// --------------------------------------------------
	loc := timezone.Location()
	start, err := time.ParseInLocation("2006-01-02 15:04", in.Date+" "+in.Time, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	now := timezone.Now()
	if !start.After(now) {
		return nil, httperr.ErrBusiness("in_the_past")
	}

	// --------------------------------------------------
	// 2️⃣ Cliente da sessão
	// --------------------------------------------------
	client, err := uc.repo.GetUser(ctx, in.ClientID)
	if err != nil {
		return nil, httperr.ErrBusiness("client_not_found")
	}

	// --------------------------------------------------
	// 3️⃣ Serviço e preço (personalizado do profissional, se houver)
	// --------------------------------------------------
	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	total := in.Total
	if total <= 0 {
		total = service.Price
		if custom, ok, err := uc.repo.GetBarberPrice(ctx, in.BarberID, service.Name); err == nil && ok {
			total = custom
		}
	}

	// --------------------------------------------------
	// 4️⃣ Conflito de horário: slot já ocupado para (barbeiro, data)
	// --------------------------------------------------
	sameDay, err := uc.repo.ListForBarberOnDate(ctx, in.BarberID, in.Date)
	if err != nil {
		return nil, err
	}
	for _, ap := range sameDay {
		if ap.Time == in.Time && ap.Status != string(domain.StatusCancelled) {
			return nil, httperr.ErrBusiness("time_conflict")
		}
	}

	// --------------------------------------------------
	// 5️⃣ Criação do agendamento
	// --------------------------------------------------
	id, err := uc.repo.NextAppointmentID(ctx)
	if err != nil {
		return nil, err
	}

	ap := &models.Appointment{
		ID:          id,
		ClientID:    client.ID,
		ClientName:  client.Name,
		ClientEmail: client.Email,
		BarberID:    in.BarberID,
		BarberName:  in.BarberName,
		ServiceID:   in.ServiceID,
		ServiceName: in.ServiceName,
		Date:        in.Date,
		Time:        in.Time,
		Status:      string(domain.InitialStatus()),
		TotalPrice:  total,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 6️⃣ Auditoria + notificação do profissional
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ClientID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: ap.ID,
	})

	if uc.notifier != nil {
		uc.notifier.AppointmentCreated(ctx, ap)
	}

	return ap, nil
}
