package appointment

import (
	"context"
	"fmt"

	domain "github.com/cortedigital/salon-api/internal/domain/appointment"
	"github.com/cortedigital/salon-api/internal/httperr"
	"github.com/cortedigital/salon-api/internal/models"
)

// fakeRepository guarda tudo em memória para os testes dos use cases.
type fakeRepository struct {
	users        map[uint]*models.User
	services     map[uint]*models.Service
	barberPrices map[string]float64 // "barberID:serviceName"
	appointments map[string]*models.Appointment

	nextSeq int
}

var _ domain.Repository = (*fakeRepository)(nil)

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		users:        make(map[uint]*models.User),
		services:     make(map[uint]*models.Service),
		barberPrices: make(map[string]float64),
		appointments: make(map[string]*models.Appointment),
		nextSeq:      1,
	}
}

func (f *fakeRepository) GetUser(_ context.Context, userID uint) (*models.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, httperr.ErrBusiness("client_not_found")
	}
	return u, nil
}

func (f *fakeRepository) GetService(_ context.Context, serviceID uint) (*models.Service, error) {
	s, ok := f.services[serviceID]
	if !ok {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	return s, nil
}

func (f *fakeRepository) GetBarberPrice(_ context.Context, barberID uint, serviceName string) (float64, bool, error) {
	price, ok := f.barberPrices[fmt.Sprintf("%d:%s", barberID, serviceName)]
	return price, ok, nil
}

func (f *fakeRepository) NextAppointmentID(_ context.Context) (string, error) {
	id := fmt.Sprintf("APT%05d", f.nextSeq)
	f.nextSeq++
	return id, nil
}

func (f *fakeRepository) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	cp := *ap
	f.appointments[ap.ID] = &cp
	return nil
}

func (f *fakeRepository) GetAppointment(_ context.Context, appointmentID string) (*models.Appointment, error) {
	ap, ok := f.appointments[appointmentID]
	if !ok {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	cp := *ap
	return &cp, nil
}

func (f *fakeRepository) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	cp := *ap
	f.appointments[ap.ID] = &cp
	return nil
}

func (f *fakeRepository) ListForBarberOnDate(_ context.Context, barberID uint, date string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.BarberID == barberID && (date == "" || ap.Date == date) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (f *fakeRepository) ListOverdue(_ context.Context, today, nowHM string) ([]models.Appointment, error) {
	active := map[string]bool{"pending": true, "scheduled": true, "confirmed": true}

	var out []models.Appointment
	for _, ap := range f.appointments {
		if !active[ap.Status] {
			continue
		}
		if ap.Date < today || (ap.Date == today && ap.Time <= nowHM) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

// fakeNotifier registra as chamadas para inspeção nos testes.
type fakeNotifier struct {
	created       []string
	statusChanged []string
}

func (f *fakeNotifier) AppointmentCreated(_ context.Context, ap *models.Appointment) {
	f.created = append(f.created, ap.ID)
}

func (f *fakeNotifier) AppointmentStatusChanged(_ context.Context, ap *models.Appointment, _ string) {
	f.statusChanged = append(f.statusChanged, ap.ID)
}
