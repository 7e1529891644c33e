package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cortedigital/salon-api/internal/dashboard"
	domain "github.com/cortedigital/salon-api/internal/domain/appointment"
	"github.com/cortedigital/salon-api/internal/middleware"
	"github.com/cortedigital/salon-api/internal/models"
	"github.com/cortedigital/salon-api/internal/timezone"
	usecase "github.com/cortedigital/salon-api/internal/usecase/appointment"
)

// bookingRepo guarda tudo em memória para testar o handler de ponta a
// ponta, do corpo JSON até o envelope, sem banco.
type bookingRepo struct {
	users        map[uint]*models.User
	services     map[uint]*models.Service
	appointments []*models.Appointment
}

var _ domain.Repository = (*bookingRepo)(nil)

func (r *bookingRepo) GetUser(_ context.Context, userID uint) (*models.User, error) {
	u, ok := r.users[userID]
	if !ok {
		return nil, fmt.Errorf("user %d not found", userID)
	}
	return u, nil
}

func (r *bookingRepo) GetService(_ context.Context, serviceID uint) (*models.Service, error) {
	s, ok := r.services[serviceID]
	if !ok {
		return nil, fmt.Errorf("service %d not found", serviceID)
	}
	return s, nil
}

func (r *bookingRepo) GetBarberPrice(context.Context, uint, string) (float64, bool, error) {
	return 0, false, nil
}

func (r *bookingRepo) NextAppointmentID(context.Context) (string, error) {
	return fmt.Sprintf("APT%05d", len(r.appointments)+1), nil
}

func (r *bookingRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	r.appointments = append(r.appointments, ap)
	return nil
}

func (r *bookingRepo) GetAppointment(context.Context, string) (*models.Appointment, error) {
	return nil, fmt.Errorf("not implemented")
}

func (r *bookingRepo) UpdateAppointment(context.Context, *models.Appointment) error {
	return nil
}

func (r *bookingRepo) ListForBarberOnDate(_ context.Context, barberID uint, date string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.BarberID == barberID && (date == "" || ap.Date == date) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (r *bookingRepo) ListOverdue(context.Context, string, string) ([]models.Appointment, error) {
	return nil, nil
}

func bookingRouter(repo *bookingRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)

	uc := usecase.NewCreateBooking(repo, nil, nil)
	h := NewAppointmentHandler(nil, uc, nil, nil, nil, dashboard.NewService(nil, nil))

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserID, uint(10))
		c.Set(middleware.ContextUserType, models.UserTypeClient)
	})
	r.POST("/api/appointments", h.Create)
	return r
}

// O corpo do wizard usa as chaves barberId/barberName/serviceId/
// serviceName/date/time/total. Cada campo precisa chegar intacto ao
// agendamento criado.
func TestCreateAppointmentBindsWizardBody(t *testing.T) {
	repo := &bookingRepo{
		users:    map[uint]*models.User{10: {ID: 10, Name: "João", Email: "joao@example.com"}},
		services: map[uint]*models.Service{1: {ID: 1, Name: "Corte", Price: 40}},
	}
	r := bookingRouter(repo)

	date := timezone.Now().AddDate(0, 0, 2).Format("2006-01-02")
	body := fmt.Sprintf(
		`{"barberId":3,"barberName":"Ana","serviceId":1,"serviceName":"Corte","date":%q,"time":"09:00","total":40.00}`,
		date,
	)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/appointments", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body: %s)", w.Code, w.Body.String())
	}

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			ID          string  `json:"id"`
			ClientID    uint    `json:"client_id"`
			ClientName  string  `json:"cliente"`
			BarberID    uint    `json:"barbeiro_id"`
			BarberName  string  `json:"barbeiro"`
			ServiceID   uint    `json:"servico_id"`
			ServiceName string  `json:"servico"`
			Date        string  `json:"date"`
			Time        string  `json:"time"`
			Status      string  `json:"status"`
			TotalPrice  float64 `json:"total_price"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid body: %v", err)
	}

	if !resp.Success {
		t.Error("success = false, want true")
	}
	d := resp.Data
	if d.ID != "APT00001" {
		t.Errorf("id = %s, want APT00001", d.ID)
	}
	if d.ClientID != 10 || d.ClientName != "João" {
		t.Errorf("client = %d %q, want 10 João", d.ClientID, d.ClientName)
	}
	if d.BarberID != 3 || d.BarberName != "Ana" {
		t.Errorf("barber = %d %q, want 3 Ana", d.BarberID, d.BarberName)
	}
	if d.ServiceID != 1 || d.ServiceName != "Corte" {
		t.Errorf("service = %d %q, want 1 Corte", d.ServiceID, d.ServiceName)
	}
	if d.Date != date || d.Time != "09:00" {
		t.Errorf("slot = %s %s, want %s 09:00", d.Date, d.Time, date)
	}
	if d.Status != "scheduled" {
		t.Errorf("status = %s, want scheduled", d.Status)
	}
	if d.TotalPrice != 40 {
		t.Errorf("total_price = %v, want 40", d.TotalPrice)
	}

	if len(repo.appointments) != 1 {
		t.Fatalf("persisted = %d appointments, want 1", len(repo.appointments))
	}
}

// Chaves fora do contrato do wizard deixam os campos obrigatórios
// zerados e o handler recusa antes do use case.
func TestCreateAppointmentRejectsWrongKeys(t *testing.T) {
	repo := &bookingRepo{
		users:    map[uint]*models.User{10: {ID: 10, Name: "João"}},
		services: map[uint]*models.Service{1: {ID: 1, Name: "Corte", Price: 40}},
	}
	r := bookingRouter(repo)

	date := time.Now().AddDate(0, 0, 2).Format("2006-01-02")
	body := fmt.Sprintf(
		`{"barber_id":3,"service_id":1,"date":%q,"time":"09:00"}`,
		date,
	)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/appointments", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 (body: %s)", w.Code, w.Body.String())
	}
	if len(repo.appointments) != 0 {
		t.Errorf("persisted = %d appointments, want 0", len(repo.appointments))
	}
}
