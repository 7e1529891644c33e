package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cortedigital/salon-api/internal/dashboard"
	"github.com/cortedigital/salon-api/internal/httperr"
	"github.com/cortedigital/salon-api/internal/httpresp"
	"github.com/cortedigital/salon-api/internal/middleware"
	"github.com/cortedigital/salon-api/internal/models"
	usecase "github.com/cortedigital/salon-api/internal/usecase/appointment"
)

type AppointmentHandler struct {
	db *gorm.DB

	createBooking *usecase.CreateBooking
	cancel        *usecase.CancelAppointment
	updateStatus  *usecase.UpdateStatus
	autoComplete  *usecase.AutoComplete

	dashboards *dashboard.Service
}

func NewAppointmentHandler(
	db *gorm.DB,
	createBooking *usecase.CreateBooking,
	cancel *usecase.CancelAppointment,
	updateStatus *usecase.UpdateStatus,
	autoComplete *usecase.AutoComplete,
	dashboards *dashboard.Service,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:            db,
		createBooking: createBooking,
		cancel:        cancel,
		updateStatus:  updateStatus,
		autoComplete:  autoComplete,
		dashboards:    dashboards,
	}
}

// código de negócio → status HTTP + mensagem do envelope
var businessResponses = map[string]struct {
	status  int
	message string
}{
	"client_not_found":      {http.StatusUnauthorized, "Sessão inválida ou expirada"},
	"invalid_date_or_time":  {http.StatusBadRequest, "Data ou horário inválido"},
	"invalid_date":          {http.StatusBadRequest, "Data inválida"},
	"in_the_past":           {http.StatusBadRequest, "Não é possível agendar no passado"},
	"service_not_found":     {http.StatusNotFound, "Serviço não encontrado"},
	"time_conflict":         {http.StatusConflict, "Horário já agendado"},
	"appointment_not_found": {http.StatusNotFound, "Agendamento não encontrado"},
	"invalid_status":        {http.StatusBadRequest, "Status inválido"},
	"invalid_state":         {http.StatusBadRequest, "Transição de status não permitida"},
	"already_past":          {http.StatusBadRequest, "O horário deste agendamento já passou"},
}

// writeBusinessError traduz o código do use case para o envelope; erros
// sem código viram 500 genérico.
func writeBusinessError(c *gin.Context, err error, fallback string) {
	if code, ok := httperr.BusinessCode(err); ok {
		if resp, known := businessResponses[code]; known {
			httperr.Write(c, resp.status, resp.message)
			return
		}
	}
	httperr.Internal(c, fallback)
}

// List devolve os agendamentos do usuário logado: cliente vê os próprios,
// profissional vê a própria agenda.
func (h *AppointmentHandler) List(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserID)
	userType := c.GetString(middleware.ContextUserType)

	column := "client_id"
	if userType == models.UserTypeProfessional {
		column = "barber_id"
	}

	var aps []models.Appointment
	err := h.db.
		Where(column+" = ?", userID).
		Order("date DESC, time DESC").
		Find(&aps).Error
	if err != nil {
		httperr.Internal(c, "Erro ao listar agendamentos")
		return
	}

	httpresp.OK(c, aps)
}

type createAppointmentRequest struct {
	BarberID    uint    `json:"barberId"`
	BarberName  string  `json:"barberName"`
	ServiceID   uint    `json:"serviceId"`
	ServiceName string  `json:"serviceName"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	Total       float64 `json:"total"`
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req createAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Dados inválidos")
		return
	}

	if req.BarberID == 0 || req.ServiceID == 0 || req.Date == "" || req.Time == "" {
		httperr.BadRequest(c, "Profissional, serviço, data e horário são obrigatórios")
		return
	}

	ap, err := h.createBooking.Execute(c.Request.Context(), usecase.CreateBookingInput{
		ClientID:    c.GetUint(middleware.ContextUserID),
		BarberID:    req.BarberID,
		BarberName:  req.BarberName,
		ServiceID:   req.ServiceID,
		ServiceName: req.ServiceName,
		Date:        req.Date,
		Time:        req.Time,
		Total:       req.Total,
	})
	if err != nil {
		writeBusinessError(c, err, "Erro ao criar agendamento")
		return
	}

	h.dashboards.Invalidate(c.Request.Context(), ap.ClientID, ap.BarberID)
	httpresp.Created(c, ap)
}

// Delete cancela o agendamento. A linha nunca é removida do banco.
func (h *AppointmentHandler) Delete(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserID)
	userType := c.GetString(middleware.ContextUserType)

	ap, err := h.cancel.Execute(c.Request.Context(), c.Param("id"), userID, userType)
	if err != nil {
		writeBusinessError(c, err, "Erro ao cancelar agendamento")
		return
	}

	h.dashboards.Invalidate(c.Request.Context(), ap.ClientID, ap.BarberID)
	httpresp.Payload(c, 200, gin.H{
		"message": "Agendamento cancelado com sucesso",
		"data":    ap,
	})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Dados inválidos")
		return
	}

	barberID := c.GetUint(middleware.ContextUserID)

	ap, err := h.updateStatus.Execute(c.Request.Context(), c.Param("id"), barberID, req.Status)
	if err != nil {
		writeBusinessError(c, err, "Erro ao atualizar status")
		return
	}

	h.dashboards.Invalidate(c.Request.Context(), ap.ClientID, ap.BarberID)
	httpresp.OK(c, ap)
}

// ListForBarber alimenta o wizard com os horários ocupados de um
// profissional em uma data.
func (h *AppointmentHandler) ListForBarber(c *gin.Context) {
	barberID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "Identificador inválido")
		return
	}

	q := h.db.Where("barber_id = ?", barberID)
	if date := c.Query("date"); date != "" {
		q = q.Where("date = ?", date)
	}

	var aps []models.Appointment
	if err := q.Order("date ASC, time ASC").Find(&aps).Error; err != nil {
		httperr.Internal(c, "Erro ao listar agendamentos")
		return
	}

	httpresp.OK(c, aps)
}

func (h *AppointmentHandler) AutoComplete(c *gin.Context) {
	updated, err := h.autoComplete.Execute(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "Erro ao concluir agendamentos")
		return
	}

	httpresp.Payload(c, 200, gin.H{
		"message": "Agendamentos vencidos concluídos",
		"updated": updated,
	})
}
