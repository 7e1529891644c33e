package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cortedigital/salon-api/internal/httperr"
	"github.com/cortedigital/salon-api/internal/httpresp"
	"github.com/cortedigital/salon-api/internal/middleware"
	"github.com/cortedigital/salon-api/internal/models"
	"github.com/cortedigital/salon-api/internal/notify"
	"github.com/cortedigital/salon-api/internal/reviews"
)

type ReviewHandler struct {
	reviews  *reviews.Service
	notifier *notify.Service
}

func NewReviewHandler(reviewSvc *reviews.Service, notifier *notify.Service) *ReviewHandler {
	return &ReviewHandler{reviews: reviewSvc, notifier: notifier}
}

var reviewResponses = map[string]struct {
	status  int
	message string
}{
	"invalid_rating":   {http.StatusBadRequest, "Avaliação deve ser entre 1 e 5 estrelas"},
	"cannot_review":    {http.StatusBadRequest, "Não é possível avaliar este agendamento"},
	"already_reviewed": {http.StatusConflict, "Agendamento já avaliado"},
	"review_not_found": {http.StatusNotFound, "Avaliação não encontrada"},
}

func writeReviewError(c *gin.Context, err error, fallback string) {
	if code, ok := httperr.BusinessCode(err); ok {
		if resp, known := reviewResponses[code]; known {
			httperr.Write(c, resp.status, resp.message)
			return
		}
	}
	httperr.Internal(c, fallback)
}

// requireClient barra profissionais: só quem foi atendido avalia.
func requireClient(c *gin.Context) bool {
	if c.GetString(middleware.ContextUserType) != models.UserTypeClient {
		httperr.Write(c, http.StatusForbidden, "Apenas clientes podem avaliar")
		return false
	}
	return true
}

type reviewRequest struct {
	AppointmentID string `json:"appointment_id"`
	Rating        int    `json:"rating"`
	Comment       string `json:"comment"`
}

func (h *ReviewHandler) Create(c *gin.Context) {
	if !requireClient(c) {
		return
	}

	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Dados inválidos")
		return
	}
	if req.AppointmentID == "" {
		httperr.BadRequest(c, "Informe o agendamento avaliado")
		return
	}
	if !models.IsRatingValid(req.Rating) {
		httperr.BadRequest(c, "Avaliação deve ser entre 1 e 5 estrelas")
		return
	}

	clientID := c.GetUint(middleware.ContextUserID)

	review, err := h.reviews.Create(c.Request.Context(), clientID, req.AppointmentID, req.Rating, req.Comment)
	if err != nil {
		writeReviewError(c, err, "Erro ao criar avaliação")
		return
	}

	h.notifier.NewReview(c.Request.Context(), review, c.GetString(middleware.ContextUserName))

	httpresp.Payload(c, http.StatusCreated, gin.H{"review": review})
}

func (h *ReviewHandler) Update(c *gin.Context) {
	if !requireClient(c) {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "Identificador inválido")
		return
	}

	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Dados inválidos")
		return
	}

	clientID := c.GetUint(middleware.ContextUserID)

	review, err := h.reviews.Update(c.Request.Context(), uint(id), clientID, req.Rating, req.Comment)
	if err != nil {
		writeReviewError(c, err, "Erro ao atualizar avaliação")
		return
	}

	httpresp.Payload(c, http.StatusOK, gin.H{"review": review})
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	if !requireClient(c) {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "Identificador inválido")
		return
	}

	clientID := c.GetUint(middleware.ContextUserID)

	if err := h.reviews.Delete(c.Request.Context(), uint(id), clientID); err != nil {
		writeReviewError(c, err, "Erro ao remover avaliação")
		return
	}

	httpresp.Message(c, "Avaliação removida")
}

// ForBarber é público: alimenta as estrelas exibidas no wizard.
func (h *ReviewHandler) ForBarber(c *gin.Context) {
	barberID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "Identificador inválido")
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	rs, summary, err := h.reviews.ForBarber(c.Request.Context(), uint(barberID), limit)
	if err != nil {
		httperr.Internal(c, "Erro ao listar avaliações")
		return
	}

	httpresp.Payload(c, http.StatusOK, gin.H{
		"reviews": rs,
		"summary": summary,
	})
}

func (h *ReviewHandler) Mine(c *gin.Context) {
	if !requireClient(c) {
		return
	}

	clientID := c.GetUint(middleware.ContextUserID)

	rs, err := h.reviews.ForClient(c.Request.Context(), clientID)
	if err != nil {
		httperr.Internal(c, "Erro ao listar avaliações")
		return
	}

	httpresp.Payload(c, http.StatusOK, gin.H{"reviews": rs})
}

// Pending lista os atendimentos concluídos ainda sem avaliação.
func (h *ReviewHandler) Pending(c *gin.Context) {
	if !requireClient(c) {
		return
	}

	clientID := c.GetUint(middleware.ContextUserID)

	aps, err := h.reviews.Pending(c.Request.Context(), clientID)
	if err != nil {
		httperr.Internal(c, "Erro ao listar avaliações pendentes")
		return
	}

	httpresp.Payload(c, http.StatusOK, gin.H{"appointments": aps})
}

func (h *ReviewHandler) TopRated(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	barbers, err := h.reviews.TopRated(c.Request.Context(), limit)
	if err != nil {
		httperr.Internal(c, "Erro ao listar ranking")
		return
	}

	httpresp.Payload(c, http.StatusOK, gin.H{"barbers": barbers})
}
