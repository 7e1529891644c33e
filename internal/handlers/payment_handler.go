package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/cortedigital/salon-api/internal/domain/appointment"
	"github.com/cortedigital/salon-api/internal/httperr"
	"github.com/cortedigital/salon-api/internal/httpresp"
	"github.com/cortedigital/salon-api/internal/middleware"
	"github.com/cortedigital/salon-api/internal/models"
	"github.com/cortedigital/salon-api/internal/payments"
)

type PaymentHandler struct {
	db      *gorm.DB
	gateway *payments.Gateway
}

func NewPaymentHandler(db *gorm.DB, gateway *payments.Gateway) *PaymentHandler {
	return &PaymentHandler{db: db, gateway: gateway}
}

// CreateCheckout gera a preferência de pagamento do agendamento e devolve
// a URL de checkout.
func (h *PaymentHandler) CreateCheckout(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserID)

	var ap models.Appointment
	err := h.db.
		Where("id = ? AND client_id = ?", c.Param("id"), userID).
		First(&ap).Error
	if err != nil {
		httperr.NotFound(c, "Agendamento não encontrado")
		return
	}

	if ap.Status == string(domain.StatusCancelled) {
		httperr.BadRequest(c, "Agendamento cancelado não pode ser pago")
		return
	}

	checkoutURL, err := h.gateway.CreateBookingPreference(c.Request.Context(), &ap)
	if err != nil {
		if httperr.IsBusiness(err, "payments_disabled") {
			httperr.Write(c, 503, "Pagamentos online não configurados")
			return
		}
		httperr.Write(c, 502, "Pagamento indisponível no momento, tente novamente")
		return
	}

	httpresp.Payload(c, 200, gin.H{"checkout_url": checkoutURL})
}
