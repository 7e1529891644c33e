package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cortedigital/salon-api/internal/dashboard"
	"github.com/cortedigital/salon-api/internal/httperr"
	"github.com/cortedigital/salon-api/internal/httpresp"
	"github.com/cortedigital/salon-api/internal/middleware"
	"github.com/cortedigital/salon-api/internal/models"
)

type DashboardHandler struct {
	db         *gorm.DB
	dashboards *dashboard.Service
}

func NewDashboardHandler(db *gorm.DB, dashboards *dashboard.Service) *DashboardHandler {
	return &DashboardHandler{db: db, dashboards: dashboards}
}

// Get monta o painel conforme o tipo do usuário logado.
func (h *DashboardHandler) Get(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserID)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.Unauthorized(c, "Sessão inválida ou expirada")
		return
	}

	ctx := c.Request.Context()

	if user.IsProfessional() {
		result, err := h.dashboards.ForProfessional(ctx, &user)
		if err != nil {
			httperr.Internal(c, "Erro ao montar painel")
			return
		}
		httpresp.OK(c, result)
		return
	}

	result, err := h.dashboards.ForClient(ctx, &user)
	if err != nil {
		httperr.Internal(c, "Erro ao montar painel")
		return
	}
	httpresp.OK(c, result)
}
