package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cortedigital/salon-api/internal/httperr"
	"github.com/cortedigital/salon-api/internal/httpresp"
	"github.com/cortedigital/salon-api/internal/middleware"
	"github.com/cortedigital/salon-api/internal/models"
)

type BarberPriceHandler struct {
	db *gorm.DB
}

func NewBarberPriceHandler(db *gorm.DB) *BarberPriceHandler {
	return &BarberPriceHandler{db: db}
}

// List devolve o mapa serviço → preço personalizado do profissional.
func (h *BarberPriceHandler) List(c *gin.Context) {
	barberID, err := strconv.ParseUint(c.Query("barbeiro_id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "Parâmetro barbeiro_id inválido")
		return
	}

	var prices []models.BarberPrice
	if err := h.db.Where("barber_id = ?", barberID).Find(&prices).Error; err != nil {
		httperr.Internal(c, "Erro ao buscar preços")
		return
	}

	priceMap := make(map[string]float64, len(prices))
	for _, p := range prices {
		priceMap[p.ServiceName] = p.Price
	}

	httpresp.OK(c, priceMap)
}

type upsertPricesRequest struct {
	Prices map[string]float64 `json:"prices"`
}

// Upsert grava os preços personalizados do próprio profissional.
func (h *BarberPriceHandler) Upsert(c *gin.Context) {
	barberID := c.GetUint(middleware.ContextUserID)

	var req upsertPricesRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Prices) == 0 {
		httperr.BadRequest(c, "Informe ao menos um preço")
		return
	}

	for serviceName, price := range req.Prices {
		if price <= 0 {
			httperr.BadRequest(c, "Preço deve ser maior que zero")
			return
		}

		bp := models.BarberPrice{
			BarberID:    barberID,
			ServiceName: serviceName,
			Price:       price,
		}
		err := h.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "barber_id"}, {Name: "service_name"}},
			DoUpdates: clause.AssignmentColumns([]string{"price", "updated_at"}),
		}).Create(&bp).Error
		if err != nil {
			httperr.Internal(c, "Erro ao salvar preços")
			return
		}
	}

	httpresp.Message(c, "Preços atualizados com sucesso")
}
