package handlers

import (
	"encoding/json"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/cortedigital/salon-api/internal/domain/appointment"
	"github.com/cortedigital/salon-api/internal/httperr"
	"github.com/cortedigital/salon-api/internal/httpresp"
	"github.com/cortedigital/salon-api/internal/models"
	usecase "github.com/cortedigital/salon-api/internal/usecase/appointment"
)

type ProfessionalHandler struct {
	db           *gorm.DB
	availability *usecase.GetAvailability
}

func NewProfessionalHandler(db *gorm.DB, availability *usecase.GetAvailability) *ProfessionalHandler {
	return &ProfessionalHandler{db: db, availability: availability}
}

func (h *ProfessionalHandler) List(c *gin.Context) {
	var pros []models.User
	err := h.db.
		Where("type = ? AND active = ?", models.UserTypeProfessional, true).
		Order("name ASC").
		Find(&pros).Error
	if err != nil {
		httperr.Internal(c, "Erro ao listar profissionais")
		return
	}

	httpresp.OK(c, pros)
}

func (h *ProfessionalHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "Identificador inválido")
		return
	}

	var pro models.User
	err = h.db.
		Where("id = ? AND type = ?", id, models.UserTypeProfessional).
		First(&pro).Error
	if err != nil {
		httperr.NotFound(c, "Profissional não encontrado")
		return
	}

	httpresp.OK(c, pro)
}

// ListBarbers devolve os profissionais no formato que o wizard de
// agendamento consome.
func (h *ProfessionalHandler) ListBarbers(c *gin.Context) {
	var pros []models.User
	err := h.db.
		Where("type = ? AND active = ?", models.UserTypeProfessional, true).
		Order("name ASC").
		Find(&pros).Error
	if err != nil {
		httperr.Internal(c, "Erro ao listar profissionais")
		return
	}

	barbers := make([]gin.H, 0, len(pros))
	for _, p := range pros {
		barbers = append(barbers, gin.H{
			"id":              p.ID,
			"nome":            p.Name,
			"especialidades":  jsonOrString(p.Specialties),
			"avaliacao":       p.Rating,
			"preco_base":      p.BasePrice,
			"disponibilidade": jsonOrString(p.Schedule),
			"avatar_url":      p.AvatarURL,
		})
	}

	httpresp.OK(c, barbers)
}

func (h *ProfessionalHandler) Availability(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "Identificador inválido")
		return
	}

	date := c.Query("date")
	slots, err := h.availability.Execute(c.Request.Context(), uint(id), date)
	if err != nil {
		if httperr.IsBusiness(err, "invalid_date") {
			httperr.BadRequest(c, "Data inválida")
			return
		}
		httperr.Internal(c, "Erro ao calcular disponibilidade")
		return
	}

	// ?free=1 devolve só os horários livres, para o wizard
	if c.Query("free") == "1" {
		slots = domain.Free(slots)
	}

	httpresp.OK(c, slots)
}

// jsonOrString tenta devolver o campo como JSON estruturado; se o valor
// gravado não for JSON válido, devolve a string como veio.
func jsonOrString(raw string) any {
	if raw == "" {
		return nil
	}
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err == nil {
		return v
	}
	return raw
}
