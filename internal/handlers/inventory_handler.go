package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cortedigital/salon-api/internal/httperr"
	"github.com/cortedigital/salon-api/internal/httpresp"
	"github.com/cortedigital/salon-api/internal/middleware"
	"github.com/cortedigital/salon-api/internal/models"
	"github.com/cortedigital/salon-api/internal/notify"
)

type InventoryHandler struct {
	db       *gorm.DB
	notifier *notify.Service
}

func NewInventoryHandler(db *gorm.DB, notifier *notify.Service) *InventoryHandler {
	return &InventoryHandler{db: db, notifier: notifier}
}

// itemView acrescenta a flag de estoque baixo ao item serializado.
type itemView struct {
	models.InventoryItem
	LowStock bool `json:"low_stock"`
}

func toView(item models.InventoryItem) itemView {
	return itemView{InventoryItem: item, LowStock: item.LowStock()}
}

func (h *InventoryHandler) List(c *gin.Context) {
	barberID := c.GetUint(middleware.ContextUserID)

	var items []models.InventoryItem
	err := h.db.
		Where("barber_id = ?", barberID).
		Order("name ASC").
		Find(&items).Error
	if err != nil {
		httperr.Internal(c, "Erro ao listar estoque")
		return
	}

	views := make([]itemView, 0, len(items))
	for _, item := range items {
		views = append(views, toView(item))
	}

	httpresp.OK(c, views)
}

type inventoryRequest struct {
	Name        string  `json:"produto"`
	Quantity    int     `json:"quantidade"`
	UnitCost    float64 `json:"preco_custo"`
	Supplier    string  `json:"fornecedor"`
	Category    string  `json:"categoria"`
	Description string  `json:"descricao"`
}

func (h *InventoryHandler) Create(c *gin.Context) {
	var req inventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Dados inválidos")
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		httperr.BadRequest(c, "Nome do produto é obrigatório")
		return
	}
	if req.Quantity < 0 {
		httperr.BadRequest(c, "Quantidade não pode ser negativa")
		return
	}

	item := models.InventoryItem{
		BarberID:    c.GetUint(middleware.ContextUserID),
		Name:        strings.TrimSpace(req.Name),
		Quantity:    req.Quantity,
		UnitCost:    req.UnitCost,
		Supplier:    req.Supplier,
		Category:    req.Category,
		Description: req.Description,
	}

	if err := h.db.Create(&item).Error; err != nil {
		httperr.Internal(c, "Erro ao cadastrar item")
		return
	}

	if item.LowStock() {
		h.notifier.LowStock(c.Request.Context(), &item)
	}

	httpresp.Created(c, toView(item))
}

func (h *InventoryHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "Identificador inválido")
		return
	}

	barberID := c.GetUint(middleware.ContextUserID)

	var item models.InventoryItem
	if err := h.db.Where("id = ? AND barber_id = ?", id, barberID).First(&item).Error; err != nil {
		httperr.NotFound(c, "Item não encontrado")
		return
	}

	var req inventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Dados inválidos")
		return
	}
	if req.Quantity < 0 {
		httperr.BadRequest(c, "Quantidade não pode ser negativa")
		return
	}

	wasLow := item.LowStock()

	if strings.TrimSpace(req.Name) != "" {
		item.Name = strings.TrimSpace(req.Name)
	}
	item.Quantity = req.Quantity
	item.UnitCost = req.UnitCost
	item.Supplier = req.Supplier
	item.Category = req.Category
	item.Description = req.Description

	if err := h.db.Save(&item).Error; err != nil {
		httperr.Internal(c, "Erro ao atualizar item")
		return
	}

	// avisa só quando o item cruza o limite, não a cada atualização
	if item.LowStock() && !wasLow {
		h.notifier.LowStock(c.Request.Context(), &item)
	}

	httpresp.OK(c, toView(item))
}

func (h *InventoryHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "Identificador inválido")
		return
	}

	barberID := c.GetUint(middleware.ContextUserID)

	result := h.db.Where("id = ? AND barber_id = ?", id, barberID).Delete(&models.InventoryItem{})
	if result.Error != nil {
		httperr.Internal(c, "Erro ao remover item")
		return
	}
	if result.RowsAffected == 0 {
		httperr.NotFound(c, "Item não encontrado")
		return
	}

	httpresp.Message(c, "Item removido com sucesso")
}
