package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cortedigital/salon-api/internal/httperr"
	"github.com/cortedigital/salon-api/internal/httpresp"
	"github.com/cortedigital/salon-api/internal/middleware"
	"github.com/cortedigital/salon-api/internal/models"
	"github.com/cortedigital/salon-api/internal/storage"
)

// limite do multipart; o avatar final em WebP fica bem menor
const maxAvatarUpload = 5 << 20

type AvatarHandler struct {
	db    *gorm.DB
	store *storage.AvatarStore
}

func NewAvatarHandler(db *gorm.DB, store *storage.AvatarStore) *AvatarHandler {
	return &AvatarHandler{db: db, store: store}
}

func (h *AvatarHandler) Upload(c *gin.Context) {
	if !h.store.Enabled() {
		httperr.Write(c, 503, "Upload de avatar não configurado")
		return
	}

	file, header, err := c.Request.FormFile("avatar")
	if err != nil {
		httperr.BadRequest(c, "Envie a imagem no campo avatar")
		return
	}
	defer file.Close()

	if header.Size > maxAvatarUpload {
		httperr.BadRequest(c, "Imagem muito grande (máximo 5MB)")
		return
	}

	url, err := h.store.Upload(c.Request.Context(), file)
	if err != nil {
		httperr.BadRequest(c, "Não foi possível processar a imagem")
		return
	}

	userID := c.GetUint(middleware.ContextUserID)
	err = h.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("avatar_url", url).Error
	if err != nil {
		httperr.Internal(c, "Erro ao salvar avatar")
		return
	}

	httpresp.Payload(c, 200, gin.H{
		"message":    "Avatar atualizado com sucesso",
		"avatar_url": url,
	})
}
