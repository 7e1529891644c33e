package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Todas as respostas da API usam o envelope {success, message?, data?, ...}.

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": data})
}

func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

// Payload monta um envelope de sucesso com chaves extras no topo
// (user, notifications, unread_count, conversations...).
func Payload(c *gin.Context, status int, extra gin.H) {
	body := gin.H{"success": true}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(status, body)
}
