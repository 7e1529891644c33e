package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/cortedigital/salon-api/internal/config"
)

const (
	ContextUserID   = "userID"
	ContextUserType = "userType"
	ContextUserName = "userName"

	// SessionCookie carrega o JWT para clientes de navegador.
	SessionCookie = "salon_session"
)

// TokenFromRequest procura o JWT no cookie de sessão e, na falta dele,
// no header Authorization (Bearer) e no query param token (websocket).
func TokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
	}

	return c.Query("token")
}

// ParseSession valida o token e devolve id, tipo e nome do usuário.
func ParseSession(tokenString, secret string) (uint, string, string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(secret), nil
	})
	if err != nil {
		return 0, "", "", err
	}
	if !token.Valid {
		return 0, "", "", jwt.ErrTokenInvalidClaims
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", "", jwt.ErrTokenInvalidClaims
	}

	sub, ok := claims["sub"].(float64)
	if !ok {
		return 0, "", "", jwt.ErrTokenInvalidClaims
	}
	userType, _ := claims["type"].(string)
	name, _ := claims["name"].(string)

	return uint(sub), userType, name, nil
}

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := TokenFromRequest(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Não autenticado",
			})
			return
		}

		userID, userType, name, err := ParseSession(tokenString, cfg.JWTSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Sessão inválida ou expirada",
			})
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextUserType, userType)
		c.Set(ContextUserName, name)

		c.Next()
	}
}

// RequireProfessional nega acesso a rotas exclusivas de profissionais.
func RequireProfessional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userType, _ := c.Get(ContextUserType); userType != "professional" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Apenas profissionais podem executar esta ação",
			})
			return
		}
		c.Next()
	}
}
