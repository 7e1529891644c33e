package handlers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/cortedigital/salon-api/internal/audit"
	"github.com/cortedigital/salon-api/internal/config"
	"github.com/cortedigital/salon-api/internal/httperr"
	"github.com/cortedigital/salon-api/internal/httpresp"
	"github.com/cortedigital/salon-api/internal/middleware"
	"github.com/cortedigital/salon-api/internal/models"
	"github.com/cortedigital/salon-api/internal/validators"
)

const sessionDuration = 7 * 24 * time.Hour

type AuthHandler struct {
	db    *gorm.DB
	cfg   *config.Config
	audit *audit.Dispatcher
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, audit *audit.Dispatcher) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg, audit: audit}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	UserType string `json:"userType"`

	// obrigatórios quando userType = professional
	Specialty string `json:"specialty"`
	Address   string `json:"address"`
}

// especialidade escolhida no cadastro → categoria exibida na listagem
var specialtyCategories = map[string]string{
	"barbeiro":       "Barbearia",
	"cabeleireiro":   "Cabeleireiro",
	"manicure":       "Manicure",
	"esteticista":    "Estética",
	"maquiador":      "Maquiagem",
	"massoterapeuta": "Massoterapia",
}

func categoryFor(specialty string) string {
	if cat, ok := specialtyCategories[strings.ToLower(strings.TrimSpace(specialty))]; ok {
		return cat
	}
	return "Geral"
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Dados inválidos")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	switch {
	case len(req.Name) < 2:
		httperr.BadRequest(c, "Nome deve ter pelo menos 2 caracteres")
		return
	case !validators.IsEmailValid(req.Email):
		httperr.BadRequest(c, "E-mail inválido")
		return
	case !validators.IsEmailDomainValid(req.Email):
		httperr.BadRequest(c, "Domínio de e-mail inválido")
		return
	case len(req.Password) < 6:
		httperr.BadRequest(c, "Senha deve ter pelo menos 6 caracteres")
		return
	case !validators.IsPhoneValid(req.Phone):
		httperr.BadRequest(c, "Telefone deve ter 10 ou 11 dígitos")
		return
	case req.UserType != models.UserTypeClient && req.UserType != models.UserTypeProfessional:
		httperr.BadRequest(c, "Tipo de usuário inválido")
		return
	}

	if req.UserType == models.UserTypeProfessional {
		if strings.TrimSpace(req.Specialty) == "" || strings.TrimSpace(req.Address) == "" {
			httperr.BadRequest(c, "Profissionais devem informar especialidade e endereço")
			return
		}
	}

	var existing models.User
	if err := h.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		httperr.Conflict(c, "E-mail já cadastrado")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "Erro ao processar cadastro")
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Type:         req.UserType,
		Phone:        req.Phone,
		Address:      strings.TrimSpace(req.Address),
		Active:       true,
	}
	if req.UserType == models.UserTypeProfessional {
		user.Category = categoryFor(req.Specialty)
		user.Specialties = `["` + strings.TrimSpace(req.Specialty) + `"]`
	}

	if err := h.db.Create(&user).Error; err != nil {
		httperr.Internal(c, "Erro ao criar usuário")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "user_registered",
		Entity:   "user",
		EntityID: user.Email,
	})

	if err := h.setSessionCookie(c, &user); err != nil {
		httperr.Internal(c, "Erro ao iniciar sessão")
		return
	}

	httpresp.Payload(c, 201, gin.H{
		"message": "Cadastro realizado com sucesso",
		"user":    user,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Dados inválidos")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		httperr.Unauthorized(c, "E-mail ou senha incorretos")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "E-mail ou senha incorretos")
		return
	}

	if err := h.setSessionCookie(c, &user); err != nil {
		httperr.Internal(c, "Erro ao iniciar sessão")
		return
	}

	redirect := "/cliente"
	if user.IsProfessional() {
		redirect = "/barbeiro"
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "user_login",
		Entity:   "user",
		EntityID: user.Email,
	})

	httpresp.Payload(c, 200, gin.H{
		"message":  "Login realizado com sucesso",
		"user":     user,
		"redirect": redirect,
	})
}

// Logout sempre limpa o cookie, mesmo sem sessão válida.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	httpresp.Message(c, "Logout realizado com sucesso")
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserID)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.Unauthorized(c, "Sessão inválida ou expirada")
		return
	}

	httpresp.Payload(c, 200, gin.H{"user": user})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, user *models.User) error {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  float64(user.ID),
		"type": user.Type,
		"name": user.Name,
		"exp":  time.Now().Add(sessionDuration).Unix(),
		"iat":  time.Now().Unix(),
	})

	signed, err := token.SignedString([]byte(h.cfg.JWTSecret))
	if err != nil {
		return err
	}

	c.SetCookie(middleware.SessionCookie, signed, int(sessionDuration.Seconds()), "/", "", false, true)
	return nil
}
