package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/cortedigital/salon-api/internal/config"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func validToken(t *testing.T) string {
	return signToken(t, testSecret, jwt.MapClaims{
		"sub":  float64(42),
		"type": "professional",
		"name": "Ana",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
}

func TestParseSession(t *testing.T) {
	userID, userType, name, err := ParseSession(validToken(t), testSecret)
	if err != nil {
		t.Fatalf("ParseSession: %v", err)
	}
	if userID != 42 || userType != "professional" || name != "Ana" {
		t.Errorf("claims = (%d, %s, %s), want (42, professional, Ana)", userID, userType, name)
	}
}

func TestParseSessionWrongSecret(t *testing.T) {
	if _, _, _, err := ParseSession(validToken(t), "outro-segredo"); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

func TestParseSessionExpired(t *testing.T) {
	expired := signToken(t, testSecret, jwt.MapClaims{
		"sub": float64(42),
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	if _, _, _, err := ParseSession(expired, testSecret); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{JWTSecret: testSecret}

	r := gin.New()
	r.GET("/private", AuthMiddleware(cfg), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":   c.GetUint(ContextUserID),
			"user_type": c.GetString(ContextUserType),
		})
	})
	return r
}

func TestAuthMiddlewareNoToken(t *testing.T) {
	r := newAuthRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuthMiddlewareCookie(t *testing.T) {
	r := newAuthRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: validToken(t)})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}
}

func TestAuthMiddlewareBearer(t *testing.T) {
	r := newAuthRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+validToken(t))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestAuthMiddlewareQueryToken(t *testing.T) {
	r := newAuthRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private?token="+validToken(t), nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestAuthMiddlewareGarbageToken(t *testing.T) {
	r := newAuthRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer nao-e-um-jwt")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestRequireProfessional(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{JWTSecret: testSecret}

	r := gin.New()
	r.GET("/pro", AuthMiddleware(cfg), RequireProfessional(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	clientToken := signToken(t, testSecret, jwt.MapClaims{
		"sub":  float64(7),
		"type": "client",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/pro", nil)
	req.Header.Set("Authorization", "Bearer "+clientToken)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("client status = %d, want 401", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/pro", nil)
	req.Header.Set("Authorization", "Bearer "+validToken(t))
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("professional status = %d, want 200", w.Code)
	}
}
