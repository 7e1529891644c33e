package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/cortedigital/salon-api/internal/middleware"
	"github.com/cortedigital/salon-api/internal/models"
)

func reviewRouter(userType string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := NewReviewHandler(nil, nil)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserID, uint(7))
		c.Set(middleware.ContextUserType, userType)
		c.Set(middleware.ContextUserName, "João")
	})
	r.POST("/api/reviews", h.Create)
	return r
}

// Profissionais não avaliam: a guarda roda antes de qualquer acesso a banco.
func TestCreateReviewRejectsProfessional(t *testing.T) {
	r := reviewRouter(models.UserTypeProfessional)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/reviews",
		strings.NewReader(`{"appointment_id":"AGD-1","rating":5}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Apenas clientes podem avaliar") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestCreateReviewRejectsRatingOutOfRange(t *testing.T) {
	r := reviewRouter(models.UserTypeClient)

	for _, body := range []string{
		`{"appointment_id":"AGD-1","rating":0}`,
		`{"appointment_id":"AGD-1","rating":6}`,
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/reviews", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", body, w.Code)
		}
	}
}

func TestCreateReviewRequiresAppointment(t *testing.T) {
	r := reviewRouter(models.UserTypeClient)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/reviews",
		strings.NewReader(`{"rating":4}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
