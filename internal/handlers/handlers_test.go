package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/cortedigital/salon-api/internal/httperr"
	"github.com/cortedigital/salon-api/internal/middleware"
)

func ginContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestWriteBusinessErrorMapping(t *testing.T) {
	cases := []struct {
		code       string
		wantStatus int
	}{
		{"time_conflict", http.StatusConflict},
		{"in_the_past", http.StatusBadRequest},
		{"invalid_date_or_time", http.StatusBadRequest},
		{"service_not_found", http.StatusNotFound},
		{"appointment_not_found", http.StatusNotFound},
		{"invalid_state", http.StatusBadRequest},
		{"invalid_status", http.StatusBadRequest},
		{"already_past", http.StatusBadRequest},
	}

	for _, tc := range cases {
		c, w := ginContext(t)
		writeBusinessError(c, httperr.ErrBusiness(tc.code), "erro")

		if w.Code != tc.wantStatus {
			t.Errorf("%s: status = %d, want %d", tc.code, w.Code, tc.wantStatus)
		}

		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("%s: invalid body: %v", tc.code, err)
		}
		if body["success"] != false {
			t.Errorf("%s: success = %v, want false", tc.code, body["success"])
		}
		if msg, _ := body["message"].(string); msg == "" {
			t.Errorf("%s: empty message", tc.code)
		}
	}
}

func TestWriteBusinessErrorUnknown(t *testing.T) {
	c, w := ginContext(t)
	writeBusinessError(c, errors.New("boom"), "Erro ao criar agendamento")

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Erro ao criar agendamento") {
		t.Errorf("body missing fallback message: %s", w.Body.String())
	}
}

// Logout limpa o cookie mesmo sem sessão válida.
func TestLogoutAlwaysClearsCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := NewAuthHandler(nil, nil, nil)
	r := gin.New()
	r.POST("/api/auth/logout", h.Logout)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	cleared := false
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == middleware.SessionCookie && cookie.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("session cookie not cleared")
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if body["success"] != true {
		t.Errorf("success = %v, want true", body["success"])
	}
}
