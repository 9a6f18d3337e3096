package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/docslot/docslot-api/internal/auth"
	"github.com/docslot/docslot-api/internal/config"
)

func newAdminLoginRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &Handler{
		Cfg: &config.Config{
			AdminEmail:    "admin@docslot.dev",
			AdminPassword: "super-secret-pass",
		},
		Log:    zap.NewNop().Sugar(),
		Tokens: auth.NewTokens("test-secret"),
	}
	r := gin.New()
	r.POST("/api/admin/login", h.LoginAdmin)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestAdminLoginIssuesToken(t *testing.T) {
	r := newAdminLoginRouter()

	w := postJSON(r, "/api/admin/login",
		`{"email":"admin@docslot.dev","password":"super-secret-pass"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"token"`) {
		t.Fatalf("no token in body: %s", w.Body.String())
	}
}

func TestAdminLoginWrongPassword(t *testing.T) {
	r := newAdminLoginRouter()

	w := postJSON(r, "/api/admin/login",
		`{"email":"admin@docslot.dev","password":"wrong"}`)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `"success":false`) || !strings.Contains(body, "Invalid Credentials!") {
		t.Fatalf("unexpected body: %s", body)
	}
	if strings.Contains(body, `"token"`) {
		t.Fatal("failed login must not issue a token")
	}
}

func TestAdminLoginMissingFields(t *testing.T) {
	r := newAdminLoginRouter()

	w := postJSON(r, "/api/admin/login", `{"email":"admin@docslot.dev"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}
