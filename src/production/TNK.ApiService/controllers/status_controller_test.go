package controllers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type fakeHealth struct {
	err error
}

func (f *fakeHealth) CheckDatabaseHealth(ctx context.Context) error {
	return f.err
}

func newStatusRouter(health *fakeHealth) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewStatusController(health, testLogger()).RegisterRoutes(router)
	NewReadingController(&fakeReadingRepo{}, testLogger()).RegisterRoutes(router)
	return router
}

func TestRootStatus(t *testing.T) {
	router := newStatusRouter(&fakeHealth{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	body := decodeBody(t, w)
	for _, field := range []string{"message", "status", "version", "timestamp"} {
		if body[field] == nil || body[field] == "" {
			t.Errorf("response missing field %q: %v", field, body)
		}
	}
	if body["version"] != Version {
		t.Errorf("version = %v, want %v", body["version"], Version)
	}
}

func TestDatabaseStatusConnected(t *testing.T) {
	router := newStatusRouter(&fakeHealth{})

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	body := decodeBody(t, w)
	if body["database"] != "conectado" {
		t.Errorf("database = %v, want conectado", body["database"])
	}
	if body["timestamp"] == nil {
		t.Error("timestamp not set")
	}
}

func TestDatabaseStatusError(t *testing.T) {
	router := newStatusRouter(&fakeHealth{err: fmt.Errorf("dial tcp: connection refused")})

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
	body := decodeBody(t, w)
	if body["database"] != "erro" {
		t.Errorf("database = %v, want erro", body["database"])
	}
	if body["error"] == nil || body["error"] == "" {
		t.Error("error text not surfaced")
	}
}

func TestUnmatchedRouteReturnsStructured404(t *testing.T) {
	router := newStatusRouter(&fakeHealth{})

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/nao-existe"},
		{http.MethodDelete, "/api/leituras"},
		{http.MethodPost, "/api/status"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusNotFound {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusNotFound)
			}

			body := decodeBody(t, w)
			if body["path"] != tt.path {
				t.Errorf("path = %v, want %v", body["path"], tt.path)
			}
			if body["method"] != tt.method {
				t.Errorf("method = %v, want %v", body["method"], tt.method)
			}
			routes, ok := body["rotas_disponiveis"].([]interface{})
			if !ok || len(routes) != len(availableRoutes) {
				t.Errorf("rotas_disponiveis = %v, want %d routes", body["rotas_disponiveis"], len(availableRoutes))
			}
		})
	}
}
