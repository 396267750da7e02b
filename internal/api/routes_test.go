package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Kamar-Folarin/portfolio-api/internal/models"
)

func TestRouteRegistration(t *testing.T) {
	handler, mockProjects, mockSync := setupTestHandler(nil)
	router := SetupRouter(handler, RouterConfig{JWTSecret: testSecret, AllowedOrigins: []string{"*"}}, testLogger())

	mockProjects.On("List", mock.Anything, mock.Anything).
		Return(&models.ProjectPage{Data: []*models.Project{}, Meta: models.PageMeta{Page: 1, PerPage: 9, TotalPages: 1}}, nil)
	mockSync.On("Sync", mock.Anything, 0).Return(&models.SyncSummary{}, nil)

	token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), adminClaims(time.Hour))

	tests := []struct {
		name           string
		method         string
		path           string
		authorized     bool
		expectedStatus int
	}{
		{"health", http.MethodGet, "/api/health", false, http.StatusOK},
		{"list projects is public", http.MethodGet, "/api/projects", false, http.StatusOK},
		{"create requires auth", http.MethodPost, "/api/projects", false, http.StatusUnauthorized},
		{"update requires auth", http.MethodPut, "/api/projects/" + testProjectID, false, http.StatusUnauthorized},
		{"delete requires auth", http.MethodDelete, "/api/projects/" + testProjectID, false, http.StatusUnauthorized},
		{"sync requires auth", http.MethodPost, "/api/projects/sync", false, http.StatusUnauthorized},
		{"sync with token", http.MethodPost, "/api/projects/sync", true, http.StatusOK},
		{"unknown route", http.MethodGet, "/api/unknown", false, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.authorized {
				req.Header.Set("Authorization", "Bearer "+token)
			}
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestMiddlewareSetup(t *testing.T) {
	t.Run("any origin", func(t *testing.T) {
		handler, _, _ := setupTestHandler(nil)
		router := SetupRouter(handler, RouterConfig{JWTSecret: testSecret, AllowedOrigins: []string{"*"}}, testLogger())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		req.Header.Set("Origin", "https://portfolio.example.com")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("listed origins", func(t *testing.T) {
		handler, _, _ := setupTestHandler(nil)
		router := SetupRouter(handler, RouterConfig{
			JWTSecret:      testSecret,
			AllowedOrigins: []string{"https://portfolio.example.com"},
		}, testLogger())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, "/api/projects", nil)
		req.Header.Set("Origin", "https://portfolio.example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		router.ServeHTTP(w, req)

		assert.Equal(t, "https://portfolio.example.com", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")

		w = httptest.NewRecorder()
		req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
