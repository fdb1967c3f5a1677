package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BerylCAtieno/data-question-api/internal/handlers"
	"github.com/BerylCAtieno/data-question-api/internal/middleware"
	"github.com/BerylCAtieno/data-question-api/internal/models"
	"github.com/BerylCAtieno/data-question-api/internal/utils"
)

type echoService struct{}

func (echoService) Answer(_ context.Context, req *models.AskRequest) (*models.AnswerResponse, error) {
	return &models.AnswerResponse{Answer: "echo: " + req.Question}, nil
}

func TestRouter_Health(t *testing.T) {
	h := NewRouter(echoService{}, utils.Discard(), handlers.Options{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

func TestRouter_Ask(t *testing.T) {
	h := NewRouter(echoService{}, utils.Discard(), handlers.Options{})

	form := url.Values{"question": {"ping"}}
	req := httptest.NewRequest(http.MethodPost, "/api", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"answer":"echo: ping"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	h := NewRouter(echoService{}, utils.Discard(), handlers.Options{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRouter_Preflight(t *testing.T) {
	h := NewRouter(echoService{}, utils.Discard(), handlers.Options{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
