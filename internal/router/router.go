package router

import (
	"net/http"

	"github.com/BerylCAtieno/data-question-api/internal/handlers"
	"github.com/BerylCAtieno/data-question-api/internal/middleware"
	"github.com/BerylCAtieno/data-question-api/internal/services"
	"github.com/BerylCAtieno/data-question-api/internal/utils"

	"github.com/gorilla/mux"
)

func NewRouter(answerService services.AnswerService, logger *utils.Logger, opts handlers.Options) http.Handler {
	r := mux.NewRouter()

	// Middlewares
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS())
	r.Use(middleware.Recovery(logger))

	answerHandler := handlers.NewAnswerHandler(answerService, logger, opts)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	}).Methods(http.MethodGet)

	// OPTIONS is routed so CORS preflight reaches the middleware.
	r.HandleFunc("/api", answerHandler.Ask).Methods(http.MethodPost, http.MethodOptions)

	return r
}
