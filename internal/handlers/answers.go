package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/BerylCAtieno/data-question-api/internal/middleware"
	"github.com/BerylCAtieno/data-question-api/internal/models"
	"github.com/BerylCAtieno/data-question-api/internal/services"
	"github.com/BerylCAtieno/data-question-api/internal/utils"
)

const (
	// multipartMemory is how much of a multipart body is held in memory
	// before the rest spills to disk.
	multipartMemory = 8 << 20
)

type AnswerHandler struct {
	service       services.AnswerService
	logger        *utils.Logger
	maxUploadSize int64
	typedStatus   bool
}

type Options struct {
	MaxUploadSize int64
	// TypedStatus maps each error kind to its own status code instead of
	// answering every failure with 500.
	TypedStatus bool
}

func NewAnswerHandler(service services.AnswerService, logger *utils.Logger, opts Options) *AnswerHandler {
	return &AnswerHandler{
		service:       service,
		logger:        logger,
		maxUploadSize: opts.MaxUploadSize,
		typedStatus:   opts.TypedStatus,
	}
}

func (h *AnswerHandler) Ask(w http.ResponseWriter, r *http.Request) {
	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}

	req, err := h.readRequest(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	resp, err := h.service.Answer(r.Context(), req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, resp)
}

func (h *AnswerHandler) readRequest(r *http.Request) (*models.AskRequest, error) {
	err := r.ParseMultipartForm(multipartMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		err = r.ParseForm()
	}
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			return nil, utils.NewInputError("request body too large", err)
		}
		return nil, utils.NewInputError("invalid form data", err)
	}

	req := &models.AskRequest{Question: r.PostFormValue("question")}
	if r.MultipartForm == nil {
		return req, nil
	}

	file, header, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		return req, nil
	}
	if err != nil {
		return nil, utils.NewInputError("invalid file upload", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, utils.NewInputError("failed to read uploaded file", err)
	}

	req.File = &models.UploadedFile{Name: header.Filename, Data: data}
	return req, nil
}

func (h *AnswerHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode JSON response", "error", err)
	}
}

func (h *AnswerHandler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	kind := utils.KindOf(err)
	status := StatusFor(kind, h.typedStatus)

	h.logger.Error("Request failed",
		"status", status,
		"kind", kind,
		"error", err.Error(),
		"request_id", middleware.RequestIDFrom(r.Context()))

	h.respondJSON(w, status, models.ErrorResponse{Error: err.Error()})
}

// StatusFor maps an error kind to a response status. Without typed
// statuses every failure is a 500.
func StatusFor(kind utils.ErrorKind, typed bool) int {
	if !typed {
		return http.StatusInternalServerError
	}

	switch kind {
	case utils.KindInput:
		return http.StatusBadRequest
	case utils.KindExtraction, utils.KindParse:
		return http.StatusUnprocessableEntity
	case utils.KindUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
