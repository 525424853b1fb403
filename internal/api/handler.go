package api

import (
	"encoding/json"
	"net/http"

	"github.com/emicklei/go-restful/v3"
	"github.com/rs/zerolog"

	"docrag/internal/domain"
	"docrag/internal/usecase"
)

type Handler struct {
	service *usecase.RetrieveUseCase
	logger  *zerolog.Logger
}

func NewHandler(service *usecase.RetrieveUseCase, logger *zerolog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// ErrorResponse is the wire shape of a tagged failure.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// HealthResponse reports service liveness.
type HealthResponse struct {
	Status string `json:"status"`
}

// POST /api/v1/search
// Body: any payload shape the normalizer accepts.
func (h *Handler) Search(req *restful.Request, resp *restful.Response) {
	payload, ok := h.readPayload(req, resp)
	if !ok {
		return
	}

	result, err := h.service.Search(req.Request.Context(), payload)
	if err != nil {
		h.writeError(resp, err)
		return
	}
	resp.WriteHeaderAndEntity(http.StatusOK, result)
}

// POST /api/v1/fetch
func (h *Handler) Fetch(req *restful.Request, resp *restful.Response) {
	payload, ok := h.readPayload(req, resp)
	if !ok {
		return
	}

	result, err := h.service.Fetch(req.Request.Context(), payload)
	if err != nil {
		h.writeError(resp, err)
		return
	}
	resp.WriteHeaderAndEntity(http.StatusOK, result)
}

// GET /api/v1/health
func (h *Handler) Health(req *restful.Request, resp *restful.Response) {
	resp.WriteHeaderAndEntity(http.StatusOK, HealthResponse{Status: "ok"})
}

// readPayload decodes the body without imposing a shape; the normalizer
// owns shape tolerance.
func (h *Handler) readPayload(req *restful.Request, resp *restful.Response) (any, bool) {
	var payload any
	if err := json.NewDecoder(req.Request.Body).Decode(&payload); err != nil {
		h.logger.Warn().Err(err).Msg("unreadable request body")
		resp.WriteHeaderAndEntity(http.StatusBadRequest, ErrorResponse{
			Error:   "bad_request",
			Message: "request body is not valid JSON",
		})
		return nil, false
	}
	return payload, true
}

func (h *Handler) writeError(resp *restful.Response, err error) {
	code := domain.ErrorCode(err)
	status := http.StatusInternalServerError
	switch code {
	case domain.CodeInvalidQuery, domain.CodeInvalidID:
		status = http.StatusBadRequest
	case domain.CodeSearchFailed, domain.CodeFetchFailed:
		status = http.StatusBadGateway
	}
	if code == "" {
		code = "internal"
	}

	h.logger.Error().Err(err).Str("code", code).Msg("request failed")
	resp.WriteHeaderAndEntity(status, ErrorResponse{Error: code, Message: err.Error()})
}
