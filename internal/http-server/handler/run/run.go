package run

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"logo-applier/internal/domain"
	"logo-applier/internal/http-server/handler/run/dto"
	"logo-applier/internal/usecase/apply"
	"logo-applier/internal/usecase/session"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/wb-go/wbf/zlog"
)

const maxBodySize = 1 << 20

type RunHandler struct {
	usecase  applyUsecase
	validate *validator.Validate
	logger   *zlog.Zerolog
}

func NewRunHandler(usecase applyUsecase, logger *zlog.Zerolog) *RunHandler {
	return &RunHandler{
		usecase:  usecase,
		validate: validator.New(),
		logger:   logger,
	}
}

// CreateRun runs a whole job synchronously and responds with its report.
func (h *RunHandler) CreateRun(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeRunRequest(w, r)
	if !ok {
		return
	}

	report, err := h.usecase.Execute(r.Context(), req.Job())
	if err != nil {
		h.handleApplyError(w, err)
		return
	}

	h.logger.Info().
		Str("job_id", report.JobID).
		Int("processed", report.Processed).
		Int("failed", report.Failed).
		Msg("Run completed")

	h.respondJSON(w, http.StatusOK, report)
}

func (h *RunHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeRunRequest(w, r)
	if !ok {
		return
	}

	state, err := h.usecase.StartSession(r.Context(), req.Job())
	if err != nil {
		h.handleApplyError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, dto.SessionResponse{Session: state})
}

func (h *RunHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	state, err := h.usecase.SessionState(chi.URLParam(r, "id"))
	if err != nil {
		h.handleApplyError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, dto.SessionResponse{Session: state})
}

// GetPreview streams the current image of a session as JPEG. Optional x and
// y query values draw the logo at that relative point.
func (h *RunHandler) GetPreview(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	hover, err := parseHover(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	var buf bytes.Buffer
	if err := h.usecase.Preview(r.Context(), id, hover, &buf); err != nil {
		h.handleApplyError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Error().Err(err).Str("session_id", id).Msg("Failed to stream preview")
	}
}

func (h *RunHandler) Click(w http.ResponseWriter, r *http.Request) {
	var req dto.ClickRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	state, report, err := h.usecase.Click(r.Context(), chi.URLParam(r, "id"), req.Point())
	h.respondDecision(w, state, report, err)
}

func (h *RunHandler) Skip(w http.ResponseWriter, r *http.Request) {
	state, report, err := h.usecase.Skip(r.Context(), chi.URLParam(r, "id"))
	h.respondDecision(w, state, report, err)
}

func (h *RunHandler) Stop(w http.ResponseWriter, r *http.Request) {
	state, report, err := h.usecase.Stop(r.Context(), chi.URLParam(r, "id"))
	h.respondDecision(w, state, report, err)
}

func (h *RunHandler) respondDecision(w http.ResponseWriter, state apply.SessionState, report *domain.BatchReport, err error) {
	if err != nil {
		h.handleApplyError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, dto.SessionResponse{Session: state, Report: report})
}

func (h *RunHandler) decodeRunRequest(w http.ResponseWriter, r *http.Request) (dto.RunRequest, bool) {
	req := dto.NewRunRequest()
	if !h.decodeJSON(w, r, &req) {
		return req, false
	}
	return req, true
}

func (h *RunHandler) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.logger.Warn().Err(err).Msg("Failed to decode request")
		h.respondError(w, http.StatusBadRequest, ErrInvalidBody.Error(), err)
		return false
	}

	if err := h.validate.Struct(v); err != nil {
		h.respondError(w, http.StatusBadRequest, ErrInvalidBody.Error(), err)
		return false
	}

	return true
}

func parseHover(r *http.Request) (*domain.Point, error) {
	q := r.URL.Query()
	xs, ys := q.Get("x"), q.Get("y")
	if xs == "" && ys == "" {
		return nil, nil
	}

	x, errX := strconv.ParseFloat(xs, 64)
	y, errY := strconv.ParseFloat(ys, 64)
	if errX != nil || errY != nil || x < 0 || x > 1 || y < 0 || y > 1 {
		return nil, fmt.Errorf("%w: x=%q y=%q", ErrInvalidHover, xs, ys)
	}

	return &domain.Point{X: x, Y: y}, nil
}

func (h *RunHandler) handleApplyError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apply.ErrSourceNotFound),
		errors.Is(err, apply.ErrLogoNotFound),
		errors.Is(err, apply.ErrInvalidLogo),
		errors.Is(err, apply.ErrDestinationRequired),
		errors.Is(err, apply.ErrInvalidOptions):
		h.logger.Warn().Err(err).Msg("Rejected run input")
		h.respondError(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, apply.ErrNoImages), errors.Is(err, apply.ErrNoPositions):
		h.respondError(w, http.StatusUnprocessableEntity, err.Error(), nil)
	case errors.Is(err, session.ErrSessionNotFound):
		h.respondError(w, http.StatusNotFound, "Session not found", nil)
	case errors.Is(err, session.ErrSessionClosed):
		h.respondError(w, http.StatusConflict, "Session already finished", nil)
	default:
		h.logger.Error().Err(err).Msg("Request failed")
		h.respondError(w, http.StatusInternalServerError, "Internal error", err)
	}
}

func (h *RunHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

func (h *RunHandler) respondError(w http.ResponseWriter, status int, message string, err error) {
	response := dto.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	}

	if err != nil {
		response.Details = err.Error()
	}

	h.respondJSON(w, status, response)
}
