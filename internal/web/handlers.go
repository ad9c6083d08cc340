package web

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/justestif/go-spotify-mood-finder/internal/db"
	"github.com/justestif/go-spotify-mood-finder/internal/mood"
	"github.com/justestif/go-spotify-mood-finder/internal/recommend"
)

// maxUploadBytes bounds multipart image uploads.
const maxUploadBytes = 10 << 20

// HistoryStore lists recent requests.
type HistoryStore interface {
	Recent(ctx context.Context, limit int) ([]db.Request, error)
}

// Handlers contains HTTP handlers for the API.
type Handlers struct {
	svc     *recommend.Service
	history HistoryStore
	logger  *slog.Logger
	now     func() time.Time
}

// NewHandlers creates a new Handlers instance. history may be nil.
func NewHandlers(svc *recommend.Service, history HistoryStore, logger *slog.Logger) *Handlers {
	return &Handlers{
		svc:     svc,
		history: history,
		logger:  logger,
		now:     time.Now,
	}
}

type analyzeMoodRequest struct {
	Mood string `json:"mood"`
}

type analyzeImageRequest struct {
	ImageSignals *mood.ImageSignals `json:"imageSignals"`
}

// Health reports that the API is running (GET /health).
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// AnalyzeMood classifies a mood description (POST /api/analyze-mood).
func (h *Handlers) AnalyzeMood(w http.ResponseWriter, r *http.Request) {
	var req analyzeMoodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.svc.AnalyzeMood(r.Context(), req.Mood)
	if err != nil {
		h.writeServiceError(w, err, "Failed to analyze mood")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// AnalyzeImage classifies an image (POST /api/analyze-image).
// It accepts a multipart upload in the "image" field, whose name and size
// are combined with the current time, or JSON with explicit imageSignals.
func (h *Handlers) AnalyzeImage(w http.ResponseWriter, r *http.Request) {
	signals, ok := h.imageSignals(w, r)
	if !ok {
		return
	}

	result, err := h.svc.AnalyzeImage(r.Context(), signals)
	if err != nil {
		h.writeServiceError(w, err, "Failed to analyze image")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// imageSignals reads signals from the request, writing a 400 on failure.
func (h *Handlers) imageSignals(w http.ResponseWriter, r *http.Request) (*mood.ImageSignals, bool) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	if mediaType == "multipart/form-data" {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		file, header, err := r.FormFile("image")
		if err != nil {
			writeError(w, http.StatusBadRequest, "Image is required")
			return nil, false
		}
		file.Close()

		signals := mood.SignalsFrom(header.Filename, header.Size, h.now())
		return &signals, true
	}

	var req analyzeImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}
	return req.ImageSignals, true
}

// History lists recent requests (GET /api/history?limit=N).
func (h *Handlers) History(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		writeError(w, http.StatusNotImplemented, "history is not configured")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	requests, err := h.history.Recent(r.Context(), limit)
	if err != nil {
		h.logger.Error("listing history failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load history")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"requests": requests})
}

// writeServiceError maps the service error taxonomy onto HTTP responses.
// Upstream details are logged by the service and replaced with fallback here.
func (h *Handlers) writeServiceError(w http.ResponseWriter, err error, fallback string) {
	var recErr *recommend.Error
	if !errors.As(err, &recErr) {
		h.logger.Error("unexpected service error", "error", err)
		writeError(w, http.StatusInternalServerError, fallback)
		return
	}

	switch recErr.Kind {
	case recommend.KindValidation:
		writeError(w, http.StatusBadRequest, recErr.Message)
	case recommend.KindConfiguration:
		writeError(w, http.StatusInternalServerError, recErr.Message)
	default:
		writeError(w, http.StatusBadGateway, fallback)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
