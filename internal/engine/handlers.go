package engine

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mpetrov/edgefinder/internal/pkg/models"
)

// RegisterHTTP registers the dashboard endpoints onto mux.
func (e *Engine) RegisterHTTP(mux *http.ServeMux) {
	mux.HandleFunc("/", e.handleIndex)
	mux.HandleFunc("/run", e.handleRun)
}

// handleIndex is the idle prompt shown before any run.
func (e *Engine) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "idle",
		"message": "Send GET or POST /run with api_key to evaluate edges.",
	})
}

// handleRun is the single run trigger. Settings come from query parameters
// (GET) or a JSON body (POST). Every error becomes one user-visible message.
func (e *Engine) handleRun(w http.ResponseWriter, r *http.Request) {
	req, err := parseRunRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	result, err := e.RunOnce(r.Context(), req)
	if err != nil {
		status, msg := statusForError(err)
		writeJSON(w, status, map[string]string{"error": msg})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func parseRunRequest(r *http.Request) (RunRequest, error) {
	var req RunRequest

	if r.Method == http.MethodPost {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return req, models.NewValidationError("invalid request body: " + err.Error())
		}
		return req, nil
	}

	q := r.URL.Query()
	req.APIKey = q.Get("api_key")
	req.Query = q.Get("q")
	if req.Query == "" {
		req.Query = q.Get("query")
	}

	if v := q.Get("min_edge"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return req, models.NewValidationError("invalid min_edge: " + v)
		}
		req.MinEdgePercent = f
	}

	if v := q.Get("top10"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return req, models.NewValidationError("invalid top10: " + v)
		}
		req.ShowTop10 = b
	}

	return req, nil
}

// statusForError maps the run error taxonomy to HTTP statuses and a single
// user-facing message. Anything outside the taxonomy is the catch-all.
func statusForError(err error) (int, string) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, verr.Error()
	case errors.Is(err, models.ErrAuthentication):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, models.ErrQuotaExceeded):
		return http.StatusTooManyRequests, err.Error()
	case errors.Is(err, models.ErrUpstreamUnavailable):
		return http.StatusBadGateway, err.Error()
	default:
		return http.StatusInternalServerError, "unexpected error: " + err.Error()
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}
