// Package server exposes the tool set over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cloud-ru/mcp-espp-go/internal/config"
	"github.com/cloud-ru/mcp-espp-go/internal/tools"
	"github.com/cloud-ru/mcp-espp-go/internal/validators"
)

// maxBodyBytes bounds a tool request body
const maxBodyBytes = 1 << 20

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status string `json:"status"`
	Tools  int    `json:"tools"`
}

// Handler serves the tool endpoints
type Handler struct {
	toolset *tools.Toolset
}

// NewRouter builds the HTTP router
func NewRouter(cfg *config.Config, toolset *tools.Toolset) http.Handler {
	h := &Handler{toolset: toolset}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		ExposedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", h.Health)
	r.Handle("/metrics", promhttp.Handler())
	r.Route("/tools", func(r chi.Router) {
		r.Get("/", h.ListTools)
		r.Post("/{name}", h.CallTool)
	})

	return r
}

// Health reports liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, HealthResponse{Status: "healthy", Tools: len(h.toolset.List())})
}

// ListTools returns the registered tools
func (h *Handler) ListTools(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.toolset.List())
}

// CallTool decodes the JSON object body as tool params and runs the tool
func (h *Handler) CallTool(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	params := map[string]interface{}{}
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&params); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.toolset.Call(r.Context(), name, params)
	if err != nil {
		var verr *validators.Error
		switch {
		case errors.Is(err, tools.ErrUnknownTool):
			respondError(w, http.StatusNotFound, "tool not found", name)
		case errors.As(err, &verr):
			respondError(w, http.StatusBadRequest, "validation failed", verr.Fields)
		case errors.Is(err, tools.ErrInvalidParameter):
			respondError(w, http.StatusBadRequest, "invalid parameters", err.Error())
		default:
			slog.Error("tool call failed", "tool", name, "error", err)
			respondError(w, http.StatusInternalServerError, "tool call failed", err.Error())
		}
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Logger logs one line per request through slog
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		// Strip CR/LF from user-supplied values
		sanitize := strings.NewReplacer("\n", "", "\r", "").Replace
		slog.Info("http request",
			"method", sanitize(r.Method),
			"path", sanitize(r.URL.Path),
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", "error", err)
		}
	}
}

func respondError(w http.ResponseWriter, status int, message string, details interface{}) {
	respondJSON(w, status, ErrorResponse{Error: message, Details: details})
}
