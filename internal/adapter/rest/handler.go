package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Vitesh21/konix/internal/domain"
	"github.com/Vitesh21/konix/internal/usecase/query"
)

// Handler maps HTTP requests onto the query service. It owns boundary
// validation: coin identifiers are checked against the tracked set here,
// before any core call happens.
type Handler struct {
	Query  *query.QueryService
	Logger *slog.Logger
}

// NewHandler creates a new REST handler
func NewHandler(q *query.QueryService, logger *slog.Logger) *Handler {
	return &Handler{Query: q, Logger: logger}
}

// Routes registers the API endpoints on a fresh mux
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /", h.handleIndex)
	mux.HandleFunc("GET /api/stats", h.handleStats)
	mux.HandleFunc("GET /api/deviation", h.handleDeviation)
	return mux
}

// statsResponse matches the original public API shape, including the
// "24hChange" field name.
type statsResponse struct {
	Price     float64 `json:"price"`
	MarketCap float64 `json:"marketCap"`
	DayChange float64 `json:"24hChange"`
}

type deviationResponse struct {
	Deviation float64 `json:"deviation"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		h.writeError(w, http.StatusNotFound, "not found")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"message": "Cryptocurrency Statistics API",
		"endpoints": map[string]string{
			"stats":     "/api/stats?coin=[bitcoin|ethereum|matic-network]",
			"deviation": "/api/deviation?coin=[bitcoin|ethereum|matic-network]",
		},
	})
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	coin, ok := h.parseCoin(w, r)
	if !ok {
		return
	}

	obs, err := h.Query.Latest(r.Context(), coin)
	if err != nil {
		h.writeQueryError(w, coin, err)
		return
	}

	h.writeJSON(w, http.StatusOK, statsResponse{
		Price:     obs.Price,
		MarketCap: obs.MarketCap,
		DayChange: obs.DayChange,
	})
}

func (h *Handler) handleDeviation(w http.ResponseWriter, r *http.Request) {
	coin, ok := h.parseCoin(w, r)
	if !ok {
		return
	}

	deviation, err := h.Query.Deviation(r.Context(), coin)
	if err != nil {
		h.writeQueryError(w, coin, err)
		return
	}

	h.writeJSON(w, http.StatusOK, deviationResponse{Deviation: deviation})
}

// parseCoin validates the coin query parameter at the boundary. On failure
// it writes the client error and reports ok=false; the core is never
// reached with an unsupported identifier.
func (h *Handler) parseCoin(w http.ResponseWriter, r *http.Request) (domain.Asset, bool) {
	raw := r.URL.Query().Get("coin")
	if raw == "" {
		h.writeError(w, http.StatusBadRequest, "coin parameter is required")
		return "", false
	}

	coin, err := domain.ParseAsset(raw)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return "", false
	}
	return coin, true
}

func (h *Handler) writeQueryError(w http.ResponseWriter, coin domain.Asset, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		h.writeError(w, http.StatusNotFound, "no stats found for the specified coin")
		return
	}
	h.Logger.Error("query failed", "coin", coin, "err", err)
	h.writeError(w, http.StatusInternalServerError, "internal server error")
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.Logger.Error("failed to encode response", "err", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, errorResponse{Error: msg})
}
