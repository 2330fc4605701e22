package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/time/rate"

	"solar-predictor/internal/prediction"
	"solar-predictor/internal/session"
)

// APIHandler obsluhuje JSON API nad stejným stavovým automatem jako stránka.
type APIHandler struct {
	tracker *session.Tracker
	metrics *Metrics
	logger  *slog.Logger
}

// NewAPIHandler vytváří novou instanci handleru.
func NewAPIHandler(tracker *session.Tracker, metrics *Metrics, logger *slog.Logger) *APIHandler {
	return &APIHandler{tracker: tracker, metrics: metrics, logger: logger}
}

// RegisterRoutes mapuje URL cesty API.
func (h *APIHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/prediction", h.handleGetPrediction)
	mux.HandleFunc("POST /api/prediction", h.handleSubmitPrediction)
	mux.HandleFunc("POST /api/estimate", h.handleEstimate)
}

// handleGetPrediction: GET /api/prediction
func (h *APIHandler) handleGetPrediction(w http.ResponseWriter, r *http.Request) {
	id := ensureSession(w, r)

	snap, err := h.tracker.Snapshot(r.Context(), id)
	if err != nil {
		h.logger.Error("Chyba načítání session", "session", id, "error", err)
		http.Error(w, "Interní chyba serveru", http.StatusInternalServerError)
		return
	}
	h.metrics.ObserveRead(snap)

	writeJSON(w, http.StatusOK, snap, h.logger)
}

// handleSubmitPrediction: POST /api/prediction (JSON nebo formulář)
func (h *APIHandler) handleSubmitPrediction(w http.ResponseWriter, r *http.Request) {
	in, err := decodeInput(r, prediction.DefaultInput(h.tracker.Now()))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id := ensureSession(w, r)
	snap, err := h.tracker.Submit(r.Context(), id, in)
	if err != nil {
		h.logger.Error("Chyba při odeslání predikce", "session", id, "error", err)
		http.Error(w, "Interní chyba serveru", http.StatusInternalServerError)
		return
	}
	h.metrics.ObserveSubmit("api", snap)

	writeJSON(w, http.StatusAccepted, snap, h.logger)
}

// EstimateResponse je odpověď POST /api/estimate.
type EstimateResponse struct {
	Input  prediction.Input  `json:"input"`
	Output prediction.Output `json:"output"`
	Result string            `json:"result"`
}

// handleEstimate: POST /api/estimate (okamžitý výpočet bez session a bez prodlevy)
func (h *APIHandler) handleEstimate(w http.ResponseWriter, r *http.Request) {
	in, err := decodeInput(r, prediction.DefaultInput(h.tracker.Now()))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	out := prediction.Estimate(in)
	writeJSON(w, http.StatusOK, EstimateResponse{Input: in, Output: out, Result: out.String()}, h.logger)
}

// decodeInput načte vstup z JSON těla, jinak z formuláře.
func decodeInput(r *http.Request, base prediction.Input) (prediction.Input, error) {
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		return prediction.DecodeJSON(r.Body, base)
	}
	if err := r.ParseForm(); err != nil {
		return base, err
	}
	return prediction.FromForm(r.PostForm, base), nil
}

// writeJSON nejdřív serializuje do bufferu, teprve potom posílá hlavičku.
// Při chybě serializace tak klient dostane 500, ne prázdné tělo se statusem 200.
func writeJSON(w http.ResponseWriter, status int, v any, logger *slog.Logger) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		logger.Error("Chyba při serializaci JSON odpovědi", "error", err)
		http.Error(w, "Interní chyba serveru", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		logger.Error("Chyba při zápisu JSON odpovědi", "error", err)
	}
}

// CorsMiddleware povolí volání API z jiné domény (např. z frontendu na jiném portu).
func CorsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		// Preflight request končí tady.
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RateLimitMiddleware omezí počet požadavků (token bucket), při překročení vrací 429.
func RateLimitMiddleware(limiter *rate.Limiter, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			w.Header().Set("Retry-After", "1")
			http.Error(w, "Příliš mnoho požadavků", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
