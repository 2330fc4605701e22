package main

import (
	"io/fs"
	"log/slog"
	"net/http"

	"golang.org/x/time/rate"
)

// NewRouter poskládá všechny endpointy služby do jednoho handleru.
func NewRouter(web *WebHandler, api *APIHandler, metrics *Metrics, limiter *rate.Limiter, logger *slog.Logger) (http.Handler, error) {
	mux := http.NewServeMux()

	// Stránka
	mux.HandleFunc("GET /{$}", web.HandleIndex)
	mux.HandleFunc("POST /predict", web.HandlePredict)
	mux.HandleFunc("POST /predict/reset", web.HandleReset)

	static, err := fs.Sub(assets, "static")
	if err != nil {
		return nil, err
	}
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(static)))

	// API: vlastní mux obalený CORS a rate limitem
	apiMux := http.NewServeMux()
	api.RegisterRoutes(apiMux)
	mux.Handle("/api/", CorsMiddleware(RateLimitMiddleware(limiter, apiMux)))

	// Provoz
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status": "ok",
			"stats":  CollectStats(logger),
		}, logger)
	})
	mux.Handle("GET /metrics", metrics.Handler())

	return mux, nil
}
