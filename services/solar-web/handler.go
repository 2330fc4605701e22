package main

import (
	"embed"
	"encoding/json"
	"html/template"
	"log/slog"
	"math"
	"net/http"
	"time"

	"solar-predictor/internal/prediction"
	"solar-predictor/internal/session"
)

//go:embed templates/*.html static/*
var assets embed.FS

const sessionCookie = "solar_session"

// Feature je jedna karta v sekci "features".
type Feature struct {
	Icon  string
	Title string
	Desc  string
}

var features = []Feature{
	{Icon: "cpu", Title: "Adaptive AI Core", Desc: "Our algorithms learn from historical weather patterns to refine predictions in real-time."},
	{Icon: "leaf", Title: "Eco-Optimization", Desc: "Maximize renewable energy usage and reduce reliance on the grid through smart forecasting."},
	{Icon: "zap", Title: "Instant Analysis", Desc: "Get immediate production estimates based on current environmental variables."},
}

var highlights = []string{"Neural Network Processing", "Real-time Weather Integration", "Historical Trend Analysis"}

// FieldView je pole formuláře spolu s aktuální hodnotou.
type FieldView struct {
	prediction.Field
	Value string
}

// PageData jsou data pro šablonu layout.html.
type PageData struct {
	Title      string
	Features   []Feature
	Highlights []string
	Fields     []FieldView
	Snapshot   session.Snapshot

	// RefreshSeconds > 0 = stránka se sama obnoví (stav computing).
	RefreshSeconds int
	Year           int
}

// WebHandler renderuje HTML stránku a obsluhuje odeslání formuláře.
type WebHandler struct {
	tracker *session.Tracker
	metrics *Metrics
	logger  *slog.Logger
	tmpl    *template.Template
}

// NewWebHandler načte šablony z vestavěného FS.
func NewWebHandler(tracker *session.Tracker, metrics *Metrics, logger *slog.Logger) (*WebHandler, error) {
	funcMap := template.FuncMap{
		"to_json": func(v interface{}) template.JS {
			a, err := json.Marshal(v)
			if err != nil {
				return template.JS("null")
			}
			return template.JS(a)
		},
		"is_state": func(snap session.Snapshot, state string) bool {
			return string(snap.State) == state
		},
	}

	tmpl, err := template.New("base").Funcs(funcMap).ParseFS(assets, "templates/*.html")
	if err != nil {
		return nil, err
	}

	return &WebHandler{
		tracker: tracker,
		metrics: metrics,
		logger:  logger,
		tmpl:    tmpl,
	}, nil
}

// HandleIndex: GET / (celá stránka včetně stavu formuláře)
func (h *WebHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	id, _ := sessionFromRequest(r)

	snap, err := h.tracker.Snapshot(r.Context(), id)
	if err != nil {
		h.logger.Error("Chyba načítání session", "error", err)
		http.Error(w, "Session nedostupná", http.StatusInternalServerError)
		return
	}
	h.metrics.ObserveRead(snap)

	data := PageData{
		Title:      "AI Solar Predictor",
		Features:   features,
		Highlights: highlights,
		Fields:     fieldViews(snap.Input),
		Snapshot:   snap,
		Year:       h.tracker.Now().Year(),
	}
	if rem := snap.Remaining(h.tracker.Now()); rem > 0 {
		// meta refresh bere celé sekundy
		data.RefreshSeconds = int(math.Ceil(rem.Seconds()))
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.ExecuteTemplate(w, "layout.html", data); err != nil {
		h.logger.Error("Chyba renderování", "error", err)
	}
}

// HandlePredict: POST /predict (odeslání formuláře)
func (h *WebHandler) HandlePredict(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Neplatný formulář", http.StatusBadRequest)
		return
	}

	id := ensureSession(w, r)
	in := prediction.FromForm(r.PostForm, prediction.DefaultInput(h.tracker.Now()))

	snap, err := h.tracker.Submit(r.Context(), id, in)
	if err != nil {
		h.logger.Error("Chyba při odeslání predikce", "error", err)
		http.Error(w, "Session nedostupná", http.StatusInternalServerError)
		return
	}
	h.metrics.ObserveSubmit("form", snap)
	h.logger.Info("Predikce přijata", "session", id, "seq", snap.Seq, "replaced", snap.Replaced)

	http.Redirect(w, r, "/#predict-section", http.StatusSeeOther)
}

// HandleReset: POST /predict/reset (zpět na prázdný formulář)
func (h *WebHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	if id, ok := sessionFromRequest(r); ok {
		if err := h.tracker.Reset(r.Context(), id); err != nil {
			h.logger.Error("Chyba při resetu session", "error", err)
			http.Error(w, "Session nedostupná", http.StatusInternalServerError)
			return
		}
	}
	http.Redirect(w, r, "/#predict-section", http.StatusSeeOther)
}

func fieldViews(in prediction.Input) []FieldView {
	fs := prediction.Fields()
	out := make([]FieldView, 0, len(fs))
	for _, f := range fs {
		out = append(out, FieldView{Field: f, Value: in.Value(f.Name)})
	}
	return out
}

// sessionFromRequest vrátí ID session z cookie.
func sessionFromRequest(r *http.Request) (string, bool) {
	c, err := r.Cookie(sessionCookie)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

// ensureSession vrátí existující ID session, nebo založí nové a nastaví cookie.
func ensureSession(w http.ResponseWriter, r *http.Request) string {
	if id, ok := sessionFromRequest(r); ok {
		return id
	}
	id := session.NewSessionID()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(24 * time.Hour),
	})
	return id
}
