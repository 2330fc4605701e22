package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solar-predictor/internal/prediction"
	"solar-predictor/internal/session"
)

// stubAPI napodobuje JSON API solar-web nad skutečným Trackerem.
func stubAPI(t *testing.T, delay time.Duration) *httptest.Server {
	t.Helper()
	tr := session.NewTracker(session.NewMemoryStore(time.Hour), session.WithDelay(delay))

	sessionID := func(w http.ResponseWriter, r *http.Request) string {
		if c, err := r.Cookie("solar_session"); err == nil {
			return c.Value
		}
		id := session.NewSessionID()
		http.SetCookie(w, &http.Cookie{Name: "solar_session", Value: id, Path: "/"})
		return id
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/prediction", func(w http.ResponseWriter, r *http.Request) {
		snap, _ := tr.Snapshot(r.Context(), sessionID(w, r))
		_ = json.NewEncoder(w).Encode(snap)
	})
	mux.HandleFunc("POST /api/prediction", func(w http.ResponseWriter, r *http.Request) {
		in, err := prediction.DecodeJSON(r.Body, prediction.DefaultInput(time.Now()))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		snap, _ := tr.Submit(r.Context(), sessionID(w, r), in)
		w.WriteHeader(http.StatusAccepted)
		_ = json.NewEncoder(w).Encode(snap)
	})
	mux.HandleFunc("POST /api/estimate", func(w http.ResponseWriter, r *http.Request) {
		in, _ := prediction.DecodeJSON(r.Body, prediction.Input{})
		_ = json.NewEncoder(w).Encode(map[string]any{"output": prediction.Estimate(in)})
	})

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func TestSubmitAndWait(t *testing.T) {
	ts := stubAPI(t, 20*time.Millisecond)
	c := NewAPIClient(ts.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	snap, err := c.Submit(ctx, prediction.DefaultInput(time.Now()))
	require.NoError(t, err)
	assert.Equal(t, session.StateComputing, snap.State)

	snap, err = c.WaitForResult(ctx, 5*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, session.StateResultReady, snap.State)
	assert.Equal(t, "91.14 kW", snap.Result)
}

func TestWaitWithoutSubmitFails(t *testing.T) {
	ts := stubAPI(t, time.Millisecond)
	c := NewAPIClient(ts.URL)

	snap, err := c.WaitForResult(context.Background(), time.Millisecond)
	assert.Error(t, err)
	assert.Equal(t, session.StateIdle, snap.State)
}

func TestWaitRespectsContext(t *testing.T) {
	ts := stubAPI(t, time.Hour)
	c := NewAPIClient(ts.URL)

	_, err := c.Submit(context.Background(), prediction.DefaultInput(time.Now()))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	_, err = c.WaitForResult(ctx, 5*time.Millisecond)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestEstimate(t *testing.T) {
	ts := stubAPI(t, time.Hour)
	c := NewAPIClient(ts.URL)

	out, err := c.Estimate(context.Background(), prediction.Input{Radiation: 450, Sunshine: 60, AirTemperature: 22, WindSpeed: 2.5})
	require.NoError(t, err)
	assert.Equal(t, "91.14 kW", out.String())
}

func TestUnexpectedStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusTooManyRequests)
	}))
	defer ts.Close()

	_, err := NewAPIClient(ts.URL).Current(context.Background())
	assert.ErrorContains(t, err, "429")
}
