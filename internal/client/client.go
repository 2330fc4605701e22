package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"

	"solar-predictor/internal/prediction"
	"solar-predictor/internal/session"
)

// APIClient volá JSON API služby solar-web.
// Session cookie si drží v cookie jar, takže Submit a Current mluví o stejné session.
type APIClient struct {
	BaseURL    string // např. http://localhost:8080
	httpClient *http.Client
}

// NewAPIClient vytvoří klienta s timeoutem 5 s na jeden request.
func NewAPIClient(baseURL string) *APIClient {
	jar, _ := cookiejar.New(nil) // s nil options nikdy nevrací chybu
	return &APIClient{
		BaseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
			Jar:     jar,
		},
	}
}

// Submit odešle vstupy (POST /api/prediction) a vrátí stav computing.
func (c *APIClient) Submit(ctx context.Context, in prediction.Input) (session.Snapshot, error) {
	var snap session.Snapshot
	err := c.do(ctx, http.MethodPost, "/api/prediction", in, http.StatusAccepted, &snap)
	return snap, err
}

// Current vrátí aktuální stav session (GET /api/prediction).
func (c *APIClient) Current(ctx context.Context) (session.Snapshot, error) {
	var snap session.Snapshot
	err := c.do(ctx, http.MethodGet, "/api/prediction", nil, http.StatusOK, &snap)
	return snap, err
}

// Estimate spočítá výsledek okamžitě, bez prodlevy a bez session (POST /api/estimate).
func (c *APIClient) Estimate(ctx context.Context, in prediction.Input) (prediction.Output, error) {
	var resp struct {
		Output prediction.Output `json:"output"`
	}
	err := c.do(ctx, http.MethodPost, "/api/estimate", in, http.StatusOK, &resp)
	return resp.Output, err
}

// WaitForResult se dotazuje každých poll, dokud není výsledek hotový nebo nevyprší ctx.
func (c *APIClient) WaitForResult(ctx context.Context, poll time.Duration) (session.Snapshot, error) {
	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	for {
		snap, err := c.Current(ctx)
		if err != nil {
			return snap, err
		}
		switch snap.State {
		case session.StateResultReady:
			return snap, nil
		case session.StateIdle:
			return snap, fmt.Errorf("session je ve stavu idle, nejdřív zavolej Submit")
		}

		select {
		case <-ctx.Done():
			return snap, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (c *APIClient) do(ctx context.Context, method, path string, body any, wantStatus int, out any) error {
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		r = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, r)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("chyba sítě při volání API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		return fmt.Errorf("API vrátilo chybný status: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("chyba při parsování JSONu: %w", err)
	}
	return nil
}
