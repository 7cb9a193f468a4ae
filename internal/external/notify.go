package external

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Notifier publishes domain events to the notification service. Callers
// treat every failure as best-effort: log and continue.
type Notifier interface {
	Notify(ctx context.Context, eventKind string, payload interface{}) error
}

// HTTPNotifier posts events to the notification endpoint. A small rate
// limiter keeps a large import from flooding the service.
type HTTPNotifier struct {
	url        string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewHTTPNotifier(url, apiKey string) *HTTPNotifier {
	return &HTTPNotifier{
		url:    url,
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(20), 40),
	}
}

func (n *HTTPNotifier) Notify(ctx context.Context, eventKind string, payload interface{}) error {
	if err := n.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("notify rate limit: %w", err)
	}

	body, err := json.Marshal(map[string]interface{}{
		"event":   eventKind,
		"payload": payload,
	})
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+n.apiKey)

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("notify %s: %w", eventKind, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("notify %s: status %d", eventKind, resp.StatusCode)
	}
	return nil
}

// NopNotifier is used when no notification endpoint is configured and in
// tests.
type NopNotifier struct{}

func (NopNotifier) Notify(ctx context.Context, eventKind string, payload interface{}) error {
	return nil
}
