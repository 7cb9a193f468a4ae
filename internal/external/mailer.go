package external

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Mailer sends templated mail through the relay service. Enrollment mails
// are best-effort; a failed send never fails an import row.
type Mailer interface {
	Send(ctx context.Context, to, template string, data map[string]string) error
}

type HTTPMailer struct {
	url        string
	apiKey     string
	sender     string
	httpClient *http.Client
}

func NewHTTPMailer(url, apiKey, sender string) *HTTPMailer {
	return &HTTPMailer{
		url:    url,
		apiKey: apiKey,
		sender: sender,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (m *HTTPMailer) Send(ctx context.Context, to, template string, data map[string]string) error {
	body, err := json.Marshal(map[string]interface{}{
		"from":     m.sender,
		"to":       to,
		"template": template,
		"data":     data,
	})
	if err != nil {
		return fmt.Errorf("encode mail: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", m.url+"/send", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.apiKey)

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("send mail to %s: status %d", to, resp.StatusCode)
	}
	return nil
}

type NopMailer struct{}

func (NopMailer) Send(ctx context.Context, to, template string, data map[string]string) error {
	return nil
}
