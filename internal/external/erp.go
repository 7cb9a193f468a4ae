package external

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// PolicyHolderSync is the payload pushed to the ERP on policyholder
// create/update.
type PolicyHolderSync struct {
	Code      string `json:"code"`
	TradeName string `json:"trade_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Deleted   bool   `json:"deleted"`
}

// ErpClient mirrors policyholder records into the partner ERP.
type ErpClient interface {
	SyncPolicyHolder(ctx context.Context, payload PolicyHolderSync) error
}

type HTTPErpClient struct {
	url        string
	apiKey     string
	httpClient *http.Client
}

func NewHTTPErpClient(url, apiKey string) *HTTPErpClient {
	return &HTTPErpClient{
		url:    url,
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *HTTPErpClient) SyncPolicyHolder(ctx context.Context, payload PolicyHolderSync) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode erp payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.url+"/policyholders", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("erp sync %s: %w", payload.Code, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("erp sync %s: status %d", payload.Code, resp.StatusCode)
	}
	return nil
}

type NopErpClient struct{}

func (NopErpClient) SyncPolicyHolder(ctx context.Context, payload PolicyHolderSync) error {
	return nil
}
