package external

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// FolderSink creates folders in the document management system so that
// scanned enrollment papers have somewhere to land. Best-effort only.
type FolderSink interface {
	CreateFolder(ctx context.Context, actor, entityKind, entityID, name string) error
}

type HTTPFolderSink struct {
	url        string
	apiKey     string
	httpClient *http.Client
}

func NewHTTPFolderSink(url, apiKey string) *HTTPFolderSink {
	return &HTTPFolderSink{
		url:    url,
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (s *HTTPFolderSink) CreateFolder(ctx context.Context, actor, entityKind, entityID, name string) error {
	body, err := json.Marshal(map[string]string{
		"actor":       actor,
		"entity_kind": entityKind,
		"entity_id":   entityID,
		"name":        name,
	})
	if err != nil {
		return fmt.Errorf("encode folder request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.url+"/folders", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("create folder for %s %s: %w", entityKind, entityID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("create folder for %s %s: status %d", entityKind, entityID, resp.StatusCode)
	}
	return nil
}

type NopFolderSink struct{}

func (NopFolderSink) CreateFolder(ctx context.Context, actor, entityKind, entityID, name string) error {
	return nil
}
