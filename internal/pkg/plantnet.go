package pkg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// UpstreamError carries the identification API's own status and message so
// handlers can relay them verbatim.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %d: %s", e.StatusCode, e.Message)
}

// PlantIdentifier proxies photo URLs to an external identification API.
type PlantIdentifier struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

func NewPlantIdentifier(baseURL, apiKey string) *PlantIdentifier {
	return &PlantIdentifier{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (p *PlantIdentifier) Identify(ctx context.Context, photoURL, lang string) (json.RawMessage, error) {
	if photoURL == "" {
		return nil, errors.New("photo url required")
	}
	q := url.Values{}
	q.Set("api-key", p.APIKey)
	q.Set("images", photoURL)
	if lang != "" {
		q.Set("lang", lang)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		var upstream struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &upstream) != nil || upstream.Message == "" {
			upstream.Message = string(body)
		}
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Message: upstream.Message}
	}
	return json.RawMessage(body), nil
}
