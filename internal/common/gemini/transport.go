package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	apphttp "advice-service/internal/common/http"
)

// ErrMissingAPIKey is returned before any request is attempted without a key.
var ErrMissingAPIKey = errors.New("gemini api key is not configured")

// Transport performs one outbound attempt. An error means no HTTP status was received.
type Transport interface {
	Send(ctx context.Context, body []byte) (*apphttp.Response, error)
}

// HTTPTransport posts to {BaseURL}/models/{Model}:generateContent?key={APIKey}.
type HTTPTransport struct {
	client   *apphttp.Client
	endpoint string
}

// TransportConfig configures HTTPTransport.
type TransportConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
	Client  *apphttp.Client
}

func NewHTTPTransport(cfg TransportConfig) (*HTTPTransport, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("gemini base url is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("gemini model is required")
	}

	client := cfg.Client
	if client == nil {
		client = apphttp.NewClient(cfg.Timeout)
	}

	return &HTTPTransport{
		client:   client,
		endpoint: Endpoint(cfg.BaseURL, cfg.Model, cfg.APIKey),
	}, nil
}

// Endpoint builds the generateContent URL.
func Endpoint(baseURL, model, apiKey string) string {
	return fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		strings.TrimRight(baseURL, "/"), url.PathEscape(model), url.QueryEscape(apiKey))
}

func (t *HTTPTransport) Send(ctx context.Context, body []byte) (*apphttp.Response, error) {
	return t.client.PostJSON(ctx, t.endpoint, body)
}
