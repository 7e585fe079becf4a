// Package shopee implements the signed GraphQL client for the Shopee
// affiliate open API.
package shopee

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/painel-afiliado/service-affiliate/internal/domain/affiliate"
)

// DefaultEndpoint is the production affiliate GraphQL endpoint.
const DefaultEndpoint = "https://open-api.affiliate.shopee.com.br/graphql"

// Client issues signed GraphQL calls. One HTTP POST per invocation, no
// retries: callers needing resilience wrap this themselves.
type Client struct {
	endpoint   string
	signer     *affiliate.Signer
	httpClient *http.Client
	logger     *zap.Logger
}

// ClientConfig holds configuration for the affiliate client.
type ClientConfig struct {
	AppID          string
	Secret         string
	Endpoint       string
	Logger         *zap.Logger
	RequestTimeout time.Duration
}

// NewClient creates a new affiliate API client. Credential presence is
// checked here, before anything reaches the network.
func NewClient(cfg *ClientConfig) (*Client, error) {
	if cfg.AppID == "" || cfg.Secret == "" {
		return nil, affiliate.ErrMissingCredentials
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	timeout := cfg.RequestTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		endpoint: endpoint,
		signer:   affiliate.NewSigner(cfg.AppID, cfg.Secret),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}, nil
}

// Signer returns the underlying signer (useful for testing).
func (c *Client) Signer() *affiliate.Signer {
	return c.signer
}

type graphqlRequest struct {
	Query string `json:"query"`
}

type graphqlEnvelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Execute serializes {"query": doc} once, signs that exact byte sequence,
// transmits those same bytes, and decodes the response envelope. It returns
// the raw data envelope or a classified error.
func (c *Client) Execute(ctx context.Context, query string) (json.RawMessage, error) {
	body, err := json.Marshal(graphqlRequest{Query: query})
	if err != nil {
		return nil, affiliate.NewTransportError("failed to serialize query", err)
	}

	headers := c.signer.Headers(string(body))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, affiliate.NewTransportError("failed to create request", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, affiliate.NewTransportError("request failed", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, affiliate.NewTransportError("failed to read response", err)
	}

	c.logger.Debug("affiliate API request completed",
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(startTime)),
		zap.String("response", truncateString(string(respBody), 500)),
	)

	var envelope graphqlEnvelope
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return nil, affiliate.NewTransportError("failed to parse response", err)
	}

	// An error envelope wins regardless of the HTTP status; the first
	// message is surfaced verbatim.
	if len(envelope.Errors) > 0 {
		c.logger.Warn("affiliate API error",
			zap.Int("status", resp.StatusCode),
			zap.String("message", envelope.Errors[0].Message),
		)
		return nil, affiliate.NewAPIError(envelope.Errors[0].Message, resp.StatusCode)
	}

	if resp.StatusCode >= 400 {
		return nil, affiliate.NewTransportError(fmt.Sprintf("HTTP error: %d", resp.StatusCode), nil)
	}

	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return nil, affiliate.NewTransportError("response carried no data envelope", nil)
	}

	return envelope.Data, nil
}

// truncateString truncates a string to the specified length.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
