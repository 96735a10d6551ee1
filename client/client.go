// Package client talks to the remote project-generation service.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// GeneratePath is the generation endpoint path on the service.
const GeneratePath = "/generate-project"

// DefaultServiceName is used in error messages when none is configured.
const DefaultServiceName = "genforge"

// Client issues generation requests against a single service endpoint.
type Client struct {
	client      *http.Client
	baseURL     string
	serviceName string
}

// Config holds configuration for Client.
type Config struct {
	// Client is the HTTP client to use. The default carries no timeout:
	// generation runs for tens of seconds and the request must be
	// allowed to finish.
	Client *http.Client

	// BaseURL is the service base endpoint, without a trailing slash.
	BaseURL string

	// ServiceName appears in error messages.
	ServiceName string
}

// New creates a Client with the given configuration.
func New(cfg Config) *Client {
	c := &Client{
		client:      cfg.Client,
		baseURL:     cfg.BaseURL,
		serviceName: cfg.ServiceName,
	}

	if c.client == nil {
		c.client = &http.Client{}
	}
	if c.serviceName == "" {
		c.serviceName = DefaultServiceName
	}

	return c
}

// Archive is the result of a generation request: the archive bytes and
// the display filename resolved from the response metadata.
type Archive struct {
	Filename string
	Data     []byte
}

type generateRequest struct {
	Requirements string `json:"requirements"`
}

// Generate submits the requirement text and returns the generated
// archive. It issues exactly one POST with no retries: the service
// performs costly generation work, so a request is never safe to
// repeat automatically.
func (c *Client) Generate(ctx context.Context, requirements string) (*Archive, error) {
	payload, err := json.Marshal(generateRequest{Requirements: requirements})
	if err != nil {
		return nil, fmt.Errorf("marshal request body: %w", err)
	}

	url := c.baseURL + GeneratePath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", c.serviceName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.parseError(resp, GeneratePath)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", c.serviceName, err)
	}

	return &Archive{
		Filename: ResolveFilename(resp.Header.Get("Content-Disposition")),
		Data:     data,
	}, nil
}

// parseError parses an error response into an APIError.
func (c *Client) parseError(resp *http.Response, path string) error {
	body, _ := io.ReadAll(resp.Body)

	apiErr := &APIError{
		Service:    c.serviceName,
		StatusCode: resp.StatusCode,
		Endpoint:   path,
		RequestID:  resp.Header.Get("X-Request-Id"),
	}

	// Try to parse an error message from the body
	var errResp struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &errResp) == nil {
		if errResp.Message != "" {
			apiErr.Message = errResp.Message
		} else if errResp.Error != "" {
			apiErr.Message = errResp.Error
		}
	}

	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}

	return apiErr
}
