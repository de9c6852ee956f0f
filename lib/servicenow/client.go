// Copyright 2026 The Fermitools Authors
// SPDX-License-Identifier: Apache-2.0

package servicenow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fermitools/snow/lib/clock"
)

// maxResponseSize bounds Table API response body reads: 64 MB. Real
// responses are orders of magnitude smaller; the limit only guards
// against a pathological proxy response exhausting memory.
const maxResponseSize int64 = 64 << 20

// Config holds configuration for creating a ServiceNow API Client.
type Config struct {
	// InstanceURL is the instance base URL (e.g.
	// "https://fermi.servicenowservices.com"). Must use HTTPS.
	InstanceURL string

	// Username and Password authenticate requests via HTTP Basic.
	// Both are required.
	Username string
	Password string

	// HTTPClient is used for all HTTP requests. Defaults to
	// http.DefaultClient.
	HTTPClient *http.Client

	// Clock provides time operations. Defaults to clock.Real().
	// Inject clock.Fake() in tests for deterministic backoff.
	Clock clock.Clock

	// Logger is used for structured logging. Defaults to slog.Default().
	Logger *slog.Logger
}

// Client is a typed ServiceNow Table API client with authentication,
// pagination, rate-limit backoff, and structured error handling.
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
	clock      clock.Clock
	logger     *slog.Logger
}

// NewClient creates a Table API client from the given configuration.
// Returns an error if the configuration is invalid.
func NewClient(config Config) (*Client, error) {
	baseURL := strings.TrimRight(config.InstanceURL, "/")
	if baseURL == "" {
		return nil, fmt.Errorf("servicenow: InstanceURL is required")
	}
	if !strings.HasPrefix(baseURL, "https://") {
		return nil, fmt.Errorf("servicenow: API client requires HTTPS (got %q)", baseURL)
	}
	if config.Username == "" || config.Password == "" {
		return nil, fmt.Errorf("servicenow: Username and Password are required")
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	clk := config.Clock
	if clk == nil {
		clk = clock.Real()
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    baseURL,
		username:   config.Username,
		password:   config.Password,
		httpClient: httpClient,
		clock:      clk,
		logger:     logger,
	}, nil
}

// tablePath builds the Table API path for a table, with standard
// sysparms: display values alongside raw values, and no reference-link
// objects cluttering the records.
func tablePath(table string, params url.Values) string {
	if params == nil {
		params = url.Values{}
	}
	params.Set("sysparm_display_value", "all")
	params.Set("sysparm_exclude_reference_link", "true")
	return "/api/now/table/" + table + "?" + params.Encode()
}

// do executes an authenticated Table API request. The path is relative
// to the instance base URL. On non-2xx responses, returns an *APIError.
// A 429 response is retried once after the Retry-After backoff.
func (client *Client) do(ctx context.Context, method, path string, requestBody any) ([]byte, error) {
	body, _, err := client.doWithRetry(ctx, method, client.baseURL+path, requestBody, false)
	return body, err
}

// doURL is do against an absolute URL, for requests whose target came
// from the instance itself (pagination next links). Returns the
// response headers alongside the body so the iterator can read Link.
func (client *Client) doURL(ctx context.Context, method, fullURL string, requestBody any) ([]byte, http.Header, error) {
	return client.doWithRetry(ctx, method, fullURL, requestBody, false)
}

// doWithRetry is the internal implementation of do with a retry flag to
// prevent looping on persistent rate limiting.
func (client *Client) doWithRetry(ctx context.Context, method, fullURL string, requestBody any, isRetry bool) ([]byte, http.Header, error) {
	response, err := client.doRaw(ctx, method, fullURL, requestBody)
	if err != nil {
		return nil, nil, err
	}
	defer response.Body.Close()

	body, err := readBody(response)
	if err != nil {
		return nil, nil, err
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		if !isRetry && response.StatusCode == http.StatusTooManyRequests {
			retryDuration := retryAfter(response.Header)
			if retryDuration > 0 {
				client.logger.Info("rate limited, backing off",
					"duration", retryDuration,
					"method", method,
					"url", fullURL,
				)
				select {
				case <-client.clock.After(retryDuration):
				case <-ctx.Done():
					return nil, nil, ctx.Err()
				}
				return client.doWithRetry(ctx, method, fullURL, requestBody, true)
			}
		}
		return nil, nil, parseAPIError(response.StatusCode, body)
	}

	return body, response.Header, nil
}

// doRaw executes an HTTP request with authentication but without
// response parsing or retry. The caller must close the response body.
func (client *Client) doRaw(ctx context.Context, method, fullURL string, requestBody any) (*http.Response, error) {
	var bodyReader io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return nil, fmt.Errorf("servicenow: encoding request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("servicenow: creating request: %w", err)
	}

	request.SetBasicAuth(client.username, client.password)
	request.Header.Set("Accept", "application/json")
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("servicenow: %s %s: %w", method, fullURL, err)
	}
	return response, nil
}

// get is a convenience method for GET requests returning a single JSON
// envelope. Decodes the response into result.
func (client *Client) get(ctx context.Context, path string, result any) error {
	body, err := client.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, result)
}

// post is a convenience method for POST requests.
func (client *Client) post(ctx context.Context, path string, requestBody, result any) error {
	body, err := client.do(ctx, http.MethodPost, path, requestBody)
	if err != nil {
		return err
	}
	if result != nil {
		return json.Unmarshal(body, result)
	}
	return nil
}

// patch is a convenience method for PATCH requests.
func (client *Client) patch(ctx context.Context, path string, requestBody, result any) error {
	body, err := client.do(ctx, http.MethodPatch, path, requestBody)
	if err != nil {
		return err
	}
	if result != nil {
		return json.Unmarshal(body, result)
	}
	return nil
}

// readBody reads a response body bounded at maxResponseSize.
func readBody(response *http.Response) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(response.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("servicenow: reading response body: %w", err)
	}
	return body, nil
}

// retryAfter parses the Retry-After header (delta-seconds form only;
// the instance does not send HTTP dates).
func retryAfter(header http.Header) time.Duration {
	seconds, err := strconv.ParseInt(header.Get("Retry-After"), 10, 64)
	if err != nil || seconds <= 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
