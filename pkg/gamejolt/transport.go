package gamejolt

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxBodySize caps how much of a response body is read.
const maxBodySize = 8 << 20

// Transport issues one GET and returns the response body.
// Failures must be reported as *TransportError.
type Transport interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// HTTPTransportConfig configures an HTTPTransport.
type HTTPTransportConfig struct {
	// Client is used for every request. A nil Client means a new http.Client
	// with Timeout applied.
	Client *http.Client
	// Timeout bounds a whole round trip. Zero disables it. Ignored when
	// Client is set.
	Timeout time.Duration
}

var DefaultHTTPTransportConfig = HTTPTransportConfig{
	Timeout: 10 * time.Second,
}

// HTTPTransport is the net/http Transport.
type HTTPTransport struct {
	client *http.Client
}

func NewHTTPTransport(cfg HTTPTransportConfig) *HTTPTransport {
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &HTTPTransport{client: client}
}

// Get performs the request. Any 2xx status is a success.
func (t *HTTPTransport) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &TransportError{Kind: ProtocolError, Err: fmt.Errorf("failed to build request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	res, err := t.client.Do(req)
	if err != nil {
		return nil, &TransportError{Kind: ConnectionError, Err: err}
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodySize))
	if err != nil {
		return nil, &TransportError{Kind: DecodingError, Err: fmt.Errorf("failed to read body: %w", err)}
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &TransportError{
			Kind:       ProtocolError,
			StatusCode: res.StatusCode,
			Err:        fmt.Errorf("%s", http.StatusText(res.StatusCode)),
		}
	}

	return body, nil
}
