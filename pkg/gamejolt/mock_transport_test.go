package gamejolt_test

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/WattanaGaming/com.wattanagaming.gamejolt-api/pkg/gamejolt"
)

var _ gamejolt.Transport = &MockTransport{}

// MockHandler produces the response body for one request.
type MockHandler func(ctx context.Context, query url.Values) ([]byte, error)

// MockTransport routes requests to per-endpoint handlers and records every
// URL it receives.
type MockTransport struct {
	mu       sync.Mutex
	handlers map[gamejolt.Endpoint]MockHandler
	urls     []string
}

func NewMockTransport() *MockTransport {
	return &MockTransport{handlers: make(map[gamejolt.Endpoint]MockHandler)}
}

func (m *MockTransport) RegisterHandler(endpoint gamejolt.Endpoint, handler MockHandler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[endpoint] = handler
}

// RegisterResponse answers every request to endpoint with body.
func (m *MockTransport) RegisterResponse(endpoint gamejolt.Endpoint, body string) {
	m.RegisterHandler(endpoint, func(context.Context, url.Values) ([]byte, error) {
		return []byte(body), nil
	})
}

func (m *MockTransport) Get(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	endpoint := gamejolt.Endpoint(strings.TrimPrefix(u.Path, "/api/game/"+gamejolt.VersionV1_2.String()+"/"))

	m.mu.Lock()
	m.urls = append(m.urls, rawURL)
	handler, ok := m.handlers[endpoint]
	m.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("no handler for %s", endpoint)
	}
	return handler(ctx, u.Query())
}

func (m *MockTransport) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.urls)
}

func (m *MockTransport) URLs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.urls...)
}

func (m *MockTransport) LastURL() string {
	urls := m.URLs()
	if len(urls) == 0 {
		return ""
	}
	return urls[len(urls)-1]
}

// LastRawQuery returns the query string of the last request, signature included.
func (m *MockTransport) LastRawQuery() string {
	last := m.LastURL()
	if i := strings.IndexByte(last, '?'); i >= 0 {
		return last[i+1:]
	}
	return ""
}
