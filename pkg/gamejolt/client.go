package gamejolt

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/WattanaGaming/com.wattanagaming.gamejolt-api/pkg/log"
	"github.com/WattanaGaming/com.wattanagaming.gamejolt-api/pkg/sign"
)

const tracerName = "github.com/WattanaGaming/com.wattanagaming.gamejolt-api/pkg/gamejolt"

// Credential is a player's username and game token.
type Credential struct {
	Username string
	Token    string
}

// Client sends signed requests for one game. It holds no player state and
// is safe for concurrent use; credentials are passed to each operation.
// Use a Session to get authentication gating and events.
type Client struct {
	cfg       Config
	baseURL   string
	signer    sign.Signer
	transport Transport
	metrics   *Metrics
	tracer    trace.Tracer
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithSigner replaces the MD5 signer built from Config.GameKey.
func WithSigner(signer sign.Signer) ClientOption {
	return func(c *Client) {
		c.signer = signer
	}
}

// WithMetrics records request counts and latencies into m.
func WithMetrics(m *Metrics) ClientOption {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithTracerProvider starts call spans from tp instead of the global provider.
func WithTracerProvider(tp trace.TracerProvider) ClientOption {
	return func(c *Client) {
		c.tracer = tp.Tracer(tracerName)
	}
}

// NewClient validates cfg and builds a Client around transport.
// An invalid cfg, including an unsupported Version, is a *ConfigurationError
// and no Client is returned, so no request can be sent with it.
func NewClient(cfg Config, transport Transport, opts ...ClientOption) (*Client, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if transport == nil {
		return nil, &ConfigurationError{Field: "Transport", Reason: "must not be nil"}
	}

	c := &Client{
		cfg:       cfg,
		baseURL:   cfg.BaseURL(),
		signer:    sign.NewMD5Signer(cfg.GameKey),
		transport: transport,
		tracer:    otel.GetTracerProvider().Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Config returns the validated configuration, defaults applied.
func (c *Client) Config() Config {
	return c.cfg
}

// Call signs and sends one request and returns the unwrapped "response"
// object. game_id is always the first query; queries follow in the order
// given.
func (c *Client) Call(ctx context.Context, endpoint Endpoint, queries ...string) (gjson.Result, error) {
	ctx, span := c.tracer.Start(ctx, "gamejolt "+endpoint.String(),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("gamejolt.endpoint", endpoint.String())),
	)
	defer span.End()

	ctx = log.SetContextLogger(ctx, log.FromContext(ctx).
		WithKV("requestId", uuid.NewString()).
		WithKV("endpoint", endpoint.String()))
	logger := log.FromContext(ctx)

	start := time.Now()
	payload, err := c.call(ctx, endpoint, queries)
	elapsed := time.Since(start)
	c.metrics.observeRequest(endpoint, err, elapsed)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Warn("request failed", "error", err, "elapsed", elapsed)
		return gjson.Result{}, err
	}

	logger.Debug("request succeeded", "elapsed", elapsed)
	return payload, nil
}

func (c *Client) call(ctx context.Context, endpoint Endpoint, queries []string) (gjson.Result, error) {
	req := sign.Request{
		BaseURL:  c.baseURL,
		Endpoint: endpoint.String(),
		GameID:   c.cfg.GameID,
		Queries:  queries,
	}
	url, err := req.URL(c.signer)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("failed to sign request: %w", err)
	}

	body, err := c.transport.Get(ctx, url)
	if err != nil {
		var transportErr *TransportError
		if errors.As(err, &transportErr) {
			return gjson.Result{}, err
		}
		return gjson.Result{}, &TransportError{Kind: ConnectionError, Err: err}
	}

	env, err := Unwrap(body)
	if err != nil {
		return gjson.Result{}, err
	}

	return env.Payload, nil
}

// Authenticate checks cred against users/auth/.
func (c *Client) Authenticate(ctx context.Context, cred Credential) error {
	_, err := c.Call(ctx, AuthEndpoint, credentialQueries(cred)...)
	return err
}

// FetchUsers fetches users by name, in the order the server returns them.
func (c *Client) FetchUsers(ctx context.Context, usernames ...string) ([]UserRecord, error) {
	if len(usernames) == 0 {
		return nil, ErrNoUsersRequested
	}

	payload, err := c.Call(ctx, UsersEndpoint, Query(usernameParam, strings.Join(usernames, ",")))
	if err != nil {
		return nil, err
	}
	return DecodeUsers(payload)
}

// FetchUsersByID fetches users by numeric id.
func (c *Client) FetchUsersByID(ctx context.Context, ids ...int64) ([]UserRecord, error) {
	if len(ids) == 0 {
		return nil, ErrNoUsersRequested
	}

	payload, err := c.Call(ctx, UsersEndpoint, Query(userIDParam, joinIDs(ids)))
	if err != nil {
		return nil, err
	}
	return DecodeUsers(payload)
}

// FetchUser fetches a single user by name. ErrUserNotFound is returned when
// the server answers with an empty list.
func (c *Client) FetchUser(ctx context.Context, username string) (UserRecord, error) {
	users, err := c.FetchUsers(ctx, username)
	if err != nil {
		return UserRecord{}, err
	}
	if len(users) == 0 {
		return UserRecord{}, ErrUserNotFound
	}
	return users[0], nil
}

// AddAchieved marks trophyID as achieved for cred.
func (c *Client) AddAchieved(ctx context.Context, cred Credential, trophyID int64) error {
	_, err := c.Call(ctx, AddAchievedEndpoint, append(credentialQueries(cred), Query(trophyIDParam, trophyID))...)
	return err
}

// RemoveAchieved clears the achieved state of trophyID for cred.
func (c *Client) RemoveAchieved(ctx context.Context, cred Credential, trophyID int64) error {
	_, err := c.Call(ctx, RemoveAchievedEndpoint, append(credentialQueries(cred), Query(trophyIDParam, trophyID))...)
	return err
}

// FetchTrophy fetches one trophy as seen by cred.
func (c *Client) FetchTrophy(ctx context.Context, cred Credential, trophyID int64) (TrophyRecord, error) {
	payload, err := c.Call(ctx, TrophiesEndpoint, append(credentialQueries(cred), Query(trophyIDParam, trophyID))...)
	if err != nil {
		return TrophyRecord{}, err
	}

	trophies, err := DecodeTrophies(payload)
	if err != nil {
		return TrophyRecord{}, err
	}
	if len(trophies) == 0 {
		return TrophyRecord{}, ErrTrophyNotFound
	}
	return trophies[0], nil
}

// ListTrophies lists the game's trophies as seen by cred.
func (c *Client) ListTrophies(ctx context.Context, cred Credential, req ListTrophiesRequest) ([]TrophyRecord, error) {
	payload, err := c.Call(ctx, TrophiesEndpoint, append(credentialQueries(cred), req.queries()...)...)
	if err != nil {
		return nil, err
	}
	return DecodeTrophies(payload)
}

// ServerTime returns the server clock, in UTC or, if local is set, in the
// local time zone.
func (c *Client) ServerTime(ctx context.Context, local bool) (time.Time, error) {
	payload, err := c.Call(ctx, TimeEndpoint)
	if err != nil {
		return time.Time{}, err
	}

	ts := payload.Get("timestamp")
	if !ts.Exists() {
		return time.Time{}, &TransportError{Kind: DecodingError, Err: errors.New(`response has no "timestamp"`)}
	}

	t := time.Unix(ts.Int(), 0).UTC()
	if local {
		t = t.Local()
	}
	return t, nil
}

func outcomeLabel(err error) string {
	if err == nil {
		return "success"
	}

	var (
		transportErr *TransportError
		appErr       *ApplicationError
	)
	switch {
	case errors.As(err, &transportErr):
		return strings.ReplaceAll(string(transportErr.Kind), " ", "_")
	case errors.As(err, &appErr):
		return "application_error"
	default:
		return "error"
	}
}
