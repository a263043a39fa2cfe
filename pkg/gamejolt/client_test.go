package gamejolt_test

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WattanaGaming/com.wattanagaming.gamejolt-api/pkg/gamejolt"
	"github.com/WattanaGaming/com.wattanagaming.gamejolt-api/pkg/sign"
)

func TestNewClient_Configuration(t *testing.T) {
	t.Parallel()

	t.Run("unsupported version", func(t *testing.T) {
		transport := NewMockTransport()
		cfg := testConfig()
		cfg.Version = "v9"

		client, err := gamejolt.NewClient(cfg, transport)
		assert.Nil(t, client)

		var cfgErr *gamejolt.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "Version", cfgErr.Field)
		assert.Zero(t, transport.CallCount())
	})

	t.Run("nil transport", func(t *testing.T) {
		_, err := gamejolt.NewClient(testConfig(), nil)

		var cfgErr *gamejolt.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "Transport", cfgErr.Field)
	})

	t.Run("defaults applied", func(t *testing.T) {
		client, err := gamejolt.NewClient(gamejolt.Config{GameID: testGameID, GameKey: testGameKey}, NewMockTransport())
		require.NoError(t, err)
		assert.Equal(t, testBaseURL, client.Config().BaseURL())
	})
}

func TestClient_Call(t *testing.T) {
	t.Parallel()

	client, transport := setupClient(t)
	transport.RegisterResponse(gamejolt.AuthEndpoint, successBody)

	payload, err := client.Call(testCtx, gamejolt.AuthEndpoint, "username=alice", "user_token=tok123")
	require.NoError(t, err)
	assert.Equal(t, "true", payload.Get("success").String())

	assert.Equal(t,
		testBaseURL+"users/auth/?game_id=12345&username=alice&user_token=tok123&signature=4418d5754605294a8ead76049e6de8f0",
		transport.LastURL())
}

func TestClient_Call_SignatureRecomputedPerRequest(t *testing.T) {
	t.Parallel()

	signer := sign.NewMockSigner(sign.Signature{0x01})
	client, transport := setupClient(t, gamejolt.WithSigner(signer))
	transport.RegisterResponse(gamejolt.TimeEndpoint, `{"response":{"success":"true","timestamp":1}}`)

	for i := 0; i < 3; i++ {
		_, err := client.Call(testCtx, gamejolt.TimeEndpoint)
		require.NoError(t, err)
	}
	assert.EqualValues(t, 3, signer.Calls())
	assert.Equal(t, testBaseURL+"time/?game_id=12345", signer.LastData())
}

func TestClient_Call_Errors(t *testing.T) {
	t.Parallel()

	t.Run("signer failure", func(t *testing.T) {
		signErr := errors.New("no key")
		metrics := gamejolt.NewMetricsWithRegistry(prometheus.NewRegistry())
		client, transport := setupClient(t,
			gamejolt.WithSigner(sign.NewFailingMockSigner(signErr)),
			gamejolt.WithMetrics(metrics))

		_, err := client.Call(testCtx, gamejolt.TimeEndpoint)
		require.ErrorIs(t, err, signErr)

		var transportErr *gamejolt.TransportError
		assert.False(t, errors.As(err, &transportErr))
		assert.Zero(t, transport.CallCount())
		assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Requests.WithLabelValues("time/", "error")))
		assert.Zero(t, testutil.ToFloat64(metrics.Requests.WithLabelValues("time/", "protocol_error")))
	})

	t.Run("transport error passes through", func(t *testing.T) {
		client, transport := setupClient(t)
		want := &gamejolt.TransportError{Kind: gamejolt.ProtocolError, StatusCode: 503, Err: errors.New("Service Unavailable")}
		transport.RegisterHandler(gamejolt.TimeEndpoint, func(context.Context, url.Values) ([]byte, error) {
			return nil, want
		})

		_, err := client.Call(testCtx, gamejolt.TimeEndpoint)
		assert.Same(t, want, err)
	})

	t.Run("untyped transport error becomes connection error", func(t *testing.T) {
		client, transport := setupClient(t)
		cause := errors.New("dial tcp: refused")
		transport.RegisterHandler(gamejolt.TimeEndpoint, func(context.Context, url.Values) ([]byte, error) {
			return nil, cause
		})

		_, err := client.Call(testCtx, gamejolt.TimeEndpoint)

		var transportErr *gamejolt.TransportError
		require.ErrorAs(t, err, &transportErr)
		assert.Equal(t, gamejolt.ConnectionError, transportErr.Kind)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("application error", func(t *testing.T) {
		client, transport := setupClient(t)
		transport.RegisterResponse(gamejolt.AddAchievedEndpoint, `{"response":{"success":"false","message":"No such trophy."}}`)

		err := client.AddAchieved(testCtx, gamejolt.Credential{Username: "alice", Token: "tok123"}, 99)

		var appErr *gamejolt.ApplicationError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "No such trophy.", appErr.Message)
	})
}

func TestClient_Users(t *testing.T) {
	t.Parallel()

	t.Run("by name", func(t *testing.T) {
		client, transport := setupClient(t)
		transport.RegisterResponse(gamejolt.UsersEndpoint, usersBody)

		users, err := client.FetchUsers(testCtx, "alice", "bob")
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.True(t, strings.HasPrefix(transport.LastRawQuery(), "game_id=12345&username=alice,bob&signature="))
	})

	t.Run("by id", func(t *testing.T) {
		client, transport := setupClient(t)
		transport.RegisterResponse(gamejolt.UsersEndpoint, usersBody)

		_, err := client.FetchUsersByID(testCtx, 1, 2)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(transport.LastRawQuery(), "game_id=12345&user_id=1,2&signature="))
	})

	t.Run("nothing requested", func(t *testing.T) {
		client, transport := setupClient(t)

		_, err := client.FetchUsers(testCtx)
		assert.ErrorIs(t, err, gamejolt.ErrNoUsersRequested)
		_, err = client.FetchUsersByID(testCtx)
		assert.ErrorIs(t, err, gamejolt.ErrNoUsersRequested)
		assert.Zero(t, transport.CallCount())
	})

	t.Run("single user", func(t *testing.T) {
		client, transport := setupClient(t)
		transport.RegisterResponse(gamejolt.UsersEndpoint, usersBody)

		user, err := client.FetchUser(testCtx, "alice")
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("single user not found", func(t *testing.T) {
		client, transport := setupClient(t)
		transport.RegisterResponse(gamejolt.UsersEndpoint, `{"response":{"success":"true","users":[]}}`)

		_, err := client.FetchUser(testCtx, "nobody")
		assert.ErrorIs(t, err, gamejolt.ErrUserNotFound)
	})
}

func TestClient_Trophies(t *testing.T) {
	t.Parallel()

	cred := gamejolt.Credential{Username: "alice", Token: "tok123"}

	t.Run("add and remove achieved", func(t *testing.T) {
		client, transport := setupClient(t)
		transport.RegisterResponse(gamejolt.AddAchievedEndpoint, successBody)
		transport.RegisterResponse(gamejolt.RemoveAchievedEndpoint, successBody)

		require.NoError(t, client.AddAchieved(testCtx, cred, 7))
		assert.True(t, strings.HasPrefix(transport.LastURL(),
			testBaseURL+"trophies/add-achieved/?game_id=12345&username=alice&user_token=tok123&trophy_id=7&signature="))

		require.NoError(t, client.RemoveAchieved(testCtx, cred, 7))
		assert.True(t, strings.HasPrefix(transport.LastURL(),
			testBaseURL+"trophies/remove-achieved/?game_id=12345&username=alice&user_token=tok123&trophy_id=7&signature="))
	})

	t.Run("fetch one", func(t *testing.T) {
		client, transport := setupClient(t)
		transport.RegisterResponse(gamejolt.TrophiesEndpoint, trophiesBody)

		trophy, err := client.FetchTrophy(testCtx, cred, 7)
		require.NoError(t, err)
		assert.Equal(t, "First Steps", trophy.Title)
		assert.True(t, strings.HasPrefix(transport.LastRawQuery(), "game_id=12345&username=alice&user_token=tok123&trophy_id=7&signature="))
	})

	t.Run("fetch one not found", func(t *testing.T) {
		client, transport := setupClient(t)
		transport.RegisterResponse(gamejolt.TrophiesEndpoint, `{"response":{"success":"true"}}`)

		_, err := client.FetchTrophy(testCtx, cred, 7)
		assert.ErrorIs(t, err, gamejolt.ErrTrophyNotFound)
	})

	tests := []struct {
		name  string
		req   gamejolt.ListTrophiesRequest
		query string
	}{
		{name: "all", req: gamejolt.ListTrophiesRequest{All: true}, query: "game_id=12345&username=alice&user_token=tok123&signature="},
		{name: "all ignores achieved", req: gamejolt.ListTrophiesRequest{All: true, Achieved: true}, query: "game_id=12345&username=alice&user_token=tok123&signature="},
		{name: "achieved", req: gamejolt.ListTrophiesRequest{Achieved: true}, query: "game_id=12345&username=alice&user_token=tok123&achieved=true&signature="},
		{name: "not achieved", req: gamejolt.ListTrophiesRequest{}, query: "game_id=12345&username=alice&user_token=tok123&achieved=false&signature="},
	}
	for _, test := range tests {
		t.Run("list "+test.name, func(t *testing.T) {
			client, transport := setupClient(t)
			transport.RegisterResponse(gamejolt.TrophiesEndpoint, trophiesBody)

			trophies, err := client.ListTrophies(testCtx, cred, test.req)
			require.NoError(t, err)
			assert.Len(t, trophies, 2)
			assert.True(t, strings.HasPrefix(transport.LastRawQuery(), test.query), transport.LastRawQuery())
		})
	}
}

func TestClient_ServerTime(t *testing.T) {
	t.Parallel()

	client, transport := setupClient(t)
	transport.RegisterResponse(gamejolt.TimeEndpoint, `{"response":{"success":"true","timestamp":1700000000,"timezone":"America/New_York"}}`)

	utc, err := client.ServerTime(testCtx, false)
	require.NoError(t, err)
	assert.Equal(t, time.UTC, utc.Location())
	assert.Equal(t, int64(1700000000), utc.Unix())

	local, err := client.ServerTime(testCtx, true)
	require.NoError(t, err)
	assert.Equal(t, time.Local, local.Location())
	assert.True(t, utc.Equal(local))

	assert.Equal(t, testBaseURL+"time/?game_id=12345&signature=21b308fb107aceeaf05c7b2518efe7aa", transport.LastURL())
}

func TestClient_ServerTime_MissingTimestamp(t *testing.T) {
	t.Parallel()

	client, transport := setupClient(t)
	transport.RegisterResponse(gamejolt.TimeEndpoint, successBody)

	_, err := client.ServerTime(testCtx, false)

	var transportErr *gamejolt.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, gamejolt.DecodingError, transportErr.Kind)
}

func TestClient_Metrics(t *testing.T) {
	t.Parallel()

	metrics := gamejolt.NewMetricsWithRegistry(prometheus.NewRegistry())
	client, transport := setupClient(t, gamejolt.WithMetrics(metrics))
	transport.RegisterResponse(gamejolt.TimeEndpoint, `{"response":{"success":"true","timestamp":1}}`)
	transport.RegisterResponse(gamejolt.AuthEndpoint, `{"response":{"success":"false","message":"invalid user"}}`)

	_, err := client.ServerTime(testCtx, false)
	require.NoError(t, err)
	_, err = client.ServerTime(testCtx, false)
	require.NoError(t, err)
	require.Error(t, client.Authenticate(testCtx, gamejolt.Credential{Username: "mallory", Token: "x"}))

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.Requests.WithLabelValues("time/", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Requests.WithLabelValues("users/auth/", "application_error")))
	assert.Equal(t, 2, testutil.CollectAndCount(metrics.RequestDuration))
}
