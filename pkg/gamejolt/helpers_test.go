package gamejolt_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/WattanaGaming/com.wattanagaming.gamejolt-api/pkg/gamejolt"
)

const (
	testGameID  = "12345"
	testGameKey = "secret"
	testBaseURL = "https://api.gamejolt.com/api/game/v1_2/"

	successBody = `{"response":{"success":"true"}}`
)

var testCtx = context.Background()

func testConfig() gamejolt.Config {
	return gamejolt.Config{
		Host:    gamejolt.DefaultHost,
		Version: gamejolt.VersionV1_2,
		GameID:  testGameID,
		GameKey: testGameKey,
	}
}

func setupClient(t *testing.T, opts ...gamejolt.ClientOption) (*gamejolt.Client, *MockTransport) {
	t.Helper()

	transport := NewMockTransport()
	client, err := gamejolt.NewClient(testConfig(), transport, opts...)
	require.NoError(t, err)
	return client, transport
}

func setupSession(t *testing.T, opts ...gamejolt.ClientOption) (*gamejolt.Session, *MockTransport) {
	t.Helper()

	client, transport := setupClient(t, opts...)
	return gamejolt.NewSession(client), transport
}

// authenticatedSession returns a Session already logged in as alice/tok123.
func authenticatedSession(t *testing.T, opts ...gamejolt.ClientOption) (*gamejolt.Session, *MockTransport) {
	t.Helper()

	session, transport := setupSession(t, opts...)
	transport.RegisterResponse(gamejolt.AuthEndpoint, successBody)
	require.NoError(t, session.Authenticate(testCtx, "alice", "tok123", false))
	return session, transport
}

const usersBody = `{"response":{"success":"true","users":[
	{"id":"1","type":"Developer","username":"alice","avatar_url":"https://m.gjcdn.net/avatar/1.png",
	 "signed_up":"4 years ago","signed_up_timestamp":1500000000,
	 "last_logged_in":"Online Now","last_logged_in_timestamp":1700000000,
	 "status":"Active","developer_name":"Alice A.","developer_website":"https://alice.dev",
	 "developer_description":"Makes games."},
	{"id":2,"type":"User","username":"bob","avatar_url":"","signed_up":"1 day ago",
	 "signed_up_timestamp":1699913600,"last_logged_in":"1 hour ago",
	 "last_logged_in_timestamp":1699996400,"status":"Banned"}
]}}`

const trophiesBody = `{"response":{"success":"true","trophies":[
	{"id":"7","title":"First Steps","difficulty":"Bronze","description":"Start the game.",
	 "image_url":"https://m.gjcdn.net/trophy/7.png","achieved":"3 days ago"},
	{"id":8,"title":"Completionist","difficulty":"Platinum","description":"Finish everything.",
	 "image_url":"https://m.gjcdn.net/trophy/8.png","achieved":"false"}
]}}`
