package gamejolt

import (
	"context"
	"fmt"
	"strings"
)

// Version is the API protocol version, the <version> path segment of the base URL.
type Version string

const (
	VersionV1_2 Version = "v1_2"
)

var supportedVersions = map[Version]bool{
	VersionV1_2: true,
}

func (v Version) String() string {
	return string(v)
}

// IsSupportedVersion reports whether the client can speak version v.
func IsSupportedVersion(v Version) bool {
	return supportedVersions[v]
}

// Endpoint is a path relative to the versioned base URL.
type Endpoint string

const (
	// AuthEndpoint verifies a username/token pair.
	AuthEndpoint Endpoint = "users/auth/"
	// UsersEndpoint fetches user records by name or id.
	UsersEndpoint Endpoint = "users/"
	// AddAchievedEndpoint marks a trophy as achieved.
	AddAchievedEndpoint Endpoint = "trophies/add-achieved/"
	// RemoveAchievedEndpoint clears a trophy's achieved state.
	RemoveAchievedEndpoint Endpoint = "trophies/remove-achieved/"
	// TrophiesEndpoint fetches one trophy or lists trophies.
	TrophiesEndpoint Endpoint = "trophies/"
	// TimeEndpoint returns the server clock.
	TimeEndpoint Endpoint = "time/"
)

func (e Endpoint) String() string {
	return string(e)
}

// Query parameter keys.
const (
	usernameParam  = "username"
	userIDParam    = "user_id"
	userTokenParam = "user_token"
	trophyIDParam  = "trophy_id"
	achievedParam  = "achieved"
)

// Query formats a single "key=value" query. Values are sent as-is.
func Query(key string, value any) string {
	return key + "=" + fmt.Sprint(value)
}

func credentialQueries(cred Credential) []string {
	return []string{
		Query(usernameParam, cred.Username),
		Query(userTokenParam, cred.Token),
	}
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}
	return strings.Join(parts, ",")
}

// ListTrophiesRequest filters a trophy listing.
// When All is set, Achieved is ignored and every trophy is returned.
type ListTrophiesRequest struct {
	All      bool
	Achieved bool
}

func (r ListTrophiesRequest) queries() []string {
	if r.All {
		return nil
	}
	return []string{Query(achievedParam, r.Achieved)}
}

// Event identifies a Session notification.
type Event string

const (
	// AuthenticatedEvent fires once per successful Authenticate.
	AuthenticatedEvent Event = "authenticated"
	// TrophyEvent fires after the server confirms a grant or revoke.
	TrophyEvent Event = "trophy"
)

func (e Event) String() string {
	return string(e)
}

// TrophyEventKind says whether a trophy was granted or revoked.
type TrophyEventKind string

const (
	TrophyGrant  TrophyEventKind = "grant"
	TrophyRevoke TrophyEventKind = "revoke"
)

func (k TrophyEventKind) String() string {
	return string(k)
}

// AuthenticatedNotification is delivered to the AuthenticatedEvent handler.
type AuthenticatedNotification struct {
	Username string
	Forced   bool
}

// TrophyNotification is delivered to the TrophyEvent handler.
type TrophyNotification struct {
	Kind     TrophyEventKind
	TrophyID int64
	Username string
}

// AuthenticatedEventHandler handles AuthenticatedEvent.
type AuthenticatedEventHandler func(ctx context.Context, notif AuthenticatedNotification)

// TrophyEventHandler handles TrophyEvent.
type TrophyEventHandler func(ctx context.Context, notif TrophyNotification)
