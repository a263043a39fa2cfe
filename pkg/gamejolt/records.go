package gamejolt

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/tidwall/gjson"
)

// UserType is the account type of a user.
type UserType string

const (
	UserTypeUser          UserType = "User"
	UserTypeDeveloper     UserType = "Developer"
	UserTypeModerator     UserType = "Moderator"
	UserTypeAdministrator UserType = "Administrator"
)

// ParseUserType matches label exactly. Anything else is an *ApplicationError.
func ParseUserType(label string) (UserType, error) {
	switch t := UserType(label); t {
	case UserTypeUser, UserTypeDeveloper, UserTypeModerator, UserTypeAdministrator:
		return t, nil
	}
	return "", &ApplicationError{Message: "Unknown user type."}
}

func (t UserType) String() string { return string(t) }

func (t UserType) MarshalText() ([]byte, error) { return []byte(t), nil }

func (t *UserType) UnmarshalText(text []byte) error {
	parsed, err := ParseUserType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// UserStatus is the moderation status of a user.
type UserStatus string

const (
	UserStatusActive UserStatus = "Active"
	UserStatusBanned UserStatus = "Banned"
)

// ParseUserStatus matches label exactly. Anything else is an *ApplicationError.
func ParseUserStatus(label string) (UserStatus, error) {
	switch s := UserStatus(label); s {
	case UserStatusActive, UserStatusBanned:
		return s, nil
	}
	return "", &ApplicationError{Message: "Unknown user status."}
}

func (s UserStatus) String() string { return string(s) }

func (s UserStatus) MarshalText() ([]byte, error) { return []byte(s), nil }

func (s *UserStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseUserStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// TrophyDifficulty is the tier of a trophy.
type TrophyDifficulty string

const (
	TrophyBronze   TrophyDifficulty = "Bronze"
	TrophySilver   TrophyDifficulty = "Silver"
	TrophyGold     TrophyDifficulty = "Gold"
	TrophyPlatinum TrophyDifficulty = "Platinum"
)

// ParseTrophyDifficulty matches label exactly. Anything else is an *ApplicationError.
func ParseTrophyDifficulty(label string) (TrophyDifficulty, error) {
	switch d := TrophyDifficulty(label); d {
	case TrophyBronze, TrophySilver, TrophyGold, TrophyPlatinum:
		return d, nil
	}
	return "", &ApplicationError{Message: "Unknown trophy difficulty."}
}

func (d TrophyDifficulty) String() string { return string(d) }

func (d TrophyDifficulty) MarshalText() ([]byte, error) { return []byte(d), nil }

func (d *TrophyDifficulty) UnmarshalText(text []byte) error {
	parsed, err := ParseTrophyDifficulty(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// UserRecord is a user as returned by the users/ endpoint.
// The display strings (SignedUp, LastLoggedIn) are kept verbatim next to
// the parsed instants.
type UserRecord struct {
	ID             int64
	Type           UserType
	Username       string
	AvatarURL      string
	SignedUp       string
	SignedUpAt     time.Time
	LastLoggedIn   string
	LastLoggedInAt time.Time
	Status         UserStatus
	DisplayName    string
	Website        string
	Description    string
}

type userWire struct {
	ID                    int64      `json:"id"`
	Type                  UserType   `json:"type"`
	Username              string     `json:"username"`
	AvatarURL             string     `json:"avatar_url"`
	SignedUp              string     `json:"signed_up"`
	SignedUpTimestamp     int64      `json:"signed_up_timestamp"`
	LastLoggedIn          string     `json:"last_logged_in"`
	LastLoggedInTimestamp int64      `json:"last_logged_in_timestamp"`
	Status                UserStatus `json:"status"`
	DeveloperName         string     `json:"developer_name"`
	DeveloperWebsite      string     `json:"developer_website"`
	DeveloperDescription  string     `json:"developer_description"`
}

// MarshalJSON writes the record back out under its wire keys.
func (u UserRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(userWire{
		ID:                    u.ID,
		Type:                  u.Type,
		Username:              u.Username,
		AvatarURL:             u.AvatarURL,
		SignedUp:              u.SignedUp,
		SignedUpTimestamp:     u.SignedUpAt.Unix(),
		LastLoggedIn:          u.LastLoggedIn,
		LastLoggedInTimestamp: u.LastLoggedInAt.Unix(),
		Status:                u.Status,
		DeveloperName:         u.DisplayName,
		DeveloperWebsite:      u.Website,
		DeveloperDescription:  u.Description,
	})
}

// DecodeUser decodes one user object.
func DecodeUser(obj gjson.Result) (UserRecord, error) {
	userType, err := ParseUserType(obj.Get("type").String())
	if err != nil {
		return UserRecord{}, err
	}
	status, err := ParseUserStatus(obj.Get("status").String())
	if err != nil {
		return UserRecord{}, err
	}

	return UserRecord{
		ID:             obj.Get("id").Int(),
		Type:           userType,
		Username:       obj.Get("username").String(),
		AvatarURL:      obj.Get("avatar_url").String(),
		SignedUp:       obj.Get("signed_up").String(),
		SignedUpAt:     unixSeconds(obj.Get("signed_up_timestamp")),
		LastLoggedIn:   obj.Get("last_logged_in").String(),
		LastLoggedInAt: unixSeconds(obj.Get("last_logged_in_timestamp")),
		Status:         status,
		DisplayName:    obj.Get("developer_name").String(),
		Website:        obj.Get("developer_website").String(),
		Description:    obj.Get("developer_description").String(),
	}, nil
}

// DecodeUsers decodes the "users" array of a payload. A payload without the
// array yields an empty slice.
func DecodeUsers(payload gjson.Result) ([]UserRecord, error) {
	return decodeList(payload, "users", DecodeUser)
}

// NotAchieved is the achieved value of a trophy the player does not have.
const NotAchieved = "false"

// TrophyRecord is a trophy as returned by the trophies/ endpoint.
type TrophyRecord struct {
	ID          int64
	Title       string
	Difficulty  TrophyDifficulty
	Description string
	ImageURL    string
	// Achieved is a human readable date such as "3 days ago", or NotAchieved.
	Achieved string
}

// IsAchieved reports whether the player holds the trophy.
func (t TrophyRecord) IsAchieved() bool {
	return t.Achieved != "" && t.Achieved != NotAchieved
}

type trophyWire struct {
	ID          int64            `json:"id"`
	Title       string           `json:"title"`
	Difficulty  TrophyDifficulty `json:"difficulty"`
	Description string           `json:"description"`
	ImageURL    string           `json:"image_url"`
	Achieved    string           `json:"achieved"`
}

// MarshalJSON writes the record back out under its wire keys.
func (t TrophyRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(trophyWire{
		ID:          t.ID,
		Title:       t.Title,
		Difficulty:  t.Difficulty,
		Description: t.Description,
		ImageURL:    t.ImageURL,
		Achieved:    t.Achieved,
	})
}

// DecodeTrophy decodes one trophy object.
func DecodeTrophy(obj gjson.Result) (TrophyRecord, error) {
	difficulty, err := ParseTrophyDifficulty(obj.Get("difficulty").String())
	if err != nil {
		return TrophyRecord{}, err
	}

	return TrophyRecord{
		ID:          obj.Get("id").Int(),
		Title:       obj.Get("title").String(),
		Difficulty:  difficulty,
		Description: obj.Get("description").String(),
		ImageURL:    obj.Get("image_url").String(),
		Achieved:    obj.Get("achieved").String(),
	}, nil
}

// DecodeTrophies decodes the "trophies" array of a payload. A payload without
// the array yields an empty slice.
func DecodeTrophies(payload gjson.Result) ([]TrophyRecord, error) {
	return decodeList(payload, "trophies", DecodeTrophy)
}

func decodeList[T any](payload gjson.Result, key string, decode func(gjson.Result) (T, error)) ([]T, error) {
	arr := payload.Get(key)
	if !arr.Exists() {
		return []T{}, nil
	}
	if !arr.IsArray() {
		return nil, &TransportError{Kind: DecodingError, Err: fmt.Errorf("%q is not an array", key)}
	}

	elems := arr.Array()
	records := make([]T, 0, len(elems))
	for _, elem := range elems {
		record, err := decode(elem)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func unixSeconds(v gjson.Result) time.Time {
	return time.Unix(v.Int(), 0).UTC()
}
