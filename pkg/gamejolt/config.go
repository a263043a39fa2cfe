package gamejolt

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultHost    = "api.gamejolt.com"
	DefaultVersion = VersionV1_2
)

// Config holds the process-wide API settings. Set it once before the first call.
// Timeout is a transport setting: NewClient ignores it, TransportConfig
// carries it to NewHTTPTransport.
type Config struct {
	Host    string        `yaml:"host" env:"GAMEJOLT_API_HOST" env-default:"api.gamejolt.com" validate:"required,hostname_rfc1123|hostname_port"`
	Version Version       `yaml:"version" env:"GAMEJOLT_API_VERSION" env-default:"v1_2" validate:"required"`
	GameID  string        `yaml:"game_id" env:"GAMEJOLT_GAME_ID" validate:"required,numeric"`
	GameKey string        `yaml:"game_key" env:"GAMEJOLT_GAME_KEY" validate:"required"`
	Timeout time.Duration `yaml:"timeout" env:"GAMEJOLT_TIMEOUT" env-default:"10s"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// WithDefaults fills an empty Host and Version with the public defaults.
func (c Config) WithDefaults() Config {
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Version == "" {
		c.Version = DefaultVersion
	}
	return c
}

// Validate checks field presence and format, then the protocol version.
// Any problem is reported as a *ConfigurationError.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return &ConfigurationError{
				Field:  fe.Field(),
				Reason: fmt.Sprintf("failed %q validation", fe.Tag()),
			}
		}
		return &ConfigurationError{Reason: err.Error()}
	}

	if !IsSupportedVersion(c.Version) {
		return &ConfigurationError{
			Field:  "Version",
			Reason: fmt.Sprintf("unsupported protocol version %q", c.Version),
		}
	}

	return nil
}

// TransportConfig returns the HTTPTransportConfig for c.
func (c Config) TransportConfig() HTTPTransportConfig {
	return HTTPTransportConfig{Timeout: c.Timeout}
}

// BaseURL returns https://<host>/api/game/<version>/.
func (c Config) BaseURL() string {
	return "https://" + c.Host + "/api/game/" + c.Version.String() + "/"
}
