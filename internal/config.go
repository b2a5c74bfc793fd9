package internal

import (
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/mauvelian/internal/dateparse"
	"github.com/starford/mauvelian/internal/mauvelian"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Config represents the application configuration.
type Config struct {
	App       ApplicationConfig `yaml:"app"`
	Reference ReferenceConfig   `yaml:"reference"`
	Almanac   AlmanacConfig     `yaml:"almanac"`
	Auth      AuthConfig        `yaml:"auth"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Reference.Validate(); err != nil {
		return err
	}
	if err := c.Almanac.Validate(); err != nil {
		return err
	}
	return c.Auth.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// MauvelianDateConfig names a Mauvelian date in the config file, either
// as year plus day_of_year or as year plus the day_of_season/season pair.
type MauvelianDateConfig struct {
	Year        int    `yaml:"year"`
	DayOfYear   int    `yaml:"day_of_year"`
	DayOfSeason int    `yaml:"day_of_season"`
	Season      string `yaml:"season"`
}

// Date builds the configured date. Range checks live in the date
// constructors.
func (c *MauvelianDateConfig) Date() (mauvelian.Date, error) {
	hasDay := c.DayOfYear != 0
	hasSeason := c.DayOfSeason != 0 || c.Season != ""
	switch {
	case hasDay && hasSeason:
		return mauvelian.Date{}, fmt.Errorf("reference: day_of_year and day_of_season/season are mutually exclusive")
	case hasDay:
		return mauvelian.New(c.Year, c.DayOfYear)
	case hasSeason:
		season, err := dateparse.Season(c.Season)
		if err != nil {
			return mauvelian.Date{}, err
		}
		return mauvelian.NewSeasonDate(c.Year, c.DayOfSeason, season)
	default:
		return mauvelian.Date{}, fmt.Errorf("reference: mauvelian date needs day_of_year or day_of_season with season")
	}
}

// ReferenceConfig holds the optional reference pair anchoring the real
// and Mauvelian calendars. Leave the whole section empty to start
// without one; conversions stay disabled until a reference is set.
type ReferenceConfig struct {
	Real      string              `yaml:"real"`
	Mauvelian MauvelianDateConfig `yaml:"mauvelian"`
}

// IsZero reports whether the section was left empty.
func (c *ReferenceConfig) IsZero() bool {
	return c.Real == "" && c.Mauvelian == (MauvelianDateConfig{})
}

// Pair builds the configured reference pair. An empty section yields a
// zero pair and no error.
func (c *ReferenceConfig) Pair() (mauvelian.Reference, error) {
	if c.IsZero() {
		return mauvelian.Reference{}, nil
	}
	if c.Real == "" || c.Mauvelian == (MauvelianDateConfig{}) {
		return mauvelian.Reference{}, fmt.Errorf("reference: real and mauvelian must be set together")
	}
	day, err := dateparse.Real(c.Real)
	if err != nil {
		return mauvelian.Reference{}, err
	}
	d, err := c.Mauvelian.Date()
	if err != nil {
		return mauvelian.Reference{}, err
	}
	return mauvelian.Reference{Real: day, Mauvelian: d}, nil
}

// Validate validates the reference configuration.
func (c *ReferenceConfig) Validate() error {
	_, err := c.Pair()
	return err
}

// AlmanacConfig holds the SQLite almanac database configuration.
type AlmanacConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the almanac configuration.
func (c *AlmanacConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// AuthConfig controls API authentication.
//
//   - "disabled" (default): no authentication, suitable for local use.
//   - "token": requests must carry a Bearer token; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	// An absent mode means disabled.
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// NewDefaultConfig returns the built-in defaults: port 8080, info
// logging, a local almanac file, auth disabled, no reference pair.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Almanac: AlmanacConfig{
			Path: "./mauvelian.db",
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
	}
}
