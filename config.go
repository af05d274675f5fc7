package cms

import (
	"errors"

	"github.com/agencykit/cms/internal/logging/gologger"
	"github.com/agencykit/cms/pkg/interfaces"
)

var (
	ErrLoggingLevelInvalid  = errors.New("cms: logging level is invalid")
	ErrLoggingFormatInvalid = errors.New("cms: logging format is invalid")
	ErrUploadMaxSizeInvalid = errors.New("cms: upload max size must be positive")
)

// LoggingConfig controls the built-in logger. A custom LoggerProvider passed
// through WithLoggerProvider takes precedence over this block.
type LoggingConfig struct {
	Level     string   `json:"level"`
	Format    string   `json:"format"`
	AddSource bool     `json:"add_source"`
	Focus     []string `json:"focus,omitempty"`
}

// UploadConfig bounds media uploads.
type UploadConfig struct {
	MaxSize       int64    `json:"max_size"`
	AcceptedTypes []string `json:"accepted_types"`
}

// Features toggles optional subsystems. Disabled subsystems are simply not
// constructed; their accessors return nil.
type Features struct {
	MediaLibrary  bool `json:"media_library"`
	Markdown      bool `json:"markdown"`
	Notifications bool `json:"notifications"`
	SEOAnalysis   bool `json:"seo_analysis"`
}

// Config is the top-level module configuration.
type Config struct {
	Logging  LoggingConfig `json:"logging"`
	Upload   UploadConfig  `json:"upload"`
	Features Features      `json:"features"`
}

// DefaultConfig returns the configuration used when callers pass a zero
// Config: console logging at info, 10MB uploads of images and videos, every
// feature on.
func DefaultConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Upload: UploadConfig{
			MaxSize:       10 * 1024 * 1024,
			AcceptedTypes: []string{"image/", "video/"},
		},
		Features: Features{
			MediaLibrary:  true,
			Markdown:      true,
			Notifications: true,
			SEOAnalysis:   true,
		},
	}
}

// isZero reports whether the caller passed an uninitialised Config.
func (c Config) isZero() bool {
	return c.Logging.Level == "" && c.Logging.Format == "" && !c.Logging.AddSource &&
		len(c.Logging.Focus) == 0 &&
		c.Upload.MaxSize == 0 && len(c.Upload.AcceptedTypes) == 0 &&
		c.Features == (Features{})
}

// Validate rejects configurations the module cannot honor.
func (c Config) Validate() error {
	switch c.Logging.Level {
	case "", "trace", "debug", "info", "warn", "error", "fatal":
	default:
		return ErrLoggingLevelInvalid
	}
	switch c.Logging.Format {
	case "", "console", "json", "pretty":
	default:
		return ErrLoggingFormatInvalid
	}
	if c.Upload.MaxSize < 0 {
		return ErrUploadMaxSizeInvalid
	}
	return nil
}

// uploadConstraints maps the config block onto the uploader's contract.
func (c Config) uploadConstraints() interfaces.UploadConstraints {
	return interfaces.UploadConstraints{
		MaxSize:       c.Upload.MaxSize,
		AcceptedTypes: append([]string(nil), c.Upload.AcceptedTypes...),
	}
}

// loggerConfig maps the config block onto the go-logger provider.
func (c Config) loggerConfig() gologger.Config {
	return gologger.Config{
		Level:     c.Logging.Level,
		Format:    c.Logging.Format,
		AddSource: c.Logging.AddSource,
		Focus:     append([]string(nil), c.Logging.Focus...),
	}
}
