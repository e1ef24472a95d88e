// File: internal/config/config.go

// Package config shapes and validates pagereel's capture options. It accepts
// the loosely-typed record assembled by the CLI or by a programmatic caller,
// runs every structured field through its canonical schema and produces one
// fully-defaulted Config for the capture engine. Nothing here executes the
// configuration; this layer only normalizes it.
package config

import (
	"github.com/spf13/viper"

	"github.com/xkilldash9x/pagereel/internal/config/schema"
)

// Capture defaults. Width/height match the most common desktop viewport in
// usage stats, which keeps recordings comparable across runs.
const (
	DefaultBrowser     = "chromium"
	DefaultWidth       = 1366
	DefaultHeight      = 768
	DefaultFrameRate   = 30
	DefaultTimeoutSecs = 60
	DefaultCPUThrottle = 1.0
	DefaultConnection  = "native"
	DefaultDelayUsing  = DelayUsingFulfill
)

// Interception modes for per-pattern request delays. With "fulfill" the
// delayed request is answered from the interceptor; with "continue" it is
// released to the network after the delay.
const (
	DelayUsingFulfill  = "fulfill"
	DelayUsingContinue = "continue"
)

// Options is the raw input record. Structured fields are typed `any` on
// purpose: a string value means JSON text still pending a parse (the CLI
// path), any other non-nil value is an already-structured input (the
// programmatic path). Width, Height, FrameRate, Timeout and CPUThrottle
// likewise accept either numeric text or a number; a pre-typed number is
// used verbatim, so an explicit zero survives normalization.
type Options struct {
	URL     string
	Browser string

	Width       any
	Height      any
	FrameRate   any
	Timeout     any
	CPUThrottle any

	Cookies      any
	Headers      any
	Auth         any
	Delay        any
	FirefoxPrefs any
	OverrideHost any

	DelayUsing   string
	Block        []string
	BlockDomains []string
	UploadURL    string
	Connection   string

	Zip   bool
	Dry   bool
	Debug bool
	HTML  bool
}

// Config is the normalized record consumed by the capture engine. Every
// field is typed and defaulted; nothing downstream parses option text again.
type Config struct {
	URL     string
	Browser string

	Width       int
	Height      int
	FrameRate   int
	Timeout     int
	CPUThrottle float64

	Cookies      []schema.Cookie
	Headers      map[string]string
	Auth         *schema.Auth
	Delay        map[string]float64
	FirefoxPrefs map[string]any
	OverrideHost map[string]string

	DelayUsing   string
	Block        []string
	BlockDomains []string
	UploadURL    string
	Connection   string

	Zip   bool
	Dry   bool
	Debug bool
	HTML  bool
}

// LoggerConfig holds the settings for the CLI's logger.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// SetDefaults initializes default values on a viper instance for the CLI
// shell. The capture defaults mirror the constants above so flag, file and
// env sources all agree.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "pagereel")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)

	// -- Capture --
	v.SetDefault("capture.browser", DefaultBrowser)
	v.SetDefault("capture.width", DefaultWidth)
	v.SetDefault("capture.height", DefaultHeight)
	v.SetDefault("capture.frame_rate", DefaultFrameRate)
	v.SetDefault("capture.timeout", DefaultTimeoutSecs)
	v.SetDefault("capture.connection", DefaultConnection)
	v.SetDefault("capture.delay_using", DefaultDelayUsing)
}
