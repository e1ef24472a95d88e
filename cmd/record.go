// File: cmd/record.go
package cmd

import (
	"fmt"

	json "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/xkilldash9x/pagereel/internal/capture"
	"github.com/xkilldash9x/pagereel/internal/config"
	"github.com/xkilldash9x/pagereel/internal/observability"
)

// newRecordCmd creates and configures the `record` command. Every structured
// option is registered as plain text and handed to the normalizer raw; all
// parsing and validation lives in internal/config, not here.
func newRecordCmd() *cobra.Command {
	var (
		browser      string
		delayUsing   string
		block        []string
		blockDomains []string
		uploadURL    string
		connection   string
		zipOut       bool
		dry          bool
		debug        bool
		html         bool
	)

	recordCmd := &cobra.Command{
		Use:   "record <url>",
		Short: "Validates capture options and builds the session plan for a page recording",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return viper.BindPFlags(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := observability.GetLogger()
			flags := cmd.Flags()

			opts := config.Options{
				URL:          args[0],
				Browser:      browser,
				DelayUsing:   delayUsing,
				Block:        block,
				BlockDomains: blockDomains,
				UploadURL:    uploadURL,
				Connection:   connection,
				Zip:          zipOut,
				Dry:          dry,
				Debug:        debug,
				HTML:         html,
			}

			// Only flags the user actually set reach the normalizer; absent
			// fields stay nil and pick up their defaults there.
			text := map[string]*any{
				"width":         &opts.Width,
				"height":        &opts.Height,
				"frame-rate":    &opts.FrameRate,
				"timeout":       &opts.Timeout,
				"cpu-throttle":  &opts.CPUThrottle,
				"cookies":       &opts.Cookies,
				"headers":       &opts.Headers,
				"auth":          &opts.Auth,
				"delay":         &opts.Delay,
				"firefox-prefs": &opts.FirefoxPrefs,
				"override-host": &opts.OverrideHost,
			}
			for name, dst := range text {
				if flags.Changed(name) {
					raw, err := flags.GetString(name)
					if err != nil {
						return err
					}
					*dst = raw
				}
			}

			cfg, err := config.Normalize(opts)
			if err != nil {
				return err
			}

			plan := capture.Tasks(cfg)
			logger.Info("Capture configuration normalized",
				zap.String("url", cfg.URL),
				zap.String("browser", cfg.Browser),
				zap.Int("width", cfg.Width),
				zap.Int("height", cfg.Height),
				zap.Int("plan_actions", len(plan)),
			)

			if cfg.Dry {
				out, err := json.MarshalIndent(cfg, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to encode config: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return nil
			}

			// The capture engine consumes cfg and plan from here on.
			return runCapture(cmd, cfg, len(plan))
		},
	}

	f := recordCmd.Flags()
	f.StringVar(&browser, "browser", "", "browser to record with (chromium or firefox)")
	f.String("width", "", "viewport width in pixels")
	f.String("height", "", "viewport height in pixels")
	f.String("frame-rate", "", "recording frame rate")
	f.String("timeout", "", "navigation timeout in seconds")
	f.String("cpu-throttle", "", "CPU slowdown multiplier")
	f.String("cookies", "", "cookie object or array of cookie objects, as JSON")
	f.String("headers", "", "extra request headers, as a JSON object of strings")
	f.String("auth", "", "HTTP basic credentials, as JSON")
	f.String("delay", "", "per-URL-pattern request delays in ms, as JSON")
	f.StringVar(&delayUsing, "delay-using", "", "delay interception mode: fulfill or continue")
	f.String("firefox-prefs", "", "Firefox preferences, as a JSON object of scalars")
	f.String("override-host", "", "host replacements, as a JSON object of strings")
	f.StringArrayVar(&block, "block", nil, "URL patterns to block (JSON array or comma separated)")
	f.StringArrayVar(&blockDomains, "block-domains", nil, "domains to block (JSON array or comma separated)")
	f.StringVar(&uploadURL, "upload-url", "", "URL to upload the finished capture to")
	f.StringVar(&connection, "connection", "", "emulated connection profile (native, cable, 4g, 3gfast, 3g)")
	f.BoolVar(&zipOut, "zip", false, "zip the capture artifacts")
	f.BoolVar(&dry, "dry", false, "validate and print the normalized configuration without recording")
	f.BoolVar(&debug, "debug", false, "enable verbose capture debugging")
	f.BoolVar(&html, "html", false, "also capture a rendered HTML snapshot")

	return recordCmd
}

// runCapture hands the normalized configuration to the recording engine.
// The engine ships separately; this build reports the plan and exits.
func runCapture(cmd *cobra.Command, cfg *config.Config, planActions int) error {
	observability.GetLogger().Info("Handing off to capture engine",
		zap.String("url", cfg.URL),
		zap.Int("plan_actions", planActions),
	)
	fmt.Fprintf(cmd.OutOrStdout(), "recording %s (%dx%d @ %dfps, %s)\n",
		cfg.URL, cfg.Width, cfg.Height, cfg.FrameRate, cfg.Browser)
	return nil
}
