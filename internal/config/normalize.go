// File: internal/config/normalize.go
package config

import (
	"fmt"
	"math"
	"net/url"
	"strings"

	"github.com/xkilldash9x/pagereel/internal/config/schema"
)

// Normalize turns a loosely-typed Options record into one fully-typed,
// fully-defaulted Config. The input is never mutated and no state is shared
// between calls. The first field that fails validation aborts the whole
// call; nothing is downgraded to a warning.
func Normalize(opts Options) (*Config, error) {
	cfg := &Config{
		URL:        opts.URL,
		Browser:    stringOr(opts.Browser, DefaultBrowser),
		Connection: stringOr(opts.Connection, DefaultConnection),
		DelayUsing: DefaultDelayUsing,
		UploadURL:  opts.UploadURL,
		Zip:        opts.Zip,
		Dry:        opts.Dry,
		Debug:      opts.Debug,
		HTML:       opts.HTML,
	}

	var err error
	if cfg.Width, err = intOption("--width", opts.Width, DefaultWidth); err != nil {
		return nil, err
	}
	if cfg.Height, err = intOption("--height", opts.Height, DefaultHeight); err != nil {
		return nil, err
	}
	if cfg.FrameRate, err = intOption("--frame-rate", opts.FrameRate, DefaultFrameRate); err != nil {
		return nil, err
	}
	if cfg.Timeout, err = intOption("--timeout", opts.Timeout, DefaultTimeoutSecs); err != nil {
		return nil, err
	}
	if cfg.CPUThrottle, err = floatOption("--cpu-throttle", opts.CPUThrottle, DefaultCPUThrottle); err != nil {
		return nil, err
	}

	if opts.Cookies != nil {
		if cfg.Cookies, err = structured("--cookies", opts.Cookies, schema.Cookies); err != nil {
			return nil, err
		}
	}
	if opts.Headers != nil {
		if cfg.Headers, err = structured("--headers", opts.Headers, schema.Headers); err != nil {
			return nil, err
		}
	}
	if opts.Auth != nil {
		auth, err := structured("--auth", opts.Auth, schema.BasicAuth)
		if err != nil {
			return nil, err
		}
		cfg.Auth = &auth
	}
	if opts.Delay != nil {
		if cfg.Delay, err = structured("--delay", opts.Delay, schema.Delay); err != nil {
			return nil, err
		}
	}
	if opts.FirefoxPrefs != nil {
		if cfg.FirefoxPrefs, err = structured("--firefox-prefs", opts.FirefoxPrefs, schema.FirefoxPrefs); err != nil {
			return nil, err
		}
	}
	if opts.OverrideHost != nil {
		if cfg.OverrideHost, err = structured("--override-host", opts.OverrideHost, schema.OverrideHost); err != nil {
			return nil, err
		}
	}

	// delayUsing is deliberately lenient: an unrecognized value keeps the
	// default instead of failing, unlike every other enum here.
	if opts.DelayUsing == DelayUsingFulfill || opts.DelayUsing == DelayUsingContinue {
		cfg.DelayUsing = opts.DelayUsing
	}

	if cfg.Block, err = tokenList("--block", opts.Block); err != nil {
		return nil, err
	}
	if cfg.BlockDomains, err = tokenList("--block-domains", opts.BlockDomains); err != nil {
		return nil, err
	}

	if opts.UploadURL != "" {
		if u, uerr := url.ParseRequestURI(opts.UploadURL); uerr != nil || u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("Invalid uploadUrl option: %q is not a well formed URL", opts.UploadURL)
		}
	}

	return cfg, nil
}

// structured routes one option through its schema. A string value is JSON
// text pending a parse; any other value is validated as-is. The dispatch is
// on the actual runtime type, never on a separate discriminator.
func structured[T any](flag string, v any, s schema.Schema[T]) (T, error) {
	if raw, ok := v.(string); ok {
		return schema.Parse(flag, raw, s)
	}
	return schema.Validate(flag, v, s)
}

// intOption resolves a numeric option that may arrive as text, a number or
// not at all. Text goes through the positive-integer schema; a pre-typed
// integer is an explicit choice and is kept verbatim, zero included. A
// non-integral float is never truncated; it fails the integer schema.
func intOption(flag string, v any, def int) (int, error) {
	switch n := v.(type) {
	case nil:
		return def, nil
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return schema.Validate(flag, v, schema.PositiveInt)
		}
		return int(n), nil
	default:
		return schema.Validate(flag, v, schema.PositiveInt)
	}
}

func floatOption(flag string, v any, def float64) (float64, error) {
	switch n := v.(type) {
	case nil:
		return def, nil
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	default:
		return schema.Validate(flag, v, schema.PositiveFloat)
	}
}

// tokenList flattens free-text list entries into one ordered list. An entry
// containing "[" is treated as a JSON array of strings; anything else is
// split on commas with empty tokens dropped. Failures are re-raised with a
// prefix naming the flag so the user knows which option broke.
func tokenList(flag string, entries []string) ([]string, error) {
	var out []string
	for _, entry := range entries {
		if strings.Contains(entry, "[") {
			items, err := schema.Parse(flag, entry, schema.StringList)
			if err != nil {
				return nil, fmt.Errorf("Problem parsing %q options - %s", flag, err.Error())
			}
			out = append(out, items...)
			continue
		}
		for _, token := range strings.Split(entry, ",") {
			if token != "" {
				out = append(out, token)
			}
		}
	}
	return out, nil
}

func stringOr(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
