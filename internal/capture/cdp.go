// File: internal/capture/cdp.go

// Package capture translates a normalized config into the CDP actions a
// recording session applies before navigation: cookies, extra headers,
// blocked URL patterns, viewport, network conditions and CPU throttling.
// The session/engine that runs these actions lives outside this package.
package capture

import (
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"github.com/xkilldash9x/pagereel/internal/config"
	"github.com/xkilldash9x/pagereel/internal/config/schema"
)

// ConnectionProfile models an emulated network connection. Throughput is in
// bytes per second, latency in milliseconds, matching the DevTools presets.
type ConnectionProfile struct {
	Latency  float64
	Download float64
	Upload   float64
	Type     network.ConnectionType
}

// connectionProfiles mirrors the DevTools throttling presets. "native" (or
// any unknown name) means no emulation at all.
var connectionProfiles = map[string]ConnectionProfile{
	"3g": {
		Latency:  100,
		Download: 750 * 1024 / 8,
		Upload:   250 * 1024 / 8,
		Type:     network.ConnectionTypeCellular3g,
	},
	"3gfast": {
		Latency:  40,
		Download: 1600 * 1024 / 8,
		Upload:   768 * 1024 / 8,
		Type:     network.ConnectionTypeCellular3g,
	},
	"4g": {
		Latency:  20,
		Download: 9000 * 1024 / 8,
		Upload:   9000 * 1024 / 8,
		Type:     network.ConnectionTypeCellular4g,
	},
	"cable": {
		Latency:  14,
		Download: 5000 * 1024 / 8,
		Upload:   1000 * 1024 / 8,
		Type:     network.ConnectionTypeEthernet,
	},
}

// Profile looks up the throttling preset for a connection name. The second
// return is false when the name means an unthrottled connection.
func Profile(connection string) (ConnectionProfile, bool) {
	p, ok := connectionProfiles[connection]
	return p, ok
}

// CookieParams converts normalized cookies into CDP cookie parameters.
// Unknown extra fields have no CDP equivalent and are left to the engine's
// script-level injection path.
func CookieParams(cookies []schema.Cookie) []*network.CookieParam {
	params := make([]*network.CookieParam, 0, len(cookies))
	for _, c := range cookies {
		p := &network.CookieParam{
			Name:     c.Name,
			Value:    c.Value,
			URL:      c.URL,
			Domain:   c.Domain,
			Path:     c.Path,
			Secure:   c.Secure,
			HTTPOnly: c.HTTPOnly,
		}
		if c.SameSite != "" {
			p.SameSite = network.CookieSameSite(c.SameSite)
		}
		if c.Expires != nil {
			expires := cdp.TimeSinceEpoch(time.Unix(0, int64(*c.Expires*float64(time.Second))))
			p.Expires = &expires
		}
		params = append(params, p)
	}
	return params
}

// Headers converts a normalized header map into CDP extra headers.
func Headers(h map[string]string) network.Headers {
	headers := make(network.Headers, len(h))
	for k, v := range h {
		headers[k] = v
	}
	return headers
}

// BlockPatterns merges the block list with domain blocks expanded into URL
// patterns the browser understands.
func BlockPatterns(cfg *config.Config) []string {
	patterns := make([]string, 0, len(cfg.Block)+len(cfg.BlockDomains))
	patterns = append(patterns, cfg.Block...)
	for _, d := range cfg.BlockDomains {
		patterns = append(patterns, "*://"+d+"/*", "*://*."+d+"/*")
	}
	return patterns
}

// Tasks assembles the pre-navigation action list for a capture session.
func Tasks(cfg *config.Config) chromedp.Tasks {
	var tasks chromedp.Tasks

	tasks = append(tasks, chromedp.EmulateViewport(int64(cfg.Width), int64(cfg.Height)))

	if len(cfg.Cookies) > 0 {
		tasks = append(tasks, network.SetCookies(CookieParams(cfg.Cookies)))
	}
	if len(cfg.Headers) > 0 {
		tasks = append(tasks, network.SetExtraHTTPHeaders(Headers(cfg.Headers)))
	}
	if patterns := BlockPatterns(cfg); len(patterns) > 0 {
		tasks = append(tasks, network.SetBlockedURLs(patterns))
	}
	if profile, ok := Profile(cfg.Connection); ok {
		tasks = append(tasks,
			network.EmulateNetworkConditions(false, profile.Latency, profile.Download, profile.Upload).
				WithConnectionType(profile.Type))
	}
	if cfg.CPUThrottle > 1 {
		tasks = append(tasks, emulation.SetCPUThrottlingRate(cfg.CPUThrottle))
	}

	return tasks
}
