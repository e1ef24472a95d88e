// File: internal/capture/cdp_test.go
package capture

import (
	"testing"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/pagereel/internal/config"
	"github.com/xkilldash9x/pagereel/internal/config/schema"
)

func TestCookieParams(t *testing.T) {
	expires := 1893456000.0

	params := CookieParams([]schema.Cookie{
		{
			Name:     "sid",
			Value:    "abc",
			Domain:   "example.com",
			Path:     "/",
			Secure:   true,
			HTTPOnly: true,
			SameSite: schema.CookieSameSiteStrict,
			Expires:  &expires,
		},
		{Name: "plain", Value: "1", URL: "https://example.com"},
	})

	require.Len(t, params, 2)

	first := params[0]
	assert.Equal(t, "sid", first.Name)
	assert.Equal(t, "example.com", first.Domain)
	assert.True(t, first.Secure)
	assert.True(t, first.HTTPOnly)
	assert.Equal(t, network.CookieSameSiteStrict, first.SameSite)
	require.NotNil(t, first.Expires)
	assert.Equal(t, time.Unix(1893456000, 0).UTC(), time.Time(*first.Expires).UTC())

	second := params[1]
	assert.Equal(t, "https://example.com", second.URL)
	assert.Nil(t, second.Expires)
	assert.Equal(t, network.CookieSameSite(""), second.SameSite)
}

func TestCookieParamsExpiresPrecision(t *testing.T) {
	// Sub-second expirations must not be truncated.
	expires := 1500.25
	params := CookieParams([]schema.Cookie{{Name: "s", Value: "v", Expires: &expires}})
	require.Len(t, params, 1)
	got := time.Time(*params[0].Expires)
	assert.Equal(t, int64(1500250), got.UnixMilli())
}

func TestHeaders(t *testing.T) {
	headers := Headers(map[string]string{"X-A": "1", "X-B": "2"})
	assert.Equal(t, network.Headers{"X-A": "1", "X-B": "2"}, headers)
}

func TestBlockPatterns(t *testing.T) {
	cfg := &config.Config{
		Block:        []string{"*tracker*"},
		BlockDomains: []string{"ads.example"},
	}
	patterns := BlockPatterns(cfg)
	assert.Equal(t, []string{"*tracker*", "*://ads.example/*", "*://*.ads.example/*"}, patterns)
}

func TestProfile(t *testing.T) {
	t.Run("known profiles", func(t *testing.T) {
		for _, name := range []string{"3g", "3gfast", "4g", "cable"} {
			p, ok := Profile(name)
			require.True(t, ok, "profile %s should exist", name)
			assert.Positive(t, p.Latency)
			assert.Positive(t, p.Download)
			assert.Positive(t, p.Upload)
		}
	})

	t.Run("native and unknown mean unthrottled", func(t *testing.T) {
		_, ok := Profile("native")
		assert.False(t, ok)
		_, ok = Profile("warp-speed")
		assert.False(t, ok)
	})
}

func TestTasks(t *testing.T) {
	t.Run("minimal config only sets the viewport", func(t *testing.T) {
		cfg := &config.Config{Width: 1366, Height: 768, Connection: "native", CPUThrottle: 1}
		tasks := Tasks(cfg)
		assert.Len(t, tasks, 1)
	})

	t.Run("block patterns emit a blocked URLs action", func(t *testing.T) {
		cfg := &config.Config{
			Width:        1366,
			Height:       768,
			Connection:   "native",
			CPUThrottle:  1,
			BlockDomains: []string{"ads.example"},
		}
		tasks := Tasks(cfg)
		require.Len(t, tasks, 2)
		blocked, ok := tasks[1].(*network.SetBlockedURLsParams)
		require.True(t, ok, "second action should set blocked URLs")
		assert.Equal(t, []string{"*://ads.example/*", "*://*.ads.example/*"}, blocked.URLs)
	})

	t.Run("full config emits every action group", func(t *testing.T) {
		cfg := &config.Config{
			Width:       1920,
			Height:      1080,
			Connection:  "3g",
			CPUThrottle: 4,
			Cookies:     []schema.Cookie{{Name: "a", Value: "1"}},
			Headers:     map[string]string{"X-A": "1"},
			Block:       []string{"*ads*"},
		}
		tasks := Tasks(cfg)
		// viewport + cookies + headers + blocked URLs + network conditions + CPU throttle
		assert.Len(t, tasks, 6)
	})
}
