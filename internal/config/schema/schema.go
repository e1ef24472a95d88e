// File: internal/config/schema/schema.go

// Package schema declares the accepted shape of every structured pagereel
// option and the checkers that validate raw or pre-typed values against
// those shapes. Checkers are pure: they return a typed value or a list of
// issues and never touch shared state, so concurrent validation of
// independent option sets is safe by construction.
package schema

import (
	"fmt"
	"math"
	"sort"
	"strconv"
)

// Schema validates a candidate value and either produces the typed result or
// a deterministic list of issues. An implementation must not mutate its
// input and must accept both values decoded from JSON (maps, slices,
// float64 numbers) and already-typed Go values supplied programmatically.
type Schema[T any] interface {
	Check(v any) (T, []Issue)
}

// CookieSameSite constrains the sameSite cookie attribute.
type CookieSameSite string

const (
	CookieSameSiteStrict CookieSameSite = "Strict"
	CookieSameSiteLax    CookieSameSite = "Lax"
	CookieSameSiteNone   CookieSameSite = "None"
)

// Cookie is a browser cookie to install before capture starts. Name and
// Value are mandatory; either Domain+Path or URL identify the target, but
// neither combination is enforced here because the capture engine fills the
// gaps from the page URL. Fields this schema does not know about are carried
// through in Extra rather than rejected.
type Cookie struct {
	Name     string
	Value    string
	Domain   string
	Path     string
	Expires  *float64
	HTTPOnly bool
	Secure   bool
	SameSite CookieSameSite
	URL      string
	Extra    map[string]any
}

// SendPolicy controls when HTTP basic credentials are attached.
type SendPolicy string

const (
	SendAlways       SendPolicy = "always"
	SendUnauthorized SendPolicy = "unauthorized"
)

// Auth holds HTTP basic credentials for the target origin.
type Auth struct {
	Username string
	Password string
	Origin   string
	Send     SendPolicy
}

// The registry: one canonical checker per structured option, shared by the
// CLI text path and the programmatic path.
var (
	Cookies       Schema[[]Cookie]           = cookiesSchema{}
	Headers       Schema[map[string]string]  = stringMapSchema{what: "header"}
	BasicAuth     Schema[Auth]               = authSchema{}
	FirefoxPrefs  Schema[map[string]any]     = prefsSchema{}
	OverrideHost  Schema[map[string]string]  = stringMapSchema{what: "host override"}
	Delay         Schema[map[string]float64] = delaySchema{}
	StringList    Schema[[]string]           = stringListSchema{}
	PositiveInt   Schema[int]                = positiveIntSchema{}
	PositiveFloat Schema[float64]            = positiveFloatSchema{}
)

// -- Cookies --

type cookiesSchema struct{}

func (s cookiesSchema) Check(v any) ([]Cookie, []Issue) {
	switch val := v.(type) {
	case Cookie:
		issues := checkTypedCookie(nil, val)
		return []Cookie{val}, issues
	case []Cookie:
		var issues []Issue
		for i, c := range val {
			issues = append(issues, checkTypedCookie([]string{strconv.Itoa(i)}, c)...)
		}
		return val, issues
	case map[string]any:
		c, issues := checkCookieObject(nil, val)
		return []Cookie{c}, issues
	case []any:
		cookies := make([]Cookie, 0, len(val))
		var issues []Issue
		for i, elem := range val {
			path := []string{strconv.Itoa(i)}
			obj, ok := elem.(map[string]any)
			if !ok {
				issues = append(issues, issuef(path, "must be a cookie object"))
				continue
			}
			c, elemIssues := checkCookieObject(path, obj)
			issues = append(issues, elemIssues...)
			cookies = append(cookies, c)
		}
		return cookies, issues
	default:
		return nil, []Issue{issuef(nil, "must be a cookie object or an array of cookie objects")}
	}
}

func checkTypedCookie(path []string, c Cookie) []Issue {
	var issues []Issue
	if c.Name == "" {
		issues = append(issues, issuef(child(path, "name"), "is required"))
	}
	if c.Value == "" {
		issues = append(issues, issuef(child(path, "value"), "is required"))
	}
	if c.SameSite != "" {
		issues = append(issues, checkSameSite(path, string(c.SameSite))...)
	}
	return issues
}

func checkCookieObject(path []string, obj map[string]any) (Cookie, []Issue) {
	var c Cookie
	var issues []Issue

	str := func(key string, dst *string, required bool) {
		raw, present := obj[key]
		if !present {
			if required {
				issues = append(issues, issuef(child(path, key), "is required"))
			}
			return
		}
		s, ok := raw.(string)
		if !ok {
			issues = append(issues, issuef(child(path, key), "must be a string"))
			return
		}
		*dst = s
	}
	boolean := func(key string, dst *bool) {
		raw, present := obj[key]
		if !present {
			return
		}
		b, ok := raw.(bool)
		if !ok {
			issues = append(issues, issuef(child(path, key), "must be a boolean"))
			return
		}
		*dst = b
	}

	str("name", &c.Name, true)
	str("value", &c.Value, true)
	str("domain", &c.Domain, false)
	str("path", &c.Path, false)
	str("url", &c.URL, false)
	boolean("httpOnly", &c.HTTPOnly)
	boolean("secure", &c.Secure)

	if raw, present := obj["expires"]; present {
		if n, ok := asNumber(raw); ok {
			c.Expires = &n
		} else {
			issues = append(issues, issuef(child(path, "expires"), "must be a number"))
		}
	}
	if raw, present := obj["sameSite"]; present {
		if s, ok := raw.(string); ok {
			if ssIssues := checkSameSite(path, s); len(ssIssues) > 0 {
				issues = append(issues, ssIssues...)
			} else {
				c.SameSite = CookieSameSite(s)
			}
		} else {
			issues = append(issues, issuef(child(path, "sameSite"), "must be a string"))
		}
	}

	// Anything beyond the declared fields rides along untouched.
	for _, key := range sortedKeys(obj) {
		switch key {
		case "name", "value", "domain", "path", "url", "httpOnly", "secure", "expires", "sameSite":
		default:
			if c.Extra == nil {
				c.Extra = make(map[string]any)
			}
			c.Extra[key] = obj[key]
		}
	}

	return c, issues
}

func checkSameSite(path []string, s string) []Issue {
	switch CookieSameSite(s) {
	case CookieSameSiteStrict, CookieSameSiteLax, CookieSameSiteNone:
		return nil
	}
	return []Issue{issuef(child(path, "sameSite"), `must be one of "Strict", "Lax" or "None"`)}
}

// -- Headers / host overrides --

// stringMapSchema accepts a flat object whose values are all strings. It
// backs both the headers option and the host override option; a top-level
// array or scalar fails at the root.
type stringMapSchema struct {
	what string
}

func (s stringMapSchema) Check(v any) (map[string]string, []Issue) {
	switch val := v.(type) {
	case map[string]string:
		out := make(map[string]string, len(val))
		for k, value := range val {
			out[k] = value
		}
		return out, nil
	case map[string]any:
		out := make(map[string]string, len(val))
		var issues []Issue
		for _, key := range sortedKeys(val) {
			str, ok := val[key].(string)
			if !ok {
				issues = append(issues, issuef([]string{key}, "must be a string"))
				continue
			}
			out[key] = str
		}
		return out, issues
	default:
		return nil, []Issue{issuef(nil, fmt.Sprintf("must be an object of %s strings", s.what))}
	}
}

// -- Basic auth --

type authSchema struct{}

func (s authSchema) Check(v any) (Auth, []Issue) {
	switch val := v.(type) {
	case Auth:
		return val, checkTypedAuth(val)
	case *Auth:
		if val == nil {
			return Auth{}, []Issue{issuef(nil, "must be a credentials object")}
		}
		return *val, checkTypedAuth(*val)
	case map[string]any:
		return checkAuthObject(val)
	default:
		return Auth{}, []Issue{issuef(nil, "must be a credentials object")}
	}
}

func checkTypedAuth(a Auth) []Issue {
	var issues []Issue
	if a.Username == "" {
		issues = append(issues, issuef([]string{"username"}, "is required"))
	}
	if a.Password == "" {
		issues = append(issues, issuef([]string{"password"}, "is required"))
	}
	if a.Send != "" && a.Send != SendAlways && a.Send != SendUnauthorized {
		issues = append(issues, issuef([]string{"send"}, `must be "always" or "unauthorized"`))
	}
	return issues
}

func checkAuthObject(obj map[string]any) (Auth, []Issue) {
	var a Auth
	var issues []Issue

	required := func(key string, dst *string) {
		raw, present := obj[key]
		if !present {
			issues = append(issues, issuef([]string{key}, "is required"))
			return
		}
		s, ok := raw.(string)
		if !ok {
			issues = append(issues, issuef([]string{key}, "must be a string"))
			return
		}
		*dst = s
	}

	required("username", &a.Username)
	required("password", &a.Password)

	if raw, present := obj["origin"]; present {
		if s, ok := raw.(string); ok {
			a.Origin = s
		} else {
			issues = append(issues, issuef([]string{"origin"}, "must be a string"))
		}
	}
	if raw, present := obj["send"]; present {
		s, ok := raw.(string)
		if !ok || (SendPolicy(s) != SendAlways && SendPolicy(s) != SendUnauthorized) {
			issues = append(issues, issuef([]string{"send"}, `must be "always" or "unauthorized"`))
		} else {
			a.Send = SendPolicy(s)
		}
	}

	return a, issues
}

// -- Firefox preferences --

// prefsSchema accepts a map of scalar preference values. Null, arrays and
// nested objects are rejected per key because Firefox's pref store only
// holds strings, numbers and booleans.
type prefsSchema struct{}

func (s prefsSchema) Check(v any) (map[string]any, []Issue) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, []Issue{issuef(nil, "must be an object of scalar preference values")}
	}
	out := make(map[string]any, len(obj))
	var issues []Issue
	for _, key := range sortedKeys(obj) {
		switch value := obj[key].(type) {
		case string, bool:
			out[key] = value
		case float64, float32, int, int64:
			out[key] = value
		case nil:
			issues = append(issues, issuef([]string{key}, "must not be null"))
		default:
			issues = append(issues, issuef([]string{key}, "must be a string, number or boolean"))
		}
	}
	return out, issues
}

// -- Request delays --

type delaySchema struct{}

func (s delaySchema) Check(v any) (map[string]float64, []Issue) {
	switch val := v.(type) {
	case map[string]float64:
		out := make(map[string]float64, len(val))
		for k, ms := range val {
			out[k] = ms
		}
		return out, nil
	case map[string]any:
		out := make(map[string]float64, len(val))
		var issues []Issue
		for _, key := range sortedKeys(val) {
			n, ok := asNumber(val[key])
			if !ok {
				issues = append(issues, issuef([]string{key}, "must be a number of milliseconds"))
				continue
			}
			out[key] = n
		}
		return out, issues
	default:
		return nil, []Issue{issuef(nil, "must be an object mapping URL patterns to millisecond delays")}
	}
}

// -- String lists --

type stringListSchema struct{}

func (s stringListSchema) Check(v any) ([]string, []Issue) {
	switch val := v.(type) {
	case []string:
		out := make([]string, len(val))
		copy(out, val)
		return out, nil
	case []any:
		out := make([]string, 0, len(val))
		var issues []Issue
		for i, elem := range val {
			str, ok := elem.(string)
			if !ok {
				issues = append(issues, issuef([]string{strconv.Itoa(i)}, "must be a string"))
				continue
			}
			out = append(out, str)
		}
		return out, issues
	default:
		return nil, []Issue{issuef(nil, "must be an array of strings")}
	}
}

// -- Positive numerics --

// positiveIntSchema coerces a numeric-looking string or a number to an
// integer that is strictly greater than zero.
type positiveIntSchema struct{}

func (s positiveIntSchema) Check(v any) (int, []Issue) {
	n, ok := coerceNumber(v)
	if !ok {
		return 0, []Issue{issuef(nil, literal(v)+" is not a number")}
	}
	if n != math.Trunc(n) {
		return 0, []Issue{issuef(nil, literal(v)+" is not an integer")}
	}
	if n <= 0 {
		return 0, []Issue{issuef(nil, literal(v)+" is not a positive integer")}
	}
	return int(n), nil
}

// positiveFloatSchema coerces a numeric-looking string or a number to a
// float that is strictly greater than zero.
type positiveFloatSchema struct{}

func (s positiveFloatSchema) Check(v any) (float64, []Issue) {
	n, ok := coerceNumber(v)
	if !ok {
		return 0, []Issue{issuef(nil, literal(v)+" is not a number")}
	}
	if n <= 0 {
		return 0, []Issue{issuef(nil, literal(v)+" is not a positive number")}
	}
	return n, nil
}

// -- helpers --

// asNumber reports a value already carried as a Go numeric type. It does not
// parse strings; that coercion belongs to the positive-number schemas only.
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func coerceNumber(v any) (float64, bool) {
	if s, ok := v.(string); ok {
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return asNumber(v)
}

// literal renders an offending value for an error message, quoting strings
// so an empty or whitespace input stays visible.
func literal(v any) string {
	if s, ok := v.(string); ok {
		return strconv.Quote(s)
	}
	return fmt.Sprintf("%v", v)
}

// sortedKeys keeps per-key issue order deterministic across runs.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
