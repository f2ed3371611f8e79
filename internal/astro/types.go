package astro

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
)

// RouteWesternHoroscope is the only upstream route the proxy serves.
const RouteWesternHoroscope = "western_horoscope"

// Environment variable names of the credential pair.
const (
	EnvUserID = "ASTRO_USER_ID"
	EnvAPIKey = "ASTRO_API_KEY"
)

// ErrCredentialsMissing is returned when either credential is empty.
var ErrCredentialsMissing = errors.New("credentials not configured")

// Credentials is the upstream account pair. It is read once at startup and
// never changes afterwards.
type Credentials struct {
	UserID string
	APIKey string
}

// Presence reports, per environment variable name, whether the value is set.
// It never exposes the values themselves.
func (c Credentials) Presence() map[string]bool {
	return map[string]bool{
		EnvUserID: strings.TrimSpace(c.UserID) != "",
		EnvAPIKey: strings.TrimSpace(c.APIKey) != "",
	}
}

// Missing lists the environment variable names that are not set, in a fixed order.
func (c Credentials) Missing() []string {
	var missing []string
	p := c.Presence()
	for _, name := range []string{EnvUserID, EnvAPIKey} {
		if !p[name] {
			missing = append(missing, name)
		}
	}
	return missing
}

// Configured reports whether both credentials are present.
func (c Credentials) Configured() bool {
	return len(c.Missing()) == 0
}

// AuthorizationHeader returns the Basic auth header value for the pair.
func (c Credentials) AuthorizationHeader() string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(c.UserID+":"+c.APIKey))
}

// Response is the upstream reply as received: status plus raw body bytes.
// The body is not assumed to be JSON.
type Response struct {
	StatusCode int
	Body       []byte
}

// OK reports a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Client forwards a JSON body to an upstream route.
//
// A non-nil error means no response was received (connection, DNS, timeout).
// Upstream failures with a response are reported through Response.StatusCode.
type Client interface {
	Forward(ctx context.Context, route string, body []byte) (*Response, error)
}
