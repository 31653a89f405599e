package telegraph

import (
	"fmt"
	"log/slog"
	"net/url"
	"time"
)

// Config holds the client configuration. The zero value is usable:
// defaults point at the public telegra.ph service with no access token.
type Config struct {
	// AccessToken authorizes account-scoped operations. Optional:
	// CreateAccount works without one and can install the returned
	// token on the client.
	AccessToken string `yaml:"access_token"`
	// Domain is the Telegraph domain, e.g. "telegra.ph" or "graph.org".
	Domain string `yaml:"domain"`
	// BaseURL overrides the derived API endpoint (https://api.<domain>).
	// Mostly useful for tests.
	BaseURL string `yaml:"base_url"`
	// UploadURL overrides the derived upload endpoint
	// (https://<domain>/upload).
	UploadURL string `yaml:"upload_url"`
	// Timeout bounds each HTTP request.
	Timeout time.Duration `yaml:"timeout"`
	// Logger receives debug-level request traces. Nil disables them.
	Logger *slog.Logger `yaml:"-"`
}

// defaults applies default values to unset fields.
func (c *Config) defaults() {
	if c.Domain == "" {
		c.Domain = "telegra.ph"
	}
	if c.BaseURL == "" {
		c.BaseURL = "https://api." + c.Domain
	}
	if c.UploadURL == "" {
		c.UploadURL = "https://" + c.Domain + "/upload"
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
}

// validate checks configuration field constraints after defaults have
// been applied.
func (c *Config) validate() error {
	for field, raw := range map[string]string{"base_url": c.BaseURL, "upload_url": c.UploadURL} {
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("telegraph: %s must be a valid http/https URL, got %q", field, raw)
		}
	}
	return nil
}
