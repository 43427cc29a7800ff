package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Kind classifies a configuration failure.
type Kind int

const (
	Missing Kind = iota
	Invalid
)

// ConfigError reports a configuration problem. It is unrecoverable: the
// process reports it once and exits before any polling begins.
type ConfigError struct {
	Kind   Kind
	Option string
	Detail string
}

func (e *ConfigError) Error() string {
	if e.Kind == Missing {
		return fmt.Sprintf("config: missing %s", e.Option)
	}
	return fmt.Sprintf("config: invalid %s: %s", e.Option, e.Detail)
}

// Config holds everything the monitor needs for one session. Only Interval
// and Scope affect core behavior; the rest is connection glue.
type Config struct {
	Endpoint string
	Username string
	Password string

	Family       string // "resync" or "tasks"
	Scope        string // cluster name / task scope
	Interval     time.Duration
	MaxTransient int
	Insecure     bool
	Verbose      bool
}

// Load parses flags, environment variables (VCWATCH_ prefix) and an optional
// YAML config file into a validated Config. Flags win over environment,
// environment wins over the file. Exactly one positional argument is
// expected: the management plane endpoint URI, optionally carrying
// credentials in its userinfo part.
func Load(args []string) (*Config, error) {
	fs := pflag.NewFlagSet("vcwatch", pflag.ContinueOnError)
	fs.String("family", "resync", "operation family to watch (resync or tasks)")
	fs.String("scope", "", "cluster name (resync) or task scope; empty task scope watches the whole inventory")
	fs.Duration("interval", 300*time.Second, "polling interval (e.g. 30s, 5m)")
	fs.Int("max-transient", 3, "consecutive transient fetch failures tolerated before giving up")
	fs.Bool("insecure", false, "skip TLS certificate verification")
	fs.BoolP("verbose", "v", false, "enable debug logging")
	fs.String("username", "", "management plane user (also VCWATCH_USERNAME)")
	fs.String("password", "", "management plane password (also VCWATCH_PASSWORD)")
	configFile := fs.String("config", "", "path to a YAML config file")

	if err := fs.Parse(args); err != nil {
		return nil, &ConfigError{Kind: Invalid, Option: "flags", Detail: err.Error()}
	}

	v := viper.New()
	v.SetEnvPrefix("VCWATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, &ConfigError{Kind: Invalid, Option: "flags", Detail: err.Error()}
	}
	if *configFile != "" {
		v.SetConfigFile(*configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, &ConfigError{Kind: Invalid, Option: "--config", Detail: err.Error()}
		}
	}

	positional := fs.Args()
	if len(positional) == 0 {
		return nil, &ConfigError{Kind: Missing, Option: "endpoint URI argument"}
	}
	if len(positional) > 1 {
		return nil, &ConfigError{Kind: Invalid, Option: "arguments", Detail: fmt.Sprintf("unexpected argument %q", positional[1])}
	}

	endpoint, user, pass, err := parseEndpoint(positional[0])
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Endpoint:     endpoint,
		Username:     v.GetString("username"),
		Password:     v.GetString("password"),
		Family:       v.GetString("family"),
		Scope:        v.GetString("scope"),
		Interval:     v.GetDuration("interval"),
		MaxTransient: v.GetInt("max-transient"),
		Insecure:     v.GetBool("insecure"),
		Verbose:      v.GetBool("verbose"),
	}
	// Credentials embedded in the URI win over flags and environment.
	if user != "" {
		cfg.Username = user
		cfg.Password = pass
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Family {
	case "resync", "tasks":
	default:
		return &ConfigError{Kind: Invalid, Option: "--family", Detail: fmt.Sprintf("%q is not one of resync, tasks", c.Family)}
	}
	if c.Family == "resync" && c.Scope == "" {
		return &ConfigError{Kind: Missing, Option: "--scope (cluster name is required for resync)"}
	}
	if c.Interval <= 0 {
		return &ConfigError{Kind: Invalid, Option: "--interval", Detail: "must be positive"}
	}
	if c.MaxTransient <= 0 {
		return &ConfigError{Kind: Invalid, Option: "--max-transient", Detail: "must be positive"}
	}
	return nil
}

// parseEndpoint parses the management plane URI and returns the base URL
// (without credentials), username, and password. Returns a ConfigError if
// the URI is invalid or has an unsupported scheme.
func parseEndpoint(raw string) (endpoint, username, password string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", "", &ConfigError{Kind: Invalid, Option: "endpoint URI", Detail: err.Error()}
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return "", "", "", &ConfigError{Kind: Invalid, Option: "endpoint URI", Detail: fmt.Sprintf("unsupported scheme %q (must be http or https)", u.Scheme)}
	}

	if u.Hostname() == "" {
		return "", "", "", &ConfigError{Kind: Invalid, Option: "endpoint URI", Detail: "host is required"}
	}

	if u.User != nil {
		username = u.User.Username()
		password, _ = u.User.Password()
		// Strip credentials from the stored URL.
		u.User = nil
	}

	return u.String(), username, password, nil
}
