package config

import (
	"cmp"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/edgeflare/tastebud/pkg/store"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Version is stamped at build time with -ldflags "-X github.com/edgeflare/tastebud/pkg/config.Version=...".
var Version = "dev"

const (
	envPrefix   = "TASTEBUD"
	defaultPort = "3000"
)

// Config holds application-wide configuration
type Config struct {
	REST    RESTConfig    `mapstructure:"rest"`
	Store   store.Config  `mapstructure:"store"`
	Metrics MetricsConfig `mapstructure:"metrics"`

	// File is the config file that was read, empty when none was found.
	File string `mapstructure:"-"`
}

type RESTConfig struct {
	// ListenAddr defaults to ":$PORT", or ":3000" when PORT is unset.
	ListenAddr        string        `mapstructure:"listenAddr"`
	BaseURL           string        `mapstructure:"baseURL"`
	ExposeErrors      bool          `mapstructure:"exposeErrors"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdownTimeout"`
	ReadHeaderTimeout time.Duration `mapstructure:"readHeaderTimeout"`
	CORSOrigins       []string      `mapstructure:"corsOrigins"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
	Path    string `mapstructure:"path"`
}

func DefaultRESTConfig() RESTConfig {
	return RESTConfig{
		ExposeErrors:      true,
		ShutdownTimeout:   10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		CORSOrigins:       []string{"*"},
	}
}

func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Addr: ":9100",
		Path: "/metrics",
	}
}

func setDefaults(v *viper.Viper) {
	rest := DefaultRESTConfig()
	v.SetDefault("rest.listenAddr", "")
	v.SetDefault("rest.baseURL", "")
	v.SetDefault("rest.exposeErrors", rest.ExposeErrors)
	v.SetDefault("rest.shutdownTimeout", rest.ShutdownTimeout)
	v.SetDefault("rest.readHeaderTimeout", rest.ReadHeaderTimeout)
	v.SetDefault("rest.corsOrigins", rest.CORSOrigins)

	st := store.DefaultConfig()
	v.SetDefault("store.driver", st.Driver)
	v.SetDefault("store.dsn", st.DSN)
	v.SetDefault("store.connectTimeout", st.ConnectTimeout)

	m := DefaultMetricsConfig()
	v.SetDefault("metrics.enabled", m.Enabled)
	v.SetDefault("metrics.addr", m.Addr)
	v.SetDefault("metrics.path", m.Path)
}

// Load reads config from file or environment. Without cfgFile it looks for
// tastebud.yaml in $HOME/.config and the working directory; a missing file is
// not an error. Every key can be overridden by TASTEBUD_<SECTION>_<KEY>, e.g.
// TASTEBUD_STORE_DSN.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("tastebud")
		v.SetConfigType("yaml")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config"))
		}
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	cfg.File = v.ConfigFileUsed()
	cfg.REST.ListenAddr = cmp.Or(cfg.REST.ListenAddr, net.JoinHostPort("", cmp.Or(os.Getenv("PORT"), defaultPort)))
	cfg.REST.CORSOrigins = trimAll(cfg.REST.CORSOrigins)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.Store.DSN == "" {
		errs = append(errs, errors.New("store.dsn is required"))
	}
	if c.REST.BaseURL != "" && !strings.HasPrefix(c.REST.BaseURL, "/") {
		errs = append(errs, fmt.Errorf("rest.baseURL %q must start with /", c.REST.BaseURL))
	}
	if c.REST.ShutdownTimeout < 0 || c.REST.ReadHeaderTimeout < 0 || c.Store.ConnectTimeout < 0 {
		errs = append(errs, errors.New("timeouts must not be negative"))
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		errs = append(errs, fmt.Errorf("metrics.path %q must start with /", c.Metrics.Path))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func trimAll(items []string) []string {
	out := items[:0]
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
