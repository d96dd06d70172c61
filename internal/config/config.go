package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Snapshot source identifiers.
const (
	SourceKubectl = "kubectl"
	SourceAPI     = "api"
)

// Config captures the runtime settings for the reporter.
type Config struct {
	KubectlPath           string        `yaml:"kubectl"`
	KubeconfigPath        string        `yaml:"kubeconfig"`
	Source                string        `yaml:"source"`
	Namespace             string        `yaml:"namespace"`
	LogLevel              string        `yaml:"logLevel"`
	ListenAddr            string        `yaml:"listenAddr"`
	ScrapeIntervalSeconds int           `yaml:"scrapeIntervalSeconds"`
	RequestTimeout        time.Duration `yaml:"-"`
	Phases                []string      `yaml:"phases"`
	RestartThreshold      int           `yaml:"restartThreshold"`
}

// DefaultConfig returns sane defaults for one-shot report runs.
func DefaultConfig() Config {
	return Config{
		KubectlPath:           "kubectl",
		Source:                SourceKubectl,
		LogLevel:              "info",
		ListenAddr:            ":8080",
		ScrapeIntervalSeconds: 60,
		RequestTimeout:        30 * time.Second,
	}
}

// ScrapeInterval returns the serve-mode refresh interval.
func (c Config) ScrapeInterval() time.Duration {
	if c.ScrapeIntervalSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.ScrapeIntervalSeconds) * time.Second
}

// Validate checks constraints that must also hold after flag overrides are
// applied on top of a loaded config.
func (c Config) Validate() error {
	if c.Source != SourceKubectl && c.Source != SourceAPI {
		return fmt.Errorf("unknown snapshot source %q", c.Source)
	}
	if c.RestartThreshold < 0 {
		return errors.New("restart threshold must be non-negative")
	}
	return nil
}

// Load builds the configuration by merging defaults, an optional YAML file,
// and environment overrides. Command-line flags are applied by the caller on
// top of the result, so precedence is flags > env > file > defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = os.Getenv("KUBE_BINPACK_CONFIG_FILE")
	}
	if path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	applyEnvOverrides(&cfg)

	if cfg.ScrapeIntervalSeconds < 5 {
		cfg.ScrapeIntervalSeconds = 5
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path) // #nosec G304 -- path provided by the operator
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	type fileConfig Config
	var fileCfg fileConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	// yaml decodes time.Duration fields as raw nanoseconds, so the timeout
	// is read as a string and parsed with the same syntax the env override
	// accepts ("30s", "2m").
	var durations struct {
		RequestTimeout string `yaml:"requestTimeout"`
	}
	if err := yaml.Unmarshal(data, &durations); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	if durations.RequestTimeout != "" {
		d, err := time.ParseDuration(durations.RequestTimeout)
		if err != nil {
			return fmt.Errorf("parse requestTimeout: %w", err)
		}
		fileCfg.RequestTimeout = d
	}

	merge(cfg, Config(fileCfg))
	return nil
}

func merge(base *Config, override Config) {
	if override.KubectlPath != "" {
		base.KubectlPath = override.KubectlPath
	}
	if override.KubeconfigPath != "" {
		base.KubeconfigPath = override.KubeconfigPath
	}
	if override.Source != "" {
		base.Source = override.Source
	}
	if override.Namespace != "" {
		base.Namespace = override.Namespace
	}
	if override.LogLevel != "" {
		base.LogLevel = override.LogLevel
	}
	if override.ListenAddr != "" {
		base.ListenAddr = override.ListenAddr
	}
	if override.ScrapeIntervalSeconds != 0 {
		base.ScrapeIntervalSeconds = override.ScrapeIntervalSeconds
	}
	if override.RequestTimeout != 0 {
		base.RequestTimeout = override.RequestTimeout
	}
	if len(override.Phases) > 0 {
		base.Phases = append([]string{}, override.Phases...)
	}
	if override.RestartThreshold != 0 {
		base.RestartThreshold = override.RestartThreshold
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("KUBE_BINPACK_KUBECTL"); v != "" {
		cfg.KubectlPath = v
	}
	if v := os.Getenv("KUBE_BINPACK_KUBECONFIG"); v != "" {
		cfg.KubeconfigPath = v
	}
	if v := os.Getenv("KUBE_BINPACK_SOURCE"); v != "" {
		cfg.Source = v
	}
	if v := os.Getenv("KUBE_BINPACK_NAMESPACE"); v != "" {
		cfg.Namespace = v
	}
	if v := os.Getenv("KUBE_BINPACK_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("KUBE_BINPACK_LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("KUBE_BINPACK_SCRAPE_INTERVAL"); v != "" {
		if iv, err := strconv.Atoi(v); err == nil {
			cfg.ScrapeIntervalSeconds = iv
		}
	}
	if v := os.Getenv("KUBE_BINPACK_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
	if v := os.Getenv("KUBE_BINPACK_RESTART_THRESHOLD"); v != "" {
		if iv, err := strconv.Atoi(v); err == nil {
			cfg.RestartThreshold = iv
		}
	}
}
