// Package config handles configuration loading for FundTrace.
// It supports YAML config files with environment variable overrides.
package config

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Edgar   EdgarConfig   `mapstructure:"edgar"   yaml:"edgar"`
	Crawl   CrawlConfig   `mapstructure:"crawl"   yaml:"crawl"`
	Roster  RosterConfig  `mapstructure:"roster"  yaml:"roster"`
	Output  OutputConfig  `mapstructure:"output"  yaml:"output"`
	API     APIConfig     `mapstructure:"api"     yaml:"api"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// EdgarConfig holds filing archive client settings.
type EdgarConfig struct {
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
	FeedURL string `mapstructure:"feed_url" yaml:"feed_url"`
	// UserAgent identifies the client to the archive host. Requests
	// without it are rejected, so an empty value is a startup error.
	UserAgent         string `mapstructure:"user_agent"          yaml:"user_agent"`
	RequestIntervalMS int    `mapstructure:"request_interval_ms" yaml:"request_interval_ms"`
	TimeoutSec        int    `mapstructure:"timeout_sec"         yaml:"timeout_sec"`
	CacheDir          string `mapstructure:"cache_dir"           yaml:"cache_dir"`
	CacheTTLHours     int    `mapstructure:"cache_ttl_hours"     yaml:"cache_ttl_hours"`
}

// RequestInterval returns the minimum delay between archive requests.
func (e EdgarConfig) RequestInterval() time.Duration {
	return time.Duration(e.RequestIntervalMS) * time.Millisecond
}

// CrawlConfig holds history crawl settings.
type CrawlConfig struct {
	StartYear int `mapstructure:"start_year" yaml:"start_year"`
	Workers   int `mapstructure:"workers"    yaml:"workers"`
	// MaxFilingsPerInstitution caps how many filings are parsed per
	// institution in one run. 0 means no cap.
	MaxFilingsPerInstitution int `mapstructure:"max_filings_per_institution" yaml:"max_filings_per_institution"`
	// DenseSinceYear: filings from this year onward are all parsed;
	// older filings are sampled every OlderFilingStride entries.
	DenseSinceYear    int `mapstructure:"dense_since_year"    yaml:"dense_since_year"`
	OlderFilingStride int `mapstructure:"older_filing_stride" yaml:"older_filing_stride"`
}

// Security is one tracked ticker with its stable identifier and the
// company-name aliases used for free-text matching.
type Security struct {
	Ticker  string   `mapstructure:"ticker"  yaml:"ticker"`
	CUSIP   string   `mapstructure:"cusip"   yaml:"cusip"`
	Aliases []string `mapstructure:"aliases" yaml:"aliases"`
}

// InstitutionEntry is one tracked institutional filer.
type InstitutionEntry struct {
	CIK  string `mapstructure:"cik"  yaml:"cik"`
	Name string `mapstructure:"name" yaml:"name"`
}

// RosterConfig holds the static rosters of tracked institutions and
// securities. Injected configuration, never derived from filings.
type RosterConfig struct {
	Institutions []InstitutionEntry `mapstructure:"institutions" yaml:"institutions"`
	Securities   []Security         `mapstructure:"securities"   yaml:"securities"`
}

// OutputConfig holds artifact output settings.
type OutputConfig struct {
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// APIConfig holds HTTP API server settings.
type APIConfig struct {
	Host        string   `mapstructure:"host"         yaml:"host"`
	Port        int      `mapstructure:"port"         yaml:"port"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `mapstructure:"level" yaml:"level"` // "debug", "info", "warn", "error"
}

// Apply configures the process logger for the level: debug adds caller
// locations, warn and error silence the informational skip-and-continue
// messages the crawl emits.
func (c LoggingConfig) Apply() {
	switch strings.ToLower(c.Level) {
	case "debug":
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	case "warn", "error":
		log.SetOutput(io.Discard)
	}
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.fundtrace/config.yaml (home directory)
//  3. /etc/fundtrace/config.yaml (system)
//
// Environment variables override config file values.
// Format: FUNDTRACE_<SECTION>_<KEY>, e.g., FUNDTRACE_EDGAR_USER_AGENT
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".fundtrace"))
	v.AddConfigPath("/etc/fundtrace")

	v.SetEnvPrefix("FUNDTRACE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found — that's fine, use defaults + env vars.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	applyRosterDefaults(&cfg)
	overrideFromEnv(&cfg)
	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("FUNDTRACE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	applyRosterDefaults(&cfg)
	overrideFromEnv(&cfg)
	return &cfg, nil
}

// Validate checks for configuration errors that must stop the process
// before any crawl starts. Nothing here is checked again mid-run.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Edgar.UserAgent) == "" {
		return fmt.Errorf("edgar.user_agent is required: the archive host rejects unidentified clients")
	}
	if c.Edgar.RequestIntervalMS <= 0 {
		return fmt.Errorf("edgar.request_interval_ms must be positive, got %d", c.Edgar.RequestIntervalMS)
	}
	if len(c.Roster.Securities) == 0 {
		return fmt.Errorf("roster.securities is empty: at least one tracked security is required")
	}
	if len(c.Roster.Institutions) == 0 {
		return fmt.Errorf("roster.institutions is empty: at least one tracked institution is required")
	}
	seen := make(map[string]bool, len(c.Roster.Securities))
	for _, s := range c.Roster.Securities {
		t := strings.ToUpper(s.Ticker)
		if t == "" {
			return fmt.Errorf("roster.securities contains an entry without a ticker")
		}
		if seen[t] {
			return fmt.Errorf("roster.securities lists ticker %s twice", t)
		}
		seen[t] = true
	}
	if c.Crawl.StartYear < 1993 { // EDGAR electronic filings begin in 1993
		return fmt.Errorf("crawl.start_year %d predates the electronic archive", c.Crawl.StartYear)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
	return nil
}

// SecurityFor returns the roster entry for a ticker, if tracked.
func (c *Config) SecurityFor(ticker string) (Security, bool) {
	for _, s := range c.Roster.Securities {
		if strings.EqualFold(s.Ticker, ticker) {
			return s, true
		}
	}
	return Security{}, false
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("edgar.base_url", "https://data.sec.gov")
	v.SetDefault("edgar.feed_url", "https://www.sec.gov/cgi-bin/browse-edgar")
	v.SetDefault("edgar.user_agent", "fundtrace/1.0 (github.com/seenimoa/fundtrace)")
	v.SetDefault("edgar.request_interval_ms", 200)
	v.SetDefault("edgar.timeout_sec", 15)
	v.SetDefault("edgar.cache_dir", filepath.Join(homeDir(), ".fundtrace", "cache"))
	v.SetDefault("edgar.cache_ttl_hours", 24*30)

	v.SetDefault("crawl.start_year", 2005)
	v.SetDefault("crawl.workers", 3)
	v.SetDefault("crawl.max_filings_per_institution", 50)
	v.SetDefault("crawl.dense_since_year", 2020)
	v.SetDefault("crawl.older_filing_stride", 4)

	v.SetDefault("output.dir", "data/institutional")

	v.SetDefault("api.host", "0.0.0.0")
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.cors_origins", []string{"http://localhost:3000"})

	v.SetDefault("logging.level", "info")
}

// applyRosterDefaults fills in the built-in rosters when the config
// file does not supply its own.
func applyRosterDefaults(cfg *Config) {
	if len(cfg.Roster.Institutions) == 0 {
		cfg.Roster.Institutions = DefaultInstitutions()
	}
	if len(cfg.Roster.Securities) == 0 {
		cfg.Roster.Securities = DefaultSecurities()
	}
}

// overrideFromEnv explicitly reads sensitive keys from environment
// variables so they beat file values even with partial unmarshal.
func overrideFromEnv(cfg *Config) {
	if ua := os.Getenv("FUNDTRACE_EDGAR_USER_AGENT"); ua != "" {
		cfg.Edgar.UserAgent = ua
	}
	if dir := os.Getenv("FUNDTRACE_OUTPUT_DIR"); dir != "" {
		cfg.Output.Dir = dir
	}
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
