package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/hadeed"
	ConfigFileName    = "hadeed.yml"
	DotEnvFileName    = ".env"

	BackendSupabase = "supabase"
	BackendPostgres = "postgres"
)

// Config holds all Hadeed configuration settings
type Config struct {
	// StoreBackend selects where resources are kept: supabase or postgres
	StoreBackend string `yaml:"store_backend" json:"store_backend"`

	// SupabaseURL is the project base URL
	SupabaseURL string `yaml:"supabase_url" json:"supabase_url"`

	// SupabaseAnonKey is the project's public key
	SupabaseAnonKey string `yaml:"supabase_anon_key" json:"supabase_anon_key"`

	// DatabaseURL is used by the postgres backend and the db commands
	DatabaseURL string `yaml:"database_url" json:"database_url"`

	// ResourceListLimit caps every resource listing
	ResourceListLimit int `yaml:"resource_list_limit" json:"resource_list_limit"`

	// FormAutoCloseMS is how long the success message stays before the form closes
	FormAutoCloseMS int `yaml:"form_auto_close_ms" json:"form_auto_close_ms"`

	// BodyPreviewLength is the number of characters shown on a card
	BodyPreviewLength int `yaml:"body_preview_length" json:"body_preview_length"`

	// FormSessionCapacity bounds the number of open visitor forms
	FormSessionCapacity int `yaml:"form_session_capacity" json:"form_session_capacity"`

	// HTTPTimeoutSeconds applies to calls to the Supabase API
	HTTPTimeoutSeconds int `yaml:"http_timeout_seconds" json:"http_timeout_seconds"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `yaml:"log_level" json:"log_level"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// Global singleton config
var (
	globalConfig *Config
	configMu     sync.RWMutex
)

// Get returns the global configuration, loading it if necessary
func Get() *Config {
	configMu.RLock()
	if globalConfig != nil {
		configMu.RUnlock()
		return globalConfig
	}
	configMu.RUnlock()

	configMu.Lock()
	defer configMu.Unlock()

	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			globalConfig = newDefault()
		} else {
			globalConfig = cfg
		}
	}
	return globalConfig
}

// Reload reloads the configuration from file and environment
func Reload() error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	configMu.Lock()
	globalConfig = cfg
	configMu.Unlock()
	return nil
}

func newDefault() *Config {
	return &Config{
		StoreBackend:        BackendSupabase,
		ResourceListLimit:   100,
		FormAutoCloseMS:     1500,
		BodyPreviewLength:   180,
		FormSessionCapacity: 1024,
		HTTPTimeoutSeconds:  15,
		LogLevel:            "info",
		sources:             make(map[string]string),
	}
}

// Load loads configuration from the config file, a .env file in the working
// directory and environment variables, in increasing order of precedence
func Load() (*Config, error) {
	config := newDefault()

	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}

	configPath := os.Getenv("HADEED_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var fileConfig Config
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&fileConfig)
	}

	dotenv, err := readDotEnv()
	if err != nil {
		return nil, err
	}
	config.applyEnvConfig(envLookup(dotenv))

	return config, nil
}

func readDotEnv() (map[string]string, error) {
	path := os.Getenv("HADEED_ENV_FILE")
	if path == "" {
		path = DotEnvFileName
	}
	values, err := godotenv.Read(path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read env file %s: %w", path, err)
	}
	return values, nil
}

// lookupFunc returns the value of the first key that is set and the source
// it came from
type lookupFunc func(keys ...string) (string, string, bool)

func envLookup(dotenv map[string]string) lookupFunc {
	return func(keys ...string) (string, string, bool) {
		for _, key := range keys {
			if val, ok := os.LookupEnv(key); ok && val != "" {
				return val, "environment", true
			}
		}
		for _, key := range keys {
			if val, ok := dotenv[key]; ok && val != "" {
				return val, "dotenv", true
			}
		}
		return "", "", false
	}
}

func attributeNames() []string {
	return []string{
		"store_backend", "supabase_url", "supabase_anon_key", "database_url",
		"resource_list_limit", "form_auto_close_ms", "body_preview_length",
		"form_session_capacity", "http_timeout_seconds", "log_level",
	}
}

func (c *Config) applyFileConfig(file *Config) {
	if file.StoreBackend != "" {
		c.StoreBackend = file.StoreBackend
		c.sources["store_backend"] = "file"
	}
	if file.SupabaseURL != "" {
		c.SupabaseURL = file.SupabaseURL
		c.sources["supabase_url"] = "file"
	}
	if file.SupabaseAnonKey != "" {
		c.SupabaseAnonKey = file.SupabaseAnonKey
		c.sources["supabase_anon_key"] = "file"
	}
	if file.DatabaseURL != "" {
		c.DatabaseURL = file.DatabaseURL
		c.sources["database_url"] = "file"
	}
	if file.ResourceListLimit != 0 {
		c.ResourceListLimit = file.ResourceListLimit
		c.sources["resource_list_limit"] = "file"
	}
	if file.FormAutoCloseMS != 0 {
		c.FormAutoCloseMS = file.FormAutoCloseMS
		c.sources["form_auto_close_ms"] = "file"
	}
	if file.BodyPreviewLength != 0 {
		c.BodyPreviewLength = file.BodyPreviewLength
		c.sources["body_preview_length"] = "file"
	}
	if file.FormSessionCapacity != 0 {
		c.FormSessionCapacity = file.FormSessionCapacity
		c.sources["form_session_capacity"] = "file"
	}
	if file.HTTPTimeoutSeconds != 0 {
		c.HTTPTimeoutSeconds = file.HTTPTimeoutSeconds
		c.sources["http_timeout_seconds"] = "file"
	}
	if file.LogLevel != "" {
		c.LogLevel = file.LogLevel
		c.sources["log_level"] = "file"
	}
}

func (c *Config) applyEnvConfig(lookup lookupFunc) {
	if val, src, ok := lookup("HADEED_STORE_BACKEND"); ok {
		c.StoreBackend = strings.ToLower(strings.TrimSpace(val))
		c.sources["store_backend"] = src
	}
	// NEXT_PUBLIC_ names are what existing deployments already have in .env.local
	if val, src, ok := lookup("SUPABASE_URL", "NEXT_PUBLIC_SUPABASE_URL"); ok {
		c.SupabaseURL = strings.TrimSpace(val)
		c.sources["supabase_url"] = src
	}
	if val, src, ok := lookup("SUPABASE_ANON_KEY", "NEXT_PUBLIC_SUPABASE_ANON_KEY"); ok {
		c.SupabaseAnonKey = strings.TrimSpace(val)
		c.sources["supabase_anon_key"] = src
	}
	if val, src, ok := lookup("DATABASE_URL"); ok {
		c.DatabaseURL = val
		c.sources["database_url"] = src
	}
	c.applyIntEnv(lookup, "HADEED_RESOURCE_LIST_LIMIT", "resource_list_limit", &c.ResourceListLimit)
	c.applyIntEnv(lookup, "HADEED_FORM_AUTO_CLOSE_MS", "form_auto_close_ms", &c.FormAutoCloseMS)
	c.applyIntEnv(lookup, "HADEED_BODY_PREVIEW_LENGTH", "body_preview_length", &c.BodyPreviewLength)
	c.applyIntEnv(lookup, "HADEED_FORM_SESSION_CAPACITY", "form_session_capacity", &c.FormSessionCapacity)
	c.applyIntEnv(lookup, "HADEED_HTTP_TIMEOUT_SECONDS", "http_timeout_seconds", &c.HTTPTimeoutSeconds)
	if val, src, ok := lookup("HADEED_LOG_LEVEL"); ok {
		c.LogLevel = strings.ToLower(strings.TrimSpace(val))
		c.sources["log_level"] = src
	}
}

func (c *Config) applyIntEnv(lookup lookupFunc, key, name string, dst *int) {
	val, src, ok := lookup(key)
	if !ok {
		return
	}
	if i, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
		*dst = i
		c.sources[name] = src
	}
}

// ConfigFilePath returns the path to the config file
func (c *Config) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *Config) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// AutoCloseDelay returns the form auto close delay as a duration
func (c *Config) AutoCloseDelay() time.Duration {
	return time.Duration(c.FormAutoCloseMS) * time.Millisecond
}

// HTTPTimeout returns the Supabase client timeout as a duration
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

// SlogLevel maps LogLevel onto a slog level, defaulting to info
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// IsDebug reports whether debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// Validate checks that everything needed to start is present
func (c *Config) Validate() error {
	cfgErr := &ConfigurationError{}

	switch c.StoreBackend {
	case BackendSupabase:
		if c.SupabaseURL == "" {
			cfgErr.Missing = append(cfgErr.Missing, "supabase_url")
		} else if u, err := url.Parse(c.SupabaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			cfgErr.Reason = fmt.Sprintf("invalid supabase_url %q", c.SupabaseURL)
		}
		if c.SupabaseAnonKey == "" {
			cfgErr.Missing = append(cfgErr.Missing, "supabase_anon_key")
		} else if err := CheckPublicKey(c.SupabaseAnonKey); err != nil && cfgErr.Reason == "" {
			cfgErr.Reason = err.Error()
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			cfgErr.Missing = append(cfgErr.Missing, "database_url")
		}
	default:
		cfgErr.Reason = fmt.Sprintf("invalid store_backend %q: must be %s or %s", c.StoreBackend, BackendSupabase, BackendPostgres)
	}

	if cfgErr.Reason == "" {
		cfgErr.Reason = c.validateLimits()
	}

	if len(cfgErr.Missing) > 0 || cfgErr.Reason != "" {
		return cfgErr
	}
	return nil
}

func (c *Config) validateLimits() string {
	positive := []struct {
		name  string
		value int
	}{
		{"resource_list_limit", c.ResourceListLimit},
		{"form_auto_close_ms", c.FormAutoCloseMS},
		{"body_preview_length", c.BodyPreviewLength},
		{"form_session_capacity", c.FormSessionCapacity},
		{"http_timeout_seconds", c.HTTPTimeoutSeconds},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return fmt.Sprintf("%s must be positive, got %d", p.name, p.value)
		}
	}
	return ""
}

// Attributes returns all configuration attributes with their values and
// sources. Credentials are masked.
func (c *Config) Attributes() []Attribute {
	return []Attribute{
		{Name: "store_backend", Value: c.StoreBackend, Source: c.Source("store_backend")},
		{Name: "supabase_url", Value: c.SupabaseURL, Source: c.Source("supabase_url")},
		{Name: "supabase_anon_key", Value: maskKey(c.SupabaseAnonKey), Source: c.Source("supabase_anon_key")},
		{Name: "database_url", Value: redactURL(c.DatabaseURL), Source: c.Source("database_url")},
		{Name: "resource_list_limit", Value: strconv.Itoa(c.ResourceListLimit), Source: c.Source("resource_list_limit")},
		{Name: "form_auto_close_ms", Value: strconv.Itoa(c.FormAutoCloseMS), Source: c.Source("form_auto_close_ms")},
		{Name: "body_preview_length", Value: strconv.Itoa(c.BodyPreviewLength), Source: c.Source("body_preview_length")},
		{Name: "form_session_capacity", Value: strconv.Itoa(c.FormSessionCapacity), Source: c.Source("form_session_capacity")},
		{Name: "http_timeout_seconds", Value: strconv.Itoa(c.HTTPTimeoutSeconds), Source: c.Source("http_timeout_seconds")},
		{Name: "log_level", Value: c.LogLevel, Source: c.Source("log_level")},
	}
}

// FormatText returns a text representation of the configuration
func (c *Config) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-24s %-40s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-24s %-40s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-24s %-40s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration
func (c *Config) FormatJSON() (string, error) {
	result := map[string]interface{}{
		"config_file": c.configFilePath,
		"attributes":  c.Attributes(),
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func maskKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 8 {
		return "****"
	}
	return key[:8] + "****"
}

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "****"
	}
	return u.Redacted()
}
