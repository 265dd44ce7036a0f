// Package config loads tagexport configuration from command-line flags, environment variables and .env files.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Preview sample size bounds. Values outside are clamped, not rejected.
const (
	MinPreviewCount     = 1
	MaxPreviewCount     = 100
	DefaultPreviewCount = 10
)

// Tag reader backends.
const (
	ReaderTaglib = "taglib"
	ReaderNative = "native"
)

// Config holds the application configuration.
type Config struct {
	App     AppConfig
	Logger  LoggerConfig
	Library LibraryConfig
	Export  ExportConfig
	Preview PreviewConfig
	Server  ServerConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level  string
	Format string // auto, pretty or json
}

// LibraryConfig describes where audio files come from and how they are read.
type LibraryConfig struct {
	// Directory is the default source directory. Empty means ask.
	Directory  string
	Extensions []string
	Reader     string
}

// ExportConfig holds export configuration.
type ExportConfig struct {
	// OutputDir overrides the source directory as export target. Optional.
	OutputDir string
	FileName  string
}

// PreviewConfig holds preview configuration.
type PreviewConfig struct {
	Count int
}

// ServerConfig holds configuration for the serve command.
type ServerConfig struct {
	Host           string
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
}

// Addr returns host:port for the HTTP listener.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

// Flags carries raw command-line values. Empty strings mean "not set".
type Flags struct {
	Env          string
	EnvFile      string
	LogLevel     string
	LogFormat    string
	LibraryDir   string
	OutputDir    string
	FileName     string
	Extensions   string
	Reader       string
	PreviewCount string
	Host         string
	Port         string
	ReadTimeout  string
	WriteTimeout string
	IdleTimeout  string
	CORSOrigins  string
}

// LoadConfig loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func LoadConfig(flags Flags) (*Config, error) {
	envFile := flags.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	// A missing .env file is fine.
	if err := loadEnvFile(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(flags.Env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level:  getConfigValue(flags.LogLevel, "LOG_LEVEL", "info"),
			Format: getConfigValue(flags.LogFormat, "LOG_FORMAT", "auto"),
		},
		Library: LibraryConfig{
			Directory:  getConfigValue(flags.LibraryDir, "LIBRARY_DIR", ""),
			Extensions: parseExtensions(getConfigValue(flags.Extensions, "SCAN_EXTENSIONS", ".mp3")),
			Reader:     strings.ToLower(getConfigValue(flags.Reader, "TAG_READER", ReaderTaglib)),
		},
		Export: ExportConfig{
			OutputDir: getConfigValue(flags.OutputDir, "OUTPUT_DIR", ""),
			FileName:  getConfigValue(flags.FileName, "EXPORT_FILENAME", "library.json"),
		},
		Preview: PreviewConfig{
			Count: ClampPreviewCount(getIntConfigValue(flags.PreviewCount, "PREVIEW_COUNT", DefaultPreviewCount)),
		},
		Server: ServerConfig{
			Host:           getConfigValue(flags.Host, "SERVER_HOST", "127.0.0.1"),
			Port:           getConfigValue(flags.Port, "SERVER_PORT", "8787"),
			CORSOrigins:    splitList(getConfigValue(flags.CORSOrigins, "CORS_ORIGINS", "")),
			RateLimitRPS:   getFloatConfigValue("", "RATE_LIMIT_RPS", 5),
			RateLimitBurst: getIntConfigValue("", "RATE_LIMIT_BURST", 10),
		},
	}

	var err error
	if cfg.Server.ReadTimeout, err = getDurationConfigValue(flags.ReadTimeout, "SERVER_READ_TIMEOUT", "15s"); err != nil {
		return nil, err
	}
	// Export requests run the whole pipeline inside one response.
	if cfg.Server.WriteTimeout, err = getDurationConfigValue(flags.WriteTimeout, "SERVER_WRITE_TIMEOUT", "10m"); err != nil {
		return nil, err
	}
	if cfg.Server.IdleTimeout, err = getDurationConfigValue(flags.IdleTimeout, "SERVER_IDLE_TIMEOUT", "60s"); err != nil {
		return nil, err
	}

	if cfg.Library.Directory, err = expandPath(cfg.Library.Directory, ""); err != nil {
		return nil, fmt.Errorf("invalid library directory: %w", err)
	}
	if cfg.Export.OutputDir, err = expandPath(cfg.Export.OutputDir, ""); err != nil {
		return nil, fmt.Errorf("invalid output directory: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all config values are present and valid.
func (c *Config) Validate() error {
	if c.App.Environment == "" {
		return errors.New("ENV is required")
	}

	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	switch c.Logger.Format {
	case "auto", "pretty", "json":
	default:
		return fmt.Errorf("invalid log format: %s (must be auto, pretty, or json)", c.Logger.Format)
	}

	if c.Library.Reader != ReaderTaglib && c.Library.Reader != ReaderNative {
		return fmt.Errorf("invalid tag reader: %s (must be taglib or native)", c.Library.Reader)
	}

	if len(c.Library.Extensions) == 0 {
		return errors.New("at least one scan extension is required")
	}

	if c.Export.FileName == "" || filepath.Base(c.Export.FileName) != c.Export.FileName {
		return fmt.Errorf("invalid export filename: %q (must be a bare file name)", c.Export.FileName)
	}

	if c.Preview.Count < MinPreviewCount || c.Preview.Count > MaxPreviewCount {
		return fmt.Errorf("preview count %d out of range %d..%d", c.Preview.Count, MinPreviewCount, MaxPreviewCount)
	}

	if c.Server.RateLimitRPS <= 0 || c.Server.RateLimitBurst < 1 {
		return errors.New("rate limit must allow at least one request")
	}

	return nil
}

// ClampPreviewCount forces n into MinPreviewCount..MaxPreviewCount.
func ClampPreviewCount(n int) int {
	return min(max(n, MinPreviewCount), MaxPreviewCount)
}

// expandPath expands ~ and makes the path absolute.
// If path is empty, defaultPath is returned as is.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, strings.TrimPrefix(path[1:], "/"))
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// parseExtensions normalizes a comma list like "mp3, .FLAC" to [".mp3" ".flac"].
func parseExtensions(raw string) []string {
	var exts []string
	seen := make(map[string]bool)
	for _, ext := range splitList(raw) {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if ext == "." || seen[ext] {
			continue
		}
		seen[ext] = true
		exts = append(exts, ext)
	}
	return exts
}

func splitList(raw string) []string {
	var out []string
	for part := range strings.SplitSeq(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

// getIntConfigValue returns an int from flag, env var, or default.
func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	var result int
	if _, err := fmt.Sscanf(strValue, "%d", &result); err != nil {
		return defaultValue
	}
	return result
}

// getFloatConfigValue returns a float from flag, env var, or default.
func getFloatConfigValue(flagValue, envKey string, defaultValue float64) float64 {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	var result float64
	if _, err := fmt.Sscanf(strValue, "%g", &result); err != nil {
		return defaultValue
	}
	return result
}

// getDurationConfigValue parses a duration from flag, env var, or default.
func getDurationConfigValue(flagValue, envKey, defaultValue string) (time.Duration, error) {
	strValue := getConfigValue(flagValue, envKey, defaultValue)
	d, err := time.ParseDuration(strValue)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", strings.ToLower(envKey), strValue, err)
	}
	return d, nil
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}
		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"'`)

		// Real env vars take precedence over .env file.
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
