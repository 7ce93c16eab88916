package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

// Credentials is a test-account login pair.
type Credentials struct {
	Email    string
	Password string
}

// Config holds every knob the suite reads. It is built once per test run and
// passed by reference into page objects and collaborators; nothing mutates it
// after Load returns.
type Config struct {
	// Browser session
	Browser       string // chrome, firefox, edge
	Driver        string // selenium, playwright
	Headless      bool
	BrowserWidth  int
	BrowserHeight int

	// Application under test
	BaseURL     string
	APIBaseURL  string
	Environment string // development, staging, production

	// Timeouts. ImplicitWait is applied at the driver; the wait engine in the
	// pages package relies on it being zero so probes stay fast.
	ImplicitWait    time.Duration
	ExplicitWait    time.Duration
	PageLoadTimeout time.Duration

	// Database fixtures
	DBHost     string
	DBPort     int
	DBName     string
	DBUser     string
	DBPassword string

	// Email verification
	EmailHost     string
	EmailPort     int
	EmailUser     string
	EmailPassword string
	EmailUseTLS   bool

	// Artifacts
	ReportDir     string
	ScreenshotDir string
	LogDir        string
	LogLevel      string

	// API client
	APITimeout time.Duration
	APIRetries int

	TestUsers map[string]Credentials

	// Feature flags
	EnableAPITesting      bool
	EnableDatabaseTesting bool
	EnableEmailTesting    bool
	ScreenshotsOnFailure  bool
}

var loadDotEnvOnce sync.Once

// Load builds the configuration from the environment. A .env file in the
// working directory is loaded first when present; explicit environment
// variables always win over it and over the ENVIRONMENT presets.
func Load() (*Config, error) {
	loadDotEnvOnce.Do(func() {
		// .env is optional.
		_ = godotenv.Load()
	})

	cfg := &Config{
		Browser:       strings.ToLower(envStr("BROWSER", "chrome")),
		Driver:        strings.ToLower(envStr("DRIVER", "selenium")),
		Headless:      envBool("HEADLESS", false),
		BrowserWidth:  envInt("BROWSER_WIDTH", 1920),
		BrowserHeight: envInt("BROWSER_HEIGHT", 1080),

		BaseURL:     envStr("BASE_URL", "https://demo-ecommerce.com"),
		APIBaseURL:  envStr("API_BASE_URL", "https://api.demo-ecommerce.com"),
		Environment: strings.ToLower(envStr("ENVIRONMENT", "staging")),

		ImplicitWait:    envSeconds("IMPLICIT_WAIT", 0),
		ExplicitWait:    envSeconds("EXPLICIT_WAIT", 10),
		PageLoadTimeout: envSeconds("PAGE_LOAD_TIMEOUT", 30),

		DBHost:     envStr("DB_HOST", "localhost"),
		DBPort:     envInt("DB_PORT", 5432),
		DBName:     envStr("DB_NAME", "test_db"),
		DBUser:     envStr("DB_USER", "test_user"),
		DBPassword: envStr("DB_PASSWORD", "test_password"),

		EmailHost:     envStr("EMAIL_HOST", "smtp.gmail.com"),
		EmailPort:     envInt("EMAIL_PORT", 587),
		EmailUser:     envStr("EMAIL_USER", ""),
		EmailPassword: envStr("EMAIL_PASSWORD", ""),
		EmailUseTLS:   envBool("EMAIL_USE_TLS", true),

		ReportDir:     envStr("REPORT_DIR", "reports"),
		ScreenshotDir: envStr("SCREENSHOT_DIR", "reports/screenshots"),
		LogDir:        envStr("LOG_DIR", "logs"),
		LogLevel:      envStr("LOG_LEVEL", "info"),

		APITimeout: envSeconds("API_TIMEOUT", 30),
		APIRetries: envInt("API_RETRIES", 3),

		TestUsers: map[string]Credentials{
			"valid_user": {
				Email:    envStr("TEST_USER_EMAIL", "test@example.com"),
				Password: envStr("TEST_USER_PASSWORD", "SecurePass123!"),
			},
			"admin_user": {
				Email:    envStr("ADMIN_USER_EMAIL", "admin@example.com"),
				Password: envStr("ADMIN_USER_PASSWORD", "AdminPass123!"),
			},
		},

		EnableAPITesting:      envBool("ENABLE_API_TESTING", true),
		EnableDatabaseTesting: envBool("ENABLE_DATABASE_TESTING", true),
		EnableEmailTesting:    envBool("ENABLE_EMAIL_TESTING", false),
		ScreenshotsOnFailure:  envBool("TAKE_SCREENSHOTS_ON_FAILURE", true),
	}

	if err := cfg.applyEnvironmentPreset(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvironmentPreset overrides URLs and the database host for the selected
// ENVIRONMENT. Explicitly set environment variables are left untouched.
func (c *Config) applyEnvironmentPreset() error {
	presets := map[string]struct{ baseURL, apiBaseURL, dbHost string }{
		"development": {"http://localhost:3000", "http://localhost:8000/api", "localhost"},
		"staging":     {"https://staging.demo-ecommerce.com", "https://api-staging.demo-ecommerce.com", "staging-db.demo-ecommerce.com"},
		"production":  {"https://demo-ecommerce.com", "https://api.demo-ecommerce.com", "prod-db.demo-ecommerce.com"},
	}

	preset, ok := presets[c.Environment]
	if !ok {
		return fmt.Errorf("unknown ENVIRONMENT %q (expected development, staging or production)", c.Environment)
	}

	if os.Getenv("BASE_URL") == "" {
		c.BaseURL = preset.baseURL
	}
	if os.Getenv("API_BASE_URL") == "" {
		c.APIBaseURL = preset.apiBaseURL
	}
	if os.Getenv("DB_HOST") == "" {
		c.DBHost = preset.dbHost
	}
	return nil
}

// URLFor joins a path onto the application base URL.
func (c *Config) URLFor(path string) string {
	return strings.TrimRight(c.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

// DatabaseURL returns the Postgres connection string for the fixture database.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

// TestUser returns the credentials for a named test account, defaulting to
// valid_user when the kind is unknown.
func (c *Config) TestUser(kind string) Credentials {
	if creds, ok := c.TestUsers[kind]; ok {
		return creds
	}
	return c.TestUsers["valid_user"]
}

// IsProduction reports whether the run targets the production environment.
// Destructive fixture operations refuse to run when it is true.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return strings.EqualFold(v, "true") || v == "1"
}

func envSeconds(key string, fallbackSeconds int) time.Duration {
	return time.Duration(envInt(key, fallbackSeconds)) * time.Second
}
