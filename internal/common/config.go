package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Logging LoggingConfig `toml:"logging"`
	Modules ModulesConfig `toml:"modules"`
	Storage StorageConfig `toml:"storage"`
	Forum   ForumConfig   `toml:"forum"`
	Mail    MailConfig    `toml:"mail"`
	S3      S3Config      `toml:"s3"`
	Watcher WatcherConfig `toml:"watcher"`
}

type LoggingConfig struct {
	Level      string   `toml:"level"`       // "debug", "info", "warn", "error"
	Output     []string `toml:"output"`      // "stderr", "file"
	TimeFormat string   `toml:"time_format"` // Time format for logs (default: "15:04:05")
}

// ModulesConfig controls which tool groups the server registers.
type ModulesConfig struct {
	Enabled []string `toml:"enabled"` // Valid values: forocoches, mediavida, mail, s3 (empty = all)
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path string `toml:"path"` // Database directory path
}

// ForumConfig holds shared scraping timings plus per-forum session
// files. Timings are duration strings, e.g. "500ms" or "30s".
type ForumConfig struct {
	PageDelay     string `toml:"page_delay"`     // Delay between sequential page fetches
	PageTimeout   string `toml:"page_timeout"`   // Per-page navigation timeout
	SubmitTimeout string `toml:"submit_timeout"` // Post/edit submit navigation timeout
	Headless      bool   `toml:"headless"`       // Run the browser headless
	MaxPages      int    `toml:"max_pages"`      // Default page cap for full-thread fetches

	Forocoches ForumSiteConfig `toml:"forocoches"`
	Mediavida  ForumSiteConfig `toml:"mediavida"`
}

// PageDelayDuration parses the inter-page delay, falling back to the
// 500ms default on an invalid value.
func (f ForumConfig) PageDelayDuration() time.Duration {
	return parseDuration(f.PageDelay, 500*time.Millisecond)
}

// PageTimeoutDuration parses the page navigation timeout.
func (f ForumConfig) PageTimeoutDuration() time.Duration {
	return parseDuration(f.PageTimeout, 30*time.Second)
}

// SubmitTimeoutDuration parses the submit navigation timeout.
func (f ForumConfig) SubmitTimeoutDuration() time.Duration {
	return parseDuration(f.SubmitTimeout, 60*time.Second)
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// ForumSiteConfig holds one forum's session material.
type ForumSiteConfig struct {
	CookiesPath   string `toml:"cookies_path"`    // Netscape-format cookie export
	UserAgentPath string `toml:"user_agent_path"` // Optional user-agent override file
	ProfileURL    string `toml:"profile_url"`     // Quotes/mentions page for the logged-in user
}

// MailConfig holds IMAP connection settings.
type MailConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Username string `toml:"username"`
	Password string `toml:"password"`
	Mailbox  string `toml:"mailbox"` // Default mailbox to search (default: "INBOX")
}

// S3Config holds object storage settings.
type S3Config struct {
	Region    string `toml:"region"`
	Endpoint  string `toml:"endpoint"` // Optional custom endpoint (MinIO etc.)
	Bucket    string `toml:"bucket"`   // Default bucket
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
}

// WatcherConfig drives the scheduled quote checks.
type WatcherConfig struct {
	Enabled  bool   `toml:"enabled"`
	Schedule string `toml:"schedule"` // Cron schedule format
}

// NewDefaultConfig creates a configuration with default values.
// Technical parameters are hardcoded here; only user-facing settings
// should be exposed in lo-claude.toml.
func NewDefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:      "warn", // Stdio transport owns stdout, keep console quiet
			Output:     []string{"stderr", "file"},
			TimeFormat: "15:04:05",
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data",
			},
		},
		Forum: ForumConfig{
			PageDelay:     "500ms",
			PageTimeout:   "30s",
			SubmitTimeout: "60s",
			Headless:      true,
			MaxPages:      100,
			Forocoches: ForumSiteConfig{
				CookiesPath: "./auth/forocoches-cookies.txt",
			},
			Mediavida: ForumSiteConfig{
				CookiesPath: "./auth/mediavida-cookies.txt",
			},
		},
		Mail: MailConfig{
			Port:    993,
			Mailbox: "INBOX",
		},
		S3: S3Config{
			Region: "eu-west-1",
		},
		Watcher: WatcherConfig{
			Enabled:  false, // User must explicitly opt-in
			Schedule: "0 */30 * * * *",
		},
	}
}

// LoadFromFile loads configuration from a TOML file, starting from
// defaults and finishing with environment overrides. An empty path
// skips the file step.
func LoadFromFile(path string) (*Config, error) {
	config := NewDefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// ModuleEnabled reports whether a tool group should be registered. An
// empty enabled list means everything is on.
func (c *Config) ModuleEnabled(name string) bool {
	if len(c.Modules.Enabled) == 0 {
		return true
	}
	for _, m := range c.Modules.Enabled {
		if strings.EqualFold(m, name) {
			return true
		}
	}
	return false
}

func applyEnvOverrides(config *Config) {
	if level := os.Getenv("LO_CLAUDE_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if output := os.Getenv("LO_CLAUDE_LOG_OUTPUT"); output != "" {
		parts := strings.Split(output, ",")
		outputs := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				outputs = append(outputs, trimmed)
			}
		}
		if len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}
	if modules := os.Getenv("LO_CLAUDE_MODULES"); modules != "" {
		config.Modules.Enabled = strings.Split(modules, ",")
	}
	if badgerPath := os.Getenv("LO_CLAUDE_BADGER_PATH"); badgerPath != "" {
		config.Storage.Badger.Path = badgerPath
	}
	if delay := os.Getenv("LO_CLAUDE_PAGE_DELAY"); delay != "" {
		if _, err := time.ParseDuration(delay); err == nil {
			config.Forum.PageDelay = delay
		}
	}
	if cookies := os.Getenv("LO_CLAUDE_FOROCOCHES_COOKIES"); cookies != "" {
		config.Forum.Forocoches.CookiesPath = cookies
	}
	if cookies := os.Getenv("LO_CLAUDE_MEDIAVIDA_COOKIES"); cookies != "" {
		config.Forum.Mediavida.CookiesPath = cookies
	}
	if host := os.Getenv("LO_CLAUDE_MAIL_HOST"); host != "" {
		config.Mail.Host = host
	}
	if port := os.Getenv("LO_CLAUDE_MAIL_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Mail.Port = p
		}
	}
	if user := os.Getenv("LO_CLAUDE_MAIL_USERNAME"); user != "" {
		config.Mail.Username = user
	}
	if pass := os.Getenv("LO_CLAUDE_MAIL_PASSWORD"); pass != "" {
		config.Mail.Password = pass
	}
	if bucket := os.Getenv("LO_CLAUDE_S3_BUCKET"); bucket != "" {
		config.S3.Bucket = bucket
	}
	if region := os.Getenv("LO_CLAUDE_S3_REGION"); region != "" {
		config.S3.Region = region
	}
}
