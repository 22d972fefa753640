package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	validator "gopkg.in/go-playground/validator.v9"
)

const (
	appDirName = ".quicklook-landing"
	envPrefix  = "QLLANDING"
)

// Config holds all application configuration
type Config struct {
	LogLevel string `mapstructure:"log_level" validate:"oneof=debug info warn error"`

	// Upstream release source
	GitHub GitHubConfig `mapstructure:"github"`

	// Terminal page settings
	UI UIConfig `mapstructure:"ui"`

	// HTML page server settings
	Server ServerConfig `mapstructure:"server"`

	// Installer download settings
	Download DownloadConfig `mapstructure:"download"`

	dir string
}

// GitHubConfig identifies the repository whose latest release is shown
type GitHubConfig struct {
	APIBase        string `mapstructure:"api_base" validate:"required,url"`
	Owner          string `mapstructure:"owner" validate:"required"`
	Repo           string `mapstructure:"repo" validate:"required"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"min=1,max=300"`
	UserAgent      string `mapstructure:"user_agent" validate:"required"`
}

// UIConfig holds terminal UI configuration
type UIConfig struct {
	MouseEnabled bool   `mapstructure:"mouse_enabled"`
	NotesStyle   string `mapstructure:"notes_style" validate:"oneof=dark light notty"`
	AltScreen    bool   `mapstructure:"alt_screen"`
}

// ServerConfig holds the HTTP page server configuration
type ServerConfig struct {
	Addr           string `mapstructure:"addr" validate:"required"`
	MetricsEnabled bool   `mapstructure:"metrics_enabled"`
}

// DownloadConfig holds installer download configuration
type DownloadConfig struct {
	Dir string `mapstructure:"dir" validate:"required"`
}

// Timeout returns the GitHub request timeout as a duration
func (g GitHubConfig) Timeout() time.Duration {
	return time.Duration(g.TimeoutSeconds) * time.Second
}

// Dir returns the directory holding config.yaml
func (c *Config) Dir() string {
	return c.dir
}

// Load loads configuration from ~/.quicklook-landing (or ./.quicklook-landing
// when the home directory is not writable) and the environment.
func Load() (*Config, error) {
	return LoadFrom(DefaultDir())
}

// DefaultDir returns the preferred configuration directory
func DefaultDir() string {
	homeDir, _ := os.UserHomeDir()
	// Prefer ~/.quicklook-landing, but gracefully fall back if not writable (sandboxed)
	if homeDir != "" {
		dir := filepath.Join(homeDir, appDirName)
		if os.MkdirAll(dir, 0755) == nil {
			return dir
		}
	}
	_ = os.MkdirAll(appDirName, 0755)
	return appDirName
}

// LoadFrom loads configuration from configDir/config.yaml, creating the file
// with defaults when it does not exist.
func LoadFrom(configDir string) (*Config, error) {
	configFile := filepath.Join(configDir, "config.yaml")

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(configFile)

	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || os.IsNotExist(err) {
			// Best-effort; defaults still apply if the file cannot be written
			if createDefaultConfig(configFile) == nil {
				_ = v.ReadInConfig()
			}
		} else {
			return nil, fmt.Errorf("failed to read config %s: %w", configFile, err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.dir = configDir

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks field constraints
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")

	v.SetDefault("github.api_base", "https://api.github.com")
	v.SetDefault("github.owner", "QL-Win")
	v.SetDefault("github.repo", "QuickLook")
	v.SetDefault("github.timeout_seconds", 30)
	v.SetDefault("github.user_agent", "quicklook-landing")

	v.SetDefault("ui.mouse_enabled", true)
	v.SetDefault("ui.notes_style", "dark")
	v.SetDefault("ui.alt_screen", true)

	v.SetDefault("server.addr", "127.0.0.1:8080")
	v.SetDefault("server.metrics_enabled", true)

	homeDir, _ := os.UserHomeDir()
	v.SetDefault("download.dir", filepath.Join(homeDir, "Downloads"))
}

// createDefaultConfig creates a default configuration file
func createDefaultConfig(configFile string) error {
	defaultConfig := `# QuickLook landing page configuration

log_level: info

# Release source
github:
  api_base: https://api.github.com
  owner: QL-Win
  repo: QuickLook
  timeout_seconds: 30
  user_agent: quicklook-landing

# Terminal page
ui:
  mouse_enabled: true
  notes_style: dark
  alt_screen: true

# HTML page server
server:
  addr: 127.0.0.1:8080
  metrics_enabled: true
`

	if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
		return err
	}
	return os.WriteFile(configFile, []byte(defaultConfig), 0644)
}
