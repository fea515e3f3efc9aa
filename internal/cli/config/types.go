// Package config provides configuration management for the projectboard CLI.
package config

// Default configuration values.
const (
	DefaultPort      = 8765
	DefaultStaticDir = "internal/ui/resources/static"
	EnvPrefix        = "PROJECTBOARD_"
)

// ConfigFileNames are looked up in the working directory, in order.
var ConfigFileNames = []string{"projectboard.yaml", "projectboard.yml"}

// Config holds all CLI configuration options.
type Config struct {
	Verbose  bool      `koanf:"verbose"`
	SeedFile string    `koanf:"seed_file"`
	UI       *UIConfig `koanf:"ui"`
}

// UIConfig holds configuration for the UI server.
type UIConfig struct {
	Port          int    `koanf:"port"`
	AutoOpen      bool   `koanf:"auto_open"`
	Dev           bool   `koanf:"dev"`
	Watch         bool   `koanf:"watch"`
	StaticDir     string `koanf:"static_dir"`
	SessionSecret string `koanf:"session_secret"`
}

// DefaultUIConfig returns a UIConfig with default values.
func DefaultUIConfig() *UIConfig {
	return &UIConfig{
		Port:      DefaultPort,
		AutoOpen:  true,
		Watch:     true,
		StaticDir: DefaultStaticDir,
	}
}

// GetUIConfig returns the UI config with defaults applied for any unset values.
func (c *Config) GetUIConfig() *UIConfig {
	if c.UI == nil {
		return DefaultUIConfig()
	}
	ui := *c.UI
	if ui.Port == 0 {
		ui.Port = DefaultPort
	}
	if ui.StaticDir == "" {
		ui.StaticDir = DefaultStaticDir
	}
	return &ui
}
