// Package config loads threadsum configuration from .threadsum.yaml with
// environment overrides. The tool must run without any config file, so a
// missing file yields pure defaults.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/subosito/gotenv"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is searched in the working directory and then the home
// directory.
const ConfigFileName = ".threadsum.yaml"

// Config is the threadsum configuration.
type Config struct {
	Reddit RedditConfig `yaml:"reddit"`
	Render RenderConfig `yaml:"render"`
	Model  ModelConfig  `yaml:"model"`
	Output OutputConfig `yaml:"output"`
}

// RedditConfig controls the thread fetch.
type RedditConfig struct {
	UserAgent        string `yaml:"user_agent"`
	TimeoutSeconds   int    `yaml:"timeout_seconds"`
	MaxContentLength int    `yaml:"max_content_length"`
}

// RenderConfig controls terminal display.
type RenderConfig struct {
	Width  int    `yaml:"width"`
	Indent int    `yaml:"indent"`
	Color  string `yaml:"color"` // "auto", "on", "off"
}

// ModelConfig controls model selection and the summarization engine.
type ModelConfig struct {
	Engine         string  `yaml:"engine"` // "cli" or "server"
	ListFile       string  `yaml:"list_file"`
	Name           string  `yaml:"name,omitempty"` // skips the picker when set
	ServerURL      string  `yaml:"server_url,omitempty"`
	Temperature    float64 `yaml:"temperature"`
	MaxTokens      int     `yaml:"max_tokens"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
}

// OutputConfig controls where the summary goes.
type OutputConfig struct {
	Dir       string `yaml:"dir"`
	Print     *bool  `yaml:"print,omitempty"`
	WriteFile *bool  `yaml:"write_file,omitempty"`
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.setDefaults()
	config.applyEnv()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadDefault looks for .threadsum.yaml in the current directory and then
// the home directory. No file at all is fine: defaults apply.
func LoadDefault() (*Config, error) {
	if err := gotenv.Load(); err == nil {
		slog.Debug("loaded .env overrides")
	}

	if _, err := os.Stat(ConfigFileName); err == nil {
		return Load(ConfigFileName)
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homePath := filepath.Join(home, ConfigFileName)
		if _, err := os.Stat(homePath); err == nil {
			return Load(homePath)
		}
	}

	config := &Config{}
	config.setDefaults()
	config.applyEnv()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// setDefaults fills in defaults for anything the file left unset.
func (c *Config) setDefaults() {
	if c.Reddit.UserAgent == "" {
		c.Reddit.UserAgent = "threadsum/1.0"
	}
	if c.Reddit.TimeoutSeconds == 0 {
		c.Reddit.TimeoutSeconds = 15
	}
	if c.Reddit.MaxContentLength == 0 {
		c.Reddit.MaxContentLength = 12000
	}

	if c.Render.Width == 0 {
		c.Render.Width = 80
	}
	if c.Render.Indent == 0 {
		c.Render.Indent = 2
	}
	if c.Render.Color == "" {
		c.Render.Color = "auto"
	}

	if c.Model.Engine == "" {
		c.Model.Engine = "cli"
	}
	if c.Model.ListFile == "" {
		c.Model.ListFile = "models.txt"
	}
	if c.Model.ServerURL == "" {
		c.Model.ServerURL = "http://localhost:11434"
	}
	if c.Model.Temperature == 0 {
		c.Model.Temperature = 0.2
	}
	if c.Model.MaxTokens == 0 {
		c.Model.MaxTokens = 4096
	}
	if c.Model.TimeoutSeconds == 0 {
		c.Model.TimeoutSeconds = 300
	}

	if c.Output.Dir == "" {
		c.Output.Dir = "."
	}
	if c.Output.Print == nil {
		c.Output.Print = boolPtr(true)
	}
	if c.Output.WriteFile == nil {
		c.Output.WriteFile = boolPtr(true)
	}
}

// applyEnv overlays THREADSUM_* environment variables.
func (c *Config) applyEnv() {
	if v := os.Getenv("THREADSUM_USER_AGENT"); v != "" {
		c.Reddit.UserAgent = v
	}
	if v := os.Getenv("THREADSUM_MODEL"); v != "" {
		c.Model.Name = v
	}
	if v := os.Getenv("THREADSUM_LIST_FILE"); v != "" {
		c.Model.ListFile = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Model.Engine != "cli" && c.Model.Engine != "server" {
		return fmt.Errorf("invalid engine: %s (must be 'cli' or 'server')", c.Model.Engine)
	}
	if c.Render.Width < 20 {
		return fmt.Errorf("render width too small: %d (minimum 20)", c.Render.Width)
	}
	if c.Render.Color != "auto" && c.Render.Color != "on" && c.Render.Color != "off" {
		return fmt.Errorf("invalid color mode: %s (must be 'auto', 'on' or 'off')", c.Render.Color)
	}
	if c.Reddit.TimeoutSeconds < 0 {
		return fmt.Errorf("invalid reddit timeout: %d", c.Reddit.TimeoutSeconds)
	}
	if c.Model.TimeoutSeconds < 0 {
		return fmt.Errorf("invalid model timeout: %d", c.Model.TimeoutSeconds)
	}
	return nil
}

func boolPtr(b bool) *bool { return &b }
