// Package config provides the plain-value settings surface consumed
// by the tracker core, persisted as a YAML file next to the data
// file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// Export format names.
const (
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

// Config holds every user-tunable setting.
type Config struct {
	// DataPath locates the tracker JSON document. Empty means the
	// default under the user config directory.
	DataPath string `yaml:"data_path,omitempty"`
	// OutputDir receives the generated summary files. Empty means
	// the data file's directory.
	OutputDir string `yaml:"output_dir,omitempty"`
	// TemplateDir overrides the embedded HTML templates.
	TemplateDir string `yaml:"template_dir,omitempty"`

	ExportFormat         string `yaml:"export_format"`
	ShowRunningDurations bool   `yaml:"show_running_durations"`
	// ShowNotifications enables the status text after start and stop
	// actions. Errors are always shown.
	ShowNotifications bool `yaml:"show_notifications"`
	// AllowDataFileEditing exposes the open-data-file action in the
	// launcher.
	AllowDataFileEditing bool `yaml:"allow_data_file_editing"`

	// TaskAliases maps alternate names onto canonical task names,
	// one "ALIAS|TASK-NAME" per line.
	TaskAliases []string `yaml:"task_aliases,omitempty"`
	// TaskLinks is an alternating list of name patterns and URL
	// templates ("§" stands for the task name).
	TaskLinks []string `yaml:"task_links,omitempty"`

	CustomHTMLHeader string `yaml:"custom_html_header,omitempty"`
	CustomHTMLFooter string `yaml:"custom_html_footer,omitempty"`
	// Theme is "light" or "dark"; it affects HTML styling only.
	Theme string `yaml:"theme"`
}

// Default returns the configuration used when no file exists yet.
func Default() Config {
	return Config{
		ExportFormat:      FormatHTML,
		ShowNotifications: true,
		Theme:             "dark",
	}
}

// Load reads the YAML config at path. A missing file yields the
// defaults; a malformed file is an error.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

// Save writes the config as YAML, creating the directory if needed.
func (c Config) Save(path string) error {
	raw, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c *Config) normalize() {
	switch strings.ToLower(c.ExportFormat) {
	case FormatCSV, FormatMarkdown, FormatHTML:
		c.ExportFormat = strings.ToLower(c.ExportFormat)
	default:
		c.ExportFormat = FormatHTML
	}
	if c.Theme != "light" {
		c.Theme = "dark"
	}
}

// ResolveAlias maps a task name through the alias list, returning the
// canonical name for the first matching alias or the input unchanged.
// Malformed lines are skipped with a warning.
func (c Config) ResolveAlias(name string) string {
	for _, line := range c.TaskAliases {
		alias, canonical, ok := strings.Cut(line, "|")
		if !ok || strings.TrimSpace(alias) == "" || strings.TrimSpace(canonical) == "" {
			log.Warn("task alias line is not ALIAS|TASK-NAME, skipped", "line", line)
			continue
		}
		if strings.TrimSpace(alias) == name {
			return strings.TrimSpace(canonical)
		}
	}
	return name
}

// ResolveDataPath returns the configured data file location or the
// default one.
func (c Config) ResolveDataPath() (string, error) {
	if c.DataPath != "" {
		return c.DataPath, nil
	}
	cfgDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfgDir, "tally", "data.json"), nil
}

// ResolveOutputDir returns the directory summary files are written
// to: the configured one, or the data file's directory.
func (c Config) ResolveOutputDir() (string, error) {
	if c.OutputDir != "" {
		return c.OutputDir, nil
	}
	dataPath, err := c.ResolveDataPath()
	if err != nil {
		return "", err
	}
	return filepath.Dir(dataPath), nil
}

// DefaultConfigPath returns ~/.config/tally/config.yaml
func DefaultConfigPath() (string, error) {
	cfgDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfgDir, "tally", "config.yaml"), nil
}
