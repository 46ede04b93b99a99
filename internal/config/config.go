// Package config persists conversion settings as a flat key/value YAML
// record. Absent keys fall back to documented defaults, so an empty or
// missing record still yields a usable configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/alnah/go-html2pdf/internal/fileutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrConfigTooLarge  = errors.New("config exceeds maximum size")
)

// maxConfigSize bounds config input to prevent memory exhaustion.
const maxConfigSize = 1 << 20

// Settings defaults, matching the documented persisted-settings contract.
const (
	DefaultPageSize    = "a4"
	DefaultOrientation = "portrait"
	DefaultMargin      = 10.0 // millimeters
	DefaultFilename    = "document.pdf"
)

// Settings is the persisted flat key/value settings record.
// Margin and the boolean fields use pointers so an absent key is
// distinguishable from an explicit zero or false.
type Settings struct {
	PageSize         string   `yaml:"pageSize"`
	Orientation      string   `yaml:"orientation"`
	Margin           *float64 `yaml:"margin"` // millimeters
	Filename         string   `yaml:"filename"`
	IncludeFonts     *bool    `yaml:"includeFonts"`
	RenderCodeBlocks *bool    `yaml:"renderCodeBlocks"`
}

// DefaultSettings returns the settings used when nothing is persisted:
// A4, portrait, 10 mm margin, "document.pdf", fonts and code previews on.
func DefaultSettings() Settings {
	return Settings{
		PageSize:    DefaultPageSize,
		Orientation: DefaultOrientation,
		Filename:    DefaultFilename,
	}
}

// MarginMm reports the effective margin in millimeters (absent = default).
// An explicit zero is a valid margin and is preserved.
func (s Settings) MarginMm() float64 {
	if s.Margin == nil {
		return DefaultMargin
	}
	return *s.Margin
}

// Fonts reports the effective includeFonts value (absent = true).
func (s Settings) Fonts() bool {
	return s.IncludeFonts == nil || *s.IncludeFonts
}

// CodeBlocks reports the effective renderCodeBlocks value (absent = true).
func (s Settings) CodeBlocks() bool {
	return s.RenderCodeBlocks == nil || *s.RenderCodeBlocks
}

// withDefaults fills absent keys with their documented defaults.
func (s Settings) withDefaults() Settings {
	d := DefaultSettings()
	if s.PageSize == "" {
		s.PageSize = d.PageSize
	}
	if s.Orientation == "" {
		s.Orientation = d.Orientation
	}
	if s.Filename == "" {
		s.Filename = d.Filename
	}
	return s
}

// Load reads settings from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise it's treated as a config name and searched in standard
// locations. Returns an error if the file is not found (no silent
// fallback); use DefaultSettings for the no-config case.
func Load(nameOrPath string) (*Settings, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if len(data) > maxConfigSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrConfigTooLarge, len(data), maxConfigSize)
	}

	var s Settings
	if err := yaml.UnmarshalWithOptions(data, &s, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	s = s.withDefaults()
	return &s, nil
}

// Save writes settings to path as a flat YAML record, creating parent
// directories as needed.
func Save(path string, s Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil { // #nosec G306 -- settings are not secret
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/html2pdf/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	// Try current directory first (both extensions)
	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	// Try user config directory (both extensions)
	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "html2pdf", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
