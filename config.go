package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Drop target delegates the window can forward to.
const (
	DelegatePrevious    = "previous"
	DelegateComposition = "composition"
)

// AppConfig holds all persistent user settings.
type AppConfig struct {
	StartURL     string `json:"startUrl"` // empty = built-in page
	LogLevel     string `json:"logLevel"`
	WindowWidth  int    `json:"windowWidth"`
	WindowHeight int    `json:"windowHeight"`
	Delegate     string `json:"delegate"`
	Notify       *bool  `json:"notify"`      // nil = true
	SaveHistory  *bool  `json:"saveHistory"` // nil = true
	HistoryDays  int    `json:"historyDays"`
}

// IsNotify returns whether drops raise a desktop notification (default true).
func (c *AppConfig) IsNotify() bool {
	return c.Notify == nil || *c.Notify
}

// IsSaveHistory returns whether drops are recorded (default true).
func (c *AppConfig) IsSaveHistory() bool {
	return c.SaveHistory == nil || *c.SaveHistory
}

var (
	appDataDir     string
	appDataDirOnce sync.Once
)

// DefaultConfig returns config with default values.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		LogLevel:     "error",
		WindowWidth:  1000,
		WindowHeight: 700,
		Delegate:     DelegatePrevious,
		HistoryDays:  30,
	}
}

// AppDataDir returns the path to ~/.webdrop/, creating it if needed.
func AppDataDir() string {
	appDataDirOnce.Do(func() {
		if dir := os.Getenv("WEBDROP_HOME"); dir != "" {
			appDataDir = dir
			os.MkdirAll(appDataDir, 0755)
			return
		}
		home, err := os.UserHomeDir()
		if err != nil {
			// Fallback to exe directory
			if exe, err2 := os.Executable(); err2 == nil {
				appDataDir = filepath.Dir(exe)
			} else {
				appDataDir = "."
			}
			return
		}
		appDataDir = filepath.Join(home, ".webdrop")
		os.MkdirAll(appDataDir, 0755)
	})
	return appDataDir
}

// DataPath returns the full path for a file inside the data directory.
func DataPath(elem ...string) string {
	parts := append([]string{AppDataDir()}, elem...)
	return filepath.Join(parts...)
}

func configPath() string {
	return DataPath("config.json")
}

// LoadConfig reads config from ~/.webdrop/config.json.
// Returns default config if file doesn't exist.
func LoadConfig() *AppConfig {
	return loadConfigFile(configPath())
}

func loadConfigFile(path string) *AppConfig {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		fmt.Printf("config file is invalid, using defaults: %v\n", err)
		return DefaultConfig()
	}

	cfg.normalize()
	return cfg
}

// normalize replaces out-of-range values with their defaults.
func (c *AppConfig) normalize() {
	def := DefaultConfig()
	if c.WindowWidth <= 0 {
		c.WindowWidth = def.WindowWidth
	}
	if c.WindowHeight <= 0 {
		c.WindowHeight = def.WindowHeight
	}
	if c.HistoryDays <= 0 {
		c.HistoryDays = def.HistoryDays
	}
	switch strings.ToLower(c.Delegate) {
	case DelegatePrevious, DelegateComposition:
		c.Delegate = strings.ToLower(c.Delegate)
	default:
		c.Delegate = def.Delegate
	}
}

// SaveConfig writes the config to ~/.webdrop/config.json.
func SaveConfig(cfg *AppConfig) error {
	os.MkdirAll(AppDataDir(), 0755)
	return saveConfigFile(configPath(), cfg)
}

func saveConfigFile(path string, cfg *AppConfig) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
