// Package config handles configuration for the keep CLI.
// It provides functionality to load, save, and manage application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/keep-cli/keep/internal/vault"
)

// Config represents the keep configuration
type Config struct {
	VaultPath          string          `yaml:"vault_path"`
	ClipboardTTL       int             `yaml:"clipboard_ttl"` // seconds; 0 disables the timed clear
	ConfirmDestructive bool            `yaml:"confirm_destructive"`
	KDF                KDFConfig       `yaml:"kdf"`
	Organizer          OrganizerConfig `yaml:"organizer"`
}

// KDFConfig represents key derivation parameters for new vaults
type KDFConfig struct {
	Iterations int `yaml:"iterations"`
}

// OrganizerConfig configures the file organizer. An empty Categories map
// means the built-in extension table is used.
type OrganizerConfig struct {
	Categories    map[string]string `yaml:"categories"` // ".ext" → folder name
	IncludeHidden bool              `yaml:"include_hidden"`
	LogFile       string            `yaml:"log_file"`
}

// DefaultConfigPath returns the standard config file location
func DefaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "keep", "config.yaml")
}

// DefaultVaultPath returns the standard vault file location
func DefaultVaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "keep", "vault.json")
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		VaultPath:          DefaultVaultPath(),
		ClipboardTTL:       30,
		ConfirmDestructive: true,
		KDF: KDFConfig{
			Iterations: vault.DefaultIterations,
		},
		Organizer: OrganizerConfig{
			IncludeHidden: false,
			LogFile:       "organizer.log",
		},
	}
}

// LoadConfig loads configuration from file or returns default
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath == "" {
		return cfg, nil
	}

	cleanPath := filepath.Clean(configPath)

	if _, err := os.Stat(cleanPath); os.IsNotExist(err) {
		// First run: write the defaults so users have a file to edit
		if err := SaveConfig(cfg, cleanPath); err != nil {
			return cfg, fmt.Errorf("failed to create default config: %w", err)
		}
		return cfg, nil
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse over the defaults so omitted keys keep their default values
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to file
func SaveConfig(cfg *Config, configPath string) error {
	cleanPath := filepath.Clean(configPath)

	dir := filepath.Dir(cleanPath)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(cleanPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
