package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/keep-cli/keep/internal/config"
)

var configCmd = newConfigCommand(nil)

func newConfigCommand(conf *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage keep configuration",
		Long: `View or change configuration values.

Configuration is stored in ~/.config/keep/config.yaml by default.

Example:
  keep config path                       # Show config file path
  keep config get                        # Show all configuration
  keep config get clipboard_ttl          # Get clipboard timeout
  keep config set clipboard_ttl 60       # Set clipboard timeout (seconds)`,
	}

	getCmd := &cobra.Command{
		Use:   "get [key]",
		Short: "Get configuration value(s)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runConfigGetAll(cmd, conf)
			}
			return runConfigGet(cmd, args[0], conf)
		},
	}

	setCmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(cmd, args[0], args[1], conf)
		},
	}

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeOutput(cmd.OutOrStdout(), "%s\n", resolveConfigPath())
		},
	}

	cmd.AddCommand(getCmd)
	cmd.AddCommand(setCmd)
	cmd.AddCommand(pathCmd)

	return cmd
}

// NewConfigCommand creates a config command for testing.
func NewConfigCommand(conf *config.Config) *cobra.Command {
	return newConfigCommand(conf)
}

func resolveConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.DefaultConfigPath()
}

func runConfigGetAll(cmd *cobra.Command, conf *config.Config) error {
	if conf == nil {
		conf = cfg
	}
	out := cmd.OutOrStdout()

	if err := writeOutput(out, "Configuration file: %s\n\n", resolveConfigPath()); err != nil {
		return err
	}
	lines := []struct {
		key   string
		value interface{}
	}{
		{"vault_path", conf.VaultPath},
		{"clipboard_ttl", conf.ClipboardTTL},
		{"confirm_destructive", conf.ConfirmDestructive},
		{"kdf.iterations", conf.KDF.Iterations},
		{"organizer.include_hidden", conf.Organizer.IncludeHidden},
		{"organizer.log_file", conf.Organizer.LogFile},
	}
	for _, line := range lines {
		if err := writeOutput(out, "%s: %v\n", line.key, line.value); err != nil {
			return err
		}
	}
	return nil
}

func runConfigGet(cmd *cobra.Command, key string, conf *config.Config) error {
	if conf == nil {
		conf = cfg
	}
	out := cmd.OutOrStdout()

	switch normalizeConfigKey(key) {
	case "vault_path":
		return writeOutput(out, "%s\n", conf.VaultPath)
	case "clipboard_ttl":
		return writeOutput(out, "%d\n", conf.ClipboardTTL)
	case "confirm_destructive":
		return writeOutput(out, "%t\n", conf.ConfirmDestructive)
	case "kdf.iterations":
		return writeOutput(out, "%d\n", conf.KDF.Iterations)
	case "organizer.include_hidden":
		return writeOutput(out, "%t\n", conf.Organizer.IncludeHidden)
	case "organizer.log_file":
		return writeOutput(out, "%s\n", conf.Organizer.LogFile)
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
}

func runConfigSet(cmd *cobra.Command, key, value string, conf *config.Config) error {
	if conf == nil {
		conf = cfg
	}
	out := cmd.OutOrStdout()

	switch normalizeConfigKey(key) {
	case "vault_path":
		conf.VaultPath = value
	case "clipboard_ttl":
		seconds, err := strconv.Atoi(value)
		if err != nil || seconds < 0 {
			return fmt.Errorf("invalid clipboard_ttl: must be a non-negative number of seconds")
		}
		conf.ClipboardTTL = seconds
	case "confirm_destructive":
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value: %w", err)
		}
		conf.ConfirmDestructive = boolVal
	case "kdf.iterations":
		iterations, err := strconv.Atoi(value)
		if err != nil || iterations <= 0 {
			return fmt.Errorf("invalid kdf.iterations: must be a positive integer")
		}
		conf.KDF.Iterations = iterations
	case "organizer.include_hidden":
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value: %w", err)
		}
		conf.Organizer.IncludeHidden = boolVal
	case "organizer.log_file":
		conf.Organizer.LogFile = value
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}

	if err := config.SaveConfig(conf, resolveConfigPath()); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	successf(out, "Configuration updated: %s = %s", key, value)
	return nil
}

func normalizeConfigKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(key), "-", "_")
}
