package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keep-cli/keep/internal/config"
)

var (
	cfgFile   string
	vaultPath string
	verbose   bool
	cfg       *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "keep",
	Short: "A local, single-file secret store",
	Long: `Keep is a local, single-user secret store. Credentials live in one
encrypted file that you can copy, back up, or sync however you like;
nothing ever leaves the machine.

Every command derives the encryption key from your passphrase on the
spot and forgets it when the command exits. There is no daemon, no
session, and no unlocked state to leak.

Security properties:
- AES-256-GCM authenticated encryption, PBKDF2-SHA256 key derivation
- Tamper-evident: any modification of the vault file is detected
- Atomic writes: a crash can never destroy the previous vault
- Secrets are never echoed, logged, or accepted on the command line`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/keep/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&vaultPath, "vault", "", "vault file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Add all subcommands
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(rotateCmd)
	rootCmd.AddCommand(passwdCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(passgenCmd)
	rootCmd.AddCommand(configCmd)
}

func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		return
	}
	cfgFile = config.DefaultConfigPath()
}

// resolveVaultPath picks the vault location: the --vault flag wins, then
// the config file, then the built-in default.
func resolveVaultPath(conf *config.Config) string {
	if vaultPath != "" {
		return vaultPath
	}
	if conf != nil && conf.VaultPath != "" {
		return conf.VaultPath
	}
	return config.DefaultVaultPath()
}
