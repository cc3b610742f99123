// Package cmd contains all CLI command definitions.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hushfile/hushfile-cli/internal/api"
	"github.com/hushfile/hushfile-cli/internal/config"
)

var (
	cfgFile  string
	insecure bool
	debug    bool
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "hushfile",
	Short: "Encrypted file sharing CLI",
	Long: `hushfile encrypts files on this machine and shares them through a
hushfile server. The server only ever sees ciphertext; the password stays in
the share URL fragment, which is never transmitted.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Build the default config path hint from the active build mode so the
	// help text always reflects the real default location.
	defaultCfgHint := "auto"
	if dir, err := config.ConfigDir(); err == nil {
		defaultCfgHint = dir + "/config.yaml"
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: "+defaultCfgHint+")")
	rootCmd.PersistentFlags().String("server", "", "hushfile server URL (default: from config)")
	rootCmd.PersistentFlags().BoolVarP(&insecure, "insecure", "k", false, "skip TLS certificate verification (useful for self-signed certificates)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "print requests and raw API responses to stderr")

	if err := viper.BindPFlag("server", rootCmd.PersistentFlags().Lookup("server")); err != nil {
		panic(err)
	}
}

// initConfig reads the configuration file and environment variables.
func initConfig() {
	config.SetDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if dir, err := config.ConfigDir(); err == nil {
		viper.AddConfigPath(dir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	} else {
		// Without a config dir the defaults still work.
		fmt.Fprintln(os.Stderr, "Warning: could not determine config directory:", err)
	}

	viper.SetEnvPrefix("HUSHFILE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	} else {
		// A missing config file is normal; anything else is worth a warning
		// but never fatal, the defaults still work.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintln(os.Stderr, "Warning: ignoring config file:", err)
		}
	}
}

// newClient loads the configuration and returns an API client. A non-empty
// server, as parsed out of a pasted share URL, takes precedence over the
// configured one: the URL is self-contained and names the server that
// actually holds the file.
func newClient(server string) (*api.Client, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	if server != "" {
		cfg.Server = server
	}
	return api.New(cfg.Server, insecure, debug), cfg, nil
}
