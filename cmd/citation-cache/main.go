// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the citation-cache CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/citation-cache/internal/citations"
	"github.com/pdiddy/citation-cache/internal/logging"
	"github.com/pdiddy/citation-cache/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// Config keys. The cache directory lives under the Directories section,
// keyed by the API view name.
const (
	keyCacheDir  = "directories.citationoverview"
	keyEndpoint  = "citationoverview.endpoint"
	keyTimeout   = "citationoverview.timeout"
	keyUserAgent = "citationoverview.user_agent"
	keyAPIKey    = "authentication.apikey"
	keyInstToken = "authentication.insttoken"
	keyLogLevel  = "log.level"
	keyLogPretty = "log.pretty"
)

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets secrets.Secrets

// configErr records why no config file was read, if none was.
var configErr error

// rootCmd is the base command for the citation-cache CLI.
var rootCmd = &cobra.Command{
	Use:   "citation-cache",
	Short: "Pre-seed a local cache of Scopus citation overviews",
	Long: `citation-cache fetches Scopus citation overview records for a batch of EIDs
with a single API request, splits the response into one record per EID, and
writes each record to the cache directory. Cached records are never expired;
use --refresh to fetch them again.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Setup(logging.Config{
			Level:  viper.GetString(keyLogLevel),
			Pretty: viper.GetBool(keyLogPretty),
		})
		if configErr == nil {
			log.Debug().Str("file", viper.ConfigFileUsed()).Msg("using config file")
		} else if _, ok := configErr.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("reading config: %w", configErr)
		}

		s, err := secrets.Load(".secrets/", func(name string, err error) {
			log.Warn().Err(err).Str("secret", name).Msg("could not read secret")
		})
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			log.Debug().Strs("keys", s.Keys()).Msg("loaded secrets")
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./citation-cache.yaml or ~/.config/citation-cache/citation-cache.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Bool("log-pretty", false, "human-readable log output")
	rootCmd.PersistentFlags().String("cache-dir", "", "citation overview cache directory (default ~/.scopus/citation_overview)")

	_ = viper.BindPFlag(keyLogLevel, rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag(keyLogPretty, rootCmd.PersistentFlags().Lookup("log-pretty"))
	_ = viper.BindPFlag(keyCacheDir, rootCmd.PersistentFlags().Lookup("cache-dir"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("citation-cache")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "citation-cache"))
		}
	}

	viper.SetDefault(keyCacheDir, "~/.scopus/citation_overview")
	viper.SetDefault(keyEndpoint, citations.DefaultEndpoint)
	viper.SetDefault(keyTimeout, defaultTimeout)
	viper.SetDefault(keyUserAgent, defaultUserAgent)

	// A .env file in the working directory may hold CITATION_CACHE_* variables.
	_ = godotenv.Load()
	viper.SetEnvPrefix("CITATION_CACHE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	configErr = viper.ReadInConfig()
}

// cacheDir returns the configured cache directory with a leading ~ expanded.
func cacheDir() string {
	return expandHome(viper.GetString(keyCacheDir))
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
