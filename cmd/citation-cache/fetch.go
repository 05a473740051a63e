// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/citation-cache/internal/citations"
	"github.com/pdiddy/citation-cache/internal/httputil"
	"github.com/pdiddy/citation-cache/internal/logging"
	"github.com/pdiddy/citation-cache/internal/secrets"
	"github.com/pdiddy/citation-cache/pkg/types"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "citation-cache/0.1"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [EIDs...]",
	Short: "Fetch and cache citation overviews for a batch of EIDs",
	Long: `Fetch runs one citation overview query for every EID that is not cached yet,
then writes one record per EID to the cache directory. Cached EIDs are skipped
unless --refresh is given.

The h-index stored in each record is the value for the whole batch; the API
does not report it per publication.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().Int("start", 0, "first year of the citation count range (required)")
	fetchCmd.Flags().Int("end", 0, "last year of the citation count range (default current year)")
	fetchCmd.Flags().Bool("refresh", false, "fetch cached EIDs again and overwrite their records")
	fetchCmd.Flags().String("api-key", "", "Elsevier API key (default from .secrets/elsevier-api-key)")
	fetchCmd.Flags().String("insttoken", "", "Elsevier institutional token (default from .secrets/elsevier-insttoken)")
	fetchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
	fetchCmd.Flags().String("endpoint", "", "citation overview endpoint URL")
	_ = fetchCmd.MarkFlagRequired("start")

	_ = viper.BindPFlag(keyAPIKey, fetchCmd.Flags().Lookup("api-key"))
	_ = viper.BindPFlag(keyInstToken, fetchCmd.Flags().Lookup("insttoken"))
	_ = viper.BindPFlag(keyEndpoint, fetchCmd.Flags().Lookup("endpoint"))

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	start, _ := cmd.Flags().GetInt("start")
	end, _ := cmd.Flags().GetInt("end")
	refresh, _ := cmd.Flags().GetBool("refresh")

	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = viper.GetDuration(keyTimeout)
	}

	cfg := types.CitationOverviewConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: viper.GetString(keyUserAgent),
		},
		Endpoint:  viper.GetString(keyEndpoint),
		CacheDir:  cacheDir(),
		APIKey:    loadedSecrets.Lookup(secrets.ElsevierAPIKey, viper.GetString(keyAPIKey)),
		InstToken: loadedSecrets.Lookup(secrets.ElsevierInstToken, viper.GetString(keyInstToken)),
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("no API key: pass --api-key or create .secrets/%s", secrets.ElsevierAPIKey)
	}

	fetcher := &citations.BulkFetcher{
		Fetcher: &citations.Fetcher{
			Downloader: &httputil.Downloader{
				Client:    &http.Client{Timeout: cfg.Timeout},
				APIKey:    cfg.APIKey,
				InstToken: cfg.InstToken,
				UserAgent: cfg.UserAgent,
			},
			Endpoint: cfg.Endpoint,
		},
		CacheDir: cfg.CacheDir,
		Logger:   logging.NewLogger("citations"),
	}

	result, err := fetcher.BulkFetch(cmd.Context(), args, citations.NewDateRange(start, end), refresh)

	out := cmd.OutOrStdout()
	for _, eid := range result.Skipped {
		fmt.Fprintf(out, "skipped: %s (already cached)\n", eid)
	}
	for _, path := range result.Written {
		fmt.Fprintf(out, "cached:  %s\n", path)
	}
	fmt.Fprintf(out, "\nBatch summary: %d requested, %d skipped, %d written (total: %d)\n",
		len(result.Requested), len(result.Skipped), len(result.Written), result.Total())
	if err != nil {
		log.Error().Err(err).Int("written", len(result.Written)).Msg("batch failed")
	}
	return err
}
