// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/citation-cache/internal/citations"
)

var showCmd = &cobra.Command{
	Use:   "show EID...",
	Short: "Print cached citation overview records as YAML",
	Long: `Show reads cached citation overview records and prints their totals as YAML.
A bare Scopus ID is accepted in place of an EID. The command fails on the first
EID that is not cached.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	dir := cacheDir()

	summaries := make([]citations.RecordSummary, 0, len(args))
	for _, arg := range args {
		eid := citations.EIDFromBareID(citations.ExtractBareID(arg))
		rec, err := citations.ReadRecord(dir, eid)
		if err != nil {
			return err
		}
		s, err := citations.Summarize(rec)
		if err != nil {
			return fmt.Errorf("%s: %w", eid, err)
		}
		summaries = append(summaries, s)
	}

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(summaries); err != nil {
		return fmt.Errorf("encoding summaries: %w", err)
	}
	return enc.Close()
}
