package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ainews",
		Short: "AI news digest",
		Long: `ainews collects AI news from RSS and Atom feeds, sorts it into
four categories and optionally summarizes each category with a language model.

Example usage:
  ainews run                   # Full run over the last 7 days
  ainews run --fast --days 3   # Feed summaries only, no page scraping or LLM
  ainews serve --port 5001     # HTTP API`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("config", "", "YAML catalog with sources and categories (overrides CATALOG_PATH)")

	root.AddCommand(newRunCmd(), newServeCmd())
	return root
}
