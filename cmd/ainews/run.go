package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/deusflow/ainews/internal/app"
	"github.com/deusflow/ainews/internal/metrics"
	"github.com/deusflow/ainews/internal/report"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fetch, categorize and summarize AI news once",
		Long: `Run the pipeline once, print the report and save it as JSON.

Examples:
  ainews run --days 3                 # Look back three days
  ainews run --no-summaries           # Categorize only
  ainews run --output report.json     # Choose the report path`,
		RunE: runOnce,
	}

	cmd.Flags().Int("days", 0, "number of days to look back (default LOOKBACK_DAYS or 7)")
	cmd.Flags().String("output", "", "output JSON file path (default: auto-generated)")
	cmd.Flags().Bool("no-save", false, "don't save results to a JSON file")
	cmd.Flags().Bool("fast", false, "skip full content scraping and summaries")
	cmd.Flags().Bool("no-summaries", false, "skip summarization (categorization only)")
	cmd.Flags().Bool("fetch-content", true, "scrape article pages for full text")
	return cmd
}

type runFlags struct {
	days         int
	fast         bool
	noSummaries  bool
	fetchContent bool
}

// runOptions maps the command line onto pipeline options; fast mode turns
// off both page scraping and summaries.
func runOptions(f runFlags, defaultDays int) app.Options {
	days := f.days
	if days <= 0 {
		days = defaultDays
	}
	return app.Options{
		Days:              days,
		FetchFullContent:  f.fetchContent && !f.fast,
		GenerateSummaries: !f.fast && !f.noSummaries,
	}
}

func runOnce(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var f runFlags
	f.days, _ = cmd.Flags().GetInt("days")
	if cmd.Flags().Changed("days") && f.days <= 0 {
		return fmt.Errorf("--days must be positive, got %d", f.days)
	}
	f.fast, _ = cmd.Flags().GetBool("fast")
	f.noSummaries, _ = cmd.Flags().GetBool("no-summaries")
	f.fetchContent, _ = cmd.Flags().GetBool("fetch-content")
	output, _ := cmd.Flags().GetString("output")
	noSave, _ := cmd.Flags().GetBool("no-save")

	p, err := buildPipeline(cmd.Context(), cfg, metrics.Global)
	if err != nil {
		return err
	}
	defer p.Close()

	con := newConsole(cmd.OutOrStdout(), cmd.ErrOrStderr())
	if f.fast {
		con.Warning("Fast mode enabled: using feed summaries only, no AI summarization")
	}

	res, err := p.agent.Run(cmd.Context(), runOptions(f, cfg.LookbackDays))
	if err != nil {
		return err
	}

	con.Report(res)

	if !noSave {
		if output == "" {
			output = report.DefaultFileName(time.Now())
		}
		if err := report.Write(output, res); err != nil {
			return err
		}
		con.Print("\nResults saved to: %s", output)
	}

	con.Print("")
	con.Success("Processed %d articles across %d categories", res.Total(), len(res.Categories))
	return nil
}
