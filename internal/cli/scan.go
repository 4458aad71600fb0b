package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/a11ystatement/internal/capture"
	"github.com/ppiankov/a11ystatement/internal/logger"
	"github.com/ppiankov/a11ystatement/internal/pipeline"
)

var scanGroup string

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan <har-dir> <start-url>",
	Short: "Inspect a site from recorded HAR files",
	Long: `Scan replays a crawl from HAR files recorded earlier, for example by a
browser test run. Every *.har file in the directory is indexed by the URL of
its first HTML response; the crawl starts at <start-url> and only visits
pages that were recorded.

Example:
  a11ystatement scan ./hars https://www.kommun.se/
  a11ystatement scan ./hars https://www.kommun.se/ --format yaml --output-dir ./out`,
	Args: cobra.ExactArgs(2),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringVar(&scanGroup, "group", "", "group id (default: host of the start URL)")
}

func runScan(cmd *cobra.Command, args []string) error {
	dir, startURL := args[0], args[1]
	group, err := groupFor(scanGroup, startURL)
	if err != nil {
		return err
	}

	r, err := newRun()
	if err != nil {
		return err
	}
	defer r.close()

	index := capture.NewIndex(10 * time.Minute)
	pages, err := index.LoadDir(dir)
	if err != nil {
		return fmt.Errorf("load captures: %w", err)
	}
	if len(pages) == 0 {
		return fmt.Errorf("no HTML captures found in %s", dir)
	}

	r.log.Info("Run started",
		logger.String("command", "scan"),
		logger.String("start_url", startURL),
		logger.Int("captures", len(pages)))

	p := pipeline.NewPipeline(r.store, index,
		pipeline.WithLogger(r.log),
		pipeline.WithPageHandler(r.pageHandler()))
	if _, err := p.Run(cmd.Context(), startURL, group); err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	r.log.Info("Run finished", logger.String("command", "scan"))
	return r.report()
}
