package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/a11ystatement/internal/logger"
	"github.com/ppiankov/a11ystatement/internal/worker"
)

var batchTimeout time.Duration

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Crawl many sites from a file in parallel",
	Long: `Batch crawls every site listed in the input file:
- One start URL per line, optionally followed by a group id
- Empty lines and lines starting with # are ignored
- Sites are crawled in parallel; pages of one site are visited one at a time
- One report per site plus a run summary are written to the output directory

Example:
  a11ystatement batch sites.txt
  a11ystatement batch sites.txt --workers 8 --output-dir ./reports`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd, batchFlags)
	},
	RunE: runBatch,
}

var batchFlags = func() map[string]string {
	keys := map[string]string{"workers": "concurrency.workers"}
	for flag, key := range httpFlags {
		keys[flag] = key
	}
	return keys
}()

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().Int("workers", 0, "number of sites crawled concurrently")
	batchCmd.Flags().DurationVar(&batchTimeout, "batch-timeout", 30*time.Minute, "total timeout for batch processing")
	addHTTPFlags(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]

	r, err := newRun()
	if err != nil {
		return err
	}
	defer r.close()

	sites, err := worker.ReadSitesFromFile(file)
	if err != nil {
		return fmt.Errorf("read sites: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), batchTimeout)
	defer cancel()

	workers := r.cfg.Concurrency.Workers
	r.log.Info("Run started",
		logger.String("command", "batch"),
		logger.String("file", file),
		logger.Int("sites", len(sites)),
		logger.Int("workers", workers))

	fmt.Fprintf(os.Stderr, "⚙️  Crawling %d sites with %d workers...\n\n", len(sites), workers)

	processor := worker.NewBatchProcessor(r.livePipeline(), workers)
	results := processor.ProcessSites(ctx, sites)

	failures := 0
	for _, result := range results {
		if result.Error != nil {
			failures++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Site.URL, result.Error)
			continue
		}
		r.log.Debug("Site crawled",
			logger.String("group", result.Site.Group),
			logger.Duration("elapsed", result.Duration))
	}

	r.log.Info("Run finished",
		logger.String("command", "batch"),
		logger.Int("sites", len(results)),
		logger.Int("failures", failures))

	if err := r.report(); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "  Total:     %d sites\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", len(results)-failures)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failures)
	return nil
}
