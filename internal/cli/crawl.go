package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/a11ystatement/internal/logger"
)

var (
	crawlGroup   string
	crawlTimeout time.Duration
)

// crawlCmd represents the crawl command
var crawlCmd = &cobra.Command{
	Use:   "crawl <url>",
	Short: "Crawl one site live and inspect its accessibility statement",
	Long: `Crawl fetches the start page, then follows the links most likely to lead
to the accessibility statement until it is found or the visit budget is spent.

Example:
  a11ystatement crawl https://www.kommun.se/
  a11ystatement crawl https://www.kommun.se/ --max-visits 25 --format yaml
  a11ystatement crawl https://intranet.local/ --insecure --respect-robots=false`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd, httpFlags)
	},
	RunE: runCrawl,
}

func init() {
	rootCmd.AddCommand(crawlCmd)

	crawlCmd.Flags().StringVar(&crawlGroup, "group", "", "group id (default: host of the start URL)")
	crawlCmd.Flags().DurationVar(&crawlTimeout, "crawl-timeout", 5*time.Minute, "overall timeout for the crawl")
	addHTTPFlags(crawlCmd)
}

func runCrawl(cmd *cobra.Command, args []string) error {
	startURL := args[0]
	group, err := groupFor(crawlGroup, startURL)
	if err != nil {
		return err
	}

	r, err := newRun()
	if err != nil {
		return err
	}
	defer r.close()

	ctx, cancel := context.WithTimeout(cmd.Context(), crawlTimeout)
	defer cancel()

	r.log.Info("Run started",
		logger.String("command", "crawl"),
		logger.String("start_url", startURL),
		logger.Int("max_visits", r.store.MaxVisits()))

	if _, err := r.livePipeline().Run(ctx, startURL, group); err != nil {
		return fmt.Errorf("crawl failed: %w", err)
	}

	r.log.Info("Run finished", logger.String("command", "crawl"))
	return r.report()
}
