package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// httpFlags maps live-crawl flags to config keys
var httpFlags = map[string]string{
	"timeout":        "http.timeout",
	"ua":             "http.user_agent",
	"max-bytes":      "http.max_body_bytes",
	"retries":        "http.max_retries",
	"insecure":       "http.insecure_tls",
	"http-proxy":     "http.http_proxy",
	"https-proxy":    "http.https_proxy",
	"no-proxy":       "http.no_proxy",
	"respect-robots": "crawl.respect_robots",
	"cache":          "cache.enabled",
	"cache-dir":      "cache.dir",
	"rps":            "rate_limiting.requests_per_second",
}

// addHTTPFlags registers the live-crawl flags on cmd. Defaults come from the
// config; a flag only wins when set.
func addHTTPFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Duration("timeout", 0, "HTTP timeout per request")
	f.String("ua", "", "HTTP User-Agent")
	f.Int64("max-bytes", 0, "max response bytes to read")
	f.Int("retries", 0, "attempts per page for transient failures")
	f.Bool("insecure", false, "skip TLS certificate verification (use for self-signed certs)")
	f.String("http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	f.String("https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")
	f.String("no-proxy", "", "comma-separated hosts that bypass the proxy")
	f.Bool("respect-robots", true, "honor robots.txt rules and crawl delays")
	f.Bool("cache", true, "cache fetched pages")
	f.String("cache-dir", "", "directory for the on-disk page cache (empty keeps the cache in memory)")
	f.Float64("rps", 0, "page visits per second per host")
}

// bindFlags binds cmd's flags to viper keys. It runs before the command so
// only the executing command's flags are bound.
func bindFlags(cmd *cobra.Command, keys map[string]string) error {
	for flag, key := range keys {
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := viper.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}
	return nil
}
