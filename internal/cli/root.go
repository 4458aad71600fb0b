package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/a11ystatement/internal/logger"
	"github.com/ppiankov/a11ystatement/internal/model"
)

// version is overridden at build time via -ldflags
var version = "v0.1.0"

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "a11ystatement",
	Short: "a11ystatement - Swedish accessibility statement inspector",
	Long: `a11ystatement finds the accessibility statement (tillgänglighetsredogörelse)
of a public-sector website and checks it against the DOS law requirements:

- compliance status (förenlig / delvis förenlig / inte förenlig)
- link to the regulator's notification function
- claims of unreasonably burdensome accommodation
- evaluation method
- date of the latest review, and how stale it is

Starting from the home page it follows the most promising links until the
statement is found or the visit budget is spent.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command. Cancelling ctx stops running crawls.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "a11ystatement %s\n", version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: $HOME/.a11ystatement/config.yaml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.Int("max-visits", 0, "maximum pages visited per site")
	flags.String("date-policy", "", "which review date to report when several are found (highest, lowest)")
	flags.Bool("keep-text", false, "keep normalized page text in the report")
	flags.String("format", "", "report format (json, yaml)")
	flags.String("output-dir", "", "directory for reports")

	// Bind flags to viper
	bindFlag("output.verbose", "verbose")
	bindFlag("logging.level", "log-level")
	bindFlag("crawl.max_visits", "max-visits")
	bindFlag("crawl.date_policy", "date-policy")
	bindFlag("crawl.keep_text", "keep-text")
	bindFlag("output.format", "format")
	bindFlag("output.dir", "output-dir")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

func bindFlag(key, flag string) {
	_ = viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag))
}

// initConfig reads in .env, the config file and environment variables
func initConfig() {
	// .env is optional
	_ = godotenv.Load()

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
		} else {
			viper.AddConfigPath(filepath.Join(home, ".a11ystatement"))
		}
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match A11Y_* (A11Y_CRAWL_MAX_VISITS)
	viper.SetEnvPrefix("A11Y")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := registerDefaults(model.DefaultConfig()); err != nil {
		fmt.Fprintf(os.Stderr, "Error registering defaults: %v\n", err)
	}
	// omitempty keys are absent from the marshaled defaults
	for _, key := range []string{"http.http_proxy", "http.https_proxy", "http.no_proxy"} {
		viper.SetDefault(key, "")
	}

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// registerDefaults makes every config key known to viper so environment
// variables are honored by Unmarshal.
func registerDefaults(cfg *model.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	var tree map[string]interface{}
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return err
	}
	setDefaults("", tree)
	return nil
}

func setDefaults(prefix string, tree map[string]interface{}) {
	for key, value := range tree {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		if nested, ok := value.(map[string]interface{}); ok {
			setDefaults(full, nested)
			continue
		}
		viper.SetDefault(full, value)
	}
}

// loadConfig returns the effective, validated configuration
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *model.Config) (logger.Logger, error) {
	level := cfg.Logging.Level
	if verbose && level == "info" {
		level = "debug"
	}
	return logger.New(logger.Config{
		Level:       level,
		OutputPaths: cfg.Logging.OutputPaths,
	})
}
