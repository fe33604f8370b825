// Package cmd provides the CLI commands for cdk-cost-analyzer.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cdk-cost-analyzer/internal/config"
	"cdk-cost-analyzer/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "cdk-cost-analyzer",
	Short: "Estimate the cost impact of a CloudFormation/CDK template change",
	Long: `cdk-cost-analyzer compares two synthesized CloudFormation templates and
reports the monthly cost impact of the difference.

Examples:
  cdk-cost-analyzer analyze base.template.json target.template.json
  cdk-cost-analyzer analyze --format markdown --region eu-west-1 base.json target.json
  cdk-cost-analyzer analyze --enforce base.json target.json`,
}

// Execute runs the CLI and returns the process exit code (spec §6).
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return lastExitCode
}

func init() {
	cobra.OnInitialize(initLogging)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: discovered by walking up from the working directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(versionCmd)
}

func initLogging() {
	cfg := logging.DefaultConfig()
	if verbose || os.Getenv("CDK_COST_ANALYZER_DEBUG") != "" {
		cfg.Level = "debug"
	}
	if err := logging.Initialize(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error initializing logging: %v\n", err)
	}
}

func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		path = config.Discover(".")
	}
	return config.Load(path)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("cdk-cost-analyzer version " + Version)
	},
}

// Version is set at build time via -ldflags; "dev" otherwise.
var Version = "dev"
