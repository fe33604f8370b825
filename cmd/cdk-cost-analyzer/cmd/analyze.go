package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"cdk-cost-analyzer/core/calculators"
	"cdk-cost-analyzer/core/diff"
	"cdk-cost-analyzer/core/parser"
	"cdk-cost-analyzer/core/pricing"
	"cdk-cost-analyzer/core/pricing/cache"
	"cdk-cost-analyzer/core/report"
	"cdk-cost-analyzer/core/service"
	"cdk-cost-analyzer/core/threshold"
)

// lastExitCode carries the exit code RunE determined, since cobra's Execute
// only distinguishes "error" from "no error" and spec §6 needs 0/1 exactly.
var lastExitCode int

// defaultCatalogEndpoint is the AWS pricing catalog this analyzer queries.
// Overridable in tests via the CDK_COST_ANALYZER_CATALOG_URL env var.
const defaultCatalogEndpoint = "https://api.pricing.us-east-1.amazonaws.com"

var (
	flagRegion  string
	flagFormat  string
	flagEnforce bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <base-template> <target-template>",
	Short: "Report the monthly cost impact of a CloudFormation template change",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		lastExitCode = runAnalyze(cmd.Context(), args[0], args[1])
		if lastExitCode != 0 {
			return fmt.Errorf("analyze exited with status %d", lastExitCode)
		}
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&flagRegion, "region", "", "AWS region; defaults to the resolved configuration's region")
	analyzeCmd.Flags().StringVar(&flagFormat, "format", "", "output format: text, json, or markdown; defaults to the resolved configuration's format")
	analyzeCmd.Flags().BoolVar(&flagEnforce, "enforce", false, "exit non-zero when the threshold evaluator reports level=error")
}

func runAnalyze(ctx context.Context, basePath, targetPath string) int {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	region := cfg.Region
	if flagRegion != "" {
		region = flagRegion
	}
	format := cfg.Format
	if flagFormat != "" {
		format = flagFormat
	}

	renderer, ok := report.ForFormat(format)
	if !ok {
		fmt.Fprintf(os.Stderr, "unrecognized output format %q\n", format)
		return 1
	}

	baseText, err := os.ReadFile(basePath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	targetText, err := os.ReadFile(targetPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	baseTemplate, err := parser.Parse(string(baseText))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	targetTemplate, err := parser.Parse(string(targetText))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	resourceDiff := diff.Diff(baseTemplate, targetTemplate)

	endpoint := os.Getenv("CDK_COST_ANALYZER_CATALOG_URL")
	if endpoint == "" {
		endpoint = defaultCatalogEndpoint
	}
	cacheManager := cache.New(cfg.Cache.Directory, cfg.Cache.TTLDuration())
	client := pricing.New(endpoint, cacheManager, &http.Client{})
	svc := service.New(client, calculators.Default(), cfg.ExcludedResourceTypes, cfg.UsageAssumptions)

	delta, err := svc.GetCostDelta(ctx, resourceDiff, region)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	thresholdResult := threshold.Evaluate(delta, cfg.Thresholds, "")

	out := report.Report{
		Delta:           delta,
		ConfigSummary:   map[string]string{"region": region, "format": format},
		ThresholdResult: &thresholdResult,
	}
	if err := renderer.Render(os.Stdout, out); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if flagEnforce && thresholdResult.Level == threshold.LevelError {
		return 1
	}
	return 0
}
