// Package main is the entry point for cdk-cost-analyzer.
package main

import (
	"os"

	"cdk-cost-analyzer/cmd/cdk-cost-analyzer/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
