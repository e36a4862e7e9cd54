package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "suiterun",
	Short: "Ordered test suites from plain YAML files.",
	Long: `suiterun runs test suites declared in YAML files: nested groups
with lifecycle hooks and tests whose bodies are shell commands,
executed strictly in declaration order with per-test timeouts,
filtering, focus ("only") and fail-fast.`,
}

func Execute(v, bt string) {
	version = v
	buildTime = bt
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitUsageError)
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(versionCmd)
}
