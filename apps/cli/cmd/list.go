package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/suiterun/suiterun/packages/core/harness"
	"github.com/suiterun/suiterun/packages/specfile"
)

var listCmd = &cobra.Command{
	Use:   "list <file|directory>",
	Short: "List the tests declared in suite files",
	Long: `List all tests declared in suite files, in the order they
would run, without executing anything.

Examples:
  suiterun list smoke.suite.yml
  suiterun list ./suites/`,
	Args: cobra.MinimumNArgs(1),
	RunE: listCommand,
}

func listCommand(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no .suite.yml files found")
	}

	for _, file := range files {
		f, err := specfile.Load(file)
		if err != nil {
			fmt.Fprintf(cmd.OutOrStderr(), "Error loading %s: %v\n", file, err)
			continue
		}
		h, err := specfile.Build(f, harness.Options{})
		if err != nil {
			fmt.Fprintf(cmd.OutOrStderr(), "Error in %s: %v\n", file, err)
			continue
		}

		fmt.Fprintf(cmd.OutOrStdout(), "\n%s:\n", file)
		for _, tc := range h.Tests() {
			marker := ""
			if tc.Only {
				marker = " [only]"
			}
			if tc.Ignore {
				marker += " [ignored]"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  - %s%s\n", tc.Name, marker)
		}
	}
	return nil
}
