package cmd

// Exit codes for the suiterun CLI
const (
	// ExitSuccess indicates all tests passed
	ExitSuccess = 0

	// ExitTestFailure indicates one or more tests failed, the run was
	// focused with "only", or a suite-level timeout fired
	ExitTestFailure = 1

	// ExitParseError indicates a suite file failed to load or validate
	ExitParseError = 2

	// ExitConfigError indicates a configuration error
	ExitConfigError = 3

	// ExitUsageError indicates invalid CLI usage
	ExitUsageError = 64
)
