package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/suiterun/suiterun/packages/core/config"
	"github.com/suiterun/suiterun/packages/core/harness"
	"github.com/suiterun/suiterun/packages/core/runner"
	"github.com/suiterun/suiterun/packages/export/metrics"
	"github.com/suiterun/suiterun/packages/output"
	"github.com/suiterun/suiterun/packages/specfile"
)

var runCmd = &cobra.Command{
	Use:   "run <file|directory>",
	Short: "Run test suites from YAML files",
	Long: `Run test suites declared in .suite.yml files.

Examples:
  suiterun run smoke.suite.yml
  suiterun run ./suites/ --filter users
  suiterun run smoke.suite.yml --skip "/slow$/" --bail
  suiterun run smoke.suite.yml --timeout 1m --output junit --output-file report.xml
  suiterun run ./suites/ --watch`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCommand,
}

const (
	// WatchDebounceDelay is the debounce delay for file watch events
	WatchDebounceDelay = 300 * time.Millisecond
)

var (
	configFlag      string
	filterFlag      string
	skipFlag        string
	bailFlag        bool
	timeoutFlag     string
	outputFlag      string
	outputFileFlag  string
	noColorFlag     bool
	verboseFlag     bool
	watchFlag       bool
	metricsFileFlag string
)

func init() {
	runCmd.Flags().StringVar(&configFlag, "config", getEnvString("SUITERUN_CONFIG", ""), "Path to config file (env: SUITERUN_CONFIG)")
	runCmd.Flags().StringVarP(&filterFlag, "filter", "f", getEnvString("SUITERUN_FILTER", ""), "Run only tests matching the pattern; /expr/ is a regexp, otherwise substring (env: SUITERUN_FILTER)")
	runCmd.Flags().StringVarP(&skipFlag, "skip", "s", getEnvString("SUITERUN_SKIP", ""), "Skip tests matching the pattern, same grammar as --filter (env: SUITERUN_SKIP)")
	runCmd.Flags().BoolVar(&bailFlag, "bail", getEnvBool("SUITERUN_BAIL", false), "Stop on first failure (env: SUITERUN_BAIL)")
	runCmd.Flags().StringVar(&timeoutFlag, "timeout", getEnvString("SUITERUN_TIMEOUT", ""), "Suite-level timeout per file (e.g. 30s, 1m); empty means none (env: SUITERUN_TIMEOUT)")
	runCmd.Flags().StringVarP(&outputFlag, "output", "o", getEnvString("SUITERUN_OUTPUT", ""), "Output format: console, json, junit, tap (env: SUITERUN_OUTPUT)")
	runCmd.Flags().StringVar(&outputFileFlag, "output-file", getEnvString("SUITERUN_OUTPUT_FILE", ""), "Write output to file (default: stdout) (env: SUITERUN_OUTPUT_FILE)")
	runCmd.Flags().BoolVar(&noColorFlag, "no-color", getEnvBool("SUITERUN_NO_COLOR", false), "Disable colored output (env: SUITERUN_NO_COLOR)")
	runCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", getEnvBool("SUITERUN_VERBOSE", false), "Verbose output (env: SUITERUN_VERBOSE)")
	runCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Watch suite files for changes and re-run")
	runCmd.Flags().StringVar(&metricsFileFlag, "metrics-file", getEnvString("SUITERUN_METRICS_FILE", ""), "Write timing metrics (JSON) to file (env: SUITERUN_METRICS_FILE)")
}

// Environment variable helpers
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}

// runSettings is the resolved configuration for one invocation: flags
// take precedence, then the config file, then defaults.
type runSettings struct {
	filter      string
	skip        string
	bail        bool
	timeout     time.Duration
	format      string
	outputFile  string
	noColor     bool
	verbose     bool
	metricsFile string
}

func resolveSettings() (*runSettings, error) {
	cfg, err := config.LoadConfig(configFlag)
	if err != nil {
		return nil, err
	}

	s := &runSettings{
		filter:      filterFlag,
		skip:        skipFlag,
		bail:        bailFlag || cfg.GetBail(),
		format:      outputFlag,
		outputFile:  outputFileFlag,
		noColor:     noColorFlag || cfg.GetNoColor(),
		verbose:     verboseFlag || cfg.GetVerbose(),
		metricsFile: metricsFileFlag,
	}
	if s.filter == "" {
		s.filter = cfg.Filter
	}
	if s.skip == "" {
		s.skip = cfg.Skip
	}
	if s.format == "" {
		s.format = cfg.GetOutput()
	}
	if s.outputFile == "" {
		s.outputFile = cfg.OutputFile
	}
	if s.metricsFile == "" {
		s.metricsFile = cfg.MetricsFile
	}

	if timeoutFlag != "" {
		d, err := time.ParseDuration(timeoutFlag)
		if err != nil {
			return nil, fmt.Errorf("invalid --timeout: %w", err)
		}
		s.timeout = d
	} else if cfg.TimeoutMillis > 0 {
		s.timeout = time.Duration(cfg.TimeoutMillis) * time.Millisecond
	}
	return s, nil
}

func runCommand(cmd *cobra.Command, args []string) error {
	settings, err := resolveSettings()
	if err != nil {
		fmt.Fprintf(cmd.OutOrStderr(), "Configuration error: %v\n", err)
		os.Exit(ExitConfigError)
	}

	files, err := collectFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no .suite.yml files found")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if watchFlag {
		return watchAndRun(ctx, cmd, files, settings)
	}

	code := runFiles(ctx, cmd, files, settings)
	if code != ExitSuccess {
		os.Exit(code)
	}
	return nil
}

// runFiles runs every suite file and returns the process exit code.
func runFiles(ctx context.Context, cmd *cobra.Command, files []string, s *runSettings) int {
	out := cmd.OutOrStdout()
	if s.outputFile != "" {
		f, err := os.Create(s.outputFile)
		if err != nil {
			fmt.Fprintf(cmd.OutOrStderr(), "Cannot create output file: %v\n", err)
			return ExitConfigError
		}
		defer f.Close()
		out = f
	}

	collector := metrics.NewCollector()
	code := ExitSuccess

	for _, file := range files {
		f, err := specfile.Load(file)
		if err != nil {
			fmt.Fprintf(cmd.OutOrStderr(), "Error loading %s: %v\n", file, err)
			return ExitParseError
		}

		h, err := specfile.Build(f, harness.Options{})
		if err != nil {
			fmt.Fprintf(cmd.OutOrStderr(), "Error in %s: %v\n", file, err)
			return ExitParseError
		}

		reporter, err := buildReporter(s, out)
		if err != nil {
			fmt.Fprintf(cmd.OutOrStderr(), "Configuration error: %v\n", err)
			return ExitConfigError
		}

		res, err := h.Run(ctx, harness.Options{
			Filter:   s.filter,
			Skip:     s.skip,
			FailFast: s.bail,
			Timeout:  s.timeout,
			Reporter: reporter,
			OnEvent:  collector.Report,
		})
		if err != nil {
			fmt.Fprintf(cmd.OutOrStderr(), "Error running %s: %v\n", file, err)
			return ExitConfigError
		}
		if res.Failing() {
			code = ExitTestFailure
			if s.bail {
				break
			}
		}
	}

	if s.metricsFile != "" {
		if err := writeMetrics(collector, s.metricsFile); err != nil {
			fmt.Fprintf(cmd.OutOrStderr(), "Cannot write metrics: %v\n", err)
		}
	}
	return code
}

func writeMetrics(c *metrics.Collector, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return c.WriteJSON(f)
}

func buildReporter(s *runSettings, w io.Writer) (func(runner.Event), error) {
	switch s.format {
	case "console":
		r := output.NewConsoleReporter(
			output.WithWriter(w),
			output.WithVerbose(s.verbose),
			output.WithNoColor(s.noColor),
		)
		return r.Report, nil
	case "json":
		return output.NewJSONReporter(output.JSONWithWriter(w)).Report, nil
	case "junit":
		return output.NewJUnitReporter(output.JUnitWithWriter(w)).Report, nil
	case "tap":
		return output.NewTAPReporter(output.TAPWithWriter(w)).Report, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", s.format)
	}
}

// collectFiles expands the run arguments: files are taken as-is,
// directories are scanned for .suite.yml / .suite.yaml files.
func collectFiles(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", arg, err)
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if strings.HasSuffix(path, ".suite.yml") || strings.HasSuffix(path, ".suite.yaml") {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

// watchAndRun re-runs the suites whenever one of their files changes.
// Re-runs are debounced and rate limited so editor save storms trigger
// a single run.
func watchAndRun(ctx context.Context, cmd *cobra.Command, files []string, s *runSettings) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	dirs := map[string]bool{}
	for _, f := range files {
		dirs[filepath.Dir(f)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	limiter := rate.NewLimiter(rate.Every(time.Second), 1)

	runFiles(ctx, cmd, files, s)
	fmt.Fprintln(cmd.OutOrStdout(), "\nWatching for changes... (ctrl-c to exit)")

	var debounce *time.Timer
	rerun := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(WatchDebounceDelay, func() {
				select {
				case rerun <- struct{}{}:
				default:
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(cmd.OutOrStderr(), "Watch error: %v\n", err)

		case <-rerun:
			if err := limiter.Wait(ctx); err != nil {
				return nil
			}
			runFiles(ctx, cmd, files, s)
			fmt.Fprintln(cmd.OutOrStdout(), "\nWatching for changes... (ctrl-c to exit)")
		}
	}
}
