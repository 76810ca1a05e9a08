package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"weblog-analytics/internal/aggregators"
	"weblog-analytics/internal/models"
	"weblog-analytics/internal/shared/loggers"
	"weblog-analytics/internal/sources"

	"github.com/bytedance/sonic"
	"gopkg.in/yaml.v3"
)

const (
	outputYAML = "yaml"
	outputJSON = "json"
	outputText = "text"
)

var errUsage = errors.New("usage")

type options struct {
	file     string
	format   string
	days     int
	output   string
	logLevel string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "weblog: %v\n", err)
		}
		os.Exit(1)
	}
}

// run analyzes one log file and writes the report to stdout. Logs go to stderr.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseOptions(args, stderr)
	if err != nil {
		return err
	}

	logger, err := loggers.NewWithWriter(opts.logLevel, stderr)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = logger.With().Str(loggers.FieldApp, "weblog").Logger()
	ctx = logger.WithContext(ctx)

	format, err := models.NewSourceFormatFromString(opts.format)
	if err != nil {
		return err
	}

	var in io.Reader = os.Stdin
	if opts.file != "-" {
		f, err := os.Open(opts.file)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		in = f
	}

	source, err := sources.NewSource(format, in)
	if err != nil {
		return err
	}
	aggregator, err := aggregators.NewAccessAggregator(source, aggregators.WithDayBucketCount(opts.days))
	if err != nil {
		return err
	}
	if err := aggregator.RunAggregationPass(ctx); err != nil {
		return err
	}

	report := aggregator.Report()
	report.SourceFormat = format.String()
	logger.Debug().Int64(loggers.FieldEntriesCount, report.TotalEntries).Msg("log file analyzed")

	return writeReport(stdout, opts.output, report)
}

func parseOptions(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("weblog", flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := &options{}
	fs.StringVar(&opts.file, "file", "", "Log file path, - for stdin")
	fs.StringVar(&opts.format, "format", models.FormatWeblog.String(), "Line format: weblog | jsonl | clf")
	fs.IntVar(&opts.days, "days", aggregators.DefaultDayBucketCount, "Number of day buckets (1..31)")
	fs.StringVar(&opts.output, "output", outputYAML, "Report output: yaml | json | text")
	fs.StringVar(&opts.logLevel, "log-level", "warn", "Log level written to stderr")

	if err := fs.Parse(args); err != nil {
		return nil, errUsage
	}
	if opts.file == "" {
		fmt.Fprintln(stderr, "weblog: -file is required")
		fs.Usage()
		return nil, errUsage
	}
	switch opts.output {
	case outputYAML, outputJSON, outputText:
	default:
		return nil, fmt.Errorf("unsupported output %q", opts.output)
	}
	return opts, nil
}

func writeReport(w io.Writer, output string, report *models.AccessReport) error {
	switch output {
	case outputJSON:
		buf, err := sonic.ConfigStd.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		_, err = fmt.Fprintln(w, string(buf))
		return err
	case outputText:
		return writeHourlyTable(w, report)
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		return enc.Close()
	}
}

// writeHourlyTable prints the summary followed by one "hour: count" line per hour.
func writeHourlyTable(w io.Writer, report *models.AccessReport) error {
	lines := []string{
		fmt.Sprintf("Total entries: %d", report.TotalEntries),
		fmt.Sprintf("Busiest hour: %d (%d accesses)", report.BusiestHour, report.BusiestHourAccesses),
		fmt.Sprintf("Quietest hour: %d", report.QuietestHour),
		fmt.Sprintf("Busiest two-hour window: %d-%d", report.BusiestTwoHourWindow, report.BusiestTwoHourWindow+2),
		fmt.Sprintf("Busiest day: %d (%d accesses)", report.BusiestDay, report.BusiestDayAccesses),
		fmt.Sprintf("Quietest day: %d", report.QuietestDay),
		fmt.Sprintf("Busiest month: %d (%d accesses)", report.BusiestMonth, report.BusiestMonthAccesses),
		fmt.Sprintf("Quietest month: %d", report.QuietestMonth),
		fmt.Sprintf("Average accesses per month: %.2f", report.AverageAccessesPerMonth),
		"Hr: Count",
	}
	for hour, count := range report.HourlyCounts {
		lines = append(lines, fmt.Sprintf("%d: %d", hour, count))
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
