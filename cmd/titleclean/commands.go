package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/ajitpratap0/titleclean/internal/pipeline"
	"github.com/ajitpratap0/titleclean/pkg/config"
	"github.com/ajitpratap0/titleclean/pkg/connector/core"
	"github.com/ajitpratap0/titleclean/pkg/errors"
	"github.com/ajitpratap0/titleclean/pkg/logger"
	"github.com/ajitpratap0/titleclean/pkg/observability"
	"github.com/ajitpratap0/titleclean/pkg/table"
)

// DefaultConfigFile is written by "config init" when no path is given.
const DefaultConfigFile = "titleclean.yaml"

// options holds the flag values shared by run and profile. A flag only
// overrides the configuration when it was set on the command line.
type options struct {
	configFile string

	input       string
	inputFormat string
	inputSheet  string

	output           string
	outputFormat     string
	outputSheet      string
	compressionLevel string

	summary     string
	summaryJSON string
	title       string

	metricsFile string
	traceFile   string

	logLevel    string
	logEncoding string
}

func (o *options) addConfigFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&o.configFile, "config", "c", "", "Path to a YAML configuration file")
	flags.StringVar(&o.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flags.StringVar(&o.logEncoding, "log-encoding", "console", "Log encoding (console, json)")
}

func (o *options) addInputFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&o.input, "input", "i", config.DefaultInputPath, "Input table (.csv, .tsv, .xlsx, .jsonl, optionally .gz/.zst/.sz/.s2/.lz4)")
	flags.StringVar(&o.inputFormat, "input-format", "", "Input format, overriding the file extension")
	flags.StringVar(&o.inputSheet, "input-sheet", "", "Worksheet of an xlsx input (default first sheet)")
}

func (o *options) addOutputFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&o.output, "output", "o", config.DefaultOutputPath, "Cleaned table (.csv, .tsv, .xlsx, .jsonl, .avro, optionally compressed)")
	flags.StringVar(&o.outputFormat, "output-format", "", "Output format, overriding the file extension")
	flags.StringVar(&o.outputSheet, "output-sheet", "", "Worksheet name of an xlsx output")
	flags.StringVar(&o.compressionLevel, "compression-level", "", "Output compression level (fastest, default, better, best)")
	flags.StringVarP(&o.summary, "summary", "s", config.DefaultSummaryPath, "Plain-text cleaning summary")
	flags.StringVar(&o.summaryJSON, "summary-json", "", "Also write the summary as JSON to this path")
	flags.StringVar(&o.title, "title", "", "Title line of the summary")
	flags.StringVar(&o.metricsFile, "metrics-file", "", "Write run metrics in Prometheus text format to this path")
	flags.StringVar(&o.traceFile, "trace-file", "", "Write trace spans as JSON to this path")
}

// resolve builds the configuration: defaults, then the YAML file, then
// the flags that were set explicitly.
func (o *options) resolve(flags *pflag.FlagSet) (*config.Config, error) {
	cfg := config.Default()
	if o.configFile != "" {
		if err := config.Load(o.configFile, cfg); err != nil {
			return nil, err
		}
	}

	set := func(name string, dst *string, value string) {
		if flags.Lookup(name) != nil && flags.Changed(name) {
			*dst = value
		}
	}
	set("input", &cfg.Input.Path, o.input)
	set("input-sheet", &cfg.Input.Sheet, o.inputSheet)
	set("output", &cfg.Output.Path, o.output)
	set("output-sheet", &cfg.Output.Sheet, o.outputSheet)
	set("compression-level", &cfg.Output.Level, o.compressionLevel)
	set("summary", &cfg.Summary.Path, o.summary)
	set("summary-json", &cfg.Summary.JSONPath, o.summaryJSON)
	set("title", &cfg.Summary.Title, o.title)
	set("metrics-file", &cfg.Observability.MetricsFile, o.metricsFile)
	set("trace-file", &cfg.Observability.TraceFile, o.traceFile)
	set("log-level", &cfg.Logging.Level, o.logLevel)
	set("log-encoding", &cfg.Logging.Encoding, o.logEncoding)
	if flags.Lookup("input-format") != nil && flags.Changed("input-format") {
		cfg.Input.Format = core.Format(o.inputFormat)
	}
	if flags.Lookup("output-format") != nil && flags.Changed("output-format") {
		cfg.Output.Format = core.Format(o.outputFormat)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := logger.Init(cfg.Logging); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newRunCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Clean a titles table",
		Long: `Run loads the input table, applies the cleaning stages in order and writes
the cleaned table and the cleaning summary.

Flags override values from the configuration file, which override the
built-in defaults.

Example:
  titleclean run --input netflix_titles.csv --output netflix_cleaned.csv
  titleclean run --config titleclean.yaml --summary-json summary.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve(cmd.Flags())
			if err != nil {
				return err
			}
			return runClean(cmd.Context(), cmd.OutOrStdout(), cfg)
		},
	}
	opts.addConfigFlags(cmd.Flags())
	opts.addInputFlags(cmd.Flags())
	opts.addOutputFlags(cmd.Flags())
	return cmd
}

// runClean executes one cleaning run and prints where its artifacts went.
func runClean(ctx context.Context, out io.Writer, cfg *config.Config) error {
	log := logger.Component("cli")

	// Checked before tracing starts so a missing input leaves no trace file.
	if err := pipeline.CheckInput(cfg.Input); err != nil {
		return err
	}

	shutdown, err := observability.InitTracing(observability.TracingConfig{
		ServiceName:    "titleclean",
		ServiceVersion: version,
		Path:           cfg.Observability.TraceFile,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.Warn("failed to flush traces", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("starting cleaning run",
		zap.String("input", cfg.Input.Path),
		zap.String("output", cfg.Output.Path),
		zap.String("summary", cfg.Summary.Path))

	result, err := pipeline.Execute(ctx, cfg, log)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "--- Completed ---")
	fmt.Fprintf(out, "Final Rows & Columns: %s\n", result.Summary.FinalShape)
	fmt.Fprintf(out, "Output file: %s\n", result.OutputPath)
	fmt.Fprintf(out, "Summary file: %s\n", result.SummaryPath)
	if result.JSONPath != "" {
		fmt.Fprintf(out, "JSON summary file: %s\n", result.JSONPath)
	}
	if result.MetricsPath != "" {
		fmt.Fprintf(out, "Metrics file: %s\n", result.MetricsPath)
	}
	return nil
}

func newProfileCmd() *cobra.Command {
	opts := &options{}
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Describe the columns of a table without cleaning it",
		Long: `Profile loads a table and prints its shape and, for every column, the
inferred type, the number of present and missing values and the number of
distinct values.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve(cmd.Flags())
			if err != nil {
				return err
			}
			if err := pipeline.CheckInput(cfg.Input); err != nil {
				return err
			}

			log := logger.Component("cli")
			t, err := pipeline.Load(cmd.Context(), cfg.Input, log, nil)
			if err != nil {
				return err
			}
			if asJSON {
				return writeProfileJSON(cmd.OutOrStdout(), t)
			}
			return writeProfile(cmd.OutOrStdout(), t)
		},
	}
	opts.addConfigFlags(cmd.Flags())
	opts.addInputFlags(cmd.Flags())
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the profile as JSON")
	return cmd
}

func writeProfile(w io.Writer, t *table.Table) error {
	shape := t.Shape()
	fmt.Fprintf(w, "Loaded rows: %d columns: %d\n\n", shape.Rows, shape.Cols)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "COLUMN\tTYPE\tNON-MISSING\tMISSING\tDISTINCT")
	for _, p := range table.Profile(t) {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\n", p.Name, p.Type, p.NonMissing, p.Missing, p.Cardinality)
	}
	return tw.Flush()
}

func writeProfileJSON(w io.Writer, t *table.Table) error {
	shape := t.Shape()
	doc := struct {
		Rows    int                   `json:"rows"`
		Columns int                   `json:"columns"`
		Profile []table.ColumnProfile `json:"profile"`
	}{shape.Rows, shape.Cols, table.Profile(t)}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeInternal, "failed to encode profile")
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration files",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default configuration to a YAML file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := DefaultConfigFile
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return errors.Newf(errors.ErrorTypeConfig, "%s already exists, use --force to overwrite", path).
					WithDetail("path", path)
			}
			if err := config.Save(path, config.Default()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")
	cmd.AddCommand(initCmd)
	return cmd
}
