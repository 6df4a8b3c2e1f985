package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jward/sharon"
	"github.com/jward/sharon/internal/config"
	"github.com/jward/sharon/internal/lang"
	"github.com/jward/sharon/internal/logging"
	"github.com/jward/sharon/internal/metrics"
)

// cliFlags holds the command line flags of one invocation.
type cliFlags struct {
	outDir      string
	db          string
	configPath  string
	jobs        int
	indent      int
	export      string
	metricsFile string
	languages   string
	list        bool
	verbose     bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	cmd := newRootCmd(os.Stdout, os.Stderr)
	err := cmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		var runErr *sharon.RunError
		if !errors.As(err, &runErr) {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		}
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var flags cliFlags
	cmd := &cobra.Command{
		Use:   "sharon [flags] [--] path...",
		Short: "Convert Java and Kotlin sources into normalized XML documents",
		Long: "Sharon parses Java and Kotlin files with tree-sitter and writes one XML document per file, " +
			"named after a content-addressed id, plus an NDJSON listing of every file.",
		Args:          cobra.MinimumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, args, stdout, stderr)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.outDir, "outdir", "o", "", "output directory for the XML documents")
	f.StringVar(&flags.db, "db", "", "filemap database path, kept after the run (default: temporary, dropped after the run)")
	f.StringVar(&flags.configPath, "config", "", "configuration file (default: ./"+config.FileName+" when present)")
	f.IntVarP(&flags.jobs, "jobs", "j", 0, "files converted concurrently (default: GOMAXPROCS)")
	f.IntVar(&flags.indent, "indent", 1, "spaces per nesting level")
	f.StringVar(&flags.export, "export", "", "NDJSON export path (default: <outdir>/files.jsonl)")
	f.StringVar(&flags.metricsFile, "metrics-file", "", "write Prometheus textfile metrics to this path")
	f.StringVar(&flags.languages, "languages", "", "comma-separated dialect filter (java,kotlin)")
	f.BoolVar(&flags.list, "list", false, "print the converted files as a table")
	f.BoolVarP(&flags.verbose, "verbose", "v", false, "log every converted file")
	return cmd
}

// settings merges the configuration file with the flags set explicitly on
// the command line.
func settings(cmd *cobra.Command, flags cliFlags) (config.Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return config.Config{}, fmt.Errorf("working directory: %w", err)
	}
	cfg, err := config.Resolve(flags.configPath, wd)
	if err != nil {
		return config.Config{}, err
	}

	changed := cmd.Flags().Changed
	if changed("outdir") {
		cfg.OutDir = flags.outDir
	}
	if changed("db") {
		cfg.DB = flags.db
	}
	if changed("jobs") {
		cfg.Jobs = flags.jobs
	}
	if changed("indent") {
		cfg.Indent = flags.indent
	}
	if changed("export") {
		cfg.Export = flags.export
	}
	if changed("metrics-file") {
		cfg.MetricsFile = flags.metricsFile
	}
	if changed("languages") {
		cfg.Languages = splitList(flags.languages)
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseDialects(names []string) ([]lang.Dialect, error) {
	out := make([]lang.Dialect, 0, len(names))
	for _, n := range names {
		d, ok := lang.Lookup(n)
		if !ok {
			return nil, fmt.Errorf("unknown language %q", n)
		}
		out = append(out, d)
	}
	return out, nil
}

func run(cmd *cobra.Command, flags cliFlags, args []string, stdout, stderr io.Writer) (err error) {
	start := time.Now()
	cfg, err := settings(cmd, flags)
	if err != nil {
		return err
	}
	if cfg.OutDir == "" {
		return sharon.ErrNoOutputDir
	}

	logger := logging.New(stderr, flags.verbose)
	defer logging.Sync(logger)

	opts := []sharon.Option{
		sharon.WithOutputDir(cfg.OutDir),
		sharon.WithJobs(cfg.Jobs),
		sharon.WithIndent(cfg.Indent),
		sharon.WithLogger(logger),
	}
	if len(cfg.Languages) > 0 {
		dialects, err := parseDialects(cfg.Languages)
		if err != nil {
			return err
		}
		opts = append(opts, sharon.WithLanguages(dialects...))
	}
	var recorder *metrics.Recorder
	if cfg.MetricsFile != "" {
		recorder = metrics.NewRecorder()
		opts = append(opts, sharon.WithMetrics(recorder))
	}

	dbPath, ephemeral := cfg.DB, cfg.DB == ""
	if ephemeral {
		tmp, err := os.MkdirTemp("", "sharon-")
		if err != nil {
			return fmt.Errorf("creating database directory: %w", err)
		}
		defer os.RemoveAll(tmp)
		dbPath = filepath.Join(tmp, "filemap.db")
	}

	engine, err := sharon.New(dbPath, opts...)
	if err != nil {
		return err
	}
	defer func() {
		closeErr := engine.Close
		if ephemeral {
			closeErr = engine.Drop
		}
		if cerr := closeErr(); cerr != nil && err == nil {
			err = fmt.Errorf("closing database: %w", cerr)
		}
	}()

	res, runErr := engine.Run(cmd.Context(), args)
	if res == nil {
		return runErr
	}

	if err := engine.ExportFile(cfg.ExportPath()); err != nil {
		return err
	}
	if recorder != nil {
		if err := recorder.WriteFile(cfg.MetricsFile); err != nil {
			return err
		}
		logger.Info("wrote metrics", zap.String("path", cfg.MetricsFile))
	}
	if flags.list {
		formatFilesText(stdout, res.Files)
	}

	var failures *sharon.RunError
	if errors.As(runErr, &failures) {
		formatFailures(stderr, failures)
	}
	fmt.Fprintf(stderr, "Converted %d of %d files into %s in %s\n",
		len(res.Files)-res.Failed, len(res.Files), engine.OutputDir(),
		time.Since(start).Round(time.Millisecond),
	)
	return runErr
}
