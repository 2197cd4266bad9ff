// Command pathsimp simplifies SVG path data.
//
// Usage:
//
//	pathsimp [flags] [path-data]
//
// The path data is read from the argument, from the file named by --file, or
// from standard input, in that order of preference. The simplified path data
// is written to standard output.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"honnef.co/go/pathsimp"
	"honnef.co/go/pathsimp/svgpath"
)

type flags struct {
	config    string
	file      string
	tolerance float64
	thresh    float64
	precision int
	trace     bool
	verbose   bool
}

func newRootCmd() *cobra.Command {
	var fl flags
	cmd := &cobra.Command{
		Use:   "pathsimp [path-data]",
		Short: "Merge runs of Bézier curves in SVG path data",
		Long: `pathsimp replaces runs of quadratic or cubic Bézier curves with single
cubic curves wherever the replacement changes the enclosed area by less than
the tolerance.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, fl)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&fl.config, "config", "c", "", "TOML configuration `file`")
	f.StringVarP(&fl.file, "file", "f", "", "read path data from `file`")
	f.Float64VarP(&fl.tolerance, "tolerance", "t", 0, "maximum relative area deviation in percent")
	f.Float64Var(&fl.thresh, "thresh", 0, "distance threshold in path units (default derived from the path size)")
	f.IntVarP(&fl.precision, "precision", "p", 0, "number of decimals in the output, -1 for full precision")
	f.BoolVar(&fl.trace, "trace", false, "print every simplification decision to stderr")
	f.BoolVarP(&fl.verbose, "verbose", "v", false, "enable debug logging")
	return cmd
}

func run(cmd *cobra.Command, args []string, fl flags) error {
	level := slog.LevelInfo
	if fl.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	pathsimp.SetLogger(logger)
	defer pathsimp.SetLogger(nil)

	cfg, err := loadConfig(fl.config)
	if err != nil {
		return err
	}
	f := cmd.Flags()
	if f.Changed("tolerance") {
		cfg.Tolerance = fl.tolerance
	}
	if f.Changed("thresh") {
		cfg.Thresh = fl.thresh
	}
	if f.Changed("precision") {
		cfg.Precision = fl.precision
	}

	data, err := readInput(cmd, args, fl.file)
	if err != nil {
		return err
	}
	path, err := svgpath.Parse(data)
	if err != nil {
		return err
	}
	opts, err := cfg.Options(path.ControlBox())
	if err != nil {
		return err
	}
	var trace pathsimp.Trace
	if fl.trace {
		opts.Observer = &trace
	}

	out, stats, err := pathsimp.SimplifyWithStats(path, opts)
	if err != nil {
		return err
	}
	for _, ev := range trace.Events() {
		fmt.Fprintln(cmd.ErrOrStderr(), ev)
	}
	logger.Debug("simplified path",
		"thresh", opts.Thresh,
		"tolerance", opts.Tolerance,
		"subpaths", stats.Subpaths,
		"skipped", stats.SkippedSubpaths,
		"chunks", stats.Chunks,
		"merged", stats.MergedChunks,
		"in", stats.InputCommands,
		"out", stats.OutputCommands)

	w := cmd.OutOrStdout()
	if err := svgpath.Write(w, out, cfg.Precision); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

func readInput(cmd *cobra.Command, args []string, file string) (string, error) {
	switch {
	case len(args) == 1:
		return args[0], nil
	case file != "":
		b, err := os.ReadFile(file)
		return string(b), err
	default:
		b, err := io.ReadAll(cmd.InOrStdin())
		return strings.TrimSpace(string(b)), err
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "pathsimp:", err)
		os.Exit(1)
	}
}
