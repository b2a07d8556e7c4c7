package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-kit/kit/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/qri-io/jsondiff"
	"github.com/qri-io/jsondiff/loader"
)

type rootOpts struct {
	configPath       string
	format           string
	strategy         string
	ignoreOrder      bool
	maxMatchDepth    int
	reportRepetition bool
	output           string
	color            string
	minify           bool
	stats            bool
	watch            bool
	verbose          bool
	exitCode         bool
}

func newRoot() *rootOpts {
	return &rootOpts{}
}

var rootLongHelp = strings.TrimSpace(`
jsondiff compares two structured documents & reports what was added, deleted
& changed, each at a path into the document. Lists are compared as unordered
collections by default: elements are paired with their most similar
counterpart, so reordering alone is never a change.

Examples:
  jsondiff left.json right.json                      # text report
  jsondiff -o unified --color always a.yaml b.yaml   # edits as a unified diff
  jsondiff -f xml -o json running.cfg startup.cfg    # machine readable edits
  jsondiff --strategy positional a.json b.json       # compare lists index by index
`)

func (opts *rootOpts) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "jsondiff <left> <right>",
		Long:          rootLongHelp,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          opts.RunE,
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "read defaults for these flags from a YAML file")
	flags.StringVarP(&opts.format, "format", "f", "", "(json|xml|yaml) input format, detected from the file extension when empty")
	flags.StringVarP(&opts.strategy, "strategy", "s", "match", "(match|positional|lines) how documents are compared")
	flags.BoolVar(&opts.ignoreOrder, "ignore-order", true, "compare lists as unordered collections")
	flags.IntVar(&opts.maxMatchDepth, "max-match-depth", jsondiff.DefaultMaxMatchDepth, "levels of nesting considered when pairing list elements, 0 for no limit")
	flags.BoolVar(&opts.reportRepetition, "report-repetition", true, "report list elements that occur a different number of times")
	flags.StringVarP(&opts.output, "output", "o", "text", "(text|unified|markdown|html|json) output format")
	flags.StringVar(&opts.color, "color", "auto", "(auto|always|never) colorize output")
	flags.BoolVar(&opts.minify, "minify", false, "minify html output")
	flags.BoolVar(&opts.stats, "stats", false, "print a summary line after the differences")
	flags.BoolVarP(&opts.watch, "watch", "w", false, "compare again whenever either file changes")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log diagnostics to stderr")
	flags.BoolVar(&opts.exitCode, "exit-code", false, "exit with status 1 when the documents differ")

	return cmd
}

func (opts *rootOpts) RunE(cmd *cobra.Command, args []string) error {
	if len(args) != 2 {
		return errorWantedTwoArgs
	}
	if opts.configPath != "" {
		cfg, err := readConfig(opts.configPath)
		if err != nil {
			return err
		}
		cfg.apply(opts, cmd.Flags().Changed)
	}
	if err := opts.validate(); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.logger(cmd.ErrOrStderr())

	if opts.watch {
		return opts.watchFiles(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), logger, args[0], args[1])
	}

	differ, err := opts.compare(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), logger, args[0], args[1])
	if err != nil {
		return err
	}
	if differ && opts.exitCode {
		return errDifferences
	}
	return nil
}

func (opts *rootOpts) validate() error {
	if _, err := loader.ParseFormat(opts.format); err != nil {
		return newUsageError(err.Error())
	}
	switch opts.strategy {
	case "match", "positional", "lines":
	default:
		return newUsageError("strategy --strategy,-s must be 'match', 'positional' or 'lines'")
	}
	switch opts.output {
	case "text", "unified", "markdown", "html", "json":
	default:
		return newUsageError("output format --output,-o must be 'text', 'unified', 'markdown', 'html' or 'json'")
	}
	switch opts.color {
	case "auto", "always", "never":
	default:
		return newUsageError("--color must be 'auto', 'always' or 'never'")
	}
	return nil
}

func (opts *rootOpts) logger(w io.Writer) log.Logger {
	if !opts.verbose {
		return log.NewNopLogger()
	}
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	return log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)
}

// useColor resolves --color for output written to w
func (opts *rootOpts) useColor(w io.Writer) bool {
	switch opts.color {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

func (opts *rootOpts) diffOptions(logger log.Logger, stats *jsondiff.Stats) []jsondiff.Option {
	dopts := []jsondiff.Option{
		jsondiff.OptionIgnoreOrder(opts.ignoreOrder),
		jsondiff.OptionMaxMatchDepth(opts.maxMatchDepth),
		jsondiff.OptionReportRepetition(opts.reportRepetition),
		jsondiff.OptionLogger(logger),
	}
	switch opts.strategy {
	case "positional":
		dopts = append(dopts, jsondiff.OptionStrategy(jsondiff.NewPositional(dopts...)))
	case "lines":
		dopts = append(dopts, jsondiff.OptionStrategy(jsondiff.NewLines()))
	}
	return append(dopts, jsondiff.OptionSetStats(stats))
}

// compare loads both files, diffs them & writes the result. It reports
// whether any edits were found
func (opts *rootOpts) compare(ctx context.Context, stdout, stderr io.Writer, logger log.Logger, leftPath, rightPath string) (bool, error) {
	format, err := loader.ParseFormat(opts.format)
	if err != nil {
		return false, err
	}
	left, right, err := loader.LoadPair(ctx, leftPath, rightPath, format)
	if err != nil {
		return false, err
	}

	stats := &jsondiff.Stats{}
	res, err := jsondiff.New(opts.diffOptions(logger, stats)...).Diff(ctx, left, right)
	if err != nil {
		return false, err
	}
	for _, w := range res.Warnings {
		fmt.Fprintf(stderr, "warning: %s\n", w)
	}

	color := opts.useColor(stdout)
	if err := writeOutput(stdout, opts.output, res.Edits, outputInput{
		leftName:  leftPath,
		rightName: rightPath,
		color:     color,
		minify:    opts.minify,
	}); err != nil {
		return false, err
	}

	if opts.stats {
		if color {
			fmt.Fprint(stdout, jsondiff.FormatPrettyStatsColor(stats))
		} else {
			fmt.Fprint(stdout, jsondiff.FormatPrettyStats(stats))
		}
	}
	return len(res.Edits) > 0, nil
}
