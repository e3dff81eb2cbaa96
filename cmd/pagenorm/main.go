// Command pagenorm normalizes the text layout of PDF pages and writes the
// blocks as JSON or HTML.
//
// Usage:
//
//	pagenorm [-format json|jsonl|html] [-pages 1,3-5] [-workers n] [-fonts dir] [-out file] input.pdf
//
// Defaults are read from the environment, or a .env file in the working
// directory: PAGENORM_SCALE, PAGENORM_WORKERS, PAGENORM_FONTS_DIR and
// PAGENORM_LOG_LEVEL.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ridge/must/v2"

	"github.com/tsawler/pagenorm"
	"github.com/tsawler/pagenorm/export"
	"github.com/tsawler/pagenorm/fontres"
	"github.com/tsawler/pagenorm/internal/env"
	"github.com/tsawler/pagenorm/layout"
	"github.com/tsawler/pagenorm/pdfsource"
)

// options is the resolved command configuration
type options struct {
	input    string
	format   export.Format
	pages    []int
	workers  int
	fontsDir string
	out      string
	pretty   bool
	strict   bool
	scale    float64
}

func main() {
	env.Load()

	level := must.OK1(env.LevelVariable(env.LogLevel, slog.LevelInfo))
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	defaults := options{
		format:   export.FormatJSON,
		workers:  must.OK1(env.IntVariable(env.Workers, runtime.GOMAXPROCS(0))),
		fontsDir: env.StringVariable(env.FontsDir, ""),
		scale:    must.OK1(env.FloatVariable(env.Scale, pdfsource.DefaultConfig().Scale)),
	}

	opts, err := parseArgs(os.Args[1:], defaults, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		logger.Error("pagenorm: invalid arguments", "error", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts, os.Stdout, logger); err != nil {
		logger.Error("pagenorm: failed", "input", opts.input, "error", err)
		os.Exit(1)
	}
}

// parseArgs parses the command line over the environment defaults
func parseArgs(args []string, defaults options, stderr io.Writer) (options, error) {
	opts := defaults

	fs := flag.NewFlagSet("pagenorm", flag.ContinueOnError)
	fs.SetOutput(stderr)
	format := fs.String("format", defaults.format.String(), "Output format: json, jsonl, html")
	pages := fs.String("pages", "", "Pages to normalize, 1-indexed (e.g. 1,3-5); default all")
	fs.IntVar(&opts.workers, "workers", defaults.workers, "Pages processed concurrently")
	fs.StringVar(&opts.fontsDir, "fonts", defaults.fontsDir, "Font library directory for the font report")
	fs.StringVar(&opts.out, "out", "", "Output file (default: stdout)")
	fs.BoolVar(&opts.pretty, "pretty", false, "Indent JSON output")
	fs.BoolVar(&opts.strict, "strict", false, "Fail on unreadable pages instead of skipping them")
	fs.Float64Var(&opts.scale, "scale", defaults.scale, "Points-to-pixels scale")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() != 1 {
		return options{}, fmt.Errorf("expected one input file, got %d", fs.NArg())
	}
	opts.input = fs.Arg(0)

	f, err := export.ParseFormat(*format)
	if err != nil {
		return options{}, err
	}
	opts.format = f

	if opts.pages, err = parsePages(*pages); err != nil {
		return options{}, err
	}
	if opts.scale <= 0 {
		return options{}, fmt.Errorf("scale must be positive, got %g", opts.scale)
	}
	return opts, nil
}

// parsePages parses a comma-separated list of pages and inclusive ranges
func parsePages(s string) ([]int, error) {
	var pages []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		lo, hi, isRange := strings.Cut(part, "-")
		start, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, fmt.Errorf("invalid page %q", part)
		}
		end := start
		if isRange {
			if end, err = strconv.Atoi(strings.TrimSpace(hi)); err != nil {
				return nil, fmt.Errorf("invalid page range %q", part)
			}
		}
		if start < 1 || end < start {
			return nil, fmt.Errorf("invalid page range %q", part)
		}
		for p := start; p <= end; p++ {
			pages = append(pages, p)
		}
	}
	return pages, nil
}

// run normalizes the input and writes the export to the output file or w
func run(ctx context.Context, opts options, w io.Writer, logger *slog.Logger) error {
	start := time.Now()

	sourceConfig := pdfsource.DefaultConfig()
	sourceConfig.Scale = opts.scale
	sourceConfig.Logger = logger

	ext := pagenorm.Open(opts.input).
		WithSourceConfig(sourceConfig).
		Workers(opts.workers)
	if len(opts.pages) > 0 {
		ext = ext.Pages(opts.pages...)
	}
	if opts.strict {
		ext = ext.Strict()
	}

	results, warnings, err := ext.Normalize(ctx)
	if err != nil {
		return err
	}
	for _, warning := range warnings {
		logger.Warn("pagenorm: page warning", "page", warning.Page, "message", warning.Message)
	}

	if opts.fontsDir != "" {
		if err := reportFonts(results, opts.fontsDir, logger); err != nil {
			return err
		}
	}

	config := export.DefaultExportConfig()
	config.Format = opts.format
	config.PrettyPrint = opts.pretty
	config.Title = opts.input

	if opts.out != "" {
		f, err := os.Create(opts.out)
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		defer f.Close()
		w = f
	}
	if err := export.NewExporterWithConfig(config).Export(results, w); err != nil {
		return err
	}

	blocks := 0
	for _, r := range results {
		blocks += len(r.Blocks)
	}
	logger.Info("pagenorm: normalized",
		"input", opts.input, "pages", len(results), "blocks", blocks,
		"warnings", len(warnings), "elapsed", time.Since(start))
	return nil
}

type fontRequest struct {
	font         string
	bold, italic bool
}

// reportFonts resolves the typography of every block against the font
// library and logs which file would render it
func reportFonts(results []*layout.Result, dir string, logger *slog.Logger) error {
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return fmt.Errorf("font library %s is not a directory", dir)
	}

	seen := make(map[fontRequest]bool)
	var requests []fontRequest
	for _, r := range results {
		for _, b := range r.Blocks {
			req := fontRequest{font: b.Style.Font, bold: b.Style.Bold, italic: b.Style.Italic}
			if !seen[req] {
				seen[req] = true
				requests = append(requests, req)
			}
		}
	}
	sort.Slice(requests, func(i, j int) bool {
		a, b := requests[i], requests[j]
		if a.font != b.font {
			return a.font < b.font
		}
		if a.bold != b.bold {
			return !a.bold
		}
		return !a.italic && b.italic
	})

	resolver := fontres.NewResolver(dir)
	for _, req := range requests {
		path, key, err := resolver.Resolve(req.font, req.bold, req.italic)
		if err != nil {
			logger.Warn("pagenorm: font missing", "font", req.font, "bold", req.bold, "italic", req.italic, "error", err)
			continue
		}
		logger.Info("pagenorm: font resolved", "font", req.font, "style", key, "path", resolver.Path(path))
	}
	return nil
}
