// Command ppgview pages through a PPG recording and prints the pulse-wave
// features of each analysis window.
//
// Usage:
//
//	ppgview <dataset.csv>
//
// The dataset needs a header row with a PPG column. Navigation commands are
// read from stdin, one per line:
//
//	advance, right, n   move one hop forward
//	retreat, left, p    move one hop back
//	home, end           jump to the first or last window
//	quit, q             exit
//
// Settings come from the YAML file named by PPGVIEW_CONFIG, a .env file in
// the working directory and PPGVIEW_* environment variables. With
// output.dir set, every window is also drawn to window.png and window.html.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/cwbudde/algo-ppg/internal/config"
	"github.com/cwbudde/algo-ppg/internal/dataset"
	"github.com/cwbudde/algo-ppg/internal/logging"
	"github.com/cwbudde/algo-ppg/internal/viewer"
	"github.com/cwbudde/algo-ppg/measure/ppg"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ppgview <dataset.csv>\n\n")
		fmt.Fprintf(os.Stderr, "Pages through a PPG recording and prints pulse-wave features.\n")
		fmt.Fprintf(os.Stderr, "Commands on stdin: advance|n, retreat|p, home, end, quit|q.\n")
		fmt.Fprintf(os.Stderr, "Config: $%s (YAML), .env, PPGVIEW_* variables.\n", config.EnvConfig)
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	os.Exit(run(flag.Arg(0)))
}

func run(path string) int {
	cfg, err := config.FromEnvironment(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "ppgview: %v\n", err)
		return 1
	}

	logger, err := logging.New(cfg.Log, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ppgview: %v\n", err)
		return 1
	}
	defer logger.Close()

	analysis, err := cfg.Analysis()
	if err != nil {
		logger.Error("invalid configuration", slog.String("err", err.Error()))
		return 1
	}

	rec, err := dataset.Load(path,
		dataset.WithColumn(cfg.Dataset.Column),
		dataset.WithLogger(logger.Logger))
	if err != nil {
		logger.Error("loading dataset failed", slog.String("path", path), slog.String("err", err.Error()))
		fmt.Fprintf(os.Stderr, "ppgview: %v\n", err)
		return 1
	}
	logger.Info("dataset loaded",
		slog.String("path", path),
		slog.String("column", rec.Column),
		slog.Int("samples", len(rec.Samples)),
		slog.Int("filled", rec.Filled),
		slog.Float64("fs", analysis.SampleRate))
	logger.Debug("filter response",
		slog.Float64("gain_band_low", ppg.FilterGain(analysis.RateBand.Low, analysis)),
		slog.Float64("gain_band_high", ppg.FilterGain(analysis.RateBand.High, analysis)))

	a, err := ppg.NewAnalyzer(rec.Samples, analysis)
	if err != nil {
		logger.Error("analysis setup failed", slog.String("err", err.Error()))
		fmt.Fprintf(os.Stderr, "ppgview: %v\n", err)
		return 1
	}

	renderers := []viewer.Renderer{viewer.NewTextRenderer(os.Stdout)}
	if dir := cfg.Output.Dir; dir != "" {
		if cfg.Output.Plot {
			renderers = append(renderers, viewer.NewPlotRenderer(dir))
		}
		if cfg.Output.Chart {
			renderers = append(renderers, viewer.NewChartRenderer(dir, path, a.Time(), a.Raw()))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	session := viewer.NewSession(a,
		viewer.WithRenderers(renderers...),
		viewer.WithLogger(logger.Logger))
	if err := session.Run(ctx, os.Stdin); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("session failed", slog.String("err", err.Error()))
		return 1
	}
	return 0
}
