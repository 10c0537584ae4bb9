// cose lays out a compound graph: it reads a JSON node/edge doc, runs the
// spring embedder and writes the final positions and sizes back out.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"cdr.dev/slog"

	"github.com/pathviz/cose/cosegraph"
	"github.com/pathviz/cose/coselayout"
	"github.com/pathviz/cose/lib/log"
)

func main() {
	opts := coselayout.DefaultOptions()

	inputFlag := pflag.StringP("input", "i", "-", "input graph doc path, - for stdin")
	outputFlag := pflag.StringP("output", "o", "-", "output path, - for stdout")
	debugFlag := pflag.BoolP("debug", "d", false, "print debug logs")

	pflag.IntVar(&opts.NumIter, "num-iter", opts.NumIter, "iteration budget")
	pflag.Float64Var(&opts.InitialTemp, "initial-temp", opts.InitialTemp, "starting displacement cap")
	pflag.Float64Var(&opts.CoolingFactor, "cooling-factor", opts.CoolingFactor, "per-iteration temperature multiplier")
	pflag.Float64Var(&opts.MinTemp, "min-temp", opts.MinTemp, "temperature at which the run stops early")
	pflag.Float64Var(&opts.NodeRepulsion, "node-repulsion", opts.NodeRepulsion, "repulsion strength between siblings")
	pflag.Float64Var(&opts.NodeOverlap, "node-overlap", opts.NodeOverlap, "repulsion strength for overlapping siblings")
	pflag.Float64Var(&opts.IdealEdgeLength, "ideal-edge-length", opts.IdealEdgeLength, "spring rest length")
	pflag.Float64Var(&opts.EdgeElasticity, "edge-elasticity", opts.EdgeElasticity, "spring force divisor")
	pflag.Float64Var(&opts.NestingFactor, "nesting-factor", opts.NestingFactor, "rest length multiplier per nesting level")
	pflag.Float64Var(&opts.Gravity, "gravity", opts.Gravity, "pull toward the group center")
	pflag.BoolVar(&opts.Randomize, "randomize", opts.Randomize, "scatter initial positions")
	pflag.Int64Var(&opts.Seed, "seed", 0, "seed for --randomize, 0 for time-based")
	pflag.BoolVar(&opts.Fit, "fit", opts.Fit, "report a fitted viewport")
	pflag.Float64Var(&opts.Padding, "padding", opts.Padding, "viewport padding for --fit")
	pflag.Parse()

	ctx := log.Stderr(context.Background())
	if *debugFlag {
		ctx = log.Leveled(ctx, slog.LevelDebug)
	}

	if err := run(ctx, *inputFlag, *outputFlag, opts); err != nil {
		log.Error(ctx, "layout failed", slog.F("err", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, input, output string, opts coselayout.Options) error {
	b, err := read(input)
	if err != nil {
		return err
	}
	doc, err := cosegraph.ParseDoc(b)
	if err != nil {
		return err
	}

	info, err := cosegraph.Build(ctx, doc.Nodes, doc.Edges, opts.IdealEdgeLength, opts.NestingFactor)
	if err != nil {
		return err
	}
	info.Canvas = doc.CanvasBox()

	res, err := coselayout.Layout(ctx, info, opts)
	if err != nil {
		return err
	}
	fields := []slog.Field{
		slog.F("iterations", res.Iterations),
		slog.F("final_temperature", res.FinalTemperature),
	}
	if res.Viewport != nil {
		fields = append(fields, slog.F("viewport", res.Viewport.ToString()))
	}
	log.Info(ctx, "layout done", fields...)

	return write(output, cosegraph.SerializeResult(info))
}

func read(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return b, nil
}

func write(path string, b []byte) error {
	b = append(b, '\n')
	if path == "-" {
		_, err := os.Stdout.Write(b)
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
