// Package coselayout runs a compound spring embedder: a batch force
// simulation over a hierarchy of sibling groups, with complex containers
// tiled into compact grids around the simulation.
package coselayout

import (
	"context"
	"math/rand"
	"time"

	"oss.terrastruct.com/xdefer"

	"cdr.dev/slog"

	"github.com/pathviz/cose/cosegraph"
	"github.com/pathviz/cose/cosetile"
	"github.com/pathviz/cose/lib/geo"
	"github.com/pathviz/cose/lib/log"
)

// DEFAULT_CANVAS_SIZE is used per degenerate axis when no canvas was given
// and the initial positions span nothing.
const DEFAULT_CANVAS_SIZE = 500.

// Result is the completion signal of one layout run.
type Result struct {
	// iterations actually performed; less than NumIter when the
	// temperature dropped below MinTemp first
	Iterations       int
	FinalTemperature float64
	// Viewport fitted around the final drawing, expanded by
	// Options.Padding. Only set when Options.Fit is true; fitting itself
	// is the renderer's job.
	Viewport *geo.Box
}

// Run builds the hierarchy from flat records and lays it out. Positions and
// sizes are read back from the returned Info's nodes.
func Run(ctx context.Context, nodes []cosegraph.NodeDef, edges []cosegraph.EdgeDef, opts Options) (*cosegraph.Info, *Result, error) {
	if err := opts.validate(); err != nil {
		return nil, nil, err
	}
	info, err := cosegraph.Build(ctx, nodes, edges, opts.IdealEdgeLength, opts.NestingFactor)
	if err != nil {
		return nil, nil, err
	}
	res, err := Layout(ctx, info, opts)
	if err != nil {
		return nil, nil, err
	}
	return info, res, nil
}

// Layout runs the simulation over info. info must be exclusively owned by
// this call; concurrent runs over the same Info are not allowed.
func Layout(ctx context.Context, info *cosegraph.Info, opts Options) (_ *Result, err error) {
	defer xdefer.Errorf(&err, "layout failed")
	ctx = log.Named(ctx, "coselayout")

	// reject bad configuration before any node is mutated
	if err := opts.validate(); err != nil {
		return nil, err
	}

	if info.Canvas == nil {
		info.Canvas = defaultCanvas(info)
	}
	if opts.Randomize {
		randomizePositions(info, opts.Seed)
		info.RefreshHierarchyExtents()
	}

	tiling := cosetile.Clear(ctx, info)
	info.RefreshHierarchyExtents()

	temperature := opts.InitialTemp
	iterations := 0
	for i := 0; i < opts.NumIter; i++ {
		applyRepulsionForces(info, opts)
		applyEdgeForces(info, opts)
		applyGravityForces(info, opts)
		propagateForces(info)
		updatePositions(info, temperature)

		iterations++
		temperature *= opts.CoolingFactor
		if temperature < opts.MinTemp {
			break
		}
		if opts.OnRefresh != nil && opts.Refresh > 0 && iterations%opts.Refresh == 0 {
			opts.OnRefresh(ctx, info)
		}
	}

	cosetile.Repopulate(ctx, info, tiling)
	info.RefreshHierarchyExtents()

	if opts.OnRefresh != nil {
		opts.OnRefresh(ctx, info)
	}

	res := &Result{
		Iterations:       iterations,
		FinalTemperature: temperature,
	}
	if opts.Fit {
		res.Viewport = info.BoundingBox().Expand(geo.Spacing{
			Top:    opts.Padding,
			Right:  opts.Padding,
			Bottom: opts.Padding,
			Left:   opts.Padding,
		})
	}

	log.Debug(ctx, "layout done",
		slog.F("iterations", iterations),
		slog.F("final_temperature", temperature),
	)
	return res, nil
}

func defaultCanvas(info *cosegraph.Info) *geo.Box {
	bb := info.BoundingBox()
	if bb.Width == 0 {
		bb.TopLeft.X -= DEFAULT_CANVAS_SIZE / 2
		bb.Width = DEFAULT_CANVAS_SIZE
	}
	if bb.Height == 0 {
		bb.TopLeft.Y -= DEFAULT_CANVAS_SIZE / 2
		bb.Height = DEFAULT_CANVAS_SIZE
	}
	return bb
}

// randomizePositions scatters every leaf across the canvas. Containers are
// left alone; their geometry is derived from children anyway.
func randomizePositions(info *cosegraph.Info, seed int64) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rnd := rand.New(rand.NewSource(seed))
	for _, n := range info.Nodes {
		if n.IsContainer() {
			continue
		}
		n.Pos = geo.NewPoint(
			info.Canvas.TopLeft.X+rnd.Float64()*info.Canvas.Width,
			info.Canvas.TopLeft.Y+rnd.Float64()*info.Canvas.Height,
		)
	}
}
