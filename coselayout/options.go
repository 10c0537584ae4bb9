package coselayout

import (
	"context"
	"fmt"

	"github.com/pathviz/cose/cosegraph"
)

// RefreshFunc observes intermediate positions. It must not mutate the graph.
type RefreshFunc func(ctx context.Context, info *cosegraph.Info)

type Options struct {
	// iteration budget; the run may stop earlier once the temperature
	// drops below MinTemp
	NumIter int

	// annealing schedule
	InitialTemp   float64
	CoolingFactor float64
	MinTemp       float64

	// force strengths
	NodeRepulsion   float64
	NodeOverlap     float64
	IdealEdgeLength float64
	EdgeElasticity  float64
	NestingFactor   float64
	Gravity         float64

	// scatter initial leaf positions across the canvas before simulating
	Randomize bool
	// seed for Randomize; 0 picks a time-based seed
	Seed int64

	// invoke OnRefresh every Refresh iterations; 0 means only at the end
	Refresh   int
	OnRefresh RefreshFunc

	// compute a viewport fitted to the result, expanded by Padding
	Fit     bool
	Padding float64
}

func DefaultOptions() Options {
	return Options{
		NumIter:         100,
		InitialTemp:     200,
		CoolingFactor:   0.95,
		MinTemp:         1,
		NodeRepulsion:   10000,
		NodeOverlap:     10,
		IdealEdgeLength: 10,
		EdgeElasticity:  100,
		NestingFactor:   5,
		Gravity:         250,
		Randomize:       true,
		Fit:             true,
		Padding:         30,
	}
}

func (opts Options) validate() error {
	if opts.NumIter <= 0 {
		return fmt.Errorf("numIter must be positive, got %d", opts.NumIter)
	}
	if opts.InitialTemp <= 0 {
		return fmt.Errorf("initialTemp must be positive, got %v", opts.InitialTemp)
	}
	if opts.CoolingFactor <= 0 || opts.CoolingFactor > 1 {
		return fmt.Errorf("coolingFactor must be in (0, 1], got %v", opts.CoolingFactor)
	}
	if opts.MinTemp <= 0 {
		return fmt.Errorf("minTemp must be positive, got %v", opts.MinTemp)
	}
	if opts.NodeRepulsion < 0 || opts.NodeOverlap < 0 || opts.Gravity < 0 {
		return fmt.Errorf("force strengths must be non-negative")
	}
	if opts.IdealEdgeLength <= 0 {
		return fmt.Errorf("idealEdgeLength must be positive, got %v", opts.IdealEdgeLength)
	}
	if opts.EdgeElasticity <= 0 {
		return fmt.Errorf("edgeElasticity must be positive, got %v", opts.EdgeElasticity)
	}
	if opts.NestingFactor <= 0 {
		return fmt.Errorf("nestingFactor must be positive, got %v", opts.NestingFactor)
	}
	if opts.Refresh < 0 {
		return fmt.Errorf("refresh must be non-negative, got %d", opts.Refresh)
	}
	if opts.Padding < 0 {
		return fmt.Errorf("padding must be non-negative, got %v", opts.Padding)
	}
	return nil
}
