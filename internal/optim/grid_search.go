package optim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/warpsim/internal/config"
	"github.com/san-kum/warpsim/internal/metric"
)

var ErrNoCandidates = errors.New("optim: no grid point produced a finite score")

// Objective scores a parameter set; lower is better.
type Objective func(p metric.Params) float64

// GridSearch walks the cartesian product of per-slider value lists.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) (*GridSearch, error) {
	if len(params) != len(ranges) {
		return nil, fmt.Errorf("optim: %d parameters but %d ranges", len(params), len(ranges))
	}
	for _, name := range params {
		if _, err := config.RangeFor(name); err != nil {
			return nil, err
		}
	}
	return &GridSearch{paramNames: params, ranges: ranges}, nil
}

// NewSliderGrid spaces steps stops evenly over each named slider's range,
// snapped to the slider step.
func NewSliderGrid(params []string, steps int) (*GridSearch, error) {
	if steps < 2 {
		steps = 2
	}
	ranges := make([][]float64, len(params))
	for i, name := range params {
		r, err := config.RangeFor(name)
		if err != nil {
			return nil, err
		}
		hi := r.Max
		if r.Wrap {
			hi -= r.Step
		}
		stride := (hi - r.Min) / float64(steps-1)
		vals := make([]float64, steps)
		for k := range vals {
			vals[k] = r.Clamp(r.Snap(r.Min + float64(k)*stride))
		}
		ranges[i] = vals
	}
	return NewGridSearch(params, ranges)
}

// Size is the number of grid points Search evaluates.
func (g *GridSearch) Size() int {
	n := 1
	for _, r := range g.ranges {
		n *= len(r)
	}
	return n
}

// Search returns the grid point with the lowest finite score, starting each
// candidate from base. Ties keep the first point visited.
func (g *GridSearch) Search(ctx context.Context, base metric.Params, objective Objective) (metric.Params, float64, error) {
	best := math.Inf(1)
	var bestParams metric.Params
	found := false

	if err := g.searchRecursive(ctx, 0, base, objective, &best, &bestParams, &found); err != nil {
		return metric.Params{}, 0, err
	}
	if !found {
		return metric.Params{}, 0, ErrNoCandidates
	}
	return bestParams, best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current metric.Params,
	objective Objective,
	best *float64,
	bestParams *metric.Params,
	found *bool,
) error {
	if depth == len(g.paramNames) {
		if err := ctx.Err(); err != nil {
			return err
		}
		val := objective(current)
		if !math.IsNaN(val) && !math.IsInf(val, 0) && (!*found || val < *best) {
			*best, *bestParams, *found = val, current, true
		}
		return nil
	}

	for _, val := range g.ranges[depth] {
		next, err := config.Set(current, g.paramNames[depth], val)
		if err != nil {
			return err
		}
		if err := g.searchRecursive(ctx, depth+1, next, objective, best, bestParams, found); err != nil {
			return err
		}
	}
	return nil
}
