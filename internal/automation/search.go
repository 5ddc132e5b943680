package automation

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/equilibria/internal/chem"
)

// GridSearch tries every combination of the given control values and keeps
// the one whose shift lands closest to a target.
type GridSearch struct {
	reaction chem.ReactionType
	names    []string
	ranges   [][]float64
	coeffs   chem.Coefficients
}

func NewGridSearch(rt chem.ReactionType, grid map[string][]float64) (*GridSearch, error) {
	g := &GridSearch{reaction: rt, coeffs: chem.DefaultCoefficients()}
	for name := range grid {
		if !isControl(name) {
			return nil, fmt.Errorf("%w %q", ErrUnknownControl, name)
		}
		g.names = append(g.names, name)
	}
	sort.Strings(g.names)
	for _, name := range g.names {
		g.ranges = append(g.ranges, grid[name])
	}
	return g, nil
}

type SearchResult struct {
	Controls map[string]float64 `json:"controls"`
	Input    chem.Input         `json:"input"`
	Shift    float64            `json:"shift"`
	Distance float64            `json:"distance"`
}

// Search returns the best combination. Combinations the store rejects are
// skipped; the error is non-nil only when ctx ends or nothing was valid.
func (g *GridSearch) Search(ctx context.Context, target float64) (*SearchResult, error) {
	var best *SearchResult
	if err := g.searchRecursive(ctx, 0, map[string]float64{}, target, &best); err != nil {
		return nil, err
	}
	if best == nil {
		return nil, fmt.Errorf("automation: no valid combination in the grid")
	}
	return best, nil
}

func (g *GridSearch) searchRecursive(ctx context.Context, depth int, current map[string]float64, target float64, best **SearchResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.names) {
		in, err := controlsAt(g.reaction, nil, current)
		if err != nil {
			return nil
		}
		shift := g.coeffs.ComputeShift(in, g.reaction).Shift
		dist := math.Abs(shift - target)
		if *best == nil || dist < (*best).Distance {
			params := make(map[string]float64, len(current))
			for k, v := range current {
				params[k] = v
			}
			*best = &SearchResult{Controls: params, Input: in, Shift: shift, Distance: dist}
		}
		return nil
	}

	name := g.names[depth]
	for _, v := range g.ranges[depth] {
		next := make(map[string]float64, len(current)+1)
		for k, cv := range current {
			next[k] = cv
		}
		next[name] = v
		if err := g.searchRecursive(ctx, depth+1, next, target, best); err != nil {
			return err
		}
	}
	return nil
}
