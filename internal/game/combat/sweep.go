package combat

import (
	"cmp"
	"context"
	"fmt"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/arkdps/internal/model"
)

// sweepChunk is the number of grid points evaluated per task.
const sweepChunk = 128

// SweepInput is a resolved sweep: the unit is already built and both axes
// are normalized.
type SweepInput struct {
	Unit       *model.OperatorUnit
	SkillID    string
	LevelIndex int
	Enemy      model.Stats
	Def        model.Range
	Res        model.Range
}

// GridPoints returns the total number of simulations the input requires.
func (in SweepInput) GridPoints() int {
	return in.Def.Count() + in.Res.Count()
}

// Sweep evaluates the defense axis with the base res fixed and the
// resistance axis with the base def fixed. Points are computed in parallel
// on up to workers goroutines (0 means GOMAXPROCS); each series is then
// sorted ascending by dps, ties keeping axis order. TotalDPS and AverageDPS
// aggregate the defense series.
func Sweep(ctx context.Context, in SweepInput, workers int) (model.SweepResponse, error) {
	if err := in.Def.Validate(); err != nil {
		return model.SweepResponse{}, fmt.Errorf("def range: %w", err)
	}
	if err := in.Res.Validate(); err != nil {
		return model.SweepResponse{}, fmt.Errorf("res range: %w", err)
	}
	// Fail fast on bad skill/level before fanning out.
	if _, err := in.Unit.SkillLevel(in.SkillID, in.LevelIndex); err != nil {
		return model.SweepResponse{}, err
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	byDef := make([]model.DefPoint, in.Def.Count())
	byRes := make([]model.ResPoint, in.Res.Count())

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	runAxis(gctx, g, len(byDef), func(i int) error {
		def := in.Def.At(i)
		r, err := Simulate(in.Unit, in.SkillID, in.LevelIndex, in.Enemy.WithDef(def))
		if err != nil {
			return err
		}
		byDef[i] = model.DefPoint{DPS: r.DPS, Def: def}
		return nil
	})
	runAxis(gctx, g, len(byRes), func(i int) error {
		res := in.Res.At(i)
		r, err := Simulate(in.Unit, in.SkillID, in.LevelIndex, in.Enemy.WithRes(res))
		if err != nil {
			return err
		}
		byRes[i] = model.ResPoint{DPS: r.DPS, Res: res}
		return nil
	})

	if err := g.Wait(); err != nil {
		return model.SweepResponse{}, err
	}

	slices.SortStableFunc(byDef, func(a, b model.DefPoint) int { return cmp.Compare(a.DPS, b.DPS) })
	slices.SortStableFunc(byRes, func(a, b model.ResPoint) int { return cmp.Compare(a.DPS, b.DPS) })

	var total float64
	for _, p := range byDef {
		total += p.DPS
	}

	return model.SweepResponse{
		ByDef:      byDef,
		ByRes:      byRes,
		TotalDPS:   total,
		AverageDPS: total / float64(len(byDef)),
	}, nil
}

// runAxis schedules n points in chunks; each point writes only its own slot.
func runAxis(ctx context.Context, g *errgroup.Group, n int, point func(i int) error) {
	for start := 0; start < n; start += sweepChunk {
		end := min(start+sweepChunk, n)
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := point(i); err != nil {
					return err
				}
			}
			return nil
		})
	}
}
