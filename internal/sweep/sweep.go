// Package sweep runs Sanity simulations across a grid of Guts, Mythos and
// modifier values, for balancing die sizes against situation modifiers.
package sweep

import (
	"context"
	"fmt"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/sanity/internal/core/dice"
	apperrors "github.com/louisbranch/sanity/internal/platform/errors"
	"github.com/louisbranch/sanity/internal/random"
	"github.com/louisbranch/sanity/internal/sanity"
)

const tracerName = "github.com/louisbranch/sanity/internal/sweep"

// ErrInvalidGrid indicates a grid with an empty axis or negative trials.
var ErrInvalidGrid = apperrors.New(apperrors.CodeSweepInvalidGrid, "grid must have every axis and non-negative trials")

// Grid describes the parameter combinations to simulate.
type Grid struct {
	Guts      []int
	Mythos    []int
	Modifiers []int
	Trials    int
	// WildMythos rolls a wild die with Mythos in every check.
	WildMythos bool
}

// DefaultGrid returns the balancing grid: d6 and d8 Guts against no Mythos
// die, d4 and d6, at modifiers -1 through 2, with 1000 trials per cell.
func DefaultGrid() Grid {
	return Grid{
		Guts:      []int{6, 8},
		Mythos:    []int{0, 4, 6},
		Modifiers: []int{-1, 0, 1, 2},
		Trials:    1000,
	}
}

// Validate checks that every axis has values and trials are non-negative.
func (g Grid) Validate() error {
	axes := []struct {
		name   string
		values []int
	}{
		{"guts", g.Guts},
		{"mythos", g.Mythos},
		{"modifiers", g.Modifiers},
	}
	for _, axis := range axes {
		if len(axis.values) == 0 {
			return apperrors.WithMetadata(ErrInvalidGrid.Code, ErrInvalidGrid.Message, map[string]string{
				"axis": axis.name,
			})
		}
	}
	if g.Trials < 0 {
		return apperrors.WithMetadata(ErrInvalidGrid.Code, ErrInvalidGrid.Message, map[string]string{
			"trials": strconv.Itoa(g.Trials),
		})
	}
	return nil
}

// Size returns the number of cells in the grid.
func (g Grid) Size() int {
	return len(g.Guts) * len(g.Mythos) * len(g.Modifiers)
}

// Cell is the simulated tally for one parameter combination.
type Cell struct {
	Guts     int
	Mythos   int
	Modifier int
	Tally    sanity.Tally
}

// FailureFraction returns the share of checks in any failure band.
func (c Cell) FailureFraction() float64 {
	return c.Tally.FailureFraction()
}

// Label returns a stable identifier for the cell.
func (c Cell) Label() string {
	return cellLabel(c.Guts, c.Mythos, c.Modifier)
}

// Result holds every simulated cell in visiting order.
type Result struct {
	Grid  Grid
	Cells []Cell
}

// Lookup returns the cell for a parameter combination. When an axis repeats
// a value, the first matching cell is returned.
func (r Result) Lookup(guts, mythos, modifier int) (Cell, bool) {
	for _, c := range r.Cells {
		if c.Guts == guts && c.Mythos == mythos && c.Modifier == modifier {
			return c, true
		}
	}
	return Cell{}, false
}

// FailureFraction returns the failure fraction for a parameter combination,
// or 0 when the combination was not simulated.
func (r Result) FailureFraction(guts, mythos, modifier int) float64 {
	c, ok := r.Lookup(guts, mythos, modifier)
	if !ok {
		return 0
	}
	return c.FailureFraction()
}

// Options controls how a sweep draws randomness and reports progress.
type Options struct {
	// OnCheck, when set, is called after every simulated check. The cell
	// carries the parameters only; its tally is filled once the cell ends.
	OnCheck func(cell Cell, trial int, result sanity.CheckResult)
}

// Run simulates every cell of grid with a single shared roller, visiting
// Guts, then Mythos, then modifier values in order. The visiting order fixes
// the draw order, so a roller seeded the same way yields the same Result.
//
// Cancellation is checked between cells.
func Run(ctx context.Context, roller *dice.Roller, grid Grid, opts Options) (Result, error) {
	return run(ctx, grid, opts, func(int, int, int) *dice.Roller { return roller })
}

// RunSeeded simulates every cell of grid with its own roller, seeded from
// master and the cell label. A cell's tally then depends only on master and
// its parameters, not on which other cells the grid contains.
func RunSeeded(ctx context.Context, master int64, grid Grid, opts Options, rollerOpts ...dice.Option) (Result, error) {
	return run(ctx, grid, opts, func(g, m, o int) *dice.Roller {
		seed := random.Derive(master, cellLabel(g, m, o))
		return dice.NewRoller(dice.NewSource(seed), rollerOpts...)
	})
}

func run(ctx context.Context, grid Grid, opts Options, rollerFor func(g, m, o int) *dice.Roller) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := grid.Validate(); err != nil {
		return Result{}, err
	}

	tracer := otel.Tracer(tracerName)
	ctx, span := tracer.Start(ctx, "sweep.Run", trace.WithAttributes(
		attribute.Int("sweep.cells", grid.Size()),
		attribute.Int("sweep.trials", grid.Trials),
		attribute.Bool("sweep.wild_mythos", grid.WildMythos),
	))
	defer span.End()

	cells := make([]Cell, 0, grid.Size())
	for _, g := range grid.Guts {
		for _, m := range grid.Mythos {
			for _, o := range grid.Modifiers {
				if err := ctx.Err(); err != nil {
					span.RecordError(err)
					span.SetStatus(codes.Error, err.Error())
					return Result{}, fmt.Errorf("sweep cancelled: %w", err)
				}
				cell, err := runCell(ctx, tracer, rollerFor(g, m, o), grid, g, m, o, opts)
				if err != nil {
					span.RecordError(err)
					span.SetStatus(codes.Error, err.Error())
					return Result{}, fmt.Errorf("simulate %s: %w", cellLabel(g, m, o), err)
				}
				cells = append(cells, cell)
			}
		}
	}

	return Result{Grid: grid, Cells: cells}, nil
}

func runCell(ctx context.Context, tracer trace.Tracer, roller *dice.Roller, grid Grid, g, m, o int, opts Options) (Cell, error) {
	_, span := tracer.Start(ctx, "sweep.Cell", trace.WithAttributes(
		attribute.Int("sanity.guts", g),
		attribute.Int("sanity.mythos", m),
		attribute.Int("sanity.modifier", o),
	))
	defer span.End()

	cell := Cell{Guts: g, Mythos: m, Modifier: o}
	request := sanity.SimulationRequest{
		Guts:       g,
		Mythos:     m,
		Modifier:   o,
		Trials:     grid.Trials,
		WildMythos: grid.WildMythos,
	}
	if opts.OnCheck != nil {
		request.OnCheck = func(trial int, result sanity.CheckResult) {
			opts.OnCheck(cell, trial, result)
		}
	}

	tally, err := sanity.Simulate(roller, request)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Cell{}, err
	}
	cell.Tally = tally
	span.SetAttributes(
		attribute.Int("sanity.failures", tally.Failures()),
		attribute.Float64("sanity.failure_fraction", tally.FailureFraction()),
	)
	return cell, nil
}

func cellLabel(g, m, o int) string {
	return fmt.Sprintf("g%d:m%d:o%d", g, m, o)
}
