// Package sanity implements the sanity command: Sanity check balancing
// sweeps and single explained checks.
package sanity

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"golang.org/x/text/language"

	"github.com/louisbranch/sanity/internal/core/dice"
	platformcmd "github.com/louisbranch/sanity/internal/platform/cmd"
	apperrors "github.com/louisbranch/sanity/internal/platform/errors"
	"github.com/louisbranch/sanity/internal/random"
	"github.com/louisbranch/sanity/internal/report"
	"github.com/louisbranch/sanity/internal/sanity"
	"github.com/louisbranch/sanity/internal/sweep"
)

// Commands accepted as the first positional argument.
const (
	CommandSweep = "sweep"
	CommandCheck = "check"
)

// Config holds sanity command configuration.
type Config struct {
	Seed           int64  `env:"SEED"            envDefault:"13527"`
	Trials         int    `env:"TRIALS"          envDefault:"1000"`
	Guts           []int  `env:"GUTS"            envDefault:"6,8"      envSeparator:","`
	Mythos         []int  `env:"MYTHOS"          envDefault:"0,4,6"    envSeparator:","`
	Modifiers      []int  `env:"MODIFIERS"       envDefault:"-1,0,1,2" envSeparator:","`
	ExplosionLimit int    `env:"EXPLOSION_LIMIT" envDefault:"1000"`
	WildMythos     bool   `env:"WILD_MYTHOS"`
	PerCellSeeds   bool   `env:"PER_CELL_SEEDS"`
	Verbose        bool   `env:"VERBOSE"`
	Counts         bool   `env:"COUNTS"`
	Lang           string `env:"LANG"            envDefault:"en"`

	// Command is the positional command, sweep unless told otherwise.
	Command string
}

// ParseConfig loads env defaults and then parses flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	fs.Int64Var(&cfg.Seed, "seed", 0, "random seed (0 = random)")
	fs.IntVar(&cfg.Trials, "n", 0, "checks per grid cell")
	fs.Var((*intList)(&cfg.Guts), "guts", "comma-separated Guts die faces")
	fs.Var((*intList)(&cfg.Mythos), "mythos", "comma-separated Mythos die faces (0 = no die)")
	fs.Var((*intList)(&cfg.Modifiers), "modifiers", "comma-separated situation modifiers")
	fs.IntVar(&cfg.ExplosionLimit, "explosion-limit", 0, "max extra draws per exploding die (0 = unbounded)")
	fs.BoolVar(&cfg.WildMythos, "wild-mythos", false, "also roll a wild die with Mythos")
	fs.BoolVar(&cfg.PerCellSeeds, "per-cell-seeds", false, "seed every grid cell independently from -seed")
	fs.BoolVar(&cfg.Verbose, "v", false, "log every check")
	fs.BoolVar(&cfg.Counts, "counts", false, "print per-outcome counts")
	fs.StringVar(&cfg.Lang, "lang", "", "language for number formatting")
	if err := platformcmd.ParseConfigFromArgs(&cfg, fs, args); err != nil {
		if apperrors.CodeOf(err) == apperrors.CodeConfigInvalid {
			return Config{}, err
		}
		return Config{}, apperrors.Wrap(apperrors.CodeConfigInvalid, "parse flags: "+err.Error(), err)
	}

	cfg.Command = CommandSweep
	if fs.NArg() > 0 {
		cfg.Command = fs.Arg(0)
	}
	switch cfg.Command {
	case CommandSweep, CommandCheck:
	default:
		return Config{}, apperrors.WithMetadata(apperrors.CodeConfigInvalid, "unknown command", map[string]string{
			"command": cfg.Command,
		})
	}
	return cfg, nil
}

// Run executes the sanity command.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	logger := log.New(errOut, "", 0)

	lang, err := language.Parse(cfg.Lang)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeConfigInvalid, fmt.Sprintf("parse language %q", cfg.Lang), err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed, err = random.NewSeed()
		if err != nil {
			return err
		}
		logger.Printf("generated seed %d", seed)
	}
	rollerOpts := []dice.Option{dice.WithExplosionLimit(cfg.ExplosionLimit)}

	if cfg.Command == CommandCheck {
		return runCheck(out, dice.NewRoller(dice.NewSource(seed), rollerOpts...), cfg)
	}

	grid := sweep.Grid{
		Guts:       cfg.Guts,
		Mythos:     cfg.Mythos,
		Modifiers:  cfg.Modifiers,
		Trials:     cfg.Trials,
		WildMythos: cfg.WildMythos,
	}
	logger.Printf("seed %d: %d cells, %d trials per cell", seed, grid.Size(), grid.Trials)

	var opts sweep.Options
	if cfg.Verbose {
		opts.OnCheck = func(cell sweep.Cell, trial int, result sanity.CheckResult) {
			logger.Printf("%s #%d: %s (guts %d, mythos %d, net %d)",
				cell.Label(), trial, result.Outcome, result.Guts.Total, result.Mythos.Total, result.Net)
		}
	}

	var res sweep.Result
	if cfg.PerCellSeeds {
		res, err = sweep.RunSeeded(ctx, seed, grid, opts, rollerOpts...)
	} else {
		res, err = sweep.Run(ctx, dice.NewRoller(dice.NewSource(seed), rollerOpts...), grid, opts)
	}
	if err != nil {
		return fmt.Errorf("sweep: %w", err)
	}

	return report.Render(out, res, report.Options{Language: lang, Counts: cfg.Counts})
}

// runCheck rolls one check with the first value of each axis and prints how
// it was resolved.
func runCheck(out io.Writer, roller *dice.Roller, cfg Config) error {
	request := sanity.DefaultCheckRequest()
	if len(cfg.Guts) > 0 {
		request.Guts = cfg.Guts[0]
	}
	if len(cfg.Mythos) > 0 {
		request.Mythos = cfg.Mythos[0]
	}
	if len(cfg.Modifiers) > 0 {
		request.Modifier = cfg.Modifiers[0]
	}
	request.WildMythos = cfg.WildMythos

	result := sanity.Check(roller, request)
	var b strings.Builder
	fmt.Fprintf(&b, "Sanity check %s vs %s, modifier %+d: %s\n",
		dice.Label(request.Guts), dice.Label(request.Mythos), request.Modifier, result.Outcome)
	for _, step := range sanity.Explain(result) {
		fmt.Fprintf(&b, "  %-14s %s %v\n", step.Code, step.Message, step.Data)
	}
	if result.Guts.Capped || result.Mythos.Capped {
		fmt.Fprintf(&b, "  explosion limit %d reached\n", roller.ExplosionLimit())
	}

	rules := sanity.Rules()
	fmt.Fprintf(&b, "Bands (net = %s):\n", rules.NetFormula)
	for _, band := range rules.Bands {
		fmt.Fprintf(&b, "  %-16s %s\n", band.Outcome, bandRange(band))
	}

	if _, err := io.WriteString(out, b.String()); err != nil {
		return fmt.Errorf("write check: %w", err)
	}
	return nil
}

// bandRange renders the net values a band covers.
func bandRange(band sanity.Band) string {
	switch {
	case band.Min != nil && band.Max != nil:
		return fmt.Sprintf("%d to %d", *band.Min, *band.Max)
	case band.Min != nil:
		return fmt.Sprintf("%d or more", *band.Min)
	case band.Max != nil:
		return fmt.Sprintf("%d or less", *band.Max)
	default:
		return "any"
	}
}

// intList is a flag.Value for comma-separated integers.
type intList []int

func (l *intList) String() string {
	if l == nil {
		return ""
	}
	parts := make([]string, 0, len(*l))
	for _, v := range *l {
		parts = append(parts, strconv.Itoa(v))
	}
	return strings.Join(parts, ",")
}

func (l *intList) Set(value string) error {
	var values []int
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.Atoi(part)
		if err != nil {
			return fmt.Errorf("invalid integer %q", part)
		}
		values = append(values, v)
	}
	*l = values
	return nil
}
