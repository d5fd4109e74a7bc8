package sanity

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"io"
	"slices"
	"strings"
	"testing"

	apperrors "github.com/louisbranch/sanity/internal/platform/errors"
	"github.com/louisbranch/sanity/internal/sweep"
)

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("sanity", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Seed != 13527 {
		t.Errorf("Seed = %d, want 13527", cfg.Seed)
	}
	if cfg.Trials != 1000 {
		t.Errorf("Trials = %d, want 1000", cfg.Trials)
	}
	if !slices.Equal(cfg.Guts, []int{6, 8}) {
		t.Errorf("Guts = %v, want [6 8]", cfg.Guts)
	}
	if !slices.Equal(cfg.Mythos, []int{0, 4, 6}) {
		t.Errorf("Mythos = %v, want [0 4 6]", cfg.Mythos)
	}
	if !slices.Equal(cfg.Modifiers, []int{-1, 0, 1, 2}) {
		t.Errorf("Modifiers = %v, want [-1 0 1 2]", cfg.Modifiers)
	}
	if cfg.ExplosionLimit != 1000 {
		t.Errorf("ExplosionLimit = %d, want 1000", cfg.ExplosionLimit)
	}
	if cfg.WildMythos {
		t.Error("expected wild mythos to default to false")
	}
	if cfg.Lang != "en" {
		t.Errorf("Lang = %q, want en", cfg.Lang)
	}
	if cfg.Command != CommandSweep {
		t.Errorf("Command = %q, want %q", cfg.Command, CommandSweep)
	}
}

func TestParseConfigFlagsOverrideEnv(t *testing.T) {
	t.Setenv("SANITY_TRIALS", "50")
	t.Setenv("SANITY_GUTS", "4,6")
	t.Setenv("SANITY_WILD_MYTHOS", "true")

	cfg, err := ParseConfig(newFlagSet(), []string{"-n", "20", "-modifiers", "-2, 3", "check"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Trials != 20 {
		t.Errorf("Trials = %d, want flag value 20", cfg.Trials)
	}
	if !slices.Equal(cfg.Guts, []int{4, 6}) {
		t.Errorf("Guts = %v, want env value [4 6]", cfg.Guts)
	}
	if !slices.Equal(cfg.Modifiers, []int{-2, 3}) {
		t.Errorf("Modifiers = %v, want [-2 3]", cfg.Modifiers)
	}
	if !cfg.WildMythos {
		t.Error("expected wild mythos from env")
	}
	if cfg.Command != CommandCheck {
		t.Errorf("Command = %q, want %q", cfg.Command, CommandCheck)
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{"bad list flag", nil, []string{"-guts", "6,x"}},
		{"bad env list", map[string]string{"SANITY_MYTHOS": "0,four"}, nil},
		{"bad env int", map[string]string{"SANITY_TRIALS": "many"}, nil},
		{"unknown command", nil, []string{"tabulate"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := ParseConfig(newFlagSet(), tt.args)
			if !errors.Is(err, apperrors.New(apperrors.CodeConfigInvalid, "")) {
				t.Fatalf("ParseConfig() error = %v, want config invalid", err)
			}
		})
	}
}

func testConfig() Config {
	return Config{
		Seed:           13527,
		Trials:         50,
		Guts:           []int{6, 8},
		Mythos:         []int{0, 4},
		Modifiers:      []int{-1, 2},
		ExplosionLimit: 1000,
		Lang:           "en",
		Command:        CommandSweep,
	}
}

func TestRunRendersSweep(t *testing.T) {
	var out, errOut bytes.Buffer
	if err := Run(context.Background(), testConfig(), &out, &errOut); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	for _, want := range []string{"50 trials per cell", "Modifier -1", "Modifier +2", "d6", "d8", "none", "d4"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
	if !strings.Contains(errOut.String(), "seed 13527: 8 cells, 50 trials per cell") {
		t.Errorf("unexpected log output %q", errOut.String())
	}
}

func TestRunIsDeterministic(t *testing.T) {
	for _, perCell := range []bool{false, true} {
		cfg := testConfig()
		cfg.PerCellSeeds = perCell
		cfg.Counts = true

		var a, b bytes.Buffer
		if err := Run(context.Background(), cfg, &a, nil); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if err := Run(context.Background(), cfg, &b, nil); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if a.String() != b.String() {
			t.Fatalf("per-cell=%v: outputs differ:\n%s\n---\n%s", perCell, a.String(), b.String())
		}
	}
}

func TestRunVerboseLogsEveryCheck(t *testing.T) {
	cfg := testConfig()
	cfg.Trials = 2
	cfg.Guts = []int{6}
	cfg.Mythos = []int{0}
	cfg.Modifiers = []int{0, 1}
	cfg.Verbose = true

	var errOut bytes.Buffer
	if err := Run(context.Background(), cfg, nil, &errOut); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	for _, want := range []string{"g6:m0:o0 #0:", "g6:m0:o0 #1:", "g6:m0:o1 #0:", "g6:m0:o1 #1:"} {
		if !strings.Contains(errOut.String(), want) {
			t.Errorf("log missing %q:\n%s", want, errOut.String())
		}
	}
}

func TestRunGeneratesSeedWhenZero(t *testing.T) {
	cfg := testConfig()
	cfg.Seed = 0
	cfg.Trials = 1

	var errOut bytes.Buffer
	if err := Run(context.Background(), cfg, nil, &errOut); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(errOut.String(), "generated seed") {
		t.Errorf("expected generated seed log, got %q", errOut.String())
	}
}

func TestRunCheckExplainsOutcome(t *testing.T) {
	cfg := testConfig()
	cfg.Command = CommandCheck
	cfg.Guts = []int{8}
	cfg.Mythos = []int{4}
	cfg.Modifiers = []int{1}

	var out bytes.Buffer
	if err := Run(context.Background(), cfg, &out, nil); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.HasPrefix(out.String(), "Sanity check d8 vs d4, modifier +1: ") {
		t.Errorf("unexpected heading:\n%s", out.String())
	}
	for _, want := range []string{"ROLL_GUTS", "ROLL_MYTHOS", "APPLY_MODIFIER", "SELECT_OUTCOME"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestRunRejectsInvalidLanguage(t *testing.T) {
	cfg := testConfig()
	cfg.Lang = "not a language"

	err := Run(context.Background(), cfg, nil, nil)
	if !errors.Is(err, apperrors.New(apperrors.CodeConfigInvalid, "")) {
		t.Fatalf("Run() error = %v, want config invalid", err)
	}
}

func TestRunRejectsInvalidGrid(t *testing.T) {
	cfg := testConfig()
	cfg.Guts = nil

	err := Run(context.Background(), cfg, nil, nil)
	if !errors.Is(err, sweep.ErrInvalidGrid) {
		t.Fatalf("Run() error = %v, want %v", err, sweep.ErrInvalidGrid)
	}
	if apperrors.CodeOf(err).ExitCode() != apperrors.ExitUsage {
		t.Errorf("expected usage exit code for %v", err)
	}
}

func TestIntList(t *testing.T) {
	var l intList
	if err := l.Set(" 1, -2,,3 "); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if !slices.Equal([]int(l), []int{1, -2, 3}) {
		t.Fatalf("values = %v, want [1 -2 3]", []int(l))
	}
	if got := l.String(); got != "1,-2,3" {
		t.Errorf("String() = %q, want %q", got, "1,-2,3")
	}
	if err := l.Set("1,two"); err == nil {
		t.Error("expected error for non-integer")
	}
}

func TestRunCheckLabelsAbsentMythosDie(t *testing.T) {
	cfg := testConfig()
	cfg.Command = CommandCheck
	cfg.Guts = []int{6}
	cfg.Mythos = []int{0}
	cfg.Modifiers = []int{0}

	var out bytes.Buffer
	if err := Run(context.Background(), cfg, &out, nil); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.HasPrefix(out.String(), "Sanity check d6 vs none, modifier +0: ") {
		t.Errorf("unexpected heading:\n%s", out.String())
	}
	if strings.Contains(out.String(), "d0") {
		t.Errorf("absent die rendered as d0:\n%s", out.String())
	}
}

func TestRunCheckPrintsBands(t *testing.T) {
	cfg := testConfig()
	cfg.Command = CommandCheck

	var out bytes.Buffer
	if err := Run(context.Background(), cfg, &out, nil); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	for _, want := range []string{
		"Bands (net = guts - mythos - modifier):",
		"raise            8 or more",
		"success          4 to 7",
		"positive failure 0 to 3",
		"negative failure -3 to -1",
		"critical failure -4 or less",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
	if strings.Contains(out.String(), "explosion limit") {
		t.Errorf("unexpected explosion limit notice:\n%s", out.String())
	}
}

func TestRunCheckReportsExplosionLimit(t *testing.T) {
	cfg := testConfig()
	cfg.Command = CommandCheck
	cfg.Guts = []int{1}
	cfg.ExplosionLimit = 5

	var out bytes.Buffer
	if err := Run(context.Background(), cfg, &out, nil); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "explosion limit 5 reached") {
		t.Errorf("expected explosion limit notice:\n%s", out.String())
	}
}
