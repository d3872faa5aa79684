package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"throng/internal/config"
	"throng/internal/fruit"
	"throng/internal/game"
	"throng/internal/pet"
	"throng/internal/score"
	"throng/internal/world"
)

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	os.Exit(m.Run())
}

// execute runs the CLI with args and returns what it wrote to stdout.
func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("throng %s: %v", strings.Join(args, " "), err)
	}
	return out.String()
}

func TestRunSimDeterministic(t *testing.T) {
	cfg := config.Default()

	var first, second bytes.Buffer
	a, err := runSim(cfg, simOptions{Seconds: 40, Seed: 7, CSV: &first})
	if err != nil {
		t.Fatalf("runSim() error = %v", err)
	}
	b, err := runSim(cfg, simOptions{Seconds: 40, Seed: 7, CSV: &second})
	if err != nil {
		t.Fatalf("runSim() error = %v", err)
	}

	if a != b {
		t.Errorf("same seed gave %+v and %+v", a, b)
	}
	if first.String() != second.String() {
		t.Error("same seed gave different telemetry")
	}
	if a.Survived <= 0 {
		t.Errorf("Survived = %v, want positive", a.Survived)
	}

	lines := strings.Split(strings.TrimSpace(first.String()), "\n")
	if len(lines) < 2 || !strings.HasPrefix(lines[0], "window_end,") {
		t.Errorf("telemetry = %q, want a header and rows", first.String())
	}
}

func TestRunSimStopsAtDeath(t *testing.T) {
	cfg := config.Default()
	cfg.Spawn.Interval = 1e6
	cfg.Economy.BaseDecay = 20

	run, err := runSim(cfg, simOptions{Seconds: 1000, Seed: 1})
	if err != nil {
		t.Fatalf("runSim() error = %v", err)
	}
	if run.Cause == "" {
		t.Fatal("pet survived a fast decay")
	}
	if run.Survived >= 1000 {
		t.Errorf("Survived = %v, want the run to end at death", run.Survived)
	}
}

func newPilotSession(draw float64) *game.Session {
	cfg := config.Default()
	return game.New(cfg, &world.Sequence{Values: []float64{draw}}, 0, nil)
}

func TestAutopilotFeedsAndFetches(t *testing.T) {
	s := newPilotSession(0.5)
	a := newAutopilot()

	s.Pet().ApplyDamage(pet.Delta{Hunger: -50}, 0)
	a.drive(s)
	if len(s.Fruits()) != 1 {
		t.Fatalf("len(Fruits()) = %d after driving hungry, want 1", len(s.Fruits()))
	}

	start := s.Pet().Position()
	target := s.Fruits()[0].Position()
	a.drive(s)
	s.Advance(1.0 / 30)
	if before, after := world.Distance(start, target), world.Distance(s.Pet().Position(), target); after >= before {
		t.Errorf("distance to fruit went from %v to %v, want closer", before, after)
	}
}

func TestAutopilotSleepsWhenTired(t *testing.T) {
	s := newPilotSession(0.5)
	s.Pet().ApplyDamage(pet.Delta{Energy: -80}, 0)
	newAutopilot().drive(s)
	if s.Pet().State() != pet.Sleeping {
		t.Errorf("State() = %v, want sleeping", s.Pet().State())
	}
}

func TestAutopilotIgnoresPoisonAndWaits(t *testing.T) {
	s := newPilotSession(0.9)
	a := newAutopilot()

	s.Pet().ApplyDamage(pet.Delta{Hunger: -50}, 0)
	a.drive(s)
	if len(s.Fruits()) != 1 || s.Fruits()[0].Kind() != fruit.Death {
		t.Fatalf("Fruits() = %v, want one death fruit", s.Fruits())
	}
	if nearestSafeFruit(s) != nil {
		t.Error("nearestSafeFruit() returned a death fruit")
	}

	a.drive(s)
	if len(s.Fruits()) != 1 {
		t.Errorf("len(Fruits()) = %d, want no second drop inside the cooldown", len(s.Fruits()))
	}
}

func TestFormatRun(t *testing.T) {
	tests := []struct {
		name string
		run  score.Run
		want string
	}{
		{"Dead", score.Run{Score: 120, Kills: 2, Survived: 95.5, Cause: "Neglect"}, "score 120, 2 kills, survived 95.5s (Neglect)"},
		{"Still alive", score.Run{Score: 10, Survived: 30}, "score 10, 0 kills, survived 30.0s (alive)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatRun(tt.run); got != tt.want {
				t.Errorf("formatRun() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConfigCommand(t *testing.T) {
	out := execute(t, "config")
	for _, want := range []string{"world:", "max_enemies: 5", "critical_rate: -5"} {
		if !strings.Contains(out, want) {
			t.Errorf("config output missing %q", want)
		}
	}

	path := filepath.Join(t.TempDir(), "config.yaml")
	execute(t, "config", "--write", path)
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() of written config error = %v", err)
	}
	if cfg.Spawn.MaxEnemies != config.Default().Spawn.MaxEnemies {
		t.Errorf("MaxEnemies = %d after round trip", cfg.Spawn.MaxEnemies)
	}
}

func TestScoresCommandPlain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.toml")
	table := &score.Table{}
	table.Record(score.Run{Score: 50, Kills: 1, Survived: 12, Cause: "Heartbreak"}, 10)
	if err := table.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	out := execute(t, "scores", "--plain", "--scores", path)
	for _, want := range []string{"High score: 50", "Heartbreak"} {
		if !strings.Contains(out, want) {
			t.Errorf("scores output missing %q:\n%s", want, out)
		}
	}
}

func TestSimCommandRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.toml")

	out := execute(t, "sim", "--seconds", "5", "--seed", "3", "--scores", path, "--record")
	if !strings.HasPrefix(out, "score ") {
		t.Errorf("sim output = %q, want the run summary", out)
	}

	table, err := score.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(table.Runs) != 1 {
		t.Errorf("recorded %d runs, want 1", len(table.Runs))
	}
}

func TestSimCommandCSVToStdout(t *testing.T) {
	out := execute(t, "sim", "--seconds", "12", "--seed", "1", "--csv", "-")
	if !strings.HasPrefix(out, "window_end,") {
		t.Errorf("sim output = %q, want CSV only", out)
	}
	if strings.Contains(out, "survived") {
		t.Error("run summary mixed into CSV output")
	}
}
