// Package score keeps the running score of a session and the persisted table
// of best runs.
package score

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// TimeNow is the clock used to stamp runs. Tests replace it.
var TimeNow = time.Now

// Run is one finished session.
type Run struct {
	Score    int       `toml:"score"`
	Kills    int       `toml:"kills"`
	Survived float64   `toml:"survived"` // Seconds of simulated time
	Cause    string    `toml:"cause"`
	At       time.Time `toml:"at"`
}

// Table is the persisted high score table, best run first.
type Table struct {
	High int   `toml:"high"`
	Runs []Run `toml:"runs"`
}

// DefaultPath returns ~/.config/throng/scores.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to find home directory: %w", err)
	}
	return filepath.Join(home, ".config", "throng", "scores.toml"), nil
}

// ResolvePath returns path, or DefaultPath when path is empty.
func ResolvePath(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	return DefaultPath()
}

// Load reads the table at path. A missing file yields an empty table.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Table{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read score file: %w", err)
	}

	var t Table
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse score file: %w", err)
	}
	t.order()
	return &t, nil
}

// Save writes the table to path, creating the directory if needed.
func (t *Table) Save(path string) error {
	data, err := toml.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to marshal scores: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write score file: %w", err)
	}
	return nil
}

// Record adds r to the table, keeping at most keep runs, and returns the
// run's 1-based rank or 0 if it did not make the table. A zero At is stamped
// with TimeNow.
func (t *Table) Record(r Run, keep int) int {
	if r.At.IsZero() {
		r.At = TimeNow()
	}
	if r.Score > t.High {
		t.High = r.Score
	}

	t.Runs = append(t.Runs, r)
	t.order()

	rank := 0
	for i := range t.Runs {
		if t.Runs[i] == r {
			rank = i + 1
			break
		}
	}
	if keep > 0 && len(t.Runs) > keep {
		t.Runs = t.Runs[:keep]
		if rank > keep {
			rank = 0
		}
	}
	return rank
}

// order sorts runs by score, then by the earlier timestamp.
func (t *Table) order() {
	sort.SliceStable(t.Runs, func(i, j int) bool {
		if t.Runs[i].Score != t.Runs[j].Score {
			return t.Runs[i].Score > t.Runs[j].Score
		}
		return t.Runs[i].At.Before(t.Runs[j].At)
	})
}
