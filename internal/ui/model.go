// Package ui is the terminal front end: a Bubble Tea program that advances a
// game session in real time and draws it.
package ui

import (
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"gonum.org/v1/gonum/spatial/r2"

	"throng/internal/config"
	"throng/internal/game"
	"throng/internal/score"
	"throng/internal/world"
)

const (
	frameInterval = 33 * time.Millisecond

	// Terminals report key repeats, not key releases, so one press keeps the
	// pet moving for a few frames.
	moveHoldFrames = 4
)

// Options configures a Model.
type Options struct {
	Config    *config.Config
	Rand      world.Rand
	Scores    *score.Table
	ScorePath string // Empty disables saving
}

// Model represents the game state
type Model struct {
	Session    *game.Session
	TermWidth  int
	TermHeight int
	Quitting   bool
	Recorded   bool
	Rank       int
	SaveErr    error

	opts       Options
	last       time.Time
	move       r2.Vec
	moveFrames int
}

type frameMsg time.Time

// NewModel creates a new game model
func NewModel(opts Options) Model {
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Scores == nil {
		opts.Scores = &score.Table{}
	}
	m := Model{opts: opts}
	m.Session = game.New(opts.Config, opts.Rand, opts.Scores.High, nil)
	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return frame()
}

func frame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			if at, ok := m.arena().PointAt(msg.X, msg.Y); ok {
				m.Session.Strike(at)
			}
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.TermWidth = msg.Width
		m.TermHeight = msg.Height
		return m, nil

	case frameMsg:
		now := time.Time(msg)
		dt := frameInterval.Seconds()
		if !m.last.IsZero() {
			dt = now.Sub(m.last).Seconds()
		}
		m.last = now

		if m.moveFrames > 0 {
			m.Session.Move(m.move.X, m.move.Y)
			m.moveFrames--
		}
		m.Session.Advance(dt)
		if m.Session.Over() && !m.Recorded {
			m.record()
		}
		return m, frame()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		m.Quitting = true
		return m, tea.Quit
	case "r":
		if m.Session.Over() {
			m.restart()
		}
	case "up", "w":
		m.startMove(0, -1)
	case "down", "s":
		m.startMove(0, 1)
	case "left", "a":
		m.startMove(-1, 0)
	case "right", "d":
		m.startMove(1, 0)
	case "f", "1":
		m.Session.Feed()
	case "p", "2":
		m.Session.Play()
	case "z", "3":
		m.Session.Sleep()
	case " ":
		m.Session.StrikeNearest()
	}
	return m, nil
}

func (m *Model) startMove(dx, dy float64) {
	m.move = r2.Vec{X: dx, Y: dy}
	m.moveFrames = moveHoldFrames
}

// record adds the finished run to the score table and saves it.
func (m *Model) record() {
	m.Recorded = true
	m.Rank = m.opts.Scores.Record(m.Session.Result(), m.opts.Config.Score.Keep)
	if m.opts.ScorePath == "" {
		return
	}
	if err := m.opts.Scores.Save(m.opts.ScorePath); err != nil {
		m.SaveErr = err
		slog.Error("failed to save scores", "path", m.opts.ScorePath, "error", err)
		return
	}
	slog.Info("saved scores", "path", m.opts.ScorePath, "rank", m.Rank)
}

func (m *Model) restart() {
	m.Session = game.New(m.opts.Config, m.opts.Rand, m.opts.Scores.High, nil)
	m.Recorded = false
	m.Rank = 0
	m.SaveErr = nil
	m.moveFrames = 0
}

// Best is the high score shown to the player.
func (m Model) Best() int {
	return m.Session.Tracker().Best()
}

func (m Model) arena() Arena {
	return newArena(m.TermWidth, m.TermHeight, m.Session.Bounds())
}
