package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"throng/internal/score"
)

// ScoresModel is a simple Bubble Tea model for displaying the score table
type ScoresModel struct {
	Table *score.Table
}

// Init implements tea.Model
func (m ScoresModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m ScoresModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, tea.Quit
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress {
			return m, tea.Quit
		}
	}
	return m, nil
}

// View implements tea.Model
func (m ScoresModel) View() string {
	return FormatScores(m.Table) + "\nPress ESC, click, or any key to close..."
}

// FormatScores renders the table as a boxed list, best run first.
func FormatScores(t *score.Table) string {
	var s strings.Builder
	s.WriteString("╔════════════════════════════════════════════╗\n")
	s.WriteString(fmt.Sprintf("║  🏆 High score: %-27d║\n", t.High))
	s.WriteString("╠════════════════════════════════════════════╣\n")
	if len(t.Runs) == 0 {
		s.WriteString("║  No runs yet                               ║\n")
	}
	for i, r := range t.Runs {
		line := fmt.Sprintf("%2d. %5d  %3d kills  %6s  %s", i+1, r.Score, r.Kills, formatSeconds(r.Survived), r.Cause)
		s.WriteString(fmt.Sprintf("║  %-42s║\n", line))
	}
	s.WriteString("╚════════════════════════════════════════════╝\n")
	return s.String()
}

// DisplayScores shows the score table until a key is pressed.
func DisplayScores(t *score.Table) error {
	program := tea.NewProgram(ScoresModel{Table: t}, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running score display: %w", err)
	}
	return nil
}
