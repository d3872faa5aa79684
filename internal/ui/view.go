package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"throng/internal/pet"
)

// Screen layout. The arena sits below the header inside a one-cell border,
// with the message line and help line under it.
const (
	headerRows = 4
	arenaTop   = headerRows + 1
	arenaLeft  = 1
	chromeRows = headerRows + 2 + 2
	barCells   = 10
)

var gameStyles = struct {
	title  lipgloss.Style
	status lipgloss.Style
	stats  lipgloss.Style
	arena  lipgloss.Style
	help   lipgloss.Style
	good   lipgloss.Style
	warn   lipgloss.Style
	bad    lipgloss.Style
}{
	title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF75B5")).
		Padding(0, 1),

	status: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF75B5")),

	stats: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF75B5")),

	arena: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#FF75B5")),

	help: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")),

	good: lipgloss.NewStyle().Foreground(lipgloss.Color("#5FD75F")),
	warn: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")),
	bad:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F")),
}

// View implements tea.Model
func (m Model) View() string {
	if m.Quitting {
		return "Thanks for playing!\n"
	}
	if m.Session.Over() && m.Session.Pet().DeathAnimationFinished() {
		return m.deadView()
	}

	sections := []string{
		m.renderTitle(),
		m.renderStats(),
		m.renderStatus(),
		gameStyles.arena.Render(m.arena().Render(m.Session)),
		gameStyles.status.Render(strings.Join(m.Session.Messages(), " • ")),
		gameStyles.help.Render("wasd/arrows move • f feed • p play • z sleep • space/click strike • q quit"),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderTitle() string {
	s := m.Session
	return gameStyles.title.Render(fmt.Sprintf("🐾 throng   Score: %d   Best: %d   Kills: %d   Time: %s",
		s.Score(), m.Best(), s.Tracker().Kills(), formatSeconds(s.Elapsed())))
}

func (m Model) renderStats() string {
	p := m.Session.Pet()
	n := p.Needs()
	row := func(name string, value float64) string {
		return fmt.Sprintf("%-10s [%s] %3.0f%%", name+":", makeBar(value), value)
	}
	return gameStyles.stats.Render(
		row("Hunger", n.Hunger) + "   " + row("Happiness", n.Happiness) + "\n" +
			row("Energy", n.Energy) + "   " + row("Wellbeing", p.Wellbeing()),
	)
}

// makeBar draws value as a bar of barCells cells, colored by how critical it
// is.
func makeBar(value float64) string {
	filled := min(max(int(value)*barCells/pet.MaxStat, 0), barCells)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barCells-filled)

	switch {
	case value < pet.LowStatThreshold:
		return gameStyles.bad.Render(bar)
	case value < pet.HighStatThreshold:
		return gameStyles.warn.Render(bar)
	default:
		return gameStyles.good.Render(bar)
	}
}

func (m Model) renderStatus() string {
	p := m.Session.Pet()
	status := fmt.Sprintf("Status: %s", pet.GetStatusWithLabel(p))
	if frame := GetAnimationFrame(AnimationFor(p)); frame != "" {
		status += "   " + frame
	}
	if pool := m.Session.Pool(); !m.Session.Over() {
		status += fmt.Sprintf("   Enemies: %d/%d (next in %.0fs)", pool.Len(), pool.Cap(), pool.NextSpawn())
	}
	return gameStyles.status.Render(status)
}

func (m Model) deadView() string {
	run := m.Session.Result()

	lines := []string{
		gameStyles.title.Render("💀 Game Over 💀"),
		"",
		gameStyles.status.Render("Your pet has passed away..."),
		gameStyles.status.Render("Cause of death: " + run.Cause),
		gameStyles.status.Render("They lived for " + formatSeconds(run.Survived)),
		"",
		gameStyles.status.Render(fmt.Sprintf("Score: %d   Kills: %d   Best: %d", run.Score, run.Kills, m.Best())),
	}
	switch {
	case m.Rank == 1:
		lines = append(lines, gameStyles.good.Render("✨ New high score! ✨"))
	case m.Rank > 1:
		lines = append(lines, gameStyles.status.Render(fmt.Sprintf("Ranked #%d on the score table", m.Rank)))
	}
	if m.SaveErr != nil {
		lines = append(lines, gameStyles.bad.Render("Could not save scores: "+m.SaveErr.Error()))
	}
	lines = append(lines, "", gameStyles.help.Render("Press 'r' to play again, 'q' to quit"))

	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

// formatSeconds renders simulated seconds as a rounded duration.
func formatSeconds(s float64) string {
	return time.Duration(s * float64(time.Second)).Round(time.Second).String()
}
