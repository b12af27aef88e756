// Package results renders a completed evaluation.
package results

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/compass/internal/assessment"
	"github.com/abhisek/compass/internal/evaluation"
	"github.com/abhisek/compass/internal/router"
	"github.com/abhisek/compass/internal/screen"
	"github.com/abhisek/compass/internal/ui/components"
	"github.com/abhisek/compass/internal/ui/layout"
	"github.com/abhisek/compass/internal/ui/theme"
)

// ResultsScreen lists the competency scores with per-competency details and
// the overall tier.
type ResultsScreen struct {
	result   *evaluation.Result
	summary  evaluation.Summary
	selected int
	expanded map[int]bool

	// restart builds the screen for a fresh assessment; nil hides the
	// option.
	restart func() screen.Screen
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)
var _ screen.StatusProvider = (*ResultsScreen)(nil)

// New creates a results screen for result.
func New(result *evaluation.Result, restart func() screen.Screen) *ResultsScreen {
	return &ResultsScreen{
		result:   result,
		summary:  evaluation.Summarize(result),
		expanded: make(map[int]bool),
		restart:  restart,
	}
}

func (s *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultsScreen) Title() string {
	return "Results"
}

func (s *ResultsScreen) Status() string {
	return fmt.Sprintf("%d/%d", s.summary.Total, s.summary.Possible)
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Show/Hide details"},
	}
	if s.restart != nil {
		hints = append(hints, layout.KeyHint{Key: "R", Description: "Start over"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Home"})
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.result.Competencies)-1 {
			s.selected++
		}
	case "enter", "space", " ":
		s.expanded[s.selected] = !s.expanded[s.selected]
	case "a":
		open := !s.allExpanded()
		for i := range s.result.Competencies {
			s.expanded[i] = open
		}
	case "r", "R":
		if s.restart != nil {
			next := s.restart()
			return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
		}
	}
	return s, nil
}

func (s *ResultsScreen) allExpanded() bool {
	for i := range s.result.Competencies {
		if !s.expanded[i] {
			return false
		}
	}
	return true
}

func (s *ResultsScreen) View(width, height int) string {
	cw := layout.ContentWidth(width)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(layout.Centered(width, theme.Title.Width(cw), "Competency Scores"))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", cw))

	for i, c := range s.result.Competencies {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderRow(i, c, cw)))
		b.WriteString("\n")
		if s.expanded[i] {
			note := theme.Note.Width(cw - 4).Render(c.Justification)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Width(cw).PaddingLeft(4).Render(note)))
			b.WriteString("\n")
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(layout.Centered(width, theme.Title.Width(cw), "Overall Assessment"))
	b.WriteString("\n\n")
	b.WriteString(layout.Centered(width, theme.Body.Width(cw).Align(lipgloss.Center),
		fmt.Sprintf("Total Score: %d/%d (%.1f%%)", s.summary.Total, s.summary.Possible, s.summary.Percentage)))
	b.WriteString("\n")
	b.WriteString(layout.Centered(width, theme.Tier(string(s.summary.Tier)).Width(cw).Align(lipgloss.Center),
		s.summary.Tier.Message()))

	return b.String()
}

func (s *ResultsScreen) renderRow(i int, c evaluation.CompetencyScore, cw int) string {
	marker := "  "
	nameStyle := theme.Unselected
	if i == s.selected {
		marker = "▸ "
		nameStyle = theme.Selected
	}

	toggle := "[Show Details]"
	if s.expanded[i] {
		toggle = "[Hide Details]"
	}
	toggle = theme.Hint.Render(toggle)

	name := nameStyle.Render(marker + c.Competency)
	bar := components.ProgressBar{
		Percent: float64(c.Score) / float64(assessment.MaxScore),
		Caption: fmt.Sprintf("Score: %d/%d", c.Score, assessment.MaxScore),
		Width:   24,
	}

	gap := max(cw-lipgloss.Width(name)-lipgloss.Width(toggle)-bar.Width-2, 1)
	return name + strings.Repeat(" ", gap) + bar.View() + "  " + toggle
}
