// Package history lists completed assessments from the event log.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/compass/internal/router"
	"github.com/abhisek/compass/internal/screen"
	"github.com/abhisek/compass/internal/store"
	"github.com/abhisek/compass/internal/ui/layout"
	"github.com/abhisek/compass/internal/ui/theme"
)

// pageSize is the number of assessments loaded.
const pageSize = 50

type historyLoadedMsg struct {
	Assessments []store.AssessmentEvent
	Err         error
}

// HistoryScreen displays past assessment summaries.
type HistoryScreen struct {
	eventRepo   store.EventRepo
	assessments []store.AssessmentEvent
	selected    int
	expanded    map[int]bool
	loaded      bool
	errMsg      string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen. A nil eventRepo shows an empty list.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		if repo == nil {
			return historyLoadedMsg{}
		}
		assessments, err := repo.QueryAssessments(context.Background(), store.QueryOpts{Limit: pageSize})
		return historyLoadedMsg{Assessments: assessments, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "Past Results"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Scores"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.assessments = msg.Assessments
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.assessments)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	centered := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if s.errMsg != "" {
		return centered.Foreground(theme.Error).Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return centered.Foreground(theme.TextDim).Render("\n\n  Loading results...")
	}
	if len(s.assessments) == 0 {
		return centered.Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No completed assessments yet.")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, a := range s.assessments {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "> "
			style = style.Foreground(theme.Primary).Bold(true)
		}

		line := fmt.Sprintf("%s%s  %2d/%d  %5.1f%%  ",
			prefix, a.Timestamp.Local().Format("Jan 02, 2006 15:04"), a.Total, a.Possible, a.Percentage)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)+theme.Tier(a.Tier).Render(a.Tier)))
		b.WriteString("\n")

		if s.expanded[i] {
			for _, sc := range a.Scores {
				scoreLine := fmt.Sprintf("    %-45s %d/5", sc.Competency, sc.Score)
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
					lipgloss.NewStyle().Foreground(theme.TextDim).Render(scoreLine)))
				b.WriteString("\n")
			}
			if a.Model != "" {
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
					theme.Hint.Render("    scored by "+a.Model)))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}
