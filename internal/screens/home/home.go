// Package home is the landing screen of the TUI.
package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/compass/internal/assessment"
	"github.com/abhisek/compass/internal/router"
	"github.com/abhisek/compass/internal/screen"
	"github.com/abhisek/compass/internal/screens/history"
	"github.com/abhisek/compass/internal/screens/interview"
	"github.com/abhisek/compass/internal/session"
	"github.com/abhisek/compass/internal/store"
	"github.com/abhisek/compass/internal/ui/components"
)

// HomeScreen is the main menu.
type HomeScreen struct {
	menu       components.Menu
	menuLabels []string
	last       *store.AssessmentEvent
	notice     string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen. newSession starts a fresh interview session;
// eventRepo may be nil, which disables past results. notice is shown under
// the title when non-empty.
func New(newSession func() *session.Session, eventRepo store.EventRepo, notice string) *HomeScreen {
	var last *store.AssessmentEvent
	if eventRepo != nil {
		if recent, err := eventRepo.QueryAssessments(context.Background(), store.QueryOpts{Limit: 1}); err == nil && len(recent) > 0 {
			last = &recent[0]
		}
	}

	menuLabels := []string{"START ASSESSMENT", "PAST RESULTS", "QUIT"}

	items := []components.MenuItem{
		{Label: menuLabels[0], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: interview.New(newSession())}
			}
		}},
		{Label: menuLabels[1], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(eventRepo)}
			}
		}},
		{Label: menuLabels[2], Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		menu:       components.NewMenu(items),
		menuLabels: menuLabels,
		last:       last,
		notice:     notice,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header and footer
	termHeight := height + 8
	compact := termHeight < 30 || width < 100

	cw := contentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if h.notice != "" {
		sections = append(sections, renderNotice(h.notice, cw))
	}
	sections = append(sections, renderStatsBar(assessment.QuestionCount, len(assessment.CompetencyNames()), h.last, cw))
	sections = append(sections, renderMenu(h.menuLabels, h.menu.Selected, cw))

	return renderFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
