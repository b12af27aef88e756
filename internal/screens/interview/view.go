package interview

import (
	"errors"
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/compass/internal/assessment"
	"github.com/abhisek/compass/internal/evaluation"
	"github.com/abhisek/compass/internal/session"
	"github.com/abhisek/compass/internal/ui/components"
	"github.com/abhisek/compass/internal/ui/layout"
	"github.com/abhisek/compass/internal/ui/theme"
)

func (s *InterviewScreen) View(width, height int) string {
	if s.confirmQuit {
		return renderQuitConfirm(width, height)
	}
	switch s.sess.State() {
	case session.StateReadyToEvaluate:
		return s.renderReady(width, height)
	case session.StateEvaluated:
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Body.Render("Evaluation complete. Press Enter to view your results."))
	}
	return s.renderQuestion(width)
}

func (s *InterviewScreen) renderQuestion(width int) string {
	q, ok := s.sess.CurrentQuestion()
	if !ok {
		return ""
	}
	answered, total := s.sess.Progress()
	cw := layout.ContentWidth(width)

	var b strings.Builder
	b.WriteString("\n")

	bar := components.NewProgressBar("Progress", float64(answered)/float64(total), false, cw)
	bar.Caption = fmt.Sprintf("%d/%d", answered, total)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	heading := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Width(cw)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		heading.Render(fmt.Sprintf("Question %d:", q.Index+1))))
	b.WriteString("\n\n")

	text := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(cw)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, text.Render(q.Text)))
	b.WriteString("\n")

	if names := assessment.CompetenciesForQuestion(q.Index); len(names) > 0 {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Hint.Width(cw).Render("Evidence for: "+strings.Join(names, ", "))))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(cw).Render(s.input.View())))
	b.WriteString("\n")

	n := len([]rune(strings.TrimSpace(s.input.Value())))
	counter := fmt.Sprintf("%d characters (minimum %d)", n, session.MinAnswerLength)
	counterStyle := lipgloss.NewStyle().Foreground(theme.TextDim).Width(cw)
	if n >= session.MinAnswerLength {
		counterStyle = counterStyle.Foreground(theme.Success)
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, counterStyle.Render(counter)))

	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.ErrorText.Width(cw).Render(s.errMsg)))
	}

	return b.String()
}

func (s *InterviewScreen) renderReady(width, height int) string {
	var lines []string

	lines = append(lines, lipgloss.NewStyle().Foreground(theme.Success).Bold(true).
		Render("You have completed all the questions!"))
	lines = append(lines, "")

	switch {
	case s.evaluating:
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Accent).
			Render(spinnerFrames[s.frame]+" Analyzing your responses..."))
	case s.evalErr != nil:
		lines = append(lines, theme.ErrorText.Width(layout.ContentWidth(width)).Align(lipgloss.Center).
			Render(describeError(s.evalErr)))
		lines = append(lines, "")
		lines = append(lines, theme.Hint.Render("Your answers are kept. Press Enter to try again."))
	default:
		lines = append(lines, theme.Body.Render("Press Enter to analyze results."))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, lines...))
}

// describeError prefers the short cause of an evaluation failure.
func describeError(err error) string {
	var cfgErr *evaluation.ConfigError
	if errors.As(err, &cfgErr) {
		return "Evaluation is not configured: " + cfgErr.Err.Error()
	}
	var evalErr *evaluation.Error
	if errors.As(err, &evalErr) {
		return "Evaluation failed: " + evalErr.Cause
	}
	return err.Error()
}

func renderQuitConfirm(width, height int) string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("Leave the assessment?"),
		"",
		theme.Body.Render("Your answers so far will be discarded."),
		"",
		theme.Hint.Render("y to leave, n to keep going"),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, theme.Card.Render(content))
}
