package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/compass/internal/assessment"
	"github.com/abhisek/compass/internal/evaluation"
	"github.com/abhisek/compass/internal/session"
)

const (
	PromptEvaluate  = "Evaluate my answers"
	PromptTryAgain  = "Try again"
	PromptDetails   = "Show details"
	PromptStartOver = "Start over"
	PromptQuit      = "Quit"
)

var errQuit = errors.New("quit requested")

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Run the interview as line prompts instead of the full-screen UI",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log, err := newLogger(cfg, "")
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		client := evaluation.Open(ctx, cfg.LLMConfig(), evaluation.DefaultClientConfig(), st.EventRepo(), log)
		if err := client.Err(); err != nil {
			fmt.Fprintln(os.Stderr, "Evaluation unavailable:", err)
			fmt.Fprintln(os.Stderr, "You can still answer the questions.")
		}

		sess := session.New(client,
			session.WithID(uuid.NewString()),
			session.WithEventRepo(st.EventRepo()),
			session.WithLogger(log),
		)

		err = interview(ctx, sess, cmd.OutOrStdout())
		if errors.Is(err, errQuit) || errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			log.Debug("interview abandoned", zap.String("session", sess.ID()))
			return nil
		}
		return err
	},
}

// interview loops over answer, evaluate and results until the user quits.
func interview(ctx context.Context, sess *session.Session, w io.Writer) error {
	for {
		if err := askQuestions(sess, w); err != nil {
			return err
		}

		result, err := evaluate(ctx, sess, w)
		if err != nil {
			return err
		}

		printResults(w, result, false)

		again, err := afterResults(w, result)
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
		sess.Reset()
	}
}

func askQuestions(sess *session.Session, w io.Writer) error {
	for {
		q, ok := sess.CurrentQuestion()
		if !ok {
			fmt.Fprintln(w, "\nYou have completed all the questions!")
			return nil
		}

		fmt.Fprintf(w, "\nQuestion %d of %d\n%s\n", q.Index+1, assessment.QuestionCount, q.Text)
		if names := assessment.CompetenciesForQuestion(q.Index); len(names) > 0 {
			fmt.Fprintf(w, "Evidence for: %s\n", strings.Join(names, ", "))
		}

		answerPrompt := promptui.Prompt{
			Label:    "Answer",
			Validate: validateAnswer,
		}
		text, err := answerPrompt.Run()
		if err != nil {
			return err
		}
		if err := sess.SubmitAnswer(text); err != nil {
			var verr *session.ValidationError
			if errors.As(err, &verr) {
				fmt.Fprintln(w, "Please provide a more detailed response.")
				continue
			}
			return err
		}
	}
}

// validateAnswer mirrors the session's length check so the prompt can
// reject short answers while typing.
func validateAnswer(input string) error {
	if n := utf8.RuneCountInString(strings.TrimSpace(input)); n < session.MinAnswerLength {
		return &session.ValidationError{Length: n}
	}
	return nil
}

func evaluate(ctx context.Context, sess *session.Session, w io.Writer) (*evaluation.Result, error) {
	items := []string{PromptEvaluate, PromptQuit}
	for {
		sel := promptui.Select{Label: "All answers recorded", Items: items}
		_, choice, err := sel.Run()
		if err != nil {
			return nil, err
		}
		if choice == PromptQuit {
			return nil, errQuit
		}

		fmt.Fprintln(w, "Analyzing your responses...")
		result, err := sess.RunEvaluation(ctx)
		if err == nil {
			return result, nil
		}
		fmt.Fprintln(w, describeEvalError(err))
		items = []string{PromptTryAgain, PromptQuit}
	}
}

func describeEvalError(err error) string {
	var cfgErr *evaluation.ConfigError
	if errors.As(err, &cfgErr) {
		return "Evaluation is not configured: " + cfgErr.Err.Error()
	}
	return "Evaluation failed: " + err.Error()
}

func afterResults(w io.Writer, result *evaluation.Result) (bool, error) {
	items := []string{PromptDetails, PromptStartOver, PromptQuit}
	for {
		sel := promptui.Select{Label: "What next?", Items: items}
		_, choice, err := sel.Run()
		if err != nil {
			return false, err
		}
		switch choice {
		case PromptDetails:
			printResults(w, result, true)
			items = []string{PromptStartOver, PromptQuit}
		case PromptStartOver:
			return true, nil
		default:
			return false, nil
		}
	}
}

// printResults writes the score table and overall assessment. With
// details each competency is followed by its justification.
func printResults(w io.Writer, result *evaluation.Result, details bool) {
	summary := evaluation.Summarize(result)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Competency Scores")
	fmt.Fprintln(w, strings.Repeat("─", 60))
	for _, c := range result.Competencies {
		fmt.Fprintf(w, "%-40s  %d/%d\n", c.Competency, c.Score, assessment.MaxScore)
		if details {
			fmt.Fprintf(w, "  %s\n", c.Justification)
		}
	}
	fmt.Fprintln(w, strings.Repeat("─", 60))
	fmt.Fprintln(w, "Overall Assessment")
	fmt.Fprintf(w, "Total Score: %d/%d (%.1f%%)\n", summary.Total, summary.Possible, summary.Percentage)
	fmt.Fprintln(w, summary.Tier.Message())
}
