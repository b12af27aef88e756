package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/compass/internal/assessment"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "List the interview questions and the competencies they evidence",
	RunE: func(cmd *cobra.Command, _ []string) error {
		showTaxonomy, _ := cmd.Flags().GetBool("competencies")
		if showTaxonomy {
			printCompetencies(cmd.OutOrStdout())
			return nil
		}
		printQuestions(cmd.OutOrStdout())
		return nil
	},
}

func printQuestions(w io.Writer) {
	for _, q := range assessment.Questions() {
		fmt.Fprintf(w, "%2d. %s\n", q.Index+1, q.Text)
		if names := assessment.CompetenciesForQuestion(q.Index); len(names) > 0 {
			fmt.Fprintf(w, "    -> %s\n", strings.Join(names, ", "))
		}
	}
}

func printCompetencies(w io.Writer) {
	for i, c := range assessment.Competencies() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, c.Name)
		fmt.Fprintln(w, strings.Repeat("─", len(c.Name)))
		fmt.Fprintln(w, c.Definition)

		evidence := make([]string, len(c.Evidence))
		for j, idx := range c.Evidence {
			evidence[j] = fmt.Sprintf("Q%d", idx+1)
		}
		fmt.Fprintf(w, "Evidence: %s\n", strings.Join(evidence, ", "))

		for _, score := range assessment.RubricScores {
			fmt.Fprintf(w, "  %d: %s\n", score, c.Rubric[score])
		}
	}
}

func init() {
	questionsCmd.Flags().BoolP("competencies", "c", false, "show the competency taxonomy and scoring rubric instead")
}
