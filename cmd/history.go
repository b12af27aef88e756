package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/compass/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List completed assessments",
	RunE: func(cmd *cobra.Command, _ []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		verbose, _ := cmd.Flags().GetBool("verbose")
		since, _ := cmd.Flags().GetDuration("since")
		olderThan, _ := cmd.Flags().GetDuration("older-than")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		s, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryAssessments(cmd.Context(), queryOpts(limit, since, olderThan))
		if err != nil {
			return fmt.Errorf("query assessments: %w", err)
		}

		printHistory(cmd.OutOrStdout(), events, verbose)
		return nil
	},
}

// queryOpts builds the store query for a row limit and optional age
// bounds: entries newer than since and older than olderThan. Zero means
// unbounded.
func queryOpts(limit int, since, olderThan time.Duration) store.QueryOpts {
	opts := store.QueryOpts{Limit: limit}
	now := time.Now()
	if since > 0 {
		opts.From = now.Add(-since)
	}
	if olderThan > 0 {
		opts.To = now.Add(-olderThan)
	}
	return opts
}

func printHistory(w io.Writer, events []store.AssessmentEvent, verbose bool) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No completed assessments yet.")
		return
	}

	fmt.Fprintf(w, "%-5s  %-19s  %-7s  %-6s  %s\n", "ID", "Timestamp", "Score", "%", "Tier")
	fmt.Fprintln(w, strings.Repeat("─", 64))

	for _, e := range events {
		fmt.Fprintf(w, "%-5d  %-19s  %-7s  %-6s  %s\n",
			e.ID,
			e.Timestamp.Local().Format("2006-01-02 15:04:05"),
			fmt.Sprintf("%d/%d", e.Total, e.Possible),
			fmt.Sprintf("%.1f", e.Percentage),
			e.Tier,
		)
		if !verbose {
			continue
		}
		for _, sc := range e.Scores {
			fmt.Fprintf(w, "       %-40s  %d\n", sc.Competency, sc.Score)
		}
		if e.Model != "" {
			fmt.Fprintf(w, "       scored by %s\n", e.Model)
		}
	}
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of assessments to show")
	historyCmd.Flags().BoolP("verbose", "v", false, "Show per-competency scores")
	historyCmd.Flags().Duration("since", 0, "Only show assessments newer than this (e.g. 168h)")
	historyCmd.Flags().Duration("older-than", 0, "Only show assessments older than this")
}
