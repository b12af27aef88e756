package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const tableAssessments = "assessment_events"

var assessmentColumns = []string{
	"id", "sequence", "created_at", "session_id", "model",
	"total", "possible", "percentage", "tier", "scores",
}

func (r *eventRepo) AppendAssessment(ctx context.Context, data AssessmentEventData) error {
	scores, err := json.Marshal(data.Scores)
	if err != nil {
		return fmt.Errorf("marshal scores: %w", err)
	}

	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}

	query, args := builder().Insert(tableAssessments).
		Columns(assessmentColumns[1:]...).
		Values(
			seqNum, time.Now().UnixMilli(), data.SessionID, data.Model,
			data.Total, data.Possible, data.Percentage, data.Tier, string(scores),
		).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save assessment event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAssessments(ctx context.Context, opts QueryOpts) ([]AssessmentEvent, error) {
	sel := builder().Select(assessmentColumns...).From(entsql.Table(tableAssessments))
	applyQueryOpts(sel, filterPredicates(opts), opts.Limit)
	query, args := sel.Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query assessments: %w", err)
	}
	defer rows.Close()

	var out []AssessmentEvent
	for rows.Next() {
		var (
			e         AssessmentEvent
			createdAt int64
			scores    string
		)
		if err := rows.Scan(
			&e.ID, &e.Sequence, &createdAt, &e.SessionID, &e.Model,
			&e.Total, &e.Possible, &e.Percentage, &e.Tier, &scores,
		); err != nil {
			return nil, fmt.Errorf("scan assessment: %w", err)
		}
		if err := json.Unmarshal([]byte(scores), &e.Scores); err != nil {
			return nil, fmt.Errorf("decode scores of assessment %d: %w", e.ID, err)
		}
		e.Timestamp = time.UnixMilli(createdAt).UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}
