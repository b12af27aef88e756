// Package evaluation turns a completed interview into a scored competency
// assessment: it builds the evaluator prompt, calls the LLM, validates the
// reply and summarizes the result.
package evaluation

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/abhisek/compass/internal/assessment"
)

// SystemPrompt is the fixed system instruction sent with every evaluation.
const SystemPrompt = "You are a professional evaluator."

type promptData struct {
	Competencies []promptCompetency
}

type promptCompetency struct {
	Name       string
	Definition string
	Levels     []promptLevel
	Evidence   []promptEvidence
}

type promptLevel struct {
	Score int
	Text  string
}

type promptEvidence struct {
	Question string
	Answer   string
}

var promptTemplate = template.Must(template.New("evaluation").Parse(
	`You are an expert evaluator using the Professional Compass Framework to assess a candidate's responses. Return a JSON object with the following structure:

{
  "competencies": [{{range $i, $c := .Competencies}}{{if $i}},{{end}}
    {
      "competency": "{{$c.Name}}",
      "score": <integer from 1 to 5>,
      "justification": "<explanation of why this score was given>"
    }{{end}}
  ]
}

Include exactly one entry per competency, in the order shown above, and use the competency names exactly as written. Evaluate the candidate's responses against each competency below and score strictly according to its scoring rubric.
{{range .Competencies}}
Competency: {{.Name}}
Definition: {{.Definition}}
Scoring Rubric:
{{range .Levels}}{{.Score}}: {{.Text}}
{{end}}{{range .Evidence}}
Question: {{.Question}}
Response: {{.Answer}}
{{end}}{{end}}`))

// BuildPrompt renders the evaluation prompt for a complete set of answers.
// Output depends only on its inputs.
//
// answers must hold exactly one answer per question, where answers[i]
// answers questions[i]. Violations are programming errors and panic.
func BuildPrompt(questions []assessment.Question, competencies []assessment.Competency, answers []assessment.Answer) string {
	if len(answers) != len(questions) {
		panic(fmt.Sprintf("evaluation: %d answers for %d questions", len(answers), len(questions)))
	}
	for i, a := range answers {
		if a.QuestionIndex != i {
			panic(fmt.Sprintf("evaluation: answer %d is for question %d", i, a.QuestionIndex))
		}
	}

	data := promptData{Competencies: make([]promptCompetency, 0, len(competencies))}
	for _, c := range competencies {
		pc := promptCompetency{Name: c.Name, Definition: c.Definition}
		for _, score := range assessment.RubricScores {
			pc.Levels = append(pc.Levels, promptLevel{Score: score, Text: c.Rubric[score]})
		}
		for _, idx := range c.Evidence {
			if idx < 0 || idx >= len(questions) {
				panic(fmt.Sprintf("evaluation: competency %q references question %d of %d", c.Name, idx, len(questions)))
			}
			pc.Evidence = append(pc.Evidence, promptEvidence{
				Question: questions[idx].Text,
				Answer:   answers[idx].Text,
			})
		}
		data.Competencies = append(data.Competencies, pc)
	}

	var buf bytes.Buffer
	if err := promptTemplate.Execute(&buf, data); err != nil {
		panic(fmt.Sprintf("evaluation: render prompt: %v", err))
	}
	return buf.String()
}

// Prompt renders the evaluation prompt for answers using the built-in
// question bank and taxonomy.
func Prompt(answers []assessment.Answer) string {
	return BuildPrompt(assessment.Questions(), assessment.Competencies(), answers)
}
