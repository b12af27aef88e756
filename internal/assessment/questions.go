package assessment

import "fmt"

// Question is one fixed interview question. Index is its position in the
// bank and is what competency evidence lists refer to.
type Question struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// Answer is a submitted response to the question at QuestionIndex.
type Answer struct {
	QuestionIndex int    `json:"question_index"`
	Text          string `json:"text"`
}

// QuestionCount is the number of questions in the bank.
var QuestionCount = len(questionTexts)

var questionTexts = []string{
	"What is the most significant professional risk you have taken, and what was the outcome?",
	"How do you typically handle frustrations or conflicts in the workplace?",
	"Do you tend to focus more on strategic planning or immediate action in your work, and why?",
	"What is the most recent skill or professional development you have pursued, and how has it impacted your work?",
	"On a scale of 1 to 10, how would you rate your professional self-worth, and what factors contribute to that rating?",
	"If you could collaborate with any historical business leader, who would it be and why?",
	"What situations or behaviors trigger impatience for you at work?",
	"What aspects of your professional life energize and motivate you the most?",
	"In your career, do you prioritize financial gain or the ability to influence others, and why?",
	"Can you describe a time when you felt professionally challenged or threatened, and how you responded?",
	"What are your typical work hours, and how do you maintain a balance between work and personal life?",
	"Is the reputation of your employer more important to you than your specific role, or vice versa? Please explain.",
	"Which professional field or project are you most passionate about, and what draws you to it?",
	"Have you ever doubted a professional decision you made? If so, how did you address that doubt?",
	"When experiencing stress at work, do you prefer to seek support from others or handle it on your own?",
	"What are three key professional lessons you have learned throughout your career?",
	"In your work, do you prioritize efficiency or quality, and how do you balance the two?",
	"If asked, what might your toughest competitor say about your professional approach?",
	"If you could change one aspect of your professional behavior without any judgment, what would it be and why?",
	"What do you consider to be your core professional strength, and how has it contributed to your success?",
}

// Questions returns the question bank in display order.
func Questions() []Question {
	out := make([]Question, len(questionTexts))
	for i, text := range questionTexts {
		out[i] = Question{Index: i, Text: text}
	}
	return out
}

// GetQuestion returns the question at idx.
func GetQuestion(idx int) (Question, error) {
	if idx < 0 || idx >= len(questionTexts) {
		return Question{}, fmt.Errorf("question index %d out of range [0,%d)", idx, len(questionTexts))
	}
	return Question{Index: idx, Text: questionTexts[idx]}, nil
}
