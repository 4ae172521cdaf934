package service

import (
	"strings"

	"github.com/lequiz/lequiz-backend/internal/model"
)

// ScoreSummary is the outcome of grading one answer set against a quiz.
type ScoreSummary struct {
	EarnedPoints    int `json:"earned_points"`
	TotalPoints     int `json:"total_points"`
	CorrectCount    int `json:"correct_count"`
	AnswerableTotal int `json:"answerable_total"`
}

// Score grades an answer set against a quiz. Case questions contribute
// nothing; an mcq answer is correct when it numerically equals the answer
// index; a text answer is correct when it matches the expected string after
// trimming and lower-casing both sides. Pure and idempotent.
func Score(quiz *model.Quiz, answers model.AnswerSet) ScoreSummary {
	var sum ScoreSummary
	for i := range quiz.Questions {
		q := &quiz.Questions[i]
		if !q.Answerable() {
			continue
		}
		sum.AnswerableTotal++
		sum.TotalPoints += q.Points
		if questionCorrect(q, answers[i]) {
			sum.CorrectCount++
			sum.EarnedPoints += q.Points
		}
	}
	return sum
}

func questionCorrect(q *model.Question, recorded model.AnswerValue) bool {
	switch q.Type {
	case model.QuestionTypeMCQ:
		idx, ok := recorded.Index()
		return ok && q.Answer != nil && idx == *q.Answer
	case model.QuestionTypeText:
		got := strings.ToLower(strings.TrimSpace(recorded.String()))
		want := strings.ToLower(strings.TrimSpace(q.Expected))
		return got != "" && got == want
	default:
		return false
	}
}
