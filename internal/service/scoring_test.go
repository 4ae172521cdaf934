package service

import (
	"testing"

	"github.com/lequiz/lequiz-backend/internal/model"
)

func intPtr(n int) *int { return &n }

// scoringQuiz has one unscored case block and two answerable questions
// worth 3 points in total.
func scoringQuiz() *model.Quiz {
	z := &model.Quiz{
		ID:    "culture-generale",
		Title: "Culture générale",
		Questions: []model.Question{
			{Type: model.QuestionTypeCase, Text: "Un peu de géographie."},
			{Type: model.QuestionTypeMCQ, Text: "2+2 ?", Options: []string{"3", "4"}, Answer: intPtr(1)},
			{Type: model.QuestionTypeText, Text: "Capitale de la France ?", Expected: "Paris", Points: 2},
		},
	}
	z.Normalize()
	return z
}

func TestScoreAllCorrect(t *testing.T) {
	quiz := scoringQuiz()
	answers := model.AnswerSet{
		1: model.SelectedAnswer(1),
		2: model.TextAnswer("Paris"),
	}

	sum := Score(quiz, answers)
	if sum.EarnedPoints != 3 || sum.TotalPoints != 3 {
		t.Fatalf("expected 3/3 points, got %d/%d", sum.EarnedPoints, sum.TotalPoints)
	}
	if sum.CorrectCount != 2 || sum.AnswerableTotal != 2 {
		t.Fatalf("expected 2/2 correct, got %d/%d", sum.CorrectCount, sum.AnswerableTotal)
	}
}

func TestScoreAllWrong(t *testing.T) {
	quiz := scoringQuiz()
	answers := model.AnswerSet{
		1: model.SelectedAnswer(0),
		2: model.TextAnswer("Lyon"),
	}

	sum := Score(quiz, answers)
	if sum.EarnedPoints != 0 || sum.TotalPoints != 3 {
		t.Fatalf("expected 0/3 points, got %d/%d", sum.EarnedPoints, sum.TotalPoints)
	}
	if sum.CorrectCount != 0 || sum.AnswerableTotal != 2 {
		t.Fatalf("expected 0/2 correct, got %d/%d", sum.CorrectCount, sum.AnswerableTotal)
	}
}

func TestScoreNumericStringSelectsOption(t *testing.T) {
	quiz := scoringQuiz()
	answers := model.AnswerSet{1: model.TextAnswer("1")}

	sum := Score(quiz, answers)
	if sum.CorrectCount != 1 {
		t.Fatalf("numeric string should match the answer index, got %d correct", sum.CorrectCount)
	}
}

func TestScoreTextMatchIsTrimmedAndCaseInsensitive(t *testing.T) {
	quiz := scoringQuiz()
	answers := model.AnswerSet{2: model.TextAnswer("  pArIs ")}

	sum := Score(quiz, answers)
	if sum.CorrectCount != 1 || sum.EarnedPoints != 2 {
		t.Fatalf("expected a 2-point match, got correct=%d earned=%d", sum.CorrectCount, sum.EarnedPoints)
	}
}

func TestScoreEmptyTextNeverMatches(t *testing.T) {
	quiz := &model.Quiz{
		ID:    "q",
		Title: "q",
		Questions: []model.Question{
			{Type: model.QuestionTypeText, Text: "?", Expected: "  "},
		},
	}
	quiz.Normalize()

	sum := Score(quiz, model.AnswerSet{0: model.TextAnswer("   ")})
	if sum.CorrectCount != 0 {
		t.Fatal("empty answer matched an empty expected string")
	}
}

func TestScoreSkipsUnanswered(t *testing.T) {
	quiz := scoringQuiz()
	sum := Score(quiz, model.AnswerSet{})
	if sum.AnswerableTotal != 2 || sum.TotalPoints != 3 {
		t.Fatalf("totals must not depend on answers, got total=%d points=%d", sum.AnswerableTotal, sum.TotalPoints)
	}
	if sum.CorrectCount != 0 || sum.EarnedPoints != 0 {
		t.Fatal("unanswered questions scored as correct")
	}
}

func TestScoreIsIdempotent(t *testing.T) {
	quiz := scoringQuiz()
	answers := model.AnswerSet{
		1: model.SelectedAnswer(1),
		2: model.TextAnswer("paris"),
	}

	first := Score(quiz, answers)
	second := Score(quiz, answers)
	if first != second {
		t.Fatalf("scoring is not idempotent: %+v vs %+v", first, second)
	}
}
