package service

import (
	"errors"
	"testing"

	"github.com/lequiz/lequiz-backend/internal/model"
)

// attemptQuiz: case, mcq, case, text. Two answerable questions split by a
// second case block.
func attemptQuiz() *model.Quiz {
	z := &model.Quiz{
		ID:    "support-client",
		Title: "Support client",
		Questions: []model.Question{
			{Type: model.QuestionTypeCase, Text: "Un client appelle au sujet d'une facture."},
			{Type: model.QuestionTypeMCQ, Text: "Que faire d'abord ?", Options: []string{"Raccrocher", "Écouter"}, Answer: intPtr(1)},
			{Type: model.QuestionTypeCase, Text: "Le client demande un remboursement."},
			{Type: model.QuestionTypeText, Text: "Quel service contacter ?", Expected: "facturation", Points: 2},
		},
	}
	z.Normalize()
	return z
}

func mustAttempt(t *testing.T, quiz *model.Quiz) *Attempt {
	t.Helper()
	a, err := NewAttempt(quiz, "alice")
	if err != nil {
		t.Fatalf("new attempt: %v", err)
	}
	return a
}

func TestNewAttemptRequiresParticipant(t *testing.T) {
	if _, err := NewAttempt(attemptQuiz(), "   "); err == nil {
		t.Fatal("blank participant accepted")
	}
}

func TestNewAttemptRequiresQuestions(t *testing.T) {
	empty := &model.Quiz{ID: "vide", Title: "Vide"}
	if _, err := NewAttempt(empty, "alice"); !errors.Is(err, ErrNoQuestions) {
		t.Fatalf("expected ErrNoQuestions, got %v", err)
	}
}

func TestAttemptStartsAtFirstQuestion(t *testing.T) {
	quiz := attemptQuiz()
	a := mustAttempt(t, quiz)

	view := a.View(quiz)
	if view.Position != 0 || !view.First || view.Last {
		t.Fatalf("unexpected opening view: %+v", view)
	}
	if view.Number != 0 || view.CaseContext != "" {
		t.Fatalf("case block must have no number nor context: %+v", view)
	}
	if view.AnswerableTotal != 2 {
		t.Fatalf("expected 2 answerable questions, got %d", view.AnswerableTotal)
	}
}

func TestViewCaseContextAndNumbering(t *testing.T) {
	quiz := attemptQuiz()
	a := mustAttempt(t, quiz)

	if err := a.Next(quiz, nil); err != nil {
		t.Fatalf("next: %v", err)
	}
	view := a.View(quiz)
	if view.Number != 1 {
		t.Fatalf("expected answerable rank 1, got %d", view.Number)
	}
	if view.CaseContext != quiz.Questions[0].Text {
		t.Fatalf("wrong case context: %q", view.CaseContext)
	}
	if len(view.Options) != 2 {
		t.Fatalf("mcq options missing from view: %+v", view)
	}

	// Skip past the second case block to the text question.
	ans := model.SelectedAnswer(1)
	if err := a.Next(quiz, &ans); err != nil {
		t.Fatalf("next: %v", err)
	}
	if err := a.Next(quiz, nil); err != nil {
		t.Fatalf("next: %v", err)
	}
	view = a.View(quiz)
	if view.Number != 2 || !view.Last {
		t.Fatalf("unexpected final view: %+v", view)
	}
	// The nearest preceding case block wins, not the first one.
	if view.CaseContext != quiz.Questions[2].Text {
		t.Fatalf("wrong case context: %q", view.CaseContext)
	}
}

func TestNavigationBounds(t *testing.T) {
	quiz := attemptQuiz()
	a := mustAttempt(t, quiz)

	if err := a.Prev(quiz, nil); !errors.Is(err, ErrFirstQuestion) {
		t.Fatalf("expected ErrFirstQuestion, got %v", err)
	}

	for i := 0; i < len(quiz.Questions)-1; i++ {
		if err := a.Next(quiz, nil); err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
	}
	if err := a.Next(quiz, nil); !errors.Is(err, ErrLastQuestion) {
		t.Fatalf("expected ErrLastQuestion, got %v", err)
	}
}

func TestRoundTripPreservesAnswers(t *testing.T) {
	quiz := attemptQuiz()
	a := mustAttempt(t, quiz)

	// Answer the mcq, walk to the end, then walk all the way back.
	if err := a.Next(quiz, nil); err != nil {
		t.Fatal(err)
	}
	ans := model.SelectedAnswer(1)
	if err := a.Next(quiz, &ans); err != nil {
		t.Fatal(err)
	}
	if err := a.Next(quiz, nil); err != nil {
		t.Fatal(err)
	}
	text := model.TextAnswer("facturation")
	if err := a.Prev(quiz, &text); err != nil {
		t.Fatal(err)
	}
	if err := a.Prev(quiz, nil); err != nil {
		t.Fatal(err)
	}

	view := a.View(quiz)
	if view.Recorded == nil || view.Recorded.Selected == nil || *view.Recorded.Selected != 1 {
		t.Fatalf("mcq answer lost on the way back: %+v", view.Recorded)
	}
	if got := a.Answers[3]; got.Text != "facturation" {
		t.Fatalf("text answer lost: %+v", got)
	}
}

func TestEmptyTextDoesNotErasePriorAnswer(t *testing.T) {
	quiz := attemptQuiz()
	a := mustAttempt(t, quiz)
	a.Cursor = 3
	a.Answers[3] = model.TextAnswer("facturation")

	empty := model.TextAnswer("   ")
	if err := a.Prev(quiz, &empty); err != nil {
		t.Fatalf("prev: %v", err)
	}
	if got := a.Answers[3]; got.Text != "facturation" {
		t.Fatalf("empty commit erased the recorded answer: %+v", got)
	}
}

func TestMCQAnswerOverwrites(t *testing.T) {
	quiz := attemptQuiz()
	a := mustAttempt(t, quiz)
	a.Cursor = 1
	a.Answers[1] = model.SelectedAnswer(0)

	ans := model.SelectedAnswer(1)
	if err := a.Next(quiz, &ans); err != nil {
		t.Fatalf("next: %v", err)
	}
	if got := a.Answers[1]; got.Selected == nil || *got.Selected != 1 {
		t.Fatalf("mcq answer not overwritten: %+v", got)
	}
}

func TestMCQRejectsOutOfRangeIndex(t *testing.T) {
	quiz := attemptQuiz()
	a := mustAttempt(t, quiz)
	a.Cursor = 1

	ans := model.SelectedAnswer(5)
	err := a.Next(quiz, &ans)
	var vErr *model.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if a.Cursor != 1 {
		t.Fatal("cursor moved despite the rejected answer")
	}
}

func TestFinishOnlyOnLastQuestion(t *testing.T) {
	quiz := attemptQuiz()
	a := mustAttempt(t, quiz)

	if _, err := a.Finish(quiz, nil); !errors.Is(err, ErrNotLastQuestion) {
		t.Fatalf("expected ErrNotLastQuestion, got %v", err)
	}
}

func TestFinishGradesTheAnswerSet(t *testing.T) {
	quiz := attemptQuiz()
	a := mustAttempt(t, quiz)
	a.Cursor = 3
	a.Answers[1] = model.SelectedAnswer(1)

	text := model.TextAnswer(" Facturation ")
	sum, err := a.Finish(quiz, &text)
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	if sum == nil {
		t.Fatal("expected a summary")
	}
	if sum.EarnedPoints != 3 || sum.CorrectCount != 2 || sum.AnswerableTotal != 2 {
		t.Fatalf("unexpected summary: %+v", sum)
	}
	if a.Status != AttemptFinished {
		t.Fatal("attempt not marked finished")
	}
}

func TestFinishOnTrailingCaseSkipsScoring(t *testing.T) {
	quiz := &model.Quiz{
		ID:    "q",
		Title: "q",
		Questions: []model.Question{
			{Type: model.QuestionTypeMCQ, Text: "?", Options: []string{"a", "b"}, Answer: intPtr(0)},
			{Type: model.QuestionTypeCase, Text: "Merci de votre participation."},
		},
	}
	quiz.Normalize()

	a := mustAttempt(t, quiz)
	a.Cursor = 1

	sum, err := a.Finish(quiz, nil)
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	if sum != nil {
		t.Fatalf("trailing case block must not produce a summary, got %+v", sum)
	}
	if a.Status != AttemptFinished {
		t.Fatal("attempt not closed")
	}
}

func TestFinishedAttemptRejectsEverything(t *testing.T) {
	quiz := attemptQuiz()
	a := mustAttempt(t, quiz)
	a.Status = AttemptFinished

	if err := a.Next(quiz, nil); !errors.Is(err, ErrAttemptFinished) {
		t.Fatalf("next on finished attempt: %v", err)
	}
	if err := a.Prev(quiz, nil); !errors.Is(err, ErrAttemptFinished) {
		t.Fatalf("prev on finished attempt: %v", err)
	}
	if _, err := a.Finish(quiz, nil); !errors.Is(err, ErrAttemptFinished) {
		t.Fatalf("double finish: %v", err)
	}
}
