package model

import (
	"errors"
	"testing"
)

func intPtr(n int) *int { return &n }

func mcq(text string, answer int, options ...string) Question {
	return Question{Type: QuestionTypeMCQ, Text: text, Options: options, Answer: intPtr(answer)}
}

func TestQuestionNormalizeDefaultsPoints(t *testing.T) {
	q := mcq("2+2 ?", 1, "3", "4")
	q.Normalize()
	if q.Points != 1 {
		t.Fatalf("expected default 1 point, got %d", q.Points)
	}

	q = Question{Type: QuestionTypeText, Text: "Capitale ?", Expected: "Paris", Points: 5}
	q.Normalize()
	if q.Points != 5 {
		t.Fatalf("explicit points overwritten: got %d", q.Points)
	}

	q = Question{Type: QuestionTypeCase, Text: "Contexte", Points: 3}
	q.Normalize()
	if q.Points != 0 {
		t.Fatalf("case block should carry no points, got %d", q.Points)
	}
}

func TestQuestionValidateMCQ(t *testing.T) {
	cases := []struct {
		name string
		q    Question
		ok   bool
	}{
		{"valid", mcq("2+2 ?", 1, "3", "4"), true},
		{"one option", mcq("2+2 ?", 0, "4"), false},
		{"duplicate options", mcq("2+2 ?", 0, "4", "4"), false},
		{"empty option", mcq("2+2 ?", 0, "4", ""), false},
		{"missing answer", Question{Type: QuestionTypeMCQ, Text: "2+2 ?", Options: []string{"3", "4"}}, false},
		{"answer equals len", mcq("2+2 ?", 2, "3", "4"), false},
		{"negative answer", mcq("2+2 ?", -1, "3", "4"), false},
		{"expected on mcq", Question{Type: QuestionTypeMCQ, Text: "2+2 ?", Options: []string{"3", "4"}, Answer: intPtr(1), Expected: "4"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := tc.q
			q.Normalize()
			err := q.Validate("q")
			if tc.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.ok {
				var vErr *ValidationError
				if !errors.As(err, &vErr) {
					t.Fatalf("expected ValidationError, got %v", err)
				}
			}
		})
	}
}

func TestQuestionValidateText(t *testing.T) {
	q := Question{Type: QuestionTypeText, Text: "Capitale de la France ?", Expected: "Paris"}
	q.Normalize()
	if err := q.Validate("q"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	q = Question{Type: QuestionTypeText, Text: "Capitale ?"}
	if err := q.Validate("q"); err == nil {
		t.Fatal("missing expected answer accepted")
	}

	q = Question{Type: QuestionTypeText, Text: "Capitale ?", Expected: "Paris", Options: []string{"a", "b"}}
	if err := q.Validate("q"); err == nil {
		t.Fatal("options on a text question accepted")
	}
}

func TestQuestionValidateCase(t *testing.T) {
	q := Question{Type: QuestionTypeCase, Text: "Un client se plaint d'une facture."}
	q.Normalize()
	if err := q.Validate("q"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	q = Question{Type: QuestionTypeCase, Text: "Contexte", Answer: intPtr(0)}
	if err := q.Validate("q"); err == nil {
		t.Fatal("answer on a case block accepted")
	}
}

func TestQuestionValidateUnknownType(t *testing.T) {
	q := Question{Type: "essay", Text: "?"}
	if err := q.Validate("q"); err == nil {
		t.Fatal("unknown type accepted")
	}
}

func validQuiz() *Quiz {
	return &Quiz{
		ID:    "culture-generale",
		Title: "Culture générale",
		Questions: []Question{
			{Type: QuestionTypeCase, Text: "Contexte général."},
			mcq("2+2 ?", 1, "3", "4"),
			{Type: QuestionTypeText, Text: "Capitale de la France ?", Expected: "Paris", Points: 2},
		},
	}
}

func TestQuizValidate(t *testing.T) {
	z := validQuiz()
	z.Normalize()
	if err := z.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	z = validQuiz()
	z.ID = "  "
	z.Normalize()
	if err := z.Validate(); err == nil {
		t.Fatal("blank id accepted")
	}

	z = validQuiz()
	z.Title = ""
	if err := z.Validate(); err == nil {
		t.Fatal("missing title accepted")
	}

	z = validQuiz()
	z.Questions = nil
	if err := z.Validate(); err == nil {
		t.Fatal("empty question list accepted")
	}
}

func TestQuizAnswerableCount(t *testing.T) {
	z := validQuiz()
	if got := z.AnswerableCount(); got != 2 {
		t.Fatalf("expected 2 answerable questions, got %d", got)
	}
}

func TestQuizSanitizedStripsReferenceAnswers(t *testing.T) {
	z := validQuiz()
	z.Normalize()
	pub := z.Sanitized()

	for i, q := range pub.Questions {
		if q.Answer != nil || q.Expected != "" {
			t.Fatalf("question %d still carries a reference answer", i)
		}
	}
	// The source document must be untouched.
	if z.Questions[1].Answer == nil || z.Questions[2].Expected == "" {
		t.Fatal("sanitizing mutated the source quiz")
	}
}

func TestQuizCloneIsIndependent(t *testing.T) {
	z := validQuiz()
	cp := z.Clone()
	cp.Questions[1].Options[0] = "changed"
	cp.Questions[1].Text = "changed"
	if z.Questions[1].Options[0] == "changed" || z.Questions[1].Text == "changed" {
		t.Fatal("clone shares memory with the source")
	}
}
