package service

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lequiz/lequiz-backend/internal/model"
)

// Navigation errors of the attempt state machine.
var (
	ErrNoQuestions     = errors.New("quiz has no questions")
	ErrAttemptFinished = errors.New("attempt already finished")
	ErrFirstQuestion   = errors.New("already at the first question")
	ErrLastQuestion    = errors.New("already at the last question")
	ErrNotLastQuestion = errors.New("finish is only allowed on the last question")
)

// AttemptStatus is the lifecycle state of an attempt.
type AttemptStatus string

const (
	AttemptActive   AttemptStatus = "ACTIVE"
	AttemptFinished AttemptStatus = "FINISHED"
)

// Attempt is one participant's pass through a quiz: a cursor over the
// question sequence plus the session-local answer set. It holds no I/O;
// AttemptService persists it between HTTP calls.
type Attempt struct {
	ID            uuid.UUID       `json:"id"`
	QuizID        string          `json:"quiz_id"`
	ParticipantID string          `json:"participant_id"`
	Cursor        int             `json:"cursor"`
	Answers       model.AnswerSet `json:"answers"`
	Status        AttemptStatus   `json:"status"`
	StartedAt     time.Time       `json:"started_at"`
}

// QuestionView is what a participant sees at one position: the sanitized
// question, its case-study context, progress among answerable questions,
// and any previously recorded answer for pre-filling.
type QuestionView struct {
	AttemptID uuid.UUID          `json:"attempt_id"`
	Position  int                `json:"position"`
	Type      model.QuestionType `json:"type"`
	Text      string             `json:"text"`
	Options   []string           `json:"options,omitempty"`

	// CaseContext is the text of the nearest preceding case block, empty
	// when none applies or when the question itself is a case block.
	CaseContext string `json:"case_context,omitempty"`

	// Number is the 1-based rank among answerable questions, 0 for a case
	// block. AnswerableTotal excludes case blocks as well.
	Number          int `json:"number"`
	AnswerableTotal int `json:"answerable_total"`

	First bool `json:"first"`
	Last  bool `json:"last"`

	Recorded *model.AnswerValue `json:"recorded,omitempty"`
}

// NewAttempt opens an attempt at the first question. The participant id must
// be non-empty after trimming; this is the Start -> Presenting(0) transition.
func NewAttempt(quiz *model.Quiz, participantID string) (*Attempt, error) {
	participantID = strings.TrimSpace(participantID)
	if participantID == "" {
		return nil, &model.ValidationError{Field: "participant_id", Reason: "l'identifiant du participant est requis"}
	}
	if len(quiz.Questions) == 0 {
		return nil, ErrNoQuestions
	}
	return &Attempt{
		ID:            uuid.New(),
		QuizID:        quiz.ID,
		ParticipantID: participantID,
		Cursor:        0,
		Answers:       make(model.AnswerSet),
		Status:        AttemptActive,
		StartedAt:     time.Now().UTC(),
	}, nil
}

// commit records the in-flight answer for the current question. It runs
// exactly once per navigation action, immediately before the cursor moves.
// An empty text answer is dropped so a previously recorded answer survives;
// an mcq selection always overwrites.
func (a *Attempt) commit(quiz *model.Quiz, ans *model.AnswerValue) error {
	if ans == nil {
		return nil
	}
	q := &quiz.Questions[a.Cursor]
	switch q.Type {
	case model.QuestionTypeMCQ:
		idx, ok := ans.Index()
		if !ok {
			if ans.IsZero() {
				return nil
			}
			return &model.ValidationError{Field: "answer", Reason: "un index d'option est attendu"}
		}
		if idx < 0 || idx >= len(q.Options) {
			return &model.ValidationError{Field: "answer", Reason: "index d'option hors limites"}
		}
		a.Answers[a.Cursor] = model.SelectedAnswer(idx)
	case model.QuestionTypeText:
		text := strings.TrimSpace(ans.String())
		if text == "" {
			return nil
		}
		a.Answers[a.Cursor] = model.TextAnswer(text)
	case model.QuestionTypeCase:
		// Nothing to record for a narrative block.
	}
	return nil
}

// Prev commits the in-flight answer and moves the cursor back one question.
func (a *Attempt) Prev(quiz *model.Quiz, ans *model.AnswerValue) error {
	if a.Status == AttemptFinished {
		return ErrAttemptFinished
	}
	if a.Cursor == 0 {
		return ErrFirstQuestion
	}
	if err := a.commit(quiz, ans); err != nil {
		return err
	}
	a.Cursor--
	return nil
}

// Next commits the in-flight answer and advances the cursor one question.
func (a *Attempt) Next(quiz *model.Quiz, ans *model.AnswerValue) error {
	if a.Status == AttemptFinished {
		return ErrAttemptFinished
	}
	if a.Cursor >= len(quiz.Questions)-1 {
		return ErrLastQuestion
	}
	if err := a.commit(quiz, ans); err != nil {
		return err
	}
	a.Cursor++
	return nil
}

// Finish terminates the attempt from the last question. When that question
// is a case block, finishing is a plain close with no scoring and a nil
// summary; otherwise the in-flight answer is committed and the answer set
// graded. The attempt is terminal either way.
func (a *Attempt) Finish(quiz *model.Quiz, ans *model.AnswerValue) (*ScoreSummary, error) {
	if a.Status == AttemptFinished {
		return nil, ErrAttemptFinished
	}
	if a.Cursor != len(quiz.Questions)-1 {
		return nil, ErrNotLastQuestion
	}
	if !quiz.Questions[a.Cursor].Answerable() {
		a.Status = AttemptFinished
		return nil, nil
	}
	if err := a.commit(quiz, ans); err != nil {
		return nil, err
	}
	a.Status = AttemptFinished
	sum := Score(quiz, a.Answers)
	return &sum, nil
}

// View renders the current position. The case context is recomputed by a
// backward scan on every call since the cursor moves in both directions.
func (a *Attempt) View(quiz *model.Quiz) *QuestionView {
	q := &quiz.Questions[a.Cursor]
	view := &QuestionView{
		AttemptID:       a.ID,
		Position:        a.Cursor,
		Type:            q.Type,
		Text:            q.Text,
		AnswerableTotal: quiz.AnswerableCount(),
		First:           a.Cursor == 0,
		Last:            a.Cursor == len(quiz.Questions)-1,
	}
	if q.Type == model.QuestionTypeMCQ {
		view.Options = append([]string(nil), q.Options...)
	}
	if q.Answerable() {
		for i := 0; i <= a.Cursor; i++ {
			if quiz.Questions[i].Answerable() {
				view.Number++
			}
		}
		for i := a.Cursor - 1; i >= 0; i-- {
			if quiz.Questions[i].Type == model.QuestionTypeCase {
				view.CaseContext = quiz.Questions[i].Text
				break
			}
		}
		if recorded, ok := a.Answers[a.Cursor]; ok {
			r := recorded
			view.Recorded = &r
		}
	}
	return view
}
