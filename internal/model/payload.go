package model

// QuestionPayload is the wire form of a question for authoring endpoints.
// Binding tags cover per-field shape; cross-field rules (answer index range,
// option uniqueness, variant exclusivity) live in Question.Validate.
type QuestionPayload struct {
	Type     string   `json:"type" binding:"required,oneof=mcq text case"`
	Text     string   `json:"text" binding:"required,min=1,max=2000"`
	Options  []string `json:"options" binding:"omitempty,max=10,dive,min=1,max=500"`
	Answer   *int     `json:"answer" binding:"omitempty,min=0"`
	Expected string   `json:"expected" binding:"omitempty,max=500"`
	Points   int      `json:"points" binding:"omitempty,min=1"`
}

// ToQuestion maps the payload onto the domain type, unnormalized.
func (p *QuestionPayload) ToQuestion() Question {
	return Question{
		Type:     QuestionType(p.Type),
		Text:     p.Text,
		Options:  p.Options,
		Answer:   p.Answer,
		Expected: p.Expected,
		Points:   p.Points,
	}
}

// QuizPayload is the wire form of a full quiz document for create/replace.
// The id is optional here because replace takes it from the URL.
type QuizPayload struct {
	ID          string            `json:"id" binding:"omitempty,max=64"`
	Title       string            `json:"title" binding:"required,min=1,max=255"`
	Description string            `json:"description" binding:"max=2000"`
	Questions   []QuestionPayload `json:"questions" binding:"required,min=1,dive"`
}

// ToQuiz maps the payload onto the domain type, unnormalized.
func (p *QuizPayload) ToQuiz() *Quiz {
	questions := make([]Question, len(p.Questions))
	for i := range p.Questions {
		questions[i] = p.Questions[i].ToQuestion()
	}
	return &Quiz{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Questions:   questions,
	}
}

// DraftMetaRequest updates the metadata of the authoring draft.
type DraftMetaRequest struct {
	QuizID      string `json:"quiz_id" binding:"omitempty,max=64"`
	Title       string `json:"title" binding:"omitempty,max=255"`
	Description string `json:"description" binding:"omitempty,max=2000"`
}

// StartAttemptRequest opens a quiz attempt for a participant.
type StartAttemptRequest struct {
	ParticipantID string `json:"participant_id" binding:"required,min=1,max=64"`
}

// AttemptAnswerRequest carries the in-flight answer committed before a
// navigation action. A missing answer leaves the recorded one untouched.
type AttemptAnswerRequest struct {
	Answer *AnswerValue `json:"answer"`
}
