package model

import (
	"fmt"
	"strings"
	"time"
)

// QuestionType tags the question variant.
type QuestionType string

const (
	// QuestionTypeMCQ is a multiple-choice question answered by option index.
	QuestionTypeMCQ QuestionType = "mcq"
	// QuestionTypeText is a free-text question matched against an expected string.
	QuestionTypeText QuestionType = "text"
	// QuestionTypeCase is a narrative context block. It is never answered or
	// scored and frames the questions that follow it, up to the next case block.
	QuestionTypeCase QuestionType = "case"
)

// Question is one entry of a quiz. The Type tag decides which fields carry
// meaning; Validate enforces that the other fields stay empty.
type Question struct {
	Type QuestionType `json:"type"`
	Text string       `json:"text"`

	// Options and Answer belong to mcq questions: Answer indexes Options.
	Options []string `json:"options,omitempty"`
	Answer  *int     `json:"answer,omitempty"`

	// Expected is the reference answer of a text question. Matching is
	// trimmed and case-insensitive on both sides.
	Expected string `json:"expected,omitempty"`

	// Points is the weight of an answerable question, always >= 1 after
	// Normalize. Case questions carry no points.
	Points int `json:"points,omitempty"`
}

// Quiz is an ordered question sequence under a caller-chosen string id.
type Quiz struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Questions   []Question `json:"questions"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ValidationError reports which field of a quiz document broke which rule.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// Answerable reports whether the question counts toward scoring and progress.
func (q *Question) Answerable() bool {
	return q.Type != QuestionTypeCase
}

// Normalize trims user-entered text and applies the points default for
// answerable questions. Call before Validate.
func (q *Question) Normalize() {
	q.Text = strings.TrimSpace(q.Text)
	q.Expected = strings.TrimSpace(q.Expected)
	for i, opt := range q.Options {
		q.Options[i] = strings.TrimSpace(opt)
	}
	if q.Answerable() && q.Points == 0 {
		q.Points = 1
	}
	if q.Type == QuestionTypeCase {
		q.Points = 0
	}
}

// Validate checks the variant rules of a single question. The field prefix
// (e.g. "questions[3]") scopes the reported field name.
func (q *Question) Validate(prefix string) error {
	if q.Text == "" {
		return invalid(prefix+".text", "le texte de la question est requis")
	}
	switch q.Type {
	case QuestionTypeMCQ:
		if len(q.Options) < 2 {
			return invalid(prefix+".options", "au moins 2 options sont requises")
		}
		seen := make(map[string]struct{}, len(q.Options))
		for i, opt := range q.Options {
			if opt == "" {
				return invalid(fmt.Sprintf("%s.options[%d]", prefix, i), "option vide")
			}
			if _, dup := seen[opt]; dup {
				return invalid(fmt.Sprintf("%s.options[%d]", prefix, i), "option dupliquée")
			}
			seen[opt] = struct{}{}
		}
		if q.Answer == nil {
			return invalid(prefix+".answer", "l'index de la bonne réponse est requis")
		}
		if *q.Answer < 0 || *q.Answer >= len(q.Options) {
			return invalid(prefix+".answer", "index hors limites")
		}
		if q.Expected != "" {
			return invalid(prefix+".expected", "réservé aux questions de type text")
		}
	case QuestionTypeText:
		if q.Expected == "" {
			return invalid(prefix+".expected", "la réponse attendue est requise")
		}
		if len(q.Options) > 0 || q.Answer != nil {
			return invalid(prefix+".options", "réservé aux questions de type mcq")
		}
	case QuestionTypeCase:
		if len(q.Options) > 0 || q.Answer != nil || q.Expected != "" || q.Points != 0 {
			return invalid(prefix+".type", "un bloc case ne porte ni réponse ni points")
		}
		return nil
	default:
		return invalid(prefix+".type", "type de question inconnu")
	}
	if q.Points < 1 {
		return invalid(prefix+".points", "les points doivent être >= 1")
	}
	return nil
}

// Clone returns a deep copy sharing no memory with the receiver.
func (q Question) Clone() Question {
	out := q
	if q.Options != nil {
		out.Options = append([]string(nil), q.Options...)
	}
	if q.Answer != nil {
		a := *q.Answer
		out.Answer = &a
	}
	return out
}

// Normalize trims metadata and normalizes every question in place.
func (z *Quiz) Normalize() {
	z.ID = strings.TrimSpace(z.ID)
	z.Title = strings.TrimSpace(z.Title)
	z.Description = strings.TrimSpace(z.Description)
	for i := range z.Questions {
		z.Questions[i].Normalize()
	}
}

// Validate checks the whole document. It must pass before any storage call.
func (z *Quiz) Validate() error {
	if z.ID == "" {
		return invalid("id", "l'identifiant du quiz est requis")
	}
	if z.Title == "" {
		return invalid("title", "le titre est requis")
	}
	if len(z.Questions) == 0 {
		return invalid("questions", "au moins une question est requise")
	}
	for i := range z.Questions {
		if err := z.Questions[i].Validate(fmt.Sprintf("questions[%d]", i)); err != nil {
			return err
		}
	}
	return nil
}

// AnswerableCount returns the number of scored (non-case) questions.
func (z *Quiz) AnswerableCount() int {
	n := 0
	for i := range z.Questions {
		if z.Questions[i].Answerable() {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the quiz. Authoring drafts re-hydrate from a
// clone so draft edits never alias the stored document.
func (z *Quiz) Clone() *Quiz {
	out := *z
	out.Questions = make([]Question, len(z.Questions))
	for i := range z.Questions {
		out.Questions[i] = z.Questions[i].Clone()
	}
	return &out
}

// Sanitized returns a participant-facing copy with all reference answers
// stripped.
func (z *Quiz) Sanitized() *Quiz {
	out := z.Clone()
	for i := range out.Questions {
		out.Questions[i].Answer = nil
		out.Questions[i].Expected = ""
	}
	return out
}
