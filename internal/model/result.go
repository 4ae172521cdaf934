package model

import (
	"time"

	"github.com/google/uuid"
)

// Result is the persisted outcome of one completed quiz attempt.
// Score is the earned points; Correct and Total count answerable (non-case)
// questions. Results are append-only and immutable once stored.
type Result struct {
	ID            uuid.UUID `json:"id"`
	ParticipantID string    `json:"participant_id"`
	QuizID        string    `json:"quiz_id"`
	Score         int       `json:"score"`
	Correct       int       `json:"correct"`
	Total         int       `json:"total"`
	SubmittedAt   time.Time `json:"submitted_at"`
}

// SubmitResultRequest is the payload of the public result submission
// endpoint, used by clients that run the quiz flow locally.
type SubmitResultRequest struct {
	ParticipantID string `json:"participant_id" binding:"required,min=1,max=64"`
	QuizID        string `json:"quiz_id" binding:"required,min=1,max=64"`
	Score         int    `json:"score" binding:"min=0"`
	Correct       int    `json:"correct" binding:"min=0"`
	Total         int    `json:"total" binding:"min=0"`
}
