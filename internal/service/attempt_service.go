package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lequiz/lequiz-backend/internal/config"
	"github.com/lequiz/lequiz-backend/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ErrAttemptNotFound is returned when an attempt id has no live session,
// either because it never existed or because its TTL elapsed.
var ErrAttemptNotFound = errors.New("attempt not found")

// QuizSource is the read side of quiz storage needed by attempt sessions.
type QuizSource interface {
	GetByID(ctx context.Context, id string) (*model.Quiz, error)
}

// ResultSink accepts a graded result for persistence.
type ResultSink interface {
	Submit(ctx context.Context, res *model.Result) error
}

// AttemptService runs the quiz-taking flow: it holds each Attempt in Redis
// between HTTP calls, applies navigation on the pure state machine, and on
// finish turns the score summary into a persisted Result. One attempt is
// owned by exactly one session, so no locking is involved.
type AttemptService struct {
	quizzes QuizSource
	results ResultSink
	rdb     *redis.Client
	log     zerolog.Logger
	ttl     time.Duration
}

// NewAttemptService creates a new AttemptService.
func NewAttemptService(quizzes QuizSource, results ResultSink, rdb *redis.Client, log zerolog.Logger, ttl time.Duration) *AttemptService {
	return &AttemptService{
		quizzes: quizzes,
		results: results,
		rdb:     rdb,
		log:     log.With().Str("component", "attempt_service").Logger(),
		ttl:     ttl,
	}
}

// Start opens a fresh attempt on a quiz and returns the first question view.
func (s *AttemptService) Start(ctx context.Context, quizID, participantID string) (*QuestionView, error) {
	quiz, err := s.quizzes.GetByID(ctx, quizID)
	if err != nil {
		return nil, err
	}

	attempt, err := NewAttempt(quiz, participantID)
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, attempt); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("quiz_id", quizID).
		Str("attempt_id", attempt.ID.String()).
		Msg("Attempt started")
	return attempt.View(quiz), nil
}

// Get returns the view of the attempt's current position.
func (s *AttemptService) Get(ctx context.Context, attemptID uuid.UUID) (*QuestionView, error) {
	attempt, quiz, err := s.load(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	return attempt.View(quiz), nil
}

// Next commits the in-flight answer, advances, and returns the new view.
func (s *AttemptService) Next(ctx context.Context, attemptID uuid.UUID, ans *model.AnswerValue) (*QuestionView, error) {
	return s.navigate(ctx, attemptID, ans, (*Attempt).Next)
}

// Prev commits the in-flight answer, steps back, and returns the new view.
func (s *AttemptService) Prev(ctx context.Context, attemptID uuid.UUID, ans *model.AnswerValue) (*QuestionView, error) {
	return s.navigate(ctx, attemptID, ans, (*Attempt).Prev)
}

func (s *AttemptService) navigate(
	ctx context.Context,
	attemptID uuid.UUID,
	ans *model.AnswerValue,
	move func(*Attempt, *model.Quiz, *model.AnswerValue) error,
) (*QuestionView, error) {
	attempt, quiz, err := s.load(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	if err := move(attempt, quiz, ans); err != nil {
		return nil, err
	}
	if err := s.save(ctx, attempt); err != nil {
		return nil, err
	}
	return attempt.View(quiz), nil
}

// Finish terminates the attempt. A nil summary with a nil error means the
// last question was a case block: the attempt closes without scoring and no
// result is recorded. Otherwise the summary is persisted as a Result. The
// session key is discarded either way.
func (s *AttemptService) Finish(ctx context.Context, attemptID uuid.UUID, ans *model.AnswerValue) (*ScoreSummary, error) {
	attempt, quiz, err := s.load(ctx, attemptID)
	if err != nil {
		return nil, err
	}

	sum, err := attempt.Finish(quiz, ans)
	if err != nil {
		return nil, err
	}

	if sum != nil {
		res := &model.Result{
			ID:            uuid.New(),
			ParticipantID: attempt.ParticipantID,
			QuizID:        attempt.QuizID,
			Score:         sum.EarnedPoints,
			Correct:       sum.CorrectCount,
			Total:         sum.AnswerableTotal,
			SubmittedAt:   time.Now().UTC(),
		}
		if err := s.results.Submit(ctx, res); err != nil {
			// Keep the session alive so the participant can retry finishing.
			return nil, fmt.Errorf("submit result: %w", err)
		}
	}

	if err := s.rdb.Del(ctx, config.CacheKey.AttemptKey(attemptID.String())).Err(); err != nil {
		s.log.Warn().Err(err).Str("attempt_id", attemptID.String()).Msg("Failed to drop attempt key")
	}

	s.log.Info().
		Str("attempt_id", attemptID.String()).
		Str("quiz_id", attempt.QuizID).
		Bool("scored", sum != nil).
		Msg("Attempt finished")
	return sum, nil
}

func (s *AttemptService) load(ctx context.Context, attemptID uuid.UUID) (*Attempt, *model.Quiz, error) {
	data, err := s.rdb.Get(ctx, config.CacheKey.AttemptKey(attemptID.String())).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil, ErrAttemptNotFound
		}
		return nil, nil, fmt.Errorf("load attempt: %w", err)
	}

	var attempt Attempt
	if err := json.Unmarshal(data, &attempt); err != nil {
		return nil, nil, fmt.Errorf("unmarshal attempt: %w", err)
	}
	if attempt.Answers == nil {
		attempt.Answers = make(model.AnswerSet)
	}

	quiz, err := s.quizzes.GetByID(ctx, attempt.QuizID)
	if err != nil {
		return nil, nil, err
	}
	return &attempt, quiz, nil
}

func (s *AttemptService) save(ctx context.Context, attempt *Attempt) error {
	data, err := json.Marshal(attempt)
	if err != nil {
		return fmt.Errorf("marshal attempt: %w", err)
	}
	key := config.CacheKey.AttemptKey(attempt.ID.String())
	if err := s.rdb.Set(ctx, key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save attempt: %w", err)
	}
	return nil
}
