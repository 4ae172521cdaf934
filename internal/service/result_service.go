package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lequiz/lequiz-backend/internal/config"
	"github.com/lequiz/lequiz-backend/internal/model"
	"github.com/lequiz/lequiz-backend/internal/repository"
	"github.com/lequiz/lequiz-backend/internal/response"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ResultService accepts finished-attempt results and hands them to the
// persistence queue. Writes go through Redis so a burst of submissions
// never waits on Postgres; the worker drains the queue in batches.
type ResultService struct {
	repo *repository.ResultRepository
	rdb  *redis.Client
	log  zerolog.Logger
}

// NewResultService creates a new ResultService.
func NewResultService(repo *repository.ResultRepository, rdb *redis.Client, log zerolog.Logger) *ResultService {
	return &ResultService{
		repo: repo,
		rdb:  rdb,
		log:  log.With().Str("component", "result_service").Logger(),
	}
}

// Submit enqueues a result for persistence and publishes it to the live
// monitoring channel. The result id and timestamp are filled in when the
// caller left them zero.
func (s *ResultService) Submit(ctx context.Context, result *model.Result) error {
	result.ParticipantID = strings.TrimSpace(result.ParticipantID)
	result.QuizID = strings.TrimSpace(result.QuizID)
	if result.ParticipantID == "" {
		return &model.ValidationError{Field: "participant_id", Reason: "l'identifiant du participant est requis"}
	}
	if result.QuizID == "" {
		return &model.ValidationError{Field: "quiz_id", Reason: "l'identifiant du quiz est requis"}
	}
	if result.Score < 0 || result.Correct < 0 || result.Total < 0 {
		return &model.ValidationError{Field: "score", Reason: "les compteurs ne peuvent pas être négatifs"}
	}
	if result.ID == uuid.Nil {
		result.ID = uuid.New()
	}
	if result.SubmittedAt.IsZero() {
		result.SubmittedAt = time.Now().UTC()
	}

	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if err := s.rdb.LPush(ctx, config.WorkerKey.PersistResultsQueue, data).Err(); err != nil {
		return fmt.Errorf("enqueue result: %w", err)
	}

	if err := s.rdb.Publish(ctx, config.CacheKey.ResultsChannel(), data).Err(); err != nil {
		s.log.Warn().Err(err).Str("result_id", result.ID.String()).Msg("Failed to publish result event")
	}

	s.log.Info().
		Str("result_id", result.ID.String()).
		Str("quiz_id", result.QuizID).
		Int("score", result.Score).
		Msg("Result enqueued")
	return nil
}

// List returns stored results newest first, optionally filtered by quiz.
func (s *ResultService) List(ctx context.Context, page, perPage int, quizID string) ([]model.Result, *response.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}
	offset := (page - 1) * perPage

	results, total, err := s.repo.ListPaginated(ctx, strings.TrimSpace(quizID), perPage, offset)
	if err != nil {
		return nil, nil, fmt.Errorf("list results: %w", err)
	}
	if results == nil {
		results = []model.Result{}
	}

	totalPages := (total + perPage - 1) / perPage
	pagination := &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: totalPages,
	}
	return results, pagination, nil
}
