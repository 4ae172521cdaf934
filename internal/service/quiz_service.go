package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lequiz/lequiz-backend/internal/model"
	"github.com/lequiz/lequiz-backend/internal/repository"
	"github.com/rs/zerolog"
)

// Domain errors.
var (
	ErrQuizNotFound = errors.New("quiz not found")
	ErrQuizExists   = errors.New("quiz id already exists")
)

// QuizService owns quiz document rules: every document is normalized and
// validated here before any storage call, so an invalid quiz never reaches
// the repository.
type QuizService struct {
	repo *repository.QuizRepository
	log  zerolog.Logger
}

// NewQuizService creates a new QuizService.
func NewQuizService(repo *repository.QuizRepository, log zerolog.Logger) *QuizService {
	return &QuizService{
		repo: repo,
		log:  log.With().Str("component", "quiz_service").Logger(),
	}
}

// GetByID retrieves a full quiz, reference answers included.
func (s *QuizService) GetByID(ctx context.Context, id string) (*model.Quiz, error) {
	quiz, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("get quiz: %w", err)
	}
	return quiz, nil
}

// List retrieves all quizzes, reference answers included (admin side).
func (s *QuizService) List(ctx context.Context) ([]model.Quiz, error) {
	quizzes, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	if quizzes == nil {
		quizzes = []model.Quiz{}
	}
	return quizzes, nil
}

// ListPublic retrieves all quizzes with reference answers stripped.
func (s *QuizService) ListPublic(ctx context.Context) ([]model.Quiz, error) {
	quizzes, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	public := make([]model.Quiz, len(quizzes))
	for i := range quizzes {
		public[i] = *quizzes[i].Sanitized()
	}
	return public, nil
}

// GetPublic retrieves one quiz with reference answers stripped.
func (s *QuizService) GetPublic(ctx context.Context, id string) (*model.Quiz, error) {
	quiz, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return quiz.Sanitized(), nil
}

// Create validates and stores a new quiz. Duplicate ids are rejected; the
// write is last-write-wins only for Replace, never for Create.
func (s *QuizService) Create(ctx context.Context, quiz *model.Quiz) error {
	quiz.Normalize()
	if err := quiz.Validate(); err != nil {
		return err
	}
	taken, err := s.repo.Exists(ctx, quiz.ID)
	if err != nil {
		return fmt.Errorf("check quiz id: %w", err)
	}
	if taken {
		return ErrQuizExists
	}
	if err := s.repo.Create(ctx, quiz); err != nil {
		return fmt.Errorf("create quiz: %w", err)
	}
	s.log.Info().Str("quiz_id", quiz.ID).Int("questions", len(quiz.Questions)).Msg("Quiz created")
	return nil
}

// Replace validates and fully replaces a stored quiz, questions included.
func (s *QuizService) Replace(ctx context.Context, quiz *model.Quiz) error {
	quiz.Normalize()
	if err := quiz.Validate(); err != nil {
		return err
	}
	if err := s.repo.Replace(ctx, quiz); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrQuizNotFound
		}
		return fmt.Errorf("replace quiz: %w", err)
	}
	s.log.Info().Str("quiz_id", quiz.ID).Int("questions", len(quiz.Questions)).Msg("Quiz replaced")
	return nil
}

// Delete removes a quiz by id.
func (s *QuizService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrQuizNotFound
		}
		return fmt.Errorf("delete quiz: %w", err)
	}
	s.log.Info().Str("quiz_id", id).Msg("Quiz deleted")
	return nil
}
