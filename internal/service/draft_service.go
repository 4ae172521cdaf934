package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lequiz/lequiz-backend/internal/config"
	"github.com/lequiz/lequiz-backend/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ErrDraftIndexOutOfRange is returned when a question edit or delete
// addresses a position the draft does not have.
var ErrDraftIndexOutOfRange = errors.New("question index out of range")

// QuizStore is what the authoring workflow needs from quiz storage.
type QuizStore interface {
	GetByID(ctx context.Context, id string) (*model.Quiz, error)
	Create(ctx context.Context, quiz *model.Quiz) error
	Replace(ctx context.Context, quiz *model.Quiz) error
}

// DraftService holds one authoring draft per admin in Redis. Every mutation
// is validated before it lands in the draft; publish hands the finished
// document to the quiz store and clears the draft only on success, so a
// failed publish never loses work.
type DraftService struct {
	quizzes QuizStore
	rdb     *redis.Client
	log     zerolog.Logger
}

// NewDraftService creates a new DraftService.
func NewDraftService(quizzes QuizStore, rdb *redis.Client, log zerolog.Logger) *DraftService {
	return &DraftService{
		quizzes: quizzes,
		rdb:     rdb,
		log:     log.With().Str("component", "draft_service").Logger(),
	}
}

// Get returns the admin's draft, or a fresh empty one when none exists.
func (s *DraftService) Get(ctx context.Context, adminID int) (*model.QuizDraft, error) {
	data, err := s.rdb.Get(ctx, config.CacheKey.AdminDraftKey(adminID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &model.QuizDraft{Questions: []model.Question{}}, nil
		}
		return nil, fmt.Errorf("load draft: %w", err)
	}
	var draft model.QuizDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("unmarshal draft: %w", err)
	}
	if draft.Questions == nil {
		draft.Questions = []model.Question{}
	}
	return &draft, nil
}

// SetMeta updates the draft's id, title, and description. While an existing
// quiz is being edited its id is pinned to the stored one.
func (s *DraftService) SetMeta(ctx context.Context, adminID int, meta *model.DraftMetaRequest) (*model.QuizDraft, error) {
	draft, err := s.Get(ctx, adminID)
	if err != nil {
		return nil, err
	}
	if draft.EditingID == "" {
		draft.QuizID = meta.QuizID
	}
	draft.Title = meta.Title
	draft.Description = meta.Description
	if err := s.save(ctx, adminID, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// AddQuestion validates and appends a question to the draft.
func (s *DraftService) AddQuestion(ctx context.Context, adminID int, q model.Question) (*model.QuizDraft, error) {
	q.Normalize()
	if err := q.Validate("question"); err != nil {
		return nil, err
	}
	draft, err := s.Get(ctx, adminID)
	if err != nil {
		return nil, err
	}
	draft.Questions = append(draft.Questions, q)
	if err := s.save(ctx, adminID, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// UpdateQuestion validates and replaces the question at index.
func (s *DraftService) UpdateQuestion(ctx context.Context, adminID, index int, q model.Question) (*model.QuizDraft, error) {
	q.Normalize()
	if err := q.Validate("question"); err != nil {
		return nil, err
	}
	draft, err := s.Get(ctx, adminID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(draft.Questions) {
		return nil, ErrDraftIndexOutOfRange
	}
	draft.Questions[index] = q
	if err := s.save(ctx, adminID, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// RemoveQuestion deletes the question at index.
func (s *DraftService) RemoveQuestion(ctx context.Context, adminID, index int) (*model.QuizDraft, error) {
	draft, err := s.Get(ctx, adminID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(draft.Questions) {
		return nil, ErrDraftIndexOutOfRange
	}
	draft.Questions = append(draft.Questions[:index], draft.Questions[index+1:]...)
	if err := s.save(ctx, adminID, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// LoadQuiz re-hydrates the draft from a deep copy of a stored quiz, so
// subsequent draft edits never alias the fetched document.
func (s *DraftService) LoadQuiz(ctx context.Context, adminID int, quizID string) (*model.QuizDraft, error) {
	quiz, err := s.quizzes.GetByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	copied := quiz.Clone()
	draft := &model.QuizDraft{
		QuizID:      copied.ID,
		Title:       copied.Title,
		Description: copied.Description,
		EditingID:   copied.ID,
		Questions:   copied.Questions,
	}
	if err := s.save(ctx, adminID, draft); err != nil {
		return nil, err
	}
	s.log.Info().Int("admin_id", adminID).Str("quiz_id", quizID).Msg("Draft loaded for editing")
	return draft, nil
}

// Publish turns the draft into a stored quiz: create when the draft is new,
// full replace when it was loaded from an existing quiz. The draft survives
// any failure untouched and is cleared only after the store accepted the
// document.
func (s *DraftService) Publish(ctx context.Context, adminID int) (*model.Quiz, error) {
	draft, err := s.Get(ctx, adminID)
	if err != nil {
		return nil, err
	}

	quiz := &model.Quiz{
		ID:          draft.QuizID,
		Title:       draft.Title,
		Description: draft.Description,
		Questions:   draft.Questions,
	}
	if draft.EditingID != "" {
		quiz.ID = draft.EditingID
		err = s.quizzes.Replace(ctx, quiz)
	} else {
		err = s.quizzes.Create(ctx, quiz)
	}
	if err != nil {
		return nil, err
	}

	if err := s.rdb.Del(ctx, config.CacheKey.AdminDraftKey(adminID)).Err(); err != nil {
		s.log.Warn().Err(err).Int("admin_id", adminID).Msg("Failed to clear published draft")
	}
	s.log.Info().
		Int("admin_id", adminID).
		Str("quiz_id", quiz.ID).
		Bool("replaced", draft.EditingID != "").
		Msg("Draft published")
	return quiz, nil
}

// Discard drops the admin's draft.
func (s *DraftService) Discard(ctx context.Context, adminID int) error {
	return s.rdb.Del(ctx, config.CacheKey.AdminDraftKey(adminID)).Err()
}

func (s *DraftService) save(ctx context.Context, adminID int, draft *model.QuizDraft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}
	if err := s.rdb.Set(ctx, config.CacheKey.AdminDraftKey(adminID), data, 0).Err(); err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}
