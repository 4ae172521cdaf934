package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lequiz/lequiz-backend/internal/model"
)

// QuizRepository handles quiz document access. The question sequence is
// stored as one JSONB column, full replace on update.
type QuizRepository struct {
	pool *pgxpool.Pool
}

// NewQuizRepository creates a new QuizRepository.
func NewQuizRepository(pool *pgxpool.Pool) *QuizRepository {
	return &QuizRepository{pool: pool}
}

// GetByID retrieves a quiz by its string id. Returns pgx.ErrNoRows when absent.
func (r *QuizRepository) GetByID(ctx context.Context, id string) (*model.Quiz, error) {
	q := &model.Quiz{}
	var questions []byte
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, description, questions, created_at, updated_at
		 FROM quizzes WHERE id = $1`, id,
	).Scan(&q.ID, &q.Title, &q.Description, &questions, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(questions, &q.Questions); err != nil {
		return nil, fmt.Errorf("unmarshal questions: %w", err)
	}
	return q, nil
}

// List retrieves all quizzes ordered by creation time, newest first.
func (r *QuizRepository) List(ctx context.Context) ([]model.Quiz, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, description, questions, created_at, updated_at
		 FROM quizzes ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quizzes []model.Quiz
	for rows.Next() {
		var q model.Quiz
		var questions []byte
		if err := rows.Scan(&q.ID, &q.Title, &q.Description, &questions, &q.CreatedAt, &q.UpdatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(questions, &q.Questions); err != nil {
			return nil, fmt.Errorf("unmarshal questions for %s: %w", q.ID, err)
		}
		quizzes = append(quizzes, q)
	}
	return quizzes, rows.Err()
}

// Exists reports whether a quiz id is already taken.
func (r *QuizRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM quizzes WHERE id = $1)`, id,
	).Scan(&exists)
	return exists, err
}

// Create inserts a new quiz document.
func (r *QuizRepository) Create(ctx context.Context, q *model.Quiz) error {
	questions, err := json.Marshal(q.Questions)
	if err != nil {
		return fmt.Errorf("marshal questions: %w", err)
	}
	return r.pool.QueryRow(ctx,
		`INSERT INTO quizzes (id, title, description, questions)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at, updated_at`,
		q.ID, q.Title, q.Description, questions,
	).Scan(&q.CreatedAt, &q.UpdatedAt)
}

// Replace overwrites the stored document, question sequence included.
// Returns pgx.ErrNoRows when the id does not exist.
func (r *QuizRepository) Replace(ctx context.Context, q *model.Quiz) error {
	questions, err := json.Marshal(q.Questions)
	if err != nil {
		return fmt.Errorf("marshal questions: %w", err)
	}
	tag, err := r.pool.Exec(ctx,
		`UPDATE quizzes
		 SET title = $1, description = $2, questions = $3, updated_at = NOW()
		 WHERE id = $4`,
		q.Title, q.Description, questions, q.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes a quiz. Returns pgx.ErrNoRows when the id does not exist.
func (r *QuizRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM quizzes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
