package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lequiz/lequiz-backend/internal/model"
)

// ResultRepository handles the append-only result log.
type ResultRepository struct {
	pool *pgxpool.Pool
}

// NewResultRepository creates a new ResultRepository.
func NewResultRepository(pool *pgxpool.Pool) *ResultRepository {
	return &ResultRepository{pool: pool}
}

// Insert appends a single result.
func (r *ResultRepository) Insert(ctx context.Context, res *model.Result) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO results (id, participant_id, quiz_id, score, correct, total, submitted_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (id) DO NOTHING`,
		res.ID, res.ParticipantID, res.QuizID, res.Score, res.Correct, res.Total, res.SubmittedAt)
	return err
}

// BulkInsert appends a batch of results in one round trip using UNNEST.
func (r *ResultRepository) BulkInsert(ctx context.Context, batch []*model.Result) error {
	n := len(batch)
	ids := make([]uuid.UUID, 0, n)
	participants := make([]string, 0, n)
	quizzes := make([]string, 0, n)
	scores := make([]int, 0, n)
	corrects := make([]int, 0, n)
	totals := make([]int, 0, n)
	submitted := make([]time.Time, 0, n)

	for _, res := range batch {
		ids = append(ids, res.ID)
		participants = append(participants, res.ParticipantID)
		quizzes = append(quizzes, res.QuizID)
		scores = append(scores, res.Score)
		corrects = append(corrects, res.Correct)
		totals = append(totals, res.Total)
		submitted = append(submitted, res.SubmittedAt)
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO results (id, participant_id, quiz_id, score, correct, total, submitted_at)
		SELECT * FROM UNNEST(
			$1::uuid[],
			$2::text[],
			$3::text[],
			$4::int[],
			$5::int[],
			$6::int[],
			$7::timestamptz[]
		)
		ON CONFLICT (id) DO NOTHING`,
		ids, participants, quizzes, scores, corrects, totals, submitted)
	return err
}

// ListPaginated retrieves results newest first, optionally filtered by quiz.
// Pass quizID="" to list across all quizzes.
func (r *ResultRepository) ListPaginated(ctx context.Context, quizID string, limit, offset int) ([]model.Result, int, error) {
	countQuery := `SELECT COUNT(*) FROM results`
	query := `SELECT id, participant_id, quiz_id, score, correct, total, submitted_at
	          FROM results`
	var countArgs, args []interface{}

	if quizID != "" {
		countQuery += ` WHERE quiz_id = $1`
		countArgs = append(countArgs, quizID)
		query += ` WHERE quiz_id = $1 ORDER BY submitted_at DESC LIMIT $2 OFFSET $3`
		args = append(args, quizID, limit, offset)
	} else {
		query += ` ORDER BY submitted_at DESC LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var results []model.Result
	for rows.Next() {
		var res model.Result
		if err := rows.Scan(&res.ID, &res.ParticipantID, &res.QuizID,
			&res.Score, &res.Correct, &res.Total, &res.SubmittedAt); err != nil {
			return nil, 0, err
		}
		results = append(results, res)
	}
	return results, total, rows.Err()
}
