package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eshopexpress/backend/internal/domain/entity"
	"github.com/eshopexpress/backend/internal/domain/repository"
)

type ReviewRepository struct {
	pool *pgxpool.Pool
}

func NewReviewRepository(pool *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

func (r *ReviewRepository) queryReviews(query string, args ...any) ([]*entity.Review, error) {
	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*entity.Review, 0)
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

func scanReview(row pgx.Row) (*entity.Review, error) {
	rv := &entity.Review{}
	var comment *string
	if err := row.Scan(&rv.ID, &rv.GameID, &rv.UserID, &rv.Rating, &comment, &rv.CreatedAt); err != nil {
		return nil, err
	}
	if comment != nil {
		rv.Comment = *comment
	}
	return rv, nil
}

func (r *ReviewRepository) FindByGameID(gameID int64) ([]*entity.Review, error) {
	return r.queryReviews(`
		SELECT id, game_id, user_id, rating, comment, created_at
		FROM reviews WHERE game_id = $1 ORDER BY created_at DESC
	`, gameID)
}

func (r *ReviewRepository) FindByUserID(userID int64) ([]*entity.Review, error) {
	return r.queryReviews(`
		SELECT id, game_id, user_id, rating, comment, created_at
		FROM reviews WHERE user_id = $1 ORDER BY created_at DESC
	`, userID)
}

func (r *ReviewRepository) Save(rv *entity.Review) error {
	ctx := context.Background()
	if rv.ID == 0 {
		return r.pool.QueryRow(ctx, `
			INSERT INTO reviews (game_id, user_id, rating, comment)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at
		`, rv.GameID, rv.UserID, rv.Rating, rv.Comment).Scan(&rv.ID, &rv.CreatedAt)
	}
	_, err := r.pool.Exec(ctx, `
		UPDATE reviews SET rating = $1, comment = $2 WHERE id = $3
	`, rv.Rating, rv.Comment, rv.ID)
	return err
}

func (r *ReviewRepository) DeleteByID(id int64) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM reviews WHERE id = $1`, id)
	return err
}

var _ repository.ReviewRepository = (*ReviewRepository)(nil)
