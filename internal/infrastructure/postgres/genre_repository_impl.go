package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eshopexpress/backend/internal/domain/entity"
	"github.com/eshopexpress/backend/internal/domain/repository"
)

type GenreRepository struct {
	pool *pgxpool.Pool
}

func NewGenreRepository(pool *pgxpool.Pool) *GenreRepository {
	return &GenreRepository{pool: pool}
}

func (r *GenreRepository) FindAll() ([]*entity.Genre, error) {
	rows, err := r.pool.Query(context.Background(), `SELECT id, name FROM genres ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*entity.Genre, 0)
	for rows.Next() {
		g := &entity.Genre{}
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *GenreRepository) FindByID(id int64) (*entity.Genre, error) {
	g := &entity.Genre{}
	err := r.pool.QueryRow(context.Background(),
		`SELECT id, name FROM genres WHERE id = $1`, id).Scan(&g.ID, &g.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return g, nil
}

func (r *GenreRepository) FindByNameContaining(name string) (*entity.Genre, error) {
	g := &entity.Genre{}
	err := r.pool.QueryRow(context.Background(), `
		SELECT id, name FROM genres
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY name
		LIMIT 1
	`, name).Scan(&g.ID, &g.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return g, nil
}

func (r *GenreRepository) Save(g *entity.Genre) error {
	ctx := context.Background()
	if g.ID == 0 {
		return r.pool.QueryRow(ctx,
			`INSERT INTO genres (name) VALUES ($1) RETURNING id`, g.Name).Scan(&g.ID)
	}
	_, err := r.pool.Exec(ctx, `UPDATE genres SET name = $1 WHERE id = $2`, g.Name, g.ID)
	return err
}

func (r *GenreRepository) DeleteByID(id int64) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM genres WHERE id = $1`, id)
	return err
}

var _ repository.GenreRepository = (*GenreRepository)(nil)
