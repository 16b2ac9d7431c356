package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eshopexpress/backend/internal/domain/entity"
	"github.com/eshopexpress/backend/internal/domain/repository"
)

type PlatformRepository struct {
	pool *pgxpool.Pool
}

func NewPlatformRepository(pool *pgxpool.Pool) *PlatformRepository {
	return &PlatformRepository{pool: pool}
}

func (r *PlatformRepository) FindAll() ([]*entity.Platform, error) {
	rows, err := r.pool.Query(context.Background(), `SELECT id, name FROM platforms ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*entity.Platform, 0)
	for rows.Next() {
		p := &entity.Platform{}
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PlatformRepository) FindByID(id int64) (*entity.Platform, error) {
	p := &entity.Platform{}
	err := r.pool.QueryRow(context.Background(),
		`SELECT id, name FROM platforms WHERE id = $1`, id).Scan(&p.ID, &p.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

func (r *PlatformRepository) FindByNameContaining(name string) (*entity.Platform, error) {
	p := &entity.Platform{}
	err := r.pool.QueryRow(context.Background(), `
		SELECT id, name FROM platforms
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY name
		LIMIT 1
	`, name).Scan(&p.ID, &p.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

func (r *PlatformRepository) Save(p *entity.Platform) error {
	ctx := context.Background()
	if p.ID == 0 {
		return r.pool.QueryRow(ctx,
			`INSERT INTO platforms (name) VALUES ($1) RETURNING id`, p.Name).Scan(&p.ID)
	}
	_, err := r.pool.Exec(ctx, `UPDATE platforms SET name = $1 WHERE id = $2`, p.Name, p.ID)
	return err
}

func (r *PlatformRepository) DeleteByID(id int64) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM platforms WHERE id = $1`, id)
	return err
}

var _ repository.PlatformRepository = (*PlatformRepository)(nil)
