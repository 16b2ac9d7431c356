package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eshopexpress/backend/internal/domain/entity"
	"github.com/eshopexpress/backend/internal/domain/repository"
)

var errNotFound = errors.New("not found")

const userColumns = `id, username, email, password, first_name, last_name,
	address, city, province, postal_code, enabled, created_at, updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	var address, city, province, postal *string
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.FirstName,
		&u.LastName, &address, &city, &province, &postal, &u.Enabled,
		&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if address != nil {
		u.Address = *address
	}
	if city != nil {
		u.City = *city
	}
	if province != nil {
		u.Province = entity.Province(*province)
	}
	if postal != nil {
		u.PostalCode = *postal
	}
	return u, nil
}

func (r *UserRepository) queryUsers(query string, args ...any) ([]*entity.User, error) {
	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*entity.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *UserRepository) FindAll() ([]*entity.User, error) {
	return r.queryUsers(`SELECT ` + userColumns + ` FROM users ORDER BY id`)
}

func (r *UserRepository) FindByID(id int64) (*entity.User, error) {
	u, err := scanUser(r.pool.QueryRow(context.Background(),
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) FindByEmail(email string) (*entity.User, error) {
	u, err := scanUser(r.pool.QueryRow(context.Background(),
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) FindByFirstName(firstName string) ([]*entity.User, error) {
	return r.queryUsers(`
		SELECT `+userColumns+` FROM users
		WHERE first_name ILIKE '%' || $1 || '%'
		ORDER BY id
	`, firstName)
}

func (r *UserRepository) FindByLastName(lastName string) ([]*entity.User, error) {
	return r.queryUsers(`
		SELECT `+userColumns+` FROM users
		WHERE last_name ILIKE '%' || $1 || '%'
		ORDER BY id
	`, lastName)
}

func (r *UserRepository) FindByCity(city string) ([]*entity.User, error) {
	return r.queryUsers(`
		SELECT `+userColumns+` FROM users
		WHERE city ILIKE '%' || $1 || '%'
		ORDER BY id
	`, city)
}

func (r *UserRepository) Save(u *entity.User) error {
	ctx := context.Background()
	if u.ID == 0 {
		return r.pool.QueryRow(ctx, `
			INSERT INTO users (username, email, password, first_name, last_name,
				address, city, province, postal_code, enabled)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id, created_at, updated_at
		`, u.Username, u.Email, u.Password, u.FirstName, u.LastName,
			u.Address, u.City, string(u.Province), u.PostalCode, u.Enabled).
			Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	}
	u.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET username = $1, email = $2, password = $3, first_name = $4,
			last_name = $5, address = $6, city = $7, province = $8,
			postal_code = $9, enabled = $10, updated_at = $11
		WHERE id = $12
	`, u.Username, u.Email, u.Password, u.FirstName, u.LastName, u.Address,
		u.City, string(u.Province), u.PostalCode, u.Enabled, u.UpdatedAt, u.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return errNotFound
	}
	return nil
}

func (r *UserRepository) DeleteByID(id int64) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, id)
	return err
}

var _ repository.UserRepository = (*UserRepository)(nil)
