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

const gameColumns = `id, title, description, price, cover_image_url, release_date,
	publisher, developer, age_rating, is_digital, stock_quantity, average_rating`

type GameRepository struct {
	pool *pgxpool.Pool
}

func NewGameRepository(pool *pgxpool.Pool) *GameRepository {
	return &GameRepository{pool: pool}
}

func scanGame(row pgx.Row) (*entity.Game, error) {
	g := &entity.Game{}
	var desc, cover, pub, dev, rating *string
	err := row.Scan(&g.ID, &g.Title, &desc, &g.Price, &cover, &g.ReleaseDate,
		&pub, &dev, &rating, &g.Digital, &g.StockQuantity, &g.AverageRating)
	if err != nil {
		return nil, err
	}
	if desc != nil {
		g.Description = *desc
	}
	if cover != nil {
		g.CoverImageURL = *cover
	}
	if pub != nil {
		g.Publisher = *pub
	}
	if dev != nil {
		g.Developer = *dev
	}
	if rating != nil {
		g.AgeRating = entity.AgeRating(*rating)
	}
	return g, nil
}

func (r *GameRepository) queryGames(query string, args ...any) ([]*entity.Game, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	games := make([]*entity.Game, 0)
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachRelations(ctx, games); err != nil {
		return nil, err
	}
	return games, nil
}

// attachRelations loads genre and platform memberships for the given games
// in two queries and attaches them.
func (r *GameRepository) attachRelations(ctx context.Context, games []*entity.Game) error {
	if len(games) == 0 {
		return nil
	}
	byID := make(map[int64]*entity.Game, len(games))
	ids := make([]int64, 0, len(games))
	for _, g := range games {
		byID[g.ID] = g
		ids = append(ids, g.ID)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT gg.game_id, gn.id, gn.name
		FROM game_genres gg
		JOIN genres gn ON gn.id = gg.genre_id
		WHERE gg.game_id = ANY($1)
	`, ids)
	if err != nil {
		return err
	}
	for rows.Next() {
		var gameID int64
		var gn entity.Genre
		if err := rows.Scan(&gameID, &gn.ID, &gn.Name); err != nil {
			rows.Close()
			return err
		}
		byID[gameID].Genres = append(byID[gameID].Genres, gn)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = r.pool.Query(ctx, `
		SELECT gp.game_id, p.id, p.name
		FROM game_platforms gp
		JOIN platforms p ON p.id = gp.platform_id
		WHERE gp.game_id = ANY($1)
	`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var gameID int64
		var p entity.Platform
		if err := rows.Scan(&gameID, &p.ID, &p.Name); err != nil {
			return err
		}
		byID[gameID].Platforms = append(byID[gameID].Platforms, p)
	}
	return rows.Err()
}

func (r *GameRepository) FindAll() ([]*entity.Game, error) {
	return r.queryGames(`SELECT ` + gameColumns + ` FROM games ORDER BY id`)
}

func (r *GameRepository) FindByID(id int64) (*entity.Game, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `SELECT `+gameColumns+` FROM games WHERE id = $1`, id)
	g, err := scanGame(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := r.attachRelations(ctx, []*entity.Game{g}); err != nil {
		return nil, err
	}
	return g, nil
}

func (r *GameRepository) FindByTitle(title string) ([]*entity.Game, error) {
	return r.queryGames(`
		SELECT `+gameColumns+` FROM games
		WHERE title ILIKE '%' || $1 || '%'
		ORDER BY title
	`, title)
}

func (r *GameRepository) FindByPlatformID(platformID int64) ([]*entity.Game, error) {
	return r.queryGames(`
		SELECT `+gameColumns+` FROM games
		WHERE id IN (SELECT game_id FROM game_platforms WHERE platform_id = $1)
		ORDER BY title
	`, platformID)
}

func (r *GameRepository) FindByGenreID(genreID int64) ([]*entity.Game, error) {
	return r.queryGames(`
		SELECT `+gameColumns+` FROM games
		WHERE id IN (SELECT game_id FROM game_genres WHERE genre_id = $1)
		ORDER BY title
	`, genreID)
}

func (r *GameRepository) FindReleasedAfter(date time.Time) ([]*entity.Game, error) {
	return r.queryGames(`
		SELECT `+gameColumns+` FROM games
		WHERE release_date > $1
		ORDER BY release_date DESC
	`, date)
}

func (r *GameRepository) FindRecentReleases(date time.Time, limit int) ([]*entity.Game, error) {
	return r.queryGames(`
		SELECT `+gameColumns+` FROM games
		WHERE release_date > $1
		ORDER BY release_date DESC
		LIMIT $2
	`, date, limit)
}

func (r *GameRepository) FindByMinimumRating(min float64) ([]*entity.Game, error) {
	return r.queryGames(`
		SELECT `+gameColumns+` FROM games
		WHERE average_rating >= $1
		ORDER BY average_rating DESC
	`, min)
}

func (r *GameRepository) FindRecommended(genreIDs, platformIDs, excludeGameIDs []int64) ([]*entity.Game, error) {
	return r.queryGames(`
		SELECT DISTINCT `+gameColumns+` FROM games
		WHERE id IN (SELECT game_id FROM game_genres WHERE genre_id = ANY($1))
		  AND id IN (SELECT game_id FROM game_platforms WHERE platform_id = ANY($2))
		  AND NOT (id = ANY($3))
		ORDER BY id
	`, genreIDs, platformIDs, excludeGameIDs)
}

func (r *GameRepository) Save(g *entity.Game) error {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if g.ID == 0 {
		row := tx.QueryRow(ctx, `
			INSERT INTO games (title, description, price, cover_image_url, release_date,
				publisher, developer, age_rating, is_digital, stock_quantity, average_rating)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			RETURNING id
		`, g.Title, g.Description, g.Price, g.CoverImageURL, g.ReleaseDate,
			g.Publisher, g.Developer, string(g.AgeRating), g.Digital, g.StockQuantity, g.AverageRating)
		if err := row.Scan(&g.ID); err != nil {
			return err
		}
	} else {
		if _, err := tx.Exec(ctx, `
			UPDATE games
			SET title = $1, description = $2, price = $3, cover_image_url = $4,
				release_date = $5, publisher = $6, developer = $7, age_rating = $8,
				is_digital = $9, stock_quantity = $10, average_rating = $11
			WHERE id = $12
		`, g.Title, g.Description, g.Price, g.CoverImageURL, g.ReleaseDate,
			g.Publisher, g.Developer, string(g.AgeRating), g.Digital, g.StockQuantity,
			g.AverageRating, g.ID); err != nil {
			return err
		}
	}

	// Re-sync many-to-many memberships.
	if _, err := tx.Exec(ctx, `DELETE FROM game_genres WHERE game_id = $1`, g.ID); err != nil {
		return err
	}
	for _, gn := range g.Genres {
		if _, err := tx.Exec(ctx, `
			INSERT INTO game_genres (game_id, genre_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, g.ID, gn.ID); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(ctx, `DELETE FROM game_platforms WHERE game_id = $1`, g.ID); err != nil {
		return err
	}
	for _, p := range g.Platforms {
		if _, err := tx.Exec(ctx, `
			INSERT INTO game_platforms (game_id, platform_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, g.ID, p.ID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *GameRepository) DeleteByID(id int64) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM games WHERE id = $1`, id)
	return err
}

var _ repository.GameRepository = (*GameRepository)(nil)
