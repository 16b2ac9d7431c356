package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eshopexpress/backend/internal/cache"
	"github.com/eshopexpress/backend/internal/domain"
	"github.com/eshopexpress/backend/internal/domain/entity"
)

type fakeGameRepo struct {
	games map[int64]*entity.Game

	byPlatformCalls int
	byGenreCalls    int
	saveCalls       int
	saved           []*entity.Game

	releasedAfter time.Time
	minRating     float64
	recommendArgs [][]int64
}

func newFakeGameRepo(games ...*entity.Game) *fakeGameRepo {
	r := &fakeGameRepo{games: map[int64]*entity.Game{}}
	for _, g := range games {
		r.games[g.ID] = g
	}
	return r
}

func (r *fakeGameRepo) FindAll() ([]*entity.Game, error) {
	out := make([]*entity.Game, 0, len(r.games))
	for _, g := range r.games {
		out = append(out, g)
	}
	return out, nil
}

func (r *fakeGameRepo) FindByID(id int64) (*entity.Game, error) {
	return r.games[id], nil
}

func (r *fakeGameRepo) FindByTitle(string) ([]*entity.Game, error) { return nil, nil }

func (r *fakeGameRepo) FindByPlatformID(platformID int64) ([]*entity.Game, error) {
	r.byPlatformCalls++
	var out []*entity.Game
	for _, g := range r.games {
		if g.HasPlatform(platformID) {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *fakeGameRepo) FindByGenreID(genreID int64) ([]*entity.Game, error) {
	r.byGenreCalls++
	var out []*entity.Game
	for _, g := range r.games {
		if g.HasGenre(genreID) {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *fakeGameRepo) FindReleasedAfter(date time.Time) ([]*entity.Game, error) {
	r.releasedAfter = date
	return nil, nil
}

func (r *fakeGameRepo) FindRecentReleases(date time.Time, limit int) ([]*entity.Game, error) {
	r.releasedAfter = date
	return nil, nil
}

func (r *fakeGameRepo) FindByMinimumRating(min float64) ([]*entity.Game, error) {
	r.minRating = min
	return nil, nil
}

func (r *fakeGameRepo) FindRecommended(genreIDs, platformIDs, excludeGameIDs []int64) ([]*entity.Game, error) {
	r.recommendArgs = [][]int64{genreIDs, platformIDs, excludeGameIDs}
	return nil, nil
}

func (r *fakeGameRepo) Save(g *entity.Game) error {
	r.saveCalls++
	r.saved = append(r.saved, g)
	if g.ID == 0 {
		g.ID = int64(len(r.games) + 1)
	}
	r.games[g.ID] = g
	return nil
}

func (r *fakeGameRepo) DeleteByID(id int64) error {
	delete(r.games, id)
	return nil
}

type fakePlatformRepo struct {
	platforms []*entity.Platform
	calls     int
}

func (r *fakePlatformRepo) FindAll() ([]*entity.Platform, error)        { return r.platforms, nil }
func (r *fakePlatformRepo) FindByID(id int64) (*entity.Platform, error) { return nil, nil }
func (r *fakePlatformRepo) Save(*entity.Platform) error                 { return nil }
func (r *fakePlatformRepo) DeleteByID(int64) error                      { return nil }

func (r *fakePlatformRepo) FindByNameContaining(name string) (*entity.Platform, error) {
	r.calls++
	for _, p := range r.platforms {
		if containsFold(p.Name, name) {
			return p, nil
		}
	}
	return nil, nil
}

type fakeGenreRepo struct {
	genres []*entity.Genre
	calls  int
}

func (r *fakeGenreRepo) FindAll() ([]*entity.Genre, error)        { return r.genres, nil }
func (r *fakeGenreRepo) FindByID(id int64) (*entity.Genre, error) { return nil, nil }
func (r *fakeGenreRepo) Save(*entity.Genre) error                 { return nil }
func (r *fakeGenreRepo) DeleteByID(int64) error                   { return nil }

func (r *fakeGenreRepo) FindByNameContaining(name string) (*entity.Genre, error) {
	r.calls++
	for _, g := range r.genres {
		if containsFold(g.Name, name) {
			return g, nil
		}
	}
	return nil, nil
}

type fakeReviewRepo struct {
	byGame map[int64][]*entity.Review
}

func (r *fakeReviewRepo) FindByGameID(gameID int64) ([]*entity.Review, error) {
	return r.byGame[gameID], nil
}
func (r *fakeReviewRepo) FindByUserID(int64) ([]*entity.Review, error) { return nil, nil }
func (r *fakeReviewRepo) Save(*entity.Review) error                    { return nil }
func (r *fakeReviewRepo) DeleteByID(int64) error                       { return nil }

func containsFold(haystack, needle string) bool {
	h, n := []rune(haystack), []rune(needle)
	for i := 0; i+len(n) <= len(h); i++ {
		match := true
		for j := range n {
			a, b := h[i+j], n[j]
			if 'A' <= a && a <= 'Z' {
				a += 'a' - 'A'
			}
			if 'A' <= b && b <= 'Z' {
				b += 'a' - 'A'
			}
			if a != b {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func newCatalogFixture(games ...*entity.Game) (*CatalogService, *fakeGameRepo, *fakePlatformRepo, *fakeGenreRepo, *fakeReviewRepo) {
	gameRepo := newFakeGameRepo(games...)
	platformRepo := &fakePlatformRepo{platforms: []*entity.Platform{
		{ID: 1, Name: "PlayStation 5"},
		{ID: 2, Name: "PC"},
	}}
	genreRepo := &fakeGenreRepo{genres: []*entity.Genre{
		{ID: 1, Name: "RPG"},
		{ID: 2, Name: "Sports"},
	}}
	reviewRepo := &fakeReviewRepo{byGame: map[int64][]*entity.Review{}}
	svc := &CatalogService{
		Games:     gameRepo,
		Platforms: platformRepo,
		Genres:    genreRepo,
		Reviews:   reviewRepo,
		Cache:     cache.NewStore(),
		Now:       time.Now,
	}
	return svc, gameRepo, platformRepo, genreRepo, reviewRepo
}

func TestFindByPlatformCachesResults(t *testing.T) {
	g := &entity.Game{ID: 1, Title: "Starfall Odyssey", Platforms: []entity.Platform{{ID: 1}}}
	svc, gameRepo, platformRepo, _, _ := newCatalogFixture(g)

	first, err := svc.FindByPlatform("PlayStation")
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, platformRepo.calls)
	assert.Equal(t, 1, gameRepo.byPlatformCalls)

	// repeat with a different case resolves through the cache
	second, err := svc.FindByPlatform("playstation")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, platformRepo.calls)
	assert.Equal(t, 1, gameRepo.byPlatformCalls)
}

func TestFindByPlatformUnknownIsNotFoundAndNotCached(t *testing.T) {
	svc, _, _, _, _ := newCatalogFixture()

	_, err := svc.FindByPlatform("zzz-nonexistent")
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
	assert.Equal(t, "Platform not found: zzz-nonexistent", err.Error())
	assert.Equal(t, 0, svc.Cache.Len(cache.GamesByPlatform))
}

func TestFindByGenreUnknownIsNotFoundAndNotCached(t *testing.T) {
	svc, _, _, _, _ := newCatalogFixture()

	_, err := svc.FindByGenre("zzz-nonexistent")
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
	assert.Equal(t, 0, svc.Cache.Len(cache.GamesByGenre))
}

func TestFindByGenreCachesResults(t *testing.T) {
	g := &entity.Game{ID: 1, Title: "Starfall Odyssey", Genres: []entity.Genre{{ID: 1}}}
	svc, gameRepo, _, genreRepo, _ := newCatalogFixture(g)

	_, err := svc.FindByGenre("RPG")
	require.NoError(t, err)
	_, err = svc.FindByGenre("rpg")
	require.NoError(t, err)

	assert.Equal(t, 1, genreRepo.calls)
	assert.Equal(t, 1, gameRepo.byGenreCalls)
}

func TestSaveEvictsBothCatalogCaches(t *testing.T) {
	g := &entity.Game{ID: 1, Platforms: []entity.Platform{{ID: 1}}, Genres: []entity.Genre{{ID: 1}}}
	svc, _, _, _, _ := newCatalogFixture(g)

	_, err := svc.FindByPlatform("PC")
	require.NoError(t, err)
	_, err = svc.FindByGenre("Sports")
	require.NoError(t, err)
	require.Equal(t, 1, svc.Cache.Len(cache.GamesByPlatform))
	require.Equal(t, 1, svc.Cache.Len(cache.GamesByGenre))

	_, err = svc.Save(context.Background(), &entity.Game{Title: "Gearbound"})
	require.NoError(t, err)

	assert.Equal(t, 0, svc.Cache.Len(cache.GamesByPlatform))
	assert.Equal(t, 0, svc.Cache.Len(cache.GamesByGenre))
}

func TestDeleteByIDEvictsBothCatalogCaches(t *testing.T) {
	g := &entity.Game{ID: 1, Platforms: []entity.Platform{{ID: 1}}}
	svc, _, _, _, _ := newCatalogFixture(g)

	_, err := svc.FindByPlatform("PC")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteByID(context.Background(), 1))
	assert.Equal(t, 0, svc.Cache.Len(cache.GamesByPlatform))
}

func TestRequireByIDMissingGame(t *testing.T) {
	svc, _, _, _, _ := newCatalogFixture()

	_, err := svc.RequireByID(99)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
	assert.Equal(t, "Game not found with id: 99", err.Error())
}

func TestUpdateStock(t *testing.T) {
	t.Run("decrement", func(t *testing.T) {
		g := &entity.Game{ID: 1, StockQuantity: 5}
		svc, repo, _, _, _ := newCatalogFixture(g)

		require.NoError(t, svc.UpdateStock(1, -3))
		assert.Equal(t, 2, g.StockQuantity)
		assert.Equal(t, 1, repo.saveCalls)
	})

	t.Run("clamps at zero", func(t *testing.T) {
		g := &entity.Game{ID: 1, StockQuantity: 2}
		svc, _, _, _, _ := newCatalogFixture(g)

		require.NoError(t, svc.UpdateStock(1, -10))
		assert.Equal(t, 0, g.StockQuantity)
	})

	t.Run("restock", func(t *testing.T) {
		g := &entity.Game{ID: 1, StockQuantity: 0}
		svc, _, _, _, _ := newCatalogFixture(g)

		require.NoError(t, svc.UpdateStock(1, 25))
		assert.Equal(t, 25, g.StockQuantity)
	})

	t.Run("digital games are a no-op", func(t *testing.T) {
		g := &entity.Game{ID: 1, Digital: true, StockQuantity: 0}
		svc, repo, _, _, _ := newCatalogFixture(g)

		require.NoError(t, svc.UpdateStock(1, -5))
		assert.Equal(t, 0, g.StockQuantity)
		assert.Equal(t, 0, repo.saveCalls)
	})

	t.Run("missing game", func(t *testing.T) {
		svc, _, _, _, _ := newCatalogFixture()
		err := svc.UpdateStock(42, -1)
		assert.True(t, domain.IsNotFound(err))
	})
}

func TestRecalculateAverageRating(t *testing.T) {
	t.Run("mean of all ratings", func(t *testing.T) {
		g := &entity.Game{ID: 1}
		svc, repo, _, _, reviews := newCatalogFixture(g)
		reviews.byGame[1] = []*entity.Review{
			{Rating: 3}, {Rating: 4}, {Rating: 5},
		}

		avg, err := svc.RecalculateAverageRating(1)
		require.NoError(t, err)
		require.NotNil(t, avg)
		assert.InDelta(t, 4.0, *avg, 1e-9)
		require.NotNil(t, g.AverageRating)
		assert.InDelta(t, 4.0, *g.AverageRating, 1e-9)
		assert.Equal(t, 1, repo.saveCalls)
	})

	t.Run("no reviews clears the rating", func(t *testing.T) {
		prev := 4.5
		g := &entity.Game{ID: 1, AverageRating: &prev}
		svc, repo, _, _, _ := newCatalogFixture(g)

		avg, err := svc.RecalculateAverageRating(1)
		require.NoError(t, err)
		assert.Nil(t, avg)
		assert.Nil(t, g.AverageRating)
		assert.Equal(t, 1, repo.saveCalls)
	})

	t.Run("missing game", func(t *testing.T) {
		svc, _, _, _, _ := newCatalogFixture()
		_, err := svc.RecalculateAverageRating(7)
		assert.True(t, domain.IsNotFound(err))
	})
}

func TestFindTopRatedUsesThreshold(t *testing.T) {
	svc, repo, _, _, _ := newCatalogFixture()
	_, err := svc.FindTopRated()
	require.NoError(t, err)
	assert.Equal(t, TopRatedThreshold, repo.minRating)
}

func TestRecommendPassesFiltersThrough(t *testing.T) {
	svc, repo, _, _, _ := newCatalogFixture()
	_, err := svc.Recommend([]int64{1, 2}, []int64{3}, []int64{9})
	require.NoError(t, err)
	require.Len(t, repo.recommendArgs, 3)
	assert.Equal(t, []int64{1, 2}, repo.recommendArgs[0])
	assert.Equal(t, []int64{3}, repo.recommendArgs[1])
	assert.Equal(t, []int64{9}, repo.recommendArgs[2])
}

func TestFindNewReleasesUsesCalendarMonth(t *testing.T) {
	svc, repo, _, _, _ := newCatalogFixture()
	svc.Now = func() time.Time {
		return time.Date(2026, time.March, 31, 12, 0, 0, 0, time.UTC)
	}

	_, err := svc.FindNewReleases()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.February, 28, 12, 0, 0, 0, time.UTC), repo.releasedAfter)
}

func TestOneMonthBefore(t *testing.T) {
	cases := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			"plain date",
			time.Date(2026, time.July, 15, 8, 30, 0, 0, time.UTC),
			time.Date(2026, time.June, 15, 8, 30, 0, 0, time.UTC),
		},
		{
			"clamps to end of February",
			time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC),
			time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			"leap year keeps the 29th",
			time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC),
			time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			"January wraps to previous December",
			time.Date(2026, time.January, 31, 0, 0, 0, 0, time.UTC),
			time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			"31st to a 30-day month",
			time.Date(2026, time.May, 31, 0, 0, 0, 0, time.UTC),
			time.Date(2026, time.April, 30, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, oneMonthBefore(tc.in))
		})
	}
}
