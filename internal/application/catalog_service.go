package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/eshopexpress/backend/internal/cache"
	"github.com/eshopexpress/backend/internal/domain"
	"github.com/eshopexpress/backend/internal/domain/entity"
	repo "github.com/eshopexpress/backend/internal/domain/repository"
	"github.com/eshopexpress/backend/pkg/helpers"
)

// TopRatedThreshold is the minimum average rating for FindTopRated.
const TopRatedThreshold = 4.0

// CatalogService owns the game catalog: lookups, the read-through caches for
// platform and genre queries, derived-state maintenance (stock, average
// rating) and recommendations.
type CatalogService struct {
	Games     repo.GameRepository
	Platforms repo.PlatformRepository
	Genres    repo.GenreRepository
	Reviews   repo.ReviewRepository
	Cache     *cache.Store

	GCS          *storage.Client
	GCSBucket    string
	ES           *elasticsearch.Client
	ESGamesIndex string
	Logger       *logrus.Logger

	// Now is the clock used by FindNewReleases; overridable in tests.
	Now func() time.Time
}

func NewCatalogService(games repo.GameRepository, platforms repo.PlatformRepository, genres repo.GenreRepository, reviews repo.ReviewRepository, store *cache.Store, gcs *storage.Client, gcsBucket string, es *elasticsearch.Client, esGamesIndex string, logger *logrus.Logger) *CatalogService {
	return &CatalogService{
		Games:        games,
		Platforms:    platforms,
		Genres:       genres,
		Reviews:      reviews,
		Cache:        store,
		GCS:          gcs,
		GCSBucket:    gcsBucket,
		ES:           es,
		ESGamesIndex: esGamesIndex,
		Logger:       logger,
		Now:          time.Now,
	}
}

func (s *CatalogService) ListAll() ([]*entity.Game, error) {
	return s.Games.FindAll()
}

// FindByID returns (nil, nil) when the game does not exist; absence is not
// an error here.
func (s *CatalogService) FindByID(id int64) (*entity.Game, error) {
	return s.Games.FindByID(id)
}

// RequireByID is FindByID for callers that expect the game to exist.
func (s *CatalogService) RequireByID(id int64) (*entity.Game, error) {
	g, err := s.Games.FindByID(id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, domain.NewNotFound("Game", id)
	}
	return g, nil
}

func (s *CatalogService) FindByTitle(title string) ([]*entity.Game, error) {
	return s.Games.FindByTitle(title)
}

// FindByPlatform resolves the platform name (case-insensitive substring) and
// returns the games available on it. Results are read-through cached keyed
// by the lowercased name; a failed resolution is not cached.
func (s *CatalogService) FindByPlatform(name string) ([]*entity.Game, error) {
	key := strings.ToLower(name)
	if v, ok := s.Cache.Get(cache.GamesByPlatform, key); ok {
		return v.([]*entity.Game), nil
	}
	p, err := s.Platforms.FindByNameContaining(name)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NotFoundf("Platform", name)
	}
	games, err := s.Games.FindByPlatformID(p.ID)
	if err != nil {
		return nil, err
	}
	s.Cache.Put(cache.GamesByPlatform, key, games)
	return games, nil
}

// FindByGenre is FindByPlatform against genres, cached under its own name.
func (s *CatalogService) FindByGenre(name string) ([]*entity.Game, error) {
	key := strings.ToLower(name)
	if v, ok := s.Cache.Get(cache.GamesByGenre, key); ok {
		return v.([]*entity.Game), nil
	}
	g, err := s.Genres.FindByNameContaining(name)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, domain.NotFoundf("Genre", name)
	}
	games, err := s.Games.FindByGenreID(g.ID)
	if err != nil {
		return nil, err
	}
	s.Cache.Put(cache.GamesByGenre, key, games)
	return games, nil
}

// FindNewReleases returns games released strictly after one calendar month
// ago, most recent first.
func (s *CatalogService) FindNewReleases() ([]*entity.Game, error) {
	return s.Games.FindReleasedAfter(oneMonthBefore(s.Now()))
}

// FindRecentReleases is FindNewReleases capped at limit rows, used for the
// storefront landing page.
func (s *CatalogService) FindRecentReleases(limit int) ([]*entity.Game, error) {
	return s.Games.FindRecentReleases(oneMonthBefore(s.Now()), limit)
}

// FindTopRated returns games with an average rating of 4.0 or higher.
// Unrated games never qualify.
func (s *CatalogService) FindTopRated() ([]*entity.Game, error) {
	return s.Games.FindByMinimumRating(TopRatedThreshold)
}

// Recommend returns games matching at least one of the given genres and at
// least one of the given platforms, excluding the supplied game ids
// (typically games the user already owns).
func (s *CatalogService) Recommend(genreIDs, platformIDs, excludeGameIDs []int64) ([]*entity.Game, error) {
	return s.Games.FindRecommended(genreIDs, platformIDs, excludeGameIDs)
}

// Save upserts the game and evicts every entry of both catalog caches: a
// single game's platform or genre membership change can affect arbitrarily
// many cached query results, so eviction is coarse on purpose.
func (s *CatalogService) Save(ctx context.Context, g *entity.Game) (*entity.Game, error) {
	if err := s.Games.Save(g); err != nil {
		return nil, err
	}
	s.Cache.EvictAll(cache.GamesByPlatform, cache.GamesByGenre)
	_ = s.indexGame(ctx, g)
	return g, nil
}

// DeleteByID removes the game with the same coarse cache eviction as Save.
func (s *CatalogService) DeleteByID(ctx context.Context, id int64) error {
	if err := s.Games.DeleteByID(id); err != nil {
		return err
	}
	s.Cache.EvictAll(cache.GamesByPlatform, cache.GamesByGenre)
	s.deindexGame(ctx, id)
	return nil
}

// UpdateStock adjusts the stock of a physical game by delta (negative for a
// sale, positive for a restock), never letting it drop below zero. Digital
// games have no stock to track; the call is a no-op for them.
func (s *CatalogService) UpdateStock(gameID int64, delta int) error {
	g, err := s.RequireByID(gameID)
	if err != nil {
		return err
	}
	if g.Digital {
		return nil
	}
	newQty := g.StockQuantity + delta
	if newQty < 0 {
		newQty = 0
	}
	g.StockQuantity = newQty
	return s.Games.Save(g)
}

// RecalculateAverageRating recomputes the game's average rating as the mean
// of all its review ratings and persists it; with no reviews the rating is
// cleared (persisted null). This is a full recompute with no automatic
// trigger: callers that mutate reviews must invoke it afterwards or the
// stored value drifts.
func (s *CatalogService) RecalculateAverageRating(gameID int64) (*float64, error) {
	g, err := s.RequireByID(gameID)
	if err != nil {
		return nil, err
	}
	reviews, err := s.Reviews.FindByGameID(gameID)
	if err != nil {
		return nil, err
	}
	if len(reviews) == 0 {
		g.AverageRating = nil
	} else {
		sum := 0
		for _, r := range reviews {
			sum += r.Rating
		}
		avg := float64(sum) / float64(len(reviews))
		g.AverageRating = &avg
	}
	if err := s.Games.Save(g); err != nil {
		return nil, err
	}
	return g.AverageRating, nil
}

// UploadCoverImage stores the cover image in GCS, persists the public URL on
// the game and returns it.
func (s *CatalogService) UploadCoverImage(ctx context.Context, gameID int64, r io.Reader, filename, contentType string) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("gcs not configured")
	}
	g, err := s.RequireByID(gameID)
	if err != nil {
		return "", err
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("covers", strconv.FormatInt(gameID, 10), uuid.NewString()+ext))
	url, err := helpers.UploadImageToGCS(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}
	g.CoverImageURL = url
	if _, err := s.Save(ctx, g); err != nil {
		return "", err
	}
	return url, nil
}

// SearchGames performs a multi_match query over title and description in
// Elasticsearch. Returns an empty result when ES is not configured.
func (s *CatalogService) SearchGames(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESGamesIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "description"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESGamesIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

func (s *CatalogService) indexGame(ctx context.Context, g *entity.Game) error {
	if s.ES == nil || s.ESGamesIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":           g.ID,
		"title":        g.Title,
		"description":  g.Description,
		"publisher":    g.Publisher,
		"developer":    g.Developer,
		"digital":      g.Digital,
		"release_date": g.ReleaseDate.Format("2006-01-02"),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESGamesIndex, DocumentID: strconv.FormatInt(g.ID, 10), Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("game_id", g.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("game_id", g.ID).Warn("es index response error")
	}
	return nil
}

func (s *CatalogService) deindexGame(ctx context.Context, id int64) {
	if s.ES == nil || s.ESGamesIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESGamesIndex, DocumentID: strconv.FormatInt(id, 10)}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("game_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

// oneMonthBefore subtracts one calendar month, clamping to the last valid
// day of the shorter month: March 31 lands on February 28 (29 in leap
// years), not March 3. Time of day is preserved.
func oneMonthBefore(t time.Time) time.Time {
	y, m, d := t.Date()
	firstOfPrev := time.Date(y, m-1, 1, 0, 0, 0, 0, t.Location())
	if last := daysInMonth(firstOfPrev.Year(), firstOfPrev.Month()); d > last {
		d = last
	}
	return time.Date(firstOfPrev.Year(), firstOfPrev.Month(), d,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysInMonth(y int, m time.Month) int {
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
