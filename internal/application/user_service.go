package application

import (
	"github.com/sirupsen/logrus"

	"github.com/eshopexpress/backend/internal/cache"
	"github.com/eshopexpress/backend/internal/domain"
	"github.com/eshopexpress/backend/internal/domain/entity"
	repo "github.com/eshopexpress/backend/internal/domain/repository"
	"github.com/eshopexpress/backend/pkg/helpers"
)

// UserService manages customer accounts. No login or token handling lives
// here; the service only stores accounts and hashes passwords at rest.
type UserService struct {
	Repo   repo.UserRepository
	Cache  *cache.Store
	Logger *logrus.Logger
}

func NewUserService(users repo.UserRepository, store *cache.Store, logger *logrus.Logger) *UserService {
	return &UserService{Repo: users, Cache: store, Logger: logger}
}

const allUsersKey = "all"

func (s *UserService) ListAll() ([]*entity.User, error) {
	if v, ok := s.Cache.Get(cache.Users, allUsersKey); ok {
		return v.([]*entity.User), nil
	}
	users, err := s.Repo.FindAll()
	if err != nil {
		return nil, err
	}
	s.Cache.Put(cache.Users, allUsersKey, users)
	return users, nil
}

func (s *UserService) FindByID(id int64) (*entity.User, error) {
	return s.Repo.FindByID(id)
}

func (s *UserService) RequireByID(id int64) (*entity.User, error) {
	u, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.NewNotFound("User", id)
	}
	return u, nil
}

func (s *UserService) FindByFirstName(firstName string) ([]*entity.User, error) {
	return s.Repo.FindByFirstName(firstName)
}

func (s *UserService) FindByLastName(lastName string) ([]*entity.User, error) {
	return s.Repo.FindByLastName(lastName)
}

func (s *UserService) FindByCity(city string) ([]*entity.User, error) {
	return s.Repo.FindByCity(city)
}

// Save upserts the user, hashing plainPassword with bcrypt when provided,
// and evicts the users cache.
func (s *UserService) Save(u *entity.User, plainPassword string) (*entity.User, error) {
	if plainPassword != "" {
		hash, err := helpers.HashPassword(plainPassword)
		if err != nil {
			return nil, err
		}
		u.Password = hash
	}
	if err := s.Repo.Save(u); err != nil {
		return nil, err
	}
	s.Cache.EvictAll(cache.Users)
	return u, nil
}

func (s *UserService) DeleteByID(id int64) error {
	if err := s.Repo.DeleteByID(id); err != nil {
		return err
	}
	s.Cache.EvictAll(cache.Users)
	return nil
}
