package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/eshopexpress/backend/internal/cache"
	"github.com/eshopexpress/backend/internal/domain"
	"github.com/eshopexpress/backend/internal/domain/entity"
)

type fakeUserRepo struct {
	users map[int64]*entity.User

	findAllCalls int
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[int64]*entity.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) FindAll() ([]*entity.User, error) {
	r.findAllCalls++
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepo) FindByID(id int64) (*entity.User, error)       { return r.users[id], nil }
func (r *fakeUserRepo) FindByEmail(string) (*entity.User, error)      { return nil, nil }
func (r *fakeUserRepo) FindByFirstName(string) ([]*entity.User, error) { return nil, nil }
func (r *fakeUserRepo) FindByLastName(string) ([]*entity.User, error)  { return nil, nil }
func (r *fakeUserRepo) FindByCity(string) ([]*entity.User, error)      { return nil, nil }

func (r *fakeUserRepo) Save(u *entity.User) error {
	if u.ID == 0 {
		u.ID = int64(len(r.users) + 1)
	}
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) DeleteByID(id int64) error {
	delete(r.users, id)
	return nil
}

func TestUserListAllCaches(t *testing.T) {
	repo := newFakeUserRepo(&entity.User{ID: 1})
	svc := NewUserService(repo, cache.NewStore(), nil)

	_, err := svc.ListAll()
	require.NoError(t, err)
	_, err = svc.ListAll()
	require.NoError(t, err)
	assert.Equal(t, 1, repo.findAllCalls)
}

func TestUserSaveHashesPasswordAndEvicts(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, cache.NewStore(), nil)

	_, err := svc.ListAll()
	require.NoError(t, err)

	u := &entity.User{Username: "demoUser", Email: "demo@eshopexpress.ca"}
	saved, err := svc.Save(u, "password123")
	require.NoError(t, err)

	assert.NotEqual(t, "password123", saved.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.Password), []byte("password123")))
	assert.Equal(t, 0, svc.Cache.Len(cache.Users))
}

func TestUserSaveKeepsHashWhenPasswordEmpty(t *testing.T) {
	existing := &entity.User{ID: 1, Password: "$2a$10$existinghash"}
	repo := newFakeUserRepo(existing)
	svc := NewUserService(repo, cache.NewStore(), nil)

	saved, err := svc.Save(existing, "")
	require.NoError(t, err)
	assert.Equal(t, "$2a$10$existinghash", saved.Password)
}

func TestUserRequireByIDMissing(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), cache.NewStore(), nil)

	_, err := svc.RequireByID(12)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
	assert.Equal(t, "User not found with id: 12", err.Error())
}

func TestUserDeleteEvicts(t *testing.T) {
	repo := newFakeUserRepo(&entity.User{ID: 1})
	svc := NewUserService(repo, cache.NewStore(), nil)

	_, err := svc.ListAll()
	require.NoError(t, err)
	require.Equal(t, 1, svc.Cache.Len(cache.Users))

	require.NoError(t, svc.DeleteByID(1))
	assert.Equal(t, 0, svc.Cache.Len(cache.Users))
}
