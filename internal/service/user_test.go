package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mccajr2/reading-rewards/internal/domain"
	"github.com/mccajr2/reading-rewards/internal/repository"
)

type fakeUserRepo struct {
	users  []domain.User
	nextID uint
}

func (f *fakeUserRepo) Create(_ context.Context, user domain.User) (domain.User, error) {
	f.nextID++
	user.ID = f.nextID
	f.users = append(f.users, user)

	return user, nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uint) (domain.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}

	return domain.User{}, repository.ErrUserNotFound
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (domain.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}

	return domain.User{}, repository.ErrUserNotFound
}

func (f *fakeUserRepo) FindChildren(_ context.Context, parentID uint) ([]domain.User, error) {
	var children []domain.User
	for _, u := range f.users {
		if u.ParentID != nil && *u.ParentID == parentID {
			children = append(children, u)
		}
	}

	return children, nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, id uint, hashedPassword string) error {
	for i, u := range f.users {
		if u.ID == id {
			f.users[i].Password = hashedPassword

			return nil
		}
	}

	return repository.ErrUserNotFound
}

func TestUserService_CreateChild(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := NewUserService(repo)

	child, err := svc.CreateChild(context.Background(), 7, domain.User{
		Username:  "ben",
		FirstName: "Ben",
		Password:  "password1",
		Email:     "should-be-dropped@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.RoleChild, child.Role)
	assert.Equal(t, domain.StatusVerified, child.Status)
	assert.Empty(t, child.Email)
	require.NotNil(t, child.ParentID)
	assert.Equal(t, uint(7), *child.ParentID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(child.Password), []byte("password1")))
}

func TestUserService_ResetChildPassword(t *testing.T) {
	parentID := uint(7)
	otherParent := uint(8)
	repo := &fakeUserRepo{
		users: []domain.User{
			{ID: 1, Role: domain.RoleChild, Username: "ben", ParentID: &parentID, Password: "old"},
			{ID: 2, Role: domain.RoleChild, Username: "cara", ParentID: &otherParent, Password: "old"},
		},
		nextID: 2,
	}
	svc := NewUserService(repo)

	err := svc.ResetChildPassword(context.Background(), parentID, "ben", "newpassword1")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.users[0].Password), []byte("newpassword1")))

	// Someone else's child looks exactly like a missing child.
	err = svc.ResetChildPassword(context.Background(), parentID, "cara", "newpassword1")
	assert.ErrorIs(t, err, ErrChildNotFound)
	assert.Equal(t, "old", repo.users[1].Password)

	err = svc.ResetChildPassword(context.Background(), parentID, "ghost", "newpassword1")
	assert.ErrorIs(t, err, ErrChildNotFound)
}

func TestUserService_GetOwnChild(t *testing.T) {
	parentID := uint(7)
	otherParent := uint(8)
	repo := &fakeUserRepo{
		users: []domain.User{
			{ID: 1, Role: domain.RoleChild, Username: "ben", ParentID: &parentID},
			{ID: 2, Role: domain.RoleChild, Username: "cara", ParentID: &otherParent},
		},
	}
	svc := NewUserService(repo)

	child, err := svc.GetOwnChild(context.Background(), parentID, 1)
	require.NoError(t, err)
	assert.Equal(t, "ben", child.Username)

	_, err = svc.GetOwnChild(context.Background(), parentID, 2)
	assert.ErrorIs(t, err, ErrChildNotFound)

	_, err = svc.GetOwnChild(context.Background(), parentID, 99)
	assert.ErrorIs(t, err, ErrChildNotFound)
}
