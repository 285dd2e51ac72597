package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/mccajr2/reading-rewards/internal/domain"
	"github.com/mccajr2/reading-rewards/internal/repository"
)

var (
	ErrUserNotFound  = repository.ErrUserNotFound
	ErrChildNotFound = errors.New("child not found")
)

type UserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByUsername(ctx context.Context, username string) (domain.User, error)
	FindChildren(ctx context.Context, parentID uint) ([]domain.User, error)
	UpdatePassword(ctx context.Context, id uint, hashedPassword string) error
}

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}

func (s *UserService) GetChildren(ctx context.Context, parentID uint) ([]domain.User, error) {
	children, err := s.repo.FindChildren(ctx, parentID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindChildren -> %w", err)
	}

	return children, nil
}

// CreateChild makes a child account under the parent. Children have no
// email and are born verified, the parent vouches for them.
func (s *UserService) CreateChild(ctx context.Context, parentID uint, child domain.User) (domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(child.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}

	child.Password = string(hash)
	child.Role = domain.RoleChild
	child.Status = domain.StatusVerified
	child.Email = ""
	child.ParentID = &parentID

	created, err := s.repo.Create(ctx, child)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// ResetChildPassword only works on a child that belongs to the caller.
func (s *UserService) ResetChildPassword(ctx context.Context, parentID uint, childUsername, newPassword string) error {
	child, err := s.repo.FindByUsername(ctx, childUsername)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrChildNotFound
		}

		return fmt.Errorf("s.repo.FindByUsername -> %w", err)
	}

	if child.ParentID == nil || *child.ParentID != parentID {
		return ErrChildNotFound
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err = s.repo.UpdatePassword(ctx, child.ID, string(hash)); err != nil {
		return fmt.Errorf("s.repo.UpdatePassword -> %w", err)
	}

	return nil
}

// GetOwnChild resolves a child id and verifies it belongs to the parent.
func (s *UserService) GetOwnChild(ctx context.Context, parentID, childID uint) (domain.User, error) {
	child, err := s.repo.FindByID(ctx, childID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrChildNotFound
		}

		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if child.ParentID == nil || *child.ParentID != parentID {
		return domain.User{}, ErrChildNotFound
	}

	return child, nil
}
