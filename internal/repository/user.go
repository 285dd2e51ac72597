package repository

import (
	"context"
	"fmt"

	"github.com/mccajr2/reading-rewards/internal/domain"
	"github.com/mccajr2/reading-rewards/internal/repository/dao"
)

var (
	ErrUserEmailExists    = dao.ErrUserEmailExists
	ErrUserUsernameExists = dao.ErrUserUsernameExists
	ErrUserNotFound       = dao.ErrUserNotFound
)

type UserDAO interface {
	Insert(ctx context.Context, user dao.User) (dao.User, error)
	FindByID(ctx context.Context, id uint) (dao.User, error)
	FindByEmail(ctx context.Context, email string) (dao.User, error)
	FindByUsername(ctx context.Context, username string) (dao.User, error)
	FindByVerificationToken(ctx context.Context, token string) (dao.User, error)
	FindByParentID(ctx context.Context, parentID uint) ([]dao.User, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	UpdatePassword(ctx context.Context, id uint, hashedPassword string) error
}

type UserRepository struct {
	dao UserDAO
}

func NewUserRepository(dao UserDAO) *UserRepository {
	return &UserRepository{
		dao: dao,
	}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	created, err := r.dao.Insert(ctx, r.domainToDAO(user))
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	found, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByEmail -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	found, err := r.dao.FindByUsername(ctx, username)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByUsername -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindByVerificationToken(ctx context.Context, token string) (domain.User, error) {
	found, err := r.dao.FindByVerificationToken(ctx, token)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByVerificationToken -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindChildren(ctx context.Context, parentID uint) ([]domain.User, error) {
	found, err := r.dao.FindByParentID(ctx, parentID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByParentID -> %w", err)
	}

	children := make([]domain.User, 0, len(found))
	for _, u := range found {
		children = append(children, r.daoToDomain(u))
	}

	return children, nil
}

func (r *UserRepository) MarkVerified(ctx context.Context, id uint) error {
	if err := r.dao.UpdateStatus(ctx, id, domain.StatusVerified); err != nil {
		return fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}

	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uint, hashedPassword string) error {
	if err := r.dao.UpdatePassword(ctx, id, hashedPassword); err != nil {
		return fmt.Errorf("r.dao.UpdatePassword -> %w", err)
	}

	return nil
}

func (r *UserRepository) daoToDomain(u dao.User) domain.User {
	email := ""
	if u.Email != nil {
		email = *u.Email
	}

	return domain.User{
		ID:                u.ID,
		Role:              u.Role,
		Email:             email,
		Username:          u.Username,
		FirstName:         u.FirstName,
		Password:          u.Password,
		Status:            u.Status,
		VerificationToken: u.VerificationToken,
		ParentID:          u.ParentID,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}

func (r *UserRepository) domainToDAO(u domain.User) dao.User {
	var email *string
	if u.Email != "" {
		email = &u.Email
	}

	return dao.User{
		ID:                u.ID,
		Role:              u.Role,
		Email:             email,
		Username:          u.Username,
		FirstName:         u.FirstName,
		Password:          u.Password,
		Status:            u.Status,
		VerificationToken: u.VerificationToken,
		ParentID:          u.ParentID,
	}
}
