package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/mccajr2/reading-rewards/internal/domain"
	"github.com/mccajr2/reading-rewards/internal/repository"
)

var (
	ErrUserEmailExists    = repository.ErrUserEmailExists
	ErrUserUsernameExists = repository.ErrUserUsernameExists
	ErrWrongPassword      = errors.New("wrong password")
	ErrUserNotVerified    = errors.New("email address not verified")
	ErrTokenNotFound      = errors.New("verification token not found")
)

type AuthUserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindByUsername(ctx context.Context, username string) (domain.User, error)
	FindByVerificationToken(ctx context.Context, token string) (domain.User, error)
	MarkVerified(ctx context.Context, id uint) error
}

type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

type AuthService struct {
	repo   AuthUserRepository
	mailer Mailer
}

func NewAuthService(repo AuthUserRepository, mailer Mailer) *AuthService {
	return &AuthService{
		repo:   repo,
		mailer: mailer,
	}
}

// SignupParent registers an unverified parent and mails out the
// verification link. Mail failure is logged, never surfaced: signup
// must not depend on the mail provider being up.
func (s *AuthService) SignupParent(ctx context.Context, user domain.User) (domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}
	user.Password = string(hash)

	user.Role = domain.RoleParent
	user.Status = domain.StatusUnverified
	user.VerificationToken, err = newVerificationToken()
	if err != nil {
		return domain.User{}, fmt.Errorf("newVerificationToken -> %w", err)
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	subject := "Verify your Reading Rewards account"
	body := fmt.Sprintf("<p>Welcome! Use this code to verify your account: <b>%v</b></p>", created.VerificationToken)
	if err = s.mailer.Send(ctx, created.Email, subject, body); err != nil {
		zap.L().Warn("verification email not sent",
			zap.Uint("user_id", created.ID),
			zap.Error(err))
	}

	return created, nil
}

// Login accepts either an email (parents) or a username (children).
func (s *AuthService) Login(ctx context.Context, email, username, password string) (domain.User, error) {
	var user domain.User
	var err error
	if email != "" {
		user, err = s.repo.FindByEmail(ctx, email)
	} else {
		user, err = s.repo.FindByUsername(ctx, username)
	}
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("s.repo.Find -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return domain.User{}, ErrWrongPassword
	}

	if user.IsParent() && !user.IsVerified() {
		return domain.User{}, ErrUserNotVerified
	}

	return user, nil
}

func (s *AuthService) VerifyEmail(ctx context.Context, token string) (domain.User, error) {
	user, err := s.repo.FindByVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrTokenNotFound
		}

		return domain.User{}, fmt.Errorf("s.repo.FindByVerificationToken -> %w", err)
	}

	if err = s.repo.MarkVerified(ctx, user.ID); err != nil {
		return domain.User{}, fmt.Errorf("s.repo.MarkVerified -> %w", err)
	}

	user.Status = domain.StatusVerified
	user.VerificationToken = ""

	return user, nil
}

func newVerificationToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	return hex.EncodeToString(buf), nil
}
