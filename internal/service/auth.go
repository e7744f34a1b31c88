package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/NagbhushanPai/Incubyte-Project/internal/hash"
	"github.com/NagbhushanPai/Incubyte-Project/internal/logging"
	"github.com/NagbhushanPai/Incubyte-Project/internal/models"
	"github.com/NagbhushanPai/Incubyte-Project/internal/repo"
	"github.com/NagbhushanPai/Incubyte-Project/internal/tokens"
)

type AuthService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
	TokenTTL  time.Duration
}

// Register creates the account and returns a fresh session token. The
// duplicate-email check is delegated to the store's unique constraint.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (string, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if email == "" || password == "" {
		return "", fmt.Errorf("%w: email and password required", ErrValidation)
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("register_error", "reason", "cannot hash the password", "error", err)
		return "", err
	}

	user := models.User{
		Email:        email,
		PasswordHash: pwHash,
		Name:         name,
		Role:         models.RoleUser,
	}
	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			l.Warn("register_error", "status", 409, "reason", "email already in use")
			return "", fmt.Errorf("%w: %s", ErrEmailTaken, email)
		}
		l.Error("register_error", "status", 500, "error", err)
		return "", err
	}

	token, err := tokens.SignAccessToken(user.ID.String(), user.Role, s.JWTSecret, s.TokenTTL)
	if err != nil {
		l.Error("register_error", "reason", "cannot sign token", "error", err)
		return "", err
	}

	l.Info("register_success", "user_id", user.ID)
	return token, nil
}

// Login verifies credentials. Unknown email and wrong password collapse to
// the same error so the response leaks nothing about which field was wrong.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	if email == "" || password == "" {
		return "", fmt.Errorf("%w: email and password required", ErrValidation)
	}

	user, err := s.Repo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("login_failed", "status", 401)
			return "", ErrInvalidCredentials
		}
		l.Error("login_failed", "status", 500, "error", err)
		return "", err
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login_failed", "status", 401)
		return "", ErrInvalidCredentials
	}

	token, err := tokens.SignAccessToken(user.ID.String(), user.Role, s.JWTSecret, s.TokenTTL)
	if err != nil {
		l.Error("login_failed", "reason", "cannot sign token", "error", err)
		return "", err
	}

	l.Info("login_success", "user_id", user.ID)
	return token, nil
}
