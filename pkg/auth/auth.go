// Package auth validates staff credentials against the Users collection.
// Cookie/session issuance is handled by the deployment's front proxy and is
// out of scope here.
package auth

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/example/wingkiosk/pkg/models"
)

type UserStore interface {
	GetByUsername(ctx context.Context, username string) (*models.StaffUser, error)
}

type Service struct {
	users  UserStore
	logger *zap.Logger
}

func NewService(users UserStore, logger *zap.Logger) *Service {
	return &Service{users: users, logger: logger}
}

// Validate checks a username/password pair and returns the user on success,
// nil for any credential failure. Only store errors are returned as errors.
func (s *Service) Validate(ctx context.Context, username, password string) (*models.StaffUser, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" || password == "" {
		return nil, nil
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		s.logger.Info("login failed, user not found", zap.String("username", username))
		return nil, nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(strings.TrimSpace(user.Password)), []byte(password)); err != nil {
		s.logger.Info("login failed, bad password", zap.String("username", username))
		return nil, nil
	}
	return user, nil
}

// HashPassword wraps bcrypt for the seeding path that creates staff
// accounts.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
