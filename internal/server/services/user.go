// Package services contains server-side business logic. This file implements
// UserService, which handles signup, signin and profile lookups.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/pickgate/internal/common"
	"github.com/dmitrijs2005/pickgate/internal/cryptox"
	"github.com/dmitrijs2005/pickgate/internal/server/auth"
	"github.com/dmitrijs2005/pickgate/internal/server/config"
	"github.com/dmitrijs2005/pickgate/internal/server/models"
	"github.com/dmitrijs2005/pickgate/internal/server/repositories/repomanager"
)

// UserService provides authentication-related operations:
// - Signup: create users
// - Signin: verify credentials and mint a token
// - Profile: load the authenticated user
type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
	// nil for the plain scheme, where the store compares passwords itself
	hasher cryptox.Hasher
}

// NewUserService constructs a UserService using repositories and server config.
// db may be nil for the memory storage driver.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) (*UserService, error) {
	var hasher cryptox.Hasher
	if cfg.PasswordScheme != config.PasswordSchemePlain {
		h, err := cryptox.NewHasher(cfg.PasswordScheme)
		if err != nil {
			return nil, err
		}
		hasher = h
	}

	return &UserService{
		db:                    db,
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
		hasher:                hasher,
	}, nil
}

// Signup stores a new user. A taken email yields common.ErrUserAlreadyExists.
func (s *UserService) Signup(ctx context.Context, email, password, name string) (*models.User, error) {
	stored := password
	if s.hasher != nil {
		hash, err := s.hasher.Hash([]byte(password))
		if err != nil {
			return nil, fmt.Errorf("error hashing password: %w", err)
		}
		stored = hash
	}

	user := &models.User{Email: email, Password: stored, Name: name}

	u, err := s.repomanager.Users(s.db).Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrUserAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Signin checks the credentials and returns a signed token for the user.
func (s *UserService) Signin(ctx context.Context, email, password string) (string, error) {
	user, err := s.findByCredentials(ctx, email, password)
	if err != nil {
		return "", err
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}
	return token, nil
}

// Profile returns the stored record for userID.
func (s *UserService) Profile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	return user, nil
}

func (s *UserService) findByCredentials(ctx context.Context, email, password string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	if s.hasher == nil {
		user, err := repo.FindByCredentials(ctx, email, password)
		return user, mapLookupError(err)
	}

	user, err := repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, mapLookupError(err)
	}
	if !s.hasher.Verify(user.Password, []byte(password)) {
		return nil, common.ErrInvalidCredentials
	}
	return user, nil
}

func mapLookupError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, common.ErrorNotFound):
		return common.ErrInvalidCredentials
	default:
		return common.ErrorInternal
	}
}
