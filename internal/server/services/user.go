// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, and issuing bearer tokens.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/staffkeeper/internal/server/auth"
	"github.com/dmitrijs2005/staffkeeper/internal/server/config"
	"github.com/dmitrijs2005/staffkeeper/internal/server/models"
	"github.com/dmitrijs2005/staffkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/staffkeeper/internal/shared"
)

// UserService provides authentication-related operations:
// - Register: create a user and mint a token
// - Login: verify credentials and mint a token
type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
	bcryptCost            int
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
		bcryptCost:            cfg.BcryptCost,
	}
}

// Register hashes the password, persists a new user, and returns a signed
// bearer token for the fresh account. A duplicate email surfaces as
// shared.ErrorAlreadyExists.
func (s *UserService) Register(ctx context.Context, name, email, password string) (string, error) {
	repo := s.repomanager.Users(s.db)

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %v", err)
	}

	user := &models.User{Name: name, Email: email, PasswordHash: hash}
	user, err = repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, shared.ErrorAlreadyExists) {
			return "", err
		}
		return "", fmt.Errorf("error creating user: %v", err)
	}

	token, err := auth.GenerateToken(user.ID, user.Email, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return "", shared.ErrorInternal
	}

	return token, nil
}

// Login verifies the credentials and returns a signed bearer token. An
// unknown email and a wrong password both map to the same
// shared.ErrorInvalidCredentials so callers cannot tell which part failed.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrorNotFound) {
			return "", shared.ErrorInvalidCredentials
		}
		return "", shared.ErrorInternal
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return "", shared.ErrorInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.Email, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return "", shared.ErrorInternal
	}

	return token, nil
}
