package services

import (
	"bytes"
	"context"
	"errors"

	"github.com/dmitrijs2005/dkcards/internal/common"
	"github.com/dmitrijs2005/dkcards/internal/cryptox"
	"github.com/dmitrijs2005/dkcards/internal/logging"
	"github.com/dmitrijs2005/dkcards/internal/models"
	"github.com/dmitrijs2005/dkcards/internal/repositories/users"
	"github.com/google/uuid"
)

// CredentialStore persists identities and checks secrets against their
// bcrypt hashes.
type CredentialStore struct {
	users  users.Repository
	hasher *cryptox.Hasher
	log    logging.Logger
}

func NewCredentialStore(repo users.Repository, hasher *cryptox.Hasher, log logging.Logger) *CredentialStore {
	return &CredentialStore{users: repo, hasher: hasher, log: log}
}

// Register creates a user and returns its id. Blank fields yield an
// *common.InvalidInputError; a taken email yields common.ErrDuplicateEmail.
func (s *CredentialStore) Register(ctx context.Context, name, email string, secret []byte) (string, error) {
	var missing []string
	if common.IsBlank(name) {
		missing = append(missing, "name")
	}
	if common.IsBlank(email) {
		missing = append(missing, "email")
	}
	if len(bytes.TrimSpace(secret)) == 0 {
		missing = append(missing, "secret")
	}
	if err := common.NewInvalidInputError(missing...); err != nil {
		return "", err
	}

	hash, err := s.hasher.Hash(secret)
	if errors.Is(err, cryptox.ErrSecretTooLong) {
		return "", common.NewInvalidInputError("secret")
	}
	if err != nil {
		return "", err
	}

	u := &models.User{
		ID:         uuid.NewString(),
		Name:       name,
		Email:      email,
		SecretHash: hash,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, common.ErrDuplicate) {
			return "", common.ErrDuplicateEmail
		}
		return "", err
	}

	s.log.Info(ctx, "user registered", "user_id", u.ID)
	return u.ID, nil
}

// Authenticate returns the user whose email and secret match.
// An unknown email and a wrong secret both give common.ErrInvalidCredentials
// after a bcrypt comparison of the same cost.
func (s *CredentialStore) Authenticate(ctx context.Context, email string, secret []byte) (*models.User, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.CompareDecoy(secret)
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Compare(u.SecretHash, secret) {
		return nil, common.ErrInvalidCredentials
	}
	return u, nil
}

// Verify is the boolean form of Authenticate. Only store failures are
// returned as errors.
func (s *CredentialStore) Verify(ctx context.Context, email string, secret []byte) (bool, error) {
	_, err := s.Authenticate(ctx, email, secret)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, common.ErrInvalidCredentials):
		return false, nil
	default:
		return false, err
	}
}
