package user

import (
	"context"

	"github.com/peopleops/hr-management/internal/auth"
)

// CredentialStore adapts the user service to the auth package's lookup
// contract, keeping the auth module free of a dependency on this package.
type CredentialStore struct {
	svc *Service
}

func NewCredentialStore(svc *Service) *CredentialStore {
	return &CredentialStore{svc: svc}
}

func (c *CredentialStore) FindByUsername(ctx context.Context, username string) (*auth.Credential, error) {
	u, err := c.svc.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return &auth.Credential{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
	}, nil
}
