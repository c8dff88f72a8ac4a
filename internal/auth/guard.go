package auth

import (
	"context"
	"log/slog"

	"github.com/peopleops/hr-management/internal"
)

// TokenVerifier validates a bearer token and extracts its claims.
type TokenVerifier interface {
	VerifyAccessToken(token string) (*Claims, error)
}

// Guard enforces authentication and per-operation role allow-lists. It is
// stateless: every call redoes the full verification, nothing is cached
// across requests.
type Guard struct {
	verifier TokenVerifier
	logger   *slog.Logger
}

func NewGuard(verifier TokenVerifier, logger *slog.Logger) *Guard {
	return &Guard{verifier: verifier, logger: logger}
}

// Authorize runs the per-request state machine: absent token rejects as
// unauthenticated, then signature/expiry verification, then the role claim
// is checked against the operation's allow-list. An empty allow-list admits
// any verified caller.
func (g *Guard) Authorize(ctx context.Context, allowed []Role) (*Claims, error) {
	token, ok := internal.TokenFromContext(ctx)
	if !ok {
		return nil, internal.ErrNoToken
	}

	claims, err := g.verifier.VerifyAccessToken(token)
	if err != nil {
		return nil, err
	}

	if len(allowed) == 0 {
		return claims, nil
	}

	for _, role := range allowed {
		if claims.Role == role {
			return claims, nil
		}
	}

	g.logger.Warn("role rejected",
		"username", claims.Username,
		"role", claims.Role,
		"allowed", allowed)
	return nil, internal.ErrRoleNotAllowed
}
