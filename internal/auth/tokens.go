package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/peopleops/hr-management/internal"
)

// TokenIssuer creates and verifies HMAC-signed access tokens. Issued tokens
// are not persisted anywhere: verification is a pure function of the token
// and the secret.
type TokenIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func NewTokenIssuer(secret string, accessTTL time.Duration) *TokenIssuer {
	if accessTTL <= 0 {
		accessTTL = time.Hour
	}
	return &TokenIssuer{
		secret:    []byte(secret),
		accessTTL: accessTTL,
	}
}

// IssueAccessToken signs a time-limited HS256 token carrying the user's
// identity and role claims.
func (t *TokenIssuer) IssueAccessToken(cred *Credential) (string, error) {
	now := time.Now()
	claims := &Claims{
		Username: cred.Username,
		Email:    cred.Email,
		Role:     cred.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   cred.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.accessTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}

// IssueRefreshToken produces an opaque accompanying value derived from the
// username and current time. There is no stored mapping back to a session,
// so it cannot be redeemed for a new access token anywhere in this system.
func (t *TokenIssuer) IssueRefreshToken(username string) (string, error) {
	seed := username + strconv.FormatInt(time.Now().UnixMilli(), 10)
	hash, err := bcrypt.GenerateFromPassword([]byte(seed), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("derive refresh token: %w", err)
	}
	return string(hash), nil
}

// VerifyAccessToken validates signature and expiry and returns the claims.
// Failure kinds: expired tokens map to TokenExpired, malformed or forged
// tokens to Unauthenticated, and anything else to an opaque Forbidden.
func (t *TokenIssuer) VerifyAccessToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return t.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, internal.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed),
			errors.Is(err, jwt.ErrTokenSignatureInvalid),
			errors.Is(err, jwt.ErrSignatureInvalid):
			return nil, internal.ErrInvalidToken
		default:
			return nil, internal.ErrAuthFailed
		}
	}
	if !token.Valid {
		return nil, internal.ErrInvalidToken
	}
	return claims, nil
}
