package auth_test

import (
	"context"
	"log/slog"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/peopleops/hr-management/internal"
	"github.com/peopleops/hr-management/internal/auth"
)

type mockCredentialStore struct {
	creds map[string]*auth.Credential
	err   error
}

func newMockCredentialStore() *mockCredentialStore {
	return &mockCredentialStore{creds: make(map[string]*auth.Credential)}
}

func (m *mockCredentialStore) FindByUsername(_ context.Context, username string) (*auth.Credential, error) {
	if m.err != nil {
		return nil, m.err
	}
	cred, ok := m.creds[username]
	if !ok {
		return nil, internal.ErrUserNotFound
	}
	return cred, nil
}

var _ = Describe("AuthService", func() {
	var (
		service *auth.Service
		store   *mockCredentialStore
		hasher  *auth.Hasher
		issuer  *auth.TokenIssuer
	)

	BeforeEach(func() {
		store = newMockCredentialStore()
		hasher = auth.NewHasher(4)
		issuer = auth.NewTokenIssuer("test-secret", time.Hour)
		service = auth.NewService(store, hasher, issuer, slog.Default())

		hash, err := hasher.Hash("Test1234?")
		Expect(err).NotTo(HaveOccurred())
		store.creds["admin"] = &auth.Credential{
			ID:           "b4434b42-1772-4f2c-b2aa-93be99d7fa1e",
			Username:     "admin",
			Email:        "admin@admin.com",
			PasswordHash: hash,
			Role:         auth.RoleAdmin,
		}
	})

	Describe("Login", func() {
		It("returns tokens whose claims decode to the stored user", func() {
			payload, err := service.Login(context.Background(), "admin", "Test1234?")
			Expect(err).NotTo(HaveOccurred())
			Expect(payload.Username).To(Equal("admin"))
			Expect(payload.Email).To(Equal("admin@admin.com"))
			Expect(payload.Role).To(Equal(auth.RoleAdmin))
			Expect(payload.RefreshToken).NotTo(BeEmpty())

			claims, err := issuer.VerifyAccessToken(payload.AccessToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(claims.Subject).To(Equal("b4434b42-1772-4f2c-b2aa-93be99d7fa1e"))
			Expect(claims.Username).To(Equal("admin"))
			Expect(claims.Email).To(Equal("admin@admin.com"))
			Expect(claims.Role).To(Equal(auth.RoleAdmin))
		})

		It("fails with incorrect-password on a wrong password", func() {
			_, err := service.Login(context.Background(), "admin", "nope")
			Expect(err).To(MatchError(internal.ErrIncorrectPassword))
		})

		It("fails with user-not-found for an unknown username", func() {
			_, err := service.Login(context.Background(), "ghost", "Test1234?")
			Expect(err).To(MatchError(internal.ErrUserNotFound))
		})

		It("skips password verification when no password is supplied", func() {
			payload, err := service.Login(context.Background(), "admin", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(payload.AccessToken).NotTo(BeEmpty())
		})

		It("issues a distinct refresh token per login", func() {
			first, err := service.Login(context.Background(), "admin", "Test1234?")
			Expect(err).NotTo(HaveOccurred())
			second, err := service.Login(context.Background(), "admin", "Test1234?")
			Expect(err).NotTo(HaveOccurred())
			Expect(first.RefreshToken).NotTo(Equal(second.RefreshToken))
		})
	})

	Describe("Hasher", func() {
		It("verifies a hashed password and rejects mismatches", func() {
			hash, err := hasher.Hash("secret")
			Expect(err).NotTo(HaveOccurred())
			Expect(hasher.Verify("secret", hash)).To(BeTrue())
			Expect(hasher.Verify("other", hash)).To(BeFalse())
		})

		It("treats a malformed hash as a mismatch", func() {
			Expect(hasher.Verify("secret", "not-a-bcrypt-hash")).To(BeFalse())
		})
	})
})
