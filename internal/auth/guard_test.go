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

var _ = Describe("Guard", func() {
	var (
		issuer *auth.TokenIssuer
		guard  *auth.Guard
		cred   *auth.Credential
	)

	ctxWithToken := func(token string) context.Context {
		return internal.ContextWithToken(context.Background(), token)
	}

	BeforeEach(func() {
		issuer = auth.NewTokenIssuer("guard-secret", time.Hour)
		guard = auth.NewGuard(issuer, slog.Default())
		cred = &auth.Credential{
			ID:       "42",
			Username: "companyHR",
			Email:    "companyHR@companyHR.com",
			Role:     auth.RoleCompanyHR,
		}
	})

	It("rejects a request with no bearer token", func() {
		_, err := guard.Authorize(context.Background(), nil)
		Expect(err).To(MatchError(internal.ErrNoToken))
	})

	It("rejects a malformed token", func() {
		_, err := guard.Authorize(ctxWithToken("not.a.jwt"), nil)
		Expect(err).To(MatchError(internal.ErrInvalidToken))
	})

	It("rejects a token signed with the wrong secret", func() {
		forger := auth.NewTokenIssuer("other-secret", time.Hour)
		token, err := forger.IssueAccessToken(cred)
		Expect(err).NotTo(HaveOccurred())

		_, err = guard.Authorize(ctxWithToken(token), nil)
		Expect(err).To(MatchError(internal.ErrInvalidToken))
	})

	It("rejects an expired token with the expired kind", func() {
		shortLived := auth.NewTokenIssuer("guard-secret", time.Millisecond)
		token, err := shortLived.IssueAccessToken(cred)
		Expect(err).NotTo(HaveOccurred())

		Eventually(func() error {
			_, err := guard.Authorize(ctxWithToken(token), nil)
			return err
		}).Should(MatchError(internal.ErrTokenExpired))
	})

	It("admits any verified caller when the allow-list is empty", func() {
		token, err := issuer.IssueAccessToken(cred)
		Expect(err).NotTo(HaveOccurred())

		claims, err := guard.Authorize(ctxWithToken(token), nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(claims.Username).To(Equal("companyHR"))
		Expect(claims.Role).To(Equal(auth.RoleCompanyHR))
	})

	It("admits a caller whose role is in the allow-list", func() {
		token, err := issuer.IssueAccessToken(cred)
		Expect(err).NotTo(HaveOccurred())

		_, err = guard.Authorize(ctxWithToken(token), []auth.Role{auth.RoleAdmin, auth.RoleCompanyHR})
		Expect(err).NotTo(HaveOccurred())
	})

	It("rejects a caller whose role is outside the allow-list", func() {
		token, err := issuer.IssueAccessToken(cred)
		Expect(err).NotTo(HaveOccurred())

		_, err = guard.Authorize(ctxWithToken(token), []auth.Role{auth.RoleSystemAdmin, auth.RoleAdmin})
		Expect(err).To(MatchError(internal.ErrRoleNotAllowed))
	})
})
