package middleware_test

import (
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/peopleops/hr-management/internal"
	"github.com/peopleops/hr-management/internal/transport/middleware"
)

var _ = Describe("BearerToken", func() {
	var (
		captured    string
		capturedOK  bool
		handler     http.Handler
		lastRequest *http.Request
	)

	BeforeEach(func() {
		handler = middleware.BearerToken(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			captured, capturedOK = internal.TokenFromContext(r.Context())
			lastRequest = r
			w.WriteHeader(http.StatusOK)
		}))
	})

	serve := func(authorization string) {
		req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
		if authorization != "" {
			req.Header.Set("Authorization", authorization)
		}
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	It("extracts the token from a bearer header", func() {
		serve("Bearer some.jwt.token")
		Expect(capturedOK).To(BeTrue())
		Expect(captured).To(Equal("some.jwt.token"))
	})

	It("accepts a lowercase scheme", func() {
		serve("bearer some.jwt.token")
		Expect(capturedOK).To(BeTrue())
	})

	It("leaves the token absent when the header is missing", func() {
		serve("")
		Expect(capturedOK).To(BeFalse())
	})

	It("leaves the token absent for a non-bearer scheme", func() {
		serve("Basic dXNlcjpwYXNz")
		Expect(capturedOK).To(BeFalse())
	})

	It("never rejects the request on its own", func() {
		serve("Bearer ")
		Expect(lastRequest).NotTo(BeNil())
	})
})

var _ = Describe("RequestID", func() {
	It("assigns an id and echoes it in the response header", func() {
		var seen string
		handler := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = middleware.RequestIDFromContext(r.Context())
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		Expect(seen).NotTo(BeEmpty())
		Expect(rec.Header().Get("X-Request-ID")).To(Equal(seen))
	})

	It("honors an id supplied by the caller", func() {
		var seen string
		handler := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = middleware.RequestIDFromContext(r.Context())
		}))

		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set("X-Request-ID", "upstream-id")
		handler.ServeHTTP(httptest.NewRecorder(), req)

		Expect(seen).To(Equal("upstream-id"))
	})
})
