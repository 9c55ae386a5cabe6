package handler

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/inkpost/blog-api/internal/api/middleware"
	"github.com/inkpost/blog-api/internal/core/domain"
)

// newTestContext builds an echo context with the validator installed. When
// who is non-nil the request is authenticated as who.
func newTestContext(method, target, body string, who *domain.Identity) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if who != nil {
		verifier := identityVerifier{identity: *who}
		req.Header.Set(echo.HeaderAuthorization, "Bearer test")
		_ = middleware.Authenticate(verifier)(func(echo.Context) error { return nil })(c)
	}
	return c, rec
}

type identityVerifier struct {
	identity domain.Identity
}

func (v identityVerifier) Verify(string) (domain.Identity, error) {
	return v.identity, nil
}

func withParam(c echo.Context, name, value string) echo.Context {
	c.SetParamNames(name)
	c.SetParamValues(value)
	return c
}

func expectValidation(t *testing.T, err error, want string) {
	t.Helper()
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError %q, got %v", want, err)
	}
	if ve.Message != want {
		t.Fatalf("message = %q, want %q", ve.Message, want)
	}
}
