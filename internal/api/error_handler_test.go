package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/inkpost/blog-api/internal/core/domain"
)

func runErrorHandler(t *testing.T, err error) (*httptest.ResponseRecorder, string) {
	t.Helper()
	var logs bytes.Buffer
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	NewHTTPErrorHandler(zerolog.New(&logs))(err, c)
	return rec, logs.String()
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error body %q: %v", rec.Body.String(), err)
	}
	return body.Error
}

func TestErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		err  error
		code int
		msg  string
	}{
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "Email ou mot de passe incorrect"},
		{fmt.Errorf("%w: expired", domain.ErrInvalidToken), http.StatusUnauthorized, "Token invalide ou expiré"},
		{domain.ErrAdminRequired, http.StatusForbidden, "Accès réservé aux administrateurs"},
		{domain.ErrForbidden, http.StatusForbidden, "Accès non autorisé"},
		{domain.ErrCommentForbidden, http.StatusForbidden, "Non autorisé à supprimer ce commentaire"},
		{domain.ErrSelfDelete, http.StatusBadRequest, "Vous ne pouvez pas vous supprimer vous-même"},
		{domain.ErrSelfRoleChange, http.StatusBadRequest, "Vous ne pouvez pas modifier votre propre rôle"},
		{domain.ErrInvalidRole, http.StatusBadRequest, "Rôle invalide"},
		{domain.ErrUserExists, http.StatusBadRequest, "Email ou nom d'utilisateur déjà utilisé"},
		{domain.ErrUserNotFound, http.StatusNotFound, "Utilisateur introuvable"},
		{domain.ErrCommentNotFound, http.StatusNotFound, "Commentaire introuvable"},
		{domain.NewValidationError(domain.MsgPasswordTooShort), http.StatusBadRequest, domain.MsgPasswordTooShort},
	}
	for _, tc := range cases {
		t.Run(tc.msg, func(t *testing.T) {
			rec, _ := runErrorHandler(t, tc.err)
			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			if got := decodeError(t, rec); got != tc.msg {
				t.Fatalf("expected %q, got %q", tc.msg, got)
			}
		})
	}
}

func TestErrorHandler_DomainErrorInsideHTTPError(t *testing.T) {
	err := echo.NewHTTPError(http.StatusInternalServerError, "Erreur lors de la connexion").SetInternal(domain.ErrInvalidCredentials)

	rec, logs := runErrorHandler(t, err)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if logs != "" {
		t.Fatalf("expected no error log for a known error, got %s", logs)
	}
}

func TestErrorHandler_InternalCauseIsHidden(t *testing.T) {
	cause := errors.New(`pq: relation "users" does not exist`)
	err := echo.NewHTTPError(http.StatusInternalServerError, "Erreur lors de l'inscription").SetInternal(cause)

	rec, logs := runErrorHandler(t, err)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if got := decodeError(t, rec); got != "Erreur lors de l'inscription" {
		t.Fatalf("unexpected message %q", got)
	}
	if strings.Contains(rec.Body.String(), "relation") {
		t.Fatalf("internal cause leaked: %s", rec.Body.String())
	}
	if !strings.Contains(logs, "relation") {
		t.Fatalf("internal cause must be logged, got %q", logs)
	}
}

func TestErrorHandler_UnknownError(t *testing.T) {
	rec, logs := runErrorHandler(t, errors.New("boom"))
	if rec.Code != http.StatusInternalServerError || decodeError(t, rec) != msgInternal {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(logs, "boom") {
		t.Fatalf("expected log entry, got %q", logs)
	}
}

func TestErrorHandler_MissingIdentityIs500(t *testing.T) {
	rec, _ := runErrorHandler(t, fmt.Errorf("%w: GET /users", domain.ErrMissingIdentity))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestErrorHandler_RouterNotFound(t *testing.T) {
	rec, _ := runErrorHandler(t, echo.ErrNotFound)
	if rec.Code != http.StatusNotFound || decodeError(t, rec) != "Route introuvable" {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}
}
