package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/inkpost/blog-api/internal/core/domain"
	"github.com/inkpost/blog-api/pkg/logger"
)

const msgInternal = "Erreur interne du serveur"

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// domainErrors maps sentinel errors to their status and public message.
// Order matters only where one sentinel could wrap another.
var domainErrors = []struct {
	err    error
	status int
	msg    string
}{
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, "Email ou mot de passe incorrect"},
	{domain.ErrUnauthenticated, http.StatusUnauthorized, "Authentification requise"},
	{domain.ErrInvalidToken, http.StatusUnauthorized, "Token invalide ou expiré"},

	{domain.ErrAdminRequired, http.StatusForbidden, "Accès réservé aux administrateurs"},
	{domain.ErrForbidden, http.StatusForbidden, "Accès non autorisé"},
	{domain.ErrArticleForbidden, http.StatusForbidden, "Non autorisé à modifier cet article"},
	{domain.ErrCommentForbidden, http.StatusForbidden, "Non autorisé à supprimer ce commentaire"},

	{domain.ErrSelfDelete, http.StatusBadRequest, "Vous ne pouvez pas vous supprimer vous-même"},
	{domain.ErrSelfRoleChange, http.StatusBadRequest, "Vous ne pouvez pas modifier votre propre rôle"},
	{domain.ErrInvalidRole, http.StatusBadRequest, "Rôle invalide"},
	{domain.ErrUserExists, http.StatusBadRequest, "Email ou nom d'utilisateur déjà utilisé"},

	{domain.ErrUserNotFound, http.StatusNotFound, "Utilisateur introuvable"},
	{domain.ErrArticleNotFound, http.StatusNotFound, "Article introuvable"},
	{domain.ErrCommentNotFound, http.StatusNotFound, "Commentaire introuvable"},
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status and French message, even
//     when a handler wrapped them in an *echo.HTTPError.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ve.Message
	}
	for _, d := range domainErrors {
		if errors.Is(err, d.err) {
			return d.status, d.msg
		}
	}

	// Echo's own errors (router 404/405, handler-chosen 500 messages).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := publicMessage(he)
		if he.Code >= http.StatusInternalServerError {
			logUnexpected(log, c, err)
		}
		return he.Code, msg
	}

	// Unexpected error: log the real cause, return a generic message.
	logUnexpected(log, c, err)
	return http.StatusInternalServerError, msgInternal
}

func publicMessage(he *echo.HTTPError) string {
	switch he.Code {
	case http.StatusNotFound:
		if he.Message == echo.ErrNotFound.Message {
			return "Route introuvable"
		}
	case http.StatusMethodNotAllowed:
		return "Méthode non autorisée"
	}
	if s, ok := he.Message.(string); ok && s != "" {
		return s
	}
	if he.Code >= http.StatusInternalServerError {
		return msgInternal
	}
	return fmt.Sprintf("%v", he.Message)
}

func logUnexpected(log zerolog.Logger, c echo.Context, err error) {
	l := logger.WithRequest(log, c.Response().Header().Get(echo.HeaderXRequestID))
	l.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")
}
