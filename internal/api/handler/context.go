package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/inkpost/blog-api/internal/api/middleware"
	"github.com/inkpost/blog-api/internal/core/domain"
)

// HeaderIdempotencyKey lets clients retry creates safely.
const HeaderIdempotencyKey = "Idempotency-Key"

// HeaderIdempotentReplay is set to "true" when a create was answered from
// an earlier request with the same key.
const HeaderIdempotentReplay = "Idempotent-Replayed"

type messageResponse struct {
	Message string `json:"message"`
}

// pathID parses a positive integer path parameter.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		return 0, domain.NewValidationError(domain.MsgInvalidID)
	}
	return id, nil
}

// identity returns the requester resolved by the Authenticate middleware.
func identity(c echo.Context) (domain.Identity, error) {
	return middleware.IdentityFrom(c)
}

// bindAndValidate decodes the body into req and runs struct validation.
func bindAndValidate(c echo.Context, req any) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, req); err != nil {
		return domain.NewValidationError(domain.MsgInvalidPayload)
	}
	return c.Validate(req)
}

// internalError attaches the operation's public 500 message to err. Known
// domain errors inside still resolve to their own status.
func internalError(err error, msg string) error {
	return echo.NewHTTPError(http.StatusInternalServerError, msg).SetInternal(err)
}
