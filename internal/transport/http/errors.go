package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Tocard/DiscordDofusBotLGB/internal/domain"
	"github.com/labstack/echo/v4"
)

const (
	codeMethodNotAllowed   = "method_not_allowed"
	codeNotFound           = "not_found"
	codeInvalidRequestBody = "invalid_request_body"
	codeActorRequired      = "actor_required"
	codeZoneNameRequired   = "zone_name_required"
	codeZoneNotFound       = "zone_not_found"
	codeZoneAlreadyExists  = "zone_already_exists"
	codeZoneAlreadyLocked  = "zone_already_locked"
	codeZoneNotLocked      = "zone_not_locked"
	codeNotZoneHolder      = "not_zone_holder"
	codePseudoRequired     = "pseudo_required"
	codeUnknownProfession  = "unknown_profession"
	codeInvalidLevel       = "invalid_level"
	codeProfessionNotFound = "profession_not_found"
	codeProfessionExists   = "profession_already_exists"
	codeInvalidMinLevel    = "invalid_min_level"
	codeForbidden          = "forbidden"
	codeStorageFailure     = "storage_failure"
	codeInternalError      = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(c echo.Context, status int, code, msg string) error {
	return c.JSON(status, errorResponse{Error: msg, Code: code})
}

// statusFor maps service errors to a status, a stable code and a client message.
func statusFor(err error) (int, string, string) {
	var locked *domain.ZoneLockedError
	switch {
	case errors.As(err, &locked):
		return http.StatusConflict, codeZoneAlreadyLocked, locked.Error()
	case errors.Is(err, domain.ErrZoneAlreadyLocked):
		return http.StatusConflict, codeZoneAlreadyLocked, err.Error()
	case errors.Is(err, domain.ErrZoneNotFound):
		return http.StatusNotFound, codeZoneNotFound, domain.ErrZoneNotFound.Error()
	case errors.Is(err, domain.ErrZoneAlreadyExists):
		return http.StatusConflict, codeZoneAlreadyExists, domain.ErrZoneAlreadyExists.Error()
	case errors.Is(err, domain.ErrZoneNotLocked):
		return http.StatusConflict, codeZoneNotLocked, domain.ErrZoneNotLocked.Error()
	case errors.Is(err, domain.ErrNotHolder):
		return http.StatusForbidden, codeNotZoneHolder, domain.ErrNotHolder.Error()
	case errors.Is(err, domain.ErrZoneNameRequired):
		return http.StatusBadRequest, codeZoneNameRequired, domain.ErrZoneNameRequired.Error()
	case errors.Is(err, domain.ErrActorRequired):
		return http.StatusBadRequest, codeActorRequired, domain.ErrActorRequired.Error()
	case errors.Is(err, domain.ErrPseudoRequired):
		return http.StatusBadRequest, codePseudoRequired, domain.ErrPseudoRequired.Error()
	case errors.Is(err, domain.ErrUnknownProfession):
		return http.StatusBadRequest, codeUnknownProfession, domain.ErrUnknownProfession.Error()
	case errors.Is(err, domain.ErrInvalidLevel):
		return http.StatusBadRequest, codeInvalidLevel, domain.ErrInvalidLevel.Error()
	case errors.Is(err, domain.ErrProfessionNotFound):
		return http.StatusNotFound, codeProfessionNotFound, domain.ErrProfessionNotFound.Error()
	case errors.Is(err, domain.ErrProfessionExists):
		return http.StatusConflict, codeProfessionExists, domain.ErrProfessionExists.Error()
	case errors.Is(err, domain.ErrStorage):
		return http.StatusInternalServerError, codeStorageFailure, domain.ErrStorage.Error()
	default:
		return http.StatusInternalServerError, codeInternalError, "internal error"
	}
}

// ErrorHandler renders every error leaving a handler as the JSON error body.
func ErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var status int
		var code, msg string

		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			switch status {
			case http.StatusNotFound:
				code, msg = codeNotFound, "not found"
			case http.StatusMethodNotAllowed:
				code, msg = codeMethodNotAllowed, "method not allowed"
			case http.StatusBadRequest:
				code, msg = codeInvalidRequestBody, "invalid request body"
			default:
				code, msg = codeInternalError, http.StatusText(status)
			}
		} else {
			status, code, msg = statusFor(err)
		}

		if status >= http.StatusInternalServerError {
			logger.Error("request failed",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"error", err,
			)
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = writeError(c, status, code, msg)
	}
}
