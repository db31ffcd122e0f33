package serverutils

import (
	"errors"

	"simple-notes-be/internal/pkg/apperror"
	"simple-notes-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

var kindStatus = map[apperror.Kind]int{
	apperror.KindValidation:         fiber.StatusBadRequest,
	apperror.KindAuthentication:     fiber.StatusUnauthorized,
	apperror.KindAuthorization:      fiber.StatusForbidden,
	apperror.KindNotFound:           fiber.StatusNotFound,
	apperror.KindConflict:           fiber.StatusConflict,
	apperror.KindStorageUnavailable: fiber.StatusInternalServerError,
	apperror.KindInternal:           fiber.StatusInternalServerError,
}

var statusKind = map[int]apperror.Kind{
	fiber.StatusBadRequest:   apperror.KindValidation,
	fiber.StatusUnauthorized: apperror.KindAuthentication,
	fiber.StatusForbidden:    apperror.KindAuthorization,
	fiber.StatusNotFound:     apperror.KindNotFound,
	fiber.StatusConflict:     apperror.KindConflict,
}

// StatusOf maps an error to its HTTP status code.
func StatusOf(err error) int {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return kindStatus[apperror.KindOf(err)]
}

// ErrorHandler renders every error returned by a handler or middleware as the
// JSON error envelope.
func ErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		code := StatusOf(err)
		kind, message := describeError(err, code)

		if code >= fiber.StatusInternalServerError {
			log.Error("HTTP", "Request failed", map[string]interface{}{
				"method": ctx.Method(),
				"path":   ctx.Path(),
				"status": code,
				"error":  err,
			})
		}
		if code == fiber.StatusUnauthorized {
			ctx.Set(fiber.HeaderWWWAuthenticate, "Bearer")
		}

		return ctx.Status(code).JSON(ErrorResponse(code, kind, message))
	}
}

func describeError(err error, code int) (apperror.Kind, string) {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		kind, ok := statusKind[fe.Code]
		if !ok {
			kind = apperror.KindInternal
		}
		return kind, fe.Message
	}
	if code >= fiber.StatusInternalServerError {
		// Storage and internal details stay in the logs.
		if apperror.Is(err, apperror.KindStorageUnavailable) {
			return apperror.KindStorageUnavailable, "storage unavailable"
		}
		return apperror.KindInternal, "internal server error"
	}
	return apperror.KindOf(err), apperror.MessageOf(err)
}
