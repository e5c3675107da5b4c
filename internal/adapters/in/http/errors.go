package http

import (
	"errors"
	"log/slog"
	"net/http"

	"tracker/internal/core/application/usecases/commands"
	"tracker/internal/core/domain/model/order"
	"tracker/internal/core/ports"
	"tracker/internal/generated/servers"
	"tracker/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusFor maps an application error to its HTTP status.
func statusFor(err error) int {
	switch {
	case errs.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, order.ErrOrderIsClosed),
		errors.Is(err, order.ErrDuplicateComponent):
		return http.StatusConflict
	case errors.Is(err, errs.ErrDelayReasonRequired):
		return http.StatusUnprocessableEntity
	case errors.Is(err, commands.ErrBranchManagementDenied):
		return http.StatusForbidden
	case errors.Is(err, ports.ErrLockNotAcquired):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err as servers.Error. Messages of server errors are
// replaced by fallback so internals only reach the log.
func writeError(ctx echo.Context, logger *slog.Logger, err error, fallback string) error {
	status := statusFor(err)
	message := err.Error()

	if status == http.StatusInternalServerError {
		logger.ErrorContext(ctx.Request().Context(), fallback,
			"error", err,
			"method", ctx.Request().Method,
			"path", ctx.Path(),
		)
		message = fallback
	}

	return ctx.JSON(status, servers.Error{
		Code:    status,
		Message: message,
	})
}

// httpErrorHandler renders echo's own errors (routing, binding, middleware)
// with the servers.Error shape.
func httpErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		if ctx.Response().Committed {
			return
		}

		var httpErr *echo.HTTPError
		if !errors.As(err, &httpErr) {
			_ = writeError(ctx, logger, err, "Internal server error")
			return
		}

		message := http.StatusText(httpErr.Code)
		if m, ok := httpErr.Message.(string); ok && m != "" {
			message = m
		}
		if httpErr.Code >= http.StatusInternalServerError {
			logger.ErrorContext(ctx.Request().Context(), "Request failed", "error", err, "path", ctx.Path())
			message = http.StatusText(httpErr.Code)
		}

		if ctx.Request().Method == http.MethodHead {
			_ = ctx.NoContent(httpErr.Code)
			return
		}
		_ = ctx.JSON(httpErr.Code, servers.Error{Code: httpErr.Code, Message: message})
	}
}
