package http

import (
	"errors"
	"net/http"

	"ordertracking/internal/core/application/usecases/commands"
	"ordertracking/internal/core/domain/model/order"
	"ordertracking/internal/generated/servers"
	"ordertracking/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// InvalidCodeMessage is the error message of a rejected delivery code.
const InvalidCodeMessage = "InvalidCode"

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, servers.Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// writeError maps a use-case error onto a response. Internal errors are
// checked first: their cause may wrap any other sentinel.
func (s *Server) writeError(ctx echo.Context, err error, internalMessage string) error {
	switch {
	case errors.Is(err, errs.ErrInternal):
		s.logger.ErrorContext(ctx.Request().Context(), internalMessage,
			"path", ctx.Path(), "error", err)
		return ctx.JSON(http.StatusInternalServerError, servers.Error{
			Code:    http.StatusInternalServerError,
			Message: internalMessage,
		})

	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, servers.Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})

	case errors.Is(err, order.ErrInvalidDeliveryCode):
		return badRequest(ctx, InvalidCodeMessage)

	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, commands.ErrCartIsEmpty),
		errors.Is(err, order.ErrOrderHasNoItems):
		return badRequest(ctx, err.Error())

	default:
		s.logger.ErrorContext(ctx.Request().Context(), internalMessage,
			"path", ctx.Path(), "error", err)
		return ctx.JSON(http.StatusInternalServerError, servers.Error{
			Code:    http.StatusInternalServerError,
			Message: internalMessage,
		})
	}
}
