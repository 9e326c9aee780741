package handlers

import (
	"context"
	"errors"
	"log"
	"time"

	"catalog/internal/apperror"

	"github.com/gofiber/fiber/v2"
)

// DefaultRequestTimeout bounds store and media calls when no timeout is configured.
const DefaultRequestTimeout = 10 * time.Second

// respondError writes err as the {kind, message} envelope with the status
// matching its kind.
func respondError(c *fiber.Ctx, err error) error {
	kind := apperror.KindOf(err)
	if kind == apperror.KindStore {
		log.Printf("Store error on %s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(apperror.Status(kind)).JSON(apperror.ToEnvelope(err))
}

// ErrorHandler is the fiber.Config error handler. Errors returned by
// middleware and fiber itself are rendered with the same envelope as
// handler errors.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		kind := kindForStatus(fiberErr.Code)
		return c.Status(fiberErr.Code).JSON(apperror.Envelope{Kind: kind, Message: fiberErr.Message})
	}
	return respondError(c, err)
}

func kindForStatus(code int) apperror.Kind {
	switch {
	case code == fiber.StatusNotFound:
		return apperror.KindNotFound
	case code == fiber.StatusUnauthorized:
		return apperror.KindUnauthorized
	case code == fiber.StatusForbidden:
		return apperror.KindForbidden
	case code >= 400 && code < 500:
		return apperror.KindValidation
	default:
		return apperror.KindStore
	}
}

// invalidBody is returned when the request body cannot be decoded.
func invalidBody(err error) error {
	return apperror.Wrap(apperror.KindValidation, err, "Invalid request body")
}

// requestContext derives the context for a single store or media call.
func requestContext(c *fiber.Ctx, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return context.WithTimeout(c.UserContext(), timeout)
}

// withGuards prepends route guards (auth, role checks) to h.
func withGuards(guards []fiber.Handler, h fiber.Handler) []fiber.Handler {
	chain := make([]fiber.Handler, 0, len(guards)+1)
	chain = append(chain, guards...)
	return append(chain, h)
}
