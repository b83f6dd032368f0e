package apperr

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Kind classifies an error so handlers can map it to an HTTP status without
// inspecting message text. Reason strings are stable and machine-checkable;
// clients and tests assert on them.
type Kind int

const (
	Validation Kind = iota
	NotFound
	Conflict
	Forbidden
	External
	Integrity
)

type Error struct {
	Kind   Kind
	Reason string
	cause  error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.cause)
	}
	return e.Reason
}

func (e *Error) Unwrap() error { return e.cause }

func New(kind Kind, reason string) *Error {
	return &Error{Kind: kind, Reason: reason}
}

func Wrap(kind Kind, reason string, cause error) *Error {
	return &Error{Kind: kind, Reason: reason, cause: cause}
}

// KindOf returns the kind of err if it is (or wraps) an *Error. Unclassified
// errors are treated as External so they surface as 5xx.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return External
}

// ReasonOf returns the stable reason string, falling back to the raw message.
func ReasonOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Reason
	}
	return err.Error()
}

func statusOf(err error) int {
	switch KindOf(err) {
	case Validation:
		return fiber.StatusBadRequest
	case NotFound:
		return fiber.StatusNotFound
	case Conflict:
		return fiber.StatusConflict
	case Forbidden:
		return fiber.StatusForbidden
	case Integrity:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// Respond writes the canonical error body used by every handler.
func Respond(c *fiber.Ctx, err error) error {
	return c.Status(statusOf(err)).JSON(fiber.Map{
		"success": false,
		"message": ReasonOf(err),
	})
}
