package serverutils

import "github.com/gofiber/fiber/v2"

// AppError is the typed error carried through fiber's handler chain.
// Message is what the client is allowed to see; Err holds the cause and
// stays server-side (logs only).
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidationError marks user-correctable bad input.
func NewValidationError(message string) *AppError {
	return &AppError{Code: fiber.StatusBadRequest, Message: message}
}

// NewStoreError marks a CRUD operation rejected by the data layer.
// The fixed per-operation label is all the client gets.
func NewStoreError(message string, err error) *AppError {
	return &AppError{Code: fiber.StatusInternalServerError, Message: message, Err: err}
}

// NewUpstreamError marks an external API call that failed or was rejected.
func NewUpstreamError(message string, err error) *AppError {
	return &AppError{Code: fiber.StatusInternalServerError, Message: message, Err: err}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Code: fiber.StatusNotFound, Message: message}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: fiber.StatusUnauthorized, Message: message}
}
