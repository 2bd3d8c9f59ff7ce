package domain

import "errors"

// Common domain errors
var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInternalServer = errors.New("internal server error")

	// ErrStorage wraps any failure to read, parse or write a store file.
	ErrStorage = errors.New("storage error")
)

// UserErrors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// StudentErrors
var (
	ErrStudentNotFound = errors.New("student not found")
)
