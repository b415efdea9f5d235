package apperrors

import (
	"net/http"
)

/*
Domain factories and predefined errors for users, tickets and employees.
*/

func ErrNotFound(err error, domain string) *AppError {
	return Wrap(err, CodeNotFound, domain, "Not found", http.StatusNotFound)
}

func ErrAlreadyExists(err error, domain, message string) *AppError {
	return Wrap(err, CodeAlreadyExists, domain, message, http.StatusConflict)
}

func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// --- Auth ---

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrUserSuspended = New(
	CodeUserSuspended,
	"auth",
	"User suspended",
	http.StatusForbidden,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid token",
	http.StatusUnauthorized,
)

var ErrTokenExpired = New(
	CodeTokenExpired,
	"auth",
	"Token expired",
	http.StatusUnauthorized,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Forbidden",
	http.StatusForbidden,
)

// --- Users ---

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"user",
	"User already exists",
	http.StatusConflict,
)

var ErrInvalidUserRole = New(
	CodeInvalidOperation,
	"user",
	"Invalid role",
	http.StatusBadRequest,
)

var ErrUserNotFound = New(
	CodeNotFound,
	"user",
	"User not found",
	http.StatusNotFound,
)

// --- Tickets ---

var ErrTicketNotFound = New(
	CodeNotFound,
	"ticket",
	"Not found",
	http.StatusNotFound,
)

var ErrTicketNotEditable = New(
	CodeInvalidStatus,
	"ticket",
	"Only pending ticket can be updated",
	http.StatusConflict,
)

var ErrTicketNotDeletable = New(
	CodeInvalidStatus,
	"ticket",
	"Only pending ticket can be deleted",
	http.StatusConflict,
)

var ErrTicketAlreadyApproved = New(
	CodeInvalidStatus,
	"ticket",
	"Already approved",
	http.StatusConflict,
)

var ErrTicketAlreadyDenied = New(
	CodeInvalidStatus,
	"ticket",
	"Already denied",
	http.StatusConflict,
)
