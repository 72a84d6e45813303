// Package repository contains data access logic separated from HTTP
// handlers. This file defines sentinel error values shared across
// repositories so that higher layers can distinguish failure scenarios
// without inspecting driver-specific errors.
package repository

import "errors"

// ErrEmailExists is returned when a user insert violates the unique email
// index. Handlers translate this into an HTTP 400 response.
var ErrEmailExists = errors.New("email already exists")

// ErrNoteNotFound is returned when no note matches both the requested id
// and the caller's owner id. A note that exists but belongs to another
// user yields the same error: the two cases are deliberately
// indistinguishable so the API never leaks the existence of other users'
// data. Handlers translate this into an HTTP 404 response.
var ErrNoteNotFound = errors.New("note not found")
