package model

import "errors"

var (
	// ErrNoTarget indicates a check-in request without a usable team_id or student_id.
	ErrNoTarget = errors.New("no valid team_id or student_id")
	// ErrInvalidScope indicates an unknown check-in scope.
	ErrInvalidScope = errors.New("invalid check-in scope")
)
