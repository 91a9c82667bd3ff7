// Package apperrors defines the error taxonomy shared by services and handlers
package apperrors

import "errors"

var (
	// ErrUnauthenticated indicates that no caller identity was provided
	ErrUnauthenticated = errors.New("authentication required")
	// ErrUnauthorized indicates that the caller lacks ownership or role
	ErrUnauthorized = errors.New("insufficient permissions")
	// ErrNotFound indicates that a referenced row does not exist
	ErrNotFound = errors.New("not found")
	// ErrValidation indicates a schema or range violation in the request
	ErrValidation = errors.New("validation failed")
	// ErrDuplicateReview indicates that the user already reviewed the course
	ErrDuplicateReview = errors.New("you have already reviewed this course")
	// ErrNotEnrolled indicates that the user must enroll before reviewing
	ErrNotEnrolled = errors.New("you must enroll in the course to review it")
	// ErrPersistence indicates that an underlying store call failed
	ErrPersistence = errors.New("persistence error")
)
