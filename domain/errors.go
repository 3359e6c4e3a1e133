package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeUserNotFound      ErrorCode = "USER_NOT_FOUND"
	ErrCodeUserNotEnabled    ErrorCode = "USER_NOT_ENABLED"
	ErrCodeUserNotAuthorized ErrorCode = "USER_NOT_AUTHORIZED"
	ErrCodeOfferNotFound     ErrorCode = "OFFER_NOT_FOUND"
	ErrCodeOfferCancelled    ErrorCode = "OFFER_IS_CANCELLED"
	ErrCodeOfferExpired      ErrorCode = "OFFER_IS_EXPIRED"
	ErrCodeInvalidTTL        ErrorCode = "INVALID_TTL"
	ErrCodeInvalid           ErrorCode = "INVALID"
	ErrCodeConflict          ErrorCode = "CONFLICT"
	ErrCodeUnauthorized      ErrorCode = "UNAUTHORIZED"
	ErrCodeInternal          ErrorCode = "INTERNAL"
)

// Error represents a domain-level error. EntityID carries the id of the
// offer or user the failure refers to, for diagnostics.
type Error struct {
	Code     ErrorCode
	EntityID string
	Message  string
	Err      error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Message
	if e.EntityID != "" {
		msg = fmt.Sprintf("%s: %s", e.Message, e.EntityID)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a domain error without an entity reference.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Identity and authorization failures.

func ErrUserNotFound(userID string) *Error {
	return &Error{Code: ErrCodeUserNotFound, EntityID: userID, Message: "user not found"}
}

func ErrUserNotEnabled(userID string) *Error {
	return &Error{Code: ErrCodeUserNotEnabled, EntityID: userID, Message: "user not enabled"}
}

func ErrUserNotAuthorized(userID string) *Error {
	return &Error{Code: ErrCodeUserNotAuthorized, EntityID: userID, Message: "user not authorized"}
}

// Lifecycle and state failures.

func ErrOfferNotFound(offerID string) *Error {
	return &Error{Code: ErrCodeOfferNotFound, EntityID: offerID, Message: "offer not found"}
}

func ErrOfferCancelled(offerID string) *Error {
	return &Error{Code: ErrCodeOfferCancelled, EntityID: offerID, Message: "offer is cancelled"}
}

func ErrOfferExpired(offerID string) *Error {
	return &Error{Code: ErrCodeOfferExpired, EntityID: offerID, Message: "offer is expired"}
}

// ErrInvalidTTL reports a non-positive time-to-live.
func ErrInvalidTTL(ttl int64) *Error {
	return &Error{Code: ErrCodeInvalidTTL, Message: fmt.Sprintf("ttl must be positive, got %d", ttl)}
}

// Common domain errors.
var (
	ErrInvalidPayload     = NewError(ErrCodeInvalid, "invalid payload")
	ErrUsernameTaken      = NewError(ErrCodeConflict, "username already taken")
	ErrInvalidCredentials = NewError(ErrCodeUnauthorized, "invalid credentials")
	ErrSessionNotFound    = NewError(ErrCodeUnauthorized, "session not found")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}
