package commonerrors

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCategory string

const (
	CategoryValidation   ErrorCategory = "VALIDATION"
	CategoryAuth         ErrorCategory = "AUTH"
	CategoryNotFound     ErrorCategory = "NOT_FOUND"
	CategoryConflict     ErrorCategory = "CONFLICT"
	CategoryUnauthorized ErrorCategory = "UNAUTHORIZED"
	CategoryInternal     ErrorCategory = "INTERNAL"
	CategoryExternal     ErrorCategory = "EXTERNAL"
)

// DomainError carries everything the HTTP boundary needs to map a failure
// to a response: one variant, one status code, one safe client message.
// The cause chain stays server-side.
type DomainError interface {
	error
	Code() string
	Category() ErrorCategory
	HTTPStatus() int
	Message() string
	Unwrap() error
	WithCause(cause error) DomainError
}

type domainError struct {
	code     string
	category ErrorCategory
	status   int
	message  string
	cause    error
}

func (e *domainError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *domainError) Code() string {
	return e.code
}

func (e *domainError) Category() ErrorCategory {
	return e.category
}

func (e *domainError) HTTPStatus() int {
	return e.status
}

func (e *domainError) Message() string {
	return e.message
}

func (e *domainError) Unwrap() error {
	return e.cause
}

func (e *domainError) WithCause(cause error) DomainError {
	return &domainError{
		code:     e.code,
		category: e.category,
		status:   e.status,
		message:  e.message,
		cause:    cause,
	}
}

// Is lets errors.Is match a derived error (one carrying a cause) against
// its base variant, so WithCause never breaks classification.
func (e *domainError) Is(target error) bool {
	var other *domainError
	if !errors.As(target, &other) {
		return false
	}
	return e.code == other.code
}

func NewDomainError(code string, category ErrorCategory, status int, message string) DomainError {
	return &domainError{
		code:     code,
		category: category,
		status:   status,
		message:  message,
	}
}

func IsDomainError(err error) bool {
	var de DomainError
	return errors.As(err, &de)
}

func AsDomainError(err error) (DomainError, bool) {
	var de DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

var (
	// Credential validation. Malformed headers and wrong credentials are
	// deliberately indistinguishable to the client: same status, same message.
	ErrMalformedAuthHeader = NewDomainError(
		"MALFORMED_AUTH_HEADER",
		CategoryUnauthorized,
		http.StatusUnauthorized,
		"invalid credentials",
	)

	ErrInvalidCredentials = NewDomainError(
		"INVALID_CREDENTIALS",
		CategoryUnauthorized,
		http.StatusUnauthorized,
		"invalid credentials",
	)

	ErrCredentialStoreUnavailable = NewDomainError(
		"CREDENTIAL_STORE_UNAVAILABLE",
		CategoryInternal,
		http.StatusInternalServerError,
		"internal server error",
	)

	ErrCredentialVerification = NewDomainError(
		"CREDENTIAL_VERIFICATION_FAILED",
		CategoryInternal,
		http.StatusInternalServerError,
		"internal server error",
	)

	ErrVerifierSaturated = NewDomainError(
		"VERIFIER_SATURATED",
		CategoryInternal,
		http.StatusInternalServerError,
		"internal server error",
	)

	// Publish fan-out.
	ErrSubscriberListUnavailable = NewDomainError(
		"SUBSCRIBER_LIST_UNAVAILABLE",
		CategoryInternal,
		http.StatusInternalServerError,
		"internal server error",
	)

	ErrNewsletterDispatch = NewDomainError(
		"NEWSLETTER_DISPATCH_FAILED",
		CategoryExternal,
		http.StatusInternalServerError,
		"internal server error",
	)

	// Subscription flow.
	ErrInvalidSubscriberInput = NewDomainError(
		"INVALID_SUBSCRIBER_INPUT",
		CategoryValidation,
		http.StatusBadRequest,
		"invalid name or email",
	)

	ErrAlreadySubscribed = NewDomainError(
		"ALREADY_SUBSCRIBED",
		CategoryConflict,
		http.StatusConflict,
		"email is already subscribed",
	)

	ErrMissingSubscriptionToken = NewDomainError(
		"MISSING_SUBSCRIPTION_TOKEN",
		CategoryValidation,
		http.StatusBadRequest,
		"subscription token is required",
	)

	ErrUnknownSubscriptionToken = NewDomainError(
		"UNKNOWN_SUBSCRIPTION_TOKEN",
		CategoryUnauthorized,
		http.StatusUnauthorized,
		"unknown subscription token",
	)

	// Shared plumbing.
	ErrInvalidPayload = NewDomainError(
		"INVALID_PAYLOAD",
		CategoryValidation,
		http.StatusBadRequest,
		"invalid payload",
	)

	ErrDatabaseError = NewDomainError(
		"DATABASE_ERROR",
		CategoryInternal,
		http.StatusInternalServerError,
		"database operation failed",
	)

	ErrInternalError = NewDomainError(
		"INTERNAL_ERROR",
		CategoryInternal,
		http.StatusInternalServerError,
		"internal server error",
	)
)
