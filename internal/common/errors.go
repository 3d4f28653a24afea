// File: internal/common/errors.go
package common

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Kind classifies a domain failure. Services only ever choose a Kind;
// the HTTP status for it is decided in StatusForKind.
type Kind int

const (
	KindInternal Kind = iota
	KindAuthDenied
	KindValidation
	KindNotFound
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindAuthDenied:
		return "auth_denied"
	case KindValidation:
		return "validation_failed"
	case KindNotFound:
		return "not_found"
	case KindUnavailable:
		return "unavailable"
	default:
		return "internal"
	}
}

// Error is the failure type returned by verifiers, validators, stores and services.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error // underlying cause, never sent to clients
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (%s): %v", e.Message, e.Code, e.Err)
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Code)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches on Code so sentinel values below work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Wrap returns a copy of e carrying cause.
func (e *Error) Wrap(cause error) *Error {
	cp := *e
	cp.Err = cause
	return &cp
}

// WithMessage returns a copy of e with a more specific client-facing message.
func (e *Error) WithMessage(msg string) *Error {
	cp := *e
	cp.Message = msg
	return &cp
}

func NewError(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

var (
	ErrMissingAccessToken  = NewError(KindAuthDenied, "MISSING_ACCESS_TOKEN", "Authorization failed.")
	ErrInvalidToken        = NewError(KindAuthDenied, "INVALID_TOKEN", "Authorization failed.")
	ErrIdentityMismatch    = NewError(KindAuthDenied, "IDENTITY_MISMATCH", "Request id does not match access token claims.")
	ErrNotAdmin            = NewError(KindAuthDenied, "NOT_ADMIN", "Administrator access is required.")
	ErrIdentityUnreachable = NewError(KindUnavailable, "IDENTITY_PROVIDER_UNREACHABLE", "Could not reach the identity provider.")

	ErrInvalidExternalAccount = NewError(KindValidation, "INVALID_EXTERNAL_ACCOUNT", "Moxfield account could not be verified.")
	ErrExternalAccountTaken   = NewError(KindValidation, "MOXFIELD_ALREADY_LINKED", "Moxfield account is already linked to another profile.")
	ErrInvalidURLShape        = NewError(KindValidation, "INVALID_URL_SHAPE", "Deck url is not a valid deck link.")
	ErrUnsupportedSource      = NewError(KindValidation, "UNSUPPORTED_SOURCE", "Deck source is not supported.")
	ErrDeckNotFound           = NewError(KindValidation, "DECK_NOT_FOUND", "Deck could not be found.")
	ErrDeckLimitReached       = NewError(KindValidation, "DECK_LIMIT_REACHED", "Deck limit reached.")
	ErrKeyCollision           = NewError(KindValidation, "KEY_COLLISION", "Profile key is already held by another user.")
	ErrBadRequest             = NewError(KindValidation, "BAD_REQUEST", "The request is invalid.")

	ErrUserNotFound = NewError(KindNotFound, "USER_NOT_FOUND", "User not found.")

	ErrStoreUnavailable = NewError(KindUnavailable, "STORE_UNAVAILABLE", "The profile store is currently unavailable.")

	ErrSubmissionFailed = NewError(KindInternal, "SUBMISSION_FAILED", "Match submission failed.")
	ErrInternalServer   = NewError(KindInternal, "INTERNAL_SERVER_ERROR", "An unexpected error occurred on the server.")
)

// AsError extracts a *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr, true
	}
	return nil, false
}

// KindOf reports the Kind of err, KindInternal for anything that is not a *Error.
func KindOf(err error) Kind {
	if domainErr, ok := AsError(err); ok {
		return domainErr.Kind
	}
	return KindInternal
}

// APIError is the JSON body sent for every failed request.
type APIError struct {
	StatusCode int         `json:"-"`
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("APIError: StatusCode=%d, Code=%s, Message=%s", e.StatusCode, e.Code, e.Message)
}

// StatusForKind is the single place where failure kinds become HTTP statuses.
func StatusForKind(kind Kind) int {
	switch kind {
	case KindAuthDenied:
		return http.StatusForbidden
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		// Kept at 400: existing clients treat a missing profile as a bad request.
		return http.StatusBadRequest
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// ToAPIError converts any error into its wire form. Non-domain errors become a generic 500.
func ToAPIError(err error) *APIError {
	domainErr, ok := AsError(err)
	if !ok {
		return &APIError{
			StatusCode: http.StatusInternalServerError,
			Code:       ErrInternalServer.Code,
			Message:    ErrInternalServer.Message,
		}
	}
	return &APIError{
		StatusCode: StatusForKind(domainErr.Kind),
		Code:       domainErr.Code,
		Message:    domainErr.Message,
	}
}

// NewValidationAPIError wraps per-field binding failures.
func NewValidationAPIError(details interface{}) *APIError {
	return &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       "VALIDATION_ERROR",
		Message:    "Input validation failed.",
		Details:    details,
	}
}

// FormatValidationErrors converts validator.ValidationErrors into a map keyed by JSON field name.
func FormatValidationErrors(errs validator.ValidationErrors) map[string]string {
	errorMap := make(map[string]string)
	for _, e := range errs {
		field := e.Field()
		var message string
		switch e.Tag() {
		case "required":
			message = fmt.Sprintf("The %s field is required.", field)
		case "min":
			message = fmt.Sprintf("The %s field must be at least %s.", field, e.Param())
		case "max":
			message = fmt.Sprintf("The %s field may not be greater than %s.", field, e.Param())
		case "oneof":
			message = fmt.Sprintf("The %s field must be one of the following values: %s.", field, strings.ReplaceAll(e.Param(), " ", ", "))
		case "snowflake":
			message = fmt.Sprintf("The %s field must be a numeric Discord id.", field)
		default:
			message = fmt.Sprintf("Field validation for '%s' failed on the '%s' tag.", field, e.Tag())
		}
		errorMap[e.Namespace()[strings.Index(e.Namespace(), ".")+1:]] = message
	}
	return errorMap
}
