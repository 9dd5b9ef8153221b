package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrDuplicateEmail is returned when registering an email that already exists.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrMemberNotFound is returned when a member is not found.
	ErrMemberNotFound = errors.New("member not found")
	// ErrUnauthenticated is returned when no valid session is present.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrForbidden is returned when the session role does not permit the operation.
	ErrForbidden = errors.New("insufficient role")
	// ErrSelfDemotion is returned when an admin tries to change their own role.
	ErrSelfDemotion = errors.New("admins cannot change their own role")
	// ErrInvalidRole is returned when a role value is not user or admin.
	ErrInvalidRole = errors.New("invalid role")
	// ErrInvalidFilter is returned when a list filter is not all, paid or unpaid.
	ErrInvalidFilter = errors.New("invalid filter")
	// ErrInvalidTransition is returned when a membership status change is not allowed.
	ErrInvalidTransition = errors.New("invalid membership status transition")
	// ErrMalformedClaim is returned when a QR payload cannot be parsed or lacks a user id.
	ErrMalformedClaim = errors.New("malformed membership claim")
	// ErrInvalidRefreshToken is returned when refresh token is invalid or expired.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	// ErrInvalidAmount is returned when a payment amount is not positive.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrStorageUnavailable is returned when the database cannot serve a request,
	// so callers can offer a retry instead of treating it as a business failure.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrUnauthenticated):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "UNAUTHENTICATED")
	case errors.Is(err, ErrInvalidRefreshToken):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_REFRESH_TOKEN")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrSelfDemotion):
		return NewHTTPError(http.StatusForbidden, err.Error(), "SELF_DEMOTION")
	case errors.Is(err, ErrMemberNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "MEMBER_NOT_FOUND")
	case errors.Is(err, ErrDuplicateEmail):
		return NewHTTPError(http.StatusConflict, err.Error(), "DUPLICATE_EMAIL")
	case errors.Is(err, ErrInvalidFilter):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_FILTER")
	case errors.Is(err, ErrInvalidRole):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_ROLE")
	case errors.Is(err, ErrInvalidTransition):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_TRANSITION")
	case errors.Is(err, ErrMalformedClaim):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "MALFORMED_CLAIM")
	case errors.Is(err, ErrInvalidAmount):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_AMOUNT")
	case errors.Is(err, ErrStorageUnavailable):
		return NewHTTPError(http.StatusServiceUnavailable, ErrStorageUnavailable.Error(), "STORAGE_UNAVAILABLE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
