package repository

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// FetchError is returned by every Source. Status follows HTTP conventions.
type FetchError struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

func (e *FetchError) Error() string {
	return e.Message
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// StatusOf returns the status carried by err, or 500 when err is not a
// FetchError.
func StatusOf(err error) int {
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr.Status
	}
	return http.StatusInternalServerError
}

var authErrorPatterns = []string{
	"authentication required",
	"authorization failed",
	"401",
	"unauthorized",
	"403",
	"forbidden",
}

func isAuthenticationError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, pattern := range authErrorPatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}

// translateCloneError maps a go-git failure to a FetchError with a message
// a user can act on.
func translateCloneError(err error, target string) *FetchError {
	if fetchErr, ok := err.(*FetchError); ok {
		return fetchErr
	}
	msg := strings.ToLower(err.Error())

	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return &FetchError{Message: "repository fetch was cancelled: " + err.Error(), Status: http.StatusInternalServerError, Err: err}
	case isAuthenticationError(err):
		if strings.Contains(msg, "403") || strings.Contains(msg, "forbidden") {
			return &FetchError{
				Message: "GitHub token lacks required permissions for " + target + " - ensure the 'repo' scope is enabled",
				Status:  http.StatusForbidden,
				Err:     err,
			}
		}
		return &FetchError{
			Message: "authentication required for " + target + " - store a GitHub Personal Access Token or set " + TokenEnvVar,
			Status:  http.StatusUnauthorized,
			Err:     err,
		}
	case strings.Contains(msg, "404") || strings.Contains(msg, "not found"):
		return &FetchError{Message: "repository not found - check the URL or ensure you have access: " + target, Status: http.StatusNotFound, Err: err}
	case strings.Contains(msg, "network") || strings.Contains(msg, "connection") || strings.Contains(msg, "timeout"):
		return &FetchError{Message: "network error while fetching " + target + ": " + err.Error(), Status: http.StatusInternalServerError, Err: err}
	default:
		return &FetchError{Message: "failed to fetch " + target + ": " + err.Error(), Status: http.StatusInternalServerError, Err: err}
	}
}
