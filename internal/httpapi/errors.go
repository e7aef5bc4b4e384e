package httpapi

import (
	"errors"
	"net/http"

	"github.com/koopa0/shortener/internal/auth"
	"github.com/koopa0/shortener/internal/model"
)

// errorBody is the error envelope SPEC_FULL.md §6 names:
// {errcode: <string tag>, errinfo: <message>}.
type errorBody struct {
	ErrCode string `json:"errcode"`
	ErrInfo string `json:"errinfo"`
}

// statusFor maps a service-layer error to an HTTP status and tag per
// SPEC_FULL.md §7's error handling table. Tags are upper-snake, matching
// spec.md §8 scenario 2's literal errcode:"CODE_EXISTS" expectation (the
// original implementation's error_codes module uses numeric strings instead
// — spec.md's readable tags are followed since it is the authoritative wire
// contract here).
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, model.ErrInvalidURL):
		return http.StatusBadRequest, "INVALID_URL"
	case errors.Is(err, model.ErrInvalidCode):
		return http.StatusBadRequest, "INVALID_CODE"
	case errors.Is(err, model.ErrCodeTaken):
		return http.StatusConflict, "CODE_EXISTS"
	case errors.Is(err, model.ErrCodeExhausted):
		return http.StatusInternalServerError, "CODE_EXHAUSTED"
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, model.ErrUnauthorized), errors.Is(err, auth.ErrUnauthorized), errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized, "UNAUTHORIZED"
	default:
		return http.StatusInternalServerError, "STORAGE_ERROR"
	}
}
