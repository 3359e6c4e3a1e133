package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/offerdeck/backend/domain"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"user not found", domain.ErrUserNotFound("u-1"), http.StatusNotFound, string(domain.ErrCodeUserNotFound)},
		{"offer not found", domain.ErrOfferNotFound("o-1"), http.StatusNotFound, string(domain.ErrCodeOfferNotFound)},
		{"cancelled", domain.ErrOfferCancelled("o-1"), http.StatusGone, string(domain.ErrCodeOfferCancelled)},
		{"expired", domain.ErrOfferExpired("o-1"), http.StatusGone, string(domain.ErrCodeOfferExpired)},
		{"not enabled", domain.ErrUserNotEnabled("u-1"), http.StatusForbidden, string(domain.ErrCodeUserNotEnabled)},
		{"not authorized", domain.ErrUserNotAuthorized("u-1"), http.StatusForbidden, string(domain.ErrCodeUserNotAuthorized)},
		{"invalid ttl", domain.ErrInvalidTTL(0), http.StatusBadRequest, string(domain.ErrCodeInvalidTTL)},
		{"invalid payload", domain.ErrInvalidPayload, http.StatusBadRequest, string(domain.ErrCodeInvalid)},
		{"conflict", domain.ErrUsernameTaken, http.StatusConflict, string(domain.ErrCodeConflict)},
		{"unauthorized", domain.ErrInvalidCredentials, http.StatusUnauthorized, string(domain.ErrCodeUnauthorized)},
		{"opaque error", errors.New("boom"), http.StatusInternalServerError, string(domain.ErrCodeInternal)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, code := mapError(tc.err)
			if status != tc.wantStatus || code != tc.wantCode {
				t.Errorf("mapError(%v) = (%d, %s), want (%d, %s)", tc.err, status, code, tc.wantStatus, tc.wantCode)
			}
		})
	}
}
