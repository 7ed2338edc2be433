package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/prisma-study/srs-api/internal/api/shared"
	"github.com/prisma-study/srs-api/internal/domain"
)

// requesterFromContext rebuilds the authenticated identity placed in the
// context by the auth middleware. The returned user carries only username
// and role, which is all the authorization checks need.
func requesterFromContext(r *http.Request) (*domain.User, bool) {
	username, ok := shared.GetUsername(r.Context())
	if !ok || username == "" {
		return nil, false
	}
	role, ok := shared.GetRole(r.Context())
	if !ok {
		return nil, false
	}
	return &domain.User{Username: username, Role: role}, true
}

// getPathUUID extracts and parses a UUID from the URL path parameters.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.ErrInvalidID
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.ErrInvalidID
	}

	return id, nil
}

// HandleAPIError maps an error to a status code and sanitized message and
// writes the response, logging the full error. An optional fallbackMessage
// overrides the generic message for internal server errors.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallbackMessage string) {
	statusCode := MapErrorToStatusCode(err)
	safeMessage := GetSafeErrorMessage(err)

	if statusCode == http.StatusInternalServerError && fallbackMessage != "" {
		safeMessage = fallbackMessage
	}

	shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
}
