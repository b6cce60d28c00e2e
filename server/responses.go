package server

import (
	"encoding/json"
	"net/http"

	"github.com/jrsteele09/go-login-relay/internal/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const contentTypeJSON = "application/json; charset=utf-8"

// Client-facing messages. Nothing from upstream or from err.Error() reaches the client.
const (
	msgMissingCode      = "Authorization code not provided"
	msgInvalidState     = "Invalid state parameter"
	msgGoogleAuthFailed = "Google authentication failed"
	msgNotAuthenticated = "Not authenticated"
	msgInvalidToken     = "Invalid token"
	msgInternalError    = "Internal server error"
	msgTooManyRequests  = "Too many requests"
	msgLoggedOut        = "Logged out successfully"
	msgNotFound         = "Not found"
)

type errorResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorMapping struct {
	status  int
	message string
}

// kindResponses maps every error kind to exactly one response.
var kindResponses = map[errors.Kind]errorMapping{
	errors.KindBadRequest:          {http.StatusBadRequest, msgMissingCode},
	errors.KindStateMismatch:       {http.StatusUnauthorized, msgInvalidState},
	errors.KindAccessDenied:        {http.StatusUnauthorized, msgGoogleAuthFailed},
	errors.KindTokenExchangeFailed: {http.StatusUnauthorized, msgGoogleAuthFailed},
	errors.KindProfileFetchFailed:  {http.StatusUnauthorized, msgGoogleAuthFailed},
	errors.KindNotAuthenticated:    {http.StatusUnauthorized, msgNotAuthenticated},
	errors.KindInvalidSignature:    {http.StatusUnauthorized, msgInvalidToken},
	errors.KindExpired:             {http.StatusUnauthorized, msgInvalidToken},
	errors.KindMalformed:           {http.StatusUnauthorized, msgInvalidToken},
	errors.KindInternal:            {http.StatusInternalServerError, msgInternalError},
}

func responseFor(kind errors.Kind) errorMapping {
	if m, ok := kindResponses[kind]; ok {
		return m
	}
	return kindResponses[errors.KindInternal]
}

// writeAuthError logs err and writes the response for its kind.
func writeAuthError(w http.ResponseWriter, r *http.Request, err error) {
	kind := errors.KindOf(err)
	m := responseFor(kind)

	logger := zerolog.Ctx(r.Context())
	event := logger.Warn()
	if kind == errors.KindInternal {
		event = logger.Error()
	}
	event.Err(err).Str("kind", kind.String()).Str("path", r.URL.Path).Int("status", m.status).Msg("Request failed")

	writeError(w, m.status, m.message)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{StatusCode: status, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Err(err).Msg("Failed to write JSON response")
	}
}
