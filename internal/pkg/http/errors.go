package http

import (
	"net/http"

	apperrors "adsrelay-golang/server/internal/pkg/errors"
)

// ErrorBody is the client-facing failure document. RawResponse is present
// only when the upstream body could not be decoded, and then it holds the
// exact upstream text, even when that text is empty.
type ErrorBody struct {
	Error       string  `json:"error"`
	RawResponse *string `json:"rawResponse,omitempty"`
}

func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, ErrorBody{Error: msg})
}

func WriteErrorWithRaw(w http.ResponseWriter, status int, msg, raw string) {
	WriteJSON(w, status, ErrorBody{Error: msg, RawResponse: &raw})
}

// WriteHTTPError answers with the status carried by err (500 when none).
func WriteHTTPError(w http.ResponseWriter, err error) {
	WriteError(w, apperrors.StatusOf(err), err.Error())
}
