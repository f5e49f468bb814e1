package gateway

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	"adsrelay-golang/server/internal/credential"
	"adsrelay-golang/server/internal/logger"
	apperrors "adsrelay-golang/server/internal/pkg/errors"
	jsonpkg "adsrelay-golang/server/internal/pkg/json"
)

const maxBodyBytes = 1 << 20

// idString accepts an id sent either as a JSON string or a bare number.
type idString string

func (s *idString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*s = ""
		return nil
	}
	if b[0] == '"' {
		var v string
		if err := jsonpkg.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = idString(v)
		return nil
	}
	var n int64
	if err := jsonpkg.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or integer")
	}
	*s = idString(b)
	return nil
}

// customersRequest is the body of the list endpoints.
type customersRequest struct {
	AccessToken    string   `json:"accessToken"`
	DeveloperToken string   `json:"developerToken"`
	ManagerID      idString `json:"managerId"`
}

func (r customersRequest) bundle() credential.Bundle {
	return credential.Bundle{
		AccessToken:     r.AccessToken,
		DeveloperToken:  r.DeveloperToken,
		LoginCustomerID: string(r.ManagerID),
	}
}

// metricsRequest is the body of the search endpoints. Query overrides the
// endpoint's fixed GAQL when non-blank.
type metricsRequest struct {
	AccessToken    string   `json:"accessToken"`
	DeveloperToken string   `json:"developerToken"`
	CustomerID     idString `json:"customerId"`
	ManagerID      idString `json:"managerId"`
	Query          string   `json:"query"`
}

func (r metricsRequest) bundle() credential.Bundle {
	return credential.Bundle{
		AccessToken:     r.AccessToken,
		DeveloperToken:  r.DeveloperToken,
		LoginCustomerID: string(r.ManagerID),
	}
}

// decodeBody reads a JSON object body into v. An absent body leaves v at
// its zero value. Field contents are not validated.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	b, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apperrors.TooLarge("request body too large")
		}
		return apperrors.Wrap(http.StatusBadRequest, err)
	}
	logger.ClientRequest(r.Method, r.URL.Path, b)

	if len(bytes.TrimSpace(b)) == 0 {
		return nil
	}
	if err := jsonpkg.Unmarshal(b, v); err != nil {
		he := apperrors.BadRequest("invalid JSON body: " + err.Error())
		he.Err = err
		return he
	}
	return nil
}
