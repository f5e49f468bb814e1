package credential

import (
	"net/http"
	"strings"

	"golang.org/x/oauth2"
)

const (
	HeaderDeveloperToken  = "developer-token"
	HeaderLoginCustomerID = "login-customer-id"
)

// Bundle is the credential set a caller supplies with one request. It is
// never stored.
type Bundle struct {
	AccessToken     string
	DeveloperToken  string
	LoginCustomerID string
}

// WithDefaults fills empty fields from server-held values.
func (b Bundle) WithDefaults(developerToken, loginCustomerID string) Bundle {
	if strings.TrimSpace(b.DeveloperToken) == "" {
		b.DeveloperToken = developerToken
	}
	if strings.TrimSpace(b.LoginCustomerID) == "" {
		b.LoginCustomerID = loginCustomerID
	}
	return b
}

func (b Bundle) token() *oauth2.Token {
	return &oauth2.Token{AccessToken: strings.TrimSpace(b.AccessToken), TokenType: "Bearer"}
}

// Header returns the non-authorization upstream headers for b. Optional
// credentials are left out when empty instead of being sent blank.
func (b Bundle) Header() http.Header {
	h := http.Header{}
	h.Set("Accept", "application/json")
	if v := strings.TrimSpace(b.DeveloperToken); v != "" {
		h.Set(HeaderDeveloperToken, v)
	}
	if v := NormalizeCustomerID(b.LoginCustomerID); v != "" {
		h.Set(HeaderLoginCustomerID, v)
	}
	return h
}

// Apply sets b's headers on req. Authorization comes from the bearer token
// and replaces any existing value.
func (b Bundle) Apply(req *http.Request) {
	for k, vs := range b.Header() {
		req.Header[k] = vs
	}
	b.token().SetAuthHeader(req)
}

// NormalizeCustomerID strips the dashes of the "123-456-7890" display form;
// the API expects the bare digits.
func NormalizeCustomerID(id string) string {
	return strings.ReplaceAll(strings.TrimSpace(id), "-", "")
}
