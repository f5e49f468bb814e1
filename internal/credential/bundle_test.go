package credential

import (
	"net/http"
	"testing"
)

func TestHeader_AllFields(t *testing.T) {
	b := Bundle{AccessToken: "ya29.token", DeveloperToken: "dev", LoginCustomerID: "920-153-8227"}
	h := b.Header()

	if _, ok := h["Authorization"]; ok {
		t.Fatalf("Header must not carry Authorization, got %q", h.Get("Authorization"))
	}
	if got := h.Get(HeaderDeveloperToken); got != "dev" {
		t.Fatalf("developer-token=%q want %q", got, "dev")
	}
	if got := h.Get(HeaderLoginCustomerID); got != "9201538227" {
		t.Fatalf("login-customer-id=%q want %q", got, "9201538227")
	}
	if got := h.Get("Accept"); got != "application/json" {
		t.Fatalf("Accept=%q", got)
	}
}

func TestHeader_OmitsEmptyOptionalFields(t *testing.T) {
	h := Bundle{AccessToken: "tok"}.Header()
	if _, ok := h[http.CanonicalHeaderKey(HeaderDeveloperToken)]; ok {
		t.Fatalf("expected developer-token to be omitted")
	}
	if _, ok := h[http.CanonicalHeaderKey(HeaderLoginCustomerID)]; ok {
		t.Fatalf("expected login-customer-id to be omitted")
	}
}

func TestWithDefaults_CallerWins(t *testing.T) {
	b := Bundle{AccessToken: "tok", DeveloperToken: "caller"}.WithDefaults("server", "111")
	if b.DeveloperToken != "caller" {
		t.Fatalf("DeveloperToken=%q want caller value", b.DeveloperToken)
	}
	if b.LoginCustomerID != "111" {
		t.Fatalf("LoginCustomerID=%q want server default", b.LoginCustomerID)
	}
}

func TestWithDefaults_BlankCountsAsMissing(t *testing.T) {
	b := Bundle{DeveloperToken: "  "}.WithDefaults("server", "")
	if b.DeveloperToken != "server" {
		t.Fatalf("DeveloperToken=%q want server default", b.DeveloperToken)
	}
}

func TestApply_SetsHeadersOnRequest(t *testing.T) {
	req, err := http.NewRequest(http.MethodGet, "https://googleads.googleapis.com/v14/customers:listAccessibleCustomers", nil)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	req.Header.Set("Authorization", "Bearer stale")

	Bundle{AccessToken: "fresh", DeveloperToken: "dev"}.Apply(req)
	if got := req.Header.Get("Authorization"); got != "Bearer fresh" {
		t.Fatalf("Authorization=%q want %q", got, "Bearer fresh")
	}
	if got := req.Header.Get(HeaderDeveloperToken); got != "dev" {
		t.Fatalf("developer-token=%q", got)
	}
}

func TestApply_TrimsAccessToken(t *testing.T) {
	req, err := http.NewRequest(http.MethodPost, "https://googleads.googleapis.com/v14/customers/1/googleAds:search", nil)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}

	Bundle{AccessToken: "  ya29.token\n"}.Apply(req)
	if got := req.Header.Get("Authorization"); got != "Bearer ya29.token" {
		t.Fatalf("Authorization=%q want %q", got, "Bearer ya29.token")
	}
	if _, ok := req.Header[http.CanonicalHeaderKey(HeaderLoginCustomerID)]; ok {
		t.Fatalf("expected login-customer-id to be omitted")
	}
}

func TestNormalizeCustomerID(t *testing.T) {
	cases := map[string]string{
		"1234567890":     "1234567890",
		"123-456-7890":   "1234567890",
		" 123-456-7890 ": "1234567890",
		"":               "",
	}
	for in, want := range cases {
		if got := NormalizeCustomerID(in); got != want {
			t.Fatalf("NormalizeCustomerID(%q)=%q want %q", in, got, want)
		}
	}
}
