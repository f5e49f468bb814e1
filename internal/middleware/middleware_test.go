package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	_, _ = io.WriteString(w, "ok")
}

func TestCORS_PreflightAnsweredWithBare200(t *testing.T) {
	called := false
	h := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))

	req := httptest.NewRequest(http.MethodOptions, "/getCampaignMetrics", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "developer-token, login-customer-id, content-type")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if called {
		t.Fatalf("OPTIONS must not reach the route handler")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d want 200", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %q", rec.Body.String())
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("Access-Control-Allow-Origin=%q want *", got)
	}
	allowed := strings.ToLower(rec.Header().Get("Access-Control-Allow-Headers"))
	for _, h := range []string{"developer-token", "login-customer-id"} {
		if !strings.Contains(allowed, h) {
			t.Fatalf("Access-Control-Allow-Headers=%q missing %s", allowed, h)
		}
	}
}

func TestCORS_BareOptionsWithoutOrigin(t *testing.T) {
	h := CORS(http.HandlerFunc(okHandler))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/anything", nil))

	if rec.Code != http.StatusOK || rec.Body.Len() != 0 {
		t.Fatalf("got status=%d body=%q want bare 200", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("Access-Control-Allow-Origin=%q want *", got)
	}
}

func TestCORS_ActualRequestGetsOriginHeader(t *testing.T) {
	h := CORS(http.HandlerFunc(okHandler))

	req := httptest.NewRequest(http.MethodPost, "/listAccessibleCustomers", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Body.String() != "ok" {
		t.Fatalf("expected handler to run, body=%q", rec.Body.String())
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("Access-Control-Allow-Origin=%q want *", got)
	}
}

func TestAuth_DisabledWithoutKey(t *testing.T) {
	h := Auth("")(http.HandlerFunc(okHandler))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/listAccessibleCustomers", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d want 200", rec.Code)
	}
}

func TestAuth_RejectsWrongKey(t *testing.T) {
	h := Auth("secret")(http.HandlerFunc(okHandler))

	req := httptest.NewRequest(http.MethodPost, "/listAccessibleCustomers", nil)
	req.Header.Set("x-api-key", "nope")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d want 401", rec.Code)
	}
	if rec.Body.String() != `{"error":"unauthorized"}` {
		t.Fatalf("body=%s", rec.Body.String())
	}
}

func TestAuth_AcceptsHeaderAndQueryKey(t *testing.T) {
	h := Auth("secret")(http.HandlerFunc(okHandler))

	req := httptest.NewRequest(http.MethodPost, "/listAccessibleCustomers", nil)
	req.Header.Set("x-api-key", "secret")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("header key: status=%d want 200", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/getMetrics?key=secret", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("query key: status=%d want 200", rec.Code)
	}
}

func TestAuth_PingStaysOpen(t *testing.T) {
	h := Auth("secret")(http.HandlerFunc(okHandler))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d want 200", rec.Code)
	}
}

func TestRequestID_GeneratesAndPropagates(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if seen == "" || seen == "-" {
		t.Fatalf("expected generated request id, got %q", seen)
	}
	if rec.Header().Get(HeaderRequestID) != seen {
		t.Fatalf("response header=%q want %q", rec.Header().Get(HeaderRequestID), seen)
	}
}

func TestRequestID_ReusesInbound(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(HeaderRequestID, "trace-42")
	h.ServeHTTP(httptest.NewRecorder(), req)
	if seen != "trace-42" {
		t.Fatalf("request id=%q want trace-42", seen)
	}
}

func TestRecovery_Returns500JSON(t *testing.T) {
	h := Recovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d want 500", rec.Code)
	}
	if rec.Body.String() != `{"error":"internal server error"}` {
		t.Fatalf("body=%s", rec.Body.String())
	}
}

func TestStatusWriter_SharedAcrossLayers(t *testing.T) {
	rec := httptest.NewRecorder()
	outer := newStatusWriter(rec)
	inner := newStatusWriter(outer)
	if inner != outer {
		t.Fatalf("expected nested wrap to reuse the outer writer")
	}
	inner.WriteHeader(http.StatusTeapot)
	if outer.statusCode != http.StatusTeapot {
		t.Fatalf("statusCode=%d want %d", outer.statusCode, http.StatusTeapot)
	}
}
