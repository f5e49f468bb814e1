package gateway

import (
	"context"
	"errors"
	"net/http"

	"adsrelay-golang/server/internal/ads"
	"adsrelay-golang/server/internal/credential"
	"adsrelay-golang/server/internal/logger"
	"adsrelay-golang/server/internal/middleware"
	httppkg "adsrelay-golang/server/internal/pkg/http"
)

// Relayer runs one upstream Google Ads call.
type Relayer interface {
	Do(ctx context.Context, q ads.QuerySpec, creds credential.Bundle) (*ads.Result, error)
}

type handlers struct {
	relay Relayer
}

func handlePing(w http.ResponseWriter, _ *http.Request) {
	httppkg.WriteJSON(w, http.StatusOK, map[string]string{"message": "pong"})
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// listAccessibleCustomers serves both /listAccessibleCustomers and
// /api/listCustomers; the latter's callers simply omit the optional fields.
func (h *handlers) listAccessibleCustomers(w http.ResponseWriter, r *http.Request) {
	var req customersRequest
	if err := decodeBody(w, r, &req); err != nil {
		httppkg.WriteHTTPError(w, err)
		return
	}
	h.forward(w, r, ads.ListAccessibleCustomers(), req.bundle())
}

// searchWith returns a search handler whose default GAQL is query.
func (h *handlers) searchWith(query string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req metricsRequest
		if err := decodeBody(w, r, &req); err != nil {
			httppkg.WriteHTTPError(w, err)
			return
		}
		h.forward(w, r, ads.Search(string(req.CustomerID), req.Query, query), req.bundle())
	}
}

func (h *handlers) forward(w http.ResponseWriter, r *http.Request, q ads.QuerySpec, creds credential.Bundle) {
	res, err := h.relay.Do(r.Context(), q, creds)
	if err != nil {
		if errors.Is(r.Context().Err(), context.Canceled) {
			return
		}
		logger.Error("[%s] %s failed: %v", middleware.RequestIDFrom(r.Context()), q.Operation, err)
		httppkg.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	ads.WriteResult(w, res)
}
