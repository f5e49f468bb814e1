package gateway

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/a-h/templ"

	"adsrelay-golang/server/internal/ads"
	"adsrelay-golang/server/internal/config"
	"adsrelay-golang/server/internal/metrics"
	"adsrelay-golang/server/internal/middleware"
	httppkg "adsrelay-golang/server/internal/pkg/http"
)

type route struct {
	path    string
	methods []string
	handler http.HandlerFunc
}

func (r route) methodList() string { return strings.Join(r.methods, ", ") }

func NewRouter(cfg *config.Config, relay Relayer) http.Handler {
	h := &handlers{relay: relay}

	routes := []route{
		{"/ping", []string{http.MethodGet, http.MethodHead}, handlePing},
		{"/health", []string{http.MethodGet, http.MethodHead}, handleHealth},

		{"/listAccessibleCustomers", []string{http.MethodPost}, h.listAccessibleCustomers},
		{"/getCampaignMetrics", []string{http.MethodPost}, h.searchWith(ads.CampaignMetricsQuery)},

		{"/api/listCustomers", []string{http.MethodPost}, h.listAccessibleCustomers},
		{"/api/getMetrics", []string{http.MethodPost}, h.searchWith(ads.CustomerMetricsQuery)},
	}
	if cfg.MetricsEnabled {
		routes = append(routes, route{"/metrics", []string{http.MethodGet}, metrics.Handler().ServeHTTP})
	}

	mux := http.NewServeMux()
	paths := make([]string, 0, len(routes)+1)
	for _, rt := range routes {
		mux.HandleFunc(rt.path, allowMethods(rt.handler, rt.methods...))
		paths = append(paths, rt.path)
	}

	index := templ.Handler(statusPage(statusInfo{
		Upstream: cfg.AdsBaseURL + "/" + cfg.AdsAPIVersion,
		Routes:   routes,
	}))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			httppkg.WriteError(w, http.StatusNotFound, "not found")
			return
		}
		allowMethods(index.ServeHTTP, http.MethodGet, http.MethodHead)(w, r)
	})
	paths = append(paths, "/")

	var handler http.Handler = middleware.Recovery(mux)
	handler = middleware.Auth(cfg.APIKey)(handler)
	handler = middleware.Logging(handler)
	handler = middleware.Metrics(paths)(handler)
	handler = middleware.CORS(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.Tracing("adsrelay")(handler)

	return handler
}

func allowMethods(h http.HandlerFunc, methods ...string) http.HandlerFunc {
	allowed := make(map[string]struct{}, len(methods))
	for _, m := range methods {
		allowed[m] = struct{}{}
	}
	allow := strings.Join(methods, ", ")

	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := allowed[r.Method]; ok {
			h(w, r)
			return
		}
		if errors.Is(r.Context().Err(), context.Canceled) {
			return
		}
		w.Header().Set("Allow", allow)
		httppkg.WriteError(w, http.StatusMethodNotAllowed, "method "+r.Method+" not allowed, use "+allow)
	}
}
