package ads

import (
	"net/http"

	httppkg "adsrelay-golang/server/internal/pkg/http"
)

// DecodeErrorMessage is reported when the upstream body is not JSON.
const DecodeErrorMessage = "Falha ao interpretar JSON"

type Kind int

const (
	KindOK Kind = iota
	KindUpstreamError
	KindDecodeError
)

func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindUpstreamError:
		return "upstream_error"
	case KindDecodeError:
		return "decode_error"
	default:
		return "unknown"
	}
}

// Result is the outcome of one relayed call. Body holds the upstream bytes
// untouched: a JSON document for KindOK and KindUpstreamError, arbitrary
// text for KindDecodeError.
type Result struct {
	Kind   Kind
	Status int
	Body   []byte
}

func (r *Result) Raw() string { return string(r.Body) }

// WriteResult answers the client. Successful payloads go out verbatim with
// 200. Upstream failures keep the upstream status. Undecodable bodies become
// a local 500 carrying the raw text, since their status cannot be trusted.
func WriteResult(w http.ResponseWriter, r *Result) {
	switch r.Kind {
	case KindOK:
		httppkg.WriteRawJSON(w, http.StatusOK, r.Body)
	case KindUpstreamError:
		httppkg.WriteRawJSON(w, r.Status, r.Body)
	default:
		httppkg.WriteErrorWithRaw(w, http.StatusInternalServerError, DecodeErrorMessage, r.Raw())
	}
}
