package ads

import (
	"net/url"
	"strings"

	"adsrelay-golang/server/internal/credential"
	jsonpkg "adsrelay-golang/server/internal/pkg/json"
)

const (
	OperationListAccessibleCustomers = "listAccessibleCustomers"
	OperationSearch                  = "search"
)

// CampaignMetricsQuery selects delivery metrics of enabled campaigns.
const CampaignMetricsQuery = `SELECT
  campaign.id,
  campaign.name,
  metrics.impressions,
  metrics.clicks,
  metrics.ctr,
  metrics.conversions,
  metrics.average_cpc,
  metrics.cost_micros
FROM campaign
WHERE campaign.status = 'ENABLED'
LIMIT 50`

// CustomerMetricsQuery selects account level totals for the last 30 days.
const CustomerMetricsQuery = `SELECT
  customer.id,
  customer.descriptive_name,
  customer.currency_code,
  metrics.impressions,
  metrics.clicks,
  metrics.ctr,
  metrics.conversions,
  metrics.cost_micros
FROM customer
WHERE segments.date DURING LAST_30_DAYS`

// QuerySpec names one upstream resource and, for search, the GAQL to run.
type QuerySpec struct {
	Operation string
	Resource  string
	Query     string
}

func ListAccessibleCustomers() QuerySpec {
	return QuerySpec{
		Operation: OperationListAccessibleCustomers,
		Resource:  "customers:listAccessibleCustomers",
	}
}

// Search targets customers/{id}/googleAds:search. A blank query falls back
// to defaultQuery; any other query is sent exactly as given.
func Search(customerID, query, defaultQuery string) QuerySpec {
	if strings.TrimSpace(query) == "" {
		query = defaultQuery
	}
	return QuerySpec{
		Operation: OperationSearch,
		Resource:  "customers/" + url.PathEscape(credential.NormalizeCustomerID(customerID)) + "/googleAds:search",
		Query:     query,
	}
}

func (q QuerySpec) Method() string {
	if q.Operation == OperationSearch {
		return "POST"
	}
	return "GET"
}

type searchRequest struct {
	Query string `json:"query"`
}

// Body encodes the search request; list calls carry no body.
func (q QuerySpec) Body() ([]byte, error) {
	if q.Operation != OperationSearch {
		return nil, nil
	}
	return jsonpkg.Marshal(searchRequest{Query: q.Query})
}
