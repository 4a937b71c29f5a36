package salesforce_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ccsdigital/frameworkhub/domain/service"
	"github.com/ccsdigital/frameworkhub/infrastructure/salesforce"
	"github.com/ccsdigital/frameworkhub/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSalesforce struct {
	t          *testing.T
	mux        *http.ServeMux
	server     *httptest.Server
	tokenCalls int
	rejectNext bool
}

func newFakeSalesforce(t *testing.T) *fakeSalesforce {
	t.Helper()
	f := &fakeSalesforce{t: t, mux: http.NewServeMux()}
	f.server = httptest.NewServer(f.mux)
	t.Cleanup(f.server.Close)

	f.mux.HandleFunc("/services/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "password", r.PostFormValue("grant_type"))
		assert.Equal(t, "client-id", r.PostFormValue("client_id"))
		f.tokenCalls++
		_ = json.NewEncoder(w).Encode(map[string]string{
			"access_token": "token-1",
			"instance_url": f.server.URL,
		})
	})
	return f
}

func (f *fakeSalesforce) config() config.SalesforceConfig {
	return config.NewSalesforceConfigWithOptions(
		config.WithInstanceURL(f.server.URL),
		config.WithClientCredentials("client-id", "client-secret"),
		config.WithUserCredentials("integration@example.com", "secret"),
	)
}

func (f *fakeSalesforce) handleQuery(fn func(w http.ResponseWriter, r *http.Request)) {
	f.mux.HandleFunc("/services/data/v52.0/query", func(w http.ResponseWriter, r *http.Request) {
		if f.rejectNext {
			f.rejectNext = false
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		require.Equal(f.t, "Bearer token-1", r.Header.Get("Authorization"))
		fn(w, r)
	})
}

func TestClient_RequiresConfig(t *testing.T) {
	_, err := salesforce.NewClient(config.NewSalesforceConfig(), nil)
	assert.ErrorIs(t, err, salesforce.ErrNotConfigured)
}

func TestClient_AllFrameworks(t *testing.T) {
	fake := newFakeSalesforce(t)
	fake.handleQuery(func(w http.ResponseWriter, r *http.Request) {
		soql := r.URL.Query().Get("q")
		assert.Contains(t, soql, "FROM Master_Framework__c")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"totalSize": 1,
			"done":      true,
			"records": []map[string]any{{
				"Id":                  "sf-fw-1",
				"Framework_Number__c": "RM1234",
				"Name":                "Technology Products",
				"Status__c":           "Live",
				"Start_Date__c":       "2025-01-01",
				"End_Date__c":         "2027-01-01",
			}},
		})
	})

	client, err := salesforce.NewClient(fake.config(), nil)
	require.NoError(t, err)

	frameworks, err := client.AllFrameworks(context.Background())
	require.NoError(t, err)
	require.Len(t, frameworks, 1)
	assert.Equal(t, "sf-fw-1", frameworks[0].SalesforceID())
	assert.Equal(t, "RM1234", frameworks[0].RMNumber())
	assert.Equal(t, "Technology Products", frameworks[0].Title())
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), frameworks[0].StartDate())
	assert.Equal(t, 1, fake.tokenCalls)
}

func TestClient_FollowsPagination(t *testing.T) {
	fake := newFakeSalesforce(t)
	fake.mux.HandleFunc("/services/data/v52.0/query/next-page", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"done":    true,
			"records": []map[string]any{{"Id": "sf-fw-2", "Name": "Second"}},
		})
	})
	fake.handleQuery(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"done":           false,
			"nextRecordsUrl": "/services/data/v52.0/query/next-page",
			"records":        []map[string]any{{"Id": "sf-fw-1", "Name": "First"}},
		})
	})

	client, err := salesforce.NewClient(fake.config(), nil)
	require.NoError(t, err)

	frameworks, err := client.AllFrameworks(context.Background())
	require.NoError(t, err)
	require.Len(t, frameworks, 2)
	assert.Equal(t, "sf-fw-1", frameworks[0].SalesforceID())
	assert.Equal(t, "sf-fw-2", frameworks[1].SalesforceID())
	// Only the first page carries authentication overhead.
	assert.Equal(t, 1, fake.tokenCalls)
}

func TestClient_LotSuppliers(t *testing.T) {
	fake := newFakeSalesforce(t)
	fake.handleQuery(func(w http.ResponseWriter, r *http.Request) {
		soql := r.URL.Query().Get("q")
		assert.Contains(t, soql, "FROM Master_Framework_Lot_Supplier__c")
		assert.Contains(t, soql, "'sf-lot-1'")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"done": true,
			"records": []map[string]any{
				{
					"Supplier__c": "sf-sup-1",
					"Supplier__r": map[string]any{
						"Name":              "Acme Ltd",
						"Trading_Name__c":   "Acme",
						"BillingCity":       "London",
						"BillingPostalCode": "SW1A 1AA",
					},
				},
				// Link rows with no resolvable account are skipped.
				{"Supplier__c": ""},
			},
		})
	})

	client, err := salesforce.NewClient(fake.config(), nil)
	require.NoError(t, err)

	suppliers, err := client.LotSuppliers(context.Background(), "sf-lot-1")
	require.NoError(t, err)
	require.Len(t, suppliers, 1)
	assert.Equal(t, "sf-sup-1", suppliers[0].SalesforceID())
	assert.Equal(t, "Acme Ltd", suppliers[0].Name())
	assert.Equal(t, "London", suppliers[0].City())
}

func TestClient_ReauthenticatesOnExpiredToken(t *testing.T) {
	fake := newFakeSalesforce(t)
	fake.handleQuery(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"done":    true,
			"records": []map[string]any{{"Id": "sf-fw-1", "Name": "First"}},
		})
	})

	client, err := salesforce.NewClient(fake.config(), nil)
	require.NoError(t, err)

	// Warm the token cache, then make the next query call come back 401.
	_, err = client.AllFrameworks(context.Background())
	require.NoError(t, err)
	fake.rejectNext = true

	frameworks, err := client.AllFrameworks(context.Background())
	require.NoError(t, err)
	assert.Len(t, frameworks, 1)
	assert.Equal(t, 2, fake.tokenCalls)
}

func TestClient_QueryFailureIsCRMError(t *testing.T) {
	fake := newFakeSalesforce(t)
	fake.handleQuery(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`[{"message":"boom"}]`))
	})

	client, err := salesforce.NewClient(fake.config(), nil)
	require.NoError(t, err)

	_, err = client.AllFrameworks(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrCRMUnavailable)
	assert.True(t, strings.Contains(err.Error(), "500"))
}
