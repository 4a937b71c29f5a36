// Package salesforce implements the CRM reader against the Salesforce REST
// API: OAuth2 password-grant authentication and SOQL queries with
// nextRecordsUrl pagination.
package salesforce

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/ccsdigital/frameworkhub/domain/catalogue"
	"github.com/ccsdigital/frameworkhub/domain/service"
	"github.com/ccsdigital/frameworkhub/internal/config"
	"github.com/ccsdigital/frameworkhub/internal/log"
)

// ErrNotConfigured indicates the Salesforce connection settings are missing.
var ErrNotConfigured = errors.New("salesforce not configured")

const dateLayout = "2006-01-02"

// Client reads framework, lot, and supplier records over the Salesforce
// REST API. It implements service.CRM.
type Client struct {
	cfg        config.SalesforceConfig
	httpClient *http.Client
	logger     *log.Logger

	mu          sync.Mutex
	accessToken string
	instanceURL string
}

// NewClient creates a Client. The first query authenticates lazily.
func NewClient(cfg config.SalesforceConfig, logger *log.Logger) (*Client, error) {
	if !cfg.IsConfigured() {
		return nil, ErrNotConfigured
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout()},
		logger:     logger,
	}, nil
}

var _ service.CRM = (*Client)(nil)

// AllFrameworks returns every framework record in the CRM.
func (c *Client) AllFrameworks(ctx context.Context) ([]catalogue.Framework, error) {
	soql := `SELECT Id, Framework_Number__c, Name, Summary__c, Description__c, Benefits__c, How_To_Buy__c,
		Framework_Type__c, Start_Date__c, End_Date__c, Status__c, Published_Status__c, Pillar__c, Category__c, Terms__c
		FROM Master_Framework__c ORDER BY Framework_Number__c`

	var records []frameworkRecord
	if err := c.queryAll(ctx, soql, &records); err != nil {
		return nil, fmt.Errorf("fetch frameworks: %w", err)
	}

	frameworks := make([]catalogue.Framework, len(records))
	for i, r := range records {
		frameworks[i] = r.toDomain()
	}
	return frameworks, nil
}

// FrameworkLots returns the lots belonging to one framework.
func (c *Client) FrameworkLots(ctx context.Context, frameworkSalesforceID string) ([]catalogue.Lot, error) {
	soql := fmt.Sprintf(`SELECT Id, Master_Framework__c, Name, Description__c
		FROM Master_Framework_Lot__c WHERE Master_Framework__c = '%s' ORDER BY Name`,
		escapeSOQL(frameworkSalesforceID))

	var records []lotRecord
	if err := c.queryAll(ctx, soql, &records); err != nil {
		return nil, fmt.Errorf("fetch lots for framework %s: %w", frameworkSalesforceID, err)
	}

	lots := make([]catalogue.Lot, len(records))
	for i, r := range records {
		lots[i] = r.toDomain()
	}
	return lots, nil
}

// LotSuppliers returns the suppliers awarded onto one lot.
func (c *Client) LotSuppliers(ctx context.Context, lotSalesforceID string) ([]catalogue.Supplier, error) {
	soql := fmt.Sprintf(`SELECT Supplier__c, Supplier__r.Name, Supplier__r.Trading_Name__c,
		Supplier__r.DUNS_Number__c, Supplier__r.BillingCity, Supplier__r.BillingPostalCode
		FROM Master_Framework_Lot_Supplier__c WHERE Master_Framework_Lot__c = '%s'`,
		escapeSOQL(lotSalesforceID))

	var records []lotSupplierRecord
	if err := c.queryAll(ctx, soql, &records); err != nil {
		return nil, fmt.Errorf("fetch suppliers for lot %s: %w", lotSalesforceID, err)
	}

	suppliers := make([]catalogue.Supplier, 0, len(records))
	for _, r := range records {
		if r.SupplierID == "" {
			continue
		}
		suppliers = append(suppliers, r.toDomain())
	}
	return suppliers, nil
}

type queryResponse struct {
	TotalSize      int             `json:"totalSize"`
	Done           bool            `json:"done"`
	NextRecordsURL string          `json:"nextRecordsUrl"`
	Records        json.RawMessage `json:"records"`
}

// queryAll runs a SOQL query and follows nextRecordsUrl until done,
// decoding every page of records into out (a pointer to a slice).
func (c *Client) queryAll(ctx context.Context, soql string, out any) error {
	path := fmt.Sprintf("/services/data/%s/query?q=%s", c.cfg.APIVersion(), url.QueryEscape(compactSOQL(soql)))

	var pages []json.RawMessage
	for path != "" {
		page, err := c.queryPage(ctx, path)
		if err != nil {
			return err
		}
		pages = append(pages, page.Records)
		if page.Done {
			break
		}
		path = page.NextRecordsURL
	}

	// Stitch the page record arrays back into one JSON array before the
	// final decode into the caller's typed slice.
	var buf strings.Builder
	buf.WriteByte('[')
	first := true
	for _, p := range pages {
		trimmed := strings.TrimSpace(string(p))
		trimmed = strings.TrimPrefix(trimmed, "[")
		trimmed = strings.TrimSuffix(trimmed, "]")
		if strings.TrimSpace(trimmed) == "" {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		buf.WriteString(trimmed)
		first = false
	}
	buf.WriteByte(']')

	if err := json.Unmarshal([]byte(buf.String()), out); err != nil {
		return fmt.Errorf("%w: decode records: %v", service.ErrCRMUnavailable, err)
	}
	return nil
}

func (c *Client) queryPage(ctx context.Context, path string) (queryResponse, error) {
	body, status, err := c.get(ctx, path)
	if err != nil {
		return queryResponse{}, err
	}
	if status == http.StatusUnauthorized {
		// Token expired; authenticate again and retry once.
		c.clearToken()
		body, status, err = c.get(ctx, path)
		if err != nil {
			return queryResponse{}, err
		}
	}
	if status != http.StatusOK {
		return queryResponse{}, fmt.Errorf("%w: query returned status %d: %s", service.ErrCRMUnavailable, status, truncate(body))
	}

	var page queryResponse
	if err := json.Unmarshal(body, &page); err != nil {
		return queryResponse{}, fmt.Errorf("%w: decode query response: %v", service.ErrCRMUnavailable, err)
	}
	return page, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, int, error) {
	token, instance, err := c.authenticate(ctx)
	if err != nil {
		return nil, 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, instance+path, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: build request: %v", service.ErrCRMUnavailable, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", service.ErrCRMUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: read response: %v", service.ErrCRMUnavailable, err)
	}
	return body, resp.StatusCode, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	InstanceURL string `json:"instance_url"`
}

// authenticate returns a cached token or performs the password-grant flow.
func (c *Client) authenticate(ctx context.Context) (token, instance string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" {
		return c.accessToken, c.instanceURL, nil
	}

	tokenURL := c.cfg.TokenURL()
	if tokenURL == "" {
		tokenURL = strings.TrimSuffix(c.cfg.InstanceURL(), "/") + "/services/oauth2/token"
	}

	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("client_id", c.cfg.ClientID())
	form.Set("client_secret", c.cfg.ClientSecret())
	form.Set("username", c.cfg.Username())
	form.Set("password", c.cfg.Password())

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", "", fmt.Errorf("%w: build token request: %v", service.ErrCRMUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("%w: token request: %v", service.ErrCRMUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", fmt.Errorf("%w: read token response: %v", service.ErrCRMUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("%w: token request returned status %d: %s", service.ErrCRMUnavailable, resp.StatusCode, truncate(body))
	}

	var tok tokenResponse
	if err := json.Unmarshal(body, &tok); err != nil {
		return "", "", fmt.Errorf("%w: decode token response: %v", service.ErrCRMUnavailable, err)
	}
	if tok.AccessToken == "" {
		return "", "", fmt.Errorf("%w: token response missing access_token", service.ErrCRMUnavailable)
	}

	c.accessToken = tok.AccessToken
	c.instanceURL = strings.TrimSuffix(tok.InstanceURL, "/")
	if c.instanceURL == "" {
		c.instanceURL = strings.TrimSuffix(c.cfg.InstanceURL(), "/")
	}
	c.logger.DebugContext(ctx, "salesforce authenticated",
		"instance", c.instanceURL,
		"duration", time.Since(start).String(),
	)
	return c.accessToken, c.instanceURL, nil
}

func (c *Client) clearToken() {
	c.mu.Lock()
	c.accessToken = ""
	c.mu.Unlock()
}

// escapeSOQL escapes single quotes and backslashes for string literals in a
// SOQL WHERE clause.
func escapeSOQL(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}

// compactSOQL collapses the whitespace of a multi-line query literal.
func compactSOQL(soql string) string {
	return strings.Join(strings.Fields(soql), " ")
}

func truncate(body []byte) string {
	const max = 200
	s := string(body)
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
