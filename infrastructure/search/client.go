// Package search implements the supplier search indexer against
// Elasticsearch.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	elasticsearch "github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/ccsdigital/frameworkhub/domain/catalogue"
	"github.com/ccsdigital/frameworkhub/domain/service"
	"github.com/ccsdigital/frameworkhub/internal/config"
	"github.com/ccsdigital/frameworkhub/internal/log"
)

// Construction errors. The index suffix keeps live and staging indices apart
// on a shared cluster, so a missing suffix is refused outright.
var (
	ErrNoAddresses = errors.New("elasticsearch addresses not configured")
	ErrNoSuffix    = errors.New("elasticsearch index suffix not configured")
)

const (
	supplierIndexPrefix = "supplier"
	dateLayout          = "2006-01-02"
)

// Client maintains and queries the supplier index. It implements
// service.SupplierIndexer. The index existence probe runs once per instance
// and its outcome is cached on the instance.
type Client struct {
	es        *elasticsearch.Client
	indexName string
	logger    *log.Logger

	mu         sync.Mutex
	indexReady bool
}

// NewClient creates a Client for the supplier_<suffix> index.
func NewClient(cfg config.ElasticConfig, logger *log.Logger) (*Client, error) {
	if len(cfg.Addresses()) == 0 {
		return nil, ErrNoAddresses
	}
	if cfg.Suffix() == "" {
		return nil, ErrNoSuffix
	}
	if logger == nil {
		logger = log.Default()
	}

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Addresses(),
		Username:  cfg.Username(),
		Password:  cfg.Password(),
	})
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}

	return &Client{
		es:        es,
		indexName: fmt.Sprintf("%s_%s", supplierIndexPrefix, cfg.Suffix()),
		logger:    logger,
	}, nil
}

var _ service.SupplierIndexer = (*Client)(nil)

// IndexName returns the full index name including the environment suffix.
func (c *Client) IndexName() string {
	return c.indexName
}

// ensureIndex probes for the index with a HEAD request and creates it with
// the supplier mapping when the probe reports anything above 299.
func (c *Client) ensureIndex(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.indexReady {
		return nil
	}

	probe := esapi.IndicesExistsRequest{Index: []string{c.indexName}}
	res, err := probe.Do(ctx, c.es)
	if err != nil {
		return fmt.Errorf("probe index %s: %w", c.indexName, err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode > 299 {
		create := esapi.IndicesCreateRequest{
			Index: c.indexName,
			Body:  bytes.NewReader([]byte(supplierMapping)),
		}
		createRes, err := create.Do(ctx, c.es)
		if err != nil {
			return fmt.Errorf("create index %s: %w", c.indexName, err)
		}
		defer func() { _ = createRes.Body.Close() }()
		if createRes.IsError() {
			return fmt.Errorf("create index %s: %s", c.indexName, createRes.String())
		}
		c.logger.InfoContext(ctx, "created supplier index", "index", c.indexName)
	}

	c.indexReady = true
	return nil
}

// CreateOrUpdateSupplier upserts the supplier's denormalized document and
// refreshes the index so the change is immediately query-visible.
func (c *Client) CreateOrUpdateSupplier(ctx context.Context, supplier catalogue.Supplier, liveFrameworks []catalogue.Framework) error {
	if err := c.ensureIndex(ctx); err != nil {
		return err
	}

	doc := buildDocument(supplier, liveFrameworks)
	payload, err := json.Marshal(map[string]any{
		"doc":           doc,
		"doc_as_upsert": true,
	})
	if err != nil {
		return fmt.Errorf("encode supplier document: %w", err)
	}

	update := esapi.UpdateRequest{
		Index:      c.indexName,
		DocumentID: strconv.FormatInt(supplier.ID(), 10),
		Body:       bytes.NewReader(payload),
	}
	res, err := update.Do(ctx, c.es)
	if err != nil {
		return fmt.Errorf("index supplier %d: %w", supplier.ID(), err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("index supplier %d: %s", supplier.ID(), res.String())
	}

	refresh := esapi.IndicesRefreshRequest{Index: []string{c.indexName}}
	refreshRes, err := refresh.Do(ctx, c.es)
	if err != nil {
		return fmt.Errorf("refresh index %s: %w", c.indexName, err)
	}
	defer func() { _ = refreshRes.Body.Close() }()
	if refreshRes.IsError() {
		return fmt.Errorf("refresh index %s: %s", c.indexName, refreshRes.String())
	}
	return nil
}

// RemoveSupplier deletes the supplier's document. A 404 means the document
// was never indexed, which is a success.
func (c *Client) RemoveSupplier(ctx context.Context, supplier catalogue.Supplier) error {
	if err := c.ensureIndex(ctx); err != nil {
		return err
	}

	del := esapi.DeleteRequest{
		Index:      c.indexName,
		DocumentID: strconv.FormatInt(supplier.ID(), 10),
	}
	res, err := del.Do(ctx, c.es)
	if err != nil {
		return fmt.Errorf("remove supplier %d: %w", supplier.ID(), err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode == http.StatusNotFound {
		return nil
	}
	if res.IsError() {
		return fmt.Errorf("remove supplier %d: %s", supplier.ID(), res.String())
	}
	return nil
}

// QueryByKeyword searches the supplier index. An empty keyword matches all
// documents. The keyword query is a should of a fuzzy multi_match across the
// scalar fields and a non-fuzzy multi_match nested into live_frameworks.
func (c *Client) QueryByKeyword(ctx context.Context, keyword string, page, limit int) (service.SupplierResultSet, error) {
	if err := c.ensureIndex(ctx); err != nil {
		return service.SupplierResultSet{}, err
	}

	var query map[string]any
	if keyword == "" {
		query = map[string]any{"match_all": map[string]any{}}
	} else {
		query = map[string]any{
			"bool": map[string]any{
				"should": []any{
					map[string]any{
						"multi_match": map[string]any{
							"query":     keyword,
							"fuzziness": 1,
						},
					},
					map[string]any{
						"nested": map[string]any{
							"path": "live_frameworks",
							"query": map[string]any{
								"multi_match": map[string]any{
									"query": keyword,
								},
							},
						},
					},
				},
			},
		}
	}

	body, err := json.Marshal(map[string]any{
		"query": query,
		"from":  translatePage(page, limit),
		"size":  limit,
		"sort": []any{
			map[string]any{"name.raw": map[string]any{"order": "asc"}},
		},
	})
	if err != nil {
		return service.SupplierResultSet{}, fmt.Errorf("encode search query: %w", err)
	}

	search := esapi.SearchRequest{
		Index: []string{c.indexName},
		Body:  bytes.NewReader(body),
	}
	res, err := search.Do(ctx, c.es)
	if err != nil {
		return service.SupplierResultSet{}, fmt.Errorf("search suppliers: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return service.SupplierResultSet{}, fmt.Errorf("search suppliers: %s", res.String())
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return service.SupplierResultSet{}, fmt.Errorf("decode search response: %w", err)
	}

	hits := make([]service.SupplierDocument, len(parsed.Hits.Hits))
	for i, h := range parsed.Hits.Hits {
		hits[i] = h.Source
	}
	return service.SupplierResultSet{
		Total: parsed.Hits.Total.Value,
		Hits:  hits,
	}, nil
}

type searchResponse struct {
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		Hits []struct {
			Source service.SupplierDocument `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func buildDocument(supplier catalogue.Supplier, liveFrameworks []catalogue.Framework) service.SupplierDocument {
	summaries := make([]service.FrameworkSummary, len(liveFrameworks))
	for i, fw := range liveFrameworks {
		summaries[i] = service.FrameworkSummary{
			Title:    fw.Title(),
			RMNumber: fw.RMNumber(),
			EndDate:  fw.EndDate().Format(dateLayout),
		}
	}
	return service.SupplierDocument{
		ID:             supplier.ID(),
		SalesforceID:   supplier.SalesforceID(),
		Name:           supplier.Name(),
		TradingName:    supplier.TradingName(),
		DUNSNumber:     supplier.DUNSNumber(),
		City:           supplier.City(),
		Postcode:       supplier.Postcode(),
		LiveFrameworks: summaries,
	}
}

// translatePage converts a 1-based page number to a result offset. Page 0
// and page 1 both start at the first result.
func translatePage(page, limit int) int {
	if page >= 2 {
		return (page - 1) * limit
	}
	return 0
}
