package frameworkhub

import (
	appservice "github.com/ccsdigital/frameworkhub/application/service"
	"github.com/ccsdigital/frameworkhub/domain/service"
	"github.com/ccsdigital/frameworkhub/internal/log"
)

// clientConfig holds construction-time overrides for Client.
type clientConfig struct {
	crm       service.CRM
	publisher service.ContentPublisher
	indexer   service.SupplierIndexer
	reporter  appservice.Reporter
	logger    *log.Logger
}

// Option configures the Client.
type Option func(*clientConfig)

// WithCRM overrides the CRM client. The importer is wired even when the
// CRM config is absent.
func WithCRM(crm service.CRM) Option {
	return func(c *clientConfig) { c.crm = crm }
}

// WithContentPublisher overrides the CMS client.
func WithContentPublisher(p service.ContentPublisher) Option {
	return func(c *clientConfig) { c.publisher = p }
}

// WithSupplierIndexer overrides the search index client. The search service
// is wired even when the index config is absent.
func WithSupplierIndexer(i service.SupplierIndexer) Option {
	return func(c *clientConfig) { c.indexer = i }
}

// WithReporter sets the per-record import progress reporter.
func WithReporter(r appservice.Reporter) Option {
	return func(c *clientConfig) { c.reporter = r }
}

// WithLogger overrides the logger built from the config.
func WithLogger(l *log.Logger) Option {
	return func(c *clientConfig) { c.logger = l }
}
