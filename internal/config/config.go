// Package config provides application configuration.
package config

import (
	"fmt"
	"log/slog"
	"time"
)

// Default configuration values.
const (
	DefaultHost              = "0.0.0.0"
	DefaultPort              = 8080
	DefaultLogLevel          = "INFO"
	DefaultFrameworkPageSize = 10
	DefaultSupplierPageSize  = 20
	DefaultCRMTimeout        = 30 * time.Second
	DefaultCMSTimeout        = 30 * time.Second
	DefaultImportTimeout     = 30 * time.Minute
	DefaultSalesforceAPI     = "v52.0"
)

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// SalesforceConfig configures the CRM connection.
type SalesforceConfig struct {
	instanceURL  string
	tokenURL     string
	clientID     string
	clientSecret string
	username     string
	password     string
	apiVersion   string
	timeout      time.Duration
}

// NewSalesforceConfig creates a SalesforceConfig with defaults.
func NewSalesforceConfig() SalesforceConfig {
	return SalesforceConfig{
		apiVersion: DefaultSalesforceAPI,
		timeout:    DefaultCRMTimeout,
	}
}

// InstanceURL returns the Salesforce instance base URL.
func (c SalesforceConfig) InstanceURL() string { return c.instanceURL }

// TokenURL returns the OAuth token endpoint. Empty means
// {instance}/services/oauth2/token.
func (c SalesforceConfig) TokenURL() string { return c.tokenURL }

// ClientID returns the connected-app client id.
func (c SalesforceConfig) ClientID() string { return c.clientID }

// ClientSecret returns the connected-app client secret.
func (c SalesforceConfig) ClientSecret() string { return c.clientSecret }

// Username returns the integration user name.
func (c SalesforceConfig) Username() string { return c.username }

// Password returns the integration user password (with security token appended).
func (c SalesforceConfig) Password() string { return c.password }

// APIVersion returns the REST API version (e.g. v52.0).
func (c SalesforceConfig) APIVersion() string { return c.apiVersion }

// Timeout returns the per-request timeout.
func (c SalesforceConfig) Timeout() time.Duration { return c.timeout }

// IsConfigured reports whether the CRM connection is usable.
func (c SalesforceConfig) IsConfigured() bool {
	return c.instanceURL != "" && c.clientID != "" && c.username != ""
}

// SalesforceOption is a functional option for SalesforceConfig.
type SalesforceOption func(*SalesforceConfig)

// WithInstanceURL sets the instance URL.
func WithInstanceURL(url string) SalesforceOption {
	return func(c *SalesforceConfig) { c.instanceURL = url }
}

// WithTokenURL sets the OAuth token endpoint.
func WithTokenURL(url string) SalesforceOption {
	return func(c *SalesforceConfig) { c.tokenURL = url }
}

// WithClientCredentials sets the connected-app credentials.
func WithClientCredentials(id, secret string) SalesforceOption {
	return func(c *SalesforceConfig) {
		c.clientID = id
		c.clientSecret = secret
	}
}

// WithUserCredentials sets the integration user credentials.
func WithUserCredentials(username, password string) SalesforceOption {
	return func(c *SalesforceConfig) {
		c.username = username
		c.password = password
	}
}

// WithAPIVersion sets the REST API version.
func WithAPIVersion(v string) SalesforceOption {
	return func(c *SalesforceConfig) { c.apiVersion = v }
}

// WithCRMTimeout sets the per-request timeout.
func WithCRMTimeout(d time.Duration) SalesforceOption {
	return func(c *SalesforceConfig) { c.timeout = d }
}

// NewSalesforceConfigWithOptions creates a SalesforceConfig with options.
func NewSalesforceConfigWithOptions(opts ...SalesforceOption) SalesforceConfig {
	c := NewSalesforceConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WordPressConfig configures the CMS connection used to provision content
// entries for imported frameworks and lots.
type WordPressConfig struct {
	baseURL     string
	username    string
	appPassword string
	timeout     time.Duration
}

// NewWordPressConfig creates a WordPressConfig with defaults.
func NewWordPressConfig() WordPressConfig {
	return WordPressConfig{timeout: DefaultCMSTimeout}
}

// BaseURL returns the WordPress site base URL.
func (c WordPressConfig) BaseURL() string { return c.baseURL }

// Username returns the API user name.
func (c WordPressConfig) Username() string { return c.username }

// AppPassword returns the application password.
func (c WordPressConfig) AppPassword() string { return c.appPassword }

// Timeout returns the per-request timeout.
func (c WordPressConfig) Timeout() time.Duration { return c.timeout }

// IsConfigured reports whether CMS provisioning is enabled.
func (c WordPressConfig) IsConfigured() bool { return c.baseURL != "" }

// WordPressOption is a functional option for WordPressConfig.
type WordPressOption func(*WordPressConfig)

// WithCMSBaseURL sets the site base URL.
func WithCMSBaseURL(url string) WordPressOption {
	return func(c *WordPressConfig) { c.baseURL = url }
}

// WithCMSCredentials sets the API user and application password.
func WithCMSCredentials(username, appPassword string) WordPressOption {
	return func(c *WordPressConfig) {
		c.username = username
		c.appPassword = appPassword
	}
}

// WithCMSTimeout sets the per-request timeout.
func WithCMSTimeout(d time.Duration) WordPressOption {
	return func(c *WordPressConfig) { c.timeout = d }
}

// NewWordPressConfigWithOptions creates a WordPressConfig with options.
func NewWordPressConfigWithOptions(opts ...WordPressOption) WordPressConfig {
	c := NewWordPressConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// ElasticConfig configures the search engine connection. Addresses and the
// index suffix are required: the suffix keeps live and staging indices apart
// on a shared cluster, so the indexer refuses to construct without it.
type ElasticConfig struct {
	addresses []string
	suffix    string
	username  string
	password  string
}

// NewElasticConfig creates an empty ElasticConfig.
func NewElasticConfig() ElasticConfig {
	return ElasticConfig{}
}

// Addresses returns the cluster node URLs.
func (c ElasticConfig) Addresses() []string {
	out := make([]string, len(c.addresses))
	copy(out, c.addresses)
	return out
}

// Suffix returns the environment suffix appended to index names.
func (c ElasticConfig) Suffix() string { return c.suffix }

// Username returns the basic auth user, if any.
func (c ElasticConfig) Username() string { return c.username }

// Password returns the basic auth password, if any.
func (c ElasticConfig) Password() string { return c.password }

// IsConfigured reports whether the search connection is usable.
func (c ElasticConfig) IsConfigured() bool {
	return len(c.addresses) > 0 && c.suffix != ""
}

// ElasticOption is a functional option for ElasticConfig.
type ElasticOption func(*ElasticConfig)

// WithAddresses sets the cluster node URLs.
func WithAddresses(addresses []string) ElasticOption {
	return func(c *ElasticConfig) {
		c.addresses = make([]string, len(addresses))
		copy(c.addresses, addresses)
	}
}

// WithSuffix sets the environment suffix for index names.
func WithSuffix(suffix string) ElasticOption {
	return func(c *ElasticConfig) { c.suffix = suffix }
}

// WithBasicAuth sets basic auth credentials.
func WithBasicAuth(username, password string) ElasticOption {
	return func(c *ElasticConfig) {
		c.username = username
		c.password = password
	}
}

// NewElasticConfigWithOptions creates an ElasticConfig with options.
func NewElasticConfigWithOptions(opts ...ElasticOption) ElasticConfig {
	c := NewElasticConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// AppConfig holds the main application configuration.
type AppConfig struct {
	host          string
	port          int
	dbURL         string
	logLevel      string
	logFormat     LogFormat
	importTimeout time.Duration
	salesforce    SalesforceConfig
	wordpress     WordPressConfig
	elastic       ElasticConfig
}

// NewAppConfig creates a new AppConfig with defaults.
func NewAppConfig() AppConfig {
	return AppConfig{
		host:          DefaultHost,
		port:          DefaultPort,
		dbURL:         "sqlite:///frameworkhub.db",
		logLevel:      DefaultLogLevel,
		logFormat:     LogFormatPretty,
		importTimeout: DefaultImportTimeout,
		salesforce:    NewSalesforceConfig(),
		wordpress:     NewWordPressConfig(),
		elastic:       NewElasticConfig(),
	}
}

// Host returns the server host to bind to.
func (c AppConfig) Host() string { return c.host }

// Port returns the server port to listen on.
func (c AppConfig) Port() int { return c.port }

// Addr returns the combined host:port address.
func (c AppConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.host, c.port)
}

// DBURL returns the database connection URL.
func (c AppConfig) DBURL() string { return c.dbURL }

// LogLevel returns the log level.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// ImportTimeout returns the wall-clock allowance for one full cascade run.
func (c AppConfig) ImportTimeout() time.Duration { return c.importTimeout }

// Salesforce returns the CRM config.
func (c AppConfig) Salesforce() SalesforceConfig { return c.salesforce }

// WordPress returns the CMS config.
func (c AppConfig) WordPress() WordPressConfig { return c.wordpress }

// Elastic returns the search engine config.
func (c AppConfig) Elastic() ElasticConfig { return c.elastic }

// AppConfigOption is a functional option for AppConfig.
type AppConfigOption func(*AppConfig)

// WithHost sets the server host.
func WithHost(host string) AppConfigOption {
	return func(c *AppConfig) { c.host = host }
}

// WithPort sets the server port.
func WithPort(port int) AppConfigOption {
	return func(c *AppConfig) { c.port = port }
}

// WithDBURL sets the database URL.
func WithDBURL(url string) AppConfigOption {
	return func(c *AppConfig) { c.dbURL = url }
}

// WithLogLevel sets the log level.
func WithLogLevel(level string) AppConfigOption {
	return func(c *AppConfig) { c.logLevel = level }
}

// WithLogFormat sets the log format.
func WithLogFormat(format LogFormat) AppConfigOption {
	return func(c *AppConfig) { c.logFormat = format }
}

// WithImportTimeout sets the cascade wall-clock allowance.
func WithImportTimeout(d time.Duration) AppConfigOption {
	return func(c *AppConfig) {
		if d > 0 {
			c.importTimeout = d
		}
	}
}

// WithSalesforceConfig sets the CRM config.
func WithSalesforceConfig(s SalesforceConfig) AppConfigOption {
	return func(c *AppConfig) { c.salesforce = s }
}

// WithWordPressConfig sets the CMS config.
func WithWordPressConfig(w WordPressConfig) AppConfigOption {
	return func(c *AppConfig) { c.wordpress = w }
}

// WithElasticConfig sets the search engine config.
func WithElasticConfig(e ElasticConfig) AppConfigOption {
	return func(c *AppConfig) { c.elastic = e }
}

// NewAppConfigWithOptions creates an AppConfig with functional options.
func NewAppConfigWithOptions(opts ...AppConfigOption) AppConfig {
	c := NewAppConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Apply returns a new AppConfig with the given options applied.
func (c AppConfig) Apply(opts ...AppConfigOption) AppConfig {
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// LogAttrs returns slog attributes for logging the configuration.
// Credentials are shown as presence only.
func (c AppConfig) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("addr", c.Addr()),
		slog.String("log_level", c.logLevel),
		slog.String("db_url", c.maskedDBURL()),
		slog.String("salesforce_instance", c.salesforce.instanceURL),
		slog.Bool("salesforce_configured", c.salesforce.IsConfigured()),
		slog.Bool("wordpress_configured", c.wordpress.IsConfigured()),
		slog.Int("elastic_addresses", len(c.elastic.addresses)),
		slog.String("elastic_suffix", c.elastic.suffix),
	}
}

func (c AppConfig) maskedDBURL() string {
	if c.dbURL == "" {
		return "(default)"
	}
	if len(c.dbURL) >= 7 && c.dbURL[:7] == "sqlite:" {
		return c.dbURL
	}
	return "postgres://***@***"
}
