package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvConfig holds configuration loaded from environment variables.
type EnvConfig struct {
	Host          string        `envconfig:"HOST" default:"0.0.0.0"`
	Port          int           `envconfig:"PORT" default:"8080"`
	DBURL         string        `envconfig:"DB_URL" default:"sqlite:///frameworkhub.db"`
	LogLevel      string        `envconfig:"LOG_LEVEL" default:"INFO"`
	LogFormat     string        `envconfig:"LOG_FORMAT" default:"pretty"`
	ImportTimeout time.Duration `envconfig:"IMPORT_TIMEOUT" default:"30m"`

	SalesforceInstanceURL  string        `envconfig:"SALESFORCE_INSTANCE_URL"`
	SalesforceTokenURL     string        `envconfig:"SALESFORCE_TOKEN_URL"`
	SalesforceClientID     string        `envconfig:"SALESFORCE_CLIENT_ID"`
	SalesforceClientSecret string        `envconfig:"SALESFORCE_CLIENT_SECRET"`
	SalesforceUsername     string        `envconfig:"SALESFORCE_USERNAME"`
	SalesforcePassword     string        `envconfig:"SALESFORCE_PASSWORD"`
	SalesforceAPIVersion   string        `envconfig:"SALESFORCE_API_VERSION" default:"v52.0"`
	SalesforceTimeout      time.Duration `envconfig:"SALESFORCE_TIMEOUT" default:"30s"`

	WordPressBaseURL     string        `envconfig:"WORDPRESS_BASE_URL"`
	WordPressUsername    string        `envconfig:"WORDPRESS_USERNAME"`
	WordPressAppPassword string        `envconfig:"WORDPRESS_APP_PASSWORD"`
	WordPressTimeout     time.Duration `envconfig:"WORDPRESS_TIMEOUT" default:"30s"`

	ElasticAddresses string `envconfig:"ELASTIC_ADDRESSES"`
	ElasticSuffix    string `envconfig:"ELASTIC_SUFFIX"`
	ElasticUsername  string `envconfig:"ELASTIC_USERNAME"`
	ElasticPassword  string `envconfig:"ELASTIC_PASSWORD"`
}

// NewEnvConfig loads configuration from environment variables.
func NewEnvConfig() (EnvConfig, error) {
	var env EnvConfig
	if err := envconfig.Process("FRAMEWORKHUB", &env); err != nil {
		return EnvConfig{}, fmt.Errorf("process env config: %w", err)
	}
	return env, nil
}

// ToAppConfig converts the environment configuration to an AppConfig.
func (e EnvConfig) ToAppConfig() AppConfig {
	salesforce := NewSalesforceConfigWithOptions(
		WithInstanceURL(e.SalesforceInstanceURL),
		WithTokenURL(e.SalesforceTokenURL),
		WithClientCredentials(e.SalesforceClientID, e.SalesforceClientSecret),
		WithUserCredentials(e.SalesforceUsername, e.SalesforcePassword),
		WithAPIVersion(e.SalesforceAPIVersion),
		WithCRMTimeout(e.SalesforceTimeout),
	)

	wordpress := NewWordPressConfigWithOptions(
		WithCMSBaseURL(e.WordPressBaseURL),
		WithCMSCredentials(e.WordPressUsername, e.WordPressAppPassword),
		WithCMSTimeout(e.WordPressTimeout),
	)

	elastic := NewElasticConfigWithOptions(
		WithAddresses(splitAddresses(e.ElasticAddresses)),
		WithSuffix(e.ElasticSuffix),
		WithBasicAuth(e.ElasticUsername, e.ElasticPassword),
	)

	return NewAppConfigWithOptions(
		WithHost(e.Host),
		WithPort(e.Port),
		WithDBURL(e.DBURL),
		WithLogLevel(e.LogLevel),
		WithLogFormat(parseLogFormat(e.LogFormat)),
		WithImportTimeout(e.ImportTimeout),
		WithSalesforceConfig(salesforce),
		WithWordPressConfig(wordpress),
		WithElasticConfig(elastic),
	)
}

func splitAddresses(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseLogFormat(s string) LogFormat {
	if strings.EqualFold(s, string(LogFormatJSON)) {
		return LogFormatJSON
	}
	return LogFormatPretty
}
