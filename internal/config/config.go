package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	API        APIConfig
	RateLimit  RateLimitConfig
	FIRS       FIRSConfig
	Paths      PathsConfig
	Index      IndexConfig
	HSN        HSNConfig
	Validation ValidationConfig
	DB         DBConfig
	S3         S3Config
	Log        LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
	Debug        bool          `mapstructure:"debug"`
	Version      string        `mapstructure:"version"`
	Timezone     string        `mapstructure:"timezone"`
}

// APIConfig holds inbound API credentials.
type APIConfig struct {
	Key             string   `mapstructure:"key"`
	KeyHash         string   `mapstructure:"key_hash"`
	Secret          string   `mapstructure:"secret"`
	PublicEndpoints []string `mapstructure:"public_endpoints"`
}

// RateLimitConfig holds per-client request limits.
type RateLimitConfig struct {
	PerMinute int `mapstructure:"per_minute"`
	Burst     int `mapstructure:"burst"`
}

// FIRSConfig holds settings for the upstream tax authority API.
type FIRSConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	URL        string        `mapstructure:"url"`
	APIKey     string        `mapstructure:"api_key"`
	APISecret  string        `mapstructure:"api_secret"`
	Timeout    time.Duration `mapstructure:"timeout"`
	MaxRetries int           `mapstructure:"max_retries"`
}

// PathsConfig holds filesystem locations for artifacts, index, and logs.
type PathsConfig struct {
	JSON         string `mapstructure:"json"`
	Encrypted    string `mapstructure:"encrypted"`
	QRCodes      string `mapstructure:"qrcodes"`
	CryptoKeys   string `mapstructure:"crypto_keys"`
	InvoiceIndex string `mapstructure:"invoice_index"`
	HSNCodes     string `mapstructure:"hsn_codes"`
	SuccessLog   string `mapstructure:"success_log"`
	ErrorLog     string `mapstructure:"error_log"`
}

// IndexConfig selects the invoice index backend.
type IndexConfig struct {
	Backend  string `mapstructure:"backend"`
	BoltPath string `mapstructure:"bolt_path"`
}

const (
	IndexBackendJSON = "json"
	IndexBackendBolt = "bolt"
)

// HSNConfig selects where the HSN code catalogue is read from.
type HSNConfig struct {
	Source string `mapstructure:"source"`
}

const (
	HSNSourceFile = "file"
	HSNSourceDB   = "db"
)

// ValidationConfig holds invoice validation tolerances and enums.
type ValidationConfig struct {
	TaxTolerance    float64           `mapstructure:"tax_tolerance"`
	StandardVATRate float64           `mapstructure:"standard_vat_rate"`
	RequiredFields  int               `mapstructure:"required_fields"`
	MaxInvoiceLines int               `mapstructure:"max_invoice_lines"`
	InvoiceTypes    map[string]string `mapstructure:"invoice_types"`
}

// DefaultInvoiceTypes are the invoice type codes accepted by the tax authority.
func DefaultInvoiceTypes() map[string]string {
	return map[string]string{
		"380": "Commercial Invoice",
		"381": "Credit Note",
		"384": "Corrected Invoice",
	}
}

// DefaultValidation returns the validation settings used when nothing is configured.
func DefaultValidation() ValidationConfig {
	return ValidationConfig{
		TaxTolerance:    0.01,
		StandardVATRate: 7.5,
		RequiredFields:  52,
		MaxInvoiceLines: 1000,
		InvoiceTypes:    DefaultInvoiceTypes(),
	}
}

// DBConfig holds PostgreSQL connection settings for the log table sink.
type DBConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds settings for the artifact archive bucket.
type S3Config struct {
	Enabled   bool   `mapstructure:"enabled"`
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the FIRSGATE_ prefix,
// optionally layered over a config file named by FIRSGATE_CONFIG_FILE.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("FIRSGATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.debug", false)
	v.SetDefault("server.version", "1.0.0")
	v.SetDefault("server.timezone", "Africa/Lagos")

	// API defaults
	v.SetDefault("api.key", "")
	v.SetDefault("api.key_hash", "")
	v.SetDefault("api.secret", "")
	v.SetDefault("api.public_endpoints", "/api/v1/system/health,/api/v1/invoice/new-request,/api/v1/invoice/hsn-codes")

	v.SetDefault("rate_limit.per_minute", 100)
	v.SetDefault("rate_limit.burst", 20)

	// Upstream defaults
	v.SetDefault("firs_api.enabled", false)
	v.SetDefault("firs_api.url", "https://eivc-k6z6d.ondigitalocean.app")
	v.SetDefault("firs_api.api_key", "")
	v.SetDefault("firs_api.api_secret", "")
	v.SetDefault("firs_api.timeout", "30s")
	v.SetDefault("firs_api.max_retries", 3)

	// Storage defaults
	v.SetDefault("paths.json", "storage/json")
	v.SetDefault("paths.encrypted", "storage/encrypted")
	v.SetDefault("paths.qrcodes", "storage/qrcodes")
	v.SetDefault("paths.crypto_keys", "storage/crypto_keys.txt")
	v.SetDefault("paths.invoice_index", "storage/invoices.json")
	v.SetDefault("paths.hsn_codes", "storage/hsn_codes.json")
	v.SetDefault("paths.success_log", "logs/api_success.log")
	v.SetDefault("paths.error_log", "logs/api_error.log")

	v.SetDefault("index.backend", IndexBackendJSON)
	v.SetDefault("index.bolt_path", "storage/invoices.db")
	v.SetDefault("hsn.source", HSNSourceFile)

	// Validation defaults
	defaults := DefaultValidation()
	v.SetDefault("validation.tax_tolerance", defaults.TaxTolerance)
	v.SetDefault("validation.standard_vat_rate", defaults.StandardVATRate)
	v.SetDefault("validation.required_fields", defaults.RequiredFields)
	v.SetDefault("validation.max_invoice_lines", defaults.MaxInvoiceLines)
	v.SetDefault("validation.invoice_types", defaults.InvoiceTypes)

	// DB defaults
	v.SetDefault("db.enabled", false)
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "firsgate")
	v.SetDefault("db.password", "firsgate_secret")
	v.SetDefault("db.name", "firsgate_logs")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 10)
	v.SetDefault("db.max_idle", 5)

	// S3 defaults
	v.SetDefault("s3.enabled", false)
	v.SetDefault("s3.region", "eu-west-1")
	v.SetDefault("s3.bucket", "firsgate-artifacts")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.prefix", "signed")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                  "FIRSGATE_SERVER_PORT",
		"server.read_timeout":          "FIRSGATE_SERVER_READ_TIMEOUT",
		"server.write_timeout":         "FIRSGATE_SERVER_WRITE_TIMEOUT",
		"server.environment":           "FIRSGATE_SERVER_ENVIRONMENT",
		"server.debug":                 "FIRSGATE_SERVER_DEBUG",
		"server.version":               "FIRSGATE_SERVER_VERSION",
		"server.timezone":              "FIRSGATE_SERVER_TIMEZONE",
		"api.key":                      "FIRSGATE_API_KEY",
		"api.key_hash":                 "FIRSGATE_API_KEY_HASH",
		"api.secret":                   "FIRSGATE_API_SECRET",
		"api.public_endpoints":         "FIRSGATE_API_PUBLIC_ENDPOINTS",
		"rate_limit.per_minute":        "FIRSGATE_RATE_LIMIT_PER_MINUTE",
		"rate_limit.burst":             "FIRSGATE_RATE_LIMIT_BURST",
		"firs_api.enabled":             "FIRSGATE_FIRS_API_ENABLED",
		"firs_api.url":                 "FIRSGATE_FIRS_API_URL",
		"firs_api.api_key":             "FIRSGATE_FIRS_API_API_KEY",
		"firs_api.api_secret":          "FIRSGATE_FIRS_API_API_SECRET",
		"firs_api.timeout":             "FIRSGATE_FIRS_API_TIMEOUT",
		"firs_api.max_retries":         "FIRSGATE_FIRS_API_MAX_RETRIES",
		"paths.json":                   "FIRSGATE_PATHS_JSON",
		"paths.encrypted":              "FIRSGATE_PATHS_ENCRYPTED",
		"paths.qrcodes":                "FIRSGATE_PATHS_QRCODES",
		"paths.crypto_keys":            "FIRSGATE_PATHS_CRYPTO_KEYS",
		"paths.invoice_index":          "FIRSGATE_PATHS_INVOICE_INDEX",
		"paths.hsn_codes":              "FIRSGATE_PATHS_HSN_CODES",
		"paths.success_log":            "FIRSGATE_PATHS_SUCCESS_LOG",
		"paths.error_log":              "FIRSGATE_PATHS_ERROR_LOG",
		"index.backend":                "FIRSGATE_INDEX_BACKEND",
		"index.bolt_path":              "FIRSGATE_INDEX_BOLT_PATH",
		"hsn.source":                   "FIRSGATE_HSN_SOURCE",
		"validation.tax_tolerance":     "FIRSGATE_VALIDATION_TAX_TOLERANCE",
		"validation.standard_vat_rate": "FIRSGATE_VALIDATION_STANDARD_VAT_RATE",
		"validation.required_fields":   "FIRSGATE_VALIDATION_REQUIRED_FIELDS",
		"validation.max_invoice_lines": "FIRSGATE_VALIDATION_MAX_INVOICE_LINES",
		"db.enabled":                   "FIRSGATE_DB_ENABLED",
		"db.host":                      "FIRSGATE_DB_HOST",
		"db.port":                      "FIRSGATE_DB_PORT",
		"db.user":                      "FIRSGATE_DB_USER",
		"db.password":                  "FIRSGATE_DB_PASSWORD",
		"db.name":                      "FIRSGATE_DB_NAME",
		"db.sslmode":                   "FIRSGATE_DB_SSLMODE",
		"db.max_open":                  "FIRSGATE_DB_MAX_OPEN",
		"db.max_idle":                  "FIRSGATE_DB_MAX_IDLE",
		"s3.enabled":                   "FIRSGATE_S3_ENABLED",
		"s3.region":                    "FIRSGATE_S3_REGION",
		"s3.bucket":                    "FIRSGATE_S3_BUCKET",
		"s3.endpoint":                  "FIRSGATE_S3_ENDPOINT",
		"s3.access_key":                "FIRSGATE_S3_ACCESS_KEY",
		"s3.secret_key":                "FIRSGATE_S3_SECRET_KEY",
		"s3.prefix":                    "FIRSGATE_S3_PREFIX",
		"log.level":                    "FIRSGATE_LOG_LEVEL",
		"log.format":                   "FIRSGATE_LOG_FORMAT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	if file := os.Getenv("FIRSGATE_CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", file, err)
		}
	}

	cfg := &Config{}

	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("FIRSGATE_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
		Debug:        v.GetBool("server.debug"),
		Version:      v.GetString("server.version"),
		Timezone:     v.GetString("server.timezone"),
	}
	cfg.API = APIConfig{
		Key:             v.GetString("api.key"),
		KeyHash:         v.GetString("api.key_hash"),
		Secret:          v.GetString("api.secret"),
		PublicEndpoints: splitList(v.GetString("api.public_endpoints")),
	}
	cfg.RateLimit = RateLimitConfig{
		PerMinute: v.GetInt("rate_limit.per_minute"),
		Burst:     v.GetInt("rate_limit.burst"),
	}
	cfg.FIRS = FIRSConfig{
		Enabled:    v.GetBool("firs_api.enabled"),
		URL:        strings.TrimRight(v.GetString("firs_api.url"), "/"),
		APIKey:     v.GetString("firs_api.api_key"),
		APISecret:  v.GetString("firs_api.api_secret"),
		Timeout:    v.GetDuration("firs_api.timeout"),
		MaxRetries: v.GetInt("firs_api.max_retries"),
	}
	cfg.Paths = PathsConfig{
		JSON:         v.GetString("paths.json"),
		Encrypted:    v.GetString("paths.encrypted"),
		QRCodes:      v.GetString("paths.qrcodes"),
		CryptoKeys:   v.GetString("paths.crypto_keys"),
		InvoiceIndex: v.GetString("paths.invoice_index"),
		HSNCodes:     v.GetString("paths.hsn_codes"),
		SuccessLog:   v.GetString("paths.success_log"),
		ErrorLog:     v.GetString("paths.error_log"),
	}
	cfg.Index = IndexConfig{
		Backend:  strings.ToLower(v.GetString("index.backend")),
		BoltPath: v.GetString("index.bolt_path"),
	}
	if cfg.Index.Backend != IndexBackendJSON && cfg.Index.Backend != IndexBackendBolt {
		return nil, fmt.Errorf("unsupported index backend %q (expected %s or %s)",
			cfg.Index.Backend, IndexBackendJSON, IndexBackendBolt)
	}

	cfg.HSN = HSNConfig{Source: strings.ToLower(v.GetString("hsn.source"))}
	if cfg.HSN.Source != HSNSourceFile && cfg.HSN.Source != HSNSourceDB {
		return nil, fmt.Errorf("unsupported hsn source %q (expected %s or %s)",
			cfg.HSN.Source, HSNSourceFile, HSNSourceDB)
	}
	if cfg.HSN.Source == HSNSourceDB && !v.GetBool("db.enabled") {
		return nil, fmt.Errorf("hsn source %q requires db.enabled", HSNSourceDB)
	}

	invoiceTypes := v.GetStringMapString("validation.invoice_types")
	if len(invoiceTypes) == 0 {
		invoiceTypes = DefaultInvoiceTypes()
	}
	cfg.Validation = ValidationConfig{
		TaxTolerance:    v.GetFloat64("validation.tax_tolerance"),
		StandardVATRate: v.GetFloat64("validation.standard_vat_rate"),
		RequiredFields:  v.GetInt("validation.required_fields"),
		MaxInvoiceLines: v.GetInt("validation.max_invoice_lines"),
		InvoiceTypes:    invoiceTypes,
	}
	cfg.DB = DBConfig{
		Enabled:  v.GetBool("db.enabled"),
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.S3 = S3Config{
		Enabled:   v.GetBool("s3.enabled"),
		Region:    v.GetString("s3.region"),
		Bucket:    v.GetString("s3.bucket"),
		Endpoint:  v.GetString("s3.endpoint"),
		AccessKey: v.GetString("s3.access_key"),
		SecretKey: v.GetString("s3.secret_key"),
		Prefix:    strings.Trim(v.GetString("s3.prefix"), "/"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	return cfg, nil
}

// IsProduction reports whether the server runs in the production environment.
func (s *ServerConfig) IsProduction() bool {
	return strings.EqualFold(s.Environment, "production")
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
