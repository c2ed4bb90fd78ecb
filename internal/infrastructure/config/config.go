package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/bibbank/calculator/internal/domain/model"
)

type LogConfig struct {
	Level  string
	Format string
}

type KafkaConfig struct {
	Brokers       []string
	Topic         string
	ClientID      string
	TLS           bool
	SASLMechanism string
	SASLUsername  string
	SASLPassword  string
}

// Enabled reports whether events should go to a broker.
func (k KafkaConfig) Enabled() bool { return len(k.Brokers) > 0 }

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TLS      bool
	OfferTTL time.Duration
}

// Enabled reports whether the offer cache is backed by Redis.
func (r RedisConfig) Enabled() bool { return r.Addr != "" }

type TracingConfig struct {
	Endpoint string
	Insecure bool
}

type GRPCConfig struct {
	Reflection   bool
	TLSCertFile  string
	TLSKeyFile   string
	ClientCAFile string // non-empty requires client certificates
}

type Config struct {
	GRPCPort        int
	HTTPPort        int
	ServiceName     string
	Log             LogConfig
	Rates           model.RateConfig
	Policy          model.RefusalPolicy
	Limits          model.ValidationLimits
	RateLimit       int
	Kafka           KafkaConfig
	Redis           RedisConfig
	Tracing         TracingConfig
	GRPC            GRPCConfig
	ShutdownTimeout time.Duration
}

// fileConfig is the layout of the optional YAML file named by
// CALCULATOR_CONFIG_FILE.
type fileConfig struct {
	Calculator struct {
		BaseRate             string `yaml:"base-rate"`
		InsuranceCost        string `yaml:"insurance-cost"`
		InsuranceDiscount    string `yaml:"insurance-discount"`
		SalaryClientDiscount string `yaml:"salary-client-discount"`
		RateFloor            string `yaml:"rate-floor"`
		MinAmount            string `yaml:"min-amount"`
		MaxAmount            string `yaml:"max-amount"`
		MinTerm              int    `yaml:"min-term"`
		MaxTerm              int    `yaml:"max-term"`
	} `yaml:"calculator"`
	Policy struct {
		RejectNonBinary *bool `yaml:"reject-non-binary"`
		GenderRateBands *bool `yaml:"gender-rate-bands"`
	} `yaml:"policy"`
}

// Load builds the configuration from, in increasing priority: built-in
// defaults, the YAML file named by CALCULATOR_CONFIG_FILE, and environment
// variables. A .env file in the working directory (or CALCULATOR_ENV_FILE)
// is loaded first without overriding variables that are already set.
func Load() (Config, error) {
	if err := loadDotEnv(getEnv("CALCULATOR_ENV_FILE", ".env")); err != nil {
		return Config{}, err
	}

	cfg := Config{
		GRPCPort:    getEnvInt("GRPC_PORT", 9080),
		HTTPPort:    getEnvInt("HTTP_PORT", 8080),
		ServiceName: getEnv("SERVICE_NAME", "calculator-service"),
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Rates:     model.DefaultRateConfig(),
		Policy:    model.DefaultRefusalPolicy(),
		Limits:    model.DefaultValidationLimits(),
		RateLimit: getEnvInt("RATE_LIMIT", 50),
		Kafka: KafkaConfig{
			Brokers:       getEnvList("KAFKA_BROKERS"),
			Topic:         getEnv("KAFKA_TOPIC", "calculator.events"),
			ClientID:      getEnv("KAFKA_CLIENT_ID", "calculator-service"),
			TLS:           getEnvBool("KAFKA_TLS", false),
			SASLMechanism: getEnv("KAFKA_SASL_MECHANISM", ""),
			SASLUsername:  getEnv("KAFKA_SASL_USERNAME", ""),
			SASLPassword:  getEnv("KAFKA_SASL_PASSWORD", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			TLS:      getEnvBool("REDIS_TLS", false),
			OfferTTL: getEnvDuration("OFFER_CACHE_TTL", 10*time.Minute),
		},
		Tracing: TracingConfig{
			Endpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Insecure: getEnvBool("OTEL_EXPORTER_OTLP_INSECURE", true),
		},
		GRPC: GRPCConfig{
			Reflection:   getEnvBool("GRPC_REFLECTION", false),
			TLSCertFile:  getEnv("GRPC_TLS_CERT_FILE", ""),
			TLSKeyFile:   getEnv("GRPC_TLS_KEY_FILE", ""),
			ClientCAFile: getEnv("GRPC_TLS_CLIENT_CA_FILE", ""),
		},
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
	}

	if path := os.Getenv("CALCULATOR_CONFIG_FILE"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the calculator cannot run with.
func (c Config) Validate() error {
	if err := c.Rates.Validate(); err != nil {
		return fmt.Errorf("invalid rate config: %w", err)
	}
	if !c.Limits.MinAmount.IsPositive() {
		return errors.New("minimum amount must be positive")
	}
	if c.Limits.MaxAmount.LessThan(c.Limits.MinAmount) {
		return fmt.Errorf("maximum amount %s is below minimum amount %s", c.Limits.MaxAmount, c.Limits.MinAmount)
	}
	if c.Limits.MinTerm <= 0 {
		return errors.New("minimum term must be positive")
	}
	if c.Limits.MaxTerm < c.Limits.MinTerm {
		return fmt.Errorf("maximum term %d is below minimum term %d", c.Limits.MaxTerm, c.Limits.MinTerm)
	}
	if c.RateLimit <= 0 {
		return errors.New("RATE_LIMIT must be positive")
	}
	if (c.GRPC.TLSCertFile == "") != (c.GRPC.TLSKeyFile == "") {
		return errors.New("GRPC_TLS_CERT_FILE and GRPC_TLS_KEY_FILE must be set together")
	}
	if c.GRPC.ClientCAFile != "" && c.GRPC.TLSCertFile == "" {
		return errors.New("GRPC_TLS_CLIENT_CA_FILE requires GRPC_TLS_CERT_FILE and GRPC_TLS_KEY_FILE")
	}
	return nil
}

func (c Config) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path) // #nosec G304 -- operator-supplied path
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("unmarshal config file %s: %w", path, err)
	}

	decimals := []struct {
		name  string
		value string
		dst   *decimal.Decimal
	}{
		{"base-rate", fc.Calculator.BaseRate, &c.Rates.BaseRate},
		{"insurance-cost", fc.Calculator.InsuranceCost, &c.Rates.InsuranceCost},
		{"insurance-discount", fc.Calculator.InsuranceDiscount, &c.Rates.InsuranceDiscount},
		{"salary-client-discount", fc.Calculator.SalaryClientDiscount, &c.Rates.SalaryClientDiscount},
		{"rate-floor", fc.Calculator.RateFloor, &c.Rates.RateFloor},
		{"min-amount", fc.Calculator.MinAmount, &c.Limits.MinAmount},
		{"max-amount", fc.Calculator.MaxAmount, &c.Limits.MaxAmount},
	}
	for _, d := range decimals {
		if d.value == "" {
			continue
		}
		v, err := decimal.NewFromString(d.value)
		if err != nil {
			return fmt.Errorf("config file %s: calculator.%s: %w", path, d.name, err)
		}
		*d.dst = v
	}

	if fc.Calculator.MinTerm != 0 {
		c.Limits.MinTerm = fc.Calculator.MinTerm
	}
	if fc.Calculator.MaxTerm != 0 {
		c.Limits.MaxTerm = fc.Calculator.MaxTerm
	}
	if fc.Policy.RejectNonBinary != nil {
		c.Policy.RejectNonBinary = *fc.Policy.RejectNonBinary
	}
	if fc.Policy.GenderRateBands != nil {
		c.Policy.GenderRateBands = *fc.Policy.GenderRateBands
	}
	return nil
}

func (c *Config) applyEnv() error {
	var err error
	if c.Rates.BaseRate, err = getEnvDecimal("CALCULATOR_BASE_RATE", c.Rates.BaseRate); err != nil {
		return err
	}
	if c.Rates.InsuranceCost, err = getEnvDecimal("CALCULATOR_INSURANCE_COST", c.Rates.InsuranceCost); err != nil {
		return err
	}
	if c.Rates.InsuranceDiscount, err = getEnvDecimal("CALCULATOR_INSURANCE_DISCOUNT", c.Rates.InsuranceDiscount); err != nil {
		return err
	}
	if c.Rates.SalaryClientDiscount, err = getEnvDecimal("CALCULATOR_SALARY_CLIENT_DISCOUNT", c.Rates.SalaryClientDiscount); err != nil {
		return err
	}
	if c.Rates.RateFloor, err = getEnvDecimal("CALCULATOR_RATE_FLOOR", c.Rates.RateFloor); err != nil {
		return err
	}
	if c.Limits.MinAmount, err = getEnvDecimal("CALCULATOR_MIN_AMOUNT", c.Limits.MinAmount); err != nil {
		return err
	}
	if c.Limits.MaxAmount, err = getEnvDecimal("CALCULATOR_MAX_AMOUNT", c.Limits.MaxAmount); err != nil {
		return err
	}
	c.Limits.MinTerm = getEnvInt("CALCULATOR_MIN_TERM", c.Limits.MinTerm)
	c.Limits.MaxTerm = getEnvInt("CALCULATOR_MAX_TERM", c.Limits.MaxTerm)
	c.Policy.RejectNonBinary = getEnvBool("POLICY_REJECT_NON_BINARY", c.Policy.RejectNonBinary)
	c.Policy.GenderRateBands = getEnvBool("POLICY_GENDER_RATE_BANDS", c.Policy.GenderRateBands)
	return nil
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

// getEnvDecimal fails loudly: a mistyped rate must not silently fall back.
func getEnvDecimal(key string, fallback decimal.Decimal) (decimal.Decimal, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func getEnvList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
