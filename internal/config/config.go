package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Redis     RedisConfig     `mapstructure:"redis"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Logger    LoggerConfig    `mapstructure:"logger"`
	Scoring   ScoringConfig   `mapstructure:"scoring"`
	Lookups   LookupsConfig   `mapstructure:"lookups"`
	Advisor   AdvisorConfig   `mapstructure:"advisor"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	Version     string `mapstructure:"version"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	HTTPPort        int           `mapstructure:"http_port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type RedisConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type RateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	RequestsPerMinute int  `mapstructure:"requests_per_minute"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	TimeFormat string `mapstructure:"time_format"`
}

// ScoringConfig controls the final blend and the display mapping.
// Weights must sum to 1; the risk level buckets themselves are fixed.
type ScoringConfig struct {
	AdvisoryWeight  float64 `mapstructure:"advisory_weight"`
	HeuristicWeight float64 `mapstructure:"heuristic_weight"`
	MediumColor     string  `mapstructure:"medium_color"` // "blue" or "purple", display concern only
}

// LookupsConfig holds configuration for the external reputation collaborators.
// VirusTotal and BreachDirectory keys are hard requirements for their analyzers;
// geolocation is optional enrichment.
type LookupsConfig struct {
	VirusTotal     VirusTotalConfig     `mapstructure:"virustotal"`
	BreachLookup   BreachLookupConfig   `mapstructure:"breachdirectory"`
	Geolocation    GeolocationConfig    `mapstructure:"geolocation"`
	RequestTimeout time.Duration        `mapstructure:"request_timeout"`
	CacheTTL       time.Duration        `mapstructure:"cache_ttl"`
}

type VirusTotalConfig struct {
	APIKey string `mapstructure:"api_key"`
	APIURL string `mapstructure:"api_url"`
}

type BreachLookupConfig struct {
	APIKey  string `mapstructure:"api_key"`
	APIHost string `mapstructure:"api_host"`
}

type GeolocationConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	APIURL  string `mapstructure:"api_url"`
}

// AdvisorConfig holds configuration for the advisory-text collaborator.
// A missing key is not an error: scans degrade to heuristic-only scoring.
type AdvisorConfig struct {
	Provider    string        `mapstructure:"provider"` // claude, openai
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"`
	Temperature float64       `mapstructure:"temperature"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// Load reads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/scanguard")
	}

	setDefaults(v)

	// Environment variables
	v.SetEnvPrefix("SCANGUARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Bind nested env vars explicitly (viper doesn't auto-bind nested struct fields)
	v.BindEnv("redis.enabled", "SCANGUARD_REDIS_ENABLED")
	v.BindEnv("redis.host", "SCANGUARD_REDIS_HOST")
	v.BindEnv("redis.port", "SCANGUARD_REDIS_PORT")
	v.BindEnv("redis.password", "SCANGUARD_REDIS_PASSWORD")
	v.BindEnv("lookups.virustotal.api_key", "SCANGUARD_VIRUSTOTAL_API_KEY")
	v.BindEnv("lookups.breachdirectory.api_key", "SCANGUARD_RAPIDAPI_KEY")
	v.BindEnv("advisor.provider", "SCANGUARD_ADVISOR_PROVIDER")
	v.BindEnv("advisor.api_key", "SCANGUARD_ADVISOR_API_KEY")
	v.BindEnv("app.environment", "SCANGUARD_APP_ENVIRONMENT")

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine: defaults plus env vars carry a full setup.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadDefault loads configuration with default path
func LoadDefault() (*Config, error) {
	return Load("")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "scanguard")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.version", "1.0.0")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.http_port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)
	v.SetDefault("server.idle_timeout", 120*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("redis.enabled", true)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.key_prefix", "scanguard:")

	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"Accept", "Content-Type"})
	v.SetDefault("cors.max_age", 300)

	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.requests_per_minute", 60)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.time_format", time.RFC3339)

	v.SetDefault("scoring.advisory_weight", 0.6)
	v.SetDefault("scoring.heuristic_weight", 0.4)
	v.SetDefault("scoring.medium_color", "blue")

	v.SetDefault("lookups.virustotal.api_url", "https://www.virustotal.com/api/v3")
	v.SetDefault("lookups.breachdirectory.api_host", "breachdirectory.p.rapidapi.com")
	v.SetDefault("lookups.geolocation.enabled", true)
	v.SetDefault("lookups.geolocation.api_url", "http://ip-api.com/json")
	v.SetDefault("lookups.request_timeout", 15*time.Second)
	v.SetDefault("lookups.cache_ttl", 15*time.Minute)

	v.SetDefault("advisor.provider", "openai")
	v.SetDefault("advisor.temperature", 0.3)
	v.SetDefault("advisor.max_tokens", 300)
	v.SetDefault("advisor.timeout", 30*time.Second)
}

// Validate checks settings that would otherwise fail at request time.
// Collaborator API keys are deliberately not validated here: their absence is a
// per-analyzer condition surfaced when the analyzer is used.
func (c *Config) Validate() error {
	sum := c.Scoring.AdvisoryWeight + c.Scoring.HeuristicWeight
	if sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("scoring weights must sum to 1, got %.3f", sum)
	}
	if c.Scoring.MediumColor != "blue" && c.Scoring.MediumColor != "purple" {
		return fmt.Errorf("scoring.medium_color must be \"blue\" or \"purple\", got %q", c.Scoring.MediumColor)
	}
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("invalid server.http_port %d", c.Server.HTTPPort)
	}
	return nil
}
