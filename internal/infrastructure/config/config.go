// Package config provides centralized configuration management
// using Viper for configuration loading and validation.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Matching MatchingConfig `mapstructure:"matching"`
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
	LogLevel    string `mapstructure:"log_level"`
	LogFormat   string `mapstructure:"log_format"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig contains database configuration
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Database        string        `mapstructure:"database"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// RedisConfig contains Redis configuration
type RedisConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Password     string        `mapstructure:"password"`
	Database     int           `mapstructure:"database"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	PoolSize     int           `mapstructure:"pool_size"`
}

// MatchingConfig carries every tunable of the canonicalization and
// scoring engine. The substitution weights and the cookability
// threshold are deliberately configuration, not constants.
type MatchingConfig struct {
	// Normalizer
	FuzzyThreshold float64 `mapstructure:"fuzzy_threshold"`

	// Substitution resolver
	StrongWeight    float64 `mapstructure:"strong_weight"`
	WeakWeight      float64 `mapstructure:"weak_weight"`
	StrongRatioLow  float64 `mapstructure:"strong_ratio_low"`
	StrongRatioHigh float64 `mapstructure:"strong_ratio_high"`

	// Batch match engine
	CookableThreshold int           `mapstructure:"cookable_threshold"`
	PantryEpsilon     float64       `mapstructure:"pantry_epsilon"`
	MaxRecipesPerCall int           `mapstructure:"max_recipes_per_call"`
	ResultCacheTTL    time.Duration `mapstructure:"result_cache_ttl"`

	// Classifier
	Staples      []string            `mapstructure:"staples"`
	HeroKeywords map[string][]string `mapstructure:"hero_keywords"`

	// Vocabulary snapshot cache
	VocabularyTTL time.Duration `mapstructure:"vocabulary_ttl"`

	// OOV review
	OOVReviewWindow time.Duration `mapstructure:"oov_review_window"`
	OOVReviewLimit  int           `mapstructure:"oov_review_limit"`
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/pantrymatch")
	}

	v.SetEnvPrefix("PANTRYMATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Defaults cover the missing-file case
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "pantrymatch")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.debug", false)
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.log_format", "json")

	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "30s")

	// Database defaults
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.auto_migrate", true)

	// Redis defaults
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.database", 0)
	v.SetDefault("redis.dial_timeout", "5s")
	v.SetDefault("redis.read_timeout", "3s")
	v.SetDefault("redis.write_timeout", "3s")
	v.SetDefault("redis.pool_size", 10)

	// Matching defaults
	v.SetDefault("matching.fuzzy_threshold", 0.8)
	v.SetDefault("matching.strong_weight", 0.8)
	v.SetDefault("matching.weak_weight", 0.4)
	v.SetDefault("matching.strong_ratio_low", 0.75)
	v.SetDefault("matching.strong_ratio_high", 1.25)
	v.SetDefault("matching.cookable_threshold", 70)
	v.SetDefault("matching.pantry_epsilon", 0.01)
	v.SetDefault("matching.max_recipes_per_call", 500)
	v.SetDefault("matching.result_cache_ttl", "10m")
	v.SetDefault("matching.vocabulary_ttl", "24h")
	v.SetDefault("matching.oov_review_window", "168h")
	v.SetDefault("matching.oov_review_limit", 50)
	v.SetDefault("matching.staples", []string{
		"salt", "pepper", "black pepper", "water", "olive oil", "vegetable oil",
		"canola oil", "butter", "sugar", "flour", "garlic", "onion",
		"baking powder", "baking soda", "vinegar", "soy sauce",
	})
	v.SetDefault("matching.hero_keywords", map[string][]string{
		"protein":   {"salmon", "chicken", "beef", "pork", "lamb", "tofu", "shrimp", "tuna", "turkey", "egg"},
		"starch":    {"pasta", "spaghetti", "rice", "noodle", "potato", "bread", "quinoa", "couscous"},
		"vegetable": {"mushroom", "eggplant", "cauliflower", "broccoli", "zucchini", "spinach", "squash"},
	})
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app.name is required")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}

	m := c.Matching
	if m.FuzzyThreshold < 0 || m.FuzzyThreshold > 1 {
		return fmt.Errorf("matching.fuzzy_threshold must be within [0,1]")
	}
	if m.StrongWeight < 0 || m.StrongWeight > 1 || m.WeakWeight < 0 || m.WeakWeight > 1 {
		return fmt.Errorf("matching substitution weights must be within [0,1]")
	}
	if m.WeakWeight > m.StrongWeight {
		return fmt.Errorf("matching.weak_weight must not exceed matching.strong_weight")
	}
	if m.StrongRatioLow <= 0 || m.StrongRatioHigh < m.StrongRatioLow {
		return fmt.Errorf("matching strong ratio band is invalid")
	}
	if m.CookableThreshold < 0 || m.CookableThreshold > 100 {
		return fmt.Errorf("matching.cookable_threshold must be within [0,100]")
	}
	if m.PantryEpsilon < 0 {
		return fmt.Errorf("matching.pantry_epsilon must be non-negative")
	}

	return nil
}

// IsProduction returns true if running in production
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDSN returns the database connection string
func (c *Config) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.Username,
		c.Database.Password,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// RedisAddr returns the host:port address of the Redis server
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
