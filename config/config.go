package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

type Config struct {
	Port          int           `mapstructure:"port"`
	DBDriver      string        `mapstructure:"db_driver"`
	DBPath        string        `mapstructure:"db_path"`
	DBHost        string        `mapstructure:"db_host"`
	DBPort        string        `mapstructure:"db_port"`
	DBName        string        `mapstructure:"db_name"`
	DBUser        string        `mapstructure:"db_user"`
	DBPassword    string        `mapstructure:"db_password"`
	RedisHost     string        `mapstructure:"redis_host"`
	RedisPort     string        `mapstructure:"redis_port"`
	CacheTTL      time.Duration `mapstructure:"cache_ttl"`
	KafkaBroker   string        `mapstructure:"kafka_broker"`
	KafkaTopic    string        `mapstructure:"kafka_topic"`
	PublicBaseURL string        `mapstructure:"public_base_url"`
	Debug         bool          `mapstructure:"debug"`
}

var defaults = map[string]interface{}{
	"port":            3000,
	"db_driver":       DriverSQLite,
	"db_path":         "./BD4_A/database.sqlite",
	"db_host":         "",
	"db_port":         "5432",
	"db_name":         "",
	"db_user":         "",
	"db_password":     "",
	"redis_host":      "",
	"redis_port":      "6379",
	"cache_ttl":       "60s",
	"kafka_broker":    "",
	"kafka_topic":     "catalog-queries",
	"public_base_url": "http://localhost:3000",
	"debug":           false,
}

// Load reads configuration from the environment, falling back to an optional
// .env file in the working directory and then to defaults.
func Load() (Config, error) {
	return LoadFile(".env")
}

func LoadFile(envFile string) (Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if _, err := os.Stat(envFile); err == nil {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read %s: %w", envFile, err)
		}
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.DBDriver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))
	if cfg.DBDriver != DriverSQLite && cfg.DBDriver != DriverPostgres {
		return Config{}, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("invalid PORT %d", cfg.Port)
	}
	return cfg, nil
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// DSN returns the data source name for the configured driver.
func (c Config) DSN() string {
	if c.DBDriver == DriverPostgres {
		return "host=" + c.DBHost + " port=" + c.DBPort + " user=" + c.DBUser +
			" password=" + c.DBPassword + " dbname=" + c.DBName + " sslmode=disable"
	}
	// mode=ro keeps the service from creating an empty file in place of a
	// missing one.
	return "file:" + c.DBPath + "?mode=ro"
}

func NewLogger(cfg Config) (*zap.Logger, error) {
	if cfg.Debug {
		z := zap.NewDevelopmentConfig()
		z.OutputPaths = []string{"stdout"}
		return z.Build()
	}
	return zap.NewProduction()
}

// OpenStore opens the store and verifies it answers before returning, so the
// caller can start serving only once the handle is usable.
func OpenStore(ctx context.Context, cfg Config) (*sql.DB, error) {
	db, err := sql.Open(cfg.DBDriver, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.DBDriver, err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s store: %w", cfg.DBDriver, err)
	}

	if cfg.DBDriver == DriverPostgres {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(time.Hour)
	}
	return db, nil
}

func MustOpenStore(cfg Config, logger *zap.Logger) *sql.DB {
	db, err := OpenStore(context.Background(), cfg)
	if err != nil {
		logger.Fatal("Failed to open store", zap.Error(err))
	}
	return db
}

// RedisEnabled reports whether a cache host is configured.
func (c Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

func InitRedis(ctx context.Context, cfg Config) (*redis.Client, error) {
	if !cfg.RedisEnabled() {
		return nil, errors.New("REDIS_HOST is not set")
	}
	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisHost + ":" + cfg.RedisPort,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func MustInitRedis(cfg Config, logger *zap.Logger) *redis.Client {
	client, err := InitRedis(context.Background(), cfg)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	return client
}

// KafkaEnabled reports whether a broker is configured.
func (c Config) KafkaEnabled() bool {
	return c.KafkaBroker != ""
}

// NewKafkaWriter returns an async writer: query events must never hold up a
// response.
func NewKafkaWriter(cfg Config, logger *zap.Logger) *kafka.Writer {
	return &kafka.Writer{
		Addr:     kafka.TCP(cfg.KafkaBroker),
		Topic:    cfg.KafkaTopic,
		Balancer: &kafka.LeastBytes{},
		Async:    true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Warn("query events dropped", zap.Int("count", len(messages)), zap.Error(err))
			}
		},
	}
}
