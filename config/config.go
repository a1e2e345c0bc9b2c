package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server    ServerConfig
	Logger    LoggerConfig
	Postgres  PostgresConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	Checkout  CheckoutConfig
	Shop      ShopConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	AppEnv   string
	HTTPPort string
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

type PostgresConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
	ConnMaxIdleTime int
	MigrationsPath  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

type CheckoutConfig struct {
	ReservationTTL time.Duration
	SweepInterval  time.Duration
	CronSecret     string
}

type ShopConfig struct {
	WhatsAppNumber  string
	OrderPrefix     string
	FreeShippingMin float64
	ShippingFee     float64
}

type RateLimitConfig struct {
	CheckoutPerMinute int
	CheckoutBurst     int
}

func LoadEnv() *Config {
	return &Config{
		Server: ServerConfig{
			AppEnv:   getEnv("APP_ENV", "dev"),
			HTTPPort: getEnv("HTTP_PORT", ":8080"),
		},
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", "debug"),
			Encoding:          getEnv("LOGGER_ENCODING", "console"),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
		},
		Postgres: PostgresConfig{
			Host:            getEnv("POSTGRES_HOST", "localhost"),
			Port:            getEnv("POSTGRES_PORT", "5432"),
			User:            getEnv("POSTGRES_USER", "naveentextiles"),
			Password:        getEnv("POSTGRES_PASSWORD", "naveentextiles"),
			DBName:          getEnv("POSTGRES_DB", "naveentextiles"),
			SSLMode:         getEnv("POSTGRES_SSLMODE", "disable"),
			MaxOpenConns:    getEnvInt("POSTGRES_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("POSTGRES_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvInt("POSTGRES_CONN_MAX_LIFETIME", 300),
			ConnMaxIdleTime: getEnvInt("POSTGRES_CONN_MAX_IDLE_TIME", 60),
			MigrationsPath:  getEnv("POSTGRES_MIGRATIONS_PATH", "migrations"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Kafka: KafkaConfig{
			Brokers: getEnvSlice("KAFKA_BROKERS", []string{"localhost:9092"}),
			Topic:   getEnv("KAFKA_TOPIC_ORDER_EVENTS", "orders.status-events"),
		},
		Checkout: CheckoutConfig{
			ReservationTTL: time.Duration(getEnvInt("RESERVATION_TTL_MINUTES", 15)) * time.Minute,
			SweepInterval:  time.Duration(getEnvInt("SWEEP_INTERVAL_MINUTES", 15)) * time.Minute,
			CronSecret:     getEnv("CRON_SECRET", ""),
		},
		Shop: ShopConfig{
			WhatsAppNumber:  getEnv("WHATSAPP_NUMBER", "919876543210"),
			OrderPrefix:     getEnv("ORDER_PREFIX", "NT"),
			FreeShippingMin: getEnvFloat("FREE_SHIPPING_MIN", 1000),
			ShippingFee:     getEnvFloat("SHIPPING_FEE", 50),
		},
		RateLimit: RateLimitConfig{
			CheckoutPerMinute: getEnvInt("CHECKOUT_RATE_PER_MINUTE", 10),
			CheckoutBurst:     getEnvInt("CHECKOUT_RATE_BURST", 5),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	if value, ok := os.LookupEnv(key); ok {
		return strings.Split(value, ",")
	}
	return fallback
}
