package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config содержит все настройки приложения каталога.
// Загружается из переменных окружения, значения по умолчанию
// подходят для локальной разработки.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	JWT      JWTConfig
	Storage  StorageConfig
	API      APIConfig
	Admin    AdminConfig
	LogLevel string
	// Часовой пояс для created/updated меток товаров
	TimeZone string
	// Cron-расписание пересчёта счётчиков товаров в категориях
	CounterSyncSchedule string
}

// ServerConfig - настройки HTTP сервера
type ServerConfig struct {
	Host string
	Port string
}

// DatabaseConfig - настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig - настройки Redis для кеширования списка категорий
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// KafkaConfig - настройки Kafka для событий каталога
// События PRODUCT_CREATED/PRODUCT_UPDATED/PRODUCT_DELETED уходят в Topic
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// JWTConfig - настройки подписи и проверки JWT токенов
type JWTConfig struct {
	Secret string
	Issuer string
	Expiry time.Duration
}

// StorageConfig - корневые каталоги хранения изображений.
// ImageRoot используется для поиска при отдаче,
// ProductRoot/CategoryRoot - для записи по типу владельца.
type StorageConfig struct {
	ImageRoot    string
	ProductRoot  string
	CategoryRoot string
}

// APIConfig - публичный адрес и версия API.
// DomainIP попадает в URL изображений, которые отдаются клиентам.
type APIConfig struct {
	Version  string
	DomainIP string
}

// AdminConfig - учётная запись администратора, создаваемая при старте
type AdminConfig struct {
	Username string
	Password string
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB value: %w", err)
	}

	jwtExpiry, err := time.ParseDuration(getEnv("JWT_EXPIRY", "2h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRY value: %w", err)
	}

	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "pscosmeticos"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Kafka: KafkaConfig{
			Brokers: []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			Topic:   getEnv("KAFKA_TOPIC", "product_events"),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "change-this-secret-in-production"),
			Issuer: getEnv("JWT_ISSUER", "API PS"),
			Expiry: jwtExpiry,
		},
		Storage: StorageConfig{
			ImageRoot:    getEnv("STORAGE_IMAGE_ROOT", "./storage/images"),
			ProductRoot:  getEnv("STORAGE_PRODUCT_ROOT", "./storage/images/products"),
			CategoryRoot: getEnv("STORAGE_CATEGORY_ROOT", "./storage/images/categories"),
		},
		API: APIConfig{
			Version:  getEnv("API_VERSION", "v1"),
			DomainIP: getEnv("API_DOMAIN_IP", "http://localhost:8080"),
		},
		Admin: AdminConfig{
			Username: getEnv("ADMIN_USERNAME", "admin"),
			Password: getEnv("ADMIN_PASSWORD", ""),
		},
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		TimeZone:            getEnv("CATALOG_TIMEZONE", "America/Sao_Paulo"),
		CounterSyncSchedule: getEnv("COUNTER_SYNC_SCHEDULE", "@hourly"),
	}, nil
}

// DSN возвращает строку подключения к PostgreSQL в формате libpq
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// Address возвращает адрес сервера в формате host:port
func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

// Address возвращает адрес Redis в формате host:port
func (c *RedisConfig) Address() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
