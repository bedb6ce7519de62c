package config

import (
	"sync"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Redis   RedisConfig
	Kafka   KafkaConfig
	JWT     JWTConfig
	SMTP    SMTPConfig
}

var (
	configInstance *Config
	once           sync.Once
)

type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// StorageConfig selects the document backend. Driver is one of "file",
// "minio" or "mysql".
type StorageConfig struct {
	Driver         string
	DataDir        string
	MySQLDSN       string
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioSecure    bool
}

// RedisConfig is optional; an empty URL disables the session cache and the
// rate limiter.
type RedisConfig struct {
	URL string
}

// KafkaConfig is optional; no brokers means lifecycle events are dropped.
type KafkaConfig struct {
	Brokers []string
	Topic   string
	GroupID string
}

type JWTConfig struct {
	Secret string
	Expire time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

func LoadConfig() *Config {
	once.Do(func() {
		viper.SetDefault("MINDLYST_PORT", "8080")
		viper.SetDefault("MINDLYST_READ_TIMEOUT", 30*time.Second)
		viper.SetDefault("MINDLYST_WRITE_TIMEOUT", 30*time.Second)
		viper.SetDefault("MINDLYST_IDLE_TIMEOUT", 60*time.Second)
		viper.SetDefault("MINDLYST_DATA_DIR", "data")
		viper.SetDefault("MINDLYST_STORAGE", "file")
		viper.SetDefault("MINDLYST_JWT_SECRET", "secret")
		viper.SetDefault("MINDLYST_JWT_EXPIRE", "168h")
		viper.SetDefault("MINIO_BUCKET", "mindlyst")
		viper.SetDefault("KAFKA_TOPIC", "contact-events")
		viper.SetDefault("KAFKA_GROUP_ID", "mindlyst-notifier")
		viper.SetDefault("SMTP_PORT", "587")
		viper.SetDefault("SMTP_FROM", "noreply@mindlyst.com")
		viper.AutomaticEnv()

		configInstance = &Config{
			Server: ServerConfig{
				Host:         viper.GetString("MINDLYST_HOST"),
				Port:         viper.GetString("MINDLYST_PORT"),
				ReadTimeout:  viper.GetDuration("MINDLYST_READ_TIMEOUT"),
				WriteTimeout: viper.GetDuration("MINDLYST_WRITE_TIMEOUT"),
				IdleTimeout:  viper.GetDuration("MINDLYST_IDLE_TIMEOUT"),
			},
			Storage: StorageConfig{
				Driver:         viper.GetString("MINDLYST_STORAGE"),
				DataDir:        viper.GetString("MINDLYST_DATA_DIR"),
				MySQLDSN:       viper.GetString("MYSQL_DSN"),
				MinioEndpoint:  viper.GetString("MINIO_ENDPOINT"),
				MinioAccessKey: viper.GetString("MINIO_ACCESS_KEY"),
				MinioSecretKey: viper.GetString("MINIO_SECRET_KEY"),
				MinioBucket:    viper.GetString("MINIO_BUCKET"),
				MinioSecure:    viper.GetBool("MINIO_SECURE"),
			},
			Redis: RedisConfig{
				URL: viper.GetString("REDIS_URL"),
			},
			Kafka: KafkaConfig{
				Brokers: viper.GetStringSlice("KAFKA_BROKERS"),
				Topic:   viper.GetString("KAFKA_TOPIC"),
				GroupID: viper.GetString("KAFKA_GROUP_ID"),
			},
			JWT: JWTConfig{
				Secret: viper.GetString("MINDLYST_JWT_SECRET"),
				Expire: viper.GetDuration("MINDLYST_JWT_EXPIRE"),
			},
			SMTP: SMTPConfig{
				Host:     viper.GetString("SMTP_HOST"),
				Port:     viper.GetString("SMTP_PORT"),
				Username: viper.GetString("SMTP_USER"),
				Password: viper.GetString("SMTP_PASSWORD"),
				From:     viper.GetString("SMTP_FROM"),
			},
		}
	})

	return configInstance
}
