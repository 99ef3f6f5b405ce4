package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config is the root configuration loaded from configs/config.yaml.
type Config struct {
	App           AppConfig           `mapstructure:"app"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Redis         RedisConfig         `mapstructure:"redis"`
	MinIO         MinIOConfig         `mapstructure:"minio"`
	Kafka         KafkaConfig         `mapstructure:"kafka"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Captcha       CaptchaConfig       `mapstructure:"captcha"`
	JWT           JWTConfig           `mapstructure:"jwt"`
	Log           LogConfig           `mapstructure:"log"`
}

// AppConfig holds service identity and listen settings.
type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
	Mode    string `mapstructure:"mode"`
	Port    int    `mapstructure:"port"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"dbname"`
	SSLMode         string `mapstructure:"sslmode"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // seconds
}

// DSN returns the PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// Addr returns the Redis address.
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// MinIOConfig holds object storage settings.
type MinIOConfig struct {
	Endpoint  string   `mapstructure:"endpoint"`
	AccessKey string   `mapstructure:"access_key"`
	SecretKey string   `mapstructure:"secret_key"`
	UseSSL    bool     `mapstructure:"use_ssl"`
	Buckets   []string `mapstructure:"buckets"`
}

// KafkaConfig holds broker addresses and topic names.
type KafkaConfig struct {
	Brokers []string          `mapstructure:"brokers"`
	Topics  map[string]string `mapstructure:"topics"`
}

// ElasticsearchConfig holds search cluster settings.
type ElasticsearchConfig struct {
	Hosts []string          `mapstructure:"hosts"`
	Index map[string]string `mapstructure:"index"`
}

// CaptchaConfig holds the third-party captcha verification endpoint.
type CaptchaConfig struct {
	VerifyURL string  `mapstructure:"verify_url"`
	Secret    string  `mapstructure:"secret"`
	MinScore  float64 `mapstructure:"min_score"`
	Timeout   int     `mapstructure:"timeout"` // seconds
}

// TimeoutDuration returns the verification request timeout.
func (c *CaptchaConfig) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// JWTConfig holds token signing settings.
type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

// ExpireDuration returns the token lifetime.
func (j *JWTConfig) ExpireDuration() time.Duration {
	return time.Duration(j.ExpireHours) * time.Hour
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	FilePath string `mapstructure:"file_path"`
}

var globalConfig *Config

// Load reads and parses the configuration file.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	globalConfig = &cfg

	return &cfg, nil
}

// Get returns the loaded global configuration.
func Get() *Config {
	if globalConfig == nil {
		panic("config not loaded, please call Load() first")
	}
	return globalConfig
}

// Set replaces the global configuration. Intended for tests.
func Set(cfg *Config) {
	globalConfig = cfg
}

// GetApp returns the application section.
func GetApp() *AppConfig {
	return &Get().App
}

// GetDatabase returns the database section.
func GetDatabase() *DatabaseConfig {
	return &Get().Database
}

// GetRedis returns the Redis section.
func GetRedis() *RedisConfig {
	return &Get().Redis
}

// GetMinIO returns the MinIO section.
func GetMinIO() *MinIOConfig {
	return &Get().MinIO
}

// GetKafka returns the Kafka section.
func GetKafka() *KafkaConfig {
	return &Get().Kafka
}

// GetElasticsearch returns the Elasticsearch section.
func GetElasticsearch() *ElasticsearchConfig {
	return &Get().Elasticsearch
}

// GetCaptcha returns the captcha section.
func GetCaptcha() *CaptchaConfig {
	return &Get().Captcha
}

// GetJWT returns the JWT section.
func GetJWT() *JWTConfig {
	return &Get().JWT
}

// GetLog returns the log section.
func GetLog() *LogConfig {
	return &Get().Log
}
