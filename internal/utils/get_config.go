package utils

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"Recipe-Box-Backend/internal/utils/mailing"
	"Recipe-Box-Backend/internal/utils/storage"
	"Recipe-Box-Backend/pkg/jwt"

	"gopkg.in/yaml.v2"
)

const (
	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"

	StorageDriverLocal = "local"
	StorageDriverS3    = "s3"
)

// Config is read once at startup and handed to constructors by value.
type Config struct {
	// Server configuration
	AppPort           string `yaml:"APP_PORT"`
	AppURL            string `yaml:"APP_URL"`
	CORSAllowedOrigin string `yaml:"CORS_ALLOWED_ORIGIN"`
	LogLevel          string `yaml:"LOG_LEVEL"`
	AccessLogPath     string `yaml:"ACCESS_LOG_PATH"`

	// Database configuration
	DBDriver   string `yaml:"DB_DRIVER"`
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`
	DBTimeZone string `yaml:"DB_TIMEZONE"`
	DBPath     string `yaml:"DB_PATH"`

	// JWT configuration
	JWTSecret     string `yaml:"JWT_SECRET"`
	JWTAlgorithm  string `yaml:"JWT_ALGORITHM"`
	JWTTTLMinutes int    `yaml:"JWT_TTL_MINUTES"`

	// File storage configuration
	StorageDriver string `yaml:"STORAGE_DRIVER"`
	UploadDir     string `yaml:"UPLOAD_DIR"`
	AWSS3Bucket   string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region   string `yaml:"AWS_S3_REGION"`
	AWSAccessKey  string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey  string `yaml:"AWS_SECRET_KEY"`

	// Mailing configuration
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// Ingredient catalog seed
	PredefinedIngredientsPath string `yaml:"PREDEFINED_INGREDIENTS_PATH"`
}

func LoadConfig(path string) (Config, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	return ParseConfig(file)
}

func ParseConfig(data []byte) (Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (c *Config) applyDefaults() {
	if c.AppPort == "" {
		c.AppPort = "8000"
	}
	if c.AppURL == "" {
		c.AppURL = "http://localhost:" + c.AppPort
	}
	c.AppURL = strings.TrimRight(c.AppURL, "/")
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.AccessLogPath == "" {
		c.AccessLogPath = "./logs/app.log"
	}
	if c.DBDriver == "" {
		c.DBDriver = DBDriverPostgres
	}
	if c.DBTimeZone == "" {
		c.DBTimeZone = "UTC"
	}
	if c.DBPath == "" {
		c.DBPath = "recipes.db"
	}
	if c.JWTAlgorithm == "" {
		c.JWTAlgorithm = "HS256"
	}
	if c.JWTTTLMinutes <= 0 {
		c.JWTTTLMinutes = 120
	}
	if c.StorageDriver == "" {
		c.StorageDriver = StorageDriverLocal
	}
	if c.UploadDir == "" {
		c.UploadDir = "./uploads"
	}
}

func (c Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	switch c.JWTAlgorithm {
	case "HS256", "HS384", "HS512":
	default:
		errs = append(errs, fmt.Errorf("JWT_ALGORITHM %q is not supported", c.JWTAlgorithm))
	}
	switch c.DBDriver {
	case DBDriverPostgres, DBDriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER %q is not supported", c.DBDriver))
	}
	switch c.StorageDriver {
	case StorageDriverLocal:
	case StorageDriverS3:
		if c.AWSS3Bucket == "" || c.AWSS3Region == "" {
			errs = append(errs, errors.New("AWS_S3_BUCKET and AWS_S3_REGION are required for the s3 storage driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORAGE_DRIVER %q is not supported", c.StorageDriver))
	}
	return errors.Join(errs...)
}

func (c Config) MailEnabled() bool {
	return c.SMTPHost != ""
}

func (c Config) JWTConfig() jwt.Config {
	return jwt.Config{
		Secret:    c.JWTSecret,
		Algorithm: c.JWTAlgorithm,
		TTL:       time.Duration(c.JWTTTLMinutes) * time.Minute,
	}
}

func (c Config) StorageConfig() storage.Config {
	return storage.Config{
		Driver:        c.StorageDriver,
		UploadDir:     c.UploadDir,
		PublicBaseURL: c.AppURL,
		S3Bucket:      c.AWSS3Bucket,
		S3Region:      c.AWSS3Region,
		AccessKey:     c.AWSAccessKey,
		SecretKey:     c.AWSSecretKey,
	}
}

func (c Config) MailConfig() mailing.MailConfig {
	return mailing.MailConfig{
		SMTPHost:     c.SMTPHost,
		SMTPPort:     c.SMTPPort,
		SMTPSender:   c.SMTPSenderName,
		SMTPEmail:    c.SMTPAuthEmail,
		SMTPPassword: c.SMTPAuthPassword,
	}
}
