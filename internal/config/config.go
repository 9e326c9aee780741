package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store drivers.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Media drivers.
const (
	MediaS3    = "s3"
	MediaLocal = "local"
)

// Config holds every setting of the catalog service.
type Config struct {
	AppPort        string
	StoreDriver    string
	MongoURI       string
	MongoDatabase  string
	DatabaseDSN    string
	RequestTimeout time.Duration
	BodyLimitMB    int
	CORSOrigins    string

	MediaDriver       string
	MediaDir          string
	MediaBaseURL      string
	UploadConcurrency int
	S3                S3Config

	RabbitMQURL string

	JWTSecret    string
	AuthRequired bool
}

// S3Config holds the credentials of an S3-compatible media host.
type S3Config struct {
	Region    string
	Endpoint  string
	Bucket    string
	AccessKey string
	SecretKey string
	PublicURL string
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("STORE_DRIVER", DriverMongo)
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "catalog")
	v.SetDefault("DATABASE_DSN", "")
	v.SetDefault("REQUEST_TIMEOUT", "10s")
	v.SetDefault("BODY_LIMIT_MB", 20)
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("MEDIA_DRIVER", MediaLocal)
	v.SetDefault("MEDIA_DIR", "./uploads")
	v.SetDefault("MEDIA_BASE_URL", "http://localhost:8080/media")
	v.SetDefault("UPLOAD_CONCURRENCY", 4)
	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("S3_ENDPOINT", "")
	v.SetDefault("S3_BUCKET", "")
	v.SetDefault("S3_ACCESS_KEY", "")
	v.SetDefault("S3_SECRET_KEY", "")
	v.SetDefault("S3_PUBLIC_URL", "")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("AUTH_REQUIRED", false)
}

// Load reads an optional .env file, then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()
	return FromViper(v)
}

// FromViper builds and validates a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		AppPort:           v.GetString("APP_PORT"),
		StoreDriver:       strings.ToLower(v.GetString("STORE_DRIVER")),
		MongoURI:          v.GetString("MONGO_URI"),
		MongoDatabase:     v.GetString("MONGO_DATABASE"),
		DatabaseDSN:       v.GetString("DATABASE_DSN"),
		RequestTimeout:    v.GetDuration("REQUEST_TIMEOUT"),
		BodyLimitMB:       v.GetInt("BODY_LIMIT_MB"),
		CORSOrigins:       v.GetString("CORS_ORIGINS"),
		MediaDriver:       strings.ToLower(v.GetString("MEDIA_DRIVER")),
		MediaDir:          v.GetString("MEDIA_DIR"),
		MediaBaseURL:      strings.TrimRight(v.GetString("MEDIA_BASE_URL"), "/"),
		UploadConcurrency: v.GetInt("UPLOAD_CONCURRENCY"),
		S3: S3Config{
			Region:    v.GetString("S3_REGION"),
			Endpoint:  v.GetString("S3_ENDPOINT"),
			Bucket:    v.GetString("S3_BUCKET"),
			AccessKey: v.GetString("S3_ACCESS_KEY"),
			SecretKey: v.GetString("S3_SECRET_KEY"),
			PublicURL: strings.TrimRight(v.GetString("S3_PUBLIC_URL"), "/"),
		},
		RabbitMQURL:  v.GetString("RABBITMQ_URL"),
		JWTSecret:    v.GetString("JWT_SECRET"),
		AuthRequired: v.GetBool("AUTH_REQUIRED"),
	}
	return cfg, cfg.Validate()
}

// Validate checks the combination of settings.
func (c Config) Validate() error {
	var errs []error

	switch c.StoreDriver {
	case DriverMongo:
		if c.MongoURI == "" {
			errs = append(errs, errors.New("MONGO_URI is required for the mongo store"))
		}
	case DriverPostgres, DriverSQLite:
		if c.DatabaseDSN == "" {
			errs = append(errs, fmt.Errorf("DATABASE_DSN is required for the %s store", c.StoreDriver))
		}
	case DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver))
	}

	switch c.MediaDriver {
	case MediaS3:
		if c.S3.Bucket == "" {
			errs = append(errs, errors.New("S3_BUCKET is required for the s3 media driver"))
		}
	case MediaLocal:
		if c.MediaDir == "" {
			errs = append(errs, errors.New("MEDIA_DIR is required for the local media driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown MEDIA_DRIVER %q", c.MediaDriver))
	}

	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("REQUEST_TIMEOUT must be positive"))
	}
	if c.UploadConcurrency <= 0 {
		errs = append(errs, errors.New("UPLOAD_CONCURRENCY must be positive"))
	}
	if c.BodyLimitMB <= 0 {
		errs = append(errs, errors.New("BODY_LIMIT_MB must be positive"))
	}
	if c.AuthRequired && c.JWTSecret == "" {
		errs = append(errs, errors.New("AUTH_REQUIRED needs JWT_SECRET"))
	}

	return errors.Join(errs...)
}
