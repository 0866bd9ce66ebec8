package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	Env      string `env:"ENV" env-default:"development"`
	Port     string `env:"PORT" env-default:"5000"`
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`

	StoreDriver string `env:"STORE_DRIVER" env-default:"mongo"`
	MongoURI    string `env:"MONGODB_URI" env-default:"mongodb://localhost:27017"`
	DBName      string `env:"DB_NAME" env-default:"filter"`

	JWTSecret      string        `env:"JWT_SECRET"`
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL" env-default:"20m"`
	BcryptCost     int           `env:"BCRYPT_COST" env-default:"10"`

	Upload UploadConfig

	RedisAddr string `env:"REDIS_ADDR"`
	NATSURL   string `env:"NATS_URL"`

	RateLimitRPS   int `env:"RATE_LIMIT_RPS" env-default:"5"`
	RateLimitBurst int `env:"RATE_LIMIT_BURST" env-default:"10"`

	OTPStaticCode string `env:"OTP_STATIC_CODE" env-default:"1234"`
}

type UploadConfig struct {
	Driver         string `env:"UPLOAD_DRIVER" env-default:"disk"`
	MinioEndpoint  string `env:"MINIO_ENDPOINT"`
	MinioAccessKey string `env:"MINIO_ACCESS_KEY"`
	MinioSecretKey string `env:"MINIO_SECRET_KEY"`
	MinioBucket    string `env:"MINIO_BUCKET" env-default:"filter"`
	MinioUseSSL    bool   `env:"MINIO_USE_SSL" env-default:"false"`
	Dir            string `env:"UPLOAD_DIR" env-default:"./public"`
	PublicURL      string `env:"UPLOAD_PUBLIC_URL" env-default:"http://localhost:5000"`
}

// Load reads .env when present and then the process environment into AppEnv.
func Load() error {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return fmt.Errorf("read env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	AppEnv = cfg
	return nil
}

func (c Config) Validate() error {
	switch c.StoreDriver {
	case "mongo", "memory":
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.StoreDriver)
	}
	switch c.Upload.Driver {
	case "disk":
	case "minio":
		if strings.TrimSpace(c.Upload.MinioEndpoint) == "" {
			return fmt.Errorf("MINIO_ENDPOINT is required when UPLOAD_DRIVER=minio")
		}
	default:
		return fmt.Errorf("unsupported UPLOAD_DRIVER %q", c.Upload.Driver)
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.AccessTokenTTL <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_TTL must be positive")
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 31")
	}
	return nil
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}
