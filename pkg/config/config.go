package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	DriverDynamoDB = "dynamodb"
	DriverPostgres = "postgres"
)

var Empty = new(Config)

type Config struct {
	AppEnv       string `envconfig:"APP_ENV"`
	Port         int    `envconfig:"PORT" default:"8080"`
	SentryDSN    string `envconfig:"SENTRY_DSN"`
	AllowOrigins string `envconfig:"ALLOW_ORIGINS" default:"*"`
	RateLimit    int    `envconfig:"RATE_LIMIT" validate:"gte=0"`
	StoreDriver  string `envconfig:"STORE_DRIVER" default:"dynamodb" validate:"oneof=dynamodb postgres"`

	DB struct {
		Name      string `envconfig:"DB_NAME"`
		Host      string `envconfig:"DB_HOST"`
		Port      int    `envconfig:"DB_PORT" default:"5432"`
		User      string `envconfig:"DB_USER"`
		Pass      string `envconfig:"DB_PASS"`
		EnableSSL bool   `envconfig:"ENABLE_SSL"`
	}
	DynamoDB struct {
		Region        string `envconfig:"REGION"`
		Endpoint      string `envconfig:"DDB_ENDPOINT"`
		AccessKey     string `envconfig:"DDB_ACCESS_KEY"`
		SecretKey     string `envconfig:"DDB_SECRET_KEY"`
		SessionToken  string `envconfig:"DDB_SESSION_TOKEN"`
		CastTable     string `envconfig:"CAST_TABLE_NAME"`
		CastRoleIndex string `envconfig:"CAST_ROLE_INDEX" default:"roleIx"`
		MovieTable    string `envconfig:"MOVIE_TABLE_NAME"`
	}
}

func LoadConfig() (*Config, error) {
	// load default .env file, ignore the error
	_ = godotenv.Load()

	cfg := new(Config)
	err := envconfig.Process("", cfg)
	if err != nil {
		return nil, fmt.Errorf("load config error: %v", err)
	}

	return cfg, nil
}

// Validate checks the settings the selected store driver needs. It is kept
// apart from LoadConfig so tools such as the migrator can run with a
// partial environment.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validate config error: %v", err)
	}
	return nil
}

// Origins splits AllowOrigins into the list CORS middleware expects.
func (c *Config) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(validateDriver, Config{})
	return v
}

func validateDriver(sl validator.StructLevel) {
	cfg := sl.Current().Interface().(Config)

	switch cfg.StoreDriver {
	case DriverDynamoDB:
		required(sl, cfg.DynamoDB.Region, "REGION")
		required(sl, cfg.DynamoDB.CastTable, "CAST_TABLE_NAME")
		required(sl, cfg.DynamoDB.MovieTable, "MOVIE_TABLE_NAME")
	case DriverPostgres:
		required(sl, cfg.DB.Host, "DB_HOST")
		required(sl, cfg.DB.Name, "DB_NAME")
	}
}

func required(sl validator.StructLevel, value, name string) {
	if strings.TrimSpace(value) == "" {
		sl.ReportError(value, name, name, "required", "")
	}
}
