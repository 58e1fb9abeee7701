// Package bootstrap wires configuration into stores and services for the
// binaries under cmd.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"moviecast/cast"
	"moviecast/dynamodb"
	"moviecast/movie"
	"moviecast/pkg/config"
	"moviecast/postgres"

	sentrygo "github.com/getsentry/sentry-go"
)

type CastStore interface {
	cast.Repository
	Save(ctx context.Context, members []cast.Member) error
}

type MovieStore interface {
	movie.Repository
	Save(ctx context.Context, movies []movie.Movie) error
}

type Stores struct {
	Cast   CastStore
	Movies MovieStore
	Close  func() error
}

// Logger installs a JSON slog logger on stdout as the default.
func Logger() *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)
	return logger
}

func InitSentry(cfg *config.Config) error {
	return sentrygo.Init(sentrygo.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.AppEnv,
		AttachStacktrace: true,
	})
}

// OpenStores connects to the store selected by STORE_DRIVER. The
// connection is opened once and shared by both repositories.
func OpenStores(ctx context.Context, cfg *config.Config) (*Stores, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		db, err := postgres.NewConnection(PostgresOptions(cfg))
		if err != nil {
			return nil, fmt.Errorf("open postgres connection: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("get postgres instance: %w", err)
		}
		return &Stores{
			Cast:   postgres.NewCastRepository(db),
			Movies: postgres.NewMovieRepository(db),
			Close:  sqlDB.Close,
		}, nil
	default:
		client, err := dynamodb.NewClient(ctx, dynamodb.Options{
			Region:       cfg.DynamoDB.Region,
			Endpoint:     cfg.DynamoDB.Endpoint,
			AccessKey:    cfg.DynamoDB.AccessKey,
			SecretKey:    cfg.DynamoDB.SecretKey,
			SessionToken: cfg.DynamoDB.SessionToken,
		})
		if err != nil {
			return nil, err
		}
		return &Stores{
			Cast:   dynamodb.NewCastRepository(client, cfg.DynamoDB.CastTable, cfg.DynamoDB.CastRoleIndex),
			Movies: dynamodb.NewMovieRepository(client, cfg.DynamoDB.MovieTable),
			Close:  func() error { return nil },
		}, nil
	}
}

func PostgresOptions(cfg *config.Config) postgres.Options {
	return postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     strconv.Itoa(cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
	}
}

// CastService builds the use case served by both transports.
func CastService(stores *Stores) *cast.Usecase {
	return cast.NewUsecase(stores.Cast, movie.NewUsecase(stores.Movies))
}
