package postgres

import (
	"fmt"
	"strings"
	"time"

	"moviecast/pkg/metrics"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const storeName = "postgres"

type Options struct {
	DBName   string
	DBUser   string
	Password string
	Host     string
	Port     string
	SSLMode  bool
}

func NewConnection(opts Options) (*gorm.DB, error) {
	sslmode := "disable"
	if opts.SSLMode {
		sslmode = "require"
	}

	datasource := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		opts.Host, opts.Port, opts.DBUser, opts.Password, opts.DBName, sslmode,
	)

	return gorm.Open(postgres.Open(datasource), &gorm.Config{})
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePrefix turns prefix into a LIKE pattern matching values that start
// with it. Postgres uses backslash as the default LIKE escape.
func likePrefix(prefix string) string {
	return likeEscaper.Replace(prefix) + "%"
}

func observe(table string, start time.Time, err error) {
	metrics.StoreDuration.WithLabelValues(storeName, table).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.StoreFailures.WithLabelValues(storeName, table).Inc()
	}
}
