package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	migrate "github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // registers the postgres:// migrate driver
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/SergeyParamoshkin/articles/internal/model"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const (
	// sqliteDriverName is mattn's driver with unicodeLower registered on
	// every connection.
	sqliteDriverName = "sqlite3_articles"
	// unicodeLower folds case like strings.ToLower. The builtin LOWER of
	// sqlite only folds ASCII.
	unicodeLower = "unicode_lower"
)

func init() {
	sql.Register(sqliteDriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc(unicodeLower, strings.ToLower, true)
		},
	})
}

// OpenConfig describes how to reach the relational store.
type OpenConfig struct {
	// URL is a postgres:// DSN, or a sqlite DSN prefixed with "sqlite:" or
	// "file:".
	URL             string
	Debug           bool
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnectAttempts int
	RetryDelay      time.Duration
	// SQLMigrations runs the embedded golang-migrate files instead of
	// AutoMigrate. Postgres only.
	SQLMigrations bool
}

func (c OpenConfig) isSQLite() bool {
	lower := strings.ToLower(c.URL)

	return strings.HasPrefix(lower, "sqlite:") || strings.HasPrefix(lower, "file:")
}

// sqliteDSN strips the "sqlite:" prefix and turns foreign keys on unless the
// DSN already sets them.
func sqliteDSN(url string) string {
	dsn := strings.TrimPrefix(url, "sqlite:")

	lower := strings.ToLower(dsn)
	if strings.Contains(lower, "_foreign_keys=") || strings.Contains(lower, "_fk=") {
		return dsn
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}

	return dsn + sep + "_foreign_keys=on"
}

// Open connects, configures the pool and migrates the schema.
func Open(ctx context.Context, cfg OpenConfig, log *zap.SugaredLogger) (*gorm.DB, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, errors.New("database url is empty, set DATABASE_URL")
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	level := gormlogger.Warn
	if cfg.Debug {
		level = gormlogger.Info
	}
	gcfg := &gorm.Config{
		TranslateError: true,
		Logger: gormlogger.New(zap.NewStdLog(log.Desugar()), gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		}),
	}

	var dialector gorm.Dialector
	if cfg.isSQLite() {
		dialector = sqlite.New(sqlite.Config{
			DriverName: sqliteDriverName,
			DSN:        sqliteDSN(cfg.URL),
		})
	} else {
		dialector = postgres.Open(cfg.URL)
	}

	attempts := cfg.ConnectAttempts
	if attempts <= 0 {
		attempts = 1
	}

	var (
		db  *gorm.DB
		err error
	)
	for i := 1; i <= attempts; i++ {
		db, err = gorm.Open(dialector, gcfg)
		if err == nil {
			err = db.WithContext(ctx).Exec("SELECT 1").Error
		}
		if err == nil {
			break
		}
		if i == attempts {
			return nil, fmt.Errorf("connect database after %d attempts: %w", attempts, err)
		}
		log.Warnw("retrying database connection", "attempt", i, "error", err)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(cfg.RetryDelay):
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	if cfg.isSQLite() {
		// one connection keeps in-memory databases alive and serialises writers
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if cfg.SQLMigrations && !cfg.isSQLite() {
		if err := runSQLMigrations(cfg.URL); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("sql migrations: %w", err)
		}
	} else if err := AutoMigrate(db); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	for _, table := range []string{"users", "categories", "articles"} {
		if !db.Migrator().HasTable(table) {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("missing table after migration: %s", table)
		}
	}

	return db, nil
}

// AutoMigrate creates or updates the schema from the model definitions.
func AutoMigrate(db *gorm.DB) error {
	for _, m := range []interface{}{&model.User{}, &model.Category{}, &model.ArticleWithDetails{}} {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("automigrate %T: %w", m, err)
		}
	}

	return nil
}

func runSQLMigrations(url string) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("open embedded migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, url)
	if err != nil {
		return fmt.Errorf("init migrate: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}
