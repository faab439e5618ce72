package config

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type ConnectionPoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func DefaultConnectionPoolConfig() *ConnectionPoolConfig {
	return &ConnectionPoolConfig{
		MaxOpenConns:    50,
		MaxIdleConns:    10,
		ConnMaxLifetime: 1 * time.Hour,
	}
}

// getWriterConfig loads writer database configuration from environment variables
func getWriterConfig() *DatabaseConfig {
	return &DatabaseConfig{
		Host:     getEnvWithDefault("POSTGRES_WRITER_HOST", "localhost"),
		Port:     getEnvWithDefault("POSTGRES_WRITER_PORT", "5432"),
		User:     getEnvWithDefault("POSTGRES_WRITER_USER", "postgres"),
		Password: getEnvWithDefault("POSTGRES_WRITER_PASSWORD", ""),
		DBName:   getEnvWithDefault("POSTGRES_WRITER_DB_NAME", "support_desk"),
		SSLMode:  getEnvWithDefault("POSTGRES_WRITER_SSL_MODE", "disable"),
	}
}

// getReaderConfig loads reader database configuration from environment variables
func getReaderConfig() *DatabaseConfig {
	return &DatabaseConfig{
		Host:     getEnvWithDefault("POSTGRES_READER_HOST", "localhost"),
		Port:     getEnvWithDefault("POSTGRES_READER_PORT", "5432"),
		User:     getEnvWithDefault("POSTGRES_READER_USER", "postgres"),
		Password: getEnvWithDefault("POSTGRES_READER_PASSWORD", ""),
		DBName:   getEnvWithDefault("POSTGRES_READER_DB_NAME", "support_desk"),
		SSLMode:  getEnvWithDefault("POSTGRES_READER_SSL_MODE", "disable"),
	}
}

// getConnectionPoolConfig loads connection pool configuration from environment variables
func getConnectionPoolConfig() *ConnectionPoolConfig {
	return &ConnectionPoolConfig{
		MaxOpenConns:    getEnvIntWithDefault("DB_MAX_OPEN_CONNS", 50),
		MaxIdleConns:    getEnvIntWithDefault("DB_MAX_IDLE_CONNS", 10),
		ConnMaxLifetime: getEnvDurationWithDefault("DB_CONN_MAX_LIFETIME", 1*time.Hour),
	}
}

// buildDSN creates PostgreSQL connection string from configuration
func (c *DatabaseConfig) buildDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// GormConfig is shared by every connection so repository code can rely on
// translated errors (gorm.ErrDuplicatedKey) regardless of driver.
func GormConfig(env string) *gorm.Config {
	level := logger.Info
	switch env {
	case "production":
		level = logger.Warn
	case "test":
		level = logger.Silent
	}
	return &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
	}
}

// configureConnectionPool applies connection pool settings to the database connection
func configureConnectionPool(gormDB *gorm.DB, poolConfig *ConnectionPoolConfig) error {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB from gorm.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(poolConfig.MaxOpenConns)
	sqlDB.SetMaxIdleConns(poolConfig.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(poolConfig.ConnMaxLifetime)

	return nil
}

// createDatabaseConnection creates a GORM database connection with connection pool tuning
func createDatabaseConnection(config *DatabaseConfig, poolConfig *ConnectionPoolConfig, env string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(config.buildDSN()), GormConfig(env))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := configureConnectionPool(db, poolConfig); err != nil {
		return nil, fmt.Errorf("failed to configure connection pool: %w", err)
	}

	return db, nil
}

// NewSQLiteDatabase opens a local sqlite file, used for development without postgres.
// SQLite allows a single writer, so the pool is pinned to one connection.
func NewSQLiteDatabase(path, env string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), GormConfig(env))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	pool := DefaultConnectionPoolConfig()
	pool.MaxOpenConns = 1
	pool.MaxIdleConns = 1
	if err := configureConnectionPool(db, pool); err != nil {
		return nil, fmt.Errorf("failed to configure connection pool: %w", err)
	}

	return db, nil
}

// NewWriterDatabase creates a database connection optimized for write operations
func NewWriterDatabase(env string) (*gorm.DB, error) {
	return createDatabaseConnection(getWriterConfig(), getConnectionPoolConfig(), env)
}

// NewReaderDatabase creates a database connection optimized for read operations
func NewReaderDatabase(env string) (*gorm.DB, error) {
	return createDatabaseConnection(getReaderConfig(), getConnectionPoolConfig(), env)
}

// DatabaseConnections holds both writer and reader database connections
type DatabaseConnections struct {
	Writer *gorm.DB
	Reader *gorm.DB
}

// NewDatabaseConnections creates both writer and reader database connections.
// With DB_DRIVER=sqlite both point at the same handle.
func NewDatabaseConnections(env string) (*DatabaseConnections, error) {
	if getEnvWithDefault("DB_DRIVER", DriverPostgres) == DriverSQLite {
		db, err := NewSQLiteDatabase(getEnvWithDefault("SQLITE_PATH", "support_desk.db"), env)
		if err != nil {
			return nil, err
		}
		return &DatabaseConnections{Writer: db, Reader: db}, nil
	}

	writer, err := NewWriterDatabase(env)
	if err != nil {
		return nil, fmt.Errorf("failed to create writer database connection: %w", err)
	}

	reader, err := NewReaderDatabase(env)
	if err != nil {
		return nil, fmt.Errorf("failed to create reader database connection: %w", err)
	}

	return &DatabaseConnections{
		Writer: writer,
		Reader: reader,
	}, nil
}

// Close closes both writer and reader database connections
func (dc *DatabaseConnections) Close() error {
	var writerErr, readerErr error

	if dc.Writer != nil {
		if sqlDB, err := dc.Writer.DB(); err == nil {
			writerErr = sqlDB.Close()
		}
	}

	if dc.Reader != nil && dc.Reader != dc.Writer {
		if sqlDB, err := dc.Reader.DB(); err == nil {
			readerErr = sqlDB.Close()
		}
	}

	if writerErr != nil {
		return fmt.Errorf("failed to close writer database connection: %w", writerErr)
	}
	if readerErr != nil {
		return fmt.Errorf("failed to close reader database connection: %w", readerErr)
	}

	return nil
}
