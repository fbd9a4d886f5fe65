package driver

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type DatabaseSSLConfig struct {
	Mode     string
	RootCert string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSL      DatabaseSSLConfig

	MaxConns int32
	MinConns int32
}

func NewDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		Host:     getEnvOrDefault("DB_HOST", "localhost"),
		Port:     getEnvOrDefault("DB_PORT", "5432"),
		User:     getEnvOrDefault("DB_USER", "kbassessor"),
		Password: getEnvOrDefault("DB_PASSWORD", "kbassessor"),
		DBName:   getEnvOrDefault("DB_NAME", "kbassessor"),
		SSL: DatabaseSSLConfig{
			Mode:     getEnvOrDefault("DB_SSL_MODE", "prefer"),
			RootCert: getEnvOrDefault("DB_SSL_ROOT_CERT", ""),
		},
		MaxConns: int32(getEnvAsIntOrDefault("DB_MAX_CONNS", 10)),
		MinConns: int32(getEnvAsIntOrDefault("DB_MIN_CONNS", 2)),
	}
}

func (dc *DatabaseConfig) BuildConnectionString() string {
	conn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		dc.Host, dc.Port, dc.User, dc.Password, dc.DBName, dc.SSL.Mode,
	)

	if dc.SSL.RootCert != "" {
		conn += fmt.Sprintf(" sslrootcert=%s", dc.SSL.RootCert)
	}

	return conn
}

func (dc *DatabaseConfig) ValidateSSLConfig() error {
	switch dc.SSL.Mode {
	case "disable", "allow", "prefer", "require":
		return nil
	case "verify-ca", "verify-full":
		if dc.SSL.RootCert == "" {
			return fmt.Errorf("SSL root certificate required for mode %s", dc.SSL.Mode)
		}

		return nil
	default:
		return fmt.Errorf("invalid SSL mode: %s", dc.SSL.Mode)
	}
}

// Init creates the connection pool and verifies connectivity.
func Init(ctx context.Context, logger *slog.Logger) (*pgxpool.Pool, error) {
	dbConfig := NewDatabaseConfig()

	if err := dbConfig.ValidateSSLConfig(); err != nil {
		return nil, fmt.Errorf("invalid SSL configuration: %w", err)
	}

	poolConfig, err := pgxpool.ParseConfig(dbConfig.BuildConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MaxConns = dbConfig.MaxConns
	poolConfig.MinConns = dbConfig.MinConns
	poolConfig.MaxConnLifetime = 1 * time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.InfoContext(ctx, "connected to database",
		"host", dbConfig.Host,
		"database", dbConfig.DBName,
		"sslmode", dbConfig.SSL.Mode,
		"max_conns", dbConfig.MaxConns)

	return pool, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}

	return defaultValue
}
