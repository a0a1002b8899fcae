package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// DB holds the database connection. It stays nil when no database is configured.
var DB *sql.DB

// Settings describes how to reach PostgreSQL
type Settings struct {
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// Configured reports whether enough settings are present to open a connection
func (s Settings) Configured() bool {
	return s.URL != "" || (s.Host != "" && s.User != "" && s.Name != "")
}

// ConnString builds the pgx connection string
func (s Settings) ConnString() string {
	if s.URL != "" {
		return s.URL
	}

	port := s.Port
	if port == "" {
		port = "5432"
	}
	sslmode := s.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		s.Host, port, s.User, s.Password, s.Name, sslmode)
}

// InitDB opens and pings the database
func InitDB(ctx context.Context, settings Settings) error {
	if !settings.Configured() {
		return fmt.Errorf("database connection variables not set. Set DATABASE_URL or DB_HOST, DB_USER, DB_NAME")
	}

	conn, err := sql.Open("pgx", settings.ConnString())
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	DB = conn
	return nil
}

// CloseDB closes the database connection
func CloseDB() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}
