package db

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/RyoWakabayashi/pm-study/internal/config"
	_ "github.com/lib/pq"

	"github.com/jmoiron/sqlx"
)

const connectTimeout = 5 * time.Second

// DSN builds a lib/pq connection string. Values are quoted so passwords
// may contain spaces and quotes.
func DSN(conn config.DBConn) string {
	q := func(v string) string {
		return "'" + escape(v) + "'"
	}
	return fmt.Sprintf("host=%s port=%s dbname=%s user=%s password=%s sslmode=%s application_name=pm-study",
		q(conn.Host), q(conn.Port), q(conn.Name), q(conn.User), q(conn.Password), q(conn.SSL))
}

func escape(v string) string {
	out := make([]rune, 0, len(v))
	for _, r := range v {
		if r == '\'' || r == '\\' {
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}

// Redacted is DSN with the password masked, for logs.
func Redacted(conn config.DBConn) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(conn.User, "xxxxx"),
		Host:   conn.Host + ":" + conn.Port,
		Path:   conn.Name,
	}
	return u.String()
}

func InitDB(ctx context.Context, cfg config.DBConfig) (*sqlx.DB, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	db, err := sqlx.ConnectContext(ctx, "postgres", DSN(cfg.Conn))
	if err != nil {
		return nil, fmt.Errorf("failed db connect to %s: %w", Redacted(cfg.Conn), err)
	}

	db.SetMaxOpenConns(cfg.Cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Cfg.ConnMaxLifeTime)
	db.SetConnMaxIdleTime(cfg.Cfg.ConnMaxIdleTime)

	return db, nil
}
