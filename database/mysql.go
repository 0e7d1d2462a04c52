package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
)

const (
	MYSQL_CONN_MAX_LIFETIME = 5 * time.Minute
	MYSQL_MAX_OPEN_CONNS    = 10
	MYSQL_MAX_IDLE_CONNS    = 10
	MYSQL_PING_TIMEOUT      = 5 * time.Second
)

const (
	TABLE_LEAD_SOURCES     = "lead_sources"
	TABLE_PROSPECTS        = "prospects"
	TABLE_FUNNEL_STAGES    = "funnel_stages"
	TABLE_PROSPECT_JOURNEY = "prospect_journey"
	TABLE_DISCOVERY_CALLS  = "discovery_calls"
	TABLE_PROPOSALS        = "proposals"
	TABLE_CONTRACTS        = "contracts"
)

// OpenMySQL opens the funnel event store. Timestamps are always scanned into
// time.Time, so parseTime is forced on whatever DSN is configured.
func OpenMySQL(ctx context.Context, uri string) (*sql.DB, error) {
	cfg, err := mysql.ParseDSN(uri)
	if err != nil {
		return nil, fmt.Errorf("invalid MySQL DSN: %w", err)
	}
	cfg.ParseTime = true
	if cfg.Loc == nil {
		cfg.Loc = time.UTC
	}

	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build MySQL connector: %w", err)
	}

	db := sql.OpenDB(connector)
	db.SetConnMaxLifetime(MYSQL_CONN_MAX_LIFETIME)
	db.SetMaxOpenConns(MYSQL_MAX_OPEN_CONNS)
	db.SetMaxIdleConns(MYSQL_MAX_IDLE_CONNS)

	pingCtx, cancel := context.WithTimeout(ctx, MYSQL_PING_TIMEOUT)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to MySQL: %w", err)
	}

	return db, nil
}
