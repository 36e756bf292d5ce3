package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/denisenkom/go-mssqldb"

	"github.com/Mmodarre/AusHealthSim/internal/logging"
)

var log = logging.GetLogger()

// Connect establishes a connection to SQL Server and verifies it with a ping.
func Connect(ctx context.Context, connectionString string) (*sql.DB, error) {
	conn, err := sql.Open("sqlserver", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	log.Debug("Connected to database")

	return conn, nil
}
