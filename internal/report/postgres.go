package report

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"
)

// PostgresSink inserts finished reports into a processing_reports table,
// one row per request, with the full document as jsonb.
type PostgresSink struct {
	conn *pgx.Conn
}

// NewPostgresSink connects and ensures the target table exists.
func NewPostgresSink(ctx context.Context, connString string) (*PostgresSink, error) {
	conn, err := pgx.Connect(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("connect to report database: %w", err)
	}

	_, err = conn.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS processing_reports (
			id BIGSERIAL PRIMARY KEY,
			filename TEXT NOT NULL,
			report JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		conn.Close(ctx)
		return nil, fmt.Errorf("ensure processing_reports table: %w", err)
	}

	return &PostgresSink{conn: conn}, nil
}

// Persist inserts one report row.
func (s *PostgresSink) Persist(ctx context.Context, rep *Report) error {
	data, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("marshal report for %s: %w", rep.Filename, err)
	}

	_, err = s.conn.Exec(ctx, `
		INSERT INTO processing_reports (filename, report)
		VALUES ($1, $2)
	`, rep.Filename, data)
	if err != nil {
		return fmt.Errorf("insert report for %s: %w", rep.Filename, err)
	}

	log.Debugf("Report for %s inserted into processing_reports", rep.Filename)
	return nil
}

// Close releases the database connection.
func (s *PostgresSink) Close(ctx context.Context) {
	s.conn.Close(ctx)
}
