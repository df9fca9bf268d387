package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/soochol/ralphflow/internal/chart"
)

// ErrChartNotFound is returned when no row matches a chart name.
var ErrChartNotFound = errors.New("chart not found")

// ChartRow is a chart definition stored in the database.
type ChartRow struct {
	Name       string      `json:"name"`
	Title      string      `json:"title"`
	NodeCount  int         `json:"node_count"`
	Definition chart.Chart `json:"definition"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// SaveChart upserts a chart by name.
func (d *DB) SaveChart(ctx context.Context, c *chart.Chart) error {
	defJSON, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal definition: %w", err)
	}
	now := time.Now()
	_, err = d.Pool.ExecContext(ctx,
		`INSERT INTO charts (name, title, node_count, definition, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $5)
		 ON CONFLICT (name) DO UPDATE SET title = EXCLUDED.title, node_count = EXCLUDED.node_count,
		   definition = EXCLUDED.definition, updated_at = EXCLUDED.updated_at`,
		c.Name, c.Title, c.Len(), defJSON, now,
	)
	if err != nil {
		return fmt.Errorf("upsert chart: %w", err)
	}
	return nil
}

// GetChart retrieves a chart by name.
func (d *DB) GetChart(ctx context.Context, name string) (*ChartRow, error) {
	row, err := scanChart(d.Pool.QueryRowContext(ctx,
		`SELECT name, title, node_count, definition, created_at, updated_at
		 FROM charts WHERE name = $1`, name,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrChartNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("get chart: %w", err)
	}
	return row, nil
}

// ListCharts returns every stored chart ordered by name.
func (d *DB) ListCharts(ctx context.Context) ([]ChartRow, error) {
	rows, err := d.Pool.QueryContext(ctx,
		`SELECT name, title, node_count, definition, created_at, updated_at
		 FROM charts ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("list charts: %w", err)
	}
	defer rows.Close()

	var result []ChartRow
	for rows.Next() {
		row, err := scanChart(rows)
		if err != nil {
			return nil, fmt.Errorf("scan chart: %w", err)
		}
		result = append(result, *row)
	}
	return result, rows.Err()
}

// DeleteChart removes a chart by name.
func (d *DB) DeleteChart(ctx context.Context, name string) error {
	res, err := d.Pool.ExecContext(ctx, `DELETE FROM charts WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("delete chart: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrChartNotFound, name)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanChart(s scanner) (*ChartRow, error) {
	var row ChartRow
	var defJSON []byte
	if err := s.Scan(&row.Name, &row.Title, &row.NodeCount, &defJSON, &row.CreatedAt, &row.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(defJSON, &row.Definition); err != nil {
		return nil, fmt.Errorf("unmarshal definition: %w", err)
	}
	return &row, nil
}
