// SPDX-License-Identifier: AGPL-3.0-or-later

package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/paybadge/paybadge/internal/domain"
)

// RenderRepository persists badge render events.
type RenderRepository struct {
	db *sql.DB
}

// NewRenderRepository creates a new RenderRepository.
func NewRenderRepository(db *sql.DB) *RenderRepository {
	return &RenderRepository{db: db}
}

// Record inserts one render event.
func (r *RenderRepository) Record(ctx context.Context, ev domain.RenderEvent) error {
	query := `INSERT INTO badge_renders (id, style, icon, rendered_at) VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, ev.ID.String(), ev.Style, ev.Icon.String(), ev.RenderedAt)
	if err != nil {
		return fmt.Errorf("insert render event: %w", err)
	}
	return nil
}

// Stats aggregates recorded render events, grouped by style.
func (r *RenderRepository) Stats(ctx context.Context) (domain.RenderStats, error) {
	stats := domain.RenderStats{ByStyle: make(map[string]int64)}

	query := `
		SELECT style, COUNT(*)
		FROM badge_renders
		GROUP BY style
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return domain.RenderStats{}, fmt.Errorf("query render stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var style string
		var count int64
		if err := rows.Scan(&style, &count); err != nil {
			return domain.RenderStats{}, fmt.Errorf("scan render stats: %w", err)
		}
		stats.ByStyle[style] = count
		stats.TotalRenders += count
	}
	if err := rows.Err(); err != nil {
		return domain.RenderStats{}, fmt.Errorf("iterate render stats: %w", err)
	}

	return stats, nil
}
