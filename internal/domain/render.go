// SPDX-License-Identifier: AGPL-3.0-or-later

package domain

import (
	"time"

	"github.com/google/uuid"
)

// RenderEvent records one served badge for analytics. Events live outside
// the rendering pipeline; the badge core itself keeps no state.
type RenderEvent struct {
	ID         uuid.UUID
	Style      string
	Icon       Icon
	RenderedAt time.Time
}

// NewRenderEvent creates a RenderEvent stamped with a fresh ID and the
// current UTC time.
func NewRenderEvent(style string, icon Icon) RenderEvent {
	return RenderEvent{
		ID:         uuid.New(),
		Style:      style,
		Icon:       icon,
		RenderedAt: time.Now().UTC(),
	}
}

// RenderStats aggregates recorded render events.
type RenderStats struct {
	TotalRenders int64
	ByStyle      map[string]int64
}
