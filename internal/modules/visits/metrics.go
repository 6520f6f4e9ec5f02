package visits

import (
	"fieldops/internal/domain"
	"fieldops/internal/pkg/timefmt"
)

const maxDaySeconds = 86400

// UserMetrics is the presence/visit/transit breakdown for one user over the
// filtered period.
type UserMetrics struct {
	UserID          int64 `json:"user_id"`
	PresenceSeconds int64 `json:"presence_seconds"`
	VisitSeconds    int64 `json:"visit_seconds"`
	TransitSeconds  int64 `json:"transit_seconds"`
}

// ComputeUserMetrics derives per-user presence, visit and transit seconds.
// Presence rows are deduplicated by keeping the maximum per user-day, each
// clamped to [0, 86400]; visit seconds sum finished_at-started_at over the
// completed snapshots; transit is the leftover, never negative.
func ComputeUserMetrics(snapshots []domain.VisitSnapshot, presence []domain.PresenceRecord) []UserMetrics {
	// max presence per (user, day)
	type userDay struct {
		user int64
		day  string
	}
	dayMax := make(map[userDay]int64)
	for _, p := range presence {
		secs := p.PresenceSeconds
		if secs < 0 {
			secs = 0
		}
		if secs > maxDaySeconds {
			secs = maxDaySeconds
		}
		k := userDay{p.UserID, p.Day}
		if secs > dayMax[k] {
			dayMax[k] = secs
		}
	}

	presenceByUser := make(map[int64]int64)
	for k, secs := range dayMax {
		presenceByUser[k.user] += secs
	}

	visitByUser := make(map[int64]int64)
	for _, v := range snapshots {
		if v.Status() != domain.VisitFinished {
			continue
		}
		visitByUser[v.UserID] += timefmt.DiffSeconds(v.StartedAt, v.FinishedAt)
	}

	users := make(map[int64]bool)
	var order []int64
	for _, v := range snapshots {
		if !users[v.UserID] {
			users[v.UserID] = true
			order = append(order, v.UserID)
		}
	}
	for _, p := range presence {
		if !users[p.UserID] {
			users[p.UserID] = true
			order = append(order, p.UserID)
		}
	}

	out := make([]UserMetrics, 0, len(order))
	for _, id := range order {
		m := UserMetrics{
			UserID:          id,
			PresenceSeconds: presenceByUser[id],
			VisitSeconds:    visitByUser[id],
		}
		if m.PresenceSeconds > m.VisitSeconds {
			m.TransitSeconds = m.PresenceSeconds - m.VisitSeconds
		}
		out = append(out, m)
	}
	return out
}
