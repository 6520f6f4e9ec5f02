package visits

import (
	"time"

	"fieldops/internal/domain"
)

var statusRank = map[domain.VisitStatus]int{
	domain.VisitFinished: 3,
	domain.VisitEnded:    2,
	domain.VisitPending:  1,
}

// BestPerMarket collapses duplicate snapshot rows into one representative
// record per market. The backend can hold several rows for the same physical
// visit (the field user's original plus a team-leader overlay); dashboards
// must show a single canonical state per market per period.
//
// Selection per market: prefer Finished rows, then Ended, then Pending.
// Within the winning tier the row with the latest finished_at wins
// (started_at when finished_at is absent); on equal timestamps the
// later-encountered row wins, a stable left-to-right reduce.
//
// Output order follows first appearance of each market in the input.
func BestPerMarket(rows []domain.VisitSnapshot) []domain.VisitSnapshot {
	best := make(map[string]domain.VisitSnapshot)
	var order []string

	for _, row := range rows {
		key := row.MarketKey()
		cur, seen := best[key]
		if !seen {
			best[key] = row
			order = append(order, key)
			continue
		}
		if beatsOrTies(row, cur) {
			best[key] = row
		}
	}

	out := make([]domain.VisitSnapshot, 0, len(order))
	for _, key := range order {
		out = append(out, best[key])
	}
	return out
}

// beatsOrTies reports whether candidate should replace the current best:
// strictly better status, or same status with a later-or-equal effective
// time.
func beatsOrTies(candidate, current domain.VisitSnapshot) bool {
	cr, br := statusRank[candidate.Status()], statusRank[current.Status()]
	if cr != br {
		return cr > br
	}
	return !effectiveTime(candidate).Before(effectiveTime(current))
}

func effectiveTime(v domain.VisitSnapshot) time.Time {
	if t := v.EffectiveTime(); t != nil {
		return *t
	}
	return time.Time{}
}
