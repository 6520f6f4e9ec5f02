package visits

import (
	"testing"
	"time"

	"fieldops/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tp(t time.Time) *time.Time { return &t }
func ip(n int64) *int64         { return &n }

func at(hour, min int) time.Time {
	return time.Date(2025, 3, 10, hour, min, 0, 0, time.UTC)
}

func pending(marketID int64, started time.Time) domain.VisitSnapshot {
	return domain.VisitSnapshot{MarketID: ip(marketID), StartedAt: tp(started)}
}

func finished(marketID int64, started, done time.Time) domain.VisitSnapshot {
	return domain.VisitSnapshot{MarketID: ip(marketID), StartedAt: tp(started), FinishedAt: tp(done)}
}

func ended(marketID int64, started time.Time, reason string) domain.VisitSnapshot {
	return domain.VisitSnapshot{MarketID: ip(marketID), StartedAt: tp(started), EndReason: reason}
}

func TestBestPerMarket_StatusPriorityOverRecency(t *testing.T) {
	// Pending at 10:00, Finished at 09:00, Ended at 11:00: Finished wins
	// even though it is the oldest.
	rows := []domain.VisitSnapshot{
		pending(7, at(10, 0)),
		finished(7, at(8, 0), at(9, 0)),
		ended(7, at(11, 0), "store closed"),
	}

	out := BestPerMarket(rows)
	require.Len(t, out, 1)
	assert.Equal(t, domain.VisitFinished, out[0].Status())
	assert.Equal(t, at(9, 0), *out[0].FinishedAt)
}

func TestBestPerMarket_LatestWinsWithinTier(t *testing.T) {
	rows := []domain.VisitSnapshot{
		pending(7, at(8, 0)),
		pending(7, at(9, 30)),
	}

	out := BestPerMarket(rows)
	require.Len(t, out, 1)
	assert.Equal(t, at(9, 30), *out[0].StartedAt)
}

func TestBestPerMarket_EndedBeatsPending(t *testing.T) {
	rows := []domain.VisitSnapshot{
		pending(7, at(12, 0)),
		ended(7, at(9, 0), "no stock"),
	}

	out := BestPerMarket(rows)
	require.Len(t, out, 1)
	assert.Equal(t, domain.VisitEnded, out[0].Status())
}

func TestBestPerMarket_ArabicEndReasonCountsAsEnded(t *testing.T) {
	row := domain.VisitSnapshot{MarketID: ip(1), StartedAt: tp(at(9, 0)), EndReasonAr: "مغلق"}
	assert.Equal(t, domain.VisitEnded, row.Status())
}

func TestBestPerMarket_TieLastEncounteredWins(t *testing.T) {
	first := finished(7, at(8, 0), at(10, 0))
	first.ID = 1
	second := finished(7, at(8, 30), at(10, 0))
	second.ID = 2

	out := BestPerMarket([]domain.VisitSnapshot{first, second})
	require.Len(t, out, 1)
	assert.EqualValues(t, 2, out[0].ID)
}

func TestBestPerMarket_OneRecordPerMarket(t *testing.T) {
	rows := []domain.VisitSnapshot{
		finished(1, at(9, 0), at(10, 0)),
		pending(2, at(9, 0)),
		pending(1, at(11, 0)),
		ended(3, at(9, 0), "closed"),
		finished(2, at(10, 0), at(11, 0)),
	}

	out := BestPerMarket(rows)
	require.Len(t, out, 3)

	// Output follows first appearance of each market.
	assert.EqualValues(t, 1, *out[0].MarketID)
	assert.EqualValues(t, 2, *out[1].MarketID)
	assert.EqualValues(t, 3, *out[2].MarketID)

	assert.Equal(t, domain.VisitFinished, out[0].Status())
	assert.Equal(t, domain.VisitFinished, out[1].Status())
	assert.Equal(t, domain.VisitEnded, out[2].Status())
}

func TestBestPerMarket_CompositeKeyFallback(t *testing.T) {
	// Rows without a market id group by store+branch+city+region.
	a := domain.VisitSnapshot{Store: "Carrefour", Branch: "Mall", City: "Riyadh", Region: "Central", StartedAt: tp(at(8, 0))}
	b := domain.VisitSnapshot{Store: "Carrefour", Branch: "Mall", City: "Riyadh", Region: "Central", StartedAt: tp(at(9, 0))}
	c := domain.VisitSnapshot{Store: "Carrefour", Branch: "Gate", City: "Riyadh", Region: "Central", StartedAt: tp(at(9, 0))}

	out := BestPerMarket([]domain.VisitSnapshot{a, b, c})
	require.Len(t, out, 2)
	assert.Equal(t, at(9, 0), *out[0].StartedAt)
}

func TestBestPerMarket_FinishedAtPreferredForRanking(t *testing.T) {
	// finished_at decides recency; started_at is only the fallback.
	early := finished(7, at(6, 0), at(12, 0))
	late := finished(7, at(10, 0), at(11, 0))

	out := BestPerMarket([]domain.VisitSnapshot{late, early})
	require.Len(t, out, 1)
	assert.Equal(t, at(12, 0), *out[0].FinishedAt)
}
