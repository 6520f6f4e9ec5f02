package visits

import (
	"testing"
	"time"

	"fieldops/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeUserMetrics_TransitIsPresenceMinusVisit(t *testing.T) {
	start := at(9, 0)
	snapshots := []domain.VisitSnapshot{
		{UserID: 5, MarketID: ip(1), StartedAt: tp(start), FinishedAt: tp(start.Add(3000 * time.Second))},
	}
	presence := []domain.PresenceRecord{
		{UserID: 5, Day: "2025-03-10", PresenceSeconds: 5000},
	}

	out := ComputeUserMetrics(snapshots, presence)
	require.Len(t, out, 1)
	assert.EqualValues(t, 5000, out[0].PresenceSeconds)
	assert.EqualValues(t, 3000, out[0].VisitSeconds)
	assert.EqualValues(t, 2000, out[0].TransitSeconds)
}

func TestComputeUserMetrics_TransitClampsAtZero(t *testing.T) {
	start := at(9, 0)
	snapshots := []domain.VisitSnapshot{
		{UserID: 5, MarketID: ip(1), StartedAt: tp(start), FinishedAt: tp(start.Add(4000 * time.Second))},
	}
	presence := []domain.PresenceRecord{
		{UserID: 5, Day: "2025-03-10", PresenceSeconds: 3000},
	}

	out := ComputeUserMetrics(snapshots, presence)
	require.Len(t, out, 1)
	assert.EqualValues(t, 0, out[0].TransitSeconds)
}

func TestComputeUserMetrics_PresenceMaxPerUserDayAndClamp(t *testing.T) {
	presence := []domain.PresenceRecord{
		{UserID: 5, Day: "2025-03-10", PresenceSeconds: 4000},
		{UserID: 5, Day: "2025-03-10", PresenceSeconds: 6000},   // duplicate row, max wins
		{UserID: 5, Day: "2025-03-11", PresenceSeconds: 100000}, // clamped to a day
		{UserID: 5, Day: "2025-03-12", PresenceSeconds: -50},    // clamped to zero
	}

	out := ComputeUserMetrics(nil, presence)
	require.Len(t, out, 1)
	assert.EqualValues(t, 6000+86400+0, out[0].PresenceSeconds)
}

func TestComputeUserMetrics_OnlyFinishedVisitsCount(t *testing.T) {
	start := at(9, 0)
	snapshots := []domain.VisitSnapshot{
		{UserID: 5, MarketID: ip(1), StartedAt: tp(start), FinishedAt: tp(start.Add(time.Hour))},
		{UserID: 5, MarketID: ip(2), StartedAt: tp(start), FinishedAt: tp(start.Add(time.Hour)), EndReason: "closed"}, // Ended
		{UserID: 5, MarketID: ip(3), StartedAt: tp(start)},                                                           // Pending
	}

	out := ComputeUserMetrics(snapshots, nil)
	require.Len(t, out, 1)
	assert.EqualValues(t, 3600, out[0].VisitSeconds)
}
