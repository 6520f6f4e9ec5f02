package mailer

import (
	"testing"
	"time"

	"fieldops/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(h, m int) *time.Time {
	t := time.Date(2026, 3, 9, h, m, 0, 0, time.UTC)
	return &t
}

func TestBuildDigest_DedupesAndFormatsDurations(t *testing.T) {
	mkt := int64(5)
	snapshots := []domain.VisitSnapshot{
		// Same market twice: the finished row must win over the pending one.
		{UserID: 7, MarketID: &mkt, Store: "Carrefour", Branch: "Mall", StartedAt: ts(9, 0)},
		{UserID: 7, MarketID: &mkt, Store: "Carrefour", Branch: "Mall", StartedAt: ts(9, 0), FinishedAt: ts(10, 30)},
	}
	presence := []domain.PresenceRecord{
		{UserID: 7, Day: "2026-03-09", PresenceSeconds: 7200},
	}
	users := []domain.User{{ID: 7, Name: "Aisha"}}

	d := BuildDigest("Acme Retail", "2026-03-09", snapshots, presence, users)

	require.Len(t, d.Users, 1)
	u := d.Users[0]
	assert.Equal(t, "Aisha", u.Name)
	require.Len(t, u.Rows, 1)
	assert.Equal(t, "Carrefour / Mall", u.Rows[0].Market)
	assert.Equal(t, "finished", u.Rows[0].Status)
	assert.Equal(t, "1h 30m", u.Rows[0].Duration)

	// 2h presence, 1h30m in store, 30m transit
	assert.Equal(t, "2h 0m", u.Presence)
	assert.Equal(t, "1h 30m", u.Visit)
	assert.Equal(t, "0h 30m", u.Transit)
}

func TestDigest_RendersHTMLTable(t *testing.T) {
	d := Digest{
		ClientName: "Acme Retail",
		Day:        "2026-03-09",
		Users: []DigestUser{{
			Name:     "Aisha",
			Rows:     []DigestRow{{Market: "Carrefour", Status: "finished", Duration: "1h 30m"}},
			Presence: "2h 0m", Visit: "1h 30m", Transit: "0h 30m",
		}},
	}

	html, err := d.Render()
	require.NoError(t, err)
	assert.Contains(t, html, "Acme Retail field report for 2026-03-09")
	assert.Contains(t, html, "<td>Carrefour</td>")
	assert.Contains(t, html, "<td>1h 30m</td>")
}

func TestDigest_RendersEmptyDay(t *testing.T) {
	html, err := Digest{ClientName: "Acme", Day: "2026-03-09"}.Render()
	require.NoError(t, err)
	assert.Contains(t, html, "No visits were recorded.")
}

func TestMarketLabel_Fallbacks(t *testing.T) {
	mkt := int64(9)
	assert.Equal(t, "Market #9", marketLabel(domain.VisitSnapshot{MarketID: &mkt}))
	assert.Equal(t, "Lulu", marketLabel(domain.VisitSnapshot{Store: "Lulu"}))
	assert.Equal(t, "Unknown market", marketLabel(domain.VisitSnapshot{}))
}
