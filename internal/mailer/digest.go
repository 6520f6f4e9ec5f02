package mailer

import (
	"bytes"
	"fmt"
	"html/template"

	"fieldops/internal/domain"
	"fieldops/internal/modules/visits"
	"fieldops/internal/pkg/timefmt"
)

// DigestRow is one deduplicated visit line in the daily email.
type DigestRow struct {
	Market   string
	Status   string
	Duration string
}

// DigestUser groups a field user's rows with their day totals.
type DigestUser struct {
	Name     string
	Rows     []DigestRow
	Presence string
	Visit    string
	Transit  string
}

// Digest is the rendered model of one tenant's daily report.
type Digest struct {
	ClientName string
	Day        string
	Users      []DigestUser
}

var digestTmpl = template.Must(template.New("digest").Parse(`<html>
<body style="font-family:Arial,sans-serif;color:#222">
<h2>{{.ClientName}} field report for {{.Day}}</h2>
{{if not .Users}}<p>No visits were recorded.</p>{{end}}
{{range .Users}}
<h3>{{.Name}}</h3>
<p>Presence {{.Presence}} &middot; In-store {{.Visit}} &middot; Transit {{.Transit}}</p>
<table border="1" cellpadding="6" cellspacing="0" style="border-collapse:collapse">
<tr><th align="left">Market</th><th align="left">Status</th><th align="left">Duration</th></tr>
{{range .Rows}}<tr><td>{{.Market}}</td><td>{{.Status}}</td><td>{{.Duration}}</td></tr>
{{end}}</table>
{{end}}
</body>
</html>`))

// BuildDigest collapses the day's snapshots per market, computes per-user
// totals and shapes them for the template. Durations use the word style
// since the email has no room for ambiguity about units.
func BuildDigest(clientName, day string, snapshots []domain.VisitSnapshot, presence []domain.PresenceRecord, users []domain.User) Digest {
	deduped := visits.BestPerMarket(snapshots)
	metrics := visits.ComputeUserMetrics(deduped, presence)

	names := make(map[int64]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}

	rowsByUser := make(map[int64][]DigestRow)
	for _, v := range deduped {
		rowsByUser[v.UserID] = append(rowsByUser[v.UserID], DigestRow{
			Market:   marketLabel(v),
			Status:   string(v.Status()),
			Duration: timefmt.DiffWords(v.StartedAt, v.FinishedAt),
		})
	}

	d := Digest{ClientName: clientName, Day: day}
	for _, m := range metrics {
		name := names[m.UserID]
		if name == "" {
			name = fmt.Sprintf("User #%d", m.UserID)
		}
		d.Users = append(d.Users, DigestUser{
			Name:     name,
			Rows:     rowsByUser[m.UserID],
			Presence: timefmt.WordSeconds(m.PresenceSeconds),
			Visit:    timefmt.WordSeconds(m.VisitSeconds),
			Transit:  timefmt.WordSeconds(m.TransitSeconds),
		})
	}
	return d
}

// Render produces the HTML body for the email.
func (d Digest) Render() (string, error) {
	var buf bytes.Buffer
	if err := digestTmpl.Execute(&buf, d); err != nil {
		return "", fmt.Errorf("rendering digest: %w", err)
	}
	return buf.String(), nil
}

func marketLabel(v domain.VisitSnapshot) string {
	if v.Store == "" {
		if v.MarketID != nil {
			return fmt.Sprintf("Market #%d", *v.MarketID)
		}
		return "Unknown market"
	}
	if v.Branch != "" {
		return v.Store + " / " + v.Branch
	}
	return v.Store
}
