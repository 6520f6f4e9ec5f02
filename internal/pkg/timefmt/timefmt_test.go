package timefmt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func tp(t time.Time) *time.Time { return &t }

func TestColonSeconds(t *testing.T) {
	assert.Equal(t, "01:01:01", ColonSeconds(3661))
	assert.Equal(t, "02:05", ColonSeconds(125))
	assert.Equal(t, "00:00", ColonSeconds(0))
	assert.Equal(t, "00:00", ColonSeconds(-5))
	assert.Equal(t, "59:59", ColonSeconds(3599))
	assert.Equal(t, "01:00:00", ColonSeconds(3600))
}

func TestWordSeconds(t *testing.T) {
	assert.Equal(t, "1h 1m", WordSeconds(3661))
	assert.Equal(t, "0h 2m", WordSeconds(125))
	assert.Equal(t, "0h 0m", WordSeconds(0))
	assert.Equal(t, "0h 0m", WordSeconds(-1))
}

func TestDiffColon(t *testing.T) {
	start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, "-", DiffColon(nil, tp(start)))
	assert.Equal(t, "-", DiffColon(tp(start), nil))
	assert.Equal(t, "-", DiffColon(nil, nil))

	// end before start renders as "-" in colon style
	assert.Equal(t, "-", DiffColon(tp(start), tp(start.Add(-time.Minute))))

	assert.Equal(t, "01:01:01", DiffColon(tp(start), tp(start.Add(3661*time.Second))))
	assert.Equal(t, "00:30", DiffColon(tp(start), tp(start.Add(30*time.Second))))
}

func TestDiffWords(t *testing.T) {
	start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, "-", DiffWords(nil, tp(start)))
	assert.Equal(t, "-", DiffWords(tp(start), nil))

	// end before start clamps to zero in word style
	assert.Equal(t, "0h 0m", DiffWords(tp(start), tp(start.Add(-time.Hour))))

	assert.Equal(t, "1h 1m", DiffWords(tp(start), tp(start.Add(3661*time.Second))))
}

func TestDiffSeconds(t *testing.T) {
	start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	assert.EqualValues(t, 0, DiffSeconds(nil, tp(start)))
	assert.EqualValues(t, 0, DiffSeconds(tp(start), tp(start.Add(-time.Second))))
	assert.EqualValues(t, 3661, DiffSeconds(tp(start), tp(start.Add(3661*time.Second))))
}
