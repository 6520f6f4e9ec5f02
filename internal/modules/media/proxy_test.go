package media

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHostAllowed(t *testing.T) {
	p := NewProxy([]string{"cdn.example.com", "IMAGES.partner.net"})

	assert.NoError(t, p.hostAllowed("https://cdn.example.com/a.jpg"))
	assert.NoError(t, p.hostAllowed("http://images.PARTNER.net/b.png"))
	assert.ErrorIs(t, p.hostAllowed("https://evil.example.org/a.jpg"), ErrHostNotAllowed)
	assert.ErrorIs(t, p.hostAllowed("ftp://cdn.example.com/a.jpg"), ErrHostNotAllowed)
	assert.ErrorIs(t, p.hostAllowed("://not-a-url"), ErrHostNotAllowed)
}

func TestDownscale_KeepsSmallImages(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 800, 600))
	out := downscale(src, 1600)
	assert.Equal(t, src.Bounds(), out.Bounds())
}

func TestDownscale_LandscapeBoundsLongEdge(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3200, 1200))
	out := downscale(src, 1600)
	assert.Equal(t, 1600, out.Bounds().Dx())
	assert.Equal(t, 600, out.Bounds().Dy())
}

func TestDownscale_PortraitBoundsLongEdge(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1000, 4000))
	out := downscale(src, 1600)
	assert.Equal(t, 400, out.Bounds().Dx())
	assert.Equal(t, 1600, out.Bounds().Dy())
}
