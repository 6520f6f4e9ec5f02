package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/image/draw"
	"golang.org/x/image/webp"
)

const (
	proxyMaxBody   = 25 * 1024 * 1024
	proxyMaxEdge   = 1600 // longest output dimension in pixels
	proxyQuality   = 82
	proxyUserAgent = "fieldops-image-proxy/1.0"
)

// Proxy fetches remote images on behalf of browser clients that cannot load
// them directly. Targets are restricted to an allow list of hosts.
type Proxy struct {
	allowed map[string]bool
	client  *http.Client
}

func NewProxy(allowedHosts []string) *Proxy {
	allowed := make(map[string]bool, len(allowedHosts))
	for _, h := range allowedHosts {
		allowed[strings.ToLower(h)] = true
	}
	return &Proxy{
		allowed: allowed,
		client:  &http.Client{Timeout: 20 * time.Second},
	}
}

func (p *Proxy) hostAllowed(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return ErrHostNotAllowed
	}
	if !p.allowed[strings.ToLower(u.Hostname())] {
		return ErrHostNotAllowed
	}
	return nil
}

// Fetch downloads, downscales and re-encodes the image as JPEG. Re-encoding
// strips whatever the origin embedded and gives clients one predictable
// format regardless of source.
func (p *Proxy) Fetch(ctx context.Context, rawURL string) ([]byte, string, error) {
	if err := p.hostAllowed(rawURL); err != nil {
		return nil, "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to build proxy request: %w", err)
	}
	req.Header.Set("User-Agent", proxyUserAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("origin returned status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, proxyMaxBody))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image body: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		if decoded, decodeErr := webp.Decode(bytes.NewReader(raw)); decodeErr == nil {
			img = decoded
		} else {
			return nil, "", fmt.Errorf("unable to decode image: %w", err)
		}
	}

	img = downscale(img, proxyMaxEdge)

	var out bytes.Buffer
	if err := jpeg.Encode(&out, img, &jpeg.Options{Quality: proxyQuality}); err != nil {
		return nil, "", fmt.Errorf("failed to encode image: %w", err)
	}
	return out.Bytes(), "image/jpeg", nil
}

// downscale shrinks img so its longest edge is at most maxEdge, preserving
// aspect ratio. Images already within bounds pass through untouched.
func downscale(img image.Image, maxEdge int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxEdge && h <= maxEdge {
		return img
	}
	var nw, nh int
	if w >= h {
		nw = maxEdge
		nh = h * maxEdge / w
	} else {
		nh = maxEdge
		nw = w * maxEdge / h
	}
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
