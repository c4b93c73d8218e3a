package tui

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/idilsaglam/shelf/internal/gallery"
)

var errRemote = errors.New("remote image")

// renderPreview decodes a local image and draws it with half-block cells,
// two pixels per cell, fitted inside cols x rows while keeping the aspect.
func renderPreview(src string, cols, rows int) (string, error) {
	if gallery.IsRemote(src) {
		return "", errRemote
	}
	if cols <= 0 || rows <= 0 {
		return "", fmt.Errorf("preview size %dx%d", cols, rows)
	}
	f, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", src, err)
	}

	b := img.Bounds()
	w, h := fit(b.Dx(), b.Dy(), cols, rows*2)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)

	var sb strings.Builder
	for y := 0; y < h; y += 2 {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < w; x++ {
			st := lipgloss.NewStyle().Foreground(hex(dst, x, y))
			if y+1 < h {
				st = st.Background(hex(dst, x, y+1))
			}
			sb.WriteString(st.Render("▀"))
		}
	}
	return sb.String(), nil
}

// fit scales w x h to fit inside maxW x maxH, never below 1x1.
func fit(w, h, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 {
		return 1, 1
	}
	sw := float64(maxW) / float64(w)
	sh := float64(maxH) / float64(h)
	s := sw
	if sh < s {
		s = sh
	}
	nw, nh := int(float64(w)*s), int(float64(h)*s)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	return nw, nh
}

func hex(img *image.RGBA, x, y int) lipgloss.Color {
	c := img.RGBAAt(x, y)
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

// previewCache memoizes rendered previews per source and size.
type previewCache struct {
	render  func(src string, cols, rows int) (string, error)
	entries map[string]string
}

func newPreviewCache() *previewCache {
	return &previewCache{render: renderPreview, entries: map[string]string{}}
}

// get returns the preview, or the source itself when it cannot be drawn.
func (c *previewCache) get(src string, cols, rows int) string {
	k := fmt.Sprintf("%s@%dx%d", src, cols, rows)
	if s, ok := c.entries[k]; ok {
		return s
	}
	s, err := c.render(src, cols, rows)
	if err != nil {
		s = src
	}
	c.entries[k] = s
	return s
}
