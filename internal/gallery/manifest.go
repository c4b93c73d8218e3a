package gallery

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/idilsaglam/shelf/internal/model"
)

// Manifest describes one gallery on disk.
//
//	{"name": "Holiday", "images": [{"src": "beach.jpg", "title": "Beach", "description": "..."}]}
type Manifest struct {
	Name   string               `json:"name"`
	Images []model.GalleryImage `json:"images"`
}

// LoadManifest reads a manifest. Relative image paths are resolved
// against the manifest's directory; URLs are kept as they are. A missing
// name defaults to the file name without extension.
func LoadManifest(path string) (Manifest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(b, &m); err != nil {
		return Manifest{}, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	if len(m.Images) == 0 {
		return Manifest{}, fmt.Errorf("manifest %s: %w", path, ErrNoGallery)
	}
	if strings.TrimSpace(m.Name) == "" {
		m.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	dir := filepath.Dir(path)
	for i := range m.Images {
		src := m.Images[i].Src
		if src == "" || IsRemote(src) || filepath.IsAbs(src) {
			continue
		}
		m.Images[i].Src = filepath.Join(dir, src)
	}
	return m, nil
}

// IsRemote reports whether src is an http(s) URL rather than a file path.
func IsRemote(src string) bool {
	u, err := url.Parse(src)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}
