package pdf

import (
	"os"
	"path/filepath"
)

// Logical asset names used by the document layouts
const (
	AssetLogo         = "logo.png"
	AssetFooterLogo   = "footerlogo.png"
	AssetHeaderBanner = "header_banner.png"
)

// AssetResolver resolves a logical branding asset to its bytes. Absence is
// not an error; the layouts fall back to drawn substitutes.
type AssetResolver interface {
	Resolve(logicalName string) ([]byte, bool)
}

// DirResolver probes an ordered list of directories and returns the first
// existing file for a logical name.
type DirResolver struct {
	Dirs []string
}

// DefaultResolver probes the historical static image locations
func DefaultResolver() DirResolver {
	return DirResolver{Dirs: []string{
		filepath.Join("static", "images"),
		filepath.Join("staticfiles", "images"),
		filepath.Join("media", "images"),
		filepath.Join("assets", "images"),
	}}
}

func (r DirResolver) Resolve(logicalName string) ([]byte, bool) {
	for _, dir := range r.Dirs {
		b, err := os.ReadFile(filepath.Join(dir, logicalName))
		if err == nil {
			return b, true
		}
	}
	return nil, false
}

// NoAssets is a resolver with no assets, forcing every fallback path
type NoAssets struct{}

func (NoAssets) Resolve(string) ([]byte, bool) { return nil, false }
