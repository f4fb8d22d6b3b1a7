package zip

import (
	"archive/zip"
	"bytes"
	"fmt"
)

// Asset is one file to be bundled into a download archive.
type Asset struct {
	Filename string
	Data     []byte
}

// Archive bundles the assets into a zip in the given order. Empty assets
// are skipped; duplicate filenames get a numeric suffix so every entry
// survives extraction.
func Archive(assets []Asset) ([]byte, error) {
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	seen := map[string]int{}
	for _, asset := range assets {
		if len(asset.Data) == 0 || asset.Filename == "" {
			continue
		}
		name := asset.Filename
		if n := seen[name]; n > 0 {
			name = fmt.Sprintf("%d-%s", n, name)
		}
		seen[asset.Filename]++

		w, err := zw.Create(name)
		if err != nil {
			return nil, fmt.Errorf("zip: create %q: %w", name, err)
		}
		if _, err := w.Write(asset.Data); err != nil {
			return nil, fmt.Errorf("zip: write %q: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("zip: close: %w", err)
	}
	return buf.Bytes(), nil
}
