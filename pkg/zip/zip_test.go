package zip

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"
)

func readEntries(t *testing.T, data []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	out := map[string]string{}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %q: %v", f.Name, err)
		}
		body, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read %q: %v", f.Name, err)
		}
		out[f.Name] = string(body)
	}
	return out
}

func TestArchiveSkipsEmptyAssets(t *testing.T) {
	data, err := Archive([]Asset{
		{Filename: "cinematic-high-angle.jpeg", Data: []byte("a")},
		{Filename: "cinematic-low-angle.jpeg"},
		{Filename: "", Data: []byte("orphan")},
	})
	if err != nil {
		t.Fatalf("Archive error: %v", err)
	}
	entries := readEntries(t, data)
	if len(entries) != 1 {
		t.Fatalf("entry count: got %d want 1", len(entries))
	}
	if entries["cinematic-high-angle.jpeg"] != "a" {
		t.Fatalf("entry payload mismatch: %v", entries)
	}
}

func TestArchiveDisambiguatesDuplicates(t *testing.T) {
	data, err := Archive([]Asset{
		{Filename: "shot.jpeg", Data: []byte("one")},
		{Filename: "shot.jpeg", Data: []byte("two")},
	})
	if err != nil {
		t.Fatalf("Archive error: %v", err)
	}
	entries := readEntries(t, data)
	if entries["shot.jpeg"] != "one" || entries["1-shot.jpeg"] != "two" {
		t.Fatalf("duplicate handling: %v", entries)
	}
}
