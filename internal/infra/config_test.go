package infra

import "testing"

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("IMAGE_PROVIDER", "")
	t.Setenv("GEMINI_MODEL", "")
	t.Setenv("HISTORY_KEY", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.ImageProvider != "gemini" {
		t.Fatalf("ImageProvider mismatch: got %q want %q", cfg.ImageProvider, "gemini")
	}
	if cfg.GeminiModel != "gemini-2.5-flash-image-preview" {
		t.Fatalf("GeminiModel mismatch: got %q", cfg.GeminiModel)
	}
	if cfg.HistoryKey != "generationHistory" {
		t.Fatalf("HistoryKey mismatch: got %q", cfg.HistoryKey)
	}
	if cfg.SourceThumbMax != 800 || cfg.SourceThumbQuality != 80 {
		t.Fatalf("source thumbnail defaults mismatch: %d q%d", cfg.SourceThumbMax, cfg.SourceThumbQuality)
	}
	if cfg.ResultThumbMax != 400 || cfg.ResultThumbQuality != 70 {
		t.Fatalf("result thumbnail defaults mismatch: %d q%d", cfg.ResultThumbMax, cfg.ResultThumbQuality)
	}
}

func TestLoadConfigRejectsUnknownProvider(t *testing.T) {
	t.Setenv("IMAGE_PROVIDER", "dalle")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for unsupported provider")
	}
}

func TestLoadConfigRejectsNonPositiveBounds(t *testing.T) {
	t.Setenv("RESULT_THUMB_MAX", "0")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for zero thumbnail bound")
	}
}
