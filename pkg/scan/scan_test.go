package scan

import (
	"os"
	"path/filepath"
	"testing"
)

func TestScan(t *testing.T) {
	root := t.TempDir()

	files := map[string]string{
		"scene.pkg":              "pkg-bytes",
		"materials/bg.tex":       "tex-bytes",
		"materials/BG2.TEX":      "tex-bytes-upper",
		"project.json":           "{}",
		"preview/screenshot.png": "png",
	}
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	assets, err := Scan(root)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}

	if len(assets) != 3 {
		t.Fatalf("expected 3 assets, got %d", len(assets))
	}

	// Sorted by path: materials/BG2.TEX, materials/bg.tex, scene.pkg.
	if assets[0].Kind != KindTEX || filepath.Base(assets[0].Path) != "BG2.TEX" {
		t.Errorf("asset 0: %+v", assets[0])
	}
	if assets[1].Kind != KindTEX || filepath.Base(assets[1].Path) != "bg.tex" {
		t.Errorf("asset 1: %+v", assets[1])
	}
	if assets[2].Kind != KindPKG || filepath.Base(assets[2].Path) != "scene.pkg" {
		t.Errorf("asset 2: %+v", assets[2])
	}

	if assets[2].Size != int64(len("pkg-bytes")) {
		t.Errorf("size: expected %d, got %d", len("pkg-bytes"), assets[2].Size)
	}
}

func TestScanEmpty(t *testing.T) {
	assets, err := Scan(t.TempDir())
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(assets) != 0 {
		t.Errorf("expected no assets, got %d", len(assets))
	}
}

func TestScanMissingRoot(t *testing.T) {
	if _, err := Scan(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing root")
	}
}
