package app

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/decker502/viewcam/pkg/embedded"
)

func TestLoadViewConfig(t *testing.T) {
	embedded.Init(fstest.MapFS{
		"data/view.yaml": {Data: []byte("window: {width: 640, height: 480, title: embedded}\n")},
	})

	cfg, err := loadViewConfig("")
	if err != nil {
		t.Fatalf("loadViewConfig(embedded) failed: %v", err)
	}
	if cfg.Window.Title != "embedded" {
		t.Errorf("Window.Title = %q, want embedded", cfg.Window.Title)
	}

	path := filepath.Join(t.TempDir(), "view.yaml")
	if err := os.WriteFile(path, []byte("window: {title: file}\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err = loadViewConfig(path)
	if err != nil {
		t.Fatalf("loadViewConfig(file) failed: %v", err)
	}
	if cfg.Window.Title != "file" {
		t.Errorf("Window.Title = %q, want file", cfg.Window.Title)
	}

	if _, err := loadViewConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing config file should fail")
	}
}

func TestStartWatcher(t *testing.T) {
	// 没有磁盘文件时不启动监视
	w, err := startWatcher("", "")
	if err != nil || w != nil {
		t.Fatalf("startWatcher() = %v, %v; want nil, nil", w, err)
	}

	path := filepath.Join(t.TempDir(), "view.yaml")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}
	w, err = startWatcher(path, "")
	if err != nil {
		t.Fatalf("startWatcher() failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close() failed: %v", err)
	}
}
