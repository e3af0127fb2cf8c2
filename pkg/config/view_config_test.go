package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/decker502/viewcam/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
	"gopkg.in/yaml.v3"
)

// TestDefaultViewConfig 测试默认配置
func TestDefaultViewConfig(t *testing.T) {
	cfg := DefaultViewConfig()

	if w, h := cfg.WindowSize(); w != DefaultWindowWidth || h != DefaultWindowHeight {
		t.Errorf("WindowSize() = %dx%d, want %dx%d", w, h, DefaultWindowWidth, DefaultWindowHeight)
	}
	if cfg.Camera.Zoom != 1.0 {
		t.Errorf("Camera.Zoom = %v, want 1.0", cfg.Camera.Zoom)
	}
	if cfg.ClickMove.Easing != types.EasingQuadraticInOut || cfg.ClickMove.Steps != DefaultClickMoveSteps {
		t.Errorf("ClickMove = %+v", cfg.ClickMove)
	}
	if cfg.Pan.Easing != types.EasingQuarticOut || cfg.Pan.Steps != DefaultPanSteps || cfg.Pan.Distance != DefaultPanDistance {
		t.Errorf("Pan = %+v", cfg.Pan)
	}
	if !cfg.Bindings.PanLeft.Contains(ebiten.KeyArrowLeft) || !cfg.Bindings.PanLeft.Contains(ebiten.KeyA) {
		t.Errorf("PanLeft bindings = %v", cfg.Bindings.PanLeft)
	}
	if err := validateViewConfig(cfg); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

// TestParseViewConfig 测试解析配置
func TestParseViewConfig(t *testing.T) {
	data := []byte(`
window:
  width: 800
  height: 600
  title: 测试窗口
camera:
  start: {x: 100, y: -50}
  zoom: 2
  rotation: 0.5
clickMove:
  easing: BounceOut
  steps: 20
pan:
  easing: linear
  steps: 8
  distance: 12.5
zoomFactor: 1.1
bindings:
  panLeft: [j]
  bookmarks: [F1, F2]
tour:
  script: tours/demo.tengo
  autostart: true
`)

	cfg, err := ParseViewConfig(data)
	if err != nil {
		t.Fatalf("ParseViewConfig failed: %v", err)
	}

	if cfg.Window.Width != 800 || cfg.Window.Height != 600 || cfg.Window.Title != "测试窗口" {
		t.Errorf("Window = %+v", cfg.Window)
	}
	if cfg.Camera.Start != types.Vec2(100, -50) || cfg.Camera.Zoom != 2 || cfg.Camera.Rotation != 0.5 {
		t.Errorf("Camera = %+v", cfg.Camera)
	}
	if cfg.ClickMove.Easing != types.EasingBounceOut || cfg.ClickMove.Steps != 20 {
		t.Errorf("ClickMove = %+v", cfg.ClickMove)
	}
	if cfg.Pan.Easing != types.EasingLinear || cfg.Pan.Steps != 8 || cfg.Pan.Distance != 12.5 {
		t.Errorf("Pan = %+v", cfg.Pan)
	}
	if cfg.ZoomFactor != 1.1 {
		t.Errorf("ZoomFactor = %v", cfg.ZoomFactor)
	}
	if len(cfg.Bindings.PanLeft) != 1 || cfg.Bindings.PanLeft[0] != ebiten.KeyJ {
		t.Errorf("PanLeft = %v, want [J]", cfg.Bindings.PanLeft)
	}
	// 未配置的动作使用默认按键
	if !cfg.Bindings.PanRight.Contains(ebiten.KeyArrowRight) {
		t.Errorf("PanRight should keep defaults, got %v", cfg.Bindings.PanRight)
	}
	if cfg.BookmarkSlot(ebiten.KeyF2) != 1 || cfg.BookmarkSlot(ebiten.KeyDigit1) != -1 {
		t.Errorf("bookmark slots not taken from config: %v", cfg.Bindings.Bookmarks)
	}
	if cfg.Tour.Script != "tours/demo.tengo" || !cfg.Tour.Autostart {
		t.Errorf("Tour = %+v", cfg.Tour)
	}
	// 未配置的书签移动使用默认值
	if cfg.Bookmark.Steps != DefaultBookmarkSteps {
		t.Errorf("Bookmark.Steps = %d, want %d", cfg.Bookmark.Steps, DefaultBookmarkSteps)
	}
}

// TestParseViewConfigErrors 测试非法配置
func TestParseViewConfigErrors(t *testing.T) {
	tests := []struct {
		name        string
		data        string
		wantInvalid bool   // 是否是校验错误（ErrInvalidConfig）
		wantSubstr  string // 错误信息应包含的内容
	}{
		{"负窗口尺寸", "window: {width: -1}", true, "window size"},
		{"负缩放", "camera: {zoom: -2}", true, "camera.zoom"},
		{"负步数", "pan: {steps: -3}", true, "pan.steps"},
		{"缩放倍率不大于1", "zoomFactor: 0.9", true, "zoomFactor"},
		{"书签键过多", "bindings: {bookmarks: [F1, F2, F3, F4, F5, F6, F7, F8, F9, F10]}", true, "bookmark keys"},
		{"未知缓动", "clickMove: {easing: wobble}", false, "wobble"},
		{"未知按键", "bindings: {reset: [NoSuchKey]}", false, "NoSuchKey"},
		{"YAML语法错误", "window: [", false, "parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseViewConfig([]byte(tt.data))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if errors.Is(err, ErrInvalidConfig) != tt.wantInvalid {
				t.Errorf("errors.Is(err, ErrInvalidConfig) = %v, want %v (err: %v)", !tt.wantInvalid, tt.wantInvalid, err)
			}
			if !strings.Contains(err.Error(), tt.wantSubstr) {
				t.Errorf("error %q should mention %q", err, tt.wantSubstr)
			}
		})
	}
}

// TestLoadViewConfig 测试从文件加载
func TestLoadViewConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "view.yaml")
	if err := os.WriteFile(path, []byte("rotateStep: 0.1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadViewConfig(path)
	if err != nil {
		t.Fatalf("LoadViewConfig failed: %v", err)
	}
	if cfg.RotateStep != 0.1 {
		t.Errorf("RotateStep = %v, want 0.1", cfg.RotateStep)
	}

	if _, err := LoadViewConfig(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file should wrap os.ErrNotExist, got %v", err)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("zoomFactor: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = LoadViewConfig(bad)
	if !errors.Is(err, ErrInvalidConfig) || !strings.Contains(err.Error(), bad) {
		t.Errorf("invalid file error should wrap ErrInvalidConfig and name the file, got %v", err)
	}
}

// TestKeyListYAML 测试按键列表的 YAML 编解码
func TestKeyListYAML(t *testing.T) {
	in := KeyList{ebiten.KeyArrowUp, ebiten.KeyW, ebiten.KeyDigit3}

	out, err := yaml.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var back KeyList
	if err := yaml.Unmarshal(out, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if len(back) != len(in) {
		t.Fatalf("round trip = %v, want %v", back, in)
	}
	for i := range in {
		if back[i] != in[i] {
			t.Errorf("key %d = %v, want %v", i, back[i], in[i])
		}
	}
}
