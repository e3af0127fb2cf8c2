package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/decker502/viewcam/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig 配置内容不合法（字段越界、缺失等）
var ErrInvalidConfig = errors.New("invalid view config")

// ViewConfig 视图配置数据结构
// 定义窗口、镜头初始状态、各类移动的缓动参数和按键绑定
type ViewConfig struct {
	Window    WindowConfig `yaml:"window"`
	Camera    CameraConfig `yaml:"camera"`
	ClickMove MoveConfig   `yaml:"clickMove"` // 鼠标点击移动
	Bookmark  MoveConfig   `yaml:"bookmark"`  // 切换书签时的移动
	Pan       PanConfig    `yaml:"pan"`       // 方向键平移

	RotateStep float64 `yaml:"rotateStep"` // 每帧旋转弧度（按住 Q/E），默认 0.03
	ZoomFactor float64 `yaml:"zoomFactor"` // 每帧缩放倍率（按住 Z/X 或滚轮一格），默认 1.02

	World    WorldConfig `yaml:"world"`
	Tour     TourConfig  `yaml:"tour"`
	Bindings KeyBindings `yaml:"bindings"`
}

// WindowConfig 窗口配置
type WindowConfig struct {
	Width  int    `yaml:"width"`  // 默认 1280
	Height int    `yaml:"height"` // 默认 720
	Title  string `yaml:"title"`  // 默认 "viewcam"
}

// CameraConfig 镜头初始状态
type CameraConfig struct {
	Start    types.Vector2 `yaml:"start"`    // 初始视点（世界坐标），默认 (0, 0)
	Zoom     float64       `yaml:"zoom"`     // 初始缩放，默认 1.0
	Rotation float64       `yaml:"rotation"` // 初始旋转（弧度），默认 0
}

// MoveConfig 一类镜头移动使用的缓动曲线和步数
// Steps 为 0 表示未配置（使用默认值）；需要瞬移时把 easing 设为 Instant
type MoveConfig struct {
	Easing types.EasingType `yaml:"easing"`
	Steps  int              `yaml:"steps"`
}

// PanConfig 方向键平移配置
type PanConfig struct {
	MoveConfig `yaml:",inline"`
	Distance   float64 `yaml:"distance"` // 每帧目标点前进的距离（世界单位），默认 5
}

// WorldConfig 世界内容（程序生成的贴图方块）配置
type WorldConfig struct {
	Tiles    int     `yaml:"tiles"`    // 每边方块数，默认 16
	TileSize float64 `yaml:"tileSize"` // 方块边长（世界单位），默认 64
}

// TourConfig 巡游脚本配置
type TourConfig struct {
	Script    string `yaml:"script"`    // 脚本路径，空表示使用内置脚本
	Autostart bool   `yaml:"autostart"` // 启动时自动播放
}

// 默认值
const (
	DefaultWindowWidth  = 1280
	DefaultWindowHeight = 720
	DefaultWindowTitle  = "viewcam"

	DefaultClickMoveSteps = 15
	DefaultBookmarkSteps  = 30
	DefaultPanSteps       = 15
	DefaultPanDistance    = 5.0

	DefaultRotateStep = 0.03
	DefaultZoomFactor = 1.02

	DefaultWorldTiles    = 16
	DefaultWorldTileSize = 64.0
)

// DefaultViewConfig 返回全部使用默认值的配置
func DefaultViewConfig() *ViewConfig {
	cfg := &ViewConfig{}
	applyViewDefaults(cfg)
	return cfg
}

// LoadViewConfig 从YAML文件加载视图配置
// 参数：
//
//	filepath - 配置文件路径（相对或绝对路径）
//
// 返回：
//
//	*ViewConfig - 已应用默认值并通过校验的配置
//	error - 读取、解析或校验失败时返回；校验失败可用 errors.Is(err, ErrInvalidConfig) 判断
func LoadViewConfig(filepath string) (*ViewConfig, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read view config file %s: %w", filepath, err)
	}

	cfg, err := ParseViewConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath, err)
	}
	return cfg, nil
}

// ParseViewConfig 解析YAML格式的视图配置（内嵌的默认配置也走这里）
func ParseViewConfig(data []byte) (*ViewConfig, error) {
	var cfg ViewConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse view config YAML: %w", err)
	}

	applyViewDefaults(&cfg)

	if err := validateViewConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyViewDefaults 为缺失的可选字段设置默认值
func applyViewDefaults(cfg *ViewConfig) {
	if cfg.Window.Width == 0 {
		cfg.Window.Width = DefaultWindowWidth
	}
	if cfg.Window.Height == 0 {
		cfg.Window.Height = DefaultWindowHeight
	}
	if cfg.Window.Title == "" {
		cfg.Window.Title = DefaultWindowTitle
	}

	if cfg.Camera.Zoom == 0 {
		cfg.Camera.Zoom = 1.0
	}

	applyMoveDefaults(&cfg.ClickMove, types.EasingQuadraticInOut, DefaultClickMoveSteps)
	applyMoveDefaults(&cfg.Bookmark, types.EasingCubicInOut, DefaultBookmarkSteps)
	applyMoveDefaults(&cfg.Pan.MoveConfig, types.EasingQuarticOut, DefaultPanSteps)
	if cfg.Pan.Distance == 0 {
		cfg.Pan.Distance = DefaultPanDistance
	}

	if cfg.RotateStep == 0 {
		cfg.RotateStep = DefaultRotateStep
	}
	if cfg.ZoomFactor == 0 {
		cfg.ZoomFactor = DefaultZoomFactor
	}

	if cfg.World.Tiles == 0 {
		cfg.World.Tiles = DefaultWorldTiles
	}
	if cfg.World.TileSize == 0 {
		cfg.World.TileSize = DefaultWorldTileSize
	}

	cfg.Bindings.applyDefaults()
}

func applyMoveDefaults(m *MoveConfig, easing types.EasingType, steps int) {
	if m.Easing == types.EasingUnknown {
		m.Easing = easing
	}
	if m.Steps == 0 {
		m.Steps = steps
	}
}

// validateViewConfig 验证配置的合法性
func validateViewConfig(cfg *ViewConfig) error {
	if cfg.Window.Width < 0 || cfg.Window.Height < 0 {
		return fmt.Errorf("%w: window size must be positive, got %dx%d", ErrInvalidConfig, cfg.Window.Width, cfg.Window.Height)
	}

	if !isFinite(cfg.Camera.Start.X) || !isFinite(cfg.Camera.Start.Y) {
		return fmt.Errorf("%w: camera.start must be finite, got %+v", ErrInvalidConfig, cfg.Camera.Start)
	}
	if cfg.Camera.Zoom < 0 || !isFinite(cfg.Camera.Zoom) {
		return fmt.Errorf("%w: camera.zoom must be positive, got %v", ErrInvalidConfig, cfg.Camera.Zoom)
	}

	moves := []struct {
		name string
		move MoveConfig
	}{
		{"clickMove", cfg.ClickMove},
		{"bookmark", cfg.Bookmark},
		{"pan", cfg.Pan.MoveConfig},
	}
	for _, m := range moves {
		if m.move.Steps < 0 {
			return fmt.Errorf("%w: %s.steps cannot be negative, got %d", ErrInvalidConfig, m.name, m.move.Steps)
		}
	}

	if cfg.Pan.Distance < 0 {
		return fmt.Errorf("%w: pan.distance cannot be negative, got %v", ErrInvalidConfig, cfg.Pan.Distance)
	}
	if cfg.ZoomFactor <= 1 {
		return fmt.Errorf("%w: zoomFactor must be greater than 1, got %v", ErrInvalidConfig, cfg.ZoomFactor)
	}
	if cfg.World.Tiles < 0 || cfg.World.TileSize < 0 {
		return fmt.Errorf("%w: world.tiles and world.tileSize cannot be negative", ErrInvalidConfig)
	}

	if n := len(cfg.Bindings.Bookmarks); n > MaxBookmarkSlots {
		return fmt.Errorf("%w: at most %d bookmark keys allowed, got %d", ErrInvalidConfig, MaxBookmarkSlots, n)
	}

	return nil
}

func isFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

// WindowSize 返回窗口尺寸，便于 Layout 使用
func (c *ViewConfig) WindowSize() (int, int) {
	return c.Window.Width, c.Window.Height
}

// BookmarkSlot 返回按键对应的书签槽位（0 起），不是书签键时返回 -1
func (c *ViewConfig) BookmarkSlot(key ebiten.Key) int {
	for i, k := range c.Bindings.Bookmarks {
		if k == key {
			return i
		}
	}
	return -1
}
