package scenes

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"log"
	"path/filepath"
	"strings"

	"github.com/decker502/viewcam/internal/tour"
	"github.com/decker502/viewcam/pkg/config"
	"github.com/decker502/viewcam/pkg/ecs"
	"github.com/decker502/viewcam/pkg/embedded"
	"github.com/decker502/viewcam/pkg/game"
	"github.com/decker502/viewcam/pkg/systems"
	"github.com/decker502/viewcam/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// InputSource 平台输入来源（EbitenInputSource 实现了此接口）
type InputSource interface {
	Poll(sink utils.InputSink)
	Pointer() utils.PointerState
	Focused() bool
}

// ViewSceneOptions 创建 ViewScene 所需的参数
type ViewSceneOptions struct {
	Config     *config.ViewConfig
	ConfigPath string // 配置文件路径，空表示使用内嵌配置（不参与热加载）
	TourPath   string // 巡游脚本路径，空表示使用配置中的路径或内嵌脚本

	ViewState *game.ViewStateManager // 书签存储，可为 nil
	Input     InputSource            // 为 nil 时使用 Ebitengine 输入
	Reloads   <-chan string          // 文件变化通知（config.Watcher.Events），可为 nil
	Clipboard func(text string)      // 复制坐标，可为 nil

	// ResetView 忽略上次退出时保存的视图
	ResetView bool
}

// ViewScene 镜头演示场景
//
// 每帧顺序：
//  1. 处理热加载
//  2. 平台输入 → InputTracker
//  3. 视图控制、书签、巡游开关（查询 InputTracker）
//  4. 巡游推进 → CameraSystem.Advance()
//  5. InputTracker.Advance()
type ViewScene struct {
	entityManager *ecs.EntityManager
	input         *utils.InputTracker
	source        InputSource

	cameraSystem  *systems.CameraSystem
	controlSystem *systems.ViewControlSystem
	tourSystem    *systems.CameraTourSystem
	renderSystem  *systems.RenderSystem

	config     *config.ViewConfig
	configPath string
	tourPath   string

	viewState *game.ViewStateManager
	reloads   <-chan string
	clipboard func(text string)

	hudFace text.Face
	status  string // HUD 最后一行的提示
}

// NewViewScene 创建镜头演示场景
func NewViewScene(opts ViewSceneOptions) *ViewScene {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultViewConfig()
	}

	source := opts.Input
	if source == nil {
		source = utils.NewEbitenInputSource()
	}

	tourPath := opts.TourPath
	if tourPath == "" {
		tourPath = cfg.Tour.Script
	}

	em := ecs.NewEntityManager()
	input := utils.NewInputTracker()
	cameraSystem := systems.NewCameraSystem(em, cfg.Camera.Start, cfg.Camera.Zoom, cfg.Camera.Rotation)

	s := &ViewScene{
		entityManager: em,
		input:         input,
		source:        source,
		cameraSystem:  cameraSystem,
		controlSystem: systems.NewViewControlSystem(input, cameraSystem, cfg),
		tourSystem:    systems.NewCameraTourSystem(em, cameraSystem),
		renderSystem:  systems.NewRenderSystem(cameraSystem, cfg.World),
		config:        cfg,
		configPath:    absPath(opts.ConfigPath),
		tourPath:      absPath(tourPath),
		viewState:     opts.ViewState,
		reloads:       opts.Reloads,
		clipboard:     opts.Clipboard,
		hudFace:       text.NewGoXFace(basicfont.Face7x13),
	}

	if !opts.ResetView {
		s.restoreLastView()
	}
	if cfg.Tour.Autostart {
		s.startTour()
	}

	log.Printf("[ViewScene] Created: start=(%.1f, %.1f) zoom=%.2f", cfg.Camera.Start.X, cfg.Camera.Start.Y, cfg.Camera.Zoom)
	return s
}

func absPath(path string) string {
	if path == "" {
		return ""
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

// Camera 返回镜头系统
func (s *ViewScene) Camera() *systems.CameraSystem {
	return s.cameraSystem
}

// Input 返回输入跟踪器
func (s *ViewScene) Input() *utils.InputTracker {
	return s.input
}

// TourActive 是否正在巡游
func (s *ViewScene) TourActive() bool {
	return s.tourSystem.IsActive()
}

// Status HUD 当前提示
func (s *ViewScene) Status() string {
	return s.status
}

// SetViewport 实现 game.ViewportAware
func (s *ViewScene) SetViewport(width, height int) {
	s.controlSystem.SetViewport(width, height)
}

// Update 推进一帧
func (s *ViewScene) Update() error {
	s.applyReloads()

	if !s.source.Focused() {
		// 失去焦点时收不到松开事件，清空避免按键"卡住"
		s.input.Reset()
	}
	s.source.Poll(s.input)
	pointer := s.source.Pointer()

	manual := s.controlSystem.Update(pointer)
	if s.handleBookmarks() {
		manual = true
	}
	if manual {
		s.tourSystem.Stop()
	}

	if s.input.AnyKeyPressedThisFrame(s.config.Bindings.ToggleTour) {
		if s.tourSystem.IsActive() {
			s.tourSystem.Stop()
			s.status = "tour stopped"
		} else {
			s.startTour()
		}
	}

	if s.input.AnyKeyPressedThisFrame(s.config.Bindings.CopyPosition) {
		s.copyPointerWorld(pointer)
	}

	s.tourSystem.Update()
	s.cameraSystem.Advance()
	s.input.Advance()
	return nil
}

// handleBookmarks 书签键：单按读取，Shift+按键保存
// 返回是否读取了书签（读取算作手动镜头命令）
func (s *ViewScene) handleBookmarks() bool {
	recalled := false
	shift := s.input.IsKeyHeld(ebiten.KeyShiftLeft) || s.input.IsKeyHeld(ebiten.KeyShiftRight)

	for slot, key := range s.config.Bindings.Bookmarks {
		if !s.input.IsKeyPressedThisFrame(key) {
			continue
		}
		if shift {
			s.storeBookmark(slot)
			continue
		}
		if s.recallBookmark(slot) {
			recalled = true
		}
	}
	return recalled
}

func (s *ViewScene) currentBookmark() game.Bookmark {
	return game.Bookmark{
		Position: s.cameraSystem.Target(),
		Zoom:     s.cameraSystem.Zoom(),
		Rotation: s.cameraSystem.Rotation(),
	}
}

func (s *ViewScene) storeBookmark(slot int) {
	if s.viewState == nil {
		return
	}
	if err := s.viewState.Store(slot, s.currentBookmark()); err != nil {
		log.Printf("[ViewScene] Warning: failed to store bookmark %d: %v", slot+1, err)
		s.status = fmt.Sprintf("bookmark %d: save failed", slot+1)
		return
	}
	s.status = fmt.Sprintf("bookmark %d saved", slot+1)
}

func (s *ViewScene) recallBookmark(slot int) bool {
	if s.viewState == nil {
		return false
	}
	b, err := s.viewState.Recall(slot)
	if err != nil {
		if !errors.Is(err, game.ErrNoBookmark) {
			log.Printf("[ViewScene] Warning: failed to recall bookmark %d: %v", slot+1, err)
		}
		s.status = fmt.Sprintf("bookmark %d is empty", slot+1)
		return false
	}

	move := s.config.Bookmark
	s.cameraSystem.RequestMove(b.Position, move.Easing, move.Steps)
	s.cameraSystem.SetZoom(b.Zoom)
	s.cameraSystem.SetRotation(b.Rotation)
	s.status = fmt.Sprintf("bookmark %d", slot+1)
	return true
}

func (s *ViewScene) restoreLastView() {
	if s.viewState == nil {
		return
	}
	b, err := s.viewState.LoadLast()
	if err != nil {
		if !errors.Is(err, game.ErrNoBookmark) {
			log.Printf("[ViewScene] Warning: failed to restore last view: %v", err)
		}
		return
	}
	s.cameraSystem.SetPositionInstant(b.Position)
	s.cameraSystem.SetZoom(b.Zoom)
	s.cameraSystem.SetRotation(b.Rotation)
	log.Printf("[ViewScene] Restored last view at (%.1f, %.1f)", b.Position.X, b.Position.Y)
}

// SaveOnExit 实现 game.Saveable：保存退出时的视图
func (s *ViewScene) SaveOnExit() bool {
	if s.viewState == nil {
		return true
	}
	if err := s.viewState.SaveLast(s.currentBookmark()); err != nil {
		log.Printf("[ViewScene] Warning: failed to save last view: %v", err)
		return false
	}
	return true
}

// loadTour 编译巡游脚本（外部文件优先，否则用内嵌脚本）
func (s *ViewScene) loadTour() (*tour.Tour, error) {
	env := tour.Env{
		Origin: s.config.Camera.Start,
		Extent: float64(s.config.World.Tiles) * s.config.World.TileSize,
	}
	ctx := context.Background()

	if s.tourPath != "" {
		return tour.Load(ctx, s.tourPath, env)
	}

	src, err := embedded.ReadFile(embedded.TourScriptPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded tour: %w", err)
	}
	return tour.Compile(ctx, src, env)
}

func (s *ViewScene) startTour() {
	t, err := s.loadTour()
	if err != nil {
		log.Printf("[ViewScene] Warning: tour unavailable: %v", err)
		s.status = "tour unavailable"
		return
	}
	s.tourSystem.Start(t.Waypoints, t.Loop)
	s.status = fmt.Sprintf("tour: %d waypoints", len(t.Waypoints))
}

func (s *ViewScene) copyPointerWorld(pointer utils.PointerState) {
	w := s.controlSystem.PointerWorld(pointer)
	coords := fmt.Sprintf("%.2f, %.2f", w.X, w.Y)
	if s.clipboard != nil {
		s.clipboard(coords)
	}
	s.status = "copied " + coords
}

// applyReloads 处理本帧之前到达的文件变化（不阻塞）
func (s *ViewScene) applyReloads() {
	if s.reloads == nil {
		return
	}
	for {
		select {
		case path, ok := <-s.reloads:
			if !ok {
				s.reloads = nil
				return
			}
			s.reload(path)
		default:
			return
		}
	}
}

func (s *ViewScene) reload(path string) {
	switch path {
	case s.configPath:
		cfg, err := config.LoadViewConfig(path)
		if err != nil {
			log.Printf("[ViewScene] Warning: config reload failed, keeping previous config: %v", err)
			s.status = "config reload failed"
			return
		}
		s.applyConfig(cfg)
		log.Printf("[ViewScene] Config reloaded from %s", path)
		s.status = "config reloaded"

	case s.tourPath:
		if !s.tourSystem.IsActive() {
			return
		}
		// 巡游进行中时用新脚本重新开始
		s.startTour()
		log.Printf("[ViewScene] Tour reloaded from %s", path)
	}
}

// applyConfig 应用热加载的配置
// 只替换调参项（移动曲线、按键、世界外观），不打断镜头当前状态
func (s *ViewScene) applyConfig(cfg *config.ViewConfig) {
	s.config = cfg
	s.controlSystem.SetConfig(cfg)
	s.renderSystem.SetWorld(cfg.World)
}

// Draw 绘制世界和 HUD
func (s *ViewScene) Draw(screen *ebiten.Image) {
	s.renderSystem.Draw(screen)
	s.drawHUD(screen)
}

// HUDLines 返回 HUD 显示的文本行
func (s *ViewScene) HUDLines() []string {
	cam := s.cameraSystem
	pos, target := cam.Position(), cam.Target()

	lines := []string{
		fmt.Sprintf("pos    %8.1f %8.1f", pos.X, pos.Y),
		fmt.Sprintf("target %8.1f %8.1f", target.X, target.Y),
		fmt.Sprintf("zoom %.2f  rot %.2f", cam.Zoom(), cam.Rotation()),
	}

	if step, total := cam.Step(); total > 0 {
		lines = append(lines, fmt.Sprintf("tween  %d/%d", step, total))
	} else {
		lines = append(lines, "idle")
	}

	if next, total := s.tourSystem.Progress(); total > 0 {
		lines = append(lines, fmt.Sprintf("tour   %d/%d", next, total))
	}

	if held := s.input.HeldKeys(); len(held) > 0 {
		names := make([]string, 0, len(held))
		for _, k := range held {
			names = append(names, k.String())
		}
		lines = append(lines, "keys   "+strings.Join(names, " "))
	}

	if s.status != "" {
		lines = append(lines, s.status)
	}
	return lines
}

func (s *ViewScene) drawHUD(screen *ebiten.Image) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(10, 8)
	op.LayoutOptions.LineSpacing = 16
	op.ColorScale.ScaleWithColor(color.White)
	text.Draw(screen, strings.Join(s.HUDLines(), "\n"), s.hudFace, op)
}

var (
	_ game.Saveable      = (*ViewScene)(nil)
	_ game.ViewportAware = (*ViewScene)(nil)
)
