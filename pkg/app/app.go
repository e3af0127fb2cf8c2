// Package app 提供应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/decker502/viewcam/pkg/config"
	"github.com/decker502/viewcam/pkg/embedded"
	"github.com/decker502/viewcam/pkg/game"
	"github.com/decker502/viewcam/pkg/scenes"
	"github.com/decker502/viewcam/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
	"golang.design/x/clipboard"
)

// AppName gdata 存储目录名
const AppName = "viewcam"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 视图配置文件，为空则使用内嵌的 data/view.yaml
	ConfigPath string
	// TourPath 巡游脚本，为空则使用配置中的路径或内嵌脚本
	TourPath string
	// Watch 监视配置文件和巡游脚本，变化时热加载
	Watch bool
	// ResetView 忽略上次退出时保存的视图
	ResetView bool
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	viewState    *game.ViewStateManager
	watcher      *config.Watcher
	config       *config.ViewConfig
	verbose      bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	viewConfig, err := loadViewConfig(cfg.ConfigPath)
	if err != nil {
		return nil, err
	}

	mobile := utils.IsMobile()

	// Android 上 gdata 不会预先创建存储目录
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[App] Warning: %v", err)
	}

	// 存储不可用时降级为仅内存保存
	gdataManager, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		log.Printf("[App] Warning: persistent storage unavailable: %v (bookmarks kept in memory)", err)
		gdataManager = nil
	}
	viewState := game.NewViewStateManager(gdataManager)

	// 移动端没有剪贴板快捷键，也不监视文件
	var copyText func(string)
	if mobile {
		cfg.Watch = false
	} else if err := clipboard.Init(); err != nil {
		log.Printf("[App] Warning: clipboard unavailable: %v", err)
	} else {
		copyText = func(text string) {
			clipboard.Write(clipboard.FmtText, []byte(text))
		}
	}

	a := &App{
		sceneManager: game.NewSceneManager(),
		viewState:    viewState,
		config:       viewConfig,
		verbose:      cfg.Verbose,
	}

	tourPath := cfg.TourPath
	if tourPath == "" {
		tourPath = viewConfig.Tour.Script
	}

	var reloads <-chan string
	if cfg.Watch {
		if w, err := startWatcher(cfg.ConfigPath, tourPath); err != nil {
			log.Printf("[App] Warning: hot reload disabled: %v", err)
		} else if w != nil {
			a.watcher = w
			reloads = w.Events
		}
	}

	scene := scenes.NewViewScene(scenes.ViewSceneOptions{
		Config:     viewConfig,
		ConfigPath: cfg.ConfigPath,
		TourPath:   tourPath,
		ViewState:  viewState,
		Reloads:    reloads,
		Clipboard:  copyText,
		ResetView:  cfg.ResetView,
	})
	a.sceneManager.SwitchTo(scene)

	if !mobile && viewState.Settings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	log.Printf("[App] Initialized")
	return a, nil
}

func loadViewConfig(path string) (*config.ViewConfig, error) {
	if path != "" {
		cfg, err := config.LoadViewConfig(path)
		if err != nil {
			return nil, err
		}
		log.Printf("[Config] Loaded view config from %s", path)
		return cfg, nil
	}

	data, err := embedded.ReadFile(embedded.ViewConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded view config: %w", err)
	}
	cfg, err := config.ParseViewConfig(data)
	if err != nil {
		return nil, fmt.Errorf("embedded view config: %w", err)
	}
	return cfg, nil
}

// startWatcher 只监视磁盘上的文件，内嵌资源无需监视
func startWatcher(paths ...string) (*config.Watcher, error) {
	var files []string
	for _, p := range paths {
		if p != "" {
			files = append(files, p)
		}
	}
	if len(files) == 0 {
		return nil, nil
	}

	w, err := config.NewWatcher(files...)
	if err != nil {
		return nil, err
	}
	go func() {
		for err := range w.Errors {
			log.Printf("[App] Watcher error: %v", err)
		}
	}()
	log.Printf("[App] Watching %v", files)
	return w, nil
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			w, h := a.config.WindowSize()
			ebiten.SetWindowSize(w, h)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", w, h)
			a.pendingWindowSizeReset = false
		}
	}

	if a.fullscreenKeyPressed() {
		a.toggleFullscreen()
	}

	return a.sceneManager.Update()
}

func (a *App) fullscreenKeyPressed() bool {
	for _, k := range a.config.Bindings.Fullscreen {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

func (a *App) toggleFullscreen() {
	fullscreen := !ebiten.IsFullscreen()
	if fullscreen {
		ebiten.SetFullscreen(true)
	} else {
		// 退出全屏
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
	}

	if err := a.viewState.SetFullscreen(fullscreen); err != nil {
		log.Printf("[App] Warning: failed to save fullscreen setting: %v", err)
	}
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	// 先填充黑色背景（全屏时左右两边为黑色）
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 逻辑尺寸固定为配置中的窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := a.config.WindowSize()
	a.sceneManager.SetViewport(w, h)
	return w, h
}

// Close 保存当前视图并停止文件监视
// 返回保存是否成功
func (a *App) Close() bool {
	saved := a.sceneManager.SaveOnExit()
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			log.Printf("[App] Warning: failed to close watcher: %v", err)
		}
	}
	return saved
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}

// WindowTitle 配置中的窗口标题
func (a *App) WindowTitle() string {
	return a.config.Window.Title
}

// WindowSize 配置中的窗口大小
func (a *App) WindowSize() (int, int) {
	return a.config.WindowSize()
}
