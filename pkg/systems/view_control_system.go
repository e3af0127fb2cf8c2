package systems

import (
	"math"

	"github.com/decker502/viewcam/pkg/config"
	"github.com/decker502/viewcam/pkg/types"
	"github.com/decker502/viewcam/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// ViewControlSystem 把用户输入翻译为镜头命令
//
// 支持的操作：
//   - 鼠标左键/触摸点击：以 ScreenToWorld 换算点击位置并缓动过去
//   - 方向键（按住）：以当前目标点为基准沿屏幕方向平移
//   - Q/E（按住）：旋转
//   - Z/X（按住）或滚轮：缩放
//   - Home：瞬移回初始位置并恢复初始缩放、旋转
type ViewControlSystem struct {
	input  *utils.InputTracker
	camera *CameraSystem
	config *config.ViewConfig

	viewportWidth  int
	viewportHeight int
}

// NewViewControlSystem 创建视图控制系统
func NewViewControlSystem(input *utils.InputTracker, camera *CameraSystem, cfg *config.ViewConfig) *ViewControlSystem {
	w, h := cfg.WindowSize()
	return &ViewControlSystem{
		input:          input,
		camera:         camera,
		config:         cfg,
		viewportWidth:  w,
		viewportHeight: h,
	}
}

// SetConfig 替换配置（配置热加载）
func (vc *ViewControlSystem) SetConfig(cfg *config.ViewConfig) {
	vc.config = cfg
}

// SetViewport 更新视口尺寸（窗口大小变化时由 Layout 调用）
func (vc *ViewControlSystem) SetViewport(width, height int) {
	vc.viewportWidth = width
	vc.viewportHeight = height
}

// ViewportCenter 视口中心（屏幕坐标）
func (vc *ViewControlSystem) ViewportCenter() types.Vector2 {
	return types.Vec2(float64(vc.viewportWidth)/2, float64(vc.viewportHeight)/2)
}

// PointerWorld 指针所在的世界坐标
func (vc *ViewControlSystem) PointerWorld(pointer utils.PointerState) types.Vector2 {
	offset := types.Vec2(float64(pointer.X), float64(pointer.Y)).Sub(vc.ViewportCenter())
	return vc.camera.ScreenToWorld(offset)
}

// Update 处理本帧输入，返回是否发出了手动镜头命令
// 必须在 InputTracker.Advance() 之前调用
func (vc *ViewControlSystem) Update(pointer utils.PointerState) bool {
	manual := false

	if vc.handleReset() {
		return true
	}

	if vc.handleClick(pointer) {
		manual = true
	}
	if vc.handlePan() {
		manual = true
	}
	if vc.handleRotate() {
		manual = true
	}
	if vc.handleZoom(pointer) {
		manual = true
	}

	return manual
}

func (vc *ViewControlSystem) handleReset() bool {
	if !vc.input.AnyKeyPressedThisFrame(vc.config.Bindings.Reset) {
		return false
	}
	cam := vc.config.Camera
	vc.camera.SetPositionInstant(cam.Start)
	vc.camera.SetZoom(cam.Zoom)
	vc.camera.SetRotation(cam.Rotation)
	return true
}

func (vc *ViewControlSystem) handleClick(pointer utils.PointerState) bool {
	if !vc.input.IsButtonPressedThisFrame(ebiten.MouseButtonLeft) {
		return false
	}
	move := vc.config.ClickMove
	vc.camera.RequestMove(vc.PointerWorld(pointer), move.Easing, move.Steps)
	return true
}

// handlePan 按住方向键时，每帧把目标点沿屏幕方向推进 Pan.Distance
// 以 Target() 为基准累加，动画中途继续按住不会落后于上一次的目标
func (vc *ViewControlSystem) handlePan() bool {
	b := vc.config.Bindings
	var dir types.Vector2
	if vc.input.AnyKeyHeld(b.PanLeft) {
		dir.X--
	}
	if vc.input.AnyKeyHeld(b.PanRight) {
		dir.X++
	}
	if vc.input.AnyKeyHeld(b.PanUp) {
		dir.Y--
	}
	if vc.input.AnyKeyHeld(b.PanDown) {
		dir.Y++
	}
	if dir == (types.Vector2{}) {
		return false
	}

	pan := vc.config.Pan
	delta := vc.camera.AlignToView(dir.Scale(pan.Distance))
	vc.camera.RequestMove(vc.camera.Target().Add(delta), pan.Easing, pan.Steps)
	return true
}

func (vc *ViewControlSystem) handleRotate() bool {
	b := vc.config.Bindings
	step := 0.0
	if vc.input.AnyKeyHeld(b.RotateLeft) {
		step -= vc.config.RotateStep
	}
	if vc.input.AnyKeyHeld(b.RotateRight) {
		step += vc.config.RotateStep
	}
	if step == 0 {
		return false
	}
	vc.camera.Rotate(step)
	return true
}

func (vc *ViewControlSystem) handleZoom(pointer utils.PointerState) bool {
	b := vc.config.Bindings
	exponent := pointer.WheelY
	if vc.input.AnyKeyHeld(b.ZoomIn) {
		exponent++
	}
	if vc.input.AnyKeyHeld(b.ZoomOut) {
		exponent--
	}
	if exponent == 0 {
		return false
	}
	vc.camera.ZoomBy(math.Pow(vc.config.ZoomFactor, exponent))
	return true
}
