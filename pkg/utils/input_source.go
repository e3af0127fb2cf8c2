package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputSink 接收原始输入事件（InputTracker 实现了此接口）
type InputSink interface {
	OnKeyDown(key ebiten.Key)
	OnKeyUp(key ebiten.Key)
	OnButtonDown(button ebiten.MouseButton)
	OnButtonUp(button ebiten.MouseButton)
}

// PointerState 本帧的指针状态（屏幕坐标）
type PointerState struct {
	X, Y   int
	WheelY float64 // 滚轮纵向偏移，正值向上
}

// EbitenInputSource 把 Ebitengine 的轮询式输入转换为按下/松开事件
//
// Ebitengine 没有事件回调，只能每个 tick 轮询；
// 这里用 inpututil 找出本 tick 的边沿，再逐个转发给 InputSink。
// 触摸输入映射为鼠标左键，与桌面端共用同一套逻辑。
type EbitenInputSource struct {
	keyBuf   []ebiten.Key
	touchBuf []ebiten.TouchID
}

// NewEbitenInputSource 创建输入源
func NewEbitenInputSource() *EbitenInputSource {
	return &EbitenInputSource{}
}

// Poll 读取本 tick 的输入边沿并转发（每个 tick 调用一次，在游戏逻辑之前）
func (s *EbitenInputSource) Poll(sink InputSink) {
	s.keyBuf = inpututil.AppendJustPressedKeys(s.keyBuf[:0])
	for _, k := range s.keyBuf {
		sink.OnKeyDown(k)
	}

	s.keyBuf = inpututil.AppendJustReleasedKeys(s.keyBuf[:0])
	for _, k := range s.keyBuf {
		sink.OnKeyUp(k)
	}

	for b := ebiten.MouseButton0; b <= ebiten.MouseButtonMax; b++ {
		if inpututil.IsMouseButtonJustPressed(b) {
			sink.OnButtonDown(b)
		}
		if inpututil.IsMouseButtonJustReleased(b) {
			sink.OnButtonUp(b)
		}
	}

	// 触摸：按下/松开都映射为鼠标左键
	s.touchBuf = inpututil.AppendJustPressedTouchIDs(s.touchBuf[:0])
	if len(s.touchBuf) > 0 {
		sink.OnButtonDown(ebiten.MouseButtonLeft)
	}
	s.touchBuf = inpututil.AppendJustReleasedTouchIDs(s.touchBuf[:0])
	if len(s.touchBuf) > 0 && len(ebiten.AppendTouchIDs(nil)) == 0 {
		sink.OnButtonUp(ebiten.MouseButtonLeft)
	}

	UpdateLastTouchPosition()
}

// Pointer 读取本帧的指针位置和滚轮偏移
func (s *EbitenInputSource) Pointer() PointerState {
	x, y := GetPointerPosition()
	_, wheelY := ebiten.Wheel()
	return PointerState{X: x, Y: y, WheelY: wheelY}
}

// Focused 窗口是否拥有焦点
func (s *EbitenInputSource) Focused() bool {
	return ebiten.IsFocused()
}

// 保存最后一次触摸位置（触摸松开后 TouchPosition 不再可用）
var lastTouchX, lastTouchY int

// UpdateLastTouchPosition 更新最后一次触摸位置
func UpdateLastTouchPosition() {
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		lastTouchX, lastTouchY = ebiten.TouchPosition(touchIDs[0])
	}
}

// GetPointerPosition 获取当前指针位置（触摸或鼠标）
// 优先返回触摸位置；触摸刚结束时返回最后一次触摸位置
func GetPointerPosition() (int, int) {
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		return ebiten.TouchPosition(touchIDs[0])
	}
	if len(inpututil.AppendJustReleasedTouchIDs(nil)) > 0 {
		return lastTouchX, lastTouchY
	}
	return ebiten.CursorPosition()
}
