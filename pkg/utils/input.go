// Package utils 提供通用工具函数
package utils

import (
	"maps"
	"slices"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

// InputTracker 记录按键/鼠标按钮的当前帧与上一帧状态（双缓冲）
//
// 事件回调（OnKeyDown 等）只修改当前帧集合；
// 上一帧集合只在 Advance() 中整体替换，用于判断"刚按下/刚松开"。
//
// 每帧的调用顺序：
//  1. 平台事件 → OnKeyDown/OnKeyUp/OnButtonDown/OnButtonUp
//  2. 游戏逻辑查询 IsKeyPressedThisFrame 等
//  3. Advance()（每帧恰好一次，放在所有查询之后）
//
// 平台事件可能来自其他 goroutine，所以所有方法共用一把互斥锁，
// 查询不会看到更新到一半的集合。
type InputTracker struct {
	mu sync.Mutex

	keys         map[ebiten.Key]struct{}
	keysPrevious map[ebiten.Key]struct{}

	buttons         map[ebiten.MouseButton]struct{}
	buttonsPrevious map[ebiten.MouseButton]struct{}
}

// NewInputTracker 创建一个空的输入跟踪器
func NewInputTracker() *InputTracker {
	return &InputTracker{
		keys:            make(map[ebiten.Key]struct{}),
		keysPrevious:    make(map[ebiten.Key]struct{}),
		buttons:         make(map[ebiten.MouseButton]struct{}),
		buttonsPrevious: make(map[ebiten.MouseButton]struct{}),
	}
}

// OnKeyDown 按键按下事件（重复按下无额外效果）
func (it *InputTracker) OnKeyDown(key ebiten.Key) {
	it.mu.Lock()
	defer it.mu.Unlock()
	it.keys[key] = struct{}{}
}

// OnKeyUp 按键松开事件（对未按下的键是空操作）
func (it *InputTracker) OnKeyUp(key ebiten.Key) {
	it.mu.Lock()
	defer it.mu.Unlock()
	delete(it.keys, key)
}

// OnButtonDown 鼠标按钮按下事件
func (it *InputTracker) OnButtonDown(button ebiten.MouseButton) {
	it.mu.Lock()
	defer it.mu.Unlock()
	it.buttons[button] = struct{}{}
}

// OnButtonUp 鼠标按钮松开事件
func (it *InputTracker) OnButtonUp(button ebiten.MouseButton) {
	it.mu.Lock()
	defer it.mu.Unlock()
	delete(it.buttons, button)
}

// Advance 把当前帧状态快照为上一帧状态
//
// 每帧只能调用一次。同一帧内调用两次会让本帧的按下/松开边沿丢失，
// 这是调用方的约定，这里不做检查。
func (it *InputTracker) Advance() {
	it.mu.Lock()
	defer it.mu.Unlock()
	it.keysPrevious = maps.Clone(it.keys)
	it.buttonsPrevious = maps.Clone(it.buttons)
}

// Reset 清空所有集合（例如窗口失去焦点时，松开事件可能永远不会到达）
func (it *InputTracker) Reset() {
	it.mu.Lock()
	defer it.mu.Unlock()
	clear(it.keys)
	clear(it.keysPrevious)
	clear(it.buttons)
	clear(it.buttonsPrevious)
}

// IsKeyPressedThisFrame 本帧刚按下
func (it *InputTracker) IsKeyPressedThisFrame(key ebiten.Key) bool {
	it.mu.Lock()
	defer it.mu.Unlock()
	_, now := it.keys[key]
	_, before := it.keysPrevious[key]
	return now && !before
}

// IsKeyReleasedThisFrame 本帧刚松开
func (it *InputTracker) IsKeyReleasedThisFrame(key ebiten.Key) bool {
	it.mu.Lock()
	defer it.mu.Unlock()
	_, now := it.keys[key]
	_, before := it.keysPrevious[key]
	return !now && before
}

// IsKeyHeld 当前处于按下状态
func (it *InputTracker) IsKeyHeld(key ebiten.Key) bool {
	it.mu.Lock()
	defer it.mu.Unlock()
	_, now := it.keys[key]
	return now
}

// IsButtonPressedThisFrame 鼠标按钮本帧刚按下
func (it *InputTracker) IsButtonPressedThisFrame(button ebiten.MouseButton) bool {
	it.mu.Lock()
	defer it.mu.Unlock()
	_, now := it.buttons[button]
	_, before := it.buttonsPrevious[button]
	return now && !before
}

// IsButtonReleasedThisFrame 鼠标按钮本帧刚松开
func (it *InputTracker) IsButtonReleasedThisFrame(button ebiten.MouseButton) bool {
	it.mu.Lock()
	defer it.mu.Unlock()
	_, now := it.buttons[button]
	_, before := it.buttonsPrevious[button]
	return !now && before
}

// IsButtonHeld 鼠标按钮当前处于按下状态
func (it *InputTracker) IsButtonHeld(button ebiten.MouseButton) bool {
	it.mu.Lock()
	defer it.mu.Unlock()
	_, now := it.buttons[button]
	return now
}

// AnyKeyPressedThisFrame 任意一个键本帧刚按下（用于一个动作绑定多个键）
func (it *InputTracker) AnyKeyPressedThisFrame(keys []ebiten.Key) bool {
	for _, k := range keys {
		if it.IsKeyPressedThisFrame(k) {
			return true
		}
	}
	return false
}

// AnyKeyHeld 任意一个键处于按下状态
func (it *InputTracker) AnyKeyHeld(keys []ebiten.Key) bool {
	for _, k := range keys {
		if it.IsKeyHeld(k) {
			return true
		}
	}
	return false
}

// HeldKeys 返回当前按下的所有键（按键码排序，用于调试显示）
func (it *InputTracker) HeldKeys() []ebiten.Key {
	it.mu.Lock()
	defer it.mu.Unlock()
	return slices.Sorted(maps.Keys(it.keys))
}
