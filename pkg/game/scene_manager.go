package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneManager 管理当前活动的场景
// 同一时刻只有一个场景的 Update 和 Draw 会被调用
type SceneManager struct {
	currentScene Scene

	viewportWidth  int
	viewportHeight int
}

// NewSceneManager 创建场景管理器
// 初始没有活动场景，使用 SwitchTo 设置
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SwitchTo 切换到新场景
// 已知视口尺寸时会立即通知新场景
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.currentScene = scene
	if va, ok := scene.(ViewportAware); ok && sm.viewportWidth > 0 {
		va.SetViewport(sm.viewportWidth, sm.viewportHeight)
	}
}

// GetCurrentScene 返回当前活动的场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// Update 更新当前场景，没有场景时什么也不做
func (sm *SceneManager) Update() error {
	if sm.currentScene == nil {
		return nil
	}
	return sm.currentScene.Update()
}

// Draw 绘制当前场景
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}

// SetViewport 记录逻辑屏幕尺寸并转发给当前场景（尺寸变化时才转发）
func (sm *SceneManager) SetViewport(width, height int) {
	if width == sm.viewportWidth && height == sm.viewportHeight {
		return
	}
	sm.viewportWidth = width
	sm.viewportHeight = height
	if va, ok := sm.currentScene.(ViewportAware); ok {
		va.SetViewport(width, height)
	}
}

// SaveOnExit 如果当前场景实现了 Saveable，保存其状态
func (sm *SceneManager) SaveOnExit() bool {
	saveable, ok := sm.currentScene.(Saveable)
	if !ok {
		return true
	}
	if !saveable.SaveOnExit() {
		log.Printf("[SceneManager] Warning: current scene failed to save on exit")
		return false
	}
	return true
}
