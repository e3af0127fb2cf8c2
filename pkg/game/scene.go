package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene 一个可独立更新和绘制的场景
// 每个 tick 调用一次 Update，每帧调用一次 Draw
type Scene interface {
	// Update 推进一帧逻辑；返回错误会终止游戏循环
	Update() error

	// Draw 把场景绘制到 screen
	Draw(screen *ebiten.Image)
}

// ViewportAware 是一个可选接口，场景需要知道逻辑屏幕尺寸时实现
type ViewportAware interface {
	SetViewport(width, height int)
}

// Saveable 是一个可选接口，用于支持场景在退出时保存状态
//
// 实现此接口的场景会在以下时机被调用 SaveOnExit()：
//   - 游戏窗口关闭
//   - 用户通过 OS 命令关闭程序
type Saveable interface {
	// SaveOnExit 在场景退出时保存状态
	// 返回 true 表示保存成功或无需保存
	// 返回 false 表示保存失败（但程序仍会正常退出）
	SaveOnExit() bool
}
