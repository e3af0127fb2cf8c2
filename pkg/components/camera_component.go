package components

import "github.com/decker502/viewcam/pkg/types"

// CameraComponent 保存一个视图（镜头）的视点状态
type CameraComponent struct {
	// Position 当前渲染使用的视点位置（世界坐标）
	Position types.Vector2

	// Target 最近一次下达的目标位置
	// 方向键平移以它为基准累加，而不是以动画中途的 Position 为基准
	Target types.Vector2

	// Rotation 旋转角（弧度），正值为顺时针，不做取模
	Rotation float64

	// Zoom 缩放倍数，1.0 表示不缩放，必须大于 0
	Zoom float64
}

// TweenComponent 正在进行中的位移动画
//
// 只有处于 Tweening 状态的镜头实体才挂有此组件；
// 动画落地后组件被移除，镜头回到 Idle 状态。
// 不变量：0 <= Step <= TotalSteps，TotalSteps > 0。
type TweenComponent struct {
	// From 动画起点（下达命令时镜头的实际位置）
	From types.Vector2

	// To 动画终点
	To types.Vector2

	// Easing 缓动曲线
	Easing types.EasingType

	// Step 已推进的步数
	Step int

	// TotalSteps 总步数
	TotalSteps int
}
