package components

import "github.com/decker502/viewcam/pkg/types"

// Waypoint 镜头巡游中的一个路径点
type Waypoint struct {
	// Target 目标位置（世界坐标）
	Target types.Vector2
	// Easing 前往该点使用的缓动曲线
	Easing types.EasingType
	// Steps 动画步数（<= 0 表示瞬移）
	Steps int
	// Hold 到达后停留的帧数
	Hold int
}

// TourComponent 挂在镜头实体上，表示正在播放的巡游
type TourComponent struct {
	Waypoints []Waypoint
	// Next 下一个要下达的路径点下标
	Next int
	// HoldRemaining 当前路径点剩余的停留帧数
	HoldRemaining int
	// Loop 播完后是否从头开始
	Loop bool
}
