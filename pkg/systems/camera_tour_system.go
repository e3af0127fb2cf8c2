package systems

import (
	"log"

	"github.com/decker502/viewcam/pkg/components"
	"github.com/decker502/viewcam/pkg/ecs"
)

// CameraTourSystem 按路径点依次驱动镜头（巡游）
//
// 巡游状态保存在镜头实体的 TourComponent 上。
// 镜头落地（没有 TweenComponent）并且停留时间结束后，才下达下一个路径点。
// 手动操作镜头时由调用方执行 Stop()。
type CameraTourSystem struct {
	entityManager *ecs.EntityManager
	camera        *CameraSystem
}

// NewCameraTourSystem 创建巡游系统
func NewCameraTourSystem(em *ecs.EntityManager, camera *CameraSystem) *CameraTourSystem {
	return &CameraTourSystem{
		entityManager: em,
		camera:        camera,
	}
}

// Start 开始巡游（替换正在进行的巡游）
// 没有路径点时是空操作
func (ts *CameraTourSystem) Start(waypoints []components.Waypoint, loop bool) {
	if len(waypoints) == 0 {
		return
	}
	ecs.AddComponent(ts.entityManager, ts.camera.Entity(), &components.TourComponent{
		Waypoints: waypoints,
		Loop:      loop,
	})
	log.Printf("[CameraTourSystem] Tour started: %d waypoints, loop=%v", len(waypoints), loop)
}

// Stop 停止巡游，镜头停在当前动画的目标上
func (ts *CameraTourSystem) Stop() {
	if !ts.IsActive() {
		return
	}
	ecs.RemoveComponent[*components.TourComponent](ts.entityManager, ts.camera.Entity())
	log.Printf("[CameraTourSystem] Tour stopped")
}

// IsActive 是否正在巡游
func (ts *CameraTourSystem) IsActive() bool {
	return ecs.HasComponent[*components.TourComponent](ts.entityManager, ts.camera.Entity())
}

// Progress 返回（已下达的路径点数，路径点总数）
func (ts *CameraTourSystem) Progress() (next, total int) {
	tour, ok := ecs.GetComponent[*components.TourComponent](ts.entityManager, ts.camera.Entity())
	if !ok {
		return 0, 0
	}
	return tour.Next, len(tour.Waypoints)
}

// Update 每帧调用一次，在 CameraSystem.Advance() 之前
func (ts *CameraTourSystem) Update() {
	entity := ts.camera.Entity()
	tour, ok := ecs.GetComponent[*components.TourComponent](ts.entityManager, entity)
	if !ok {
		return
	}

	// 等待镜头落地
	if ecs.HasComponent[*components.TweenComponent](ts.entityManager, entity) {
		return
	}

	if tour.HoldRemaining > 0 {
		tour.HoldRemaining--
		return
	}

	if tour.Next >= len(tour.Waypoints) {
		if !tour.Loop {
			ecs.RemoveComponent[*components.TourComponent](ts.entityManager, entity)
			log.Printf("[CameraTourSystem] Tour finished")
			return
		}
		tour.Next = 0
	}

	wp := tour.Waypoints[tour.Next]
	tour.Next++
	tour.HoldRemaining = wp.Hold
	ts.camera.RequestMove(wp.Target, wp.Easing, wp.Steps)
}
