package systems

import (
	"math"

	"github.com/decker502/viewcam/pkg/components"
	"github.com/decker502/viewcam/pkg/ecs"
	"github.com/decker502/viewcam/pkg/types"
	"github.com/decker502/viewcam/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// CameraSystem 管理一个二维视图（镜头）的位置、旋转和缩放，
// 并以离散步数推进位移动画。
//
// 状态机只有两个状态：
//   - Idle：镜头实体没有 TweenComponent，位置固定
//   - Tweening：镜头实体挂有 TweenComponent，每次 Advance 推进一步
//
// 每帧调用顺序：游戏逻辑（RequestMove 等）→ Advance() → ComposeTransform() → 渲染。
// 所有操作都是全函数，不会返回错误也不会 panic。
type CameraSystem struct {
	entityManager *ecs.EntityManager
	cameraEntity  ecs.EntityID // 镜头实体ID
}

// NewCameraSystem 创建镜头控制系统，并创建镜头实体。
// startZoom <= 0 时按 1.0 处理。
func NewCameraSystem(em *ecs.EntityManager, startPosition types.Vector2, startZoom, startRotation float64) *CameraSystem {
	if startZoom <= 0 {
		startZoom = 1.0
	}

	cs := &CameraSystem{entityManager: em}
	cs.cameraEntity = em.CreateEntity()
	ecs.AddComponent(em, cs.cameraEntity, &components.CameraComponent{
		Position: startPosition,
		Target:   startPosition,
		Rotation: startRotation,
		Zoom:     startZoom,
	})

	return cs
}

// Entity 返回镜头实体ID
func (cs *CameraSystem) Entity() ecs.EntityID {
	return cs.cameraEntity
}

// camera 获取镜头组件
// 镜头实体由本系统创建且从不删除，找不到时返回零值组件避免空指针
func (cs *CameraSystem) camera() *components.CameraComponent {
	cam, ok := ecs.GetComponent[*components.CameraComponent](cs.entityManager, cs.cameraEntity)
	if !ok {
		cam = &components.CameraComponent{Zoom: 1.0}
		ecs.AddComponent(cs.entityManager, cs.cameraEntity, cam)
	}
	return cam
}

// Position 当前视点位置（世界坐标）
func (cs *CameraSystem) Position() types.Vector2 {
	return cs.camera().Position
}

// Target 最近一次下达的目标位置
func (cs *CameraSystem) Target() types.Vector2 {
	return cs.camera().Target
}

// Rotation 当前旋转角（弧度）
func (cs *CameraSystem) Rotation() float64 {
	return cs.camera().Rotation
}

// Zoom 当前缩放倍数
func (cs *CameraSystem) Zoom() float64 {
	return cs.camera().Zoom
}

// IsTweening 是否还有尚未推进的动画步
//
// 第 N 步推进之后返回 false，但 TweenComponent 要到下一次 Advance 才移除，
// 那一次调用会把位置精确地落到目标点上。
func (cs *CameraSystem) IsTweening() bool {
	tween, ok := ecs.GetComponent[*components.TweenComponent](cs.entityManager, cs.cameraEntity)
	return ok && tween.Step < tween.TotalSteps
}

// Step 返回当前动画的进度（已推进步数，总步数）
// 没有动画时返回 (0, 0)
func (cs *CameraSystem) Step() (step, total int) {
	tween, ok := ecs.GetComponent[*components.TweenComponent](cs.entityManager, cs.cameraEntity)
	if !ok {
		return 0, 0
	}
	return tween.Step, tween.TotalSteps
}

// SetPositionInstant 立即把镜头放到指定位置，丢弃进行中的动画
func (cs *CameraSystem) SetPositionInstant(position types.Vector2) {
	cam := cs.camera()
	cam.Position = position
	cam.Target = position
	ecs.RemoveComponent[*components.TweenComponent](cs.entityManager, cs.cameraEntity)
}

// RequestMove 以缓动动画把镜头移动到目标位置。
//
// totalSteps <= 0 或 easing 为 Instant 时等同于 SetPositionInstant。
// 已有动画时直接丢弃旧动画：新动画从镜头当前（可能在半路上的）位置出发，
// 不与旧目标混合，也不排队。
func (cs *CameraSystem) RequestMove(target types.Vector2, easing types.EasingType, totalSteps int) {
	if totalSteps <= 0 || easing == types.EasingInstant {
		cs.SetPositionInstant(target)
		return
	}

	cam := cs.camera()
	cam.Target = target
	ecs.AddComponent(cs.entityManager, cs.cameraEntity, &components.TweenComponent{
		From:       cam.Position,
		To:         target,
		Easing:     easing,
		Step:       0,
		TotalSteps: totalSteps,
	})
}

// Advance 推进一帧（每帧恰好调用一次）
//
// 还有剩余步数时推进一步并按缓动曲线插值；
// 步数用完之后的下一次调用把位置精确设为目标点并回到 Idle，
// 消除缓动曲线在 t=1 处的浮点误差（BounceOut 在 t=1 时并不等于 1）。
func (cs *CameraSystem) Advance() {
	tween, ok := ecs.GetComponent[*components.TweenComponent](cs.entityManager, cs.cameraEntity)
	if !ok {
		return
	}

	cam := cs.camera()
	if tween.Step < tween.TotalSteps {
		tween.Step++
		t := float64(tween.Step) / float64(tween.TotalSteps)
		cam.Position = utils.LerpVector(tween.From, tween.To, utils.Ease(tween.Easing, t))
		return
	}

	cam.Position = tween.To
	ecs.RemoveComponent[*components.TweenComponent](cs.entityManager, cs.cameraEntity)
}

// SetRotation 设置旋转角（弧度）
func (cs *CameraSystem) SetRotation(radians float64) {
	cs.camera().Rotation = radians
}

// Rotate 在当前旋转角上累加
func (cs *CameraSystem) Rotate(delta float64) {
	cs.camera().Rotation += delta
}

// SetZoom 设置缩放倍数；非正数或非有限值被忽略
func (cs *CameraSystem) SetZoom(zoom float64) {
	if zoom <= 0 || math.IsInf(zoom, 0) || math.IsNaN(zoom) {
		return
	}
	cs.camera().Zoom = zoom
}

// ZoomBy 按倍率缩放
func (cs *CameraSystem) ZoomBy(factor float64) {
	cs.SetZoom(cs.camera().Zoom * factor)
}

// basis 返回镜头旋转后的 X/Y 轴单位向量（世界坐标）
func (cs *CameraSystem) basis() (dX, dY types.Vector2) {
	r := cs.camera().Rotation
	dX = types.Vec2(math.Cos(r), math.Sin(r))
	dY = types.Vec2(math.Cos(r+math.Pi/2), math.Sin(r+math.Pi/2))
	return dX, dY
}

// AlignToView 把视图坐标系中的方向向量转换到世界坐标系（只旋转，不缩放）
// 用于让方向键平移始终沿屏幕方向移动
func (cs *CameraSystem) AlignToView(v types.Vector2) types.Vector2 {
	dX, dY := cs.basis()
	return dX.Scale(v.X).Add(dY.Scale(v.Y))
}

// ScreenToWorld 把屏幕偏移（以视口中心为原点）转换为世界坐标
//
// 计算公式：
//
//	offset' = offset / zoom
//	world   = position + dX * offset'.x + dY * offset'.y
func (cs *CameraSystem) ScreenToWorld(screenOffset types.Vector2) types.Vector2 {
	cam := cs.camera()
	offset := screenOffset.Scale(1 / cam.Zoom)
	dX, dY := cs.basis()
	return cam.Position.Add(dX.Scale(offset.X)).Add(dY.Scale(offset.Y))
}

// WorldToScreen 是 ScreenToWorld 的逆变换：世界坐标 → 以视口中心为原点的屏幕偏移
func (cs *CameraSystem) WorldToScreen(world types.Vector2) types.Vector2 {
	cam := cs.camera()
	d := world.Sub(cam.Position)
	dX, dY := cs.basis()
	return types.Vec2(d.Dot(dX), d.Dot(dY)).Scale(cam.Zoom)
}

// ComposeTransform 返回镜头空间变换：先平移 -position，再旋转 -rotation，最后缩放 zoom
//
// 结果把世界坐标映射为以视口中心为原点的屏幕偏移；
// 渲染端需要再平移半个视口尺寸（见 RenderSystem）。
func (cs *CameraSystem) ComposeTransform() ebiten.GeoM {
	cam := cs.camera()
	var geoM ebiten.GeoM
	geoM.Translate(-cam.Position.X, -cam.Position.Y)
	geoM.Rotate(-cam.Rotation)
	geoM.Scale(cam.Zoom, cam.Zoom)
	return geoM
}
