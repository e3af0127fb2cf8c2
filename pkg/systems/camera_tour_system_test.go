package systems

import (
	"testing"

	"github.com/decker502/viewcam/pkg/components"
	"github.com/decker502/viewcam/pkg/ecs"
	"github.com/decker502/viewcam/pkg/types"
)

// tick 模拟一帧：巡游 → 镜头推进
func tick(ts *CameraTourSystem, cs *CameraSystem) {
	ts.Update()
	cs.Advance()
}

func TestCameraTourSystem_VisitsWaypointsInOrder(t *testing.T) {
	em, cs := newTestCamera(types.Vector2{})
	ts := NewCameraTourSystem(em, cs)

	waypoints := []components.Waypoint{
		{Target: types.Vec2(100, 0), Easing: types.EasingLinear, Steps: 4},
		{Target: types.Vec2(100, 100), Easing: types.EasingCubicInOut, Steps: 2, Hold: 3},
		{Target: types.Vec2(-5, -5), Easing: types.EasingInstant},
	}
	ts.Start(waypoints, false)
	if !ts.IsActive() {
		t.Fatal("tour should be active after Start")
	}

	// 第一个路径点：下达 + 4 步 + 落地
	tick(ts, cs)
	if cs.Target() != waypoints[0].Target {
		t.Fatalf("first waypoint not issued, target %+v", cs.Target())
	}
	for i := 0; i < 4; i++ {
		tick(ts, cs)
	}
	if cs.Position() != waypoints[0].Target {
		t.Fatalf("camera should land on waypoint 0, at %+v", cs.Position())
	}
	if next, total := ts.Progress(); next != 1 || total != 3 {
		t.Errorf("Progress() = (%d, %d), want (1, 3)", next, total)
	}

	// 第二个路径点
	tick(ts, cs)
	if cs.Target() != waypoints[1].Target {
		t.Fatalf("second waypoint not issued, target %+v", cs.Target())
	}
	tick(ts, cs)
	tick(ts, cs) // 落地
	if cs.Position() != waypoints[1].Target {
		t.Fatalf("camera should land on waypoint 1, at %+v", cs.Position())
	}

	// 停留 3 帧
	for i := 0; i < 3; i++ {
		tick(ts, cs)
		if cs.Target() != waypoints[1].Target {
			t.Fatalf("hold frame %d: tour advanced too early", i)
		}
	}

	// 第三个路径点是瞬移
	tick(ts, cs)
	if cs.Position() != waypoints[2].Target {
		t.Fatalf("instant waypoint: position %+v", cs.Position())
	}

	// 没有循环：下一帧结束
	tick(ts, cs)
	if ts.IsActive() {
		t.Error("non-looping tour should finish after the last waypoint")
	}
}

func TestCameraTourSystem_Loop(t *testing.T) {
	em, cs := newTestCamera(types.Vector2{})
	ts := NewCameraTourSystem(em, cs)

	a := types.Vec2(1, 0)
	b := types.Vec2(2, 0)
	ts.Start([]components.Waypoint{
		{Target: a, Easing: types.EasingInstant},
		{Target: b, Easing: types.EasingInstant},
	}, true)

	want := []types.Vector2{a, b, a, b, a}
	for i, w := range want {
		tick(ts, cs)
		if cs.Position() != w {
			t.Errorf("frame %d: position %+v, want %+v", i, cs.Position(), w)
		}
	}
	if !ts.IsActive() {
		t.Error("looping tour should stay active")
	}
}

func TestCameraTourSystem_StopAndEmpty(t *testing.T) {
	em, cs := newTestCamera(types.Vector2{})
	ts := NewCameraTourSystem(em, cs)

	ts.Start(nil, true)
	if ts.IsActive() {
		t.Error("empty tour should not start")
	}

	ts.Start([]components.Waypoint{{Target: types.Vec2(50, 50), Easing: types.EasingLinear, Steps: 10}}, false)
	tick(ts, cs)
	ts.Stop()
	if ts.IsActive() {
		t.Error("Stop should end the tour")
	}
	if ecs.HasComponent[*components.TourComponent](em, cs.Entity()) {
		t.Error("Stop should remove the TourComponent")
	}

	// 已下达的动画继续完成
	for i := 0; i < 11; i++ {
		tick(ts, cs)
	}
	if cs.Position() != types.Vec2(50, 50) {
		t.Errorf("in-flight tween should still land, at %+v", cs.Position())
	}

	ts.Stop()
	if next, total := ts.Progress(); next != 0 || total != 0 {
		t.Errorf("Progress() after stop = (%d, %d)", next, total)
	}
}
