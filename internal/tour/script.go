// Package tour 把 tengo 脚本编译为镜头巡游路径
//
// 脚本运行结束后需要定义以下全局变量：
//
//	waypoints := [{x: 0, y: 0, curve: "CubicInOut", steps: 60, hold: 30}, ...]
//	loop := true  // 可选，默认 false
//
// 脚本可以读取宿主注入的 origin（镜头初始位置，{x, y}）和 extent（世界边长），
// 并可以导入 tengo 标准库中的 math、text、rand 模块。
package tour

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/decker502/viewcam/pkg/components"
	"github.com/decker502/viewcam/pkg/types"
)

// ErrEmptyTour 脚本没有产生任何路径点
var ErrEmptyTour = errors.New("tour has no waypoints")

// 脚本执行限制
const (
	scriptTimeout   = 2 * time.Second
	scriptMaxAllocs = 1 << 20
)

// Tour 编译好的巡游
type Tour struct {
	Waypoints []components.Waypoint
	Loop      bool
}

// Env 注入脚本的宿主变量
type Env struct {
	Origin types.Vector2
	Extent float64
}

// Load 读取并编译巡游脚本文件
func Load(ctx context.Context, path string, env Env) (*Tour, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tour script %s: %w", path, err)
	}
	t, err := Compile(ctx, src, env)
	if err != nil {
		return nil, fmt.Errorf("tour script %s: %w", path, err)
	}
	return t, nil
}

// Compile 运行脚本并读取 waypoints / loop
func Compile(ctx context.Context, src []byte, env Env) (*Tour, error) {
	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap("math", "text", "rand"))
	script.SetMaxAllocs(scriptMaxAllocs)

	if err := script.Add("origin", map[string]any{"x": env.Origin.X, "y": env.Origin.Y}); err != nil {
		return nil, err
	}
	if err := script.Add("extent", env.Extent); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, scriptTimeout)
	defer cancel()

	compiled, err := script.RunContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to run tour script: %w", err)
	}

	if !compiled.IsDefined("waypoints") {
		return nil, ErrEmptyTour
	}
	raw := compiled.Get("waypoints").Array()
	if len(raw) == 0 {
		return nil, ErrEmptyTour
	}

	t := &Tour{Waypoints: make([]components.Waypoint, 0, len(raw))}
	for i, item := range raw {
		wp, err := parseWaypoint(item)
		if err != nil {
			return nil, fmt.Errorf("waypoint %d: %w", i, err)
		}
		t.Waypoints = append(t.Waypoints, wp)
	}

	if compiled.IsDefined("loop") {
		t.Loop = compiled.Get("loop").Bool()
	}
	return t, nil
}

func parseWaypoint(item any) (components.Waypoint, error) {
	m, ok := item.(map[string]any)
	if !ok {
		return components.Waypoint{}, fmt.Errorf("expected a map, got %T", item)
	}

	x, okX := toFloat(m["x"])
	y, okY := toFloat(m["y"])
	if !okX || !okY {
		return components.Waypoint{}, fmt.Errorf("x and y must be numbers")
	}

	wp := components.Waypoint{
		Target: types.Vec2(x, y),
		Easing: types.EasingLinear,
	}

	if v, ok := m["curve"]; ok {
		name, ok := v.(string)
		if !ok {
			return components.Waypoint{}, fmt.Errorf("curve must be a string, got %T", v)
		}
		easing, err := types.ParseEasingType(name)
		if err != nil {
			return components.Waypoint{}, err
		}
		wp.Easing = easing
	}

	if v, ok := m["steps"]; ok {
		steps, ok := toInt(v)
		if !ok {
			return components.Waypoint{}, fmt.Errorf("steps must be a number, got %T", v)
		}
		wp.Steps = steps
	}

	if v, ok := m["hold"]; ok {
		hold, ok := toInt(v)
		if !ok || hold < 0 {
			return components.Waypoint{}, fmt.Errorf("hold must be a non-negative number, got %v", v)
		}
		wp.Hold = hold
	}

	return wp, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case int:
		return n, true
	}
	return 0, false
}
