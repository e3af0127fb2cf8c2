// Package main provides a tween trajectory verification tool for the camera system.
//
// Usage:
//
//	go run cmd/verify_tween/main.go [flags]
//
// Flags:
//
//	--curve <name>     Easing curve to trace, or "all" (default: "all")
//	--steps <n>        Total tween steps (default: 10)
//	--from <x,y>       Start position (default: "0,0")
//	--to <x,y>         Target position (default: "100,0")
//	--verbose          Enable verbose logging
//
// Purpose:
//   - Print the per-step camera position for each curve
//   - Check that every curve lands exactly on the target
//   - Check that the camera reports idle after the last step
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/decker502/viewcam/pkg/ecs"
	"github.com/decker502/viewcam/pkg/systems"
	"github.com/decker502/viewcam/pkg/types"
)

var (
	curveFlag   = flag.String("curve", "all", "Easing curve (Linear, QuadraticInOut, CubicInOut, QuarticOut, BounceOut, Instant) or all")
	stepsFlag   = flag.Int("steps", 10, "Total tween steps")
	fromFlag    = flag.String("from", "0,0", "Start position x,y")
	toFlag      = flag.String("to", "100,0", "Target position x,y")
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging")
)

var allCurves = []types.EasingType{
	types.EasingLinear,
	types.EasingQuadraticInOut,
	types.EasingCubicInOut,
	types.EasingQuarticOut,
	types.EasingBounceOut,
	types.EasingInstant,
}

func parseVec(s string) (types.Vector2, error) {
	var v types.Vector2
	if _, err := fmt.Sscanf(strings.TrimSpace(s), "%g,%g", &v.X, &v.Y); err != nil {
		return v, fmt.Errorf("invalid position %q (want x,y): %w", s, err)
	}
	return v, nil
}

// trace 执行一次缓动并打印轨迹，返回是否精确落地
func trace(w io.Writer, curve types.EasingType, from, to types.Vector2, steps int) bool {
	em := ecs.NewEntityManager()
	cam := systems.NewCameraSystem(em, from, 1, 0)
	cam.RequestMove(to, curve, steps)

	fmt.Fprintf(w, "== %s (%d steps) ==\n", curve, steps)
	for i := 1; cam.IsTweening(); i++ {
		cam.Advance()
		step, total := cam.Step()
		p := cam.Position()
		fmt.Fprintf(w, "%4d  %12.6f %12.6f  %d/%d\n", i, p.X, p.Y, step, total)
	}

	// 静止后再推进一帧完成落地
	cam.Advance()
	p := cam.Position()
	ok := p == to
	status := "OK"
	if !ok {
		status = "MISSED"
	}
	fmt.Fprintf(w, "land  %12.6f %12.6f  %s\n\n", p.X, p.Y, status)
	return ok
}

func main() {
	flag.Parse()

	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	from, err := parseVec(*fromFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	to, err := parseVec(*toFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	curves := allCurves
	if !strings.EqualFold(*curveFlag, "all") {
		c, err := types.ParseEasingType(*curveFlag)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		curves = []types.EasingType{c}
	}

	failed := 0
	for _, c := range curves {
		if !trace(os.Stdout, c, from, to, *stepsFlag) {
			failed++
		}
	}
	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d curve(s) did not land on the target\n", failed)
		os.Exit(1)
	}
}
