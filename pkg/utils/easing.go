package utils

import (
	"math"

	"github.com/decker502/viewcam/pkg/types"
)

// Easing Functions (缓动函数)
//
// 缓动函数用于控制镜头位移的速度曲线。
// 所有函数接受一个进度值 t ∈ [0, 1]，返回缓动后的进度。
// 函数都是纯函数，没有内部状态，每帧可以放心调用。

// EasingFunc 缓动函数签名
type EasingFunc func(t float64) float64

// bounceOutPeriod BounceOut 的振荡周期
const bounceOutPeriod = 0.3

// easingTable 缓动类型 → 函数 的查表（按枚举值索引，避免每帧的 map 查找）
var easingTable = [...]EasingFunc{
	types.EasingUnknown:        EaseLinear,
	types.EasingInstant:        EaseInstant,
	types.EasingLinear:         EaseLinear,
	types.EasingQuadraticInOut: EaseQuadraticInOut,
	types.EasingCubicInOut:     EaseCubicInOut,
	types.EasingQuarticOut:     EaseQuarticOut,
	types.EasingBounceOut:      EaseBounceOut,
}

// EasingFuncFor 返回缓动类型对应的函数
// 超出枚举范围的值按线性处理
func EasingFuncFor(kind types.EasingType) EasingFunc {
	if kind < 0 || int(kind) >= len(easingTable) {
		return EaseLinear
	}
	return easingTable[kind]
}

// Ease 计算指定缓动类型在进度 t 处的值
func Ease(kind types.EasingType, t float64) float64 {
	return EasingFuncFor(kind)(t)
}

// EaseInstant 瞬间到位
// 无论 t 为何值都返回 1
func EaseInstant(t float64) float64 {
	return 1
}

// EaseLinear 线性缓动（无缓动）
// 公式：f(t) = t
func EaseLinear(t float64) float64 {
	return t
}

// EaseQuadraticInOut 二次缓入缓出
// 公式：f(t) = t² / (2t² - 2t + 1)
func EaseQuadraticInOut(t float64) float64 {
	return (t * t) / (2*t*t - 2*t + 1)
}

// EaseCubicInOut 三次缓入缓出
// 公式：f(t) = t³ / (3t² - 3t + 1)
func EaseCubicInOut(t float64) float64 {
	return (t * t * t) / (3*t*t - 3*t + 1)
}

// EaseQuarticOut 四次缓出
// 特点：开始很快，结束非常慢（方向键平移使用）
// 公式：f(t) = 1 - (t-1)⁴
func EaseQuarticOut(t float64) float64 {
	u := t - 1
	return 1 - u*u*u*u
}

// EaseBounceOut 弹性缓出
// 会略微越过终点再回弹，t=1 时并不精确等于 1（镜头落点由 Advance 修正）
// 公式：f(t) = 2^(-10t) · sin((t - p/4) · 2π / p) + 1，p = 0.3
func EaseBounceOut(t float64) float64 {
	p := bounceOutPeriod
	return math.Pow(2, -10*t)*math.Sin((t-p/4)*(2*math.Pi)/p) + 1
}

// Lerp 线性插值
// 在 a 和 b 之间根据 t 插值
// t=0 精确返回 a，t=1 精确返回 b
func Lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// LerpVector 对二维向量逐分量插值
func LerpVector(a, b types.Vector2, t float64) types.Vector2 {
	return types.Vector2{X: Lerp(a.X, b.X, t), Y: Lerp(a.Y, b.Y, t)}
}
