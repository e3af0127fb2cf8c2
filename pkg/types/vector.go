// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

import "math"

// Vector2 二维向量（世界坐标或屏幕偏移）
type Vector2 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Vec2 构造一个 Vector2
func Vec2(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

// Add 返回 v + o
func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub 返回 v - o
func (v Vector2) Sub(o Vector2) Vector2 {
	return Vector2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale 返回 v * s
func (v Vector2) Scale(s float64) Vector2 {
	return Vector2{X: v.X * s, Y: v.Y * s}
}

// Dot 点积
func (v Vector2) Dot(o Vector2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Len 向量长度
func (v Vector2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}
