package types

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// EasingType 定义镜头位移动画使用的缓动曲线类型
// 这是一个封闭枚举，每个取值对应 utils 包中的一个纯函数
type EasingType int

const (
	// EasingUnknown 未知/未配置的缓动类型（按线性处理）
	EasingUnknown EasingType = iota
	// EasingInstant 瞬间到位（仅通过 totalSteps == 0 的路径使用）
	EasingInstant
	// EasingLinear 线性
	EasingLinear
	// EasingQuadraticInOut 二次缓入缓出
	EasingQuadraticInOut
	// EasingCubicInOut 三次缓入缓出
	EasingCubicInOut
	// EasingQuarticOut 四次缓出
	EasingQuarticOut
	// EasingBounceOut 弹性缓出
	EasingBounceOut
)

// easingNames 用于字符串与枚举的互相转换
var easingNames = map[EasingType]string{
	EasingInstant:        "Instant",
	EasingLinear:         "Linear",
	EasingQuadraticInOut: "QuadraticInOut",
	EasingCubicInOut:     "CubicInOut",
	EasingQuarticOut:     "QuarticOut",
	EasingBounceOut:      "BounceOut",
}

// String 返回缓动类型的字符串表示
func (e EasingType) String() string {
	if name, ok := easingNames[e]; ok {
		return name
	}
	return "Unknown"
}

// ParseEasingType 将名称（不区分大小写）解析为缓动类型
func ParseEasingType(name string) (EasingType, error) {
	trimmed := strings.TrimSpace(name)
	for kind, n := range easingNames {
		if strings.EqualFold(n, trimmed) {
			return kind, nil
		}
	}
	return EasingUnknown, fmt.Errorf("unknown easing type %q", name)
}

// MarshalYAML 以名称形式写出缓动类型
func (e EasingType) MarshalYAML() (interface{}, error) {
	return e.String(), nil
}

// UnmarshalYAML 从名称读取缓动类型
func (e *EasingType) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	kind, err := ParseEasingType(name)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*e = kind
	return nil
}
