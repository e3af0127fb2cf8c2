package config

import (
	"fmt"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"gopkg.in/yaml.v3"
)

// MaxBookmarkSlots 书签槽位上限
const MaxBookmarkSlots = 9

// KeyList 一组按键，YAML 中写作按键名列表，如 [ArrowLeft, A]
// 按键名与 ebiten.Key 的文本形式一致（不区分大小写）
type KeyList []ebiten.Key

// UnmarshalYAML 按键名 → ebiten.Key，未知按键名报错并带上行号
func (l *KeyList) UnmarshalYAML(value *yaml.Node) error {
	var names []string
	if err := value.Decode(&names); err != nil {
		return err
	}

	keys := make(KeyList, 0, len(names))
	for _, name := range names {
		var k ebiten.Key
		if err := k.UnmarshalText([]byte(name)); err != nil {
			return fmt.Errorf("line %d: unknown key %q", value.Line, name)
		}
		keys = append(keys, k)
	}
	*l = keys
	return nil
}

// MarshalYAML ebiten.Key → 按键名
func (l KeyList) MarshalYAML() (any, error) {
	names := make([]string, 0, len(l))
	for _, k := range l {
		names = append(names, k.String())
	}
	return names, nil
}

// Contains 是否包含指定按键
func (l KeyList) Contains(key ebiten.Key) bool {
	return slices.Contains(l, key)
}

// KeyBindings 按键绑定
// 每个动作可以绑定多个按键，任意一个触发即可
type KeyBindings struct {
	PanLeft      KeyList `yaml:"panLeft"`
	PanRight     KeyList `yaml:"panRight"`
	PanUp        KeyList `yaml:"panUp"`
	PanDown      KeyList `yaml:"panDown"`
	RotateLeft   KeyList `yaml:"rotateLeft"`
	RotateRight  KeyList `yaml:"rotateRight"`
	ZoomIn       KeyList `yaml:"zoomIn"`
	ZoomOut      KeyList `yaml:"zoomOut"`
	Reset        KeyList `yaml:"reset"`
	ToggleTour   KeyList `yaml:"toggleTour"`
	CopyPosition KeyList `yaml:"copyPosition"`
	Fullscreen   KeyList `yaml:"fullscreen"`

	// Bookmarks 第 i 个按键对应第 i 个书签槽位；按住 Shift 保存，单按读取
	Bookmarks KeyList `yaml:"bookmarks"`
}

// applyDefaults 为未配置的动作设置默认按键
func (b *KeyBindings) applyDefaults() {
	setDefault := func(l *KeyList, keys ...ebiten.Key) {
		if len(*l) == 0 {
			*l = keys
		}
	}

	setDefault(&b.PanLeft, ebiten.KeyArrowLeft, ebiten.KeyA)
	setDefault(&b.PanRight, ebiten.KeyArrowRight, ebiten.KeyD)
	setDefault(&b.PanUp, ebiten.KeyArrowUp, ebiten.KeyW)
	setDefault(&b.PanDown, ebiten.KeyArrowDown, ebiten.KeyS)
	setDefault(&b.RotateLeft, ebiten.KeyQ)
	setDefault(&b.RotateRight, ebiten.KeyE)
	setDefault(&b.ZoomIn, ebiten.KeyX)
	setDefault(&b.ZoomOut, ebiten.KeyZ)
	setDefault(&b.Reset, ebiten.KeyHome)
	setDefault(&b.ToggleTour, ebiten.KeyT)
	setDefault(&b.CopyPosition, ebiten.KeyC)
	setDefault(&b.Fullscreen, ebiten.KeyF11)
	setDefault(&b.Bookmarks, ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4)
}
