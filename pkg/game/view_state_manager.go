package game

import (
	"errors"
	"fmt"
	"log"

	"github.com/decker502/viewcam/pkg/types"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// ErrNoBookmark 书签槽位为空
var ErrNoBookmark = errors.New("bookmark slot is empty")

// Bookmark 一个保存下来的视图
type Bookmark struct {
	Position types.Vector2 `yaml:"position"`
	Zoom     float64       `yaml:"zoom"`
	Rotation float64       `yaml:"rotation"`
}

// ViewSettings 与书签无关的全局视图设置
type ViewSettings struct {
	Fullscreen bool `yaml:"fullscreen"` // 启动时是否全屏
}

// ViewStateManager 视图状态管理器
// 负责书签和视图设置的加载、保存和内存缓存
type ViewStateManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	bookmarks    map[string]Bookmark
	settings     ViewSettings
}

// 存储路径常量
const (
	viewObject       = "views"
	lastViewProperty = "last"
	settingsObject   = "settings"
	settingsProperty = "global"
)

// NewViewStateManager 创建视图状态管理器
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存保存）
func NewViewStateManager(gdataManager *gdata.Manager) *ViewStateManager {
	vm := &ViewStateManager{
		gdataManager: gdataManager,
		bookmarks:    make(map[string]Bookmark),
	}

	// 加载失败不是致命错误，使用默认设置
	if err := vm.loadSettings(); err != nil {
		log.Printf("[ViewStateManager] Warning: Failed to load settings: %v (using defaults)", err)
	}
	return vm
}

// slotProperty 槽位编号（0 起）→ 存储属性名
func slotProperty(slot int) string {
	return fmt.Sprintf("slot%d", slot+1)
}

// Store 把视图保存到书签槽位（0 起）
// 降级模式下只保存在内存中
func (vm *ViewStateManager) Store(slot int, b Bookmark) error {
	if slot < 0 {
		return fmt.Errorf("invalid bookmark slot %d", slot)
	}
	if err := vm.put(slotProperty(slot), b); err != nil {
		return err
	}
	log.Printf("[ViewStateManager] Bookmark %d stored at (%.1f, %.1f)", slot+1, b.Position.X, b.Position.Y)
	return nil
}

// Recall 读取书签槽位（0 起）
// 槽位为空时返回 ErrNoBookmark
func (vm *ViewStateManager) Recall(slot int) (Bookmark, error) {
	if slot < 0 {
		return Bookmark{}, fmt.Errorf("invalid bookmark slot %d", slot)
	}
	return vm.get(slotProperty(slot))
}

// SaveLast 保存退出时的视图
func (vm *ViewStateManager) SaveLast(b Bookmark) error {
	return vm.put(lastViewProperty, b)
}

// LoadLast 读取上次退出时的视图
func (vm *ViewStateManager) LoadLast() (Bookmark, error) {
	return vm.get(lastViewProperty)
}

// Settings 当前视图设置
func (vm *ViewStateManager) Settings() ViewSettings {
	return vm.settings
}

// SetFullscreen 设置并持久化全屏开关
func (vm *ViewStateManager) SetFullscreen(enabled bool) error {
	vm.settings.Fullscreen = enabled
	return vm.saveSettings()
}

func (vm *ViewStateManager) put(property string, b Bookmark) error {
	vm.bookmarks[property] = b

	// 降级模式：无法持久化，但不报错
	if vm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(&b)
	if err != nil {
		return fmt.Errorf("failed to marshal bookmark %s: %w", property, err)
	}
	if err := vm.gdataManager.SaveObjectProp(viewObject, property, data); err != nil {
		return fmt.Errorf("failed to save bookmark %s: %w", property, err)
	}
	return nil
}

func (vm *ViewStateManager) get(property string) (Bookmark, error) {
	if b, ok := vm.bookmarks[property]; ok {
		return b, nil
	}

	if vm.gdataManager == nil || !vm.gdataManager.ObjectPropExists(viewObject, property) {
		return Bookmark{}, fmt.Errorf("%s: %w", property, ErrNoBookmark)
	}

	data, err := vm.gdataManager.LoadObjectProp(viewObject, property)
	if err != nil {
		return Bookmark{}, fmt.Errorf("failed to load bookmark %s: %w", property, err)
	}

	var b Bookmark
	if err := yaml.Unmarshal(data, &b); err != nil {
		return Bookmark{}, fmt.Errorf("failed to unmarshal bookmark %s: %w", property, err)
	}
	if b.Zoom <= 0 {
		b.Zoom = 1.0
	}

	vm.bookmarks[property] = b
	log.Printf("[ViewStateManager] Bookmark %s loaded", property)
	return b, nil
}

func (vm *ViewStateManager) loadSettings() error {
	if vm.gdataManager == nil || !vm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}

	data, err := vm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	var s ViewSettings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	vm.settings = s
	return nil
}

func (vm *ViewStateManager) saveSettings() error {
	if vm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(&vm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := vm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	log.Printf("[ViewStateManager] Settings saved successfully")
	return nil
}
