package utils

import (
	"sync"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestInputTrackerInitialState(t *testing.T) {
	it := NewInputTracker()

	if it.IsKeyHeld(ebiten.KeyA) {
		t.Error("Expected no key to be held initially")
	}
	if it.IsKeyPressedThisFrame(ebiten.KeyA) || it.IsKeyReleasedThisFrame(ebiten.KeyA) {
		t.Error("Expected no key edge initially")
	}
	if it.IsButtonHeld(ebiten.MouseButtonLeft) {
		t.Error("Expected no button to be held initially")
	}
	if len(it.HeldKeys()) != 0 {
		t.Errorf("Expected HeldKeys to be empty, got %v", it.HeldKeys())
	}
}

// TestKeyPressLifecycle 按下 → 保持 → 松开 的完整生命周期
func TestKeyPressLifecycle(t *testing.T) {
	it := NewInputTracker()
	key := ebiten.KeyArrowRight

	// 第 1 帧：按下
	it.OnKeyDown(key)
	if !it.IsKeyHeld(key) {
		t.Error("frame 1: expected key held")
	}
	if !it.IsKeyPressedThisFrame(key) {
		t.Error("frame 1: expected key pressed this frame")
	}
	if it.IsKeyReleasedThisFrame(key) {
		t.Error("frame 1: key must not be released")
	}
	it.Advance()

	// 第 2 帧：保持
	if !it.IsKeyHeld(key) {
		t.Error("frame 2: expected key still held")
	}
	if it.IsKeyPressedThisFrame(key) {
		t.Error("frame 2: pressed edge must be gone after Advance")
	}
	it.Advance()

	// 第 3 帧：松开
	it.OnKeyUp(key)
	if it.IsKeyHeld(key) {
		t.Error("frame 3: key must not be held")
	}
	if !it.IsKeyReleasedThisFrame(key) {
		t.Error("frame 3: expected released edge")
	}
	it.Advance()

	// 第 4 帧：空闲
	if it.IsKeyReleasedThisFrame(key) {
		t.Error("frame 4: released edge must be gone after Advance")
	}
}

// TestButtonPressLifecycle 鼠标按钮与按键行为一致
func TestButtonPressLifecycle(t *testing.T) {
	it := NewInputTracker()
	b := ebiten.MouseButtonLeft

	it.OnButtonDown(b)
	if !it.IsButtonHeld(b) || !it.IsButtonPressedThisFrame(b) {
		t.Error("expected button held and pressed in the same frame")
	}
	it.Advance()

	if it.IsButtonPressedThisFrame(b) || !it.IsButtonHeld(b) {
		t.Error("expected only held after Advance")
	}

	it.OnButtonUp(b)
	if !it.IsButtonReleasedThisFrame(b) {
		t.Error("expected released edge")
	}
	it.Advance()
	if it.IsButtonReleasedThisFrame(b) {
		t.Error("released edge must not survive Advance")
	}
}

// TestIdempotentEvents 重复的按下/松开事件没有额外效果
func TestIdempotentEvents(t *testing.T) {
	it := NewInputTracker()

	it.OnKeyDown(ebiten.KeySpace)
	it.OnKeyDown(ebiten.KeySpace)
	it.OnKeyDown(ebiten.KeySpace)
	it.OnKeyUp(ebiten.KeySpace)

	// 一次松开就必须移除所有"出现"
	if it.IsKeyHeld(ebiten.KeySpace) {
		t.Error("single key-up must remove the key regardless of repeated key-downs")
	}

	// 对未按下的键松开是空操作
	it.OnKeyUp(ebiten.KeyZ)
	it.OnButtonUp(ebiten.MouseButtonRight)
	if it.IsKeyReleasedThisFrame(ebiten.KeyZ) || it.IsButtonReleasedThisFrame(ebiten.MouseButtonRight) {
		t.Error("key-up for an unpressed key must not produce a release edge")
	}
}

// TestPressAndReleaseSameFrame 同一帧内按下又松开：没有按下边沿也没有松开边沿
func TestPressAndReleaseSameFrame(t *testing.T) {
	it := NewInputTracker()
	it.OnKeyDown(ebiten.KeyQ)
	it.OnKeyUp(ebiten.KeyQ)

	if it.IsKeyPressedThisFrame(ebiten.KeyQ) || it.IsKeyReleasedThisFrame(ebiten.KeyQ) {
		t.Error("a tap fully inside one frame is invisible to edge detection")
	}
}

// TestDoubleAdvanceLosesEdge 同一帧调用两次 Advance 会吞掉边沿（调用方约定）
func TestDoubleAdvanceLosesEdge(t *testing.T) {
	it := NewInputTracker()
	it.OnKeyDown(ebiten.KeyE)
	it.Advance()
	it.Advance()
	if it.IsKeyPressedThisFrame(ebiten.KeyE) {
		t.Error("edge should already be consumed")
	}
	if !it.IsKeyHeld(ebiten.KeyE) {
		t.Error("held state is unaffected by Advance")
	}
}

// TestQueriesHaveNoSideEffects 查询不会改变状态
func TestQueriesHaveNoSideEffects(t *testing.T) {
	it := NewInputTracker()
	it.OnKeyDown(ebiten.KeyW)

	for i := 0; i < 5; i++ {
		if !it.IsKeyPressedThisFrame(ebiten.KeyW) {
			t.Fatalf("query %d: pressed edge disappeared without Advance", i)
		}
	}
}

func TestUnknownKeyIsNeverFound(t *testing.T) {
	it := NewInputTracker()
	it.OnKeyDown(ebiten.KeyA)
	if it.IsKeyHeld(ebiten.Key(-7)) || it.IsButtonHeld(ebiten.MouseButton(99)) {
		t.Error("unrecognized codes must simply not be found")
	}
}

func TestAnyKeyHelpers(t *testing.T) {
	it := NewInputTracker()
	bindings := []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}

	if it.AnyKeyHeld(bindings) || it.AnyKeyPressedThisFrame(bindings) {
		t.Error("nothing is pressed yet")
	}

	it.OnKeyDown(ebiten.KeyA)
	if !it.AnyKeyHeld(bindings) || !it.AnyKeyPressedThisFrame(bindings) {
		t.Error("second binding should match")
	}
	if it.AnyKeyHeld(nil) {
		t.Error("empty binding never matches")
	}
}

func TestHeldKeysSorted(t *testing.T) {
	it := NewInputTracker()
	it.OnKeyDown(ebiten.KeyZ)
	it.OnKeyDown(ebiten.KeyA)
	it.OnKeyDown(ebiten.KeyM)

	got := it.HeldKeys()
	want := []ebiten.Key{ebiten.KeyA, ebiten.KeyM, ebiten.KeyZ}
	if len(got) != len(want) {
		t.Fatalf("HeldKeys() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("HeldKeys()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestReset(t *testing.T) {
	it := NewInputTracker()
	it.OnKeyDown(ebiten.KeyA)
	it.OnButtonDown(ebiten.MouseButtonLeft)
	it.Advance()

	it.Reset()

	if it.IsKeyHeld(ebiten.KeyA) || it.IsButtonHeld(ebiten.MouseButtonLeft) {
		t.Error("Reset must clear current sets")
	}
	if it.IsKeyReleasedThisFrame(ebiten.KeyA) || it.IsButtonReleasedThisFrame(ebiten.MouseButtonLeft) {
		t.Error("Reset must clear previous sets too, otherwise a release edge appears")
	}
}

// TestIndependentTrackers 多个跟踪器互不影响（不再是进程级全局状态）
func TestIndependentTrackers(t *testing.T) {
	a := NewInputTracker()
	b := NewInputTracker()
	a.OnKeyDown(ebiten.KeyF)

	if b.IsKeyHeld(ebiten.KeyF) {
		t.Error("trackers must not share state")
	}
}

// TestConcurrentEventIngest 平台线程投递事件与帧线程查询/Advance 并发执行
func TestConcurrentEventIngest(t *testing.T) {
	it := NewInputTracker()
	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			it.OnKeyDown(ebiten.KeyA)
			it.OnButtonDown(ebiten.MouseButtonLeft)
			it.OnKeyUp(ebiten.KeyA)
			it.OnButtonUp(ebiten.MouseButtonLeft)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			_ = it.IsKeyPressedThisFrame(ebiten.KeyA)
			_ = it.IsButtonHeld(ebiten.MouseButtonLeft)
			_ = it.HeldKeys()
			it.Advance()
		}
	}()
	wg.Wait()

	if it.IsKeyHeld(ebiten.KeyA) {
		t.Error("every key-down was paired with a key-up")
	}
}

// TestInputTrackerIsInputSink InputTracker 可以直接作为平台事件的接收端
func TestInputTrackerIsInputSink(t *testing.T) {
	var sink InputSink = NewInputTracker()
	sink.OnKeyDown(ebiten.KeyA)
	if !sink.(*InputTracker).IsKeyHeld(ebiten.KeyA) {
		t.Error("event should reach the tracker through the interface")
	}
}
