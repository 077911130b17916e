package viewport

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		touch         bool
		wantMobile    bool
		wantTablet    bool
		wantDesktop   bool
		wantOrient    string
	}{
		{"desktop landscape", 1024, 768, false, false, false, true, OrientationLandscape},
		{"mobile portrait", 500, 900, true, true, false, false, OrientationPortrait},
		{"tablet lower bound", 768, 1024, true, false, true, false, OrientationPortrait},
		{"tablet upper bound exclusive", 1023, 700, false, false, true, false, OrientationLandscape},
		{"square counts as landscape", 800, 800, false, false, true, false, OrientationLandscape},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.width, tt.height, tt.touch)
			assert.Equal(t, tt.wantMobile, got.IsMobile)
			assert.Equal(t, tt.wantTablet, got.IsTablet)
			assert.Equal(t, tt.wantDesktop, got.IsDesktop)
			assert.Equal(t, tt.wantOrient, got.Orientation)
			assert.Equal(t, tt.touch, got.IsTouchDevice)
			assert.Equal(t, tt.width, got.ScreenWidth)
			assert.Equal(t, tt.height, got.ScreenHeight)
		})
	}
}

func TestBreakpointFor(t *testing.T) {
	assert.Equal(t, BreakpointXS, BreakpointFor(479))
	assert.Equal(t, BreakpointSM, BreakpointFor(480))
	assert.Equal(t, BreakpointSM, BreakpointFor(767))
	assert.Equal(t, BreakpointMD, BreakpointFor(768))
	assert.Equal(t, BreakpointLG, BreakpointFor(1024))
	assert.Equal(t, BreakpointXL, BreakpointFor(1280))
}

func TestResponsiveValueExactMatchOnly(t *testing.T) {
	values := map[Breakpoint]string{
		BreakpointXS: "compact",
		BreakpointXL: "wide",
	}

	assert.Equal(t, "compact", ResponsiveValue(BreakpointXS, values, "default"))
	assert.Equal(t, "wide", ResponsiveValue(BreakpointXL, values, "default"))
	// No nearest-bucket search: md has no entry, so the default wins even
	// though sm-adjacent buckets are defined.
	assert.Equal(t, "default", ResponsiveValue(BreakpointMD, values, "default"))
}

type fakeEnvironment struct {
	mu      sync.Mutex
	width   int
	height  int
	touch   bool
	signals chan Signal
}

func newFakeEnvironment(width, height int, touch bool) *fakeEnvironment {
	return &fakeEnvironment{width: width, height: height, touch: touch, signals: make(chan Signal)}
}

func (e *fakeEnvironment) Viewport() (int, int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.width, e.height
}

func (e *fakeEnvironment) TouchCapable() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.touch
}

func (e *fakeEnvironment) Signals() <-chan Signal { return e.signals }

func (e *fakeEnvironment) resize(width, height int) {
	e.mu.Lock()
	e.width = width
	e.height = height
	e.mu.Unlock()
	e.signals <- SignalResize
}

func TestObserverRecomputesOnSignals(t *testing.T) {
	env := newFakeEnvironment(1440, 900, false)

	changes := make(chan Classification, 4)
	observer := NewObserver(env, func(c Classification) { changes <- c })
	defer observer.Close()

	// Initial computation is synchronous.
	initial := <-changes
	assert.True(t, initial.IsDesktop)
	assert.Equal(t, BreakpointXL, observer.CurrentBreakpoint())

	env.resize(500, 900)
	updated := <-changes
	assert.True(t, updated.IsMobile)
	assert.Equal(t, OrientationPortrait, updated.Orientation)

	// current is updated before onChange fires, so this is already visible.
	require.True(t, observer.Current().IsMobile)
	assert.Equal(t, BreakpointSM, observer.CurrentBreakpoint())
}

func TestObserverCloseStopsListening(t *testing.T) {
	env := newFakeEnvironment(800, 600, false)
	observer := NewObserver(env, nil)

	observer.Close()

	// After Close, signals are no longer consumed.
	select {
	case env.signals <- SignalResize:
		t.Fatal("signal consumed after Close")
	default:
	}
	assert.Equal(t, 800, observer.Current().ScreenWidth)
}
