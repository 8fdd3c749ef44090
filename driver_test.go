package orrery

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const waitFor = 2 * time.Second

// probeScene records what the driver asks of it.
type probeScene struct {
	mu        sync.Mutex
	setups    int
	steps     int
	renders   int
	events    []PointerEvent
	atStep    []int // number of events seen when each step started
	sizes     [][2]int
	setupErr  error
	panicStep int // step number that panics, 0 for none

	gate    chan struct{} // when set, Step waits on it
	stepped chan struct{}
}

func newProbe() *probeScene {
	return &probeScene{stepped: make(chan struct{}, 64)}
}

func (p *probeScene) Name() string { return "probe" }

func (p *probeScene) Setup(s Surface) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.setups++
	return p.setupErr
}

func (p *probeScene) Step() error {
	defer func() {
		select {
		case p.stepped <- struct{}{}:
		default:
		}
	}()
	if p.gate != nil {
		<-p.gate
	}
	p.mu.Lock()
	p.steps++
	n := p.steps
	p.atStep = append(p.atStep, len(p.events))
	p.mu.Unlock()
	if n == p.panicStep {
		panic("boom")
	}
	return nil
}

func (p *probeScene) Render(s Surface) error {
	p.mu.Lock()
	p.renders++
	p.mu.Unlock()
	s.Show()
	return nil
}

func (p *probeScene) Pointer(ev PointerEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
}

func (p *probeScene) Resize(w, h int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sizes = append(p.sizes, [2]int{w, h})
}

func (p *probeScene) snapshot() (steps, renders int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.steps, p.renders
}

func (p *probeScene) waitStep(t *testing.T) {
	t.Helper()
	select {
	case <-p.stepped:
	case <-time.After(waitFor):
		t.Fatal("no frame was stepped")
	}
}

func TestDriverRunsFrames(t *testing.T) {
	defer goleak.VerifyNone(t)
	scene, surface, sched := newProbe(), newMemSurface(40, 10), NewManualScheduler()
	d, err := Mount(context.Background(), scene, surface, sched, nil)
	require.NoError(t, err)
	require.NoError(t, d.Wait())
	require.NotEmpty(t, d.ID())

	for i := 0; i < 3; i++ {
		require.True(t, sched.Tick())
		scene.waitStep(t)
	}
	require.Eventually(t, func() bool { return d.Frames() == 3 }, waitFor, time.Millisecond)
	d.Unmount()
	steps, renders := scene.snapshot()
	assert.Equal(t, 3, steps)
	assert.Equal(t, 3, renders)
	assert.Equal(t, 1, scene.setups)
	assert.Equal(t, 1, surface.releases())
}

func TestDriverAppliesInputBeforeFrame(t *testing.T) {
	defer goleak.VerifyNone(t)
	scene, sched := newProbe(), NewManualScheduler()
	d, err := Mount(context.Background(), scene, newMemSurface(40, 10), sched, nil)
	require.NoError(t, err)
	defer d.Unmount()

	d.Dispatch(PointerEvent{Kind: PointerDown, X: 1, Y: 2})
	d.Dispatch(PointerEvent{Kind: PointerMove, X: 3, Y: 4})
	require.True(t, sched.Tick())
	scene.waitStep(t)

	scene.mu.Lock()
	defer scene.mu.Unlock()
	assert.Equal(t, []int{2}, scene.atStep)
	assert.Equal(t, PointerMove, scene.events[1].Kind)
}

func TestDriverUnmountWithPendingFrame(t *testing.T) {
	defer goleak.VerifyNone(t)
	scene, sched := newProbe(), NewManualScheduler()
	scene.gate = make(chan struct{})
	d, err := Mount(context.Background(), scene, newMemSurface(40, 10), sched, nil)
	require.NoError(t, err)

	// Frame 1 blocks in Step while frame 2 is queued.
	require.True(t, sched.Tick())
	require.True(t, sched.Tick())

	done := make(chan struct{})
	go func() {
		d.Unmount()
		close(done)
	}()
	<-d.ctx.Done()
	close(scene.gate)
	select {
	case <-done:
	case <-time.After(waitFor):
		t.Fatal("unmount did not return")
	}

	steps, _ := scene.snapshot()
	assert.Equal(t, 1, steps, "no frame may start after teardown began")
	assert.False(t, sched.Tick(), "the schedule must be cancelled")
	d.Dispatch(PointerEvent{Kind: PointerDown})
	d.Resize(10, 10)
	d.Unmount()
}

func TestDriverZeroSizeSurface(t *testing.T) {
	defer goleak.VerifyNone(t)
	var logs bytes.Buffer
	scene, surface := newProbe(), newMemSurface(0, 10)
	d, err := Mount(context.Background(), scene, surface, NewManualScheduler(), NewLogger(&logs))
	require.ErrorIs(t, err, ErrZeroSize)
	assert.Zero(t, scene.setups)
	assert.Contains(t, logs.String(), "level=error")
	assert.Contains(t, logs.String(), "component=probe")
	d.Unmount()
	d.Unmount()
	assert.Equal(t, 1, surface.releases())
}

func TestDriverSetupError(t *testing.T) {
	defer goleak.VerifyNone(t)
	scene := newProbe()
	scene.setupErr = errors.New("no room")
	d, err := Mount(context.Background(), scene, newMemSurface(4, 4), NewManualScheduler(), nil)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "no room"))
	d.Unmount()
}

func TestDriverLateSurfaceReleased(t *testing.T) {
	defer goleak.VerifyNone(t)
	scene, surface := newProbe(), newMemSurface(40, 10)
	loaded := make(chan struct{})
	d := MountAsync(context.Background(), scene, func(ctx context.Context) (Surface, error) {
		<-loaded
		return surface, nil
	}, NewManualScheduler(), nil)

	d.Unmount()
	close(loaded)
	require.ErrorIs(t, d.Wait(), ErrDisposed)
	assert.Zero(t, scene.setups, "a torn down component must not be set up")
	assert.Equal(t, 1, surface.releases())
}

func TestDriverLoaderCancelled(t *testing.T) {
	defer goleak.VerifyNone(t)
	d := MountAsync(context.Background(), newProbe(), func(ctx context.Context) (Surface, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}, NewManualScheduler(), nil)
	d.Unmount()
	require.ErrorIs(t, d.Wait(), ErrDisposed)
}

func TestDriverMountAsync(t *testing.T) {
	defer goleak.VerifyNone(t)
	scene, sched := newProbe(), NewManualScheduler()
	d := MountAsync(context.Background(), scene, func(ctx context.Context) (Surface, error) {
		return newMemSurface(20, 5), nil
	}, sched, nil)
	require.NoError(t, d.Wait())
	require.True(t, sched.Tick())
	scene.waitStep(t)
	d.Unmount()

	d = MountAsync(context.Background(), newProbe(), func(ctx context.Context) (Surface, error) {
		return nil, errors.New("no canvas")
	}, NewManualScheduler(), nil)
	err := d.Wait()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no canvas")
	d.Unmount()
}

func TestDriverFailedLoaderSurfaceReleased(t *testing.T) {
	defer goleak.VerifyNone(t)
	scene, surface := newProbe(), newMemSurface(40, 10)
	d := MountAsync(context.Background(), scene, func(ctx context.Context) (Surface, error) {
		return surface, errors.New("partial")
	}, NewManualScheduler(), nil)
	err := d.Wait()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "partial")
	d.Unmount()
	d.Unmount()
	assert.Zero(t, scene.setups)
	assert.Equal(t, 1, surface.releases(), "the surface of a failed load must be released exactly once")
}

func TestDriverRecoversFramePanic(t *testing.T) {
	defer goleak.VerifyNone(t)
	var logs bytes.Buffer
	scene, sched := newProbe(), NewManualScheduler()
	scene.panicStep = 2
	d, err := Mount(context.Background(), scene, newMemSurface(40, 10), sched, NewLogger(&logs))
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		require.True(t, sched.Tick())
		scene.waitStep(t)
	}
	require.Eventually(t, func() bool { return d.Frames() == 2 }, waitFor, time.Millisecond)
	d.Unmount()

	steps, renders := scene.snapshot()
	assert.Equal(t, 3, steps)
	assert.Equal(t, 2, renders)
	assert.Contains(t, logs.String(), "panic=boom")
}

func TestDriverResize(t *testing.T) {
	defer goleak.VerifyNone(t)
	scene, sched := newProbe(), NewManualScheduler()
	d, err := Mount(context.Background(), scene, newMemSurface(40, 10), sched, nil)
	require.NoError(t, err)
	defer d.Unmount()

	d.Resize(0, 5)
	d.Resize(30, 8)
	d.Resize(50, 9)
	require.True(t, sched.Tick())
	scene.waitStep(t)

	scene.mu.Lock()
	defer scene.mu.Unlock()
	require.NotEmpty(t, scene.sizes)
	assert.Equal(t, [2]int{50, 9}, scene.sizes[len(scene.sizes)-1])
	for _, s := range scene.sizes {
		assert.NotZero(t, s[0]*s[1], "zero sizes must be skipped")
	}
}

func TestDriverTicker(t *testing.T) {
	defer goleak.VerifyNone(t)
	scene := newProbe()
	logger := kitlog.NewNopLogger()
	d, err := Mount(context.Background(), scene, newMemSurface(10, 10), NewTickerScheduler(time.Millisecond), logger)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		scene.waitStep(t)
	}
	d.Unmount()
	steps, _ := scene.snapshot()
	assert.GreaterOrEqual(t, steps, 3)
}

func TestDriverParentContext(t *testing.T) {
	defer goleak.VerifyNone(t)
	ctx, cancel := context.WithCancel(context.Background())
	scene, sched := newProbe(), NewManualScheduler()
	d, err := Mount(ctx, scene, newMemSurface(10, 10), sched, nil)
	require.NoError(t, err)
	cancel()
	// The loop exits on its own; Unmount still releases everything.
	d.Unmount()
	steps, _ := scene.snapshot()
	assert.Zero(t, steps)
}
