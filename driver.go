package orrery

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	kitlog "github.com/go-kit/log"
	"github.com/google/uuid"
)

const eventBuffer = 256

var (
	// ErrZeroSize is returned when the surface has no area at setup.
	ErrZeroSize = errors.New("surface has zero dimensions")
	// ErrDisposed is returned when the component was torn down before setup completed.
	ErrDisposed = errors.New("component was torn down")
)

// Scene is a visual component driven by a Driver. Setup runs once before the
// loop starts; every other method is called from the loop goroutine only.
type Scene interface {
	Name() string
	Setup(s Surface) error
	Step() error
	Render(s Surface) error
	Pointer(ev PointerEvent)
	Resize(width, height int)
}

// SurfaceLoader acquires the render surface, possibly asynchronously. The
// context is cancelled when the component is torn down.
type SurfaceLoader func(ctx context.Context) (Surface, error)

// Driver runs the render loop of one mounted scene. All scene state is touched
// by a single goroutine; hosts feed it through Dispatch and Resize.
type Driver struct {
	id     string
	scene  Scene
	sched  Scheduler
	logger kitlog.Logger

	ctx     context.Context
	cancel  context.CancelFunc
	events  chan PointerEvent
	resized chan struct{}

	sizeMu  sync.Mutex
	size    [2]int
	mu      sync.Mutex // guards disposed and surface during setup and teardown
	surface Surface
	// disposed is set exactly once by Unmount, before anything is released.
	disposed bool
	running  sync.WaitGroup
	ready    chan struct{}
	err      error
	frames   atomic.Uint64
}

func newDriver(ctx context.Context, scene Scene, sched Scheduler, logger kitlog.Logger) *Driver {
	if logger == nil {
		logger = kitlog.NewNopLogger()
	}
	id := uuid.NewString()
	ctx, cancel := context.WithCancel(ctx)
	return &Driver{
		id:      id,
		scene:   scene,
		sched:   sched,
		logger:  kitlog.With(logger, "component", scene.Name(), "mount", id),
		ctx:     ctx,
		cancel:  cancel,
		events:  make(chan PointerEvent, eventBuffer),
		resized: make(chan struct{}, 1),
		ready:   make(chan struct{}),
	}
}

// Mount sets scene up on s and starts its render loop. On error the driver is
// inert, but must still be unmounted to release s.
func Mount(ctx context.Context, scene Scene, s Surface, sched Scheduler, logger kitlog.Logger) (*Driver, error) {
	d := newDriver(ctx, scene, sched, logger)
	d.setup(s, nil)
	return d, d.err
}

// MountAsync acquires the surface with load in the background, then sets the
// scene up and starts its loop. Unmount may be called at any time, including
// before load returns: a surface delivered after teardown is released unused.
func MountAsync(ctx context.Context, scene Scene, load SurfaceLoader, sched Scheduler, logger kitlog.Logger) *Driver {
	d := newDriver(ctx, scene, sched, logger)
	go func() {
		s, err := load(d.ctx)
		d.setup(s, err)
	}()
	return d
}

func (d *Driver) setup(s Surface, loadErr error) {
	defer close(d.ready)
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.disposed {
		if s != nil {
			s.Release()
		}
		d.err = ErrDisposed
		d.logger.Log("level", "info", "subsys", "setup", "status", "aborted", "reason", "disposed")
		return
	}
	if loadErr == nil && s == nil {
		loadErr = errors.New("loader returned no surface")
	}
	if loadErr != nil {
		if s != nil {
			// A loader may fail after acquiring the surface.
			s.Release()
		}
		d.err = fmt.Errorf("load surface: %w", loadErr)
		d.logger.Log("level", "error", "subsys", "setup", "err", d.err)
		return
	}
	d.surface = s
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		d.err = ErrZeroSize
		d.logger.Log("level", "error", "subsys", "setup", "err", d.err, "width", w, "height", h)
		return
	}
	if err := d.scene.Setup(s); err != nil {
		d.err = fmt.Errorf("setup %s: %w", d.scene.Name(), err)
		d.logger.Log("level", "error", "subsys", "setup", "err", d.err)
		return
	}
	d.running.Add(1)
	go d.run(s)
	d.logger.Log("level", "info", "subsys", "setup", "status", "running", "width", w, "height", h)
}

// ID returns the unique id of this mount.
func (d *Driver) ID() string {
	return d.id
}

// Wait blocks until setup has finished and returns its error.
func (d *Driver) Wait() error {
	<-d.ready
	return d.err
}

// Frames returns the number of frames rendered successfully.
func (d *Driver) Frames() uint64 {
	return d.frames.Load()
}

// Dispatch queues a pointer event for the loop. It never blocks: events sent
// after teardown, or beyond the buffer, are dropped.
func (d *Driver) Dispatch(ev PointerEvent) {
	select {
	case <-d.ctx.Done():
	case d.events <- ev:
	default:
		d.logger.Log("level", "warning", "subsys", "input", "status", "dropped", "kind", ev.Kind)
	}
}

// Resize records the new surface size; the loop applies the latest one.
func (d *Driver) Resize(width, height int) {
	d.sizeMu.Lock()
	d.size = [2]int{width, height}
	d.sizeMu.Unlock()
	select {
	case d.resized <- struct{}{}:
	default:
	}
}

// Unmount tears the component down: it cancels the frame schedule, stops
// accepting events, waits for the loop to exit and releases the surface. No
// frame runs after Unmount returns. It is safe to call more than once and
// before setup completes.
func (d *Driver) Unmount() {
	d.mu.Lock()
	if d.disposed {
		d.mu.Unlock()
		return
	}
	d.disposed = true
	s := d.surface
	d.surface = nil
	d.mu.Unlock()

	d.cancel()
	d.sched.Stop()
	d.running.Wait()
	if s != nil {
		s.Release()
	}
	d.logger.Log("level", "info", "subsys", "teardown", "status", "unmounted", "frames", d.frames.Load())
}

func (d *Driver) run(s Surface) {
	defer d.running.Done()
	frames := d.sched.Frames()
	for {
		select {
		case <-d.ctx.Done():
			return
		case ev := <-d.events:
			d.pointer(ev)
		case <-d.resized:
			d.resize()
		case <-frames:
			// Input received before this frame is applied before it.
			d.drain()
			if d.ctx.Err() != nil {
				return
			}
			d.frame(s)
		}
	}
}

func (d *Driver) drain() {
	for {
		select {
		case ev := <-d.events:
			d.pointer(ev)
		case <-d.resized:
			d.resize()
		default:
			return
		}
	}
}

func (d *Driver) frame(s Surface) {
	d.guard("loop", func() error {
		if err := d.scene.Step(); err != nil {
			return fmt.Errorf("step: %w", err)
		}
		if err := d.scene.Render(s); err != nil {
			return fmt.Errorf("render: %w", err)
		}
		d.frames.Add(1)
		return nil
	})
}

func (d *Driver) pointer(ev PointerEvent) {
	d.guard("input", func() error {
		d.scene.Pointer(ev)
		return nil
	})
}

func (d *Driver) resize() {
	d.sizeMu.Lock()
	w, h := d.size[0], d.size[1]
	d.sizeMu.Unlock()
	if w <= 0 || h <= 0 {
		d.logger.Log("level", "debug", "subsys", "resize", "status", "skipped", "width", w, "height", h)
		return
	}
	d.guard("resize", func() error {
		d.scene.Resize(w, h)
		return nil
	})
}

// guard runs f, logging its error or panic; the loop always survives.
func (d *Driver) guard(subsys string, f func() error) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Log("level", "error", "subsys", subsys, "panic", fmt.Sprint(r))
		}
	}()
	if err := f(); err != nil {
		d.logger.Log("level", "error", "subsys", subsys, "err", err)
	}
}
