package orrery

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Mode is the interaction mode of a pointer gesture.
type Mode uint8

const (
	// Idle means no gesture is in progress.
	Idle Mode = iota
	// Orbiting means the gesture drives the camera controls.
	Orbiting
	// Dragging means the gesture moves the marker.
	Dragging
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case Orbiting:
		return "orbiting"
	case Dragging:
		return "dragging"
	}
	panic(fmt.Errorf("cannot stringify unknown mode %d", m))
}

// Cursor is the pointer affordance the host should display.
type Cursor uint8

const (
	CursorAuto Cursor = iota
	CursorGrab
	CursorGrabbing
)

func (c Cursor) String() string {
	switch c {
	case CursorGrab:
		return "grab"
	case CursorGrabbing:
		return "grabbing"
	}
	return "auto"
}

// PointerKind is the type of a pointer event.
type PointerKind uint8

const (
	PointerDown PointerKind = iota + 1
	PointerMove
	PointerUp
	PointerWheel
)

func (k PointerKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	case PointerWheel:
		return "wheel"
	}
	return fmt.Sprintf("PointerKind(%d)", k)
}

// PointerEvent is a pointer event in client coordinates.
type PointerEvent struct {
	Kind  PointerKind
	X, Y  float64
	ID    int
	Wheel float64 // PointerWheel only, positive zooms in
}

// InteractionState is the single source of truth of the controller.
type InteractionState struct {
	Mode            Mode
	PointerCaptured bool
	Hover           bool // the pointer is over the marker
}

// CameraControl is the default camera behavior the controller arbitrates with.
type CameraControl interface {
	SetEnabled(on bool)
	Begin(x, y float64)
	Drag(x, y float64, vp Viewport)
	End()
	Zoom(steps float64)
}

// PointerCapture routes all events of a pointer to the component during a gesture.
type PointerCapture interface {
	Capture(id int)
	Release(id int)
}

// Controller arbitrates between orbiting the camera and dragging the marker.
// It is not safe for concurrent use: the render loop owns it.
type Controller struct {
	state    InteractionState
	pointer  int
	cam      *Camera
	marker   *Marker // may be nil: every gesture orbits
	plane    Plane
	controls CameraControl
	capture  PointerCapture
	viewport Viewport
	onMove   func(p mgl64.Vec3)
}

// NewController returns an idle controller. marker and capture may be nil.
func NewController(cam *Camera, controls CameraControl, marker *Marker, plane Plane, capture PointerCapture) *Controller {
	return &Controller{cam: cam, controls: controls, marker: marker, plane: plane, capture: capture}
}

// OnMarkerMove registers the callback fired with the new marker position after each drag step.
func (c *Controller) OnMarkerMove(f func(p mgl64.Vec3)) {
	c.onMove = f
}

// SetViewport sets the client rectangle used to build pointer rays.
func (c *Controller) SetViewport(vp Viewport) {
	c.viewport = vp
}

// Viewport returns the client rectangle used to build pointer rays.
func (c *Controller) Viewport() Viewport {
	return c.viewport
}

// State returns the current interaction state.
func (c *Controller) State() InteractionState {
	return c.state
}

// Cursor returns the affordance for the current state and hover.
func (c *Controller) Cursor() Cursor {
	switch {
	case c.state.Mode == Dragging:
		return CursorGrabbing
	case c.state.Hover:
		return CursorGrab
	}
	return CursorAuto
}

// Handle dispatches ev to the state machine.
func (c *Controller) Handle(ev PointerEvent) {
	switch ev.Kind {
	case PointerDown:
		c.PointerDown(ev)
	case PointerMove:
		c.PointerMove(ev)
	case PointerUp:
		c.PointerUp(ev)
	case PointerWheel:
		if c.state.Mode != Dragging && c.controls != nil {
			c.controls.Zoom(ev.Wheel)
		}
	}
}

// PointerDown starts a gesture: dragging if the ray hits the marker, orbiting otherwise.
func (c *Controller) PointerDown(ev PointerEvent) {
	if c.state.Mode != Idle {
		// A second button or a lost pointer-up: close the previous gesture first.
		c.PointerUp(PointerEvent{Kind: PointerUp, X: ev.X, Y: ev.Y, ID: c.pointer})
	}
	c.pointer = ev.ID
	if c.hitMarker(ev.X, ev.Y) {
		c.state.Mode = Dragging
		c.state.Hover = true
		if c.controls != nil {
			c.controls.SetEnabled(false)
		}
		if c.capture != nil {
			c.capture.Capture(ev.ID)
		}
		c.state.PointerCaptured = true
		return
	}
	c.state.Mode = Orbiting
	if c.controls != nil {
		c.controls.SetEnabled(true)
		c.controls.Begin(ev.X, ev.Y)
	}
}

// PointerMove drags the marker, orbits the camera, or updates the hover affordance.
func (c *Controller) PointerMove(ev PointerEvent) {
	switch c.state.Mode {
	case Dragging:
		c.drag(ev.X, ev.Y)
	case Orbiting:
		if c.controls != nil {
			c.controls.Drag(ev.X, ev.Y, c.viewport)
		}
	default:
		c.state.Hover = c.hitMarker(ev.X, ev.Y)
	}
}

// PointerUp ends the gesture and gives control back to the camera.
func (c *Controller) PointerUp(ev PointerEvent) {
	if c.controls != nil {
		c.controls.End()
		c.controls.SetEnabled(true)
	}
	if c.state.PointerCaptured && c.capture != nil {
		c.capture.Release(c.pointer)
	}
	c.state = InteractionState{Mode: Idle, Hover: c.hitMarker(ev.X, ev.Y)}
}

func (c *Controller) ray(x, y float64) (Ray, bool) {
	ndc, ok := c.viewport.NDC(x, y)
	if !ok {
		return Ray{}, false
	}
	return c.cam.Ray(ndc), true
}

// hitMarker reports whether the pointer is over the marker. Pointers outside
// the 3D view never pick it.
func (c *Controller) hitMarker(x, y float64) bool {
	if c.marker == nil || !c.viewport.Contains(x, y) {
		return false
	}
	r, ok := c.ray(x, y)
	return ok && c.marker.Hit(r)
}

// drag moves the marker to the clamped plane intersection; a ray parallel to
// the plane keeps the last valid position.
func (c *Controller) drag(x, y float64) {
	r, ok := c.ray(x, y)
	if !ok {
		return
	}
	p, ok := r.IntersectPlane(c.plane)
	if !ok {
		return
	}
	pos := c.marker.MoveTo(p)
	if c.onMove != nil {
		c.onMove(pos)
	}
}
