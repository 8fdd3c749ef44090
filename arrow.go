package orrery

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	kitlog "github.com/go-kit/log"
	"github.com/lucasb-eyer/go-colorful"
)

var (
	groundColor = colorful.Color{R: 0.18, G: 0.55, B: 0.34}
	arrowColor  = colorful.Color{R: 0, G: 0.4, B: 0.8}
	mapFrame    = colorful.Color{R: 0.4, G: 0.4, B: 0.4}
	mapDot      = colorful.Color{R: 1, G: 1, B: 1}
	statusColor = colorful.Color{R: 0.6, G: 0.6, B: 0.6}
)

// Arrow is the draggable arrow scene: an arrow over a square ground box, with a
// 2D map of the arrow's planar position on the right.
type Arrow struct {
	cfg      ArrowConfig
	aspect   float64
	camera   *Camera
	controls *OrbitControls
	marker   *Marker
	input    *Controller
	minimap  *MiniMap
	logger   kitlog.Logger

	view, panel Rect
}

// NewArrow returns an arrow scene. capture may be nil when the host routes
// every pointer event to the component anyway.
func NewArrow(cfg ArrowConfig, cellAspect float64, capture PointerCapture, logger kitlog.Logger) *Arrow {
	if logger == nil {
		logger = kitlog.NewNopLogger()
	}
	cam := NewOrthographicCamera(cfg.ViewSize, 0.1, 100, mgl64.Vec3{cfg.CameraAt, cfg.CameraAt, cfg.CameraAt})
	controls := NewOrbitControls(cam)
	controls.DampingFactor = 0.1
	controls.RotateSpeed = 0.7
	controls.MinPolar = Deg2rad(cfg.MinPolarDeg)
	controls.MaxPolar = Deg2rad(cfg.MaxPolarDeg)
	half := cfg.BoxSize / 2
	a := &Arrow{
		cfg:      cfg,
		aspect:   cellAspect,
		camera:   cam,
		controls: controls,
		marker:   NewMarker(half, cfg.Height),
		minimap:  &MiniMap{HalfExtent: half, Pad: cfg.MapPad},
		logger:   logger,
	}
	a.input = NewController(cam, controls, a.marker, HorizontalPlane(0), capture)
	a.input.OnMarkerMove(func(p mgl64.Vec3) {
		a.minimap.Set(p.X(), p.Z())
	})
	return a
}

// Name implements Scene.
func (a *Arrow) Name() string {
	return "arrow"
}

// Marker returns the draggable marker.
func (a *Arrow) Marker() *Marker {
	return a.marker
}

// Controller returns the interaction controller.
func (a *Arrow) Controller() *Controller {
	return a.input
}

// MiniMap returns the 2D projection view.
func (a *Arrow) MiniMap() *MiniMap {
	return a.minimap
}

// Camera returns the scene camera.
func (a *Arrow) Camera() *Camera {
	return a.camera
}

// View returns the cell rectangle of the 3D view.
func (a *Arrow) View() Rect {
	return a.view
}

// Setup implements Scene.
func (a *Arrow) Setup(s Surface) error {
	w, h := s.Size()
	a.Resize(w, h)
	if a.view.Empty() {
		return fmt.Errorf("surface %dx%d too small for the arrow view", w, h)
	}
	return nil
}

// Resize implements Scene: it lays the view and map out and updates the projection.
func (a *Arrow) Resize(width, height int) {
	rows := height - 1 // status line
	mapW := a.cfg.MapWidth
	if width < 2*mapW {
		mapW = 0 // no room for the map
	}
	a.view = Rect{W: width - mapW, H: rows}
	if mapW > 0 {
		mapH := int(math.Round(float64(mapW) / a.aspect))
		a.panel = Rect{X: width - mapW, W: mapW, H: min(mapH, rows)}
	} else {
		a.panel = Rect{}
	}
	if a.camera.SetViewport(a.view.W, a.view.H, a.aspect) {
		a.input.SetViewport(a.view.Viewport())
	}
}

// Pointer implements Scene.
func (a *Arrow) Pointer(ev PointerEvent) {
	a.input.Handle(ev)
}

// Step implements Scene.
func (a *Arrow) Step() error {
	a.controls.Update()
	return nil
}

// Render implements Scene.
func (a *Arrow) Render(s Surface) error {
	if a.view.Empty() {
		return nil
	}
	s.Clear()
	view := NewCanvas(s, a.view)
	a.drawGround(view)
	a.drawArrow(view)
	if !a.panel.Empty() {
		a.minimap.Draw(NewCanvas(s, a.panel), mapFrame, mapDot)
	}
	x, z := a.minimap.Planar()
	st := a.input.State()
	status := fmt.Sprintf("%s · cursor %s · x=%+.2f z=%+.2f", st.Mode, a.input.Cursor(), x, z)
	NewCanvas(s, Rect{Y: a.view.H, W: a.view.W + a.panel.W, H: 1}).Text(0, 0, status, statusColor)
	s.Show()
	return nil
}

func (a *Arrow) drawGround(c Canvas) {
	half, t := a.cfg.BoxSize/2, a.cfg.BoxThickness
	corners := [4][2]float64{{-half, -half}, {half, -half}, {half, half}, {-half, half}}
	for i, p := range corners {
		q := corners[(i+1)%4]
		top0, top1 := mgl64.Vec3{p[0], 0, p[1]}, mgl64.Vec3{q[0], 0, q[1]}
		bot0, bot1 := mgl64.Vec3{p[0], -t, p[1]}, mgl64.Vec3{q[0], -t, q[1]}
		c.Segment(a.camera, bot0, bot1, '.', groundColor)
		c.Segment(a.camera, top0, bot0, '.', groundColor)
		c.Segment(a.camera, top0, top1, '#', groundColor)
	}
	// Grid on the top face.
	for k := 1; k < 4; k++ {
		v := -half + float64(k)*half/2
		c.Segment(a.camera, mgl64.Vec3{v, 0, -half}, mgl64.Vec3{v, 0, half}, '·', groundColor)
		c.Segment(a.camera, mgl64.Vec3{-half, 0, v}, mgl64.Vec3{half, 0, v}, '·', groundColor)
	}
}

func (a *Arrow) drawArrow(c Canvas) {
	ch := '│'
	if a.input.Cursor() != CursorAuto {
		ch = '┃'
	}
	c.Segment(a.camera, a.marker.Tail(), a.marker.Tip(), ch, arrowColor)
	if x, y, ok := c.Cell(a.camera.Project(a.marker.Tip())); ok {
		c.Plot(x, y, 'v', arrowColor)
	}
}
