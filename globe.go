package orrery

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	kitlog "github.com/go-kit/log"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	globeMeridians = 12
	globeParallels = 6
	globeSamples   = 96
	antennaLength  = 0.25
)

var (
	globeGrid    = colorful.Color{R: 0.23, G: 0.55, B: 0.85}
	globeEquator = colorful.Color{R: 0.33, G: 0.67, B: 1}
	trailColor   = colorful.Color{R: 1, G: 1, B: 1}
	background   = colorful.Color{}
)

// Globe is the satellite globe scene.
type Globe struct {
	cfg      GlobeConfig
	aspect   float64
	registry *Registry
	trails   []*TrailBuffer
	palette  []colorful.Color
	camera   *Camera
	controls *OrbitControls
	input    *Controller
	logger   kitlog.Logger

	time  float64
	frame uint64
	spin  float64
}

// NewGlobe builds the registry and trails of a globe. A zero seed draws a random one.
func NewGlobe(cfg GlobeConfig, cellAspect float64, logger kitlog.Logger) (*Globe, error) {
	if logger == nil {
		logger = kitlog.NewNopLogger()
	}
	src, seed := NewSource(cfg.Seed)
	registry, err := NewRegistry(cfg.Bands, src)
	if err != nil {
		return nil, fmt.Errorf("globe registry: %w", err)
	}
	palette := make([]colorful.Color, len(cfg.Bands))
	for i, b := range cfg.Bands {
		palette[i], _ = b.RGB() // validated by NewRegistry
	}
	cam := NewPerspectiveCamera(Deg2rad(cfg.FovDeg), 0.1, 200, mgl64.Vec3{0, 0, cfg.CameraDistance})
	controls := NewOrbitControls(cam)
	controls.DampingFactor = 0.1
	controls.RotateSpeed = 0.7
	controls.MinPolar = Deg2rad(cfg.MinPolarDeg)
	controls.MaxPolar = Deg2rad(cfg.MaxPolarDeg)
	controls.EnableZoom = cfg.Zoom
	controls.MinDistance = cfg.Radius * 1.5
	controls.MaxDistance = cfg.CameraDistance * 3
	g := &Globe{
		cfg:      cfg,
		aspect:   cellAspect,
		registry: registry,
		trails:   NewTrails(registry, cfg.Trails, cfg.TrailLength, src),
		palette:  palette,
		camera:   cam,
		controls: controls,
		logger:   logger,
	}
	// The globe has nothing to drag: every gesture orbits the camera.
	g.input = NewController(cam, controls, nil, HorizontalPlane(0), nil)
	logger.Log("level", "info", "subsys", "globe", "satellites", registry.Len(), "trails", len(g.trails), "seed", seed)
	return g, nil
}

// Name implements Scene.
func (g *Globe) Name() string {
	return "globe"
}

// Registry returns the satellites of the globe.
func (g *Globe) Registry() *Registry {
	return g.registry
}

// Trails returns the trail buffers.
func (g *Globe) Trails() []*TrailBuffer {
	return g.trails
}

// Time returns the simulation time.
func (g *Globe) Time() float64 {
	return g.time
}

// Camera returns the globe camera.
func (g *Globe) Camera() *Camera {
	return g.camera
}

// Setup implements Scene.
func (g *Globe) Setup(s Surface) error {
	w, h := s.Size()
	g.Resize(w, h)
	return nil
}

// Resize implements Scene. Only the projection depends on the size.
func (g *Globe) Resize(width, height int) {
	if g.camera.SetViewport(width, height, g.aspect) {
		g.input.SetViewport(Viewport{Width: float64(width), Height: float64(height)})
	}
}

// Pointer implements Scene.
func (g *Globe) Pointer(ev PointerEvent) {
	g.input.Handle(ev)
}

// Step implements Scene: time advances by a fixed step per frame, not by wall clock.
func (g *Globe) Step() error {
	g.frame++
	g.time += g.cfg.TimeStep
	g.spin = math.Mod(g.spin+g.cfg.SpinRate, twoPi)
	g.registry.Update(g.time)
	if g.frame%uint64(max(g.cfg.TrailEvery, 1)) == 0 {
		SampleTrails(g.registry, g.trails)
	}
	g.controls.Update()
	return nil
}

// Render implements Scene.
func (g *Globe) Render(s Surface) error {
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return nil
	}
	s.Clear()
	c := NewCanvas(s, Rect{W: w, H: h})
	g.drawGlobe(c)
	g.drawTrails(c)
	g.drawSatellites(c)
	s.Show()
	return nil
}

// visible returns whether p is in front of the globe as seen from the camera.
func (g *Globe) visible(p mgl64.Vec3) bool {
	to := p.Sub(g.camera.Position)
	d := to.Len()
	t, hit := Ray{Origin: g.camera.Position, Dir: unit(to)}.IntersectSphere(mgl64.Vec3{}, g.cfg.Radius*0.999)
	return !hit || t >= d
}

func (g *Globe) drawGlobe(c Canvas) {
	r := g.cfg.Radius
	for m := 0; m < globeMeridians; m++ {
		θ := g.spin + float64(m)*twoPi/globeMeridians
		for k := 1; k < globeSamples/2; k++ {
			p := Spherical2Cartesian(r, float64(k)*math.Pi/(globeSamples/2), θ)
			g.plot(c, p, '·', globeGrid)
		}
	}
	for k := 1; k < globeParallels; k++ {
		φ := float64(k) * math.Pi / globeParallels
		col, ch := globeGrid, '·'
		if 2*k == globeParallels {
			col, ch = globeEquator, '─'
		}
		for j := 0; j < globeSamples; j++ {
			g.plot(c, Spherical2Cartesian(r, φ, g.spin+float64(j)*twoPi/globeSamples), ch, col)
		}
	}
}

func (g *Globe) plot(c Canvas, p mgl64.Vec3, ch rune, col colorful.Color) {
	if !g.visible(p) {
		return
	}
	if x, y, ok := c.Cell(g.camera.Project(p)); ok {
		c.Plot(x, y, ch, col)
	}
}

func (g *Globe) drawTrails(c Canvas) {
	for _, tb := range g.trails {
		pts := tb.Points()
		for i, p := range pts {
			// Older points fade towards the background.
			fade := float64(i+1) / float64(tb.Cap())
			g.plot(c, p, '.', background.BlendLab(trailColor, 0.4*fade))
		}
	}
}

func (g *Globe) drawSatellites(c Canvas) {
	for _, sat := range g.registry.Satellites() {
		col := g.palette[sat.Band]
		g.plot(c, sat.Position.Add(sat.Orientation.Rotate(mgl64.Vec3{0, antennaLength, 0})), '·', col)
		g.plot(c, sat.Position, '●', col)
	}
}
