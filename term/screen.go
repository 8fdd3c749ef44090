// Package term hosts orrery scenes in a terminal through tcell: the screen is
// the render surface and mouse events drive the pointer stream.
package term

import (
	"context"
	"fmt"
	"sync"

	"github.com/BengineerZ/orrery"
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Screen is an orrery.Surface backed by a tcell screen. One cell is one pixel.
type Screen struct {
	scr  tcell.Screen
	once sync.Once
}

// New initializes the terminal with mouse reporting enabled.
func New() (*Screen, error) {
	scr, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("new screen: %w", err)
	}
	if err := scr.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	scr.EnableMouse()
	scr.HideCursor()
	return Wrap(scr), nil
}

// Wrap returns a Screen over an initialized tcell screen.
func Wrap(scr tcell.Screen) *Screen {
	return &Screen{scr: scr}
}

// Size implements orrery.Surface.
func (s *Screen) Size() (width, height int) {
	return s.scr.Size()
}

// Clear implements orrery.Surface.
func (s *Screen) Clear() {
	s.scr.Clear()
}

// SetCell implements orrery.Surface.
func (s *Screen) SetCell(x, y int, r rune, c colorful.Color) {
	cr, cg, cb := c.Clamped().RGB255()
	style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(cr), int32(cg), int32(cb)))
	s.scr.SetContent(x, y, r, nil, style)
}

// Show implements orrery.Surface.
func (s *Screen) Show() {
	s.scr.Show()
}

// Release implements orrery.Surface: it restores the terminal, once.
func (s *Screen) Release() {
	s.once.Do(s.scr.Fini)
}

// Loader returns a loader handing s to the driver unless the mount was already torn down.
func Loader(s *Screen) orrery.SurfaceLoader {
	return func(ctx context.Context) (orrery.Surface, error) {
		if err := ctx.Err(); err != nil {
			s.Release()
			return nil, err
		}
		return s, nil
	}
}
