package term

import (
	"github.com/BengineerZ/orrery"
	"github.com/gdamore/tcell/v2"
)

// Sink receives translated events; *orrery.Driver is one.
type Sink interface {
	Dispatch(ev orrery.PointerEvent)
	Resize(width, height int)
}

// Pump translates tcell events into pointer and resize events. The primary
// button is the pointer; the wheel zooms.
type Pump struct {
	sink Sink
	down bool
}

// NewPump returns a pump feeding sink.
func NewPump(sink Sink) *Pump {
	return &Pump{sink: sink}
}

// Translate forwards ev to the sink and reports whether the user asked to quit
// (Esc, Ctrl-C or q).
func (p *Pump) Translate(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyRune:
			return ev.Rune() == 'q' || ev.Rune() == 'c' && ev.Modifiers()&tcell.ModCtrl != 0
		}
	case *tcell.EventResize:
		p.sink.Resize(ev.Size())
	case *tcell.EventMouse:
		p.mouse(ev)
	}
	return false
}

func (p *Pump) mouse(ev *tcell.EventMouse) {
	cx, cy := ev.Position()
	// Aim at the center of the cell.
	x, y := float64(cx)+0.5, float64(cy)+0.5
	btn := ev.Buttons()
	switch {
	case btn&tcell.WheelUp != 0:
		p.sink.Dispatch(orrery.PointerEvent{Kind: orrery.PointerWheel, X: x, Y: y, Wheel: 1})
		return
	case btn&tcell.WheelDown != 0:
		p.sink.Dispatch(orrery.PointerEvent{Kind: orrery.PointerWheel, X: x, Y: y, Wheel: -1})
		return
	}
	pressed := btn&tcell.Button1 != 0
	kind := orrery.PointerMove
	switch {
	case pressed && !p.down:
		kind = orrery.PointerDown
	case !pressed && p.down:
		kind = orrery.PointerUp
	}
	p.down = pressed
	p.sink.Dispatch(orrery.PointerEvent{Kind: kind, X: x, Y: y})
}
