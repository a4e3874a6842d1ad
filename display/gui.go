package display

import (
	"github.com/jroimartin/gocui"
	"github.com/pkg/errors"

	"nexus/vga"
)

// ScreenView is the name of the gocui view showing the framebuffer.
const ScreenView = "screen"

// Gui paints the framebuffer into a gocui view. The view has to be
// created by the layout; painting goes through the gocui main loop.
type Gui struct {
	g  *gocui.Gui
	fb vga.FrameBuffer
}

// NewGui returns a renderer of fb into the screen view of g.
func NewGui(g *gocui.Gui, fb vga.FrameBuffer) *Gui {
	return &Gui{g: g, fb: fb}
}

// Refresh schedules a repaint. It is safe to call from any goroutine.
func (d *Gui) Refresh() {
	d.g.Update(d.paint)
}

func (d *Gui) paint(g *gocui.Gui) error {
	v, err := g.View(ScreenView)
	if err != nil {
		return errors.Wrap(err, "screen view")
	}
	v.Clear()
	return WriteANSI(v, d.fb)
}

// Editor returns a gocui editor typing every key pressed in the view on
// kb.
func Editor(kb Keyboard) gocui.Editor {
	return gocui.EditorFunc(
		func(v *gocui.View, k gocui.Key, ch rune, mod gocui.Modifier) {
			switch k {
			case gocui.KeyEnter:
				ch = '\n'
			case gocui.KeyBackspace, gocui.KeyBackspace2:
				ch = '\b'
			case gocui.KeySpace:
				ch = ' '
			}
			if c := Key(ch); c != 0 {
				kb.TypeChar(c)
			}
		})
}
