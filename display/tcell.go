package display

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"nexus/vga"
)

// palette maps VGA colors to the terminal ones.
var palette = [16]tcell.Color{
	vga.Black:        tcell.ColorBlack,
	vga.Blue:         tcell.ColorNavy,
	vga.Green:        tcell.ColorGreen,
	vga.Cyan:         tcell.ColorTeal,
	vga.Red:          tcell.ColorMaroon,
	vga.Magenta:      tcell.ColorPurple,
	vga.Brown:        tcell.ColorOlive,
	vga.LightGrey:    tcell.ColorSilver,
	vga.Grey:         tcell.ColorGray,
	vga.LightBlue:    tcell.ColorBlue,
	vga.LightGreen:   tcell.ColorLime,
	vga.LightCyan:    tcell.ColorAqua,
	vga.LightRed:     tcell.ColorRed,
	vga.LightMagenta: tcell.ColorFuchsia,
	vga.LightBrown:   tcell.ColorYellow,
	vga.White:        tcell.ColorWhite,
}

// Style returns the terminal style of a cell attribute.
func Style(a vga.Attr) tcell.Style {
	return tcell.StyleDefault.
		Foreground(palette[a.Fg()]).
		Background(palette[a.Bg()])
}

// Tcell shows the framebuffer on a full terminal screen.
type Tcell struct {
	screen  tcell.Screen
	fb      vga.FrameBuffer
	refresh time.Duration
}

// NewTcell returns a renderer of fb on screen. The screen must be
// initialized.
func NewTcell(screen tcell.Screen, fb vga.FrameBuffer) *Tcell {
	return &Tcell{screen: screen, fb: fb, refresh: 50 * time.Millisecond}
}

// Draw copies the framebuffer to the screen and shows it.
func (d *Tcell) Draw() {
	w, h := d.fb.Dimensions()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := d.fb.Cell(x, y)
			d.screen.SetContent(x, y, glyph(c.Char), nil, Style(c.Attr))
		}
	}
	d.screen.Show()
}

// Run redraws the screen periodically and types key presses on kb until
// ctx is done or Ctrl-C is pressed, which calls stop.
func (d *Tcell) Run(ctx context.Context, kb Keyboard, stop func()) error {
	d.screen.HideCursor()
	d.screen.Clear()

	events := make(chan tcell.Event)
	go func() {
		for {
			ev := d.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(d.refresh)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			d.Draw()
			return nil
		case <-ticker.C:
			d.Draw()
		case ev, ok := <-events:
			if !ok {
				return errors.New("tcell: screen finalized")
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				d.handleKey(ev, kb, stop)
			case *tcell.EventResize:
				d.screen.Sync()
			}
		}
	}
}

func (d *Tcell) handleKey(ev *tcell.EventKey, kb Keyboard, stop func()) {
	var c byte
	switch ev.Key() {
	case tcell.KeyCtrlC:
		stop()
		return
	case tcell.KeyEnter:
		c = '\n'
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		c = '\b'
	case tcell.KeyRune:
		c = Key(ev.Rune())
	}
	if c != 0 {
		kb.TypeChar(c)
	}
}
