package console

import (
	"fmt"

	"github.com/jroimartin/gocui"
	"github.com/pkg/errors"
)

// StatusView is the name of the gocui view status lines go to.
const StatusView = "status"

// Gui writes status lines into a gocui view. Writes are queued on a
// channel and applied from the gocui main loop.
type Gui struct {
	consoleOut chan string // string channel, to which the console data is sent to
	g          *gocui.Gui  // main gocui GUI object
}

// NewGui returns a console bound to the status view of g and starts the
// goroutine feeding it.
func NewGui(g *gocui.Gui) *Gui {
	c := &Gui{
		consoleOut: make(chan string, 64),
		g:          g,
	}
	go c.loop()
	return c
}

func (c *Gui) loop() {
	for s := range c.consoleOut {
		s := s
		c.g.Update(func(g *gocui.Gui) error {
			v, err := g.View(StatusView)
			if err != nil {
				return errors.Wrap(err, "status view")
			}
			fmt.Fprint(v, s)
			return nil
		})
	}
}

// WriteConsole displays a string on the console
func (c *Gui) WriteConsole(msg string) error {
	for _, line := range lines(msg) {
		c.consoleOut <- line
	}
	return nil
}
