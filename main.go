package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/alecthomas/kong"
	"github.com/gdamore/tcell/v2"
	"github.com/jroimartin/gocui"
	"github.com/pkg/errors"

	"nexus/console"
	"nexus/display"
	"nexus/logger"
	"nexus/system"
	"nexus/teletype"
)

// refresh is the repaint period of the gocui screen view.
const refresh = 50 * time.Millisecond

var cli struct {
	UI     string `name:"ui" enum:"gui,tcell,tty" default:"gui" help:"Front-end: gui, tcell or tty."`
	Log    string `name:"log" default:"nexus.log" help:"Log file, empty for stdout, - to discard."`
	Debug  bool   `name:"debug" help:"Log every interrupt delivered to the kernel."`
	Device string `name:"device" help:"Terminal device of the tty front-end, the controlling terminal if empty."`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("nexus"),
		kong.Description("Boot the nexus kernel on an emulated PC with a text console."))

	l, err := logger.New(cli.Log)
	ctx.FatalIfErrorf(err)

	switch cli.UI {
	case "tcell":
		err = runTcell(l)
	case "tty":
		err = runTTY(l)
	default:
		err = runGui(l)
	}
	ctx.FatalIfErrorf(err)
}

// newSystem assembles the board and starts it. The returned channel yields
// the result of the run.
func newSystem(ctx context.Context, c console.Console, l *log.Logger) (*system.System, chan error, error) {
	sys, err := system.InitializeSystem(c, l)
	if err != nil {
		return nil, nil, err
	}
	sys.Debug = cli.Debug

	done := make(chan error, 1)
	go func() {
		done <- sys.Run(ctx)
	}()
	return sys, done, nil
}

func runTcell(l *log.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "can't create screen")
	}
	if err := screen.Init(); err != nil {
		return errors.Wrap(err, "can't initialize screen")
	}
	defer screen.Fini()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sys, done, err := newSystem(ctx, console.NewSimple(l.Writer()), l)
	if err != nil {
		return err
	}
	go func() {
		if err := <-done; err != nil && err != context.Canceled {
			l.Printf("board stopped: %v\n", err)
		}
		cancel()
	}()
	return display.NewTcell(screen, sys.Screen()).Run(ctx, sys, cancel)
}

func runTTY(l *log.Logger) error {
	tt, closeTTY, err := teletype.Open(cli.Device)
	if err != nil {
		return err
	}
	defer closeTTY()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sys, done, err := newSystem(ctx, console.NewSimple(l.Writer()), l)
	if err != nil {
		return err
	}
	go func() {
		if err := <-done; err != nil && err != context.Canceled {
			l.Printf("board stopped: %v\n", err)
		}
		cancel()
	}()
	return tt.Run(ctx, sys, sys.Screen(), cancel)
}

func runGui(l *log.Logger) error {
	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return errors.Wrap(err, "couldn't create gui")
	}
	defer g.Close()

	g.SetManagerFunc(layout)

	if err := g.SetKeybinding("", gocui.KeyCtrlC, gocui.ModNone, quit); err != nil {
		return errors.Wrap(err, "keybinding")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// start emulation once the views exist
	g.Update(func(g *gocui.Gui) error {
		return startNexus(ctx, g, l)
	})

	if err := g.MainLoop(); err != nil && err != gocui.ErrQuit {
		return err
	}
	return nil
}

// startNexus boots the board with the screen view as its display and the
// status view as its console.
func startNexus(ctx context.Context, g *gocui.Gui, l *log.Logger) error {
	statusView, err := g.View(console.StatusView)
	if err != nil {
		return err
	}
	statusView.Clear()
	fmt.Fprintf(statusView, "Starting nexus..\n")

	c := console.NewGui(g)
	sys, done, err := newSystem(ctx, c, l)
	if err != nil {
		return err
	}

	screenView, err := g.View(display.ScreenView)
	if err != nil {
		return err
	}
	screenView.Editable = true
	screenView.Editor = display.Editor(sys)
	if _, err := g.SetCurrentView(display.ScreenView); err != nil {
		return err
	}

	updateScreen(ctx, display.NewGui(g, sys.Screen()))
	go func() {
		if err := <-done; err != nil && err != context.Canceled {
			l.Printf("board stopped: %v\n", err)
		}
		_ = c.WriteConsole("Press Ctrl-C to quit.\n")
	}()
	return nil
}

// updateScreen repaints the screen view until ctx is done. gocui allows
// updating views only from its main loop, Refresh queues the paint there.
func updateScreen(ctx context.Context, d *display.Gui) {
	ticker := time.NewTicker(refresh)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				d.Refresh()
			}
		}
	}()
}

// gocui layout
func layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	// up -> kernel screen, 80x25 plus the frame
	if v, err := g.SetView(display.ScreenView, 0, 0, 81, 26); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Screen"
		v.Frame = true
	}

	// down -> status
	bottom := maxY - 1
	if bottom < 28 {
		bottom = 28
	}
	right := maxX - 1
	if right < 81 {
		right = 81
	}
	if v, err := g.SetView(console.StatusView, 0, 27, right, bottom); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Status"
		v.Autoscroll = true
	}
	return nil
}

func quit(g *gocui.Gui, v *gocui.View) error {
	return gocui.ErrQuit
}
