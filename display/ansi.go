package display

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"nexus/vga"
)

// WriteANSI writes the framebuffer using SGR escape sequences for the
// cell colors. Bright foregrounds are rendered bold, the bright background
// bit is dropped. Every row ends with an attribute reset.
func WriteANSI(w io.Writer, fb vga.FrameBuffer) error {
	bw := bufio.NewWriter(w)
	width, height := fb.Dimensions()
	for y := 0; y < height; y++ {
		last := vga.Attr(0xFF)
		for x := 0; x < width; x++ {
			c := fb.Cell(x, y)
			if c.Attr != last {
				writeSGR(bw, c.Attr)
				last = c.Attr
			}
			bw.WriteRune(glyph(c.Char))
		}
		bw.WriteString("\x1b[0m\n")
	}
	return errors.Wrap(bw.Flush(), "display")
}

func writeSGR(w *bufio.Writer, a vga.Attr) {
	fg, bg := a.Fg(), a.Bg()
	if fg&0x8 != 0 {
		fmt.Fprintf(w, "\x1b[0;1;%d;%dm", 30+ansi[fg&0x7], 40+ansi[bg&0x7])
		return
	}
	fmt.Fprintf(w, "\x1b[0;%d;%dm", 30+ansi[fg&0x7], 40+ansi[bg&0x7])
}
