package console

import "strings"

/*
Status console of the emulator.

The board and the front-ends report what the machine is doing here:
power on, resets, power off and host side faults. The kernel screen is a
separate surface, see package display.
*/

// Console is the status output of the emulator.
type Console interface {
	WriteConsole(msg string) error
}

// lines splits msg into non-empty lines, each terminated by a newline.
func lines(msg string) []string {
	var out []string
	for _, line := range strings.Split(msg, "\n") {
		if line != "" {
			out = append(out, line+"\n")
		}
	}
	return out
}
