package shell

import "nexus/vga"

// Colors used by the shell output.
var (
	TextAttr  = vga.MakeAttr(vga.White, vga.Black)
	LogoAttr  = vga.MakeAttr(vga.LightCyan, vga.Black)
	ErrorAttr = vga.MakeAttr(vga.LightRed, vga.Black)
)

var logo = [...]string{
	" _   _ ________   ___    _  _____ ",
	"| \\ | |  ____\\ \\ / / |  | |/ ____|",
	"|  \\| | |__   \\ V /| |  | | (___  ",
	"| . ` |  __|   > < | |  | |\\___ \\ ",
	"| |\\  | |____ / . \\| |__| |____) |",
	"|_| \\_|______/_/ \\_\\\\____/|_____/ ",
}

// Banner prints the logo and the welcome lines.
func Banner(term Output) {
	term.SetAttribute(LogoAttr)
	for _, line := range logo {
		term.WriteString(line)
		term.PutChar('\n')
	}
	term.SetAttribute(TextAttr)
	term.WriteString("\nWelcome to Nexus OS v0.1\n")
	term.WriteString("Type 'help' for available commands\n")
}
