package shell

import (
	"strconv"

	"nexus/expr"
)

// Power is the platform's power control. Neither call returns on real
// hardware.
type Power interface {
	PowerOff()
	Reset()
}

// Random is the pseudo-random source of the rand command.
type Random interface {
	Next() uint32
}

type command struct {
	name string
	help string
	run  func(d *Dispatcher, cmd Command) bool
}

var commands = []command{
	{"help", "show this list", (*Dispatcher).help},
	{"shutdown", "shutdown the system", (*Dispatcher).shutdown},
	{"reboot", "reboot the system", (*Dispatcher).reboot},
	{"echo", "echo \"text\" - print text, echo \"num1+num2\" - math operations (+, -, *, /)", (*Dispatcher).echo},
	{"rand", "generate random number (0-99)", (*Dispatcher).rand},
	{"clear", "clear screen", (*Dispatcher).clear},
}

// Dispatcher executes the built-in commands.
type Dispatcher struct {
	term  Output
	rng   Random
	power Power

	list  []command
	table map[string]command
}

// NewDispatcher returns a dispatcher printing to term.
func NewDispatcher(term Output, rng Random, power Power) *Dispatcher {
	d := &Dispatcher{term: term, rng: rng, power: power, list: commands}
	d.table = make(map[string]command, len(commands))
	for _, c := range commands {
		d.table[c.name] = c
	}
	return d
}

// Execute runs line. It returns false for the commands that leave the
// machine without a prompt.
func (d *Dispatcher) Execute(line string) bool {
	cmd := Parse(line)
	if cmd.Name == "" {
		return true
	}

	d.term.SetAttribute(TextAttr)
	c, ok := d.table[cmd.Name]
	if !ok {
		d.term.SetAttribute(ErrorAttr)
		d.term.WriteString("Unknown command: " + cmd.Name + "\n")
		d.term.SetAttribute(TextAttr)
		d.term.WriteString("Type 'help' for available commands.\n")
		return true
	}
	return c.run(d, cmd)
}

func (d *Dispatcher) help(Command) bool {
	d.term.WriteString("Available commands:\n")
	for _, c := range d.list {
		d.term.WriteString("  " + c.name + " - " + c.help + "\n")
	}
	return true
}

func (d *Dispatcher) clear(Command) bool {
	d.term.Clear()
	Banner(d.term)
	return true
}

func (d *Dispatcher) shutdown(Command) bool {
	d.term.WriteString("Shutting down...\n")
	d.power.PowerOff()
	return false
}

func (d *Dispatcher) reboot(Command) bool {
	d.term.WriteString("Rebooting...\n")
	d.power.Reset()
	return false
}

func (d *Dispatcher) rand(Command) bool {
	d.term.WriteString(strconv.FormatUint(uint64(d.rng.Next()%100), 10) + "\n")
	return true
}

// echo prints its text. A double-quoted argument is evaluated as an
// arithmetic expression first and printed verbatim, quotes removed, if it
// is not one.
func (d *Dispatcher) echo(cmd Command) bool {
	text := cmd.Text
	if text == "" {
		return true
	}
	if len(text) < 2 || text[0] != '"' || text[len(text)-1] != '"' {
		d.term.WriteString(text + "\n")
		return true
	}

	inner := text[1 : len(text)-1]
	v, err := expr.Evaluate(inner)
	switch err {
	case nil:
	case expr.ErrDivisionByZero:
		d.term.SetAttribute(ErrorAttr)
		d.term.WriteString("Error: division by zero\n")
		d.term.SetAttribute(TextAttr)
	default:
		d.term.WriteString(inner + "\n")
		return true
	}
	d.term.WriteString("Result: " + strconv.Itoa(v) + "\n")
	return true
}
