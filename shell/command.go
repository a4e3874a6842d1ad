package shell

// Command is a tokenized input line.
type Command struct {
	Name string
	Args []string

	// Text is everything after the command name, leading spaces skipped.
	Text string
}

// Parse splits line on spaces. Leading and repeated spaces produce no
// empty tokens.
func Parse(line string) Command {
	var cmd Command
	i := skipSpaces(line, 0)
	start := i
	for i < len(line) && line[i] != ' ' {
		i++
	}
	cmd.Name = line[start:i]
	i = skipSpaces(line, i)
	cmd.Text = line[i:]

	for i < len(line) {
		start = i
		for i < len(line) && line[i] != ' ' {
			i++
		}
		cmd.Args = append(cmd.Args, line[start:i])
		i = skipSpaces(line, i)
	}
	return cmd
}

func skipSpaces(s string, i int) int {
	for i < len(s) && s[i] == ' ' {
		i++
	}
	return i
}
