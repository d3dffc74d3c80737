package shell

import "strings"

// Command is a menu entry of the course planner shell
type Command int

const (
	Invalid  Command = 0
	Load     Command = 1
	PrintAll Command = 2
	PrintOne Command = 3
	Exit     Command = 9
)

// ParseCommand maps the text typed at the menu to a Command.
// Anything that is not a menu number is Invalid.
func ParseCommand(s string) Command {
	switch strings.TrimSpace(s) {
	case "1":
		return Load
	case "2":
		return PrintAll
	case "3":
		return PrintOne
	case "9":
		return Exit
	default:
		return Invalid
	}
}

// Prompt is what the shell asks for before running c, empty when
// c takes no argument.
func (c Command) Prompt() string {
	switch c {
	case Load:
		return "Enter file name: "
	case PrintOne:
		return "What course do you want to know about? "
	default:
		return ""
	}
}

func (c Command) String() string {
	switch c {
	case Load:
		return "load"
	case PrintAll:
		return "print-all"
	case PrintOne:
		return "print-one"
	case Exit:
		return "exit"
	default:
		return "invalid"
	}
}
