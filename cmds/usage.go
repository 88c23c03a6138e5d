package cmds

import (
	"fmt"
	"os"
	"slices"
	"strings"
)

func (p *Executor) PrintUsage() {
	printCommands(p.commands, 0)
}

func printCommands(commands map[string]*Command, indent int) {
	names := make([]string, 0, len(commands))
	for name, command := range commands {
		if command == nil {
			continue
		}
		if slices.Contains(command.Aliases, name) {
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		command := commands[name]
		line := strings.Repeat("  ", indent) + name
		if len(command.Aliases) > 0 {
			line += " (" + strings.Join(command.Aliases, ", ") + ")"
		}
		if command.Description != "" {
			line += "\n" + strings.Repeat("  ", indent+2) + command.Description
		}
		fmt.Fprintln(os.Stdout, line)
		if len(command.Subs) > 0 {
			printCommands(command.Subs, indent+1)
		}
	}
}
