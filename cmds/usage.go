package cmds

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/samber/lo"
)

func (p *Executor) PrintUsage() {
	printCommands(p, p.commands, 0)
}

func printCommands(p *Executor, commands map[string]*Command, depth int) {
	seen := make(map[*Command]bool)
	for _, name := range slices.Sorted(maps.Keys(commands)) {
		command := commands[name]
		if command == nil || seen[command] || slices.Contains(command.Aliases, name) {
			continue
		}
		seen[command] = true
		names := append([]string{name}, command.Aliases...)
		fmt.Fprintf(p.Output, "%s%s", strings.Repeat("  ", depth), strings.Join(lo.Uniq(names), ", "))
		if command.Description != "" {
			fmt.Fprintf(p.Output, "\t%s", command.Description)
		}
		fmt.Fprintln(p.Output)
		if len(command.Subs) > 0 {
			printCommands(p, command.Subs, depth+1)
		}
	}
}
