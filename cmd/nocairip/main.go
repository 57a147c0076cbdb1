// Command nocairip drives the Nocai CMYK halftoning and PRN
// serialization pipeline from the command line.
package main

import (
	"fmt"
	"os"
)

func commandMap() CommandMap {
	m := NewCommandMap()
	m.Register("rip", Command{handler: cmdRip, usageShort: "Run the full pipeline on a single job", usageLong: usageRip})
	m.Register("config", Command{handler: cmdConfig, usageShort: "Write a default configuration file", usageLong: usageConfig})
	m.Register("version", Command{handler: cmdVersion, usageShort: "Print the nocairip version", usageLong: usageVersion})
	return m
}

var commandOrder = []string{"rip", "config", "version"}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cmds := commandMap()

	if len(args) == 0 {
		fmt.Print(usageTable(cmds, commandOrder))
		return 2
	}

	if args[0] == "help" {
		if len(args) < 2 {
			fmt.Print(usageTable(cmds, commandOrder))
			return 0
		}
		fmt.Print(cmds.HelpString(args[1]))
		return 0
	}

	name, cmd, err := cmds.Resolve(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, "nocairip:", err)
		fmt.Print(usageTable(cmds, commandOrder))
		return 2
	}
	_ = name

	return cmd.handler(args[1:])
}
