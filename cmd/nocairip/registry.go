package main

import (
	"fmt"
	"strings"
)

// Command is one top-level subcommand: a handler plus the help text
// shown for `nocairip help <cmd>`.
type Command struct {
	handler    func(args []string) int
	usageShort string
	usageLong  string
}

// CommandMap is the subcommand dispatch table, resolved by unambiguous
// prefix match so abbreviated subcommands resolve unambiguously.
type CommandMap map[string]*Command

// NewCommandMap returns an empty dispatch table.
func NewCommandMap() CommandMap {
	return map[string]*Command{}
}

// Register adds a subcommand.
func (m CommandMap) Register(name string, cmd Command) {
	m[name] = &cmd
}

// Resolve finds the unique registered command whose name has prefix as
// a prefix. It fails if zero or more than one command matches.
func (m CommandMap) Resolve(prefix string) (string, *Command, error) {
	var matched string
	for name := range m {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		if matched != "" {
			return "", nil, fmt.Errorf("ambiguous command %q (matches %q and %q)", prefix, matched, name)
		}
		matched = name
	}
	if matched == "" {
		return "", nil, fmt.Errorf("unknown command %q", prefix)
	}
	return matched, m[matched], nil
}

// HelpString returns the long usage text for topic.
func (m CommandMap) HelpString(topic string) string {
	cmd, ok := m[topic]
	if !ok {
		return fmt.Sprintf("Unknown help topic %q. Run 'nocairip help'.\n", topic)
	}
	return fmt.Sprintf("%s\n\n%s\n", cmd.usageShort, cmd.usageLong)
}
