package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
)

const appName = "statesync"

var (
	errNoCommand      = errors.New("no command given")
	errUnknownCommand = errors.New("unknown command")
)

// Command is a statesync subcommand
type Command interface {
	Name() string
	Description() string
	Run(args []string) error
}

// Registry dispatches to commands by name
type Registry struct {
	commands map[string]Command
}

// NewRegistry creates a registry holding cmds
func NewRegistry(cmds ...Command) *Registry {
	r := &Registry{commands: make(map[string]Command, len(cmds))}
	for _, cmd := range cmds {
		r.commands[cmd.Name()] = cmd
	}
	return r
}

// Get retrieves a command by name
func (r *Registry) Get(name string) (Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// Names returns the command names in sorted order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run executes args[0] with the remaining arguments
func (r *Registry) Run(args []string) error {
	if len(args) == 0 {
		return errNoCommand
	}
	cmd, ok := r.Get(args[0])
	if !ok {
		return fmt.Errorf("%w %q", errUnknownCommand, args[0])
	}
	return cmd.Run(args[1:])
}

// PrintHelp writes usage information to w
func (r *Registry) PrintHelp(w io.Writer) {
	fmt.Fprintf(w, "Usage: %s [-url URL] [-profile NAME] <command> [args...]\n\nCommands:\n", appName)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, name := range r.Names() {
		fmt.Fprintf(tw, "  %s\t%s\n", name, r.commands[name].Description())
	}
	tw.Flush()
}
