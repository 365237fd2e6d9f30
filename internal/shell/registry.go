package shell

import (
	"fmt"
)

// Handler runs one command. It is always called on the session loop.
type Handler func(s *Session, args []string) Result

// Command is a registered command.
type Command struct {
	Name    string
	Args    string
	Summary string
	Handler Handler
}

// UsageLine returns e.g. "Usage: cat <file>".
func (c Command) UsageLine() string {
	if c.Args == "" {
		return "Usage: " + c.Name
	}
	return "Usage: " + c.Name + " " + c.Args
}

// Registry maps command names to commands. It is filled once at startup
// and read-only afterwards; there is no removal.
type Registry struct {
	commands map[string]Command
	order    []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Command)}
}

// Register adds cmd. It panics on an empty or duplicate name.
func (r *Registry) Register(cmd Command) {
	if cmd.Name == "" || cmd.Handler == nil {
		panic("shell: command needs a name and a handler")
	}
	if _, exists := r.commands[cmd.Name]; exists {
		panic(fmt.Sprintf("shell: command %q registered twice", cmd.Name))
	}
	r.commands[cmd.Name] = cmd
	r.order = append(r.order, cmd.Name)
}

// Lookup returns the command registered under name.
func (r *Registry) Lookup(name string) (Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// Names returns command names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}
