package shell

import (
	"fmt"
	"strings"
)

// Builtins returns a registry holding every built-in command.
func Builtins() *Registry {
	r := NewRegistry()
	for _, cmd := range []Command{
		{Name: "help", Summary: "Show available commands", Handler: helpCommand},
		{Name: "ls", Args: "[path]", Summary: "List directory contents", Handler: lsCommand},
		{Name: "cd", Args: "[path]", Summary: "Change directory (no path: root)", Handler: cdCommand},
		{Name: "pwd", Summary: "Print the current directory", Handler: pwdCommand},
		{Name: "cat", Args: "<file>", Summary: "Print a file", Handler: catCommand},
		{Name: "open", Args: "<path>", Summary: "Open a path in the web browser", Handler: openCommand},
		{Name: "clear", Summary: "Clear the screen", Handler: clearCommand},
		{Name: "bash", Args: "<file>", Summary: "Run each line of a file as a command", Handler: bashCommand},
		{Name: "lua", Args: "<file>", Summary: "Run a file with the Lua interpreter", Handler: luaCommand},
		{Name: "echo", Args: "[text...]", Summary: "Print the arguments", Handler: echoCommand},
		{Name: "history", Summary: "List previous commands", Handler: historyCommand},
		{Name: "exit", Summary: "Leave the shell", Handler: exitCommand},
	} {
		r.Register(cmd)
	}
	return r
}

func helpCommand(s *Session, _ []string) Result {
	var b strings.Builder
	b.WriteString("Available commands:")
	for _, name := range s.registry.Names() {
		cmd, _ := s.registry.Lookup(name)
		fmt.Fprintf(&b, "\n  %-18s %s", strings.TrimSpace(cmd.Name+" "+cmd.Args), cmd.Summary)
	}
	return OK(b.String())
}

func clearCommand(s *Session, _ []string) Result {
	s.sink.Clear()
	return OK("")
}

func echoCommand(_ *Session, args []string) Result {
	return OK(strings.Join(args, " "))
}

func historyCommand(s *Session, _ []string) Result {
	var b strings.Builder
	for i, line := range s.history.Entries() {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%5d  %s", i+1, line)
	}
	return OK(b.String())
}

func exitCommand(s *Session, _ []string) Result {
	s.exited = true
	return OK("")
}

func usage(s *Session, name string) Result {
	cmd, _ := s.registry.Lookup(name)
	return Failure(KindUsage, cmd.UsageLine())
}
