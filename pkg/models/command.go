package models

import "strings"

// Command is a check/notification command definition, shared across
// instances and upserted by name.
type Command struct {
	ID          string
	Name        string
	CommandLine string
	Timeout     int
}

// CommandCall is a reference to a command with its invocation arguments, as
// carried on hosts, services and notification ways. Raw is the full call
// string from the configuration ("check_ping!100,20%"); Command is bound by
// the linker and stays nil when the name cannot be resolved.
type CommandCall struct {
	Raw     string
	Name    string
	Args    []string
	Command *Command
}

// ParseCommandCall splits a raw call string into command name and arguments.
func ParseCommandCall(raw string) *CommandCall {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, "!")

	return &CommandCall{
		Raw:  raw,
		Name: parts[0],
		Args: parts[1:],
	}
}
