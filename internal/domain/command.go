package domain

import "strings"

// Command is a fully constructed package-manager invocation. It is immutable
// once built and owned by the pipeline invocation that created it. Args are an
// argument vector, never a shell string.
type Command struct {
	Program           string
	Args              []string
	RequiresPrivilege bool
	IsDestructive     bool
	Description       string
}

// BuildOptions carries caller-level switches into the command builder.
type BuildOptions struct {
	// DryRun makes the builder append the package manager's native dry-run flag.
	DryRun bool
	// System selects the declarative (nixos-rebuild) strategy over nix-env.
	System bool
}

// String renders the command for display only. Execution always uses the
// argument vector directly.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Program
	}
	return c.Program + " " + strings.Join(c.Args, " ")
}
