// Package nixcmd maps recognized intents onto concrete Nix invocations.
package nixcmd

import (
	"fmt"
	"regexp"

	"github.com/luminous-dynamics/ask-nix/internal/domain"
	"github.com/luminous-dynamics/ask-nix/internal/ports"
)

// entityPattern is the only shape a package name may take. Anything else is
// rejected before it can reach an argument vector.
var entityPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._+-]*$`)

// Builder implements ports.CommandBuilder with a fixed template per intent.
type Builder struct{}

// NewBuilder constructs a Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Build implements ports.CommandBuilder. The switch over intent types is
// exhaustive; unknown intents can never produce a command.
func (b *Builder) Build(intent domain.Intent, opts domain.BuildOptions) (domain.Command, error) {
	if intent.Type == domain.IntentUnknown || intent.Type == domain.IntentHelp {
		return domain.Command{}, domain.ErrInsufficientInformation
	}
	if intent.Type.NeedsPackage() {
		if intent.Package == "" {
			return domain.Command{}, domain.ErrInsufficientInformation
		}
		if !entityPattern.MatchString(intent.Package) {
			return domain.Command{}, fmt.Errorf("%w: %q", domain.ErrInvalidEntity, intent.Package)
		}
	}

	switch intent.Type {
	case domain.IntentInstall:
		return b.install(intent.Package, opts), nil
	case domain.IntentRemove:
		return b.remove(intent.Package, opts), nil
	case domain.IntentSearch:
		return b.search(intent.Package), nil
	case domain.IntentUpdate:
		return b.update(opts), nil
	default:
		return domain.Command{}, domain.ErrInsufficientInformation
	}
}

func (b *Builder) install(pkg string, opts domain.BuildOptions) domain.Command {
	if opts.System {
		return domain.Command{
			Program:           "nixos-rebuild",
			Args:              rebuildArgs(opts.DryRun, nil),
			RequiresPrivilege: true,
			Description:       fmt.Sprintf("Rebuild the system with %s added to configuration.nix", pkg),
		}
	}
	args := []string{"-iA", "nixpkgs." + pkg}
	return domain.Command{
		Program:     "nix-env",
		Args:        dryRunArgs(args, opts.DryRun),
		Description: fmt.Sprintf("Install %s into the user profile", pkg),
	}
}

func (b *Builder) remove(pkg string, opts domain.BuildOptions) domain.Command {
	if opts.System {
		return domain.Command{
			Program:           "nixos-rebuild",
			Args:              rebuildArgs(opts.DryRun, nil),
			RequiresPrivilege: true,
			IsDestructive:     true,
			Description:       fmt.Sprintf("Rebuild the system with %s removed from configuration.nix", pkg),
		}
	}
	args := []string{"-e", pkg}
	return domain.Command{
		Program:       "nix-env",
		Args:          dryRunArgs(args, opts.DryRun),
		IsDestructive: true,
		Description:   fmt.Sprintf("Remove %s from the user profile", pkg),
	}
}

func (b *Builder) search(pkg string) domain.Command {
	return domain.Command{
		Program:     "nix",
		Args:        []string{"search", "nixpkgs", pkg},
		Description: fmt.Sprintf("Search nixpkgs for %s", pkg),
	}
}

func (b *Builder) update(opts domain.BuildOptions) domain.Command {
	if opts.System {
		return domain.Command{
			Program:           "nixos-rebuild",
			Args:              rebuildArgs(opts.DryRun, []string{"--upgrade"}),
			RequiresPrivilege: true,
			Description:       "Upgrade the system configuration",
		}
	}
	return domain.Command{
		Program:     "nix-env",
		Args:        dryRunArgs([]string{"-u"}, opts.DryRun),
		Description: "Upgrade packages in the user profile",
	}
}

// dryRunArgs appends nix-env's native dry-run flag.
func dryRunArgs(args []string, dryRun bool) []string {
	if dryRun {
		return append(args, "--dry-run")
	}
	return args
}

// rebuildArgs selects nixos-rebuild's subcommand: dry-run replaces switch.
func rebuildArgs(dryRun bool, extra []string) []string {
	sub := "switch"
	if dryRun {
		sub = "dry-run"
	}
	return append([]string{sub}, extra...)
}

var _ ports.CommandBuilder = (*Builder)(nil)
