package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/luminous-dynamics/ask-nix/internal/domain"
	"github.com/luminous-dynamics/ask-nix/internal/infrastructure/cli"
)

func main() {
	ctx := context.Background()
	opts := cli.Options{Verbose: isVerbose()}

	root, err := cli.NewRootCmd(ctx, opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(domain.ExitFailure)
	}

	if err := root.ExecuteContext(ctx); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			// Pipeline output was already rendered; the code carries the
			// CLI contract status.
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(domain.ExitFailure)
	}
}

func isVerbose() bool {
	return strings.EqualFold(os.Getenv("ASK_NIX_DEBUG"), "1") || strings.EqualFold(os.Getenv("ASK_NIX_DEBUG"), "true")
}
