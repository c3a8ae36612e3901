// Package main is the entry point for the zodkit schema tool.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/grindlemire/graft"
	"github.com/mrcacomacaco/zodkit-sub002/cmd/zodkit/commands"
	"github.com/mrcacomacaco/zodkit-sub002/internal/adapters/linear"
	"github.com/mrcacomacaco/zodkit-sub002/internal/app"
	_ "github.com/mrcacomacaco/zodkit-sub002/internal/wiring"
)

// ComponentProvider is a function that returns the application components.
type ComponentProvider func(context.Context) (*app.Components, error)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stderr, func(ctx context.Context) (*app.Components, error) {
		c, _, err := graft.ExecuteFor[*app.Components](ctx)
		return c, err
	}))
}

func run(
	ctx context.Context,
	args []string,
	stderr io.Writer,
	provider ComponentProvider,
) int {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// The sink node resolves during component construction, before cobra
	// parses flags, so the output mode is picked off the raw arguments.
	linear.SetOutputMode(outputFlag(args))

	components, err := provider(ctx)
	if err != nil {
		// Logger is not available yet if initialization failed.
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return 1
	}

	cli := commands.New(components.App)
	cli.SetArgs(args)
	cli.SetOutput(os.Stdout, stderr)

	if err := cli.Execute(ctx); err != nil {
		components.Logger.Error(err)
		return 1
	}
	return 0
}

// outputFlag extracts the value of the --output flag from raw arguments.
func outputFlag(args []string) string {
	for i, arg := range args {
		if arg == "--output" && i+1 < len(args) {
			return args[i+1]
		}
		if value, ok := strings.CutPrefix(arg, "--output="); ok {
			return value
		}
	}
	return ""
}
