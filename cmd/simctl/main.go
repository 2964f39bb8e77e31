package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"github.com/osse101/CoopTokenSim_Go/internal/logger"
	"github.com/osse101/CoopTokenSim_Go/internal/scenario"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func newRegistry(out io.Writer) *Registry {
	engine := scenario.NewEngine()
	presets := scenario.NewDefaultRegistry()

	r := NewRegistry(out)
	r.Register(&PresetsCommand{presets: presets, out: out})
	r.Register(&CompareCommand{engine: engine, presets: presets, out: out})
	r.Register(&ValidateCommand{engine: engine, out: out})
	return r
}

// run dispatches args to a command and returns the process exit code
func run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// Logs go to stderr so stdout stays valid JSON
	logger.InitLoggerWithWriter(logger.CLIConfig(), errOut)

	r := newRegistry(out)
	if len(args) == 0 {
		r.PrintHelp()
		return 1
	}

	cmd, ok := r.Get(args[0])
	if !ok {
		fmt.Fprintf(errOut, "unknown command: %s\n", args[0])
		r.PrintHelp()
		return 1
	}
	if err := cmd.Run(ctx, args[1:]); err != nil {
		fmt.Fprintf(errOut, "%s: %v\n", cmd.Name(), err)
		return 1
	}
	return 0
}
