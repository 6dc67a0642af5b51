package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/pickgate/internal/pickbuild"
)

func main() {
	if err := run(); err != nil {
		// errors carrying an exit code have already been reported
		var coder interface{ ExitCode() int }
		if errors.As(err, &coder) {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env, err := pickbuild.ProcessEnv()
	if err != nil {
		return err
	}

	root := pickbuild.NewCommand(env)
	root.SetArgs(os.Args[1:])
	return root.ExecuteContext(ctx)
}
