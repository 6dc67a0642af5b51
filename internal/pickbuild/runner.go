package pickbuild

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/dmitrijs2005/pickgate/internal/logging"
)

// Commander runs one external command to completion.
type Commander interface {
	Run(ctx context.Context, name string, args ...string) error
}

// CommandError reports an external command that exited non-zero.
type CommandError struct {
	Name string
	Args []string
	Code int
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s %s failed with return code %d", e.Name, strings.Join(e.Args, " "), e.Code)
}

func (e *CommandError) ExitCode() int { return e.Code }

// ExecCommander runs commands in Dir with output streamed to Stdout/Stderr.
type ExecCommander struct {
	Dir    string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger logging.Logger
}

func (c *ExecCommander) Run(ctx context.Context, name string, args ...string) error {
	log := c.Logger.With("cmd", name, "args", strings.Join(args, " "))
	log.Debug(ctx, "run start")

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = c.Dir
	cmd.Stdin = c.Stdin
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
			log.Warn(ctx, "run failed", "code", exitErr.ExitCode())
			return &CommandError{Name: name, Args: args, Code: exitErr.ExitCode()}
		}
		log.Warn(ctx, "run failed", "err", err)
		return fmt.Errorf("%s %s failed: %w", name, strings.Join(args, " "), err)
	}

	log.Debug(ctx, "run ok")
	return nil
}
