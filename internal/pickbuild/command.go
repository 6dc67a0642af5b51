package pickbuild

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/pickgate/internal/logging"
	"github.com/spf13/cobra"
)

// Env is what NewCommand needs from the process.
type Env struct {
	Prog   string
	Dir    string
	In     io.Reader
	Out    io.Writer
	Err    io.Writer
	Runner func(dir string, out, errOut io.Writer, l logging.Logger) Commander
}

// ProcessEnv describes the running process.
func ProcessEnv() (Env, error) {
	dir, err := os.Getwd()
	if err != nil {
		return Env{}, err
	}
	return Env{
		Prog: filepath.Base(os.Args[0]),
		Dir:  dir,
		In:   os.Stdin,
		Out:  os.Stdout,
		Err:  os.Stderr,
	}, nil
}

// NewCommand builds the root command. Flag parsing is left to ParseArgs so
// the --name=value rules and accumulated problems stay in one place.
func NewCommand(env Env) *cobra.Command {
	return &cobra.Command{
		Use:                "pickbuild [options] [since-commit]",
		Short:              "Cherry-pick a work-branch change to every release branch and build it",
		DisableFlagParsing: true,
		SilenceErrors:      true,
		SilenceUsage:       true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig()
			if err != nil {
				return err
			}

			opts, err := ParseArgs(args, cfg)
			if err != nil {
				var usageErr *UsageError
				if errors.As(err, &usageErr) {
					for _, p := range usageErr.Problems {
						fmt.Fprintf(env.Out, "%s: %s\n", env.Prog, p)
					}
				}
				if errors.Is(err, ErrHelp) || usageErr != nil {
					WriteUsage(env.Out, env.Prog, cfg)
				}
				return err
			}

			logger := logging.NewTextLogger(env.Err, parseLevel(cfg.LogLevel))

			runner := env.Runner
			if runner == nil {
				runner = execRunner(env.In)
			}

			d := &Driver{
				Config:    cfg,
				Options:   opts,
				Commander: runner(env.Dir, env.Out, env.Err, logger),
				Dir:       env.Dir,
				In:        env.In,
				Out:       env.Out,
				Logger:    logger,
			}
			return d.Run(cmd.Context())
		},
	}
}

func execRunner(in io.Reader) func(string, io.Writer, io.Writer, logging.Logger) Commander {
	return func(dir string, out, errOut io.Writer, l logging.Logger) Commander {
		return &ExecCommander{Dir: dir, Stdin: in, Stdout: out, Stderr: errOut, Logger: l}
	}
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}
