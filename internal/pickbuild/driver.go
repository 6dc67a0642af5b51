package pickbuild

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dmitrijs2005/pickgate/internal/logging"
)

// Driver walks the branch table for one invocation.
type Driver struct {
	Config    *Config
	Options   *Options
	Commander Commander
	// Dir is the package checkout; its base name is the package name.
	Dir    string
	In     io.Reader
	Out    io.Writer
	Logger logging.Logger
}

// Run previews the pick, asks for confirmation and then propagates it. The
// first failing command stops the run and is returned as a *CommandError.
func (d *Driver) Run(ctx context.Context) error {
	cfg, opts := d.Config, d.Options

	pkg := filepath.Base(d.Dir)
	if !slices.Contains(cfg.Packages, pkg) {
		fmt.Fprintf(d.Out, "Package dir not %s.\n", strings.Join(cfg.Packages, " or "))
		return ErrWrongPackageDir
	}

	seq, err := Sequence(cfg.Targets, opts.Start)
	if err != nil {
		fmt.Fprintln(d.Out, err.Error())
		return err
	}

	if err := checkTerminal(d.In, cfg.AllowNonTerminal); err != nil {
		fmt.Fprintf(d.Out, "%s.\n", err)
		return err
	}

	log := d.Logger.With("package", pkg, "from", opts.FromBranch)

	if opts.NoBuild {
		fmt.Fprint(d.Out, "\nNot building!\n")
	}

	if err := d.preview(ctx, pkg); err != nil {
		return err
	}

	fmt.Fprint(d.Out, "\nIf this is what you want and everything needed, hit Enter; else Ctrl+C\n")
	if err := confirm(ctx, d.In); err != nil {
		return err
	}

	for _, t := range seq {
		if t.Branch == opts.FromBranch {
			fmt.Fprintf(d.Out, "Skipping picking to and building %s == from-branch\n", t.Branch)
			if opts.Only != "" {
				return nil
			}
			continue
		}

		fmt.Fprintf(d.Out, "Branch %s\n", t.Branch)
		if err := d.pickAndBuild(ctx, t, pkg); err != nil {
			var cmdErr *CommandError
			if errors.As(err, &cmdErr) {
				fmt.Fprintf(d.Out, "Command chain failed with return code %d.\n", cmdErr.Code)
			}
			log.Error(ctx, "branch failed", "branch", t.Branch, "error", err)
			return err
		}
		log.Info(ctx, "branch done", "branch", t.Branch)

		if opts.Only != "" {
			fmt.Fprintf(d.Out, "Only processing rhel %s.\n", opts.Only)
			return nil
		}
	}

	return d.Commander.Run(ctx, cfg.PkgTool, "switch-branch", opts.FromBranch)
}

func (d *Driver) preview(ctx context.Context, pkg string) error {
	origin := d.Options.Origin()

	fmt.Fprintf(d.Out, "\nFor package %s are available on %s (only top 5 shown):\n", pkg, origin)
	if err := d.Commander.Run(ctx, d.Config.Git, "log", "-5", "--format=format:%h (%cd, %cr) %s", "--date=iso", origin); err != nil {
		return err
	}

	fmt.Fprint(d.Out, "\nPicked will be:\n")
	return d.Commander.Run(ctx, d.Config.Git, "log", "--oneline", d.Options.PickRange())
}

func (d *Driver) pickAndBuild(ctx context.Context, t Target, pkg string) error {
	cfg, opts := d.Config, d.Options

	if err := d.Commander.Run(ctx, cfg.PkgTool, "switch-branch", t.Branch); err != nil {
		return err
	}
	if err := d.Commander.Run(ctx, cfg.PkgTool, "pull"); err != nil {
		return err
	}
	if err := d.Commander.Run(ctx, cfg.Git, cherryPickArgs(t, opts)...); err != nil {
		return err
	}
	if err := d.Commander.Run(ctx, cfg.PkgTool, "push"); err != nil {
		return err
	}
	if opts.NoBuild {
		return nil
	}
	return d.Commander.Run(ctx, cfg.PkgTool, "build", "--target="+t.BuildTargetFor(pkg), "--nowait")
}

func cherryPickArgs(t Target, opts *Options) []string {
	args := []string{"cherry-pick"}
	if t.RecordOrigin {
		args = append(args, "-x")
	}
	if opts.Edit {
		args = append(args, "--edit")
	}
	return append(args, opts.PickRange())
}
