package pickbuild

import (
	"fmt"
	"io"
)

// WriteUsage prints the help text for prog with cfg's work branch filled in.
func WriteUsage(w io.Writer, prog string, cfg *Config) {
	origin := cfg.Remote + "/" + cfg.WorkBranch
	fmt.Fprintf(w, `
Usage: %[1]s [--no-build] [--edit|--no-edit] [--from-branch=branchname] [--only=rhel] [--start=rhel] [since-commit-on-branch-%[2]s]

        Default commit is top commit on %[2]s .
        If --from-branch=branchname is given, it will be commit(s) on
        %[3]s/branchname instead.

        If --no-build is given, only cherry-picks are executed.

        If --edit is given (default), cherry-picked commit messages are edited
        prior to committing, e.g. to adjust bug references for the target
        branch.

        If --no-edit is given, cherry-picked commit messages are not edited.

        If --only=rhel is given, where rhel is %[4]s, only that one
        branch will be cherry-picked to (and built).

        If --start=rhel is given, sequence starts at that rhel version. Could
        be used if an (e.g. merge) error occurred that needed to be fixed and
        continued manually, and afterwards this sequence is to be resumed with
        the next branch.
        If --only=rhel is given, the --start=rhel option is ignored.

        Since-commit-on-branch can be a sha1 on that branch.
        Or, default but could still be specified for one single commit:
        %[2]s
        Or for the last 3 commits: %[2]s~2
        You get the idea..

`, prog, origin, cfg.Remote, releaseExamples(cfg.Targets))
}

func releaseExamples(targets []Target) string {
	switch len(targets) {
	case 0:
		return "..."
	case 1:
		return targets[0].Release
	default:
		return fmt.Sprintf("%s or %s or ...", targets[0].Release, targets[len(targets)/2].Release)
	}
}
