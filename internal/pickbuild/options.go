package pickbuild

import (
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/pickgate/internal/flagx"
	"github.com/spf13/pflag"
)

// Options is the parsed command line.
type Options struct {
	NoBuild    bool
	Edit       bool
	FromBranch string
	// Only is set for single-target mode; Start then equals Only.
	Only   string
	Start  string
	Commit string
	Remote string
}

var (
	switchFlags = []string{"--no-build", "--edit", "--no-edit"}
	valueFlags  = map[string]string{
		"--from-branch": "branchname",
		"--only":        "rhel",
		"--start":       "rhel",
	}
)

// ParseArgs parses the driver's command line. Options must come before the
// optional commit and take values only in the --name=value form. All problems
// are collected into a single *UsageError; -h or --help yields ErrHelp.
func ParseArgs(args []string, cfg *Config) (*Options, error) {
	allowed := append([]string{"-h", "--help"}, switchFlags...)
	for name := range valueFlags {
		allowed = append(allowed, name)
	}

	known, unknown, positional := flagx.PartitionFlags(args, allowed)

	var problems []string
	for _, arg := range unknown {
		problems = append(problems, "unknown option: "+arg)
	}

	clean := make([]string, 0, len(known))
	for _, arg := range known {
		name, value, hasValue := strings.Cut(arg, "=")
		switch {
		case name == "-h" || name == "--help":
			return nil, ErrHelp
		case isSwitch(name) && hasValue:
			problems = append(problems, name+" does not expect argument.")
		case !isSwitch(name) && value == "":
			problems = append(problems, fmt.Sprintf("%s needs %s argument.", name, valueFlags[name]))
		default:
			clean = append(clean, arg)
		}
	}

	opts := &Options{
		Edit:       true,
		FromBranch: cfg.WorkBranch,
		Start:      cfg.Targets[0].Release,
		Remote:     cfg.Remote,
	}

	var edit, noEdit bool
	fs := pflag.NewFlagSet("pickbuild", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.BoolVar(&opts.NoBuild, "no-build", false, "only cherry-pick, do not build")
	fs.BoolVar(&edit, "edit", false, "edit cherry-picked commit messages (default)")
	fs.BoolVar(&noEdit, "no-edit", false, "keep cherry-picked commit messages")
	fs.StringVar(&opts.FromBranch, "from-branch", opts.FromBranch, "branch the commits are taken from")
	fs.StringVar(&opts.Only, "only", "", "process only this release")
	fs.StringVar(&opts.Start, "start", opts.Start, "start the sequence at this release")

	if err := fs.Parse(clean); err != nil {
		problems = append(problems, err.Error())
	}

	if edit && noEdit {
		problems = append(problems, "contradicting --edit and --no-edit options.")
	}
	if noEdit {
		opts.Edit = false
	}

	if len(positional) > 1 {
		problems = append(problems, "too many arguments: "+strings.Join(positional, " "))
	} else if len(positional) == 1 {
		opts.Commit = positional[0]
	}

	if len(problems) > 0 {
		return nil, &UsageError{Problems: problems}
	}

	if opts.Only != "" {
		opts.Start = opts.Only
	}

	return opts, nil
}

func isSwitch(name string) bool {
	for _, f := range switchFlags {
		if f == name {
			return true
		}
	}
	return false
}

// Origin is the remote-tracking ref of the from-branch.
func (o *Options) Origin() string {
	return o.Remote + "/" + o.FromBranch
}

// PickRange is the cherry-pick range from Commit (default: the top of
// Origin) up to Origin.
func (o *Options) PickRange() string {
	commit := o.Commit
	if commit == "" {
		commit = o.Origin()
	}
	return commit + "^.." + o.Origin()
}
