package pickbuild

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	return cfg
}

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want *Options
	}{
		{"defaults", nil, &Options{Edit: true, FromBranch: "rhel-9.2.0", Start: "9.3", Remote: "origin"}},
		{"all options", []string{"--no-build", "--no-edit", "--from-branch=rhel-9.0.0", "--start=8.8", "deadbeef"},
			&Options{NoBuild: true, FromBranch: "rhel-9.0.0", Start: "8.8", Commit: "deadbeef", Remote: "origin"}},
		{"only overrides start", []string{"--start=8.8", "--only=8.6"},
			&Options{Edit: true, FromBranch: "rhel-9.2.0", Only: "8.6", Start: "8.6", Remote: "origin"}},
		{"repeated edit is fine", []string{"--edit", "--edit"},
			&Options{Edit: true, FromBranch: "rhel-9.2.0", Start: "9.3", Remote: "origin"}},
		{"double dash ends options", []string{"--", "--weird-ref"},
			&Options{Edit: true, FromBranch: "rhel-9.2.0", Start: "9.3", Commit: "--weird-ref", Remote: "origin"}},
		{"options stop at the commit", []string{"HEAD~2", "--no-build"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseArgs(tt.args, defaultConfig())
			if tt.want == nil {
				var usageErr *UsageError
				require.ErrorAs(t, err, &usageErr)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.want, got))
		})
	}
}

func TestParseArgs_AccumulatesProblems(t *testing.T) {
	_, err := ParseArgs([]string{
		"--bogus", "--edit", "--no-edit", "--only", "--from-branch=", "--no-build=yes", "a", "b",
	}, defaultConfig())

	var usageErr *UsageError
	require.ErrorAs(t, err, &usageErr)
	assert.Equal(t, 1, usageErr.ExitCode())
	assert.ElementsMatch(t, []string{
		"unknown option: --bogus",
		"--only needs rhel argument.",
		"--from-branch needs branchname argument.",
		"--no-build does not expect argument.",
		"contradicting --edit and --no-edit options.",
		"too many arguments: a b",
	}, usageErr.Problems)
}

func TestParseArgs_Help(t *testing.T) {
	for _, arg := range []string{"-h", "--help"} {
		_, err := ParseArgs([]string{"--no-build", arg}, defaultConfig())
		assert.ErrorIs(t, err, ErrHelp)
	}
}

func TestPickRange(t *testing.T) {
	o := &Options{Remote: "origin", FromBranch: "rhel-9.2.0"}
	assert.Equal(t, "origin/rhel-9.2.0^..origin/rhel-9.2.0", o.PickRange())

	o.Commit = "origin/rhel-9.2.0~2"
	assert.Equal(t, "origin/rhel-9.2.0~2^..origin/rhel-9.2.0", o.PickRange())
}
