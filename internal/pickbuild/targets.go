package pickbuild

import "fmt"

// SwitchBackRelease selects an empty sequence: nothing is picked and the
// driver only switches back to the work branch.
const SwitchBackRelease = "x"

// UnknownReleaseError reports a start or only release missing from the table.
type UnknownReleaseError struct {
	Release string
}

func (e *UnknownReleaseError) Error() string {
	return fmt.Sprintf("Start with what rhel? ('%s' not defined, 8.6, 8.4, ...).", e.Release)
}

func (e *UnknownReleaseError) ExitCode() int { return 1 }

// Sequence returns the targets from start to the end of the table.
func Sequence(targets []Target, start string) ([]Target, error) {
	if start == SwitchBackRelease {
		return nil, nil
	}
	for i, t := range targets {
		if t.Release == start {
			return targets[i:], nil
		}
	}
	return nil, &UnknownReleaseError{Release: start}
}
