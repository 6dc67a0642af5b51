package flagx

import "strings"

// FlagName returns the flag part of a "--name=value" or "--name" token.
func FlagName(arg string) string {
	name, _, _ := strings.Cut(arg, "=")
	return name
}

// PartitionFlags splits option tokens into those whose names are listed in
// allowedFlags and those that are not. Unlike FilterArgs it never treats the
// following token as a value: options must use the "--name=value" form.
//
// Leading option parsing stops at the first token that does not start with
// "-" or right after a literal "--"; everything from there on is returned as
// positional arguments.
func PartitionFlags(args []string, allowedFlags []string) (known, unknown, positional []string) {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	known = make([]string, 0, len(args))
	unknown = make([]string, 0)

	i := 0
	for ; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			i++
			break
		}
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			break
		}
		if _, ok := allowed[FlagName(arg)]; ok {
			known = append(known, arg)
		} else {
			unknown = append(unknown, arg)
		}
	}

	positional = append([]string{}, args[i:]...)
	return known, unknown, positional
}
