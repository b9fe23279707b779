// Package flagx splits a shared command line between independent flag sets.
//
// The upload client parses configuration flags and positional file arguments
// from the same os.Args; each consumer picks out only what it understands.
package flagx

import (
	"flag"
	"strings"
)

// FilterArgs returns the arguments that belong to allowedFlags, keeping the
// value that follows a flag when it does not itself look like a flag.
//
// Both "-f value" and "-f=value" (or "--flag=value") forms are recognised.
// The result is never nil.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := toSet(allowedFlags)
	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, ok := splitAssignment(arg); ok {
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; !ok {
			continue
		}
		filtered = append(filtered, arg)
		if hasValue(args, i) {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// Positional returns the arguments that are neither flags nor values of
// valuedFlags. A lone "--" ends flag processing; everything after it is
// positional.
func Positional(args []string, valuedFlags []string) []string {
	valued := toSet(valuedFlags)
	out := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if arg == "--" {
			return append(out, args[i+1:]...)
		}
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			out = append(out, arg)
			continue
		}
		if _, _, ok := splitAssignment(arg); ok {
			continue
		}
		if _, ok := valued[arg]; ok && hasValue(args, i) {
			i++
		}
	}

	return out
}

// ConfigPath extracts the JSON config file passed with -c or -config.
// The last occurrence wins; an empty string means none was given.
func ConfigPath(args []string) string {
	var path string

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "Path to config file")
	fs.StringVar(&path, "c", "", "Path to config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config"}))

	return path
}

func splitAssignment(arg string) (string, string, bool) {
	if !strings.HasPrefix(arg, "-") {
		return "", "", false
	}
	name, value, ok := strings.Cut(arg, "=")
	return name, value, ok
}

func hasValue(args []string, i int) bool {
	return i+1 < len(args) && !strings.HasPrefix(args[i+1], "-")
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, f := range items {
		set[f] = struct{}{}
	}
	return set
}
