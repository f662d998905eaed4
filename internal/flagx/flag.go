// Package flagx lets several components parse their own flags out of one
// shared os.Args without tripping over each other's flags.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// ConfigEnvVar names the environment variable consulted for the config file
// path when no -c/-config flag is given.
const ConfigEnvVar = "MAPATAG_CONFIG"

// FilterArgs returns the arguments that belong to valueFlags, keeping each
// flag's value when it is passed as a separate argument. It is Filter with no
// boolean flags.
func FilterArgs(args []string, valueFlags []string) []string {
	return Filter(args, valueFlags, nil)
}

// Filter returns the subset of args naming one of valueFlags or boolFlags.
//
// Supported forms:
//  1. Flag and value as separate arguments:  -c conf.json
//  2. Flag and value combined with '=':      --config=conf.json, -seed=false
//  3. Bare boolean flag:                     -seed
//
// A flag may be given with one or two leading dashes regardless of how it is
// listed. Boolean flags never consume the following argument. The result is
// never nil.
func Filter(args []string, valueFlags, boolFlags []string) []string {
	values := nameSet(valueFlags)
	bools := nameSet(boolFlags)

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			continue
		}

		name, _, hasValue := strings.Cut(arg, "=")
		name = normalize(name)

		_, isValue := values[name]
		_, isBool := bools[name]
		if !isValue && !isBool {
			continue
		}

		filtered = append(filtered, arg)
		if hasValue || isBool {
			continue
		}
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

func nameSet(flags []string) map[string]struct{} {
	m := make(map[string]struct{}, len(flags))
	for _, f := range flags {
		m[normalize(f)] = struct{}{}
	}
	return m
}

func normalize(name string) string {
	return strings.TrimLeft(name, "-")
}

// ConfigFilePath resolves the JSON config file path from the -c or -config
// flags in os.Args, falling back to the MAPATAG_CONFIG environment variable.
// An empty string means no config file.
func ConfigFilePath() string {
	var path string

	args := FilterArgs(os.Args[1:], []string{"-c", "-config"})

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(discard{})
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (short)")
	_ = fs.Parse(args)

	if path == "" {
		path = os.Getenv(ConfigEnvVar)
	}
	return path
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
