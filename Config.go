package main

import (
	"os"
)

const defaultHistFile = "./log/history.txt"

// resolveHistFile resolves HISTFILE per spec §6: the environment
// variable when set, else the default relative path, mirroring the
// teacher's env-var-over-default layering in its own config resolver.
func resolveHistFile() string {
	if path, ok := os.LookupEnv("HISTFILE"); ok && path != "" {
		return path
	}
	return defaultHistFile
}

// resolveHomeDir resolves the directory unquoted '~' expands to (spec
// §4.1, §6): HOME when set, else the OS user-profile lookup, else "".
func resolveHomeDir() string {
	if home, ok := os.LookupEnv("HOME"); ok && home != "" {
		return home
	}
	dir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return dir
}

// pathIsSet reports whether PATH is present and nonempty, per spec §6
// ("Missing or empty disables external resolution").
func pathIsSet() bool {
	path, ok := os.LookupEnv("PATH")
	return ok && path != ""
}
