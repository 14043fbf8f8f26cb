//go:build windows

package main

import (
	"os"
	"strings"
)

// isExecutableEntry reports whether entry's extension is one of
// PATHEXT's (defaulting to the usual Windows set when PATHEXT is
// unset), since Windows has no executable permission bit.
func isExecutableEntry(dir string, entry os.DirEntry) bool {
	pathext := os.Getenv("PATHEXT")
	if pathext == "" {
		pathext = ".COM;.EXE;.BAT;.CMD"
	}
	name := strings.ToUpper(entry.Name())
	for _, ext := range strings.Split(strings.ToUpper(pathext), ";") {
		if ext != "" && strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
