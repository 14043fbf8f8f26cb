package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// builtinEcho writes argv joined by single spaces (spec §4.6).
func builtinEcho(argv []string, io builtinIO) int {
	fmt.Fprintln(io.Stdout, strings.Join(argv[1:], " "))
	return 0
}

// builtinPwd writes the current working directory.
func builtinPwd(argv []string, io builtinIO) int {
	dir, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(io.Stderr, err)
		return 1
	}
	fmt.Fprintln(io.Stdout, dir)
	return 0
}

// builtinCd resolves argv[1] to an absolute, symlink-resolved path and
// sets it as the process working directory (spec §4.6).
func builtinCd(argv []string, io builtinIO) int {
	if len(argv) < 2 {
		fmt.Fprintln(io.Stderr, "cd: please include an argument")
		return 1
	}

	target := argv[1]
	abs, err := filepath.Abs(target)
	if err != nil {
		fmt.Fprintf(io.Stderr, "cd: %s: No such file or directory\n", target)
		return 1
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		fmt.Fprintf(io.Stderr, "cd: %s: No such file or directory\n", abs)
		return 1
	}

	if err := os.Chdir(resolved); err != nil {
		fmt.Fprintf(io.Stderr, "cd: %s: No such file or directory\n", abs)
		return 1
	}
	return 0
}

// builtinType reports whether name is a builtin, an external found on
// PATH, or unresolvable (spec §4.6).
func builtinType(argv []string, io builtinIO) int {
	if len(argv) < 2 || argv[1] == "" {
		fmt.Fprintln(io.Stderr, "type: please include an argument")
		return 1
	}
	name := argv[1]

	if escapeWords[name] || builtinNames[name] {
		fmt.Fprintf(io.Stdout, "%s is a shell builtin\n", name)
		return 0
	}

	if sharedBins == nil {
		fmt.Fprintf(io.Stdout, "%s: please set PATH\n", name)
		return 0
	}

	if path, ok := sharedBins.Lookup(name); ok {
		fmt.Fprintf(io.Stdout, "%s is %s\n", name, path)
		return 0
	}

	fmt.Fprintf(io.Stdout, "%s: not found\n", name)
	return 0
}

// builtinHistory implements the five forms of spec §4.6, operating on
// the process-wide HistoryStore.
func builtinHistory(argv []string, io builtinIO) int {
	if sharedHistory == nil {
		return 1
	}

	if len(argv) == 1 {
		fmt.Fprint(io.Stdout, sharedHistory.List(0))
		return 0
	}

	switch argv[1] {
	case "-r":
		if len(argv) < 3 {
			fmt.Fprintln(io.Stderr, "history: -r requires a file argument")
			return 1
		}
		if err := sharedHistory.ReadFrom(argv[2]); err != nil {
			fmt.Fprintln(io.Stderr, err)
			return 1
		}
		return 0
	case "-w":
		if len(argv) < 3 {
			fmt.Fprintln(io.Stderr, "history: -w requires a file argument")
			return 1
		}
		if err := sharedHistory.WriteTo(argv[2]); err != nil {
			fmt.Fprintln(io.Stderr, err)
			return 1
		}
		return 0
	case "-a":
		if len(argv) < 3 {
			fmt.Fprintln(io.Stderr, "history: -a requires a file argument")
			return 1
		}
		if err := sharedHistory.AppendTo(argv[2]); err != nil {
			fmt.Fprintln(io.Stderr, err)
			return 1
		}
		return 0
	default:
		n, ok := parseHistoryN(argv[1])
		if !ok {
			fmt.Fprintf(io.Stderr, "history: invalid argument: %s\n", argv[1])
			return 1
		}
		fmt.Fprint(io.Stdout, sharedHistory.List(n))
		return 0
	}
}

// sharedHistory is the process-wide HistoryStore (spec §5: "mutated
// only from the main loop (never from within a pipeline stage except
// history -r, which runs synchronously)"). Built-ins are plain
// functions dispatched by name (builtinTable), so history needs a
// package-level handle rather than a constructor argument threaded
// through Classify/execStage.
var sharedHistory *HistoryStore

// sharedBins mirrors sharedHistory: builtinType needs PATH resolution
// but builtinFunc has no constructor-injected dependencies.
var sharedBins IPathBinManager
