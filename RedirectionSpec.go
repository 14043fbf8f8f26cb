package main

// RedirectionSpec rebinds a Stage's stdout or stderr to a file with
// truncate or append semantics. Absence means "inherit parent
// stdout/stderr" (spec §3).
type RedirectionSpec struct {
	FD         int // 1 or 2
	Append     bool
	TargetPath string
}

// Stage is one command in a Pipeline: a nonempty argv, an optional
// redirection, and which of the previous stage's streams feeds this
// stage's stdin.
type Stage struct {
	Argv      []string
	Redirect  *RedirectionSpec
	// PipeSourceFD indicates which fd of the *previous* stage feeds this
	// stage's stdin: 1 by default, 2 when the preceding operator was |&.
	PipeSourceFD int
}

// Pipeline is an ordered, nonempty sequence of Stages.
type Pipeline struct {
	Stages []Stage
}

// CommandKind tags how a Pipeline's first Stage should be dispatched.
type CommandKind int

const (
	KindEscape CommandKind = iota
	KindBuiltin
	KindExternal
	KindUnknown
)

var escapeWords = map[string]bool{
	"exit": true, "quit": true, "q": true, "escape": true, "esc": true,
}

var builtinNames = map[string]bool{
	"echo": true, "type": true, "pwd": true, "cd": true, "history": true,
}

// Classify determines the CommandKind of name, resolving external
// paths through bins. resolvedPath is only meaningful for KindExternal.
func Classify(name string, bins IPathBinManager) (kind CommandKind, resolvedPath string) {
	if escapeWords[name] {
		return KindEscape, ""
	}
	if builtinNames[name] {
		return KindBuiltin, ""
	}
	if bins != nil {
		if path, ok := bins.Lookup(name); ok {
			return KindExternal, path
		}
	}
	return KindUnknown, ""
}
