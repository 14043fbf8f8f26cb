package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Output is the single entry point for all shell-internal writes (spec
// §4.3). It normalizes content, then routes it to stdout/stderr or a
// redirection target according to the truncate/append rules.
type Output struct {
	Stdout io.Writer
	Stderr io.Writer
}

// normalize trims trailing whitespace, applies NFC normalization, and
// guarantees the content ends with exactly one trailing newline when
// nonempty.
func normalize(content string) string {
	trimmed := strings.TrimRight(content, " \t\r\n")
	if trimmed == "" {
		return ""
	}
	return nfc(trimmed) + "\n"
}

// nfc applies Unicode NFC normalization, per spec §4.3 and §6.
func nfc(s string) string {
	return norm.NFC.String(s)
}

// Write implements the routing table from spec §4.3. It returns an
// exit code: 0 on success, 1 on a write error.
func (o *Output) Write(content string, isError bool, redirect *RedirectionSpec) int {
	normalized := normalize(content)

	if redirect == nil {
		if isError {
			fmt.Fprint(o.Stderr, normalized)
		} else {
			fmt.Fprint(o.Stdout, normalized)
		}
		return 0
	}

	routesToFile := (redirect.FD == 1 && !isError) || (redirect.FD == 2 && isError)
	if !routesToFile {
		if isError {
			fmt.Fprint(o.Stderr, normalized)
		} else {
			fmt.Fprint(o.Stdout, normalized)
		}
		return 0
	}

	if err := o.writeFile(redirect, normalized); err != nil {
		fmt.Fprintf(o.Stderr, "%s\n", err)
		return 1
	}
	return 0
}

func (o *Output) writeFile(redirect *RedirectionSpec, content string) error {
	path := redirect.TargetPath
	if !filepath.IsAbs(path) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		path = abs
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	flags := os.O_CREATE | os.O_WRONLY
	if redirect.Append {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	f, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteString(content)
	return err
}

