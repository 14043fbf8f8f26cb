package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOutputWriteNoRedirectGoesToStdout(t *testing.T) {
	var out, errOut strings.Builder
	o := &Output{Stdout: &out, Stderr: &errOut}

	o.Write("hello", false, nil)
	if out.String() != "hello\n" {
		t.Errorf("got %q, want %q", out.String(), "hello\n")
	}
}

func TestOutputWriteIsErrorGoesToStderr(t *testing.T) {
	var out, errOut strings.Builder
	o := &Output{Stdout: &out, Stderr: &errOut}

	o.Write("boom", true, nil)
	if errOut.String() != "boom\n" {
		t.Errorf("got %q, want %q", errOut.String(), "boom\n")
	}
}

func TestOutputNormalizeTrimsAndAddsNewline(t *testing.T) {
	if got := normalize("hi   \n\n"); got != "hi\n" {
		t.Errorf("got %q, want %q", got, "hi\n")
	}
	if got := normalize("   "); got != "" {
		t.Errorf("expected empty normalization of all-whitespace, got %q", got)
	}
}

func TestOutputWriteRedirectsStdoutToFileTruncate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")
	if err := os.WriteFile(path, []byte("old content\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	var out, errOut strings.Builder
	o := &Output{Stdout: &out, Stderr: &errOut}
	o.Write("new", false, &RedirectionSpec{FD: 1, Append: false, TargetPath: path})

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "new\n" {
		t.Errorf("got %q, want %q", string(data), "new\n")
	}
	if out.String() != "" {
		t.Errorf("expected nothing written to stdout, got %q", out.String())
	}
}

func TestOutputWriteRedirectAppend(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")
	if err := os.WriteFile(path, []byte("first\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	o := &Output{Stdout: new(strings.Builder), Stderr: new(strings.Builder)}
	o.Write("second", false, &RedirectionSpec{FD: 1, Append: true, TargetPath: path})

	data, _ := os.ReadFile(path)
	if string(data) != "first\nsecond\n" {
		t.Errorf("got %q", string(data))
	}
}

func TestOutputWriteRedirectCreatesParentDirs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "deep", "out.txt")

	o := &Output{Stdout: new(strings.Builder), Stderr: new(strings.Builder)}
	code := o.Write("x", false, &RedirectionSpec{FD: 1, Append: false, TargetPath: path})
	if code != 0 {
		t.Fatalf("expected success, got code %d", code)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file to exist: %v", err)
	}
}

func TestOutputWriteRedirectMismatchedFDPassesThrough(t *testing.T) {
	// A stdout redirect should not capture stderr content.
	var out, errOut strings.Builder
	o := &Output{Stdout: &out, Stderr: &errOut}
	o.Write("err line", true, &RedirectionSpec{FD: 1, Append: false, TargetPath: filepath.Join(t.TempDir(), "out.txt")})

	if errOut.String() != "err line\n" {
		t.Errorf("expected stderr content to pass through to terminal stderr, got %q", errOut.String())
	}
}
