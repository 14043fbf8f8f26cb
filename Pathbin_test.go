package main

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"testing"
)

func writeExecutable(t *testing.T, dir, name string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestPathBinManagerFindsExecutables(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("executable-bit semantics differ on windows")
	}

	dir := t.TempDir()
	writeExecutable(t, dir, "mytool")

	t.Setenv("PATH", dir)
	bins := NewPathBinManager()

	path, ok := bins.Lookup("mytool")
	if !ok {
		t.Fatalf("expected mytool to be found on PATH")
	}
	if path != filepath.Join(dir, "mytool") {
		t.Errorf("got %q", path)
	}
}

func TestPathBinManagerSkipsNonExecutableFiles(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("executable-bit semantics differ on windows")
	}

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("hi"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	t.Setenv("PATH", dir)
	bins := NewPathBinManager()

	if _, ok := bins.Lookup("readme.txt"); ok {
		t.Errorf("did not expect non-executable file to be indexed")
	}
}

func TestPathBinManagerDedupesDuplicateDirs(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("executable-bit semantics differ on windows")
	}

	dir := t.TempDir()
	writeExecutable(t, dir, "tool")

	t.Setenv("PATH", dir+string(os.PathListSeparator)+dir)
	bins := NewPathBinManager()

	if got := bins.Matches("tool"); len(got) != 1 {
		t.Errorf("expected a single match despite duplicate PATH entry, got %v", got)
	}
}

func TestPathBinManagerMatchesPrefix(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("executable-bit semantics differ on windows")
	}

	dir := t.TempDir()
	writeExecutable(t, dir, "grep")
	writeExecutable(t, dir, "greedy")
	writeExecutable(t, dir, "ls")

	t.Setenv("PATH", dir)
	bins := NewPathBinManager()

	got := bins.Matches("gre")
	sort.Strings(got)
	want := []string{"greedy", "grep"}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestPathBinManagerEmptyPathYieldsNoNames(t *testing.T) {
	t.Setenv("PATH", "")
	bins := NewPathBinManager()
	if names := bins.Names(); len(names) != 0 {
		t.Errorf("expected no names with empty PATH, got %v", names)
	}
}
