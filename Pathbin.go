package main

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cespare/xxhash"
)

// IPathBinManager resolves executable names against PATH and supplies
// the set of names used to seed the completion Trie (spec §4.2, §4.7).
type IPathBinManager interface {
	Lookup(binName string) (string, bool)
	Matches(prefix string) []string
	Names() []string
}

// PathBinManager indexes every executable file across PATH once at
// startup (spec §4.7: "populate the trie from built-ins and every
// executable entry of each path directory, silently skipping
// inaccessible directories").
type PathBinManager struct {
	dirs        []string
	binaryPaths map[string]string
}

// NewPathBinManager builds a PathBinManager from the PATH environment
// variable, split on the platform list separator. A missing or empty
// PATH disables external resolution (spec §6).
func NewPathBinManager() IPathBinManager {
	pathVar, _ := os.LookupEnv("PATH")
	var dirs []string
	if pathVar != "" {
		dirs = strings.Split(pathVar, string(os.PathListSeparator))
	}

	binaryPaths := make(map[string]string)
	seenDirs := make(map[uint64]bool, len(dirs))

	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		abs, err := filepath.Abs(dir)
		if err != nil {
			abs = dir
		}
		key := xxhash.Sum64String(abs)
		if seenDirs[key] {
			continue
		}
		seenDirs[key] = true

		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if !isExecutableEntry(dir, entry) {
				continue
			}
			name := entry.Name()
			if _, exists := binaryPaths[name]; !exists {
				binaryPaths[name] = filepath.Join(dir, name)
			}
		}
	}

	return &PathBinManager{dirs: dirs, binaryPaths: binaryPaths}
}

func (pbm *PathBinManager) Lookup(binName string) (string, bool) {
	path, ok := pbm.binaryPaths[binName]
	return path, ok
}

func (pbm *PathBinManager) Matches(prefix string) []string {
	var matches []string
	for name := range pbm.binaryPaths {
		if strings.HasPrefix(name, prefix) {
			matches = append(matches, name)
		}
	}
	sort.Strings(matches)
	return matches
}

func (pbm *PathBinManager) Names() []string {
	names := make([]string, 0, len(pbm.binaryPaths))
	for name := range pbm.binaryPaths {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
