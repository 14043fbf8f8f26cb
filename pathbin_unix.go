//go:build !windows

package main

import "os"

// isExecutableEntry reports whether dir/entry is a regular file with
// at least one executable bit set.
func isExecutableEntry(dir string, entry os.DirEntry) bool {
	info, err := entry.Info()
	if err != nil {
		return false
	}
	return info.Mode()&0111 != 0
}
