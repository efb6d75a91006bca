// Package fileid resolves the local-file facts the locator needs: the
// stable numeric identity the metadata service indexes files by, and the
// file's byte length.
package fileid

import (
	"fmt"
	"os"
	"syscall"
)

// Inode returns the numeric identity of the file at path. The metadata
// service addresses files by this number, not by path.
func Inode(path string) (uint64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("resolving file identity of %s: %w", path, err)
	}

	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, fmt.Errorf("resolving file identity of %s: no inode on this platform", path)
	}
	return stat.Ino, nil
}

// Size returns the byte length of the file at path.
func Size(path string) (uint64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("resolving file size of %s: %w", path, err)
	}
	if info.IsDir() {
		return 0, fmt.Errorf("resolving file size of %s: is a directory", path)
	}
	return uint64(info.Size()), nil
}
