// Package binpath locates the administrative binaries on PATH.
package binpath

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
)

// ErrNotFound is returned when no executable of the requested name exists.
var ErrNotFound = errors.New("executable not found")

// Separator returns the PATH list separator for the current platform.
func Separator() string {
	if runtime.GOOS == "windows" {
		return ";"
	}
	return ":"
}

// Find scans the directories of the PATH environment variable and returns
// the absolute path of the first executable file called name.
func Find(name string) (string, error) {
	return FindIn(os.Getenv("PATH"), name)
}

// FindIn is Find over an explicit PATH value.
func FindIn(path, name string) (string, error) {
	if path == "" {
		return "", errors.Wrapf(ErrNotFound, "%s: PATH is empty", name)
	}
	for _, dir := range strings.Split(path, Separator()) {
		if dir == "" {
			continue
		}
		candidate, err := filepath.Abs(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		if isExecutable(candidate) {
			return candidate, nil
		}
	}
	return "", errors.Wrapf(ErrNotFound, "%s not in PATH", name)
}

// Resolve accepts either a bare program name, looked up on PATH, or a path
// (possibly starting with ~) that must point at an executable.
func Resolve(nameOrPath string) (string, error) {
	if !strings.ContainsRune(nameOrPath, os.PathSeparator) && !strings.HasPrefix(nameOrPath, "~") {
		return Find(nameOrPath)
	}
	expanded, err := homedir.Expand(nameOrPath)
	if err != nil {
		return "", errors.Wrapf(err, "expand %s", nameOrPath)
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", errors.Wrapf(err, "resolve %s", nameOrPath)
	}
	if !isExecutable(abs) {
		return "", errors.Wrapf(ErrNotFound, "%s is not an executable file", abs)
	}
	return abs, nil
}

// IsNotFound reports whether err came from a failed lookup.
func IsNotFound(err error) bool {
	return errors.Cause(err) == ErrNotFound
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0111 != 0
}
