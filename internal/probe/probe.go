// Package probe checks whether the commands recorded for an entry can actually
// be found on this machine.
package probe

import (
	"os"
	"path/filepath"
	"strings"

	"jarvis/internal/logger"
)

// Finder looks commands up in a list of directories.
type Finder struct {
	// Path is a PATH-style directory list. Empty means the PATH environment
	// variable.
	Path string
}

// Find returns the location of command and whether it is executable there.
// A command containing a path separator is checked as given; otherwise every
// directory on the search path is tried in order. Only the first word of
// command is considered, so recorded commands such as "samtools view" work.
func (f Finder) Find(command string) (string, bool) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return "", false
	}
	name := fields[0]

	if strings.ContainsRune(name, filepath.Separator) {
		return name, isExecutable(name)
	}

	search := f.Path
	if search == "" {
		search = os.Getenv("PATH")
	}
	for _, dir := range filepath.SplitList(search) {
		if dir == "" {
			dir = "."
		}
		candidate := filepath.Join(dir, name)
		if isExecutable(candidate) {
			logger.Debug("[DEBUG] Found %s at %s\n", name, candidate)
			return candidate, true
		}
	}
	return "", false
}

// Missing returns the commands that Find cannot locate, in the given order.
func (f Finder) Missing(commands []string) []string {
	var missing []string
	for _, c := range commands {
		if _, ok := f.Find(c); !ok {
			missing = append(missing, c)
		}
	}
	return missing
}

// isExecutable reports whether path is a regular file with any execute bit set.
func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	mode := info.Mode()
	return mode.IsRegular() && mode.Perm()&0o111 != 0
}
