// Package workdir locates the sheetui base directory: the directory whose
// .sheetui folder holds config, prefs and logs.
package workdir

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	rootFile = ".sheetui-root"
	dataDir  = ".sheetui"
)

// ResolveBaseDir walks from wd towards the enclosing git root (or the
// filesystem root outside a repository). The first directory holding either
// marker wins:
//   - a .sheetui-root file redirects to the path it names, relative to itself
//   - a .sheetui directory makes that directory the base
//
// With no marker on the way it returns the git root, or wd outside git.
func ResolveBaseDir(wd string) string {
	if wd == "" {
		return wd
	}
	wd = filepath.Clean(wd)
	if abs, err := filepath.Abs(wd); err == nil {
		wd = abs
	}

	gitRoot := findGitRoot(wd)
	for _, dir := range ancestors(wd, gitRoot) {
		if target, ok := redirect(dir); ok {
			return target
		}
		if isDir(filepath.Join(dir, dataDir)) {
			return dir
		}
	}
	if gitRoot != "" {
		return gitRoot
	}
	return wd
}

// ancestors lists dir and its parents, nearest first, ending at stop when
// stop is one of them.
func ancestors(dir, stop string) []string {
	var dirs []string
	for {
		dirs = append(dirs, dir)
		if dir == stop {
			return dirs
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dirs
		}
		dir = parent
	}
}

// findGitRoot returns the nearest directory containing .git, which is a
// directory in a normal checkout and a file in a worktree.
func findGitRoot(dir string) string {
	for _, d := range ancestors(dir, "") {
		if _, err := os.Stat(filepath.Join(d, ".git")); err == nil {
			return d
		}
	}
	return ""
}

func redirect(dir string) (string, bool) {
	content, err := os.ReadFile(filepath.Join(dir, rootFile))
	if err != nil {
		return "", false
	}
	target := strings.TrimSpace(string(content))
	if target == "" {
		return "", false
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(dir, target)
	}
	return filepath.Clean(target), true
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
